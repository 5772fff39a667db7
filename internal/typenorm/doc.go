// Package typenorm maps host type representations onto the canonical
// model.SemanticType.
//
// Two hosts are supported: textual JVM/Kotlin type mirrors as exported into
// descriptor files, and go/types values produced by the Go-source adapter.
package typenorm
