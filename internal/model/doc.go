// Package model defines the canonical, host-independent description of a record
// type that drives update-object generation.
//
// Adapters (descriptor files, Go sources) produce raw metadata; the classifier turns
// it into ClassDescriptor values, which are immutable for the rest of a run.
package model
