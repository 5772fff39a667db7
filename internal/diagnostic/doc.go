// Package diagnostic provides structured errors, warnings and infos for the
// update-object generator.
//
// Class-scoped failures are collected per class and never abort a run; fatal
// failures are returned as errors wrapping one of the sentinel values.
package diagnostic
