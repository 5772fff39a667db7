// Package classify turns raw class metadata into canonical descriptors: it picks
// the candidate fields, reads their annotations and decides nullability, the
// required flag and partial-group membership.
package classify
