// Package descriptor defines the raw, host-level class metadata consumed by the
// generator and decodes it from descriptor files (YAML, JSON, msgpack).
//
// Raw classes mirror what an annotation processor sees: the annotated element,
// its constructor parameters and its fields with their annotations. Nothing is
// interpreted here beyond normalizing the visibility attribute's two shapes.
package descriptor
