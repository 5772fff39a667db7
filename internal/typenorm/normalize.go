package typenorm

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/model"
)

// Host is a host-level type representation accepted by Normalize.
type Host interface {
	host()
}

// Text is a JVM/Kotlin type mirror in its textual form, e.g.
// "java.util.List<java.lang.String>", "long[]" or "kotlin.String?".
type Text string

func (Text) host() {}

// Go wraps a go/types type produced by the Go-source adapter.
type Go struct {
	Type types.Type
}

func (Go) host() {}

// Result is a normalized host type.
type Result struct {
	// Type is the canonical type. Its top-level Nullable is set only when the host
	// spelled nullability explicitly (a trailing "?" or a Go pointer).
	Type model.SemanticType
	// Primitive reports a host primitive value type, which is never nullable.
	Primitive bool
}

// Normalize maps a host type onto the canonical model.
// It fails with diagnostic.ErrUnresolvedFieldType when the host type is unresolved
// or has no canonical equivalent.
func Normalize(h Host) (Result, error) {
	switch h := h.(type) {
	case Text:
		return parseText(string(h))
	case Go:
		return normalizeGo(h.Type)
	default:
		return Result{}, fmt.Errorf("%w: unsupported host type %T", diagnostic.ErrUnresolvedFieldType, h)
	}
}

// AsMutable converts a read-only canonical collection into its mutable counterpart.
// Type arguments, including the nullability marker on the last one, are kept as is.
// Every other type is returned unchanged.
func AsMutable(t model.SemanticType) model.SemanticType {
	if !t.IsCanonicalCollection() {
		return t
	}

	name, ok := mutableOf[t.Name]
	if !ok {
		return t
	}

	t.Name = name
	t.Args = slices.Clone(t.Args)

	return t
}

func unresolved(what string) error {
	return fmt.Errorf("%w: %s", diagnostic.ErrUnresolvedFieldType, what)
}

func isQualified(name string) bool {
	return strings.Contains(name, ".")
}
