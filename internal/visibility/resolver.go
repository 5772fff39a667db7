// Package visibility resolves the visibility attribute of an annotated class.
package visibility

import (
	"fmt"
	"strings"

	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/model"
)

// MarkerPath is the qualified path under which the visibility markers are declared.
const MarkerPath = "com.nando.update_object.annotation.modifiers.UpdateObjectModifier.VisibilityModifier"

var markers = map[string]model.Visibility{
	"Public":    model.VisibilityPublic,
	"Internal":  model.VisibilityInternal,
	"Private":   model.VisibilityPrivate,
	"Protected": model.VisibilityProtected,
}

// Resolve returns the visibility selected for a class.
func Resolve(class *model.ClassDescriptor) (model.Visibility, error) {
	return ResolveOption(class.VisibilityOption)
}

// ResolveOption maps a visibility option onto the enumeration. An empty option
// selects Public. Every reference must name a known marker and all references
// must agree; otherwise the error wraps diagnostic.ErrInvalidVisibilityModifier
// and names the offending reference.
func ResolveOption(opt model.VisibilityOption) (model.Visibility, error) {
	if len(opt) == 0 {
		return model.VisibilityPublic, nil
	}

	var (
		resolved model.Visibility
		first    string
	)

	for i, ref := range opt {
		v, ok := parseReference(ref)
		if !ok {
			return 0, fmt.Errorf("%w: provided modifier %s does not implement %s",
				diagnostic.ErrInvalidVisibilityModifier, ref, MarkerPath)
		}

		if i == 0 {
			resolved, first = v, ref
			continue
		}

		if v != resolved {
			return 0, fmt.Errorf("%w: %s conflicts with %s",
				diagnostic.ErrInvalidVisibilityModifier, ref, first)
		}
	}

	return resolved, nil
}

// parseReference accepts "Internal", "VisibilityModifier.Internal",
// "...UpdateObjectModifier.VisibilityModifier.Internal" and the same with a
// "::class" suffix.
func parseReference(ref string) (model.Visibility, bool) {
	ref = strings.TrimSuffix(strings.TrimSpace(ref), "::class")

	prefix, name := "", ref
	if i := strings.LastIndexByte(ref, '.'); i >= 0 {
		prefix, name = ref[:i], ref[i+1:]
	}

	v, ok := markers[name]
	if !ok {
		return 0, false
	}

	if prefix != "" && prefix != MarkerPath && !strings.HasSuffix(MarkerPath, "."+prefix) {
		return 0, false
	}

	return v, true
}
