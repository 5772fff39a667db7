package diagnostic

import (
	"errors"
	"fmt"
)

// Diagnostic codes.
const (
	CodeNoAnnotatedClasses          = "NO_ANNOTATED_CLASSES"
	CodeOutputRootUnavailable       = "OUTPUT_ROOT_UNAVAILABLE"
	CodeInvalidVisibilityModifier   = "INVALID_VISIBILITY_MODIFIER"
	CodeUnresolvedFieldType         = "UNRESOLVED_FIELD_TYPE"
	CodeUnsupportedAnnotationTarget = "UNSUPPORTED_ANNOTATION_TARGET"
	CodeDuplicateField              = "DUPLICATE_FIELD"
	CodeDuplicatePartialGroupField  = "DUPLICATE_PARTIAL_GROUP_FIELD"
	CodeDuplicateOutput             = "DUPLICATE_OUTPUT"
	CodeInvalidGeneratedName        = "INVALID_GENERATED_NAME"
	CodeRenderFailed                = "RENDER_FAILED"
)

// Sentinel errors, one per failure kind.
var (
	ErrOutputRootUnavailable       = errors.New("can't find the target directory for generated files")
	ErrInvalidVisibilityModifier   = errors.New("invalid visibility modifier")
	ErrUnresolvedFieldType         = errors.New("unresolved field type")
	ErrUnsupportedAnnotationTarget = errors.New("invalid element type, expected a class or constructor")
	ErrDuplicateField              = errors.New("duplicate field")
	ErrDuplicateOutput             = errors.New("duplicate output")
	ErrInvalidGeneratedName        = errors.New("invalid generated type name")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrOutputRootUnavailable, CodeOutputRootUnavailable},
	{ErrInvalidVisibilityModifier, CodeInvalidVisibilityModifier},
	{ErrUnresolvedFieldType, CodeUnresolvedFieldType},
	{ErrUnsupportedAnnotationTarget, CodeUnsupportedAnnotationTarget},
	{ErrDuplicateField, CodeDuplicateField},
	{ErrDuplicateOutput, CodeDuplicateOutput},
	{ErrInvalidGeneratedName, CodeInvalidGeneratedName},
}

// CodeOf returns the diagnostic code for err, or CodeRenderFailed when err
// does not wrap a known sentinel.
func CodeOf(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return CodeRenderFailed
}

// ClassError attributes a class-scoped failure to a class and optionally a field.
type ClassError struct {
	Class string
	Field string
	Err   error
}

// NewClassError wraps err with class and field attribution.
func NewClassError(class, field string, err error) *ClassError {
	return &ClassError{Class: class, Field: field, Err: err}
}

// Error implements error.
func (e *ClassError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %v", e.Class, e.Field, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

// Unwrap returns the underlying error.
func (e *ClassError) Unwrap() error {
	return e.Err
}
