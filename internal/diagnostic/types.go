package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"update-object-generator/internal/common"
)

// Diagnostics holds all diagnostic information collected during a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Class identifies the annotated class this relates to (if any).
	Class string
	// Field identifies which field this relates to (if any).
	Field string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, class, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Class:    class,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, class, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Class:    class,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, class, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Class:    class,
		Field:    field,
	})
}

// AddClassError records err as an error diagnostic. Errors that carry a
// ClassError keep its class and field attribution.
func (d *Diagnostics) AddClassError(class string, err error) {
	var ce *ClassError
	if errors.As(err, &ce) {
		d.AddError(CodeOf(err), ce.Err.Error(), ce.Class, ce.Field)
		return
	}

	d.AddError(CodeOf(err), err.Error(), class, "")
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Class != "" {
		prefix = append(prefix, "["+d.Class+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
