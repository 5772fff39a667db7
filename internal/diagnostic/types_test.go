package diagnostic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddAndMerge(t *testing.T) {
	var d Diagnostics

	d.AddInfo(CodeNoAnnotatedClasses, "No classes annotated with @UpdateObject in this round", "", "")
	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	var other Diagnostics
	other.AddError(CodeDuplicateField, "field declared twice", "com.example.Person", "name")
	other.AddWarning("W", "careful", "", "")

	d.Merge(other)

	assert.True(t, d.HasErrors())
	assert.Len(t, d.All(), 3)
	assert.Equal(t, SeverityError, d.All()[0].Severity)
	require.EqualError(t, d.Error(), "[com.example.Person] name: [DUPLICATE_FIELD] field declared twice")
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "[X] plain", Diagnostic{Code: "X", Message: "plain"}.String())
}

func TestClassError(t *testing.T) {
	inner := fmt.Errorf("%w: error.NonExistentClass", ErrUnresolvedFieldType)
	err := NewClassError("com.example.Person", "address", inner)

	require.ErrorIs(t, err, ErrUnresolvedFieldType)
	assert.Equal(t, "com.example.Person.address: unresolved field type: error.NonExistentClass", err.Error())

	var ce *ClassError
	require.ErrorAs(t, fmt.Errorf("generating: %w", err), &ce)
	assert.Equal(t, "address", ce.Field)
}

func TestDiagnostics_AddClassError(t *testing.T) {
	var d Diagnostics

	d.AddClassError("com.example.A", NewClassError("com.example.A", "f",
		fmt.Errorf("%w: Foo", ErrInvalidVisibilityModifier)))
	d.AddClassError("com.example.B", errors.New("printer exploded"))

	require.Len(t, d.Errors, 2)
	assert.Equal(t, CodeInvalidVisibilityModifier, d.Errors[0].Code)
	assert.Equal(t, "f", d.Errors[0].Field)
	assert.Equal(t, "invalid visibility modifier: Foo", d.Errors[0].Message)
	assert.Equal(t, CodeRenderFailed, d.Errors[1].Code)
	assert.Equal(t, "com.example.B", d.Errors[1].Class)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
