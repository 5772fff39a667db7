package descriptor

import (
	"go/types"
	"strings"

	"update-object-generator/internal/model"
	"update-object-generator/internal/typenorm"
)

// ElementKind is the kind of element an update-object annotation was placed on.
type ElementKind string

const (
	ElementClass       ElementKind = "class"
	ElementConstructor ElementKind = "constructor"
)

// Well-known annotation names. Matching accepts the simple name or any
// qualified name ending in it.
const (
	AnnotationUpdateObject         = "com.nando.update_object.annotation.UpdateObject"
	AnnotationRequired             = "com.nando.update_object.annotation.RequiredForUpdateObject"
	AnnotationPartOfPartialObjects = "com.nando.update_object.annotation.PartOfPartialObjects"
	AnnotationNotNull              = "org.jetbrains.annotations.NotNull"
	AnnotationNullable             = "org.jetbrains.annotations.Nullable"
)

// File is a decoded descriptor file.
type File struct {
	Version string     `yaml:"version" json:"version" msgpack:"version"`
	Classes []RawClass `yaml:"classes" json:"classes" msgpack:"classes"`
}

// RawClass is one element carrying the update-object annotation.
type RawClass struct {
	Package string `yaml:"package" json:"package" msgpack:"package"`
	// PackagePath is the Go import path; set only by the Go-source adapter.
	PackagePath  string                 `yaml:"packagePath,omitempty" json:"packagePath,omitempty" msgpack:"packagePath,omitempty"`
	Name         string                 `yaml:"name" json:"name" msgpack:"name"`
	Target       ElementKind            `yaml:"target,omitempty" json:"target,omitempty" msgpack:"target,omitempty"`
	UpdateObject UpdateObjectAnnotation `yaml:"updateObject" json:"updateObject" msgpack:"updateObject"`
	// ConstructorParameters of the primary constructor. For a constructor target
	// they are the fields themselves and must carry types.
	ConstructorParameters []RawField `yaml:"constructorParameters,omitempty" json:"constructorParameters,omitempty" msgpack:"constructorParameters,omitempty"`
	Fields                []RawField `yaml:"fields,omitempty" json:"fields,omitempty" msgpack:"fields,omitempty"`
	// OutputDir is a directory hint relative to the output root.
	OutputDir string `yaml:"outputDir,omitempty" json:"outputDir,omitempty" msgpack:"outputDir,omitempty"`
}

// QualifiedName returns package.name for messages.
func (c *RawClass) QualifiedName() string {
	switch {
	case c.PackagePath != "":
		return c.PackagePath + "." + c.Name
	case c.Package != "":
		return c.Package + "." + c.Name
	default:
		return c.Name
	}
}

// EffectiveTarget returns the annotated element kind, defaulting to class.
func (c *RawClass) EffectiveTarget() ElementKind {
	if c.Target == "" {
		return ElementClass
	}

	return c.Target
}

// UpdateObjectAnnotation holds the attributes of the update-object annotation.
type UpdateObjectAnnotation struct {
	ClassName string `yaml:"className,omitempty" json:"className,omitempty" msgpack:"className,omitempty"`
	// VisibilityModifier accepts a single marker reference (legacy) or a list of them.
	VisibilityModifier any `yaml:"visibilityModifier,omitempty" json:"visibilityModifier,omitempty" msgpack:"visibilityModifier,omitempty"`
}

// Visibility normalizes the visibility attribute into an ordered list of references.
// Values of an unexpected shape are kept in their printed form so that resolution
// can reject them by name.
func (a UpdateObjectAnnotation) Visibility() model.VisibilityOption {
	switch v := a.VisibilityModifier.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}

		return model.VisibilityOption{v}
	case []string:
		return model.VisibilityOption(v)
	case []any:
		out := make(model.VisibilityOption, 0, len(v))
		for _, item := range v {
			out = append(out, printed(item))
		}

		return out
	default:
		return model.VisibilityOption{printed(v)}
	}
}

// RawField is a field or constructor parameter.
type RawField struct {
	Name string `yaml:"name" json:"name" msgpack:"name"`
	// Type is the textual type mirror; ignored when GoType is set.
	Type        string          `yaml:"type,omitempty" json:"type,omitempty" msgpack:"type,omitempty"`
	Annotations []RawAnnotation `yaml:"annotations,omitempty" json:"annotations,omitempty" msgpack:"annotations,omitempty"`
	Default     string          `yaml:"default,omitempty" json:"default,omitempty" msgpack:"default,omitempty"`
	// GoType is set by the Go-source adapter.
	GoType types.Type `yaml:"-" json:"-" msgpack:"-"`
}

// Host returns the host type representation of the field.
func (f RawField) Host() typenorm.Host {
	if f.GoType != nil {
		return typenorm.Go{Type: f.GoType}
	}

	return typenorm.Text(f.Type)
}

// Annotation returns the first annotation matching name.
func (f RawField) Annotation(name string) (RawAnnotation, bool) {
	for _, a := range f.Annotations {
		if a.Is(name) {
			return a, true
		}
	}

	return RawAnnotation{}, false
}

// RawAnnotation is an annotation with its array-valued attribute, if any.
type RawAnnotation struct {
	Name   string   `yaml:"name" json:"name" msgpack:"name"`
	Values []string `yaml:"values,omitempty" json:"values,omitempty" msgpack:"values,omitempty"`
}

// Is reports whether the annotation denotes the qualified annotation name.
func (a RawAnnotation) Is(qualified string) bool {
	if a.Name == qualified {
		return true
	}

	return a.Name != "" && strings.HasSuffix(qualified, "."+a.Name)
}
