package model

// ClassDescriptor is the canonical description of one annotated record type.
type ClassDescriptor struct {
	// PackageName is the dotted (JVM) or short (Go) package name of the source type.
	PackageName string
	// PackagePath is the Go import path of the source package; empty for JVM sources.
	PackagePath string
	// SourceSimpleName is the unqualified name of the source type.
	SourceSimpleName string
	// Fields are the classified fields in declaration order.
	Fields []FieldDescriptor
	// ExplicitGeneratedName overrides the update-object name when non-empty.
	ExplicitGeneratedName string
	// VisibilityOption is the raw visibility attribute, resolved later.
	VisibilityOption VisibilityOption
	// OutputDir is an optional directory hint supplied by the adapter.
	OutputDir string
}

// UpdateObjectName returns the explicit generated name, or "<Source>UpdateObject".
func (c *ClassDescriptor) UpdateObjectName() string {
	if c.ExplicitGeneratedName != "" {
		return c.ExplicitGeneratedName
	}

	return c.SourceSimpleName + "UpdateObject"
}

// SourceType returns the nominal type of the source record.
func (c *ClassDescriptor) SourceType() SemanticType {
	return Nominal(c.qualifier(), c.SourceSimpleName)
}

// GeneratedType returns the nominal type of a generated declaration living next to the source.
func (c *ClassDescriptor) GeneratedType(name string) SemanticType {
	return Nominal(c.qualifier(), name)
}

// Field returns the field with the given name.
func (c *ClassDescriptor) Field(name string) (FieldDescriptor, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return FieldDescriptor{}, false
}

func (c *ClassDescriptor) qualifier() string {
	if c.PackagePath != "" {
		return c.PackagePath
	}

	return c.PackageName
}

// FieldDescriptor is one classified field of a record.
type FieldDescriptor struct {
	Name string
	// Type is the canonical type; its top-level Nullable is ignored in favour of Nullable.
	Type     SemanticType
	Nullable bool
	Required bool
	// PartialGroups is an ordered set of group names.
	PartialGroups []string
	// DefaultLiteral is source text of a default value; empty when absent.
	DefaultLiteral string
}

// SourceType returns the field type as declared on the source record.
func (f FieldDescriptor) SourceType() SemanticType {
	return f.Type.WithNullable(f.Nullable)
}

// UpdateType returns the field type as carried by the update object:
// non-nullable when required, nullable otherwise.
func (f FieldDescriptor) UpdateType() SemanticType {
	return f.Type.WithNullable(!f.Required)
}

// InGroup reports whether the field is tagged with the given partial group.
func (f FieldDescriptor) InGroup(name string) bool {
	for _, g := range f.PartialGroups {
		if g == name {
			return true
		}
	}

	return false
}

// PartialGroup is a named subset of fields materialized as a partial object.
type PartialGroup struct {
	Name   string
	Fields []FieldDescriptor
}
