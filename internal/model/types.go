package model

import (
	"strings"

	"update-object-generator/internal/common"
)

// TypeKind classifies a SemanticType.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindScalar
	TypeKindNominal
	TypeKindGeneric
)

// String returns a human-readable kind name.
func (k TypeKind) String() string {
	switch k {
	case TypeKindUnknown:
		return "unknown"
	case TypeKindScalar:
		return "scalar"
	case TypeKindNominal:
		return "nominal"
	case TypeKindGeneric:
		return "generic"
	default:
		return common.UnknownStr
	}
}

// Canonical scalar names.
const (
	ScalarBoolean = "Boolean"
	ScalarByte    = "Byte"
	ScalarShort   = "Short"
	ScalarInt     = "Int"
	ScalarLong    = "Long"
	ScalarFloat   = "Float"
	ScalarDouble  = "Double"
	ScalarChar    = "Char"
	ScalarString  = "String"
	ScalarAny     = "Any"

	// Unsigned and platform-sized widths only Go sources produce.
	ScalarUByte        = "UByte"
	ScalarUShort       = "UShort"
	ScalarUInt         = "UInt"
	ScalarULong        = "ULong"
	ScalarPlatformInt  = "PlatformInt"
	ScalarPlatformUInt = "PlatformUInt"
	ScalarComplex64    = "Complex64"
	ScalarComplex128   = "Complex128"
)

// Canonical generic names. Generic types with an empty Package and one of these
// names are the canonical collections; everything else is a user generic.
const (
	GenericList              = "List"
	GenericSet               = "Set"
	GenericMap               = "Map"
	GenericIterator          = "Iterator"
	GenericCollection        = "Collection"
	GenericArray             = "Array"
	GenericMutableList       = "MutableList"
	GenericMutableSet        = "MutableSet"
	GenericMutableMap        = "MutableMap"
	GenericMutableIterator   = "MutableIterator"
	GenericMutableCollection = "MutableCollection"
)

// SemanticType is the canonical form of a field type.
//
// Scalars carry only Name. Nominal types carry Package and Name. Generic types
// additionally carry Args. Nullable marks the type as admitting the absent value;
// it is meaningful on type arguments as well as at the top level.
type SemanticType struct {
	Kind     TypeKind
	Package  string
	Name     string
	Args     []SemanticType
	Nullable bool
}

// Scalar returns the canonical scalar type with the given name.
func Scalar(name string) SemanticType {
	return SemanticType{Kind: TypeKindScalar, Name: name}
}

// Nominal returns a declared type without type arguments.
func Nominal(pkg, name string) SemanticType {
	return SemanticType{Kind: TypeKindNominal, Package: pkg, Name: name}
}

// Generic returns a parameterized type. An empty pkg denotes a canonical collection.
func Generic(pkg, name string, args ...SemanticType) SemanticType {
	return SemanticType{Kind: TypeKindGeneric, Package: pkg, Name: name, Args: args}
}

// WithNullable returns a copy of t with the top-level nullability set to nullable.
func (t SemanticType) WithNullable(nullable bool) SemanticType {
	t.Nullable = nullable
	return t
}

// IsCanonicalCollection reports whether t is one of the canonical generic collections.
func (t SemanticType) IsCanonicalCollection() bool {
	return t.Kind == TypeKindGeneric && t.Package == ""
}

// QualifiedName returns Package.Name, or Name when the package is empty.
func (t SemanticType) QualifiedName() string {
	if t.Package == "" {
		return t.Name
	}

	return t.Package + "." + t.Name
}

// Equal reports whether t and o denote the same type, including nullability markers.
func (t SemanticType) Equal(o SemanticType) bool {
	if t.Kind != o.Kind || t.Package != o.Package || t.Name != o.Name ||
		t.Nullable != o.Nullable || len(t.Args) != len(o.Args) {
		return false
	}

	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}

	return true
}

// String returns a readable, host-neutral rendering such as "List<String?>?".
func (t SemanticType) String() string {
	var b strings.Builder

	b.WriteString(t.QualifiedName())

	if len(t.Args) > 0 {
		b.WriteByte('<')

		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(a.String())
		}

		b.WriteByte('>')
	}

	if t.Nullable {
		b.WriteByte('?')
	}

	return b.String()
}
