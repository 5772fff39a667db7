package codemodel

import (
	"update-object-generator/internal/common"
	"update-object-generator/internal/model"
)

// File is one generated compilation unit.
type File struct {
	// PackageName is the package the generated type lives in.
	PackageName string
	// PackagePath is the Go import path of that package; empty for JVM sources.
	PackagePath string
	// OutputDir is an optional directory hint relative to the output root.
	OutputDir string
	// Decl is the generated type.
	Decl *TypeDecl
}

// TypeRole tells which shape a TypeDecl has.
type TypeRole int

const (
	RoleUpdateObject TypeRole = iota
	RolePartialObject
)

// String returns a human-readable role name.
func (r TypeRole) String() string {
	switch r {
	case RoleUpdateObject:
		return "update object"
	case RolePartialObject:
		return "partial object"
	default:
		return common.UnknownStr
	}
}

// TypeDecl is a generated record type with its companion functions.
type TypeDecl struct {
	Name       string
	Role       TypeRole
	Visibility model.Visibility
	// Source is the record type the declaration derives from.
	Source model.SemanticType
	// Params are the constructor parameters, which are also the properties.
	Params []Param
	Funcs  []*FuncDecl
}

// Type returns the nominal type of the declaration itself.
func (d *TypeDecl) Type() model.SemanticType {
	return model.Nominal(d.Source.Package, d.Name)
}

// Func returns the first function with the given role.
func (d *TypeDecl) Func(role FuncRole) *FuncDecl {
	for _, f := range d.Funcs {
		if f.Role == role {
			return f
		}
	}

	return nil
}

// Param is a named, typed parameter with an optional default value.
type Param struct {
	Name    string
	Type    model.SemanticType
	Default Expr
}

// FuncRole tells which relation a FuncDecl implements.
type FuncRole int

const (
	// FuncMerge applies a generated object to the source record.
	FuncMerge FuncRole = iota
	// FuncExtract derives a generated object from the source record.
	FuncExtract
)

// String returns a human-readable role name.
func (r FuncRole) String() string {
	switch r {
	case FuncMerge:
		return "merge"
	case FuncExtract:
		return "extract"
	default:
		return common.UnknownStr
	}
}

// FuncDecl is a function attached to the source record type.
type FuncDecl struct {
	Name string
	Role FuncRole
	// Receiver is the source record type.
	Receiver model.SemanticType
	// Param is the generated object applied by a merge; nil for extractions.
	Param  *Param
	Result model.SemanticType
	Body   []Statement
}
