// Package emit builds the document model of the generated declarations of one
// class: its update object and one partial object per group.
package emit

import (
	"update-object-generator/internal/codemodel"
	"update-object-generator/internal/common"
	"update-object-generator/internal/model"
	"update-object-generator/internal/typenorm"
)

// Function and local names used in the document model.
const (
	MergeFuncName    = "update"
	paramBaseName    = "updateObject"
	resultBaseName   = "result"
	extractPrefix    = "to"
	mapToPrefix      = "mapTo"
	notNullMsgSuffix = " must not be null"
)

// Options tune the emitted model.
type Options struct {
	// MutableCollections makes update-object collection properties mutable.
	MutableCollections bool
}

// Emitter turns classified descriptors into codemodel files. It holds no state
// besides its options and is safe for concurrent use.
type Emitter struct {
	opts Options
}

// New creates an Emitter.
func New(opts Options) *Emitter {
	return &Emitter{opts: opts}
}

// Emit returns the update-object file followed by one file per partial group,
// in group order.
func (e *Emitter) Emit(class *model.ClassDescriptor, vis model.Visibility, groups []model.PartialGroup) []*codemodel.File {
	files := make([]*codemodel.File, 0, 1+len(groups))
	files = append(files, e.UpdateObject(class, vis))

	for _, g := range groups {
		files = append(files, e.PartialObject(class, vis, g))
	}

	return files
}

// UpdateObject emits the update-object type of a class with its merge and
// extraction functions.
func (e *Emitter) UpdateObject(class *model.ClassDescriptor, vis model.Visibility) *codemodel.File {
	name := class.UpdateObjectName()
	names := newScope(class.Fields)

	decl := &codemodel.TypeDecl{
		Name:       name,
		Role:       codemodel.RoleUpdateObject,
		Visibility: vis,
		Source:     class.SourceType(),
		Params:     make([]codemodel.Param, 0, len(class.Fields)),
	}

	for _, f := range class.Fields {
		decl.Params = append(decl.Params, codemodel.Param{
			Name:    f.Name,
			Type:    e.updateType(f),
			Default: updateDefault(f),
		})
	}

	decl.Funcs = []*codemodel.FuncDecl{
		e.updateMerge(class, decl, names),
		e.updateExtract(class, decl, names),
	}

	return newFile(class, decl)
}

// PartialObject emits the partial-object type of one group with its merge and
// extraction functions.
func (e *Emitter) PartialObject(class *model.ClassDescriptor, vis model.Visibility, g model.PartialGroup) *codemodel.File {
	names := newScope(g.Fields)

	decl := &codemodel.TypeDecl{
		Name:       g.Name,
		Role:       codemodel.RolePartialObject,
		Visibility: vis,
		Source:     class.SourceType(),
		Params:     make([]codemodel.Param, 0, len(g.Fields)),
	}

	for _, f := range g.Fields {
		p := codemodel.Param{Name: f.Name, Type: f.SourceType()}
		if f.Nullable {
			p.Default = &codemodel.Absent{}
		}

		decl.Params = append(decl.Params, p)
	}

	decl.Funcs = []*codemodel.FuncDecl{
		partialMerge(g, decl, names),
		partialExtract(g, decl, names),
	}

	return newFile(class, decl)
}

func (e *Emitter) updateType(f model.FieldDescriptor) model.SemanticType {
	t := f.UpdateType()
	if e.opts.MutableCollections && convertible[t.Name] && t.IsCanonicalCollection() {
		t = typenorm.AsMutable(t)
	}

	return t
}

// convertible lists the collections whose extraction can copy into a mutable
// counterpart.
var convertible = map[string]bool{
	model.GenericList:       true,
	model.GenericSet:        true,
	model.GenericMap:        true,
	model.GenericCollection: true,
}

func updateDefault(f model.FieldDescriptor) codemodel.Expr {
	switch {
	case !f.Required:
		return &codemodel.Absent{}
	case f.DefaultLiteral != "":
		return &codemodel.Literal{Text: f.DefaultLiteral}
	default:
		return nil
	}
}

// updateMerge: each field takes the override when present, the current value
// otherwise; required overrides always win.
func (e *Emitter) updateMerge(class *model.ClassDescriptor, decl *codemodel.TypeDecl, names scope) *codemodel.FuncDecl {
	param := &codemodel.Param{Name: names.param, Type: decl.Type()}
	body := make([]codemodel.Statement, 0, len(class.Fields)+2)
	args := make([]codemodel.Arg, 0, len(class.Fields))

	for i, f := range class.Fields {
		override := &codemodel.FieldRef{Owner: codemodel.OwnerParam, Field: f.Name, Type: decl.Params[i].Type}

		var value codemodel.Expr = override

		switch {
		case !f.Required:
			value = &codemodel.Coalesce{
				Value:    override,
				Fallback: &codemodel.FieldRef{Owner: codemodel.OwnerReceiver, Field: f.Name, Type: f.SourceType()},
			}
		case f.Nullable:
			value = &codemodel.Wrap{Value: override}
		}

		body = append(body, &codemodel.Let{Name: f.Name, Value: value})
		args = append(args, codemodel.Arg{Name: f.Name, Value: &codemodel.Local{Name: f.Name}})
	}

	body = append(body,
		&codemodel.Let{Name: names.result, Value: &codemodel.Construct{Type: decl.Source, Args: args}},
		&codemodel.Return{Value: &codemodel.Local{Name: names.result}},
	)

	return &codemodel.FuncDecl{
		Name:     MergeFuncName,
		Role:     codemodel.FuncMerge,
		Receiver: decl.Source,
		Param:    param,
		Result:   decl.Source,
		Body:     body,
	}
}

// updateExtract copies every field; required fields the source may leave absent
// are asserted present.
func (e *Emitter) updateExtract(class *model.ClassDescriptor, decl *codemodel.TypeDecl, names scope) *codemodel.FuncDecl {
	args := make([]codemodel.Arg, 0, len(class.Fields))

	for i, f := range class.Fields {
		var value codemodel.Expr = &codemodel.FieldRef{Owner: codemodel.OwnerReceiver, Field: f.Name, Type: f.SourceType()}

		if f.Required && f.Nullable {
			value = &codemodel.AssertPresent{Value: value, Message: f.Name + notNullMsgSuffix}
		}

		if target := decl.Params[i].Type; target.Name != f.Type.Name {
			value = &codemodel.Convert{Value: value, To: target}
		}

		args = append(args, codemodel.Arg{Name: f.Name, Value: value})
	}

	return &codemodel.FuncDecl{
		Name:     extractPrefix + common.UpperFirst(decl.Name),
		Role:     codemodel.FuncExtract,
		Receiver: decl.Source,
		Result:   decl.Type(),
		Body: []codemodel.Statement{
			&codemodel.Let{Name: names.result, Value: &codemodel.Construct{Type: decl.Type(), Args: args}},
			&codemodel.Return{Value: &codemodel.Local{Name: names.result}},
		},
	}
}

// partialMerge overwrites every group field unconditionally.
func partialMerge(g model.PartialGroup, decl *codemodel.TypeDecl, names scope) *codemodel.FuncDecl {
	body := make([]codemodel.Statement, 0, len(g.Fields)+2)
	args := make([]codemodel.Arg, 0, len(g.Fields))

	for _, f := range g.Fields {
		body = append(body, &codemodel.Let{
			Name:  f.Name,
			Value: &codemodel.FieldRef{Owner: codemodel.OwnerParam, Field: f.Name, Type: f.SourceType()},
		})
		args = append(args, codemodel.Arg{Name: f.Name, Value: &codemodel.Local{Name: f.Name}})
	}

	body = append(body,
		&codemodel.Let{Name: names.result, Value: &codemodel.CopyWith{Args: args}},
		&codemodel.Return{Value: &codemodel.Local{Name: names.result}},
	)

	return &codemodel.FuncDecl{
		Name:     MergeFuncName,
		Role:     codemodel.FuncMerge,
		Receiver: decl.Source,
		Param:    &codemodel.Param{Name: names.param, Type: decl.Type()},
		Result:   decl.Source,
		Body:     body,
	}
}

func partialExtract(g model.PartialGroup, decl *codemodel.TypeDecl, names scope) *codemodel.FuncDecl {
	args := make([]codemodel.Arg, 0, len(g.Fields))
	for _, f := range g.Fields {
		args = append(args, codemodel.Arg{
			Name:  f.Name,
			Value: &codemodel.FieldRef{Owner: codemodel.OwnerReceiver, Field: f.Name, Type: f.SourceType()},
		})
	}

	return &codemodel.FuncDecl{
		Name:     mapToPrefix + common.UpperFirst(decl.Name),
		Role:     codemodel.FuncExtract,
		Receiver: decl.Source,
		Result:   decl.Type(),
		Body: []codemodel.Statement{
			&codemodel.Let{Name: names.result, Value: &codemodel.Construct{Type: decl.Type(), Args: args}},
			&codemodel.Return{Value: &codemodel.Local{Name: names.result}},
		},
	}
}

// scope holds the parameter and result names chosen so that they never shadow a field local.
type scope struct {
	param  string
	result string
}

func newScope(fields []model.FieldDescriptor) scope {
	taken := make(map[string]bool, len(fields)+1)
	for _, f := range fields {
		taken[f.Name] = true
	}

	param := common.UniqueName(paramBaseName, taken)
	taken[param] = true

	return scope{param: param, result: common.UniqueName(resultBaseName, taken)}
}

func newFile(class *model.ClassDescriptor, decl *codemodel.TypeDecl) *codemodel.File {
	return &codemodel.File{
		PackageName: class.PackageName,
		PackagePath: class.PackagePath,
		OutputDir:   class.OutputDir,
		Decl:        decl,
	}
}
