// Package golang prints the document model as Go source. The generated type is a
// struct in the package of the source type; merge and extraction become value
// methods on the source type.
package golang

import (
	"bytes"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"update-object-generator/internal/codemodel"
	"update-object-generator/internal/common"
	"update-object-generator/internal/model"
)

// Header is the first line of every generated file.
const Header = "// Code generated by update-object-generator. DO NOT EDIT."

const (
	fileSuffix   = "_gen"
	defaultPkg   = "generated"
	paramName    = "u"
	altParamName = "in"
)

// Printer renders codemodel files as Go.
type Printer struct{}

// New creates a Go printer.
func New() *Printer {
	return &Printer{}
}

// Language returns the printer's target language.
func (p *Printer) Language() string { return "go" }

// FileExtension returns the extension of generated files.
func (p *Printer) FileExtension() string { return ".go" }

// Path returns <dir>/<snake_name>_gen.go, where dir is the class output directory
// or the package segments.
func (p *Printer) Path(file *codemodel.File) string {
	dir := file.OutputDir
	if dir == "" {
		dir = filepath.Join(common.PkgSegments(file.PackageName)...)
	}

	return filepath.Join(dir, common.SnakeCase(file.Decl.Name)+fileSuffix+p.FileExtension())
}

// Print renders one file.
func (p *Printer) Print(file *codemodel.File) ([]byte, error) {
	d := file.Decl

	w := &writer{
		decl:     d,
		name:     exported(d.Visibility, d.Name),
		receiver: receiverName(d.Source.Name),
	}

	f := jen.NewFilePathName(d.Source.Package, PackageName(file))
	f.HeaderComment(Header)

	if err := w.typeDecl(f); err != nil {
		return nil, err
	}

	for _, fn := range d.Funcs {
		f.Line()

		if err := w.function(f, fn); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, fn.Name, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Render(buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", d.Name, err)
	}

	return buf.Bytes(), nil
}

// PackageName returns the Go package clause of a generated file: the last
// segment of its package name.
func PackageName(file *codemodel.File) string {
	name, _ := common.Last(common.PkgSegments(file.PackageName))
	if !token.IsIdentifier(name) {
		return defaultPkg
	}

	return name
}

type writer struct {
	decl     *codemodel.TypeDecl
	name     string
	receiver string
}

func (w *writer) typeDecl(f *jen.File) error {
	d := w.decl

	fields := make([]jen.Code, 0, len(d.Params))

	for _, p := range d.Params {
		t, err := w.typeCode(p.Type)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", d.Name, p.Name, err)
		}

		fields = append(fields, jen.Id(p.Name).Add(t))
	}

	switch d.Role {
	case codemodel.RolePartialObject:
		f.Commentf("%s holds the %s fields of %s.", w.name, d.Name, d.Source.Name)
	default:
		f.Commentf("%s holds optional overrides for %s.", w.name, d.Source.Name)
	}

	f.Type().Id(w.name).Struct(fields...)

	return nil
}

func (w *writer) methodName(fn *codemodel.FuncDecl) string {
	var name string

	switch {
	case fn.Role == codemodel.FuncMerge && w.decl.Role == codemodel.RoleUpdateObject:
		name = "Update"
	case fn.Role == codemodel.FuncMerge:
		name = "UpdateFrom" + common.UpperFirst(w.decl.Name)
	default:
		name = "To" + common.UpperFirst(w.decl.Name)
	}

	return exported(w.decl.Visibility, name)
}

func (w *writer) function(f *jen.File, fn *codemodel.FuncDecl) error {
	fw := newFuncWriter(w, fn)

	recv, err := w.typeCode(fn.Receiver)
	if err != nil {
		return err
	}

	result, err := w.typeCode(fn.Result)
	if err != nil {
		return err
	}

	var params []jen.Code

	if fn.Param != nil {
		pt, err := w.typeCode(fn.Param.Type)
		if err != nil {
			return err
		}

		params = append(params, jen.Id(fw.param).Add(pt))
	}

	body := make([]jen.Code, 0, len(fn.Body))

	for _, stmt := range fn.Body {
		code, err := fw.statement(stmt)
		if err != nil {
			return err
		}

		body = append(body, code...)
	}

	name := w.methodName(fn)

	switch fn.Role {
	case codemodel.FuncMerge:
		f.Commentf("%s returns %s with the fields of %s applied.", name, w.receiver, fw.param)
	default:
		f.Commentf("%s copies %s into a %s.", name, w.receiver, w.name)
	}

	f.Func().Params(jen.Id(w.receiver).Add(recv)).Id(name).Params(params...).Add(result).Block(body...)

	return nil
}

// goScalars maps canonical scalars onto Go types.
var goScalars = map[string]string{
	model.ScalarBoolean:      "bool",
	model.ScalarByte:         "int8",
	model.ScalarShort:        "int16",
	model.ScalarInt:          "int32",
	model.ScalarLong:         "int64",
	model.ScalarFloat:        "float32",
	model.ScalarDouble:       "float64",
	model.ScalarChar:         "rune",
	model.ScalarString:       "string",
	model.ScalarAny:          "any",
	model.ScalarUByte:        "uint8",
	model.ScalarUShort:       "uint16",
	model.ScalarUInt:         "uint32",
	model.ScalarULong:        "uint64",
	model.ScalarPlatformInt:  "int",
	model.ScalarPlatformUInt: "uint",
	model.ScalarComplex64:    "complex64",
	model.ScalarComplex128:   "complex128",
}

// typeCode returns the Go spelling of t. Absent-capable types become pointers.
func (w *writer) typeCode(t model.SemanticType) (*jen.Statement, error) {
	code, err := w.baseType(t)
	if err != nil {
		return nil, err
	}

	if t.Nullable {
		return jen.Op("*").Add(code), nil
	}

	return code, nil
}

func (w *writer) baseType(t model.SemanticType) (*jen.Statement, error) {
	switch t.Kind {
	case model.TypeKindScalar:
		s, ok := goScalars[t.Name]
		if !ok {
			return nil, fmt.Errorf("no Go type for %s", t.Name)
		}

		return jen.Id(s), nil
	case model.TypeKindNominal, model.TypeKindGeneric:
	default:
		return nil, fmt.Errorf("no Go type for %s", t)
	}

	args := make([]jen.Code, len(t.Args))

	for i, a := range t.Args {
		code, err := w.typeCode(a)
		if err != nil {
			return nil, err
		}

		args[i] = code
	}

	if t.IsCanonicalCollection() {
		return collection(t.Name, args)
	}

	var code *jen.Statement

	switch {
	case t.Package == w.decl.Source.Package && t.Name == w.decl.Name:
		code = jen.Id(w.name)
	case t.Package == "":
		code = jen.Id(t.Name)
	default:
		code = jen.Qual(t.Package, t.Name)
	}

	if len(args) > 0 {
		code = code.Types(args...)
	}

	return code, nil
}

func collection(name string, args []jen.Code) (*jen.Statement, error) {
	switch name {
	case model.GenericList, model.GenericMutableList,
		model.GenericCollection, model.GenericMutableCollection,
		model.GenericArray:
		return jen.Index().Add(args[0]), nil
	case model.GenericSet, model.GenericMutableSet:
		return jen.Map(args[0]).Struct(), nil
	case model.GenericMap, model.GenericMutableMap:
		return jen.Map(args[0]).Add(args[1]), nil
	case model.GenericIterator, model.GenericMutableIterator:
		return jen.Qual("iter", "Seq").Types(args[0]), nil
	default:
		return nil, fmt.Errorf("no Go type for collection %s", name)
	}
}

// funcWriter renders one function body. Locals of the document model are
// renamed to Go identifiers that never shadow the receiver, the parameter,
// keywords or the predeclared identifiers the body relies on.
type funcWriter struct {
	w        *writer
	param    string
	taken    map[string]bool
	locals   map[string]string
	nullable map[string]bool
}

// predeclared identifiers a local must not shadow.
var predeclared = []string{
	"any", "append", "bool", "byte", "cap", "copy", "delete", "error", "false",
	"int", "iota", "len", "make", "new", "nil", "panic", "rune", "string", "true",
}

func newFuncWriter(w *writer, fn *codemodel.FuncDecl) *funcWriter {
	fw := &funcWriter{
		w:        w,
		param:    paramName,
		taken:    map[string]bool{w.receiver: true},
		locals:   map[string]string{},
		nullable: map[string]bool{},
	}

	for _, id := range predeclared {
		fw.taken[id] = true
	}

	if fw.param == w.receiver {
		fw.param = altParamName
	}

	fw.taken[fw.param] = true

	return fw
}

func (fw *funcWriter) declare(name string, nullable bool) string {
	base := common.LowerFirst(name)
	if token.IsKeyword(base) || !token.IsIdentifier(base) {
		base += "Value"
	}

	goName := common.UniqueName(base, fw.taken)
	fw.taken[goName] = true
	fw.locals[name] = goName
	fw.nullable[goName] = nullable

	return goName
}

func (fw *funcWriter) statement(stmt codemodel.Statement) ([]jen.Code, error) {
	switch s := stmt.(type) {
	case *codemodel.Let:
		return fw.let(s)
	case *codemodel.Return:
		v, _, pre, err := fw.value(s.Value)
		if err != nil {
			return nil, err
		}

		return append(pre, jen.Return(v)), nil
	default:
		return nil, fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (fw *funcWriter) let(s *codemodel.Let) ([]jen.Code, error) {
	switch v := s.Value.(type) {
	case *codemodel.Coalesce:
		return fw.coalesce(s.Name, v)
	case *codemodel.CopyWith:
		return fw.copyOf(s.Name, v.Args)
	case *codemodel.Construct:
		if v.Type.Equal(fw.w.decl.Source) {
			return fw.copyOf(s.Name, v.Args)
		}

		return fw.literal(s.Name, v)
	}

	code, nullable, pre, err := fw.value(s.Value)
	if err != nil {
		return nil, err
	}

	name := fw.declare(s.Name, nullable)

	return append(pre, jen.Id(name).Op(":=").Add(code)), nil
}

// coalesce starts from the fallback and takes the value when it is present.
func (fw *funcWriter) coalesce(local string, c *codemodel.Coalesce) ([]jen.Code, error) {
	fallback, fbNullable, pre, err := fw.value(c.Fallback)
	if err != nil {
		return nil, err
	}

	value, valNullable, valPre, err := fw.value(c.Value)
	if err != nil {
		return nil, err
	}

	pre = append(pre, valPre...)

	if !valNullable {
		name := fw.declare(local, false)
		return append(pre, jen.Id(name).Op(":=").Add(value)), nil
	}

	name := fw.declare(local, fbNullable)

	return append(pre,
		jen.Id(name).Op(":=").Add(fallback),
		jen.If(value.Clone().Op("!=").Nil()).Block(
			jen.Id(name).Op("=").Add(adapt(value, true, fbNullable)),
		),
	), nil
}

// copyOf copies the receiver and overwrites the given fields, leaving every other
// field of the source as it was.
func (fw *funcWriter) copyOf(local string, args []codemodel.Arg) ([]jen.Code, error) {
	name := fw.declare(local, false)
	out := []jen.Code{jen.Id(name).Op(":=").Id(fw.w.receiver)}

	for _, a := range args {
		v, _, pre, err := fw.value(a.Value)
		if err != nil {
			return nil, err
		}

		out = append(out, pre...)
		out = append(out, jen.Id(name).Dot(a.Name).Op("=").Add(v))
	}

	return out, nil
}

// literal builds a keyed composite literal of the generated type.
func (fw *funcWriter) literal(local string, c *codemodel.Construct) ([]jen.Code, error) {
	params := make(map[string]codemodel.Param, len(fw.w.decl.Params))
	for _, p := range fw.w.decl.Params {
		params[p.Name] = p
	}

	var pre []jen.Code

	items := make([]jen.Code, 0, len(c.Args))

	for _, a := range c.Args {
		p, ok := params[a.Name]
		if !ok {
			return nil, fmt.Errorf("%s has no field %s", fw.w.decl.Name, a.Name)
		}

		v, nullable, vPre, err := fw.value(a.Value)
		if err != nil {
			return nil, err
		}

		pre = append(pre, vPre...)
		items = append(items, jen.Id(a.Name).Op(":").Add(adapt(v, nullable, p.Type.Nullable)))
	}

	t, err := fw.w.baseType(c.Type)
	if err != nil {
		return nil, err
	}

	name := fw.declare(local, false)
	lit := t.Custom(jen.Options{Open: "{", Close: "}", Separator: ",", Multi: true}, items...)

	return append(pre, jen.Id(name).Op(":=").Add(lit)), nil
}

// value renders an expression and reports whether it may be nil. Checks the
// expression needs beforehand are returned as pre statements.
func (fw *funcWriter) value(e codemodel.Expr) (*jen.Statement, bool, []jen.Code, error) {
	switch e := e.(type) {
	case *codemodel.Absent:
		return jen.Nil(), true, nil, nil
	case *codemodel.Literal:
		return jen.Op(e.Text), false, nil, nil
	case *codemodel.Local:
		name, ok := fw.locals[e.Name]
		if !ok {
			return nil, false, nil, fmt.Errorf("undeclared local %s", e.Name)
		}

		return jen.Id(name), fw.nullable[name], nil, nil
	case *codemodel.FieldRef:
		owner := fw.w.receiver
		if e.Owner == codemodel.OwnerParam {
			owner = fw.param
		}

		return jen.Id(owner).Dot(e.Field), e.Type.Nullable, nil, nil
	case *codemodel.Wrap:
		v, nullable, pre, err := fw.value(e.Value)
		if err != nil {
			return nil, false, nil, err
		}

		return adapt(v, nullable, true), true, pre, nil
	case *codemodel.AssertPresent:
		v, nullable, pre, err := fw.value(e.Value)
		if err != nil || !nullable {
			return v, false, pre, err
		}

		check := jen.If(v.Clone().Op("==").Nil()).Block(jen.Panic(jen.Lit(e.Message)))

		return jen.Op("*").Add(v), false, append(pre, check), nil
	case *codemodel.Convert:
		// Mutable and read-only collections share one Go type.
		return fw.value(e.Value)
	default:
		return nil, false, nil, fmt.Errorf("unsupported expression %T", e)
	}
}

// adapt converts an addressable value between its plain and pointer forms.
func adapt(v *jen.Statement, from, to bool) *jen.Statement {
	switch {
	case from == to:
		return v
	case to:
		return jen.Op("&").Add(v)
	default:
		return jen.Op("*").Add(v)
	}
}

// exported applies Go's export rule to a generated identifier.
func exported(vis model.Visibility, name string) string {
	if vis == model.VisibilityPublic {
		return common.UpperFirst(name)
	}

	return common.LowerFirst(name)
}

func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "s"
	}

	return strings.ToLower(string(r))
}
