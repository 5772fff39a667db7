// Package kotlin prints the document model as Kotlin source: a data class with a
// companion object holding the merge and extraction extension functions.
package kotlin

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"update-object-generator/internal/codemodel"
	"update-object-generator/internal/common"
	"update-object-generator/internal/model"
)

// Header is the first line of every generated file.
const Header = "// Code generated by update-object-generator. DO NOT EDIT."

const indentUnit = "    "

// Printer renders codemodel files as Kotlin.
type Printer struct{}

// New creates a Kotlin printer.
func New() *Printer {
	return &Printer{}
}

// Language returns the printer's target language.
func (p *Printer) Language() string { return "kotlin" }

// FileExtension returns the extension of generated files.
func (p *Printer) FileExtension() string { return ".kt" }

// Path returns <package segments>/<Name>.kt, relative to the output root.
func (p *Printer) Path(file *codemodel.File) string {
	parts := append(common.PkgSegments(file.PackageName), file.Decl.Name+p.FileExtension())
	return filepath.Join(parts...)
}

// Print renders one file.
func (p *Printer) Print(file *codemodel.File) ([]byte, error) {
	w := &writer{
		decl:    file.Decl,
		pkg:     file.Decl.Source.Package,
		imports: map[string]string{},
	}

	w.resolveImports()

	w.line(0, Header)

	if file.PackageName != "" {
		w.line(0, "package "+escapeQualified(file.PackageName))
	}

	w.blank()

	if len(w.importList) > 0 {
		for _, imp := range w.importList {
			w.line(0, "import "+escapeQualified(imp))
		}

		w.blank()
	}

	if err := w.typeDecl(); err != nil {
		return nil, err
	}

	return []byte(w.b.String()), nil
}

type writer struct {
	b    strings.Builder
	decl *codemodel.TypeDecl
	// pkg is the qualifier of types declared next to the generated one.
	pkg string
	// imports maps qualified names to the spelling used in the file.
	imports    map[string]string
	importList []string
	param      string
}

func (w *writer) line(depth int, s string) {
	w.b.WriteString(strings.Repeat(indentUnit, depth))
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) blank() { w.b.WriteByte('\n') }

func (w *writer) typeDecl() error {
	d := w.decl
	vis := d.Visibility.String()

	w.line(0, fmt.Sprintf("%s data class %s(", vis, escape(d.Name)))

	for _, p := range d.Params {
		t, err := w.typeName(p.Type)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", d.Name, p.Name, err)
		}

		s := fmt.Sprintf("public val %s: %s", escape(p.Name), t)
		if p.Default != nil {
			s += " = " + w.expr(p.Default)
		}

		w.line(1, s+",")
	}

	w.line(0, ") {")
	w.line(1, vis+" companion object {")

	for i, fn := range d.Funcs {
		if i > 0 {
			w.blank()
		}

		if err := w.function(fn, vis); err != nil {
			return err
		}
	}

	w.line(1, "}")
	w.line(0, "}")

	return nil
}

func (w *writer) function(fn *codemodel.FuncDecl, vis string) error {
	recv, err := w.typeName(fn.Receiver)
	if err != nil {
		return err
	}

	result, err := w.typeName(fn.Result)
	if err != nil {
		return err
	}

	params := ""
	w.param = ""

	if fn.Param != nil {
		pt, err := w.typeName(fn.Param.Type)
		if err != nil {
			return err
		}

		w.param = escape(fn.Param.Name)
		params = w.param + ": " + pt
	}

	w.line(2, fmt.Sprintf("%s fun %s.%s(%s): %s {", vis, recv, escape(fn.Name), params, result))

	for _, stmt := range fn.Body {
		switch s := stmt.(type) {
		case *codemodel.Let:
			w.multiline(3, "val "+escape(s.Name)+" = ", s.Value)
		case *codemodel.Return:
			w.multiline(3, "return ", s.Value)
		default:
			return fmt.Errorf("unsupported statement %T", stmt)
		}
	}

	w.line(2, "}")

	return nil
}

// multiline writes prefix+expr, spreading construction arguments one per line.
func (w *writer) multiline(depth int, prefix string, e codemodel.Expr) {
	var (
		head string
		args []codemodel.Arg
	)

	switch e := e.(type) {
	case *codemodel.Construct:
		head, args = w.simpleName(e.Type), e.Args
	case *codemodel.CopyWith:
		head, args = "copy", e.Args
	default:
		w.line(depth, prefix+w.expr(e))
		return
	}

	if len(args) == 0 {
		w.line(depth, prefix+head+"()")
		return
	}

	w.line(depth, prefix+head+"(")

	for _, a := range args {
		w.line(depth+1, escape(a.Name)+" = "+w.expr(a.Value)+",")
	}

	w.line(depth, ")")
}

func (w *writer) expr(e codemodel.Expr) string {
	switch e := e.(type) {
	case *codemodel.Absent:
		return "null"
	case *codemodel.Literal:
		return e.Text
	case *codemodel.Local:
		return escape(e.Name)
	case *codemodel.FieldRef:
		if e.Owner == codemodel.OwnerParam {
			return w.param + "." + escape(e.Field)
		}

		return "this." + escape(e.Field)
	case *codemodel.Coalesce:
		return w.expr(e.Value) + " ?: " + w.expr(e.Fallback)
	case *codemodel.Wrap:
		return w.expr(e.Value)
	case *codemodel.AssertPresent:
		return fmt.Sprintf("checkNotNull(%s) { %s }", w.expr(e.Value), quote(e.Message))
	case *codemodel.Convert:
		op := "."
		if mayBeAbsent(e.Value) {
			op = "?."
		}

		return w.expr(e.Value) + op + conversion(e.To)
	case *codemodel.Construct:
		return w.simpleName(e.Type) + "(" + w.args(e.Args) + ")"
	case *codemodel.CopyWith:
		return "copy(" + w.args(e.Args) + ")"
	default:
		return fmt.Sprintf("/* unsupported %T */", e)
	}
}

func (w *writer) args(args []codemodel.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = escape(a.Name) + " = " + w.expr(a.Value)
	}

	return strings.Join(parts, ", ")
}

func mayBeAbsent(e codemodel.Expr) bool {
	switch e := e.(type) {
	case *codemodel.FieldRef:
		return e.Type.Nullable
	case *codemodel.Absent:
		return true
	default:
		return false
	}
}

func conversion(to model.SemanticType) string {
	switch to.Name {
	case model.GenericMutableSet:
		return "toMutableSet()"
	case model.GenericMutableMap:
		return "toMutableMap()"
	default:
		return "toMutableList()"
	}
}

// keywords are Kotlin's hard keywords; they need backticks wherever a name goes.
var keywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true, "else": true,
	"false": true, "for": true, "fun": true, "if": true, "in": true, "interface": true,
	"is": true, "null": true, "object": true, "package": true, "return": true, "super": true,
	"this": true, "throw": true, "true": true, "try": true, "typealias": true, "typeof": true,
	"val": true, "var": true, "when": true, "while": true,
}

// escape quotes a name with backticks when it is a keyword or not a plain
// Kotlin identifier.
func escape(name string) string {
	if keywords[name] || !common.IsIdentifier(name) {
		return "`" + name + "`"
	}

	return name
}

// escapeQualified escapes every segment of a dotted name.
func escapeQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = escape(p)
	}

	return strings.Join(parts, ".")
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// implicitPackages are imported by default in every Kotlin file.
var implicitPackages = map[string]bool{
	"kotlin":             true,
	"kotlin.collections": true,
}

// kotlinScalars maps canonical scalars onto Kotlin types.
var kotlinScalars = map[string]string{
	model.ScalarBoolean:      "Boolean",
	model.ScalarByte:         "Byte",
	model.ScalarShort:        "Short",
	model.ScalarInt:          "Int",
	model.ScalarLong:         "Long",
	model.ScalarFloat:        "Float",
	model.ScalarDouble:       "Double",
	model.ScalarChar:         "Char",
	model.ScalarString:       "String",
	model.ScalarAny:          "Any",
	model.ScalarUByte:        "UByte",
	model.ScalarUShort:       "UShort",
	model.ScalarUInt:         "UInt",
	model.ScalarULong:        "ULong",
	model.ScalarPlatformInt:  "Long",
	model.ScalarPlatformUInt: "ULong",
}

func (w *writer) typeName(t model.SemanticType) (string, error) {
	var name string

	switch t.Kind {
	case model.TypeKindScalar:
		s, ok := kotlinScalars[t.Name]
		if !ok {
			return "", fmt.Errorf("no Kotlin type for %s", t.Name)
		}

		name = s
	case model.TypeKindNominal, model.TypeKindGeneric:
		name = w.simpleName(t)
	default:
		return "", fmt.Errorf("no Kotlin type for %s", t)
	}

	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))

		for i, a := range t.Args {
			s, err := w.typeName(a)
			if err != nil {
				return "", err
			}

			args[i] = s
		}

		name += "<" + strings.Join(args, ", ") + ">"
	}

	if t.Nullable {
		name += "?"
	}

	return name, nil
}

// simpleName returns how a nominal or generic type is spelled in the file.
func (w *writer) simpleName(t model.SemanticType) string {
	if t.Package == "" || t.Package == w.pkg || implicitPackages[t.Package] {
		return escape(t.Name)
	}

	if s, ok := w.imports[t.QualifiedName()]; ok {
		return escape(s)
	}

	return escapeQualified(t.QualifiedName())
}

// resolveImports assigns import spellings to every foreign nominal type the file
// mentions. Simple-name clashes keep the first qualified name (in sorted order)
// imported and spell the others fully qualified.
func (w *writer) resolveImports() {
	seen := map[string]model.SemanticType{}

	var collect func(t model.SemanticType)

	collect = func(t model.SemanticType) {
		if (t.Kind == model.TypeKindNominal || t.Kind == model.TypeKindGeneric) && t.Package != "" && t.Package != w.pkg {
			seen[t.QualifiedName()] = t
		}

		for _, a := range t.Args {
			collect(a)
		}
	}

	collect(w.decl.Source)

	for _, p := range w.decl.Params {
		collect(p.Type)
	}

	qualified := make([]string, 0, len(seen))
	for q := range seen {
		qualified = append(qualified, q)
	}

	sort.Strings(qualified)

	taken := map[string]bool{w.decl.Name: true, w.decl.Source.Name: true}

	for _, q := range qualified {
		t := seen[q]
		if implicitPackages[t.Package] || taken[t.Name] {
			continue
		}

		taken[t.Name] = true
		w.imports[q] = t.Name
		w.importList = append(w.importList, q)
	}
}
