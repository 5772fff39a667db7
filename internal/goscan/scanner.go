// Package goscan finds structs carrying the update-object marker in Go packages
// and describes them as raw classes for the generation driver.
package goscan

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"update-object-generator/internal/common"
	"update-object-generator/internal/descriptor"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Marker is the comment directive that selects a struct.
// Options follow after a colon: +updateobject:generate:className=X,visibility=internal
const Marker = "+updateobject:generate"

// Struct tag keys and values.
const (
	tagUpdate   = "update"
	tagPartial  = "partial"
	tagRequired = "required"
	tagSkip     = "-"
)

// Element kinds the classifier rejects.
const (
	targetGeneric   descriptor.ElementKind = "generic type"
	targetNonStruct descriptor.ElementKind = "type"
)

// Scanner loads Go packages relative to Dir.
type Scanner struct {
	Dir string
}

// NewScanner creates a Scanner rooted at dir.
func NewScanner(dir string) *Scanner {
	return &Scanner{Dir: dir}
}

// Scan loads the packages matching patterns (e.g. "./store", "example.com/app/...")
// and returns one RawClass per marked type, ordered by package path, then
// source position.
func (s *Scanner) Scan(patterns ...string) ([]descriptor.RawClass, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  s.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	root, err := filepath.Abs(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", s.Dir, err)
	}

	var classes []descriptor.RawClass

	for _, pkg := range pkgs {
		found, err := s.scanPackage(pkg, root)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		classes = append(classes, found...)
	}

	return classes, nil
}

func (s *Scanner) scanPackage(pkg *packages.Package, root string) ([]descriptor.RawClass, error) {
	var classes []descriptor.RawClass

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				opts, marked, err := findMarker(doc)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", pkg.Fset.Position(ts.Pos()), err)
				}

				if !marked {
					continue
				}

				class, err := s.describe(pkg, ts, opts, root)
				if err != nil {
					return nil, err
				}

				classes = append(classes, class)
			}
		}
	}

	return classes, nil
}

// markerOptions are the options of one marker line.
type markerOptions struct {
	className  string
	visibility []string
}

func findMarker(doc *ast.CommentGroup) (markerOptions, bool, error) {
	if doc == nil {
		return markerOptions{}, false, nil
	}

	for _, c := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))

		rest, ok := strings.CutPrefix(text, Marker)
		if !ok {
			continue
		}

		opts, err := parseOptions(rest)

		return opts, true, err
	}

	return markerOptions{}, false, nil
}

func parseOptions(s string) (markerOptions, error) {
	var opts markerOptions

	s = strings.TrimSpace(s)
	if s == "" {
		return opts, nil
	}

	rest, ok := strings.CutPrefix(s, ":")
	if !ok {
		return opts, fmt.Errorf("malformed marker %q", Marker+s)
	}

	for _, kv := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if !ok {
			return opts, fmt.Errorf("marker option %q is not key=value", kv)
		}

		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "className":
			opts.className = value
		case "visibility":
			// Marker names are capitalized: internal -> VisibilityModifier.Internal.
			opts.visibility = append(opts.visibility, "VisibilityModifier."+common.UpperFirst(strings.ToLower(value)))
		default:
			return opts, fmt.Errorf("unknown marker option %q", key)
		}
	}

	return opts, nil
}

func (s *Scanner) describe(pkg *packages.Package, ts *ast.TypeSpec, opts markerOptions, root string) (descriptor.RawClass, error) {
	class := descriptor.RawClass{
		Package:     pkg.Name,
		PackagePath: pkg.PkgPath,
		Name:        ts.Name.Name,
		Target:      descriptor.ElementClass,
		UpdateObject: descriptor.UpdateObjectAnnotation{
			ClassName: opts.className,
		},
	}

	if len(opts.visibility) > 0 {
		class.UpdateObject.VisibilityModifier = opts.visibility
	}

	pos := pkg.Fset.Position(ts.Pos())
	if rel, err := filepath.Rel(root, filepath.Dir(pos.Filename)); err == nil && !strings.HasPrefix(rel, "..") {
		class.OutputDir = rel
	}

	if ts.TypeParams != nil && ts.TypeParams.NumFields() > 0 {
		class.Target = targetGeneric
		return class, nil
	}

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return class, fmt.Errorf("%s: no type information for %s", pos, ts.Name.Name)
	}

	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		class.Target = targetNonStruct
		return class, nil
	}

	qualifier := types.RelativeTo(pkg.Types)

	for i := range st.NumFields() {
		f := st.Field(i)
		if f.Embedded() || f.Name() == "_" {
			continue
		}

		tag := reflect.StructTag(st.Tag(i))

		update := tag.Get(tagUpdate)
		if update == tagSkip {
			continue
		}

		field := descriptor.RawField{
			Name:   f.Name(),
			Type:   types.TypeString(f.Type(), qualifier),
			GoType: f.Type(),
		}

		if hasOption(update, tagRequired) {
			field.Annotations = append(field.Annotations, descriptor.RawAnnotation{Name: descriptor.AnnotationRequired})
		}

		if groups := tag.Get(tagPartial); groups != "" {
			field.Annotations = append(field.Annotations, descriptor.RawAnnotation{
				Name:   descriptor.AnnotationPartOfPartialObjects,
				Values: strings.Split(groups, ","),
			})
		}

		if _, ptr := types.Unalias(f.Type()).(*types.Pointer); !ptr {
			field.Annotations = append(field.Annotations, descriptor.RawAnnotation{Name: descriptor.AnnotationNotNull})
		}

		class.Fields = append(class.Fields, field)
		// A Go struct is built from all of its fields.
		class.ConstructorParameters = append(class.ConstructorParameters, descriptor.RawField{Name: f.Name()})
	}

	return class, nil
}

func hasOption(tag, option string) bool {
	for _, o := range strings.Split(tag, ",") {
		if strings.TrimSpace(o) == option {
			return true
		}
	}

	return false
}
