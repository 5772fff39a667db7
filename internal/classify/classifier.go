package classify

import (
	"errors"
	"fmt"
	"strings"

	"update-object-generator/internal/common"
	"update-object-generator/internal/descriptor"
	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/model"
	"update-object-generator/internal/typenorm"
)

// FieldClassifier builds FieldDescriptors from raw fields and annotations.
type FieldClassifier struct{}

// NewFieldClassifier creates a new FieldClassifier.
func NewFieldClassifier() *FieldClassifier {
	return &FieldClassifier{}
}

// ClassifyClass builds the ClassDescriptor of an annotated element.
// Benign findings (duplicate group tags) are added to diags as infos; class-scoped
// failures are returned as *diagnostic.ClassError.
func (c *FieldClassifier) ClassifyClass(raw *descriptor.RawClass, diags *diagnostic.Diagnostics) (*model.ClassDescriptor, error) {
	className := raw.QualifiedName()

	var fields, params []descriptor.RawField

	switch raw.EffectiveTarget() {
	case descriptor.ElementClass:
		fields, params = raw.Fields, raw.ConstructorParameters
	case descriptor.ElementConstructor:
		// The constructor's parameters are the fields.
		fields, params = raw.ConstructorParameters, namesOnly(raw.ConstructorParameters)
	default:
		return nil, diagnostic.NewClassError(className, "",
			fmt.Errorf("%w: %q", diagnostic.ErrUnsupportedAnnotationTarget, raw.Target))
	}

	classified, err := c.Classify(fields, params, func(field, group string) {
		diags.AddInfo(diagnostic.CodeDuplicatePartialGroupField,
			fmt.Sprintf("partial group %q listed more than once", group), className, field)
	})
	if err != nil {
		return nil, attribute(className, err)
	}

	explicit := strings.TrimSpace(raw.UpdateObject.ClassName)

	if err := checkNames(raw.Name, explicit, classified); err != nil {
		return nil, attribute(className, err)
	}

	return &model.ClassDescriptor{
		PackageName:           raw.Package,
		PackagePath:           raw.PackagePath,
		SourceSimpleName:      raw.Name,
		Fields:                classified,
		ExplicitGeneratedName: explicit,
		VisibilityOption:      raw.UpdateObject.Visibility(),
		OutputDir:             raw.OutputDir,
	}, nil
}

// checkNames rejects generated type names that are not identifiers or that
// would replace the source type.
func checkNames(source, explicit string, fields []model.FieldDescriptor) error {
	if explicit != "" {
		if err := checkName(source, explicit, "className"); err != nil {
			return err
		}
	}

	for _, f := range fields {
		for _, g := range f.PartialGroups {
			if err := checkName(source, g, "partial group"); err != nil {
				return &fieldError{field: f.Name, err: err}
			}
		}
	}

	return nil
}

func checkName(source, name, what string) error {
	switch {
	case !common.IsIdentifier(name):
		return fmt.Errorf("%w: %s %q is not an identifier", diagnostic.ErrInvalidGeneratedName, what, name)
	case name == source:
		return fmt.Errorf("%w: %s %q is the name of the source type", diagnostic.ErrInvalidGeneratedName, what, name)
	default:
		return nil
	}
}

// Classify returns the descriptors of the fields that are also constructor
// parameters, in field declaration order. onDuplicateGroup, if non-nil, is called
// for every group name a field lists more than once.
func (c *FieldClassifier) Classify(
	fields, params []descriptor.RawField,
	onDuplicateGroup func(field, group string),
) ([]model.FieldDescriptor, error) {
	byName := make(map[string]descriptor.RawField, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}

	seen := make(map[string]bool, len(fields))
	out := make([]model.FieldDescriptor, 0, len(fields))

	for _, f := range fields {
		param, ok := byName[f.Name]
		if !ok {
			continue
		}

		if seen[f.Name] {
			return nil, &fieldError{field: f.Name, err: diagnostic.ErrDuplicateField}
		}

		seen[f.Name] = true

		fd, err := c.classifyField(f, param, onDuplicateGroup)
		if err != nil {
			return nil, &fieldError{field: f.Name, err: err}
		}

		out = append(out, fd)
	}

	return out, nil
}

func (c *FieldClassifier) classifyField(
	f, param descriptor.RawField,
	onDuplicateGroup func(field, group string),
) (model.FieldDescriptor, error) {
	norm, err := typenorm.Normalize(f.Host())
	if err != nil {
		return model.FieldDescriptor{}, err
	}

	annotated := func(name string) (descriptor.RawAnnotation, bool) {
		if a, ok := f.Annotation(name); ok {
			return a, true
		}

		return param.Annotation(name)
	}

	_, required := annotated(descriptor.AnnotationRequired)

	fd := model.FieldDescriptor{
		Name:           f.Name,
		Type:           norm.Type.WithNullable(false),
		Nullable:       c.isNullable(norm, annotated),
		Required:       required,
		DefaultLiteral: defaultLiteral(f, param),
	}

	// Group names may be listed on the field and on the parameter.
	for _, src := range []descriptor.RawField{f, param} {
		for _, a := range src.Annotations {
			if !a.Is(descriptor.AnnotationPartOfPartialObjects) {
				continue
			}

			for _, g := range a.Values {
				g = strings.TrimSpace(g)
				if g == "" {
					continue
				}

				var added bool

				fd.PartialGroups, added = common.AppendUnique(fd.PartialGroups, g)
				if !added && onDuplicateGroup != nil {
					onDuplicateGroup(f.Name, g)
				}
			}
		}
	}

	return fd, nil
}

// isNullable applies the host nullability rules: primitives never admit the absent
// value, an explicit "?" always does, otherwise a NotNull marker decides.
func (c *FieldClassifier) isNullable(
	norm typenorm.Result,
	annotated func(string) (descriptor.RawAnnotation, bool),
) bool {
	if norm.Primitive {
		return false
	}

	if norm.Type.Nullable {
		return true
	}

	if _, ok := annotated(descriptor.AnnotationNullable); ok {
		return true
	}

	_, notNull := annotated(descriptor.AnnotationNotNull)

	return !notNull
}

func defaultLiteral(f, param descriptor.RawField) string {
	if f.Default != "" {
		return f.Default
	}

	return param.Default
}

// fieldError attributes a failure to a field until the class name is known.
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string { return e.field + ": " + e.err.Error() }

func (e *fieldError) Unwrap() error { return e.err }

func attribute(className string, err error) error {
	var fe *fieldError
	if errors.As(err, &fe) {
		return diagnostic.NewClassError(className, fe.field, fe.err)
	}

	return diagnostic.NewClassError(className, "", err)
}

// namesOnly strips everything but the names, so that a parameter list can serve
// as the candidate filter for itself without counting its annotations twice.
func namesOnly(params []descriptor.RawField) []descriptor.RawField {
	out := make([]descriptor.RawField, len(params))
	for i, p := range params {
		out[i] = descriptor.RawField{Name: p.Name}
	}

	return out
}
