package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"update-object-generator/internal/descriptor"
	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/model"
)

func ann(name string, values ...string) descriptor.RawAnnotation {
	return descriptor.RawAnnotation{Name: name, Values: values}
}

func personClass() *descriptor.RawClass {
	return &descriptor.RawClass{
		Package: "com.example",
		Name:    "Person",
		ConstructorParameters: []descriptor.RawField{
			{Name: "id", Annotations: []descriptor.RawAnnotation{ann("RequiredForUpdateObject")}},
			{Name: "name"},
			{Name: "age"},
		},
		Fields: []descriptor.RawField{
			{
				Name:        "id",
				Type:        "java.lang.String",
				Annotations: []descriptor.RawAnnotation{ann(descriptor.AnnotationNotNull), ann("PartOfPartialObjects", "Summary")},
			},
			{
				Name:        "name",
				Type:        "java.lang.String",
				Annotations: []descriptor.RawAnnotation{ann("PartOfPartialObjects", "Summary")},
			},
			{Name: "age", Type: "int"},
			{Name: "cachedHash", Type: "int"},
		},
	}
}

func TestFieldClassifier_ClassifyClass(t *testing.T) {
	var diags diagnostic.Diagnostics

	got, err := NewFieldClassifier().ClassifyClass(personClass(), &diags)
	require.NoError(t, err)

	want := &model.ClassDescriptor{
		PackageName:      "com.example",
		SourceSimpleName: "Person",
		Fields: []model.FieldDescriptor{
			{Name: "id", Type: model.Scalar(model.ScalarString), Required: true, PartialGroups: []string{"Summary"}},
			{Name: "name", Type: model.Scalar(model.ScalarString), Nullable: true, PartialGroups: []string{"Summary"}},
			{Name: "age", Type: model.Scalar(model.ScalarInt)},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ClassifyClass mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, diags.All())
}

func TestFieldClassifier_Nullability(t *testing.T) {
	tests := []struct {
		name  string
		field descriptor.RawField
		want  bool
	}{
		{name: "primitive", field: descriptor.RawField{Type: "long"}, want: false},
		{
			name:  "primitive ignores Nullable marker",
			field: descriptor.RawField{Type: "long", Annotations: []descriptor.RawAnnotation{ann("Nullable")}},
			want:  false,
		},
		{name: "boxed", field: descriptor.RawField{Type: "java.lang.Long"}, want: true},
		{
			name:  "NotNull",
			field: descriptor.RawField{Type: "java.lang.Long", Annotations: []descriptor.RawAnnotation{ann("NotNull")}},
			want:  false,
		},
		{
			name:  "explicit question mark beats NotNull",
			field: descriptor.RawField{Type: "kotlin.String?", Annotations: []descriptor.RawAnnotation{ann("NotNull")}},
			want:  true,
		},
		{
			name: "Nullable beats NotNull",
			field: descriptor.RawField{Type: "java.lang.String", Annotations: []descriptor.RawAnnotation{
				ann(descriptor.AnnotationNullable), ann(descriptor.AnnotationNotNull),
			}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.field.Name = "f"

			got, err := NewFieldClassifier().Classify(
				[]descriptor.RawField{tt.field}, []descriptor.RawField{{Name: "f"}}, nil)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Nullable)
			assert.False(t, got[0].Type.Nullable)
		})
	}
}

func TestFieldClassifier_AnnotationsOnConstructorParameter(t *testing.T) {
	fields := []descriptor.RawField{{Name: "email", Type: "java.lang.String"}}
	params := []descriptor.RawField{{
		Name:        "email",
		Default:     `"nobody@example.com"`,
		Annotations: []descriptor.RawAnnotation{ann("NotNull"), ann("RequiredForUpdateObject"), ann("PartOfPartialObjects", "Contact")},
	}}

	got, err := NewFieldClassifier().Classify(fields, params, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.True(t, got[0].Required)
	assert.False(t, got[0].Nullable)
	assert.Equal(t, []string{"Contact"}, got[0].PartialGroups)
	assert.Equal(t, `"nobody@example.com"`, got[0].DefaultLiteral)
}

func TestFieldClassifier_DuplicateGroupsCollapse(t *testing.T) {
	fields := []descriptor.RawField{{
		Name: "name",
		Type: "java.lang.String",
		Annotations: []descriptor.RawAnnotation{
			ann("PartOfPartialObjects", "Summary", "", "Card", "Summary"),
		},
	}}
	params := []descriptor.RawField{{
		Name:        "name",
		Annotations: []descriptor.RawAnnotation{ann("PartOfPartialObjects", "Card")},
	}}

	var dups []string

	got, err := NewFieldClassifier().Classify(fields, params, func(field, group string) {
		dups = append(dups, field+"/"+group)
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, []string{"Summary", "Card"}, got[0].PartialGroups)
	assert.Equal(t, []string{"name/Summary", "name/Card"}, dups)
}

func TestFieldClassifier_ConstructorTarget(t *testing.T) {
	raw := &descriptor.RawClass{
		Package: "com.example",
		Name:    "Point",
		Target:  descriptor.ElementConstructor,
		ConstructorParameters: []descriptor.RawField{
			{Name: "x", Type: "int", Annotations: []descriptor.RawAnnotation{ann("PartOfPartialObjects", "X")}},
			{Name: "y", Type: "int"},
		},
	}

	var diags diagnostic.Diagnostics

	got, err := NewFieldClassifier().ClassifyClass(raw, &diags)
	require.NoError(t, err)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, []string{"X"}, got.Fields[0].PartialGroups)
	assert.Empty(t, diags.Infos, "parameter annotations are not counted twice")
}

func TestFieldClassifier_Errors(t *testing.T) {
	t.Run("unsupported target", func(t *testing.T) {
		raw := personClass()
		raw.Target = "method"

		_, err := NewFieldClassifier().ClassifyClass(raw, &diagnostic.Diagnostics{})
		require.ErrorIs(t, err, diagnostic.ErrUnsupportedAnnotationTarget)
	})

	t.Run("unresolved type names the field", func(t *testing.T) {
		raw := personClass()
		raw.Fields[1].Type = "error.NonExistentClass"

		_, err := NewFieldClassifier().ClassifyClass(raw, &diagnostic.Diagnostics{})
		require.ErrorIs(t, err, diagnostic.ErrUnresolvedFieldType)

		var ce *diagnostic.ClassError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "com.example.Person", ce.Class)
		assert.Equal(t, "name", ce.Field)
	})

	t.Run("duplicate field", func(t *testing.T) {
		raw := personClass()
		raw.Fields = append(raw.Fields, descriptor.RawField{Name: "age", Type: "long"})

		_, err := NewFieldClassifier().ClassifyClass(raw, &diagnostic.Diagnostics{})
		require.ErrorIs(t, err, diagnostic.ErrDuplicateField)

		var ce *diagnostic.ClassError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "age", ce.Field)
	})
}

func TestFieldClassifier_DuplicateGroupInfo(t *testing.T) {
	raw := personClass()
	raw.ConstructorParameters[1].Annotations = []descriptor.RawAnnotation{ann("PartOfPartialObjects", "Summary")}

	var diags diagnostic.Diagnostics

	_, err := NewFieldClassifier().ClassifyClass(raw, &diags)
	require.NoError(t, err)
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, diagnostic.CodeDuplicatePartialGroupField, diags.Infos[0].Code)
	assert.Equal(t, "name", diags.Infos[0].Field)
	assert.True(t, diags.IsValid())
}

func TestFieldClassifier_GeneratedNames(t *testing.T) {
	tests := []struct {
		name      string
		className string
		group     string
		field     string
	}{
		{name: "class name with a space", className: "Person Patch"},
		{name: "class name of the source", className: "Person"},
		{name: "group name with a space", group: "My Summary", field: "name"},
		{name: "group name starting with a digit", group: "1Summary", field: "name"},
		{name: "group name of the source", group: "Person", field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := personClass()
			raw.UpdateObject.ClassName = tt.className

			if tt.group != "" {
				raw.Fields[1].Annotations = []descriptor.RawAnnotation{ann("PartOfPartialObjects", tt.group)}
			}

			_, err := NewFieldClassifier().ClassifyClass(raw, &diagnostic.Diagnostics{})
			require.ErrorIs(t, err, diagnostic.ErrInvalidGeneratedName)
			assert.Equal(t, diagnostic.CodeInvalidGeneratedName, diagnostic.CodeOf(err))

			var ce *diagnostic.ClassError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "com.example.Person", ce.Class)
			assert.Equal(t, tt.field, ce.Field)
		})
	}

	raw := personClass()
	raw.UpdateObject.ClassName = " PersonPatch "

	got, err := NewFieldClassifier().ClassifyClass(raw, &diagnostic.Diagnostics{})
	require.NoError(t, err)
	assert.Equal(t, "PersonPatch", got.ExplicitGeneratedName)
}
