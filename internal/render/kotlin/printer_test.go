package kotlin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"update-object-generator/internal/codemodel"
	"update-object-generator/internal/emit"
	"update-object-generator/internal/group"
	"update-object-generator/internal/model"
)

func person() *model.ClassDescriptor {
	str := model.Scalar(model.ScalarString)

	return &model.ClassDescriptor{
		PackageName:      "com.example",
		SourceSimpleName: "Person",
		Fields: []model.FieldDescriptor{
			{Name: "id", Type: str, Required: true, PartialGroups: []string{"Summary"}},
			{Name: "name", Type: str, Nullable: true, PartialGroups: []string{"Summary"}},
			{Name: "age", Type: model.Scalar(model.ScalarInt)},
		},
	}
}

func emitFiles(class *model.ClassDescriptor, vis model.Visibility, opts emit.Options) []*codemodel.File {
	return emit.New(opts).Emit(class, vis, group.Collect(class.Fields))
}

func TestPrinter_Golden(t *testing.T) {
	p := New()

	for _, f := range emitFiles(person(), model.VisibilityPublic, emit.Options{}) {
		t.Run(f.Decl.Name, func(t *testing.T) {
			got, err := p.Print(f)
			require.NoError(t, err)

			want, err := os.ReadFile(filepath.Join("testdata", f.Decl.Name+".kt.golden"))
			require.NoError(t, err)

			assert.Equal(t, string(want), string(got))
		})
	}
}

func TestPrinter_Path(t *testing.T) {
	files := emitFiles(person(), model.VisibilityPublic, emit.Options{})

	assert.Equal(t, filepath.Join("com", "example", "PersonUpdateObject.kt"), New().Path(files[0]))
	assert.Equal(t, filepath.Join("com", "example", "Summary.kt"), New().Path(files[1]))

	class := person()
	class.PackageName = ""
	assert.Equal(t, "PersonUpdateObject.kt", New().Path(emitFiles(class, model.VisibilityPublic, emit.Options{})[0]))
}

func TestPrinter_Visibility(t *testing.T) {
	for _, vis := range []model.Visibility{model.VisibilityInternal, model.VisibilityPrivate, model.VisibilityProtected} {
		for _, f := range emitFiles(person(), vis, emit.Options{}) {
			out, err := New().Print(f)
			require.NoError(t, err)

			text := string(out)
			kw := vis.String()

			assert.Contains(t, text, kw+" data class "+f.Decl.Name+"(")
			assert.Contains(t, text, kw+" companion object {")
			assert.Equal(t, 2, strings.Count(text, kw+" fun Person."), "both functions carry %s", kw)
			assert.NotContains(t, text, "public data class")
		}
	}
}

func TestPrinter_ImportsAndAssertions(t *testing.T) {
	class := &model.ClassDescriptor{
		PackageName:      "com.example.billing",
		SourceSimpleName: "Invoice",
		Fields: []model.FieldDescriptor{
			{Name: "issued", Type: model.Nominal("java.time", "LocalDate"), Required: true, Nullable: true},
			{Name: "due", Type: model.Nominal("java.sql", "Date")},
			{Name: "paid", Type: model.Nominal("java.util", "Date")},
			{Name: "customer", Type: model.Nominal("com.example.billing", "Customer")},
			{
				Name: "lines",
				Type: model.Generic("", model.GenericList, model.Nominal("com.example.billing", "Line")),
			},
			{
				Name: "totals",
				Type: model.Generic("", model.GenericMap, model.Scalar(model.ScalarString), model.Scalar(model.ScalarLong).WithNullable(true)),
				Nullable: true,
			},
		},
	}

	files := emitFiles(class, model.VisibilityPublic, emit.Options{MutableCollections: true})
	require.Len(t, files, 1)

	out, err := New().Print(files[0])
	require.NoError(t, err)

	text := string(out)

	assert.Contains(t, text, "import java.sql.Date\nimport java.time.LocalDate\n\npublic data class")
	assert.NotContains(t, text, "import java.util.Date")
	assert.Contains(t, text, "public val paid: java.util.Date? = null,")
	assert.Contains(t, text, "public val due: Date? = null,")
	assert.Contains(t, text, "public val customer: Customer? = null,")
	assert.Contains(t, text, "public val issued: LocalDate,")
	assert.Contains(t, text, "public val lines: MutableList<Line>? = null,")
	assert.Contains(t, text, "public val totals: MutableMap<String, Long?>? = null,")

	assert.Contains(t, text, `issued = checkNotNull(this.issued) { "issued must not be null" },`)
	assert.Contains(t, text, "lines = this.lines.toMutableList(),")
	assert.Contains(t, text, "totals = this.totals?.toMutableMap(),")
	assert.Contains(t, text, "val issued = updateObject.issued\n")
}

func TestPrinter_RequiredDefaultLiteral(t *testing.T) {
	class := &model.ClassDescriptor{
		PackageName:      "com.example",
		SourceSimpleName: "Flag",
		Fields: []model.FieldDescriptor{
			{Name: "label", Type: model.Scalar(model.ScalarString), Required: true, DefaultLiteral: `"on"`},
		},
	}

	out, err := New().Print(emitFiles(class, model.VisibilityPublic, emit.Options{})[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `public val label: String = "on",`)
}

func TestPrinter_UnsupportedScalar(t *testing.T) {
	class := &model.ClassDescriptor{
		PackageName:      "com.example",
		SourceSimpleName: "Signal",
		Fields:           []model.FieldDescriptor{{Name: "z", Type: model.Scalar(model.ScalarComplex128)}},
	}

	_, err := New().Print(emitFiles(class, model.VisibilityPublic, emit.Options{})[0])
	require.Error(t, err)
}

func TestPrinter_Determinism(t *testing.T) {
	a, err := New().Print(emitFiles(person(), model.VisibilityInternal, emit.Options{})[0])
	require.NoError(t, err)

	b, err := New().Print(emitFiles(person(), model.VisibilityInternal, emit.Options{})[0])
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a \"b\" \$c \\ d"`, quote(`a "b" $c \ d`))
}

func TestPrinter_KeywordNames(t *testing.T) {
	class := &model.ClassDescriptor{
		PackageName:      "com.example.in",
		SourceSimpleName: "Event",
		Fields: []model.FieldDescriptor{
			{Name: "in", Type: model.Scalar(model.ScalarInt)},
			{Name: "object", Type: model.Scalar(model.ScalarString), Nullable: true, Required: true},
			{Name: "is", Type: model.Scalar(model.ScalarBoolean), PartialGroups: []string{"Window"}},
		},
	}

	files := emitFiles(class, model.VisibilityPublic, emit.Options{})
	require.Len(t, files, 2)

	out, err := New().Print(files[0])
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "package com.example.`in`\n")
	assert.Contains(t, text, "public val `in`: Int? = null,")
	assert.Contains(t, text, "public val `object`: String,")
	assert.Contains(t, text, "val `in` = updateObject.`in` ?: this.`in`\n")
	assert.Contains(t, text, "val `object` = updateObject.`object`\n")
	assert.Contains(t, text, "`in` = `in`,")
	assert.Contains(t, text, "`object` = checkNotNull(this.`object`) { \"object must not be null\" },")
	assert.NotContains(t, text, " in:")
	assert.NotContains(t, text, ".in ")

	out, err = New().Print(files[1])
	require.NoError(t, err)

	text = string(out)
	assert.Contains(t, text, "public val `is`: Boolean,")
	assert.Contains(t, text, "val `is` = updateObject.`is`\n")
	assert.Contains(t, text, "`is` = `is`,")
	assert.Contains(t, text, "`is` = this.`is`,")
}

func TestEscape(t *testing.T) {
	tests := map[string]string{
		"name":      "name",
		"_id":       "_id",
		"café":      "café",
		"in":        "`in`",
		"when":      "`when`",
		"typealias": "`typealias`",
		"my field":  "`my field`",
		"1st":       "`1st`",
		"a$b":       "`a$b`",
	}

	for in, want := range tests {
		assert.Equal(t, want, escape(in), "escape(%q)", in)
	}

	assert.Equal(t, "com.`object`.model", escapeQualified("com.object.model"))
}
