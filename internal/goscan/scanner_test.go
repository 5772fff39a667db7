package goscan

import (
	"context"
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"update-object-generator/internal/descriptor"
	"update-object-generator/internal/diagnostic"
	"update-object-generator/internal/driver"
	"update-object-generator/internal/output"
	"update-object-generator/internal/render/golang"
)

const moduleRoot = "../.."

func scanStore(t *testing.T) []descriptor.RawClass {
	t.Helper()

	classes, err := NewScanner(moduleRoot).Scan("./store")
	require.NoError(t, err)

	return classes
}

func fieldNames(fields []descriptor.RawField) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}

	return out
}

func TestScanner_Store(t *testing.T) {
	classes := scanStore(t)
	require.Len(t, classes, 3)

	assert.Equal(t, "Product", classes[0].Name)
	assert.Equal(t, "Customer", classes[1].Name)
	assert.Equal(t, "Order", classes[2].Name)

	for _, c := range classes {
		assert.Equal(t, "store", c.Package)
		assert.Equal(t, "update-object-generator/store", c.PackagePath)
		assert.Equal(t, "store", c.OutputDir)
		assert.Equal(t, descriptor.ElementClass, c.Target)
		assert.Equal(t, fieldNames(c.Fields), fieldNames(c.ConstructorParameters))
	}
}

func TestScanner_MarkerOptionsAndTags(t *testing.T) {
	product := scanStore(t)[0]

	assert.Equal(t, "ProductPatch", product.UpdateObject.ClassName)
	assert.Equal(t, []string{"VisibilityModifier.Internal"}, product.UpdateObject.VisibilityModifier)
	assert.Equal(t, []string{"ID", "SKU", "Name", "Description", "PriceCents", "Inventory"}, fieldNames(product.Fields),
		"update:\"-\" excludes CreatedAt")

	id := product.Fields[0]
	_, required := id.Annotation(descriptor.AnnotationRequired)
	_, notNull := id.Annotation(descriptor.AnnotationNotNull)
	assert.True(t, required)
	assert.True(t, notNull)
	assert.Equal(t, "int64", id.Type)
	require.NotNil(t, id.GoType)

	desc := product.Fields[3]
	_, notNull = desc.Annotation(descriptor.AnnotationNotNull)
	assert.False(t, notNull, "pointer fields are nullable")
	assert.Equal(t, "*string", desc.Type)

	groups, ok := product.Fields[4].Annotation(descriptor.AnnotationPartOfPartialObjects)
	require.True(t, ok)
	assert.Equal(t, []string{"Listing", "Pricing"}, groups.Values)

	assert.Nil(t, scanStore(t)[1].UpdateObject.VisibilityModifier)
}

func TestScanner_UnsupportedTypes(t *testing.T) {
	classes, err := NewScanner(moduleRoot).Scan("./internal/goscan/testdata/invalid")
	require.NoError(t, err)
	require.Len(t, classes, 3)

	assert.Equal(t, "Box", classes[0].Name)
	assert.Equal(t, targetGeneric, classes[0].Target)

	assert.Equal(t, "Level", classes[1].Name)
	assert.Equal(t, targetNonStruct, classes[1].Target)

	grouped := classes[2]
	assert.Equal(t, "Grouped", grouped.Name)
	assert.Equal(t, descriptor.ElementClass, grouped.Target)
	assert.Equal(t, []string{"VisibilityModifier.Private"}, grouped.UpdateObject.VisibilityModifier)

	_, required := grouped.Fields[1].Annotation(descriptor.AnnotationRequired)
	assert.True(t, required, "required is found among other tag options")
}

func TestScanner_BadMarker(t *testing.T) {
	_, err := NewScanner(moduleRoot).Scan("./internal/goscan/testdata/badmarker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown marker option "colour"`)
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions("")
	require.NoError(t, err)
	assert.Equal(t, markerOptions{}, opts)

	opts, err = parseOptions(":className=Patch, visibility=PROTECTED")
	require.NoError(t, err)
	assert.Equal(t, "Patch", opts.className)
	assert.Equal(t, []string{"VisibilityModifier.Protected"}, opts.visibility)

	_, err = parseOptions("extra")
	require.Error(t, err)

	_, err = parseOptions(":className")
	require.Error(t, err)
}

func TestScanner_GenerateGo(t *testing.T) {
	classes, err := NewScanner(moduleRoot).Scan("./store", "./internal/goscan/testdata/invalid")
	require.NoError(t, err)

	sink := &output.MemorySink{}

	res, err := driver.New(golang.New(), sink, driver.Options{}).Run(context.Background(), classes)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Generated)
	assert.Equal(t, 3, res.Skipped)

	codes := map[string]string{}
	for _, d := range res.Diagnostics.Errors {
		codes[d.Class] = d.Code
	}

	invalid := "update-object-generator/internal/goscan/testdata/invalid."
	assert.Equal(t, diagnostic.CodeUnsupportedAnnotationTarget, codes[invalid+"Box"])
	assert.Equal(t, diagnostic.CodeUnsupportedAnnotationTarget, codes[invalid+"Level"])
	assert.Equal(t, diagnostic.CodeUnresolvedFieldType, codes[invalid+"Grouped"])

	byPath := map[string]string{}

	for _, f := range sink.Files() {
		_, err := parser.ParseFile(token.NewFileSet(), f.Path, f.Content, 0)
		require.NoError(t, err, "%s:\n%s", f.Path, f.Content)

		byPath[f.Path] = string(f.Content)
	}

	assert.Contains(t, byPath, filepath.Join("store", "product_patch_gen.go"))
	assert.Contains(t, byPath, filepath.Join("store", "listing_gen.go"))
	assert.Contains(t, byPath, filepath.Join("store", "pricing_gen.go"))
	assert.Contains(t, byPath, filepath.Join("store", "customer_update_object_gen.go"))
	assert.Contains(t, byPath, filepath.Join("store", "contact_gen.go"))
	assert.Contains(t, byPath, filepath.Join("store", "order_update_object_gen.go"))

	order := byPath[filepath.Join("store", "order_update_object_gen.go")]
	assert.Contains(t, order, "package store")
	assert.Contains(t, order, "func (o Order) Update(u OrderUpdateObject) Order {")
	assert.Contains(t, order, "*time.Time")

	product := byPath[filepath.Join("store", "product_patch_gen.go")]
	assert.Contains(t, product, "type productPatch struct {")
	assert.Contains(t, product, "func (p Product) update(u productPatch) Product {")
}

func TestScanner_GenerateGoForeignTypes(t *testing.T) {
	classes, err := NewScanner(moduleRoot).Scan("./warehouse")
	require.NoError(t, err)
	require.Len(t, classes, 1)

	shipment := classes[0]
	assert.Equal(t, "Shipment", shipment.Name)
	assert.Equal(t, "warehouse", shipment.OutputDir)
	assert.Len(t, shipment.Fields, 6)

	sink := &output.MemorySink{}

	res, err := driver.New(golang.New(), sink, driver.Options{}).Run(context.Background(), classes)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Generated)
	assert.Empty(t, res.Diagnostics.Errors)

	byPath := map[string]string{}

	for _, f := range sink.Files() {
		_, err := parser.ParseFile(token.NewFileSet(), f.Path, f.Content, 0)
		require.NoError(t, err, "%s:\n%s", f.Path, f.Content)

		byPath[f.Path] = string(f.Content)
	}

	require.Contains(t, byPath, filepath.Join("warehouse", "shipment_update_object_gen.go"))
	require.Contains(t, byPath, filepath.Join("warehouse", "tracking_gen.go"))

	shipmentSrc := byPath[filepath.Join("warehouse", "shipment_update_object_gen.go")]
	assert.Contains(t, shipmentSrc, "package warehouse")
	assert.Contains(t, shipmentSrc, `"update-object-generator/store"`)
	assert.Contains(t, shipmentSrc, "store.OrderStatus")
	assert.Contains(t, shipmentSrc, "store.OrderItem")
	assert.Contains(t, shipmentSrc, "func (s Shipment) Update(u ShipmentUpdateObject) Shipment {")
	assert.NotContains(t, shipmentSrc, "LabelPDF")
}
