package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagcheck/swagcheck/jsonpointer"
	"github.com/swagcheck/swagcheck/schema"
)

const kindsSchema = `id: kinds.json
definitions:
  str: {type: string}
  num: {type: number}
  int: {type: integer}
  bool: {type: boolean}
  nil: {type: "null"}
  nullable: {type: ["null", integer]}
  obj: {type: object}
  arr: {type: array}
  all: {allOf: [{type: string}]}
  any: {anyOf: [{type: string}]}
  one: {oneOf: [{type: string}]}
  ref: {$ref: "#/definitions/str"}
  implicitObject: {properties: {a: {}}}
  implicitArray: {items: {}}
  undefined: {description: only words}
  empty: {}
  unknownType: {type: file}
  notASchema: 42
`

func TestDocument_Type_Discriminant(t *testing.T) {
	t.Parallel()

	c := schema.NewCatalog()
	doc, err := c.Load([]byte(kindsSchema))
	require.NoError(t, err)

	tests := map[string]schema.Kind{
		"str":            schema.KindString,
		"num":            schema.KindNumber,
		"int":            schema.KindInteger,
		"bool":           schema.KindBoolean,
		"nil":            schema.KindNull,
		"nullable":       schema.KindInteger,
		"obj":            schema.KindObject,
		"arr":            schema.KindArray,
		"all":            schema.KindAllOf,
		"any":            schema.KindAnyOf,
		"one":            schema.KindOneOf,
		"ref":            schema.KindReference,
		"implicitObject": schema.KindObject,
		"implicitArray":  schema.KindArray,
		"undefined":      schema.KindUndefined,
		"empty":          schema.KindUndefined,
		"unknownType":    schema.KindUndefined,
	}
	for name, kind := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			typ := doc.Type(jsonpointer.FromParts("definitions", name))
			require.NotNil(t, typ)
			assert.Equal(t, kind, typ.Kind())
		})
	}

	assert.Nil(t, doc.Type("/definitions/notASchema"), "scalars are not schema objects")
	assert.Nil(t, doc.Type("/definitions/missing"))
	assert.Equal(t, "/definitions/str", doc.Type("/definitions/ref").Reference()[1:])
}

func TestTypeDefinition_Members(t *testing.T) {
	t.Parallel()
	r := defaultResolver(t)

	param := r.SchemaType("/definitions/parametersList/items")
	require.NotNil(t, param)
	members := param.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "#/definitions/parameter", members[0].Reference())
	assert.Equal(t, "#/definitions/jsonReference", members[1].Reference())

	assert.Nil(t, r.SchemaType("/definitions/info").Members())
}

func TestTypeDefinition_PropertyType_ThroughComposite(t *testing.T) {
	t.Parallel()
	r := defaultResolver(t)

	param := r.SchemaType("/definitions/parametersList/items")
	require.NotNil(t, param)

	in := param.PropertyType("in")
	require.NotNil(t, in, "first member declaring the property answers")
	assert.Equal(t, jsonpointer.JSONPointer("/definitions/bodyParameter/properties/in"), in.Path())

	ref := param.PropertyType("$ref")
	require.NotNil(t, ref)
	assert.Equal(t, jsonpointer.JSONPointer("/definitions/jsonReference/properties/$ref"), ref.Path())
}

func TestTypeDefinition_Accessors(t *testing.T) {
	t.Parallel()
	r := defaultResolver(t)

	info := r.SchemaType("/definitions/info")
	require.NotNil(t, info)
	assert.Equal(t, []string{"version", "title"}, info.Required())
	assert.Equal(t, []string{"title", "version", "description", "termsOfService", "contact", "license"}, info.Properties())
	assert.Equal(t, "General information about the API.", info.Description())

	title := info.PropertyType("title")
	require.NotNil(t, title)
	assert.Equal(t, "A unique and precise title of the API.", title.Description())
	assert.Empty(t, title.Title())

	url := r.SchemaType("/definitions/contact/properties/url")
	assert.Equal(t, "uri", url.Format())

	core := r.Catalog().Schema(schema.CoreSchemaID)
	simpleTypes := core.Type("/definitions/simpleTypes")
	require.NotNil(t, simpleTypes)
	assert.Equal(t, []any{"array", "boolean", "integer", "null", "number", "object", "string"}, simpleTypes.Enum())
	assert.Nil(t, info.Enum())

	unique := core.Type("/properties/uniqueItems")
	def, ok := unique.Default()
	assert.True(t, ok)
	assert.Equal(t, false, def)
	_, ok = info.Default()
	assert.False(t, ok)

	assert.Same(t, info.Node(), r.Catalog().Primary().Type("/definitions/info").Node())
	assert.Equal(t, "object(http://swagger.io/v2/schema.json#/definitions/info)", info.String())
}

func TestTypeDefinition_ItemsType(t *testing.T) {
	t.Parallel()

	c := schema.NewCatalog()
	doc, err := c.Load([]byte(`id: items.json
definitions:
  list: {type: array, items: {type: string}}
  tuple: {type: array, items: [{type: string}, {type: integer}], additionalItems: {type: boolean}}
  closedTuple: {type: array, items: [{type: string}]}
  bare: {type: array}
`))
	require.NoError(t, err)

	list := doc.Type("/definitions/list")
	assert.Equal(t, schema.KindString, list.ItemsType().Kind())
	assert.Same(t, list.ItemsType(), list.ItemsTypeAt(99))

	tuple := doc.Type("/definitions/tuple")
	assert.Equal(t, schema.KindString, tuple.ItemsType().Kind())
	assert.Equal(t, schema.KindInteger, tuple.ItemsTypeAt(1).Kind())
	assert.Equal(t, schema.KindBoolean, tuple.ItemsTypeAt(2).Kind())

	assert.Nil(t, doc.Type("/definitions/closedTuple").ItemsTypeAt(1))
	assert.Nil(t, doc.Type("/definitions/bare").ItemsType())
	assert.Nil(t, doc.RootType().ItemsType(), "non arrays have no items")
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "object", schema.KindObject.String())
	assert.Equal(t, "oneOf", schema.KindOneOf.String())
	assert.Equal(t, "unknown", schema.Kind(100).String())
	assert.True(t, schema.KindUndefined.IsPrimitive())
	assert.False(t, schema.KindObject.IsPrimitive())
	assert.True(t, schema.KindAllOf.IsComposite())
	assert.False(t, schema.KindReference.IsComposite())
}
