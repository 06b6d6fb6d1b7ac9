package yml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagcheck/swagcheck/yml"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &root))
	return &root
}

func TestUnwrap_Success(t *testing.T) {
	t.Parallel()

	root := parse(t, "a: 1\n")
	unwrapped := yml.Unwrap(root)
	require.NotNil(t, unwrapped)
	assert.Equal(t, yaml.MappingNode, unwrapped.Kind)
	assert.Same(t, unwrapped, yml.Unwrap(unwrapped), "non document nodes are returned as is")
	assert.Nil(t, yml.Unwrap(&yaml.Node{Kind: yaml.DocumentNode}))
	assert.Nil(t, yml.Unwrap(nil))
}

func TestGetMapElementNodes_Success(t *testing.T) {
	t.Parallel()

	root := yml.Unwrap(parse(t, "base: &b\n  type: object\ncopy: *b\nname: pet\n"))

	key, value, ok := yml.GetMapElementNodes(root, "name")
	require.True(t, ok)
	assert.Equal(t, "name", key.Value)
	assert.Equal(t, "pet", value.Value)

	_, _, ok = yml.GetMapElementNodes(root, "missing")
	assert.False(t, ok)

	copied := yml.GetMapElement(root, "copy")
	require.NotNil(t, copied)
	assert.Equal(t, yaml.MappingNode, copied.Kind, "alias values are resolved")
	assert.Equal(t, "object", yml.GetMapElement(copied, "type").Value)

	_, _, ok = yml.GetMapElementNodes(yml.GetMapElement(root, "name"), "x")
	assert.False(t, ok, "scalars have no elements")
}

func TestStringValue_Success(t *testing.T) {
	t.Parallel()

	root := yml.Unwrap(parse(t, "s: text\nq: \"2.0\"\nn: 2\nb: true\nm: {}\n"))
	tests := []struct {
		key      string
		expected string
		ok       bool
	}{
		{key: "s", expected: "text", ok: true},
		{key: "q", expected: "2.0", ok: true},
		{key: "n", ok: false},
		{key: "b", ok: false},
		{key: "m", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			got, ok := yml.StringValue(yml.GetMapElement(root, tt.key))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEqualFold_Success(t *testing.T) {
	t.Parallel()

	root := yml.Unwrap(parse(t, "type: Array\nitems: [a]\n"))
	assert.True(t, yml.EqualFold(yml.GetMapElement(root, "type"), "array"))
	assert.False(t, yml.EqualFold(yml.GetMapElement(root, "items"), "array"))
	assert.False(t, yml.EqualFold(nil, "array"))
}

func TestIsMergeKey_Success(t *testing.T) {
	t.Parallel()

	root := yml.Unwrap(parse(t, "a: &a {x: 1}\nb:\n  <<: *a\n"))
	b := yml.GetMapElement(root, "b")
	require.NotNil(t, b)
	assert.True(t, yml.IsMergeKey(b.Content[0]))
	assert.False(t, yml.IsMergeKey(root.Content[0]))
}
