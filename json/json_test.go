package json_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagcheck/swagcheck/json"
	"gopkg.in/yaml.v3"
)

func TestYAMLToJSON_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		yamlInput    string
		expectedJSON string
		indentation  int
	}{
		{
			name:         "simple scalar string",
			yamlInput:    `hello world`,
			expectedJSON: "\"hello world\"\n",
			indentation:  2,
		},
		{
			name:         "simple scalar number",
			yamlInput:    `42`,
			expectedJSON: "42\n",
			indentation:  2,
		},
		{
			name: "object keeps key order",
			yamlInput: `swagger: "2.0"
info:
  version: "1"
  title: Pets
`,
			expectedJSON: `{
  "swagger": "2.0",
  "info": {
    "version": "1",
    "title": "Pets"
  }
}
`,
			indentation: 2,
		},
		{
			name:         "compact",
			yamlInput:    "tags: [a, b]\nrequired: true\nnothing: null\n",
			expectedJSON: "{\"tags\":[\"a\",\"b\"],\"required\":true,\"nothing\":null}\n",
			indentation:  0,
		},
		{
			name:         "duplicate keys keep first position and last value",
			yamlInput:    "name: a\nother: 1\nname: b\n",
			expectedJSON: "{\"name\":\"b\",\"other\":1}\n",
		},
		{
			name:         "merge keys",
			yamlInput:    "base: &base {type: object, title: Base}\nPet:\n  <<: *base\n  title: Pet\n",
			expectedJSON: "{\"base\":{\"type\":\"object\",\"title\":\"Base\"},\"Pet\":{\"type\":\"object\",\"title\":\"Pet\"}}\n",
		},
		{
			name:         "non finite floats become strings",
			yamlInput:    "max: .inf\n",
			expectedJSON: "{\"max\":\".inf\"}\n",
		},
		{
			name:         "non string keys",
			yamlInput:    "200: ok\n",
			expectedJSON: "{\"200\":\"ok\"}\n",
		},
		{
			name:         "html is not escaped",
			yamlInput:    "description: <b>bold</b>\n",
			expectedJSON: "{\"description\":\"<b>bold</b>\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var node yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.yamlInput), &node))

			var buf bytes.Buffer
			require.NoError(t, json.YAMLToJSON(&node, tt.indentation, &buf))
			assert.Equal(t, tt.expectedJSON, buf.String())
		})
	}
}

func TestMarshal_Success(t *testing.T) {
	t.Parallel()

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("a: [1, 2]\n"), &node))

	data, err := json.Marshal(&node)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":[1,2]}`, string(data))
	assert.Equal(t, `{"a":[1,2]}`, string(data))
}

func TestMarshal_EmptyDocument(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&yaml.Node{Kind: yaml.DocumentNode})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
