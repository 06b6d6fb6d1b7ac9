package document_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagcheck/swagcheck/document"
	"github.com/swagcheck/swagcheck/errors"
	"gopkg.in/yaml.v3"
)

func TestParse_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		json string
	}{
		{
			name: "yaml",
			src:  "swagger: \"2.0\"\ninfo:\n  title: Pets\n",
			json: `{"swagger":"2.0","info":{"title":"Pets"}}`,
		},
		{
			name: "json",
			src:  `{"swagger": "2.0", "paths": {}}`,
			json: `{"swagger":"2.0","paths":{}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, err := document.Parse([]byte(tt.src), document.WithLocation("api.yaml"))
			require.NoError(t, err)

			assert.Equal(t, tt.json, string(doc.JSON()))
			assert.Equal(t, yaml.DocumentNode, doc.Root().Kind)
			assert.True(t, doc.Model().Root().IsObject())
			assert.Equal(t, "api.yaml", doc.Location())
		})
	}
}

func TestParse_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "whitespace", src: "  \n\t\n"},
		{name: "comment only", src: "# nothing\n"},
		{name: "syntax error", src: "a: [1, 2\nb: 3\n"},
		{name: "bad merge", src: "a: 1\nb:\n  <<: *x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, err := document.Parse([]byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, document.ErrInvalidDocument)
			assert.Nil(t, doc)
		})
	}
}

func TestParseFile_Success(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"specs/api.yaml": &fstest.MapFile{Data: []byte("swagger: \"2.0\"\n")}}

	doc, err := document.ParseFile(fsys, "specs/api.yaml")
	require.NoError(t, err)
	assert.Equal(t, "specs/api.yaml", doc.Location())

	_, err = document.ParseFile(fsys, "specs/missing.yaml")
	require.Error(t, err)
}

func TestErrorLine_Success(t *testing.T) {
	t.Parallel()

	_, err := document.Parse([]byte("a: 1\nb: [1, 2\nc: 3\n"))
	require.Error(t, err)
	assert.Positive(t, document.ErrorLine(err))

	assert.Equal(t, 7, document.ErrorLine(errors.New("yaml: line 7: did not find expected key")))
	assert.Equal(t, 1, document.ErrorLine(errors.New("document is empty")))
	assert.Equal(t, 0, document.ErrorLine(nil))
}

func TestDocument_NilSafe(t *testing.T) {
	t.Parallel()

	var doc *document.Document
	assert.Nil(t, doc.Root())
	assert.Nil(t, doc.JSON())
	assert.Nil(t, doc.Model())
	assert.Empty(t, doc.Location())
}
