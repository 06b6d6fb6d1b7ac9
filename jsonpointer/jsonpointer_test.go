package jsonpointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPointer_Validate_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		j    JSONPointer
	}{
		{name: "root", j: JSONPointer("")},
		{name: "empty key", j: JSONPointer("/")},
		{name: "simple path", j: JSONPointer("/some/path")},
		{name: "path with indices", j: JSONPointer("/some/path/0/1")},
		{name: "escaped path", j: JSONPointer("/~0/some~1path")},
		{name: "path template", j: JSONPointer("/paths/~1pets~1{petId}/get")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.NoError(t, tt.j.Validate())
		})
	}
}

func TestJSONPointer_Validate_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		j    JSONPointer
	}{
		{name: "missing leading slash", j: JSONPointer("some/path")},
		{name: "bad escape", j: JSONPointer("/some~2path")},
		{name: "dangling tilde", j: JSONPointer("/some~")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.j.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestJSONPointer_Parts_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		j        JSONPointer
		expected []string
	}{
		{name: "root", j: "", expected: []string{}},
		{name: "keys", j: "/definitions/Pet", expected: []string{"definitions", "Pet"}},
		{name: "escaped", j: "/paths/~1pets~1{id}/a~0b", expected: []string{"paths", "/pets/{id}", "a~b"}},
		{name: "index", j: "/tags/0", expected: []string{"tags", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.j.Parts())
		})
	}
}

func TestJSONPointer_Append_RoundTrip(t *testing.T) {
	t.Parallel()

	p := Root.Append("paths").Append("/pets").Append("get")
	assert.Equal(t, JSONPointer("/paths/~1pets/get"), p)
	assert.Equal(t, []string{"paths", "/pets", "get"}, p.Parts())
	assert.Equal(t, p, PartsToJSONPointer(p.Parts()))
	assert.Equal(t, p, FromParts("paths", "/pets", "get"))
	assert.Equal(t, "get", p.Last())
}

func TestJSONPointer_Parent_Success(t *testing.T) {
	t.Parallel()

	assert.Equal(t, JSONPointer("/a/b"), JSONPointer("/a/b/c").Parent())
	assert.Equal(t, Root, JSONPointer("/a").Parent())
	assert.Equal(t, Root, Root.Parent())
}

func TestJSONPointer_HasPrefix_Success(t *testing.T) {
	t.Parallel()

	assert.True(t, JSONPointer("/definitions/Pet").HasPrefix("/definitions"))
	assert.True(t, JSONPointer("/definitions").HasPrefix("/definitions"))
	assert.True(t, JSONPointer("/definitions").HasPrefix(Root))
	assert.False(t, JSONPointer("/definitionsX").HasPrefix("/definitions"))
}

func TestParseFragment_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		fragment string
		expected JSONPointer
	}{
		{name: "hash prefixed", fragment: "#/definitions/Pet", expected: "/definitions/Pet"},
		{name: "bare pointer", fragment: "/definitions/Pet", expected: "/definitions/Pet"},
		{name: "root", fragment: "#", expected: Root},
		{name: "percent encoded", fragment: "#/paths/~1pets%7Bid%7D", expected: "/paths/~1pets{id}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFragment(tt.fragment)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFragment_Error(t *testing.T) {
	t.Parallel()

	_, err := ParseFragment("#definitions")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
