// Package jsonpointer provides JSONPointer an implementation of RFC6901 https://datatracker.ietf.org/doc/html/rfc6901
// and navigation of yaml node trees by pointer.
package jsonpointer

import (
	"net/url"
	"strings"

	"github.com/swagcheck/swagcheck/errors"
)

const (
	// ErrNotFound is returned when the target is not found.
	ErrNotFound = errors.Error("not found")
	// ErrInvalidPath is returned when the path is invalid.
	ErrInvalidPath = errors.Error("invalid path")
	// ErrValidation is returned when the jsonpointer is invalid.
	ErrValidation = errors.Error("validation error")
)

// Root is the pointer addressing the whole document.
const Root JSONPointer = ""

// JSONPointer represents a JSON Pointer value as defined by RFC6901 https://datatracker.ietf.org/doc/html/rfc6901
type JSONPointer string

// Validate will validate the JSONPointer is valid as per RFC6901.
func (j JSONPointer) Validate() error {
	if _, err := j.tokens(); err != nil {
		return ErrValidation.Wrap(err)
	}
	return nil
}

// IsRoot reports whether the pointer addresses the whole document.
func (j JSONPointer) IsRoot() bool {
	return j == Root
}

// Parts returns the unescaped reference tokens of the pointer. Invalid pointers return nil.
func (j JSONPointer) Parts() []string {
	stack, err := j.tokens()
	if err != nil {
		return nil
	}
	parts := make([]string, 0, len(stack))
	for _, p := range stack {
		parts = append(parts, p.name())
	}
	return parts
}

// Append returns the pointer to the child of j named by token.
func (j JSONPointer) Append(token string) JSONPointer {
	return j + "/" + JSONPointer(escape(token))
}

// Parent returns the pointer one level up. The parent of the root is the root.
func (j JSONPointer) Parent() JSONPointer {
	idx := strings.LastIndexByte(string(j), '/')
	if idx <= 0 {
		return Root
	}
	return j[:idx]
}

// HasPrefix reports whether j equals prefix or addresses a location below it.
func (j JSONPointer) HasPrefix(prefix JSONPointer) bool {
	if prefix.IsRoot() || j == prefix {
		return true
	}
	return strings.HasPrefix(string(j), string(prefix)+"/")
}

// Last returns the unescaped final token, or "" for the root.
func (j JSONPointer) Last() string {
	parts := j.Parts()
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

func (j JSONPointer) String() string {
	return string(j)
}

// PartsToJSONPointer will convert the exploded parts of a JSONPointer to a JSONPointer.
func PartsToJSONPointer(parts []string) JSONPointer {
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteByte('/')
		sb.WriteString(escape(part))
	}
	return JSONPointer(sb.String())
}

// FromParts is an alias of PartsToJSONPointer.
func FromParts(parts ...string) JSONPointer {
	return PartsToJSONPointer(parts)
}

// ParseFragment converts a URI fragment such as "#/definitions/Pet" into a pointer.
// The leading "#" is optional and percent-encoding is decoded.
func ParseFragment(fragment string) (JSONPointer, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	if decoded, err := url.PathUnescape(fragment); err == nil {
		fragment = decoded
	}

	j := JSONPointer(fragment)
	if err := j.Validate(); err != nil {
		return "", err
	}
	return j, nil
}

// EscapeString escapes a string for use as a reference token in a JSON pointer according to RFC6901.
func EscapeString(s string) string {
	return escape(s)
}

func escape(part string) string {
	return strings.ReplaceAll(strings.ReplaceAll(part, "~", "~0"), "/", "~1")
}
