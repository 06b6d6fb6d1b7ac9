// Package references checks the integrity of the $ref entries of a document.
package references

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/swagcheck/swagcheck/jsonpointer"
)

// Reference is the value of a $ref entry, e.g. "common.yaml#/definitions/Error".
type Reference string

var _ fmt.Stringer = (*Reference)(nil)

// GetURI returns the part before the first "#", or "" for a local reference.
func (r Reference) GetURI() string {
	uri, _, _ := strings.Cut(string(r), "#")
	return strings.TrimSpace(uri)
}

func (r Reference) HasJSONPointer() bool {
	return strings.Contains(string(r), "#")
}

// GetJSONPointer returns the decoded fragment. A reference without a fragment addresses the whole
// document and yields the root pointer.
func (r Reference) GetJSONPointer() jsonpointer.JSONPointer {
	_, fragment, found := strings.Cut(string(r), "#")
	if !found {
		return jsonpointer.Root
	}

	pointer := strings.TrimSpace(fragment)

	// fragments may be percent-encoded, e.g. %7B for {
	if decoded, err := url.PathUnescape(pointer); err == nil {
		pointer = decoded
	}

	return jsonpointer.JSONPointer(pointer)
}

// IsLocal reports whether the reference points into the document that contains it.
func (r Reference) IsLocal() bool {
	return r.GetURI() == ""
}

// IsRemote reports whether the reference names a location with a non-file URL scheme.
func (r Reference) IsRemote() bool {
	u, err := url.Parse(r.GetURI())
	if err != nil {
		return false
	}
	// single letter schemes are windows drive letters
	return len(u.Scheme) > 1 && u.Scheme != "file"
}

func (r Reference) Validate() error {
	if strings.TrimSpace(string(r)) == "" {
		return errors.New("reference is empty")
	}

	uri := r.GetURI()

	if uri != "" {
		if _, err := url.Parse(uri); err != nil {
			return fmt.Errorf("invalid reference URI: %w", err)
		}
	}

	if r.HasJSONPointer() {
		if err := r.GetJSONPointer().Validate(); err != nil {
			return fmt.Errorf("invalid reference JSON pointer: %w", err)
		}
	}

	return nil
}

func (r Reference) String() string {
	return string(r)
}
