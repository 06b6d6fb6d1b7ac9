// Package document turns API description text into the three views validation works on:
// the lexical yaml tree, its JSON form and its semantic model.
package document

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/swagcheck/swagcheck/errors"
	"github.com/swagcheck/swagcheck/json"
	"github.com/swagcheck/swagcheck/model"
	"github.com/swagcheck/swagcheck/system"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when document text cannot be parsed.
const ErrInvalidDocument = errors.Error("invalid document")

// Document is a parsed API description.
type Document struct {
	location string
	root     *yaml.Node
	json     []byte
	model    *model.Model
}

type options struct {
	location string
}

// Option configures Parse.
type Option func(*options)

// WithLocation records where the document was loaded from.
func WithLocation(location string) Option {
	return func(o *options) {
		o.location = location
	}
}

// Parse parses YAML or JSON text.
func Parse(data []byte, opts ...Option) (*Document, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrInvalidDocument.Wrap(errors.New("document is empty"))
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrInvalidDocument.Wrap(errors.New("document has no content"))
	}

	jsonData, err := json.Marshal(&root)
	if err != nil {
		return nil, ErrInvalidDocument.Wrap(fmt.Errorf("converting to json: %w", err))
	}

	return &Document{
		location: o.location,
		root:     &root,
		json:     jsonData,
		model:    model.New(&root),
	}, nil
}

// ParseFile reads path through fsys and parses it, recording path as its location.
func ParseFile(fsys system.VirtualFS, path string) (*Document, error) {
	data, err := system.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, WithLocation(path))
}

// Root returns the lexical document node.
func (d *Document) Root() *yaml.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// JSON returns the document as compact JSON.
func (d *Document) JSON() []byte {
	if d == nil {
		return nil
	}
	return d.json
}

func (d *Document) Model() *model.Model {
	if d == nil {
		return nil
	}
	return d.model
}

// Location returns where the document was loaded from, if known.
func (d *Document) Location() string {
	if d == nil {
		return ""
	}
	return d.location
}

var lineRegex = regexp.MustCompile(`line (\d+)`)

// ErrorLine extracts the 1-based line a parse error refers to, or 1 when it names none.
func ErrorLine(err error) int {
	if err == nil {
		return 0
	}
	if m := lineRegex.FindStringSubmatch(err.Error()); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil && line > 0 {
			return line
		}
	}
	return 1
}
