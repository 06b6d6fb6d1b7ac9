package schema

import (
	"strings"
	"sync"

	"github.com/swagcheck/swagcheck/internal/logging"
	"github.com/swagcheck/swagcheck/jsonpointer"
	"gopkg.in/yaml.v3"
)

// Document is one loaded schema grammar. Its content never changes; its types are
// materialized lazily and cached for the lifetime of the document.
type Document struct {
	id      string
	content *yaml.Node
	json    []byte
	catalog *Catalog

	mu    sync.Mutex
	types map[jsonpointer.JSONPointer]*TypeDefinition
}

func newDocument(id string, content *yaml.Node, jsonData []byte, catalog *Catalog) *Document {
	return &Document{
		id:      id,
		content: content,
		json:    jsonData,
		catalog: catalog,
		types:   map[jsonpointer.JSONPointer]*TypeDefinition{},
	}
}

// ID returns the declared id of the document without a fragment.
func (d *Document) ID() string {
	if d == nil {
		return ""
	}
	return d.id
}

// Content returns the root mapping of the schema text.
func (d *Document) Content() *yaml.Node {
	return d.content
}

// JSON returns the schema as JSON.
func (d *Document) JSON() []byte {
	return d.json
}

// RootType returns the type of the whole document.
func (d *Document) RootType() *TypeDefinition {
	return d.Type(jsonpointer.Root)
}

// Type returns the type defined at path, creating and caching it on first use.
// It returns nil when path does not address a schema object.
func (d *Document) Type(path jsonpointer.JSONPointer) *TypeDefinition {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.types[path]; ok {
		return t
	}

	node, err := jsonpointer.GetYAMLNode(d.content, path)
	if err != nil || node.Kind != yaml.MappingNode {
		return nil
	}

	t := newTypeDefinition(d, path, node)
	d.types[path] = t
	return t
}

// cachedTypes reports how many types have been materialized.
func (d *Document) cachedTypes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.types)
}

func (d *Document) logger() logging.Logger {
	if d == nil || d.catalog == nil {
		return logging.NopLogger{}
	}
	return d.catalog.logger
}

// resolveReference resolves ref relative to this document.
func (d *Document) resolveReference(ref string) *TypeDefinition {
	base, pointer, hasPointer := SplitReference(ref)

	target := d
	if base != "" {
		if d.catalog == nil {
			return nil
		}
		target = d.catalog.lookup(base)
		if target == nil {
			d.logger().Debug("reference to unknown schema", "ref", ref, "schema", base)
			return nil
		}
	}

	if !hasPointer {
		return target.RootType()
	}

	p, err := jsonpointer.ParseFragment(pointer)
	if err != nil {
		d.logger().Debug("invalid reference pointer", "ref", ref, "error", err)
		return nil
	}
	return target.Type(p)
}

// SplitReference splits a reference into the id of the schema it names and the pointer inside it.
// References starting with "/" or "#" have no base id. The pointer is the text after "#", or the
// whole reference when it starts with "/"; hasPointer is false when the reference has neither.
func SplitReference(ref string) (base, pointer string, hasPointer bool) {
	if ref == "" {
		return "", "", false
	}

	switch {
	case strings.HasPrefix(ref, "#"):
		return "", ref[1:], true
	case strings.HasPrefix(ref, "/"):
		return "", ref, true
	}

	base, pointer, hasPointer = strings.Cut(ref, "#")
	return base, pointer, hasPointer
}
