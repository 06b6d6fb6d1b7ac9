// Package schema builds an addressable type model from JSON Schema grammars.
//
// A Catalog owns the loaded grammars. Each Document materializes TypeDefinitions on demand,
// one per path, and references between grammars are resolved through the Catalog by id.
package schema

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/swagcheck/swagcheck/errors"
	"github.com/swagcheck/swagcheck/internal/logging"
	"github.com/swagcheck/swagcheck/json"
	"github.com/swagcheck/swagcheck/yml"
	"gopkg.in/yaml.v3"
)

const (
	// ErrInvalidSchema is returned when schema text cannot be loaded.
	ErrInvalidSchema = errors.Error("invalid schema")
	// ErrDuplicateSchema is returned when a schema id is already registered.
	ErrDuplicateSchema = errors.Error("duplicate schema")
)

// Catalog is a registry of schema documents keyed by id with one primary grammar.
// It is filled once at startup and only read afterwards.
type Catalog struct {
	mu        sync.RWMutex
	documents map[string]*Document
	primary   *Document

	logger logging.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used to report load failures and resolution problems.
func WithLogger(l logging.Logger) Option {
	return func(c *Catalog) {
		c.logger = logging.OrNop(l)
	}
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		documents: map[string]*Document{},
		logger:    logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load parses schema text (JSON or YAML) and registers it under its declared id.
func (c *Catalog) Load(data []byte) (*Document, error) {
	doc, err := c.load(data)
	if err != nil {
		c.logger.Error("failed to load schema", "error", err)
		return nil, err
	}
	c.logger.Debug("loaded schema", "id", doc.id)
	return doc, nil
}

func (c *Catalog) load(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, ErrInvalidSchema.Wrap(err)
	}

	content := yml.Unwrap(&root)
	if content == nil || content.Kind != yaml.MappingNode {
		return nil, ErrInvalidSchema.Wrap(errors.New("schema must be an object"))
	}

	id := normalizeID(declaredID(content))
	if id == "" {
		return nil, ErrInvalidSchema.Wrap(errors.New("schema has no id"))
	}

	jsonData, err := json.Marshal(content)
	if err != nil {
		return nil, ErrInvalidSchema.Wrap(fmt.Errorf("converting %s to json: %w", id, err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.documents[id]; exists {
		return nil, ErrDuplicateSchema.Wrap(fmt.Errorf("id %s", id))
	}

	doc := newDocument(id, content, jsonData, c)
	c.documents[id] = doc
	return doc, nil
}

func declaredID(content *yaml.Node) string {
	for _, keyword := range []string{"id", "$id"} {
		if id, ok := yml.StringValue(yml.GetMapElement(content, keyword)); ok {
			return id
		}
	}
	return ""
}

func normalizeID(id string) string {
	id, _, _ = strings.Cut(strings.TrimSpace(id), "#")
	return id
}

// LoadPrimary loads schema text and makes it the primary grammar.
func (c *Catalog) LoadPrimary(data []byte) (*Document, error) {
	doc, err := c.Load(data)
	if err != nil {
		return nil, err
	}
	c.SetPrimary(doc)
	return doc, nil
}

// SetPrimary designates the grammar documents are validated against.
func (c *Catalog) SetPrimary(doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primary = doc
}

// Primary returns the primary grammar, or nil.
func (c *Catalog) Primary() *Document {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.primary
}

// Schema returns the primary grammar when id is empty, otherwise the document registered
// under id, otherwise nil.
func (c *Catalog) Schema(id string) *Document {
	if c == nil {
		return nil
	}
	if id == "" {
		return c.Primary()
	}
	return c.lookup(id)
}

func (c *Catalog) lookup(id string) *Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.documents[normalizeID(id)]
}

// Documents returns every registered document ordered by id.
func (c *Catalog) Documents() []*Document {
	c.mu.RLock()
	defer c.mu.RUnlock()

	docs := make([]*Document, 0, len(c.documents))
	for _, doc := range c.documents {
		docs = append(docs, doc)
	}
	slices.SortFunc(docs, func(a, b *Document) int {
		return strings.Compare(a.id, b.id)
	})
	return docs
}

// Logger returns the logger the catalog was built with.
func (c *Catalog) Logger() logging.Logger {
	if c == nil {
		return logging.NopLogger{}
	}
	return c.logger
}
