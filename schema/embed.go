package schema

import (
	"fmt"
	"sync"

	_ "embed"
)

// Ids of the bundled grammars.
const (
	CoreSchemaID    = "http://json-schema.org/draft-04/schema"
	SwaggerSchemaID = "http://swagger.io/v2/schema.json"
)

//go:embed core.json
var coreSchemaJSON []byte

//go:embed swagger.json
var swaggerSchemaJSON []byte

// NewDefaultCatalog returns a catalog with the JSON Schema draft-04 grammar and the
// Swagger 2.0 grammar loaded, the latter as primary.
func NewDefaultCatalog(opts ...Option) (*Catalog, error) {
	c := NewCatalog(opts...)

	if _, err := c.Load(coreSchemaJSON); err != nil {
		return nil, fmt.Errorf("loading core grammar: %w", err)
	}
	if _, err := c.LoadPrimary(swaggerSchemaJSON); err != nil {
		return nil, fmt.Errorf("loading swagger grammar: %w", err)
	}

	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return NewDefaultCatalog()
})

// Default returns a shared catalog of the bundled grammars, built on first use.
func Default() (*Catalog, error) {
	return defaultCatalog()
}
