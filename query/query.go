// Package query selects document nodes with JSONPath expressions and reports the schema type
// that applies to each of them.
package query

import (
	"fmt"

	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/swagcheck/swagcheck/document"
	"github.com/swagcheck/swagcheck/errors"
	"github.com/swagcheck/swagcheck/model"
	"github.com/swagcheck/swagcheck/schema"
	"github.com/swagcheck/swagcheck/yml"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

const (
	// ErrInvalidExpression is returned for expressions that do not parse.
	ErrInvalidExpression = errors.Error("invalid jsonpath expression")
	// ErrEvaluation is returned when a compiled expression fails against a document.
	ErrEvaluation = errors.Error("jsonpath evaluation failed")
)

// Queryable evaluates a compiled expression against a yaml tree.
type Queryable interface {
	Query(root *yaml.Node) ([]*yaml.Node, error)
}

type rfcJSONPathQueryable struct {
	path *jsonpath.JSONPath
}

func (r rfcJSONPathQueryable) Query(root *yaml.Node) ([]*yaml.Node, error) {
	return r.path.Query(root), nil
}

type yamlPathQueryable struct {
	path *yamlpath.Path
}

func (y yamlPathQueryable) Query(root *yaml.Node) ([]*yaml.Node, error) {
	if y.path == nil {
		return nil, errors.New("expression is not compiled")
	}
	return y.path.Find(root)
}

type options struct {
	legacy bool
}

// Option configures how expressions are evaluated.
type Option func(*options)

// WithLegacyPaths evaluates expressions with the pre RFC 9535 dialect, whose filters
// accept forms such as @.type=='array' without parentheses around the comparison.
func WithLegacyPaths() Option {
	return func(o *options) {
		o.legacy = true
	}
}

// NewPath compiles expr. RFC 9535 syntax is used unless WithLegacyPaths is given.
func NewPath(expr string, opts ...Option) (Queryable, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.legacy {
		path, err := yamlpath.NewPath(expr)
		if err != nil {
			return nil, ErrInvalidExpression.Wrap(fmt.Errorf("%s: %w", expr, err))
		}
		return yamlPathQueryable{path: path}, nil
	}

	path, err := jsonpath.NewPath(expr, config.WithPropertyNameExtension())
	if err != nil {
		return nil, ErrInvalidExpression.Wrap(fmt.Errorf("%s: %w", expr, err))
	}
	return rfcJSONPathQueryable{path: path}, nil
}

// Select returns the model nodes expr matches in doc, in match order without repeats.
// Matches that are not values of the document, such as member names, are left out.
func Select(doc *document.Document, expr string, opts ...Option) ([]*model.Node, error) {
	path, err := NewPath(expr, opts...)
	if err != nil {
		return nil, err
	}

	nodes, err := selectPath(doc, path)
	if err != nil {
		return nil, ErrEvaluation.Wrap(fmt.Errorf("%s: %w", expr, err))
	}
	return nodes, nil
}

func selectPath(doc *document.Document, path Queryable) ([]*model.Node, error) {
	if doc.Root() == nil || doc.Model() == nil {
		return nil, nil
	}

	matches, err := path.Query(doc.Root())
	if err != nil {
		return nil, err
	}

	index := indexModel(doc.Model())
	index[doc.Root()] = doc.Model().Root()

	var nodes []*model.Node
	seen := map[*model.Node]struct{}{}
	for _, match := range matches {
		node, ok := index[yml.ResolveAlias(match)]
		if !ok {
			continue
		}
		if _, dup := seen[node]; dup {
			continue
		}
		seen[node] = struct{}{}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// Match pairs a selected node with the schema type that applies to it.
type Match struct {
	Node *model.Node
	// Type is nil when no grammar is loaded.
	Type *schema.TypeDefinition
}

// Types selects nodes like Select and resolves the type of each.
func Types(resolver *schema.Resolver, doc *document.Document, expr string, opts ...Option) ([]Match, error) {
	nodes, err := Select(doc, expr, opts...)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(nodes))
	for _, node := range nodes {
		matches = append(matches, Match{
			Node: node,
			Type: resolver.TypeOfNode(node),
		})
	}
	return matches, nil
}

// indexModel maps lexical nodes to the first model node built from them. Nodes reached
// through aliases share their lexical node with the anchor.
func indexModel(m *model.Model) map[*yaml.Node]*model.Node {
	index := make(map[*yaml.Node]*model.Node, m.Size())
	for node := range m.AllNodes() {
		if _, exists := index[node.YAML()]; !exists {
			index[node.YAML()] = node
		}
	}
	return index
}
