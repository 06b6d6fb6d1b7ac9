package yml

import (
	"context"

	"github.com/swagcheck/swagcheck/errors"
	"gopkg.in/yaml.v3"
)

const (
	// ErrTerminate is a sentinel error that can be returned from a Walk function to terminate the walk.
	ErrTerminate = errors.Error("terminate")
	// ErrSkipChildren can be returned from a Walk function to skip the children of the current node.
	ErrSkipChildren = errors.Error("skip children")
)

// Visit describes the node being visited.
type Visit struct {
	Node *yaml.Node
	// Parent is the enclosing document, mapping or sequence node (or alias when following aliases).
	Parent *yaml.Node
	// Key is the key node when Node is a mapping value.
	Key *yaml.Node
	// Index is the position of Node in its parent sequence, -1 otherwise.
	Index int
	// IsKey is true when Node is itself a mapping key.
	IsKey bool
}

// VisitFunc represents a function that will be called for each node in the node structure.
type VisitFunc func(ctx context.Context, v Visit) error

type walkOptions struct {
	followAliases bool
}

// WalkOption configures Walk.
type WalkOption func(*walkOptions)

// WithFollowAliases descends into the targets of alias nodes.
// By default aliases are visited but their targets are not walked again.
func WithFollowAliases() WalkOption {
	return func(o *walkOptions) {
		o.followAliases = true
	}
}

// Walk will walk the yaml node structure and call the provided VisitFunc for each node in the document.
// The walk stops early when ctx is done.
func Walk(ctx context.Context, node *yaml.Node, visit VisitFunc, opts ...WalkOption) error {
	o := &walkOptions{}
	for _, opt := range opts {
		opt(o)
	}

	w := walker{visit: visit, opts: o}
	err := w.walkNode(ctx, Visit{Node: node, Index: -1})
	if err != nil {
		if errors.Is(err, ErrTerminate) {
			return nil
		}
		return err
	}

	return nil
}

type walker struct {
	visit VisitFunc
	opts  *walkOptions
}

func (w walker) walkNode(ctx context.Context, v Visit) error {
	if v.Node == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := w.visit(ctx, v); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}

	node := v.Node
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for i, child := range node.Content {
			index := i
			if node.Kind == yaml.DocumentNode {
				index = -1
			}
			if err := w.walkNode(ctx, Visit{Node: child, Parent: node, Index: index}); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			value := node.Content[i+1]

			if err := w.walkNode(ctx, Visit{Node: key, Parent: node, Index: -1, IsKey: true}); err != nil {
				return err
			}
			if err := w.walkNode(ctx, Visit{Node: value, Parent: node, Key: key, Index: -1}); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		if w.opts.followAliases {
			return w.walkNode(ctx, Visit{Node: node.Alias, Parent: node, Index: -1})
		}
	}

	return nil
}
