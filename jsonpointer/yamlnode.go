package jsonpointer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Location is the result of navigating a yaml tree by pointer.
type Location struct {
	// Node is the value node addressed.
	Node *yaml.Node
	// Key is the mapping key node when Node is a mapping value, otherwise nil.
	Key *yaml.Node
	// Pointer is the portion of the requested pointer that was resolved.
	Pointer JSONPointer
}

// Line returns the 1-based line of the location, preferring the key line for mapping values.
func (l Location) Line() int {
	if l.Key != nil {
		return l.Key.Line
	}
	if l.Node != nil {
		return l.Node.Line
	}
	return 0
}

// GetYAMLNode navigates root to the node the pointer addresses.
// Document nodes are unwrapped, aliases and merge keys are followed.
func GetYAMLNode(root *yaml.Node, pointer JSONPointer) (*yaml.Node, error) {
	stack, err := pointer.tokens()
	if err != nil {
		return nil, ErrValidation.Wrap(err)
	}

	loc, remaining := navigate(root, stack)
	if loc.Node == nil {
		return nil, ErrNotFound.Wrap(fmt.Errorf("yaml node is nil at %s", pointer))
	}
	if remaining > 0 {
		return nil, ErrNotFound.Wrap(fmt.Errorf("%s not found, resolved up to %q", pointer, loc.Pointer))
	}
	return loc.Node, nil
}

// FindYAMLNode navigates root as far as the pointer allows and returns the deepest
// location reached. exact is false when some suffix of the pointer did not exist, in
// which case the location is the nearest existing ancestor.
func FindYAMLNode(root *yaml.Node, pointer JSONPointer) (loc Location, exact bool) {
	stack, err := pointer.tokens()
	if err != nil {
		loc, _ = navigate(root, nil)
		return loc, false
	}

	loc, remaining := navigate(root, stack)
	return loc, remaining == 0
}

func navigate(root *yaml.Node, stack []token) (Location, int) {
	loc := Location{Node: resolve(root), Pointer: Root}
	if loc.Node == nil {
		return loc, len(stack)
	}

	for i, part := range stack {
		var key, value *yaml.Node

		switch loc.Node.Kind {
		case yaml.MappingNode:
			key, value = lookupMapping(loc.Node, part.name(), 0)
		case yaml.SequenceNode:
			if index, ok := part.index(); ok && index < len(loc.Node.Content) {
				value = loc.Node.Content[index]
			}
		}

		if value == nil {
			return loc, len(stack) - i
		}

		loc = Location{
			Node:    resolve(value),
			Key:     key,
			Pointer: loc.Pointer + "/" + JSONPointer(part),
		}
	}

	return loc, 0
}

// maxMergeDepth bounds merge key recursion for self-merging documents.
const maxMergeDepth = 16

func lookupMapping(node *yaml.Node, key string, depth int) (*yaml.Node, *yaml.Node) {
	// last occurrence wins, as in the JSON and model trees
	for i := len(node.Content) - len(node.Content)%2 - 2; i >= 0; i -= 2 {
		keyNode := resolve(node.Content[i])
		if keyNode != nil && keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return node.Content[i], node.Content[i+1]
		}
	}

	if depth >= maxMergeDepth {
		return nil, nil
	}

	// If key not found, check for YAML merge keys (<<: *alias)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind != yaml.ScalarNode || node.Content[i].Value != "<<" {
			continue
		}

		merged := resolve(node.Content[i+1])
		if merged == nil {
			continue
		}

		sources := []*yaml.Node{merged}
		if merged.Kind == yaml.SequenceNode {
			sources = merged.Content
		}
		for _, src := range sources {
			src = resolve(src)
			if src == nil || src.Kind != yaml.MappingNode {
				continue
			}
			if k, v := lookupMapping(src, key, depth+1); v != nil {
				return k, v
			}
		}
	}

	return nil, nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}
