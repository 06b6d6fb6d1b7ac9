// Package yml contains helpers for inspecting gopkg.in/yaml.v3 node trees.
package yml

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ResolveAlias follows alias nodes to the node they point at.
func ResolveAlias(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.AliasNode:
		return ResolveAlias(node.Alias)
	default:
		return node
	}
}

// Unwrap returns the content of a document node with aliases resolved, or the node itself.
func Unwrap(node *yaml.Node) *yaml.Node {
	node = ResolveAlias(node)
	if node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return ResolveAlias(node.Content[0])
	}
	return node
}

// GetMapElementNodes returns the key and value nodes stored under key in mapNode.
func GetMapElementNodes(mapNode *yaml.Node, key string) (*yaml.Node, *yaml.Node, bool) {
	resolvedMapNode := ResolveAlias(mapNode)
	if resolvedMapNode == nil || resolvedMapNode.Kind != yaml.MappingNode {
		return nil, nil, false
	}

	for i := 0; i+1 < len(resolvedMapNode.Content); i += 2 {
		keyNode := resolvedMapNode.Content[i]
		if keyNode.Value == key {
			return keyNode, resolvedMapNode.Content[i+1], true
		}
		// alias keys like *keyAlias
		if resolvedKeyNode := ResolveAlias(keyNode); resolvedKeyNode != nil && resolvedKeyNode.Value == key {
			return keyNode, resolvedMapNode.Content[i+1], true
		}
	}

	return nil, nil, false
}

// GetMapElement returns the alias resolved value stored under key in mapNode, or nil.
func GetMapElement(mapNode *yaml.Node, key string) *yaml.Node {
	_, value, ok := GetMapElementNodes(mapNode, key)
	if !ok {
		return nil
	}
	return ResolveAlias(value)
}

// IsMergeKey returns true if the given node is a YAML merge key (<<).
func IsMergeKey(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.Tag == "!!merge" && node.Value == "<<"
}

// StringValue returns the value of a string scalar.
func StringValue(node *yaml.Node) (string, bool) {
	node = ResolveAlias(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		return "", false
	}
	return node.Value, true
}

// EqualFold reports whether node is a scalar whose value matches s case-insensitively.
func EqualFold(node *yaml.Node, s string) bool {
	node = ResolveAlias(node)
	return node != nil && node.Kind == yaml.ScalarNode && strings.EqualFold(node.Value, s)
}
