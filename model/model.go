// Package model provides the semantic node tree of a parsed document.
//
// Every value in the lexical yaml tree becomes a Node addressed by its JSON pointer.
// Aliases and merge keys are expanded so the model reflects what the document means,
// while positions continue to point at where each value was written.
package model

import (
	"iter"
	"strconv"

	"github.com/swagcheck/swagcheck/jsonpointer"
	"github.com/swagcheck/swagcheck/yml"
	"gopkg.in/yaml.v3"
)

// maxNodes bounds alias expansion of documents that expand exponentially.
const maxNodes = 1 << 20

// Position is a 1-based source position.
type Position struct {
	Line   int
	Column int
}

// Model is the semantic tree of one document.
type Model struct {
	root *Node
	size int
}

// New builds the model of a yaml tree. A nil or empty tree has a nil root.
func New(root *yaml.Node) *Model {
	m := &Model{}
	if root == nil {
		return m
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return m
		}
		root = root.Content[0]
	}

	m.root = m.build(nil, jsonpointer.Root, "", nil, root)
	return m
}

// Root returns the root node, or nil for an empty document.
func (m *Model) Root() *Node {
	return m.root
}

// Size returns the number of nodes in the model.
func (m *Model) Size() int {
	return m.size
}

// AllNodes returns a pre-order traversal of every node in the model.
func (m *Model) AllNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if m.root != nil {
			m.root.walk(yield)
		}
	}
}

// Find returns the node addressed by pointer, or nil.
func (m *Model) Find(pointer jsonpointer.JSONPointer) *Node {
	if m.root == nil {
		return nil
	}
	if err := pointer.Validate(); err != nil {
		return nil
	}

	n := m.root
	for _, part := range pointer.Parts() {
		switch {
		case n.IsObject():
			n = n.Get(part)
		case n.IsArray():
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(n.elements) {
				return nil
			}
			n = n.elements[i]
		default:
			return nil
		}
		if n == nil {
			return nil
		}
	}
	return n
}

func (m *Model) build(parent *Node, pointer jsonpointer.JSONPointer, property string, key, src *yaml.Node) *Node {
	m.size++

	n := &Node{
		parent:   parent,
		pointer:  pointer,
		property: property,
		key:      key,
		src:      src,
		node:     yml.ResolveAlias(src),
	}
	if n.node == nil || m.size > maxNodes {
		return n
	}

	switch n.node.Kind {
	case yaml.MappingNode:
		n.children = map[string]*Node{}
		m.buildMembers(n, n.node, true)
	case yaml.SequenceNode:
		n.elements = make([]*Node, 0, len(n.node.Content))
		for i, item := range n.node.Content {
			n.elements = append(n.elements, m.build(n, pointer.Append(strconv.Itoa(i)), "", nil, item))
		}
	}

	return n
}

func (m *Model) buildMembers(n *Node, mapping *yaml.Node, explicit bool) {
	var merges []*yaml.Node

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]
		if yml.IsMergeKey(keyNode) {
			merges = append(merges, valueNode)
			continue
		}

		name := yml.ResolveAlias(keyNode).Value
		if _, exists := n.children[name]; exists && !explicit {
			continue
		}
		n.set(name, m.build(n, n.pointer.Append(name), name, keyNode, valueNode))
	}

	for _, merge := range merges {
		merged := yml.ResolveAlias(merge)
		if merged == nil {
			continue
		}
		sources := []*yaml.Node{merged}
		if merged.Kind == yaml.SequenceNode {
			sources = merged.Content
		}
		for _, src := range sources {
			if src = yml.ResolveAlias(src); src != nil && src.Kind == yaml.MappingNode && src != mapping {
				m.buildMembers(n, src, false)
			}
		}
	}
}
