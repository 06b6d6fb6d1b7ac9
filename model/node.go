package model

import (
	"github.com/swagcheck/swagcheck/jsonpointer"
	"gopkg.in/yaml.v3"
)

// Node is one value of the document.
type Node struct {
	parent   *Node
	pointer  jsonpointer.JSONPointer
	property string

	key  *yaml.Node // mapping key when the node is an object member
	src  *yaml.Node // node as written, possibly an alias
	node *yaml.Node // src with aliases resolved

	keys     []string
	children map[string]*Node
	elements []*Node
}

// Get returns the member named key of an object node, or nil.
func (n *Node) Get(key string) *Node {
	if n == nil || n.children == nil {
		return nil
	}
	return n.children[key]
}

// Has reports whether an object node has a member named key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

func (n *Node) IsObject() bool {
	return n != nil && n.node != nil && n.node.Kind == yaml.MappingNode
}

func (n *Node) IsArray() bool {
	return n != nil && n.node != nil && n.node.Kind == yaml.SequenceNode
}

// IsValue reports whether the node is a scalar.
func (n *Node) IsValue() bool {
	return n != nil && n.node != nil && n.node.Kind == yaml.ScalarNode
}

// IsNull reports whether the node is a null scalar.
func (n *Node) IsNull() bool {
	return n.IsValue() && n.node.ShortTag() == "!!null"
}

// Value returns the text of a scalar node, or "".
func (n *Node) Value() string {
	if !n.IsValue() {
		return ""
	}
	return n.node.Value
}

// StringValue returns the text of a string scalar.
func (n *Node) StringValue() (string, bool) {
	if !n.IsValue() || n.node.ShortTag() != "!!str" {
		return "", false
	}
	return n.node.Value, true
}

// Pointer returns the structural path of the node.
func (n *Node) Pointer() jsonpointer.JSONPointer {
	if n == nil {
		return jsonpointer.Root
	}
	return n.pointer
}

// Property returns the member name of the node within its parent object, or "".
func (n *Node) Property() string {
	if n == nil {
		return ""
	}
	return n.property
}

// Start returns where the node begins. For object members this is the position of the key.
func (n *Node) Start() Position {
	switch {
	case n == nil:
		return Position{}
	case n.key != nil:
		return Position{Line: n.key.Line, Column: n.key.Column}
	case n.src != nil:
		return Position{Line: n.src.Line, Column: n.src.Column}
	default:
		return Position{}
	}
}

// Keys returns the member names of an object node in source order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return n.keys
}

// Elements returns the items of an array node.
func (n *Node) Elements() []*Node {
	if n == nil {
		return nil
	}
	return n.elements
}

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// YAML returns the lexical node with aliases resolved.
func (n *Node) YAML() *yaml.Node {
	if n == nil {
		return nil
	}
	return n.node
}

// KeyNode returns the lexical key of an object member, or nil.
func (n *Node) KeyNode() *yaml.Node {
	if n == nil {
		return nil
	}
	return n.key
}

func (n *Node) set(name string, child *Node) {
	if _, exists := n.children[name]; !exists {
		n.keys = append(n.keys, name)
	}
	n.children[name] = child
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, k := range n.keys {
		if !n.children[k].walk(yield) {
			return false
		}
	}
	for _, e := range n.elements {
		if !e.walk(yield) {
			return false
		}
	}
	return true
}
