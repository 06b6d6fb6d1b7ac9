// Package json converts yaml node trees into JSON.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/swagcheck/swagcheck/yml"
	"gopkg.in/yaml.v3"
)

// maxAliasDepth guards against alias chains that expand into themselves.
const maxAliasDepth = 1000

// YAMLToJSON will convert the provided YAML node to JSON in a stable way not reordering keys.
// Duplicate keys keep the position of their first occurrence and the value of their last.
func YAMLToJSON(node *yaml.Node, indentation int, buffer io.Writer) error {
	v, err := handleYAMLNode(node, 0)
	if err != nil {
		return err
	}

	e := json.NewEncoder(buffer)
	e.SetEscapeHTML(false)
	e.SetIndent("", strings.Repeat(" ", indentation))

	return e.Encode(v)
}

// Marshal returns the compact JSON form of node.
func Marshal(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := YAMLToJSON(node, 0, &buf); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func handleYAMLNode(node *yaml.Node, depth int) (any, error) {
	if node == nil {
		return nil, nil
	}
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("yaml nesting exceeds %d levels at line %d", maxAliasDepth, node.Line)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return handleYAMLNode(node.Content[0], depth+1)
	case yaml.SequenceNode:
		return handleSequenceNode(node, depth)
	case yaml.MappingNode:
		return handleMappingNode(node, depth)
	case yaml.ScalarNode:
		return handleScalarNode(node)
	case yaml.AliasNode:
		return handleYAMLNode(node.Alias, depth+1)
	default:
		return nil, fmt.Errorf("unknown node kind %d at line %d", node.Kind, node.Line)
	}
}

func handleMappingNode(node *yaml.Node, depth int) (any, error) {
	obj := &object{index: map[string]int{}}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if yml.IsMergeKey(keyNode) {
			if err := obj.merge(valueNode, depth); err != nil {
				return nil, err
			}
			continue
		}

		key, err := mappingKey(keyNode, depth)
		if err != nil {
			return nil, err
		}

		vv, err := handleYAMLNode(valueNode, depth+1)
		if err != nil {
			return nil, err
		}

		obj.set(key, vv, true)
	}

	return obj, nil
}

func mappingKey(keyNode *yaml.Node, depth int) (string, error) {
	resolved := yml.ResolveAlias(keyNode)
	if resolved != nil && resolved.Kind == yaml.ScalarNode {
		return resolved.Value, nil
	}

	kv, err := handleYAMLNode(keyNode, depth+1)
	if err != nil {
		return "", err
	}
	keyData, err := json.Marshal(kv)
	if err != nil {
		return "", err
	}
	return string(keyData), nil
}

func handleSequenceNode(node *yaml.Node, depth int) (any, error) {
	v := make([]any, len(node.Content))
	for i, n := range node.Content {
		vv, err := handleYAMLNode(n, depth+1)
		if err != nil {
			return nil, err
		}

		v[i] = vv
	}

	return v, nil
}

func handleScalarNode(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!str", "!!timestamp", "!!binary":
		return node.Value, nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return node.Value, nil
		}
		return v, nil
	default:
		return node.Value, nil
	}
}

type entry struct {
	key   string
	value any
}

// object is a JSON object that keeps the source order of its keys.
type object struct {
	entries []entry
	index   map[string]int
}

func (o *object) set(key string, value any, override bool) {
	if i, ok := o.index[key]; ok {
		if override {
			o.entries[i].value = value
		}
		return
	}
	o.index[key] = len(o.entries)
	o.entries = append(o.entries, entry{key: key, value: value})
}

// merge applies a merge key value. Keys already present are kept.
func (o *object) merge(valueNode *yaml.Node, depth int) error {
	resolved := yml.ResolveAlias(valueNode)
	if resolved == nil {
		return nil
	}

	sources := []*yaml.Node{resolved}
	if resolved.Kind == yaml.SequenceNode {
		sources = resolved.Content
	}

	for _, src := range sources {
		v, err := handleYAMLNode(src, depth+1)
		if err != nil {
			return err
		}
		merged, ok := v.(*object)
		if !ok {
			return fmt.Errorf("merge key value at line %d is not a mapping", valueNode.Line)
		}
		for _, e := range merged.entries {
			o.set(e.key, e.value, false)
		}
	}
	return nil
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, e.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, e.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	e := json.NewEncoder(buf)
	e.SetEscapeHTML(false)
	if err := e.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
