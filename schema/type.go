package schema

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/swagcheck/swagcheck/jsonpointer"
	"github.com/swagcheck/swagcheck/yml"
	"gopkg.in/yaml.v3"
)

// maxReferenceHops bounds how many references are followed in one resolution.
const maxReferenceHops = 32

// TypeDefinition describes the semantics of one schema node. Instances are created by
// Document.Type and never change afterwards; one instance exists per (document, path).
type TypeDefinition struct {
	kind     Kind
	path     jsonpointer.JSONPointer
	document *Document
	node     *yaml.Node

	ref      string
	patterns []pattern
}

type pattern struct {
	source string
	re     *regexp.Regexp
}

func newTypeDefinition(doc *Document, path jsonpointer.JSONPointer, node *yaml.Node) *TypeDefinition {
	t := &TypeDefinition{
		kind:     discriminate(node),
		path:     path,
		document: doc,
		node:     node,
	}

	if t.kind == KindReference {
		t.ref, _ = yml.StringValue(yml.GetMapElement(node, "$ref"))
	}

	if pp := yml.GetMapElement(node, "patternProperties"); pp != nil && pp.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(pp.Content); i += 2 {
			source := yml.ResolveAlias(pp.Content[i]).Value
			re, err := regexp.Compile(source)
			if err != nil {
				doc.logger().Warn("skipping pattern property", "pattern", source, "path", path.String(), "error", err)
				continue
			}
			t.patterns = append(t.patterns, pattern{source: source, re: re})
		}
	}

	return t
}

func discriminate(node *yaml.Node) Kind {
	if _, ok := yml.StringValue(yml.GetMapElement(node, "$ref")); ok {
		return KindReference
	}

	if typ := yml.GetMapElement(node, "type"); typ != nil {
		switch typ.Kind {
		case yaml.ScalarNode:
			if k, ok := kindOfTypeName(typ.Value); ok {
				return k
			}
		case yaml.SequenceNode:
			for _, item := range typ.Content {
				item = yml.ResolveAlias(item)
				if item == nil || item.Value == "null" {
					continue
				}
				if k, ok := kindOfTypeName(item.Value); ok {
					return k
				}
			}
			if len(typ.Content) > 0 {
				return KindNull
			}
		}
	}

	for _, c := range combinators {
		if yml.GetMapElement(node, c.keyword) != nil {
			return c.kind
		}
	}

	for _, keyword := range []string{"properties", "patternProperties", "additionalProperties"} {
		if yml.GetMapElement(node, keyword) != nil {
			return KindObject
		}
	}

	if yml.GetMapElement(node, "items") != nil {
		return KindArray
	}

	return KindUndefined
}

func (t *TypeDefinition) Kind() Kind {
	return t.kind
}

// Path returns where the type is defined inside its document.
func (t *TypeDefinition) Path() jsonpointer.JSONPointer {
	return t.path
}

// Document returns the schema document owning the type.
func (t *TypeDefinition) Document() *Document {
	return t.document
}

// Node returns the raw schema node the type was built from.
func (t *TypeDefinition) Node() *yaml.Node {
	return t.node
}

// Reference returns the reference string of a reference type.
func (t *TypeDefinition) Reference() string {
	return t.ref
}

func (t *TypeDefinition) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.kind == KindReference {
		return fmt.Sprintf("%s(%s -> %s)", t.kind, t.pathString(), t.ref)
	}
	return fmt.Sprintf("%s(%s)", t.kind, t.pathString())
}

func (t *TypeDefinition) pathString() string {
	return t.document.ID() + "#" + t.path.String()
}

// Resolve follows references until a non-reference type is reached. Non-reference
// types resolve to themselves. Dangling and cyclic reference chains resolve to nil.
func (t *TypeDefinition) Resolve() *TypeDefinition {
	current := t
	for hops := 0; current != nil && current.kind == KindReference; hops++ {
		if hops >= maxReferenceHops {
			current.document.logger().Debug("reference chain too long", "type", t.String())
			return nil
		}
		current = current.document.resolveReference(current.ref)
	}
	return current
}

// Members returns the member types of a composite, in declaration order. Objects that also
// carry a combinator return its members. Other kinds return nil.
func (t *TypeDefinition) Members() []*TypeDefinition {
	keyword := ""
	for _, c := range combinators {
		if c.kind == t.kind || (t.kind == KindObject && yml.GetMapElement(t.node, c.keyword) != nil) {
			keyword = c.keyword
			break
		}
	}
	if keyword == "" {
		return nil
	}

	seq := yml.GetMapElement(t.node, keyword)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}

	base := t.path.Append(keyword)
	members := make([]*TypeDefinition, 0, len(seq.Content))
	for i := range seq.Content {
		if m := t.document.Type(base.Append(strconv.Itoa(i))); m != nil {
			members = append(members, m)
		}
	}
	return members
}

// Properties returns the names declared under "properties" in source order.
func (t *TypeDefinition) Properties() []string {
	props := yml.GetMapElement(t.node, "properties")
	if props == nil || props.Kind != yaml.MappingNode {
		return nil
	}
	names := make([]string, 0, len(props.Content)/2)
	for i := 0; i+1 < len(props.Content); i += 2 {
		names = append(names, yml.ResolveAlias(props.Content[i]).Value)
	}
	return names
}

// PropertyType returns the type of the named property: a declared property first, then the
// first matching pattern property, then additionalProperties when it is a schema. Composites
// answer with the first member that knows the property; references delegate to their target.
func (t *TypeDefinition) PropertyType(name string) *TypeDefinition {
	return t.propertyType(name, 0)
}

func (t *TypeDefinition) propertyType(name string, depth int) *TypeDefinition {
	if t == nil || depth > maxReferenceHops {
		return nil
	}

	switch {
	case t.kind == KindReference:
		return t.Resolve().propertyType(name, depth+1)
	case t.kind.IsComposite():
		return t.memberLookup(depth, func(m *TypeDefinition, d int) *TypeDefinition { return m.propertyType(name, d) })
	case t.kind != KindObject:
		return nil
	}

	if props := yml.GetMapElement(t.node, "properties"); props != nil {
		if _, _, ok := yml.GetMapElementNodes(props, name); ok {
			return t.document.Type(t.path.Append("properties").Append(name))
		}
	}

	for _, p := range t.patterns {
		if p.re.MatchString(name) {
			return t.document.Type(t.path.Append("patternProperties").Append(p.source))
		}
	}

	if ap := yml.GetMapElement(t.node, "additionalProperties"); ap != nil && ap.Kind == yaml.MappingNode {
		return t.document.Type(t.path.Append("additionalProperties"))
	}

	return t.memberLookup(depth, func(m *TypeDefinition, d int) *TypeDefinition { return m.propertyType(name, d) })
}

// ItemsType returns the item type of an array. For tuple-form items the first item type is returned.
func (t *TypeDefinition) ItemsType() *TypeDefinition {
	return t.itemsType(0, 0)
}

// ItemsTypeAt returns the type of the item at index, honouring tuple-form items.
func (t *TypeDefinition) ItemsTypeAt(index int) *TypeDefinition {
	return t.itemsType(index, 0)
}

func (t *TypeDefinition) itemsType(index, depth int) *TypeDefinition {
	if t == nil || depth > maxReferenceHops {
		return nil
	}

	switch {
	case t.kind == KindReference:
		return t.Resolve().itemsType(index, depth+1)
	case t.kind.IsComposite():
		return t.memberLookup(depth, func(m *TypeDefinition, d int) *TypeDefinition { return m.itemsType(index, d) })
	case t.kind != KindArray:
		return nil
	}

	items := yml.GetMapElement(t.node, "items")
	if items == nil {
		return nil
	}

	base := t.path.Append("items")
	switch items.Kind {
	case yaml.MappingNode:
		return t.document.Type(base)
	case yaml.SequenceNode:
		if index < 0 || index >= len(items.Content) {
			if ai := yml.GetMapElement(t.node, "additionalItems"); ai != nil && ai.Kind == yaml.MappingNode {
				return t.document.Type(t.path.Append("additionalItems"))
			}
			return nil
		}
		return t.document.Type(base.Append(strconv.Itoa(index)))
	default:
		return nil
	}
}

func (t *TypeDefinition) memberLookup(depth int, lookup func(*TypeDefinition, int) *TypeDefinition) *TypeDefinition {
	for _, m := range t.Members() {
		if found := lookup(m, depth+1); found != nil {
			return found
		}
	}
	return nil
}

func (t *TypeDefinition) Description() string {
	return t.stringKeyword("description")
}

func (t *TypeDefinition) Title() string {
	return t.stringKeyword("title")
}

func (t *TypeDefinition) Format() string {
	return t.stringKeyword("format")
}

// Enum returns the decoded enumerated values, or nil when the type declares none.
func (t *TypeDefinition) Enum() []any {
	enum := yml.GetMapElement(t.node, "enum")
	if enum == nil || enum.Kind != yaml.SequenceNode {
		return nil
	}
	values := make([]any, 0, len(enum.Content))
	for _, item := range enum.Content {
		var v any
		if err := item.Decode(&v); err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Required returns the names listed under "required".
func (t *TypeDefinition) Required() []string {
	required := yml.GetMapElement(t.node, "required")
	if required == nil || required.Kind != yaml.SequenceNode {
		return nil
	}
	names := make([]string, 0, len(required.Content))
	for _, item := range required.Content {
		if s, ok := yml.StringValue(item); ok {
			names = append(names, s)
		}
	}
	return names
}

// Default returns the decoded default value.
func (t *TypeDefinition) Default() (any, bool) {
	def := yml.GetMapElement(t.node, "default")
	if def == nil {
		return nil, false
	}
	var v any
	if err := def.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

func (t *TypeDefinition) stringKeyword(keyword string) string {
	s, _ := yml.StringValue(yml.GetMapElement(t.node, keyword))
	return s
}
