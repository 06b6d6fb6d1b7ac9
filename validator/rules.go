package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/swagcheck/swagcheck/document"
	"github.com/swagcheck/swagcheck/model"
	"github.com/swagcheck/swagcheck/validation"
)

// validateModel applies the rules the grammar cannot express to every node of the document.
func (v *Validator) validateModel(ctx context.Context, doc *document.Document, _ string) []validation.Diagnostic {
	var diagnostics []validation.Diagnostic

	for node := range doc.Model().AllNodes() {
		if ctx.Err() != nil {
			return diagnostics
		}
		diagnostics = append(diagnostics, checkArrayTypeDefinition(node)...)
		diagnostics = append(diagnostics, checkObjectTypeDefinition(node)...)
	}

	return diagnostics
}

// checkArrayTypeDefinition requires an object items type on array type definitions.
func checkArrayTypeDefinition(node *model.Node) []validation.Diagnostic {
	if !hasArrayType(node) {
		return nil
	}

	items := node.Get("items")
	if items == nil {
		return []validation.Diagnostic{errorAt(node, validation.MessageArrayMissingItems)}
	}
	if !items.IsObject() {
		return []validation.Diagnostic{errorAt(items, validation.MessageArrayItemsShouldBeObject)}
	}
	return nil
}

func hasArrayType(node *model.Node) bool {
	if !node.IsObject() {
		return false
	}
	typ := node.Get("type")
	return typ.IsValue() && strings.EqualFold(typ.Value(), "array")
}

// isSchemaDefinition matches the locations holding schema objects: everything under the
// top-level definitions and every schema member. Inline schemas elsewhere (items,
// additionalProperties, allOf) are not matched.
func isSchemaDefinition(node *model.Node) bool {
	pointer := node.Pointer().String()
	return strings.HasPrefix(pointer, "/definitions") || strings.HasSuffix(pointer, "/schema")
}

func checkObjectTypeDefinition(node *model.Node) []validation.Diagnostic {
	if !node.IsObject() || !isSchemaDefinition(node) {
		return nil
	}

	var diagnostics []validation.Diagnostic
	diagnostics = append(diagnostics, checkMissingType(node)...)
	diagnostics = append(diagnostics, checkMissingRequiredProperties(node)...)
	return diagnostics
}

// checkMissingType requires type: object alongside properties.
func checkMissingType(node *model.Node) []validation.Diagnostic {
	if !node.Has("properties") {
		return nil
	}

	typ := node.Get("type")
	switch {
	case typ == nil:
		return []validation.Diagnostic{errorAt(node, validation.MessageTypeMissing)}
	case !typ.IsValue() || typ.Value() != "object":
		return []validation.Diagnostic{errorAt(node, validation.MessageWrongType)}
	}
	return nil
}

// checkMissingRequiredProperties requires every required name to be declared in properties.
func checkMissingRequiredProperties(node *model.Node) []validation.Diagnostic {
	required := node.Get("required")
	if !required.IsArray() {
		return nil
	}

	properties := node.Get("properties")
	if properties == nil {
		return []validation.Diagnostic{errorAt(node, validation.MessageMissingProperties)}
	}

	var diagnostics []validation.Diagnostic
	for _, entry := range required.Elements() {
		if !entry.IsValue() {
			continue
		}
		name := entry.Value()
		if !properties.Has(name) {
			diagnostics = append(diagnostics, errorAt(entry, fmt.Sprintf(validation.MessageRequiredPropertyUndefined, name)))
		}
	}
	return diagnostics
}

func errorAt(node *model.Node, message string) validation.Diagnostic {
	return validation.NewError(node.Start().Line, message)
}
