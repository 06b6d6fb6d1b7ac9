package validator

import (
	"context"
	"fmt"

	"github.com/swagcheck/swagcheck/document"
	"github.com/swagcheck/swagcheck/validation"
	"github.com/swagcheck/swagcheck/yml"
	"gopkg.in/yaml.v3"
)

type mappingKey struct {
	mapping *yaml.Node
	key     string
}

func (v *Validator) checkDuplicateKeys(ctx context.Context, doc *document.Document, _ string) []validation.Diagnostic {
	diagnostics, err := findDuplicateKeys(ctx, doc.Root())
	if err != nil {
		v.logger.Warn("duplicate key check interrupted", "error", err)
		return nil
	}
	return diagnostics
}

// findDuplicateKeys reports every occurrence of a scalar key that appears more than once in the
// same mapping. Alias targets are inspected once, where they are defined.
func findDuplicateKeys(ctx context.Context, root *yaml.Node) ([]validation.Diagnostic, error) {
	var order []mappingKey
	occurrences := map[mappingKey][]*yaml.Node{}

	err := yml.Walk(ctx, root, func(_ context.Context, v yml.Visit) error {
		if !v.IsKey || v.Node.Kind != yaml.ScalarNode {
			return nil
		}

		k := mappingKey{mapping: v.Parent, key: v.Node.Value}
		if _, seen := occurrences[k]; !seen {
			order = append(order, k)
		}
		occurrences[k] = append(occurrences[k], v.Node)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var diagnostics []validation.Diagnostic
	for _, k := range order {
		keys := occurrences[k]
		if len(keys) < 2 {
			continue
		}
		for _, key := range keys {
			diagnostics = append(diagnostics, validation.NewWarning(key.Line, fmt.Sprintf(validation.MessageDuplicateKey, k.key)))
		}
	}

	return diagnostics, nil
}
