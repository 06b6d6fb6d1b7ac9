package validator

import (
	"github.com/swagcheck/swagcheck/jsonpointer"
	"github.com/swagcheck/swagcheck/jsonschema"
	"github.com/swagcheck/swagcheck/validation"
	"gopkg.in/yaml.v3"
)

// ErrorProcessor positions structural violations in the source they were found in.
type ErrorProcessor struct {
	root *yaml.Node
}

// NewErrorProcessor returns an ErrorProcessor for the lexical tree root.
func NewErrorProcessor(root *yaml.Node) *ErrorProcessor {
	return &ErrorProcessor{root: root}
}

// ProcessReport returns one diagnostic per violation. A violation whose location does not
// exist in the source, such as a missing property, is placed on the nearest enclosing node.
func (p *ErrorProcessor) ProcessReport(report jsonschema.Report) []validation.Diagnostic {
	diagnostics := make([]validation.Diagnostic, 0, len(report.Violations))

	for _, violation := range report.Violations {
		loc, _ := jsonpointer.FindYAMLNode(p.root, violation.InstanceLocation)

		line := loc.Line()
		if line == 0 {
			line = p.firstLine()
		}

		diagnostics = append(diagnostics, validation.Diagnostic{
			Line:     line,
			Severity: violation.Severity,
			Message:  violation.Message,
		})
	}

	return diagnostics
}

// ProcessMessage reports a failure of the structural validator itself at the start of the document.
func (p *ErrorProcessor) ProcessMessage(message string) []validation.Diagnostic {
	return []validation.Diagnostic{validation.NewError(p.firstLine(), message)}
}

func (p *ErrorProcessor) firstLine() int {
	node := p.root
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node == nil || node.Line == 0 {
		return 1
	}
	return node.Line
}
