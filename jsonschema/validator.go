// Package jsonschema checks documents against the primary grammar of a schema catalog using
// a general purpose JSON Schema implementation.
package jsonschema

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/swagcheck/swagcheck/errors"
	"github.com/swagcheck/swagcheck/internal/logging"
	"github.com/swagcheck/swagcheck/jsonpointer"
	"github.com/swagcheck/swagcheck/schema"
	"github.com/swagcheck/swagcheck/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// ErrSchemaUnavailable is returned when the grammar cannot be compiled.
	ErrSchemaUnavailable = errors.Error("schema unavailable")
	// ErrInvalidInstance is returned when the instance is not valid JSON.
	ErrInvalidInstance = errors.Error("invalid instance")
)

var defaultPrinter = message.NewPrinter(language.English)

// Violation is one failed constraint.
type Violation struct {
	InstanceLocation jsonpointer.JSONPointer
	Message          string
	// Keyword is the schema keyword path that failed, e.g. "required" or "properties/type".
	Keyword  string
	Severity validation.Severity
}

// Report is the outcome of validating one instance.
type Report struct {
	Violations []Violation
}

// Valid reports whether the instance satisfied the schema.
func (r Report) Valid() bool {
	return len(r.Violations) == 0
}

// Validator validates JSON instances against a catalog's primary grammar.
// The grammar is compiled on first use; a compile failure is remembered.
type Validator struct {
	catalog *schema.Catalog
	logger  logging.Logger

	once       sync.Once
	compiled   *jsValidator.Schema
	compileErr error
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used to report compilation.
func WithLogger(l logging.Logger) Option {
	return func(v *Validator) {
		v.logger = logging.OrNop(l)
	}
}

// NewValidator returns a Validator for catalog's primary grammar.
func NewValidator(catalog *schema.Catalog, opts ...Option) *Validator {
	v := &Validator{
		catalog: catalog,
		logger:  catalog.Logger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks instanceJSON against the grammar.
func (v *Validator) Validate(ctx context.Context, instanceJSON []byte) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	v.once.Do(v.compile)
	if v.compileErr != nil {
		return Report{}, ErrSchemaUnavailable.Wrap(v.compileErr)
	}

	instance, err := jsValidator.UnmarshalJSON(bytes.NewReader(instanceJSON))
	if err != nil {
		return Report{}, ErrInvalidInstance.Wrap(err)
	}

	err = v.compiled.Validate(instance)
	if err == nil {
		return Report{}, nil
	}

	var validationErr *jsValidator.ValidationError
	if !errors.As(err, &validationErr) {
		return Report{}, fmt.Errorf("validating instance: %w", err)
	}

	return Report{Violations: getRootCauses(validationErr)}, nil
}

func (v *Validator) compile() {
	primary := v.catalog.Primary()
	if primary == nil {
		v.compileErr = errors.New("no primary schema loaded")
		v.logger.Error("structural validation unavailable", "error", v.compileErr)
		return
	}

	c := jsValidator.NewCompiler()
	c.DefaultDraft(jsValidator.Draft4)

	for _, doc := range v.catalog.Documents() {
		res, err := jsValidator.UnmarshalJSON(bytes.NewReader(doc.JSON()))
		if err != nil {
			v.compileErr = fmt.Errorf("schema %s is not valid json: %w", doc.ID(), err)
			v.logger.Error("structural validation unavailable", "error", v.compileErr)
			return
		}

		if err := c.AddResource(doc.ID(), res); err != nil {
			// meta-schemas such as draft-04 are built into the compiler
			var exists *jsValidator.ResourceExistsError
			if errors.As(err, &exists) {
				v.logger.Debug("using built-in schema", "id", doc.ID())
				continue
			}
			v.compileErr = fmt.Errorf("adding schema %s: %w", doc.ID(), err)
			v.logger.Error("structural validation unavailable", "error", v.compileErr)
			return
		}
	}

	compiled, err := c.Compile(primary.ID())
	if err != nil {
		v.compileErr = fmt.Errorf("compiling %s: %w", primary.ID(), err)
		v.logger.Error("structural validation unavailable", "error", v.compileErr)
		return
	}

	v.logger.Debug("compiled schema", "id", primary.ID())
	v.compiled = compiled
}

func getRootCauses(err *jsValidator.ValidationError) []Violation {
	var violations []Violation
	seen := map[Violation]struct{}{}

	var collect func(*jsValidator.ValidationError)
	collect = func(e *jsValidator.ValidationError) {
		if len(e.Causes) > 0 {
			for _, cause := range e.Causes {
				collect(cause)
			}
			return
		}

		violation := Violation{
			InstanceLocation: jsonpointer.PartsToJSONPointer(e.InstanceLocation),
			Message:          violationMessage(e),
			Keyword:          strings.Join(e.ErrorKind.KeywordPath(), "/"),
			Severity:         validation.SeverityError,
		}
		if _, dup := seen[violation]; dup {
			return
		}
		seen[violation] = struct{}{}
		violations = append(violations, violation)
	}
	collect(err)

	return violations
}

func violationMessage(e *jsValidator.ValidationError) string {
	msg := e.ErrorKind.LocalizedString(defaultPrinter)
	if len(e.InstanceLocation) == 0 {
		return msg
	}
	return fmt.Sprintf("schema field %s %s", strings.Join(e.InstanceLocation, "."), msg)
}
