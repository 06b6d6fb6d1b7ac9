// Package validator runs every check of a document and collects their findings.
package validator

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/swagcheck/swagcheck/document"
	"github.com/swagcheck/swagcheck/errors"
	"github.com/swagcheck/swagcheck/internal/logging"
	"github.com/swagcheck/swagcheck/jsonschema"
	"github.com/swagcheck/swagcheck/references"
	"github.com/swagcheck/swagcheck/schema"
	"github.com/swagcheck/swagcheck/system"
	"github.com/swagcheck/swagcheck/validation"
)

// StructuralValidator checks a document's JSON form against a grammar.
type StructuralValidator interface {
	Validate(ctx context.Context, instanceJSON []byte) (jsonschema.Report, error)
}

// ReferenceChecker checks the $ref entries of a document. baseURI is where the document was
// loaded from.
type ReferenceChecker interface {
	Check(ctx context.Context, baseURI string, doc *document.Document) []validation.Diagnostic
}

var (
	_ StructuralValidator = (*jsonschema.Validator)(nil)
	_ ReferenceChecker    = (*references.Checker)(nil)
)

// Check names one of the passes a Validator runs.
type Check string

const (
	CheckSchema     Check = "schema"
	CheckModel      Check = "model"
	CheckDuplicates Check = "duplicates"
	CheckReferences Check = "references"
)

// AllChecks returns every check in the order they run.
func AllChecks() []Check {
	return []Check{CheckSchema, CheckModel, CheckDuplicates, CheckReferences}
}

// Validator validates documents against the primary grammar of a catalog and the rules the
// grammar cannot express.
type Validator struct {
	catalog    *schema.Catalog
	structural StructuralValidator
	references ReferenceChecker
	checks     []Check
	logger     logging.Logger
}

// Option configures a Validator.
type Option func(*Validator)

func WithStructuralValidator(s StructuralValidator) Option {
	return func(v *Validator) {
		v.structural = s
	}
}

func WithReferenceChecker(r ReferenceChecker) Option {
	return func(v *Validator) {
		v.references = r
	}
}

func WithLogger(l logging.Logger) Option {
	return func(v *Validator) {
		v.logger = logging.OrNop(l)
	}
}

// WithChecks restricts validation to the given checks.
func WithChecks(checks ...Check) Option {
	return func(v *Validator) {
		v.checks = slices.Clone(checks)
	}
}

// New returns a Validator for catalog. Unless overridden, structural validation compiles the
// catalog's primary grammar and references are checked against the host file system.
func New(catalog *schema.Catalog, opts ...Option) *Validator {
	v := &Validator{
		catalog: catalog,
		checks:  AllChecks(),
		logger:  catalog.Logger(),
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.structural == nil {
		v.structural = jsonschema.NewValidator(catalog, jsonschema.WithLogger(v.logger))
	}
	if v.references == nil {
		v.references = references.NewChecker(&system.FileSystem{}, references.WithLogger(v.logger))
	}

	return v
}

// Catalog returns the catalog the Validator was built with.
func (v *Validator) Catalog() *schema.Catalog {
	return v.catalog
}

type pass func(ctx context.Context, doc *document.Document, baseURI string) []validation.Diagnostic

// Validate runs the enabled checks over doc and returns their de-duplicated findings sorted by
// line. It never fails: a check that cannot run contributes nothing and is logged.
func (v *Validator) Validate(ctx context.Context, doc *document.Document, baseURI string) []validation.Diagnostic {
	if doc == nil || doc.Root() == nil || len(doc.JSON()) == 0 || doc.Model() == nil {
		return nil
	}

	passes := map[Check]pass{
		CheckSchema:     v.validateAgainstSchema,
		CheckModel:      v.validateModel,
		CheckDuplicates: v.checkDuplicateKeys,
		CheckReferences: v.checkReferences,
	}

	var (
		mu      sync.Mutex
		results = validation.NewSet()
		wg      sync.WaitGroup
	)

	for _, check := range v.checks {
		run, ok := passes[check]
		if !ok {
			v.logger.Warn("unknown check", "check", check)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			found := v.runPass(ctx, check, run, doc, baseURI)

			mu.Lock()
			results.Add(found...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return results.Sorted()
}

func (v *Validator) runPass(ctx context.Context, check Check, run pass, doc *document.Document, baseURI string) (found []validation.Diagnostic) {
	logger := v.logger.With("check", check, "location", doc.Location())

	defer func() {
		if r := recover(); r != nil {
			logger.Error("check failed", "panic", fmt.Sprint(r))
			found = nil
		}
	}()

	if err := ctx.Err(); err != nil {
		logger.Debug("check skipped", "error", err)
		return nil
	}

	found = run(ctx, doc, baseURI)
	logger.Debug("check finished", "findings", len(found))
	return found
}

func (v *Validator) validateAgainstSchema(ctx context.Context, doc *document.Document, _ string) []validation.Diagnostic {
	processor := NewErrorProcessor(doc.Root())

	report, err := v.structural.Validate(ctx, doc.JSON())
	if err != nil {
		switch {
		case errors.Is(err, jsonschema.ErrSchemaUnavailable):
			v.logger.Warn("structural validation unavailable", "error", err)
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			return processor.ProcessMessage(fmt.Sprintf(validation.MessageSchemaValidationFailed, err))
		}
	}

	return processor.ProcessReport(report)
}

func (v *Validator) checkReferences(ctx context.Context, doc *document.Document, baseURI string) []validation.Diagnostic {
	return v.references.Check(ctx, baseURI, doc)
}
