package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/swagcheck/swagcheck/document"
	"github.com/swagcheck/swagcheck/errors"
	"github.com/swagcheck/swagcheck/internal/config"
	"github.com/swagcheck/swagcheck/references"
	"github.com/swagcheck/swagcheck/system"
	"github.com/swagcheck/swagcheck/validation"
	"github.com/swagcheck/swagcheck/validator"
	"golang.org/x/sync/errgroup"
)

// StdinIndicator as a file argument reads the document from standard input.
const StdinIndicator = "-"

const (
	// ErrValidationFailed is returned when a document has findings that fail the run.
	ErrValidationFailed = errors.Error("validation failed")
	// ErrStdinRepeated is returned when standard input is named more than once.
	ErrStdinRepeated = errors.Error("standard input can only be validated once")
)

func newValidateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate Swagger 2.0 documents",
		Long: `Validate one or more Swagger 2.0 documents.

Each finding is printed as path:line: severity: message. The command fails when any
document has an error, or any finding at all with --strict. Use - to read a document
from standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
	config.BindValidateFlags(cmd)
	return cmd
}

type fileResult struct {
	path        string
	diagnostics []validation.Diagnostic
}

func (a *app) runValidate(ctx context.Context, w io.Writer, files []string) error {
	if countStdin(files) > 1 {
		return ErrStdinRepeated
	}

	fsys := &system.FileSystem{}

	v := validator.New(a.catalog,
		validator.WithLogger(a.logger),
		validator.WithChecks(a.cfg.EnabledChecks()...),
		validator.WithReferenceChecker(references.NewChecker(fsys, references.WithLogger(a.logger))),
	)

	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Validation.Concurrency)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.validateFile(ctx, v, fsys, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for _, result := range results {
		for _, d := range result.diagnostics {
			fmt.Fprintf(w, "%s:%d: %s: %s\n", result.path, d.Line, d.Severity, d.Message)
		}
		if validation.HasErrors(result.diagnostics) || (a.cfg.Validation.Strict && len(result.diagnostics) > 0) {
			failed = true
		}
	}

	if failed {
		return ErrValidationFailed
	}
	return nil
}

func countStdin(files []string) int {
	n := 0
	for _, f := range files {
		if f == StdinIndicator {
			n++
		}
	}
	return n
}

func (a *app) validateFile(ctx context.Context, v *validator.Validator, fsys system.VirtualFS, file string) fileResult {
	start := time.Now()
	path := a.resolvePath(file)

	var (
		doc *document.Document
		err error
	)
	if file == StdinIndicator {
		doc, err = a.parseStdin()
	} else {
		doc, err = document.ParseFile(fsys, path)
	}
	if err != nil {
		a.logger.Debug("document could not be parsed", "file", path, "error", err)
		return fileResult{
			path:        path,
			diagnostics: []validation.Diagnostic{validation.NewError(document.ErrorLine(err), err.Error())},
		}
	}

	baseURI := path
	if file == StdinIndicator {
		baseURI = ""
	}

	diagnostics := v.Validate(ctx, doc, baseURI)
	a.logger.Debug("validated document", "file", path, "findings", len(diagnostics), "elapsed", time.Since(start))

	return fileResult{path: path, diagnostics: diagnostics}
}

func (a *app) resolvePath(file string) string {
	if file == StdinIndicator || filepath.IsAbs(file) || a.cfg.Validation.BaseDir == "" {
		return file
	}
	return filepath.Join(a.cfg.Validation.BaseDir, file)
}

func (a *app) parseStdin() (*document.Document, error) {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}
	return document.Parse(data, document.WithLocation(StdinIndicator))
}
