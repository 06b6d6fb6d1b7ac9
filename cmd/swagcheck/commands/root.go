// Package commands implements the swagcheck command line.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/swagcheck/swagcheck/internal/config"
	"github.com/swagcheck/swagcheck/internal/logging"
	"github.com/swagcheck/swagcheck/schema"
)

// app is the state shared by the commands of one invocation.
type app struct {
	cfg     *config.Config
	logger  logging.Logger
	catalog *schema.Catalog
	stdin   io.Reader
}

// NewRootCommand returns the swagcheck command with all subcommands attached.
func NewRootCommand(version string) *cobra.Command {
	a := &app{logger: logging.NopLogger{}}

	root := &cobra.Command{
		Use:   "swagcheck",
		Short: "Validate Swagger 2.0 documents",
		Long: `Validate Swagger 2.0 documents written in YAML or JSON.

Documents are checked against the Swagger 2.0 grammar and against rules the grammar
cannot express:
- array types must declare object items
- object definitions with properties must declare type: object
- required properties must be declared
- keys must not repeat within a mapping
- references must point at existing locations

Findings are reported with the line they were found on.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	config.BindGlobalFlags(root)

	root.AddCommand(newValidateCommand(a))
	root.AddCommand(newTypeCommand(a))
	root.AddCommand(newResolveCommand(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.stdin = cmd.InOrStdin()

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	a.logger = logger

	catalog, err := schema.NewDefaultCatalog(schema.WithLogger(logger))
	if err != nil {
		// without grammars only the checks that need none can run
		logger.Error("bundled grammars unavailable", "error", err)
		catalog = schema.NewCatalog(schema.WithLogger(logger))
	}
	a.catalog = catalog

	return nil
}
