package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/swagcheck/swagcheck/document"
	"github.com/swagcheck/swagcheck/query"
	"github.com/swagcheck/swagcheck/schema"
	"github.com/swagcheck/swagcheck/system"
)

func newTypeCommand(a *app) *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "type <file> <jsonpath>",
		Short: "Show the schema type of document nodes",
		Long: `Select nodes of a document with a JSONPath expression and print, for each, its
location and the grammar type that applies to it.

Expressions follow RFC 9535. Use --legacy for expressions written for the older
dialect.`,
		Example: `  swagcheck type petstore.yaml '$.paths.*.get'
  swagcheck type petstore.yaml '$.definitions[?(@.type=="object")]'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []query.Option
			if legacy {
				opts = append(opts, query.WithLegacyPaths())
			}
			return a.runType(cmd.OutOrStdout(), args[0], args[1], opts...)
		},
	}
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Evaluate the expression with the legacy JSONPath dialect")

	return cmd
}

func (a *app) runType(w io.Writer, file, expr string, opts ...query.Option) error {
	var (
		doc *document.Document
		err error
	)
	if file == StdinIndicator {
		doc, err = a.parseStdin()
	} else {
		doc, err = document.ParseFile(&system.FileSystem{}, file)
	}
	if err != nil {
		return err
	}

	matches, err := query.Types(schema.NewResolver(a.catalog), doc, expr, opts...)
	if err != nil {
		return err
	}

	for _, m := range matches {
		fmt.Fprintf(w, "#%s\t%s\n", m.Node.Pointer(), describe(m.Type))
	}
	return nil
}

func describe(t *schema.TypeDefinition) string {
	if t == nil {
		return "-"
	}
	return t.String()
}
