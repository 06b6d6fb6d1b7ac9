package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/swagcheck/swagcheck/schema"
)

func newResolveCommand(a *app) *cobra.Command {
	var schemaID string

	cmd := &cobra.Command{
		Use:   "resolve <reference>",
		Short: "Resolve a reference in the bundled grammars",
		Long: `Resolve a reference such as #/definitions/info or
http://json-schema.org/draft-04/schema#/definitions/positiveInteger against the bundled
grammars and print the type it names. References without a schema id are resolved in
the Swagger 2.0 grammar unless --schema names another one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runResolve(cmd.OutOrStdout(), schemaID, args[0])
		},
	}
	cmd.Flags().StringVar(&schemaID, "schema", "", "Id of the grammar relative references are resolved in")

	return cmd
}

func (a *app) runResolve(w io.Writer, schemaID, ref string) error {
	var scope *schema.TypeDefinition
	if schemaID != "" {
		doc := a.catalog.Schema(schemaID)
		if doc == nil {
			return fmt.Errorf("unknown schema %q", schemaID)
		}
		scope = doc.RootType()
	}

	resolver := schema.NewResolver(a.catalog)
	t := resolver.Resolve(scope, ref)
	if t == nil {
		return fmt.Errorf("reference %q does not resolve", ref)
	}

	fmt.Fprintln(w, t.String())
	if t.Kind() == schema.KindReference {
		target := t.Resolve()
		if target == nil {
			return fmt.Errorf("reference %q leads to %q which does not resolve", ref, t.Reference())
		}
		fmt.Fprintf(w, "-> %s\n", target)
	}
	if desc := t.Resolve().Description(); desc != "" {
		fmt.Fprintln(w, desc)
	}

	return nil
}
