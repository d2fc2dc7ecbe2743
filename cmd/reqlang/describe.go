package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trilemma-dev/Required-sub000/parser"
	"github.com/trilemma-dev/Required-sub000/printer"
)

var describeFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "Print the ASCII parse tree of a requirement expression",
		Example: `  echo 'anchor apple and identifier com.apple.Safari' | reqlang describe`,
		Args:    cobra.NoArgs,
		RunE:    runDescribe,
	}
	describeFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	src, err := readSource(*describeFlags.source)
	if err != nil {
		return err
	}

	result, err := parser.Parse(src)
	if err != nil {
		return err
	}

	if result.IsSet() {
		for _, tag := range result.Set.OrderedTags() {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n%s\n", tag, printer.Tree(result.Set.Entries[tag]))
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), printer.Tree(result.Requirement))
	return nil
}
