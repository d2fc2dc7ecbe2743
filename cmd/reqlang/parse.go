package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trilemma-dev/Required-sub000/parser"
	"github.com/trilemma-dev/Required-sub000/printer"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse",
		Short:   "Parse a requirement expression and print its canonical text form",
		Example: `  echo 'anchor apple generic' | reqlang parse`,
		Args:    cobra.NoArgs,
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(*parseFlags.source)
	if err != nil {
		return err
	}

	result, err := parser.Parse(src)
	if err != nil {
		logger.Sugar().Debugw("parse failed", "error", err)
		return err
	}

	if result.IsSet() {
		for _, tag := range result.Set.OrderedTags() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s => %s\n", tag, printer.TextForm(result.Set.Entries[tag]))
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), printer.TextForm(result.Requirement))
	return nil
}
