package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trilemma-dev/Required-sub000/eval"
	"github.com/trilemma-dev/Required-sub000/eval/fixture"
	"github.com/trilemma-dev/Required-sub000/parser"
)

var evalFlags = struct {
	source  *string
	subject *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "eval",
		Short:   "Evaluate a requirement expression against a subject fixture",
		Example: `  reqlang eval --subject safari.json --source safari.req`,
		Args:    cobra.NoArgs,
		RunE:    runEval,
	}
	evalFlags.source = cmd.Flags().StringP("source", "s", "", "requirement source file path (default stdin)")
	evalFlags.subject = cmd.Flags().String("subject", "", "fixture JSON file describing the subject (required)")
	cmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(cmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	src, err := readSource(*evalFlags.source)
	if err != nil {
		return err
	}

	result, err := parser.Parse(src)
	if err != nil {
		return err
	}
	if result.IsSet() {
		return fmt.Errorf("reqlang eval does not support requirement sets; parse one tag's requirement at a time")
	}

	data, err := os.ReadFile(*evalFlags.subject)
	if err != nil {
		return fmt.Errorf("cannot read subject fixture %s: %w", *evalFlags.subject, err)
	}
	doc, err := fixture.Load(data)
	if err != nil {
		return err
	}

	evaluation := eval.Evaluate(result.Requirement, doc.Subject())
	fmt.Fprint(cmd.OutOrStdout(), eval.RenderEvaluation(evaluation, cfg.Superscript))

	if !evaluation.Satisfied {
		return fmt.Errorf("requirement not satisfied")
	}
	return nil
}
