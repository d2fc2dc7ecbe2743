package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/trilemma-dev/Required-sub000/eval"
	"github.com/trilemma-dev/Required-sub000/eval/fixture"
	"github.com/trilemma-dev/Required-sub000/parser"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <directory>",
		Short:   "Evaluate every <name>.req / <name>.json fixture pair in a directory",
		Example: `  reqlang test testdata/requirements`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

type caseResult struct {
	name       string
	satisfied  bool
	renderedAs string
	err        error
}

func runTest(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cases, err := discoverCases(dir)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("no .req/.json fixture pairs found in %s", dir)
	}

	results := make([]caseResult, len(cases))
	g := new(errgroup.Group)
	g.SetLimit(cfg.TestConcurrency)
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			results[i] = runCase(c)
			return nil
		})
	}
	_ = g.Wait()

	failures := 0
	for _, r := range results {
		status := "PASS"
		if r.err != nil {
			status = "ERROR"
			failures++
		} else if !r.satisfied {
			status = "FAIL"
			failures++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", status, r.name)
		switch {
		case r.err != nil:
			fmt.Fprintf(cmd.OutOrStdout(), "       %v\n", r.err)
		case status == "FAIL":
			logger.Sugar().Debugw("case failed", "name", r.name, "evaluation", r.renderedAs)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d/%d cases failed", failures, len(cases))
	}
	return nil
}

type fixtureCase struct {
	name        string
	reqPath     string
	fixturePath string
}

func discoverCases(dir string) ([]fixtureCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".req") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".req"))
	}
	sort.Strings(names)

	cases := make([]fixtureCase, 0, len(names))
	for _, name := range names {
		fixturePath := filepath.Join(dir, name+".json")
		if _, err := os.Stat(fixturePath); err != nil {
			continue
		}
		cases = append(cases, fixtureCase{
			name:        name,
			reqPath:     filepath.Join(dir, name+".req"),
			fixturePath: fixturePath,
		})
	}
	return cases, nil
}

func runCase(c fixtureCase) caseResult {
	src, err := os.ReadFile(c.reqPath)
	if err != nil {
		return caseResult{name: c.name, err: err}
	}
	result, err := parser.Parse(string(src))
	if err != nil {
		return caseResult{name: c.name, err: err}
	}
	if result.IsSet() {
		return caseResult{name: c.name, err: fmt.Errorf("requirement sets are not supported by reqlang test")}
	}

	data, err := os.ReadFile(c.fixturePath)
	if err != nil {
		return caseResult{name: c.name, err: err}
	}
	doc, err := fixture.Load(data)
	if err != nil {
		return caseResult{name: c.name, err: err}
	}

	evaluation := eval.Evaluate(result.Requirement, doc.Subject())
	return caseResult{name: c.name, satisfied: evaluation.Satisfied, renderedAs: eval.RenderEvaluation(evaluation, cfg.Superscript)}
}
