package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/llgen/llgen/artifact"
	"github.com/llgen/llgen/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Run golden-file test cases against a grammar",
		Example: `  llgen test grammar.bnf test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runGrammarTest,
	}
	rootCmd.AddCommand(cmd)
}

func runGrammarTest(cmd *cobra.Command, args []string) error {
	res, table, err := compileGrammar(args[0], args[0])
	if err != nil {
		return fmt.Errorf("cannot read a grammar: %w", err)
	}

	var buf bytes.Buffer
	if err := artifact.Write(&buf, res.Matchers, table); err != nil {
		return fmt.Errorf("cannot build an artifact: %w", err)
	}
	decoded, err := artifact.Read(&buf)
	if err != nil {
		return fmt.Errorf("cannot decode the artifact: %w", err)
	}

	cs := tester.ListTestCases(args[1])
	errOccurred := false
	for _, c := range cs {
		if c.Error != nil {
			fmt.Fprintf(os.Stderr, "failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
			errOccurred = true
		}
	}
	if errOccurred {
		return errors.New("cannot run test")
	}

	t := &tester.Tester{
		Table: decoded,
		Cases: cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("test failed")
	}
	return nil
}
