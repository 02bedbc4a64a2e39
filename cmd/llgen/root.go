package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "llgen",
	Short: "Generate a portable LL(1) parsing table from a grammar",
	Long: `llgen provides four features:
- Compiles a BNF-like grammar into a portable LL(1) parsing table artifact.
- Parses a text stream against a compiled artifact.
  This feature is primarily aimed at debugging the grammar.
- Prints a readable report of a compiled artifact's table.
- Runs test-case files against a grammar and compares the parse trees.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
