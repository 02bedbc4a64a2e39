package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <artifact path>",
		Short:   "Dump a compiled artifact's parse table and matcher list",
		Example: `  llgen show grammar.bin`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	table, err := readArtifact(args[0])
	if err != nil {
		return fmt.Errorf("cannot read the artifact: %w", err)
	}

	fmt.Fprintf(os.Stdout, "matchers: %v\n", len(table.Matchers))
	for i, m := range table.Matchers {
		fmt.Fprintf(os.Stdout, "  %4v %v\n", i, m.Source())
	}

	fmt.Fprintf(os.Stdout, "start: %v\n", table.Start)

	ids := make([]int, 0, len(table.Rules))
	for id := range table.Rules {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Fprintf(os.Stdout, "rules: %v nonterminals\n", len(ids))
	for _, id := range ids {
		row := table.Rules[id]
		looks := make([]string, 0, len(row))
		for look := range row {
			looks = append(looks, look.String())
		}
		sort.Strings(looks)
		fmt.Fprintf(os.Stdout, "  n%v: %v lookaheads\n", id, len(looks))
		for _, l := range looks {
			fmt.Fprintf(os.Stdout, "    %v\n", l)
		}
	}

	return nil
}
