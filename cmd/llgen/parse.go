package main

import (
	"fmt"
	"os"

	"github.com/llgen/llgen/artifact"
	"github.com/llgen/llgen/driver/lexer"
	"github.com/llgen/llgen/driver/parser"
	"github.com/llgen/llgen/regex"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <artifact path>",
		Short:   "Parse a text stream against a compiled artifact",
		Example: `  cat src | llgen parse grammar.bin`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	table, err := readArtifact(args[0])
	if err != nil {
		return fmt.Errorf("cannot read the artifact: %w", err)
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}

	stream := regex.NewStream(src)
	lex := lexer.New(table.Matchers, stream)
	p := parser.New(table, lex)

	tree, err := p.Parse()
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, parser.PrintTree(tree))
	return nil
}

func readArtifact(path string) (*artifact.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return artifact.Read(f)
}
