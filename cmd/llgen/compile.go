package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/llgen/llgen/artifact"
	"github.com/llgen/llgen/bnf"
	verr "github.com/llgen/llgen/error"
	"github.com/llgen/llgen/grammar"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
	header *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar into an LL(1) parsing table artifact",
		Example: `  llgen compile grammar.bnf -o grammar.bin`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "a.bin", "output artifact path")
	compileFlags.header = cmd.Flags().String("header", "", "also write nonterminal id constants to this header file")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	var tmpDirPath string
	defer func() {
		if tmpDirPath == "" {
			return
		}
		os.RemoveAll(tmpDirPath)
	}()

	var grmPath string
	var sourceName string
	if len(args) > 0 {
		grmPath = args[0]
		sourceName = grmPath
	} else {
		sourceName = "stdin"
	}
	defer func() {
		if retErr != nil {
			if specErrs, ok := retErr.(verr.SpecErrors); ok {
				retErr = specErrs.WithSource(grmPath, sourceName)
			}
		}
	}()

	if grmPath == "" {
		var err error
		tmpDirPath, err = os.MkdirTemp("", "llgen-compile-*")
		if err != nil {
			return err
		}

		src, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return err
		}

		grmPath = filepath.Join(tmpDirPath, "stdin.bnf")
		if err := ioutil.WriteFile(grmPath, src, 0600); err != nil {
			return err
		}
	}

	res, table, err := compileGrammar(grmPath, sourceName)
	if err != nil {
		return err
	}

	if err := writeArtifact(res, table, *compileFlags.output); err != nil {
		return fmt.Errorf("cannot write the artifact: %w", err)
	}

	if *compileFlags.header != "" {
		if err := writeHeader(table, *compileFlags.header); err != nil {
			return fmt.Errorf("cannot write the header: %w", err)
		}
	}

	report, err := artifact.Compress(table)
	if err != nil {
		return fmt.Errorf("cannot build a compression report: %w", err)
	}
	if err := writeCompileReport(report, table, len(res.Matchers), gramName(sourceName), *compileFlags.output); err != nil {
		return fmt.Errorf("cannot write the report: %w", err)
	}

	if report.OriginalRows != report.UniqueRows {
		fmt.Fprintf(os.Stdout, "%v of %v table rows are unique\n", report.UniqueRows, report.OriginalRows)
	}

	return nil
}

func compileGrammar(path, sourceName string) (*bnf.Result, *grammar.ParseTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}

	res, err := bnf.Build(string(src), sourceName)
	if err != nil {
		return nil, nil, err
	}

	g, err := grammar.Transform(res.Grammar)
	if err != nil {
		return nil, nil, err
	}

	table, err := grammar.BuildParseTable(g)
	if err != nil {
		return nil, nil, err
	}

	return res, table, nil
}

func writeArtifact(res *bnf.Result, table *grammar.ParseTable, path string) error {
	var w io.Writer
	if path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return artifact.Write(w, res.Matchers, table)
}

// writeHeader emits one Go constant per nonterminal, naming the integer id
// an artifact's parse table keys its rules by, so a hand-written driver can
// refer to nonterminals by name instead of by the bare id that crosses the
// wire. The binary artifact itself never carries these names (see the
// artifact package's doc comment); this file is the only place they exist
// outside the original grammar source.
func writeHeader(table *grammar.ParseTable, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "// Code generated by llgen compile --header. DO NOT EDIT.\n\n")
	fmt.Fprintf(f, "package grammarids\n\n")
	fmt.Fprintf(f, "const (\n")
	for i, name := range table.NonTerminals {
		fmt.Fprintf(f, "\tN%s = %d\n", sanitizeIdent(name), i)
	}
	fmt.Fprintf(f, ")\n")
	return nil
}

func sanitizeIdent(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// compileReport is the JSON sidecar written next to the binary artifact,
// mirroring the compiled-grammar/report split the teacher's toolchain uses,
// but sized for an LL(1) table instead of an LALR state machine.
type compileReport struct {
	Name        string                      `json:"name"`
	Terminals   int                         `json:"terminal_count"`
	NonTerminal []string                    `json:"non_terminals"`
	Compression *artifact.CompressionReport `json:"compression"`
}

func writeCompileReport(report *artifact.CompressionReport, table *grammar.ParseTable, terminalCount int, name, outPath string) error {
	cr := &compileReport{
		Name:        name,
		Terminals:   terminalCount,
		NonTerminal: table.NonTerminals,
		Compression: report,
	}

	reportPath := reportPathFor(name, outPath)
	f, err := os.OpenFile(reportPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(cr)
	if err != nil {
		return err
	}
	fmt.Fprintf(f, "%v\n", string(b))
	return nil
}

func reportPathFor(name, outPath string) string {
	if outPath == "" {
		return name + "-report.json"
	}
	dir, _ := filepath.Split(outPath)
	return filepath.Join(dir, name+"-report.json")
}

func gramName(sourceName string) string {
	base := filepath.Base(sourceName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
