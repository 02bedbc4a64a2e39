package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/llgen/llgen/artifact"
	"github.com/llgen/llgen/driver/lexer"
	"github.com/llgen/llgen/driver/parser"
	"github.com/llgen/llgen/grammar"
	"github.com/llgen/llgen/regex"
)

// TestResult is the outcome of running one test case.
type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*TreeDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("FAIL %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected path: %v", indent1, diff.ExpectedPath))
			diffLines = append(diffLines, fmt.Sprintf("%vactual path:   %v", indent1, diff.ActualPath))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("PASS %v", r.TestCasePath)
}

// TestCaseWithMetadata pairs a parsed TestCase with the file it came from,
// or the error that prevented parsing it.
type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

// ListTestCases collects every test case under testPath, recursing into
// directories.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{{FilePath: testPath, Error: err}}
	}
	if !fi.IsDir() {
		c, err := parseTestCaseFile(testPath)
		return []*TestCaseWithMetadata{{TestCase: c, FilePath: testPath, Error: err}}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{{FilePath: testPath, Error: err}}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cases = append(cases, ListTestCases(filepath.Join(testPath, e.Name()))...)
	}
	return cases
}

func parseTestCaseFile(path string) (*TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

// Tester runs every case in Cases against a single compiled artifact.
type Tester struct {
	Table *artifact.Table
	Cases []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	rs := make([]*TestResult, len(t.Cases))
	for i, c := range t.Cases {
		rs[i] = runTest(t.Table, c)
	}
	return rs
}

func runTest(table *artifact.Table, c *TestCaseWithMetadata) *TestResult {
	stream := regex.NewStreamFromString(string(c.TestCase.Source))
	lex := lexer.New(table.Matchers, stream)
	p := parser.New(table, lex)

	root, err := p.Parse()
	if err != nil {
		return &TestResult{TestCasePath: c.FilePath, Error: err}
	}

	diffs := DiffTree(c.TestCase.Output, genTree(root).Fill())
	if len(diffs) > 0 {
		return &TestResult{TestCasePath: c.FilePath, Error: fmt.Errorf("output mismatch"), Diffs: diffs}
	}
	return &TestResult{TestCasePath: c.FilePath}
}

func genTree(n *parser.Node) *Tree {
	label := n.Symbol.String()
	if n.Symbol.Kind == grammar.SymTerminal {
		return NewTerminalTree(label, n.Value)
	}
	children := make([]*Tree, len(n.Children))
	for i, c := range n.Children {
		children[i] = genTree(c)
	}
	return NewNonTerminalTree(label, children...)
}
