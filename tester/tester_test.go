package tester

import (
	"bytes"
	"strings"
	"testing"

	"github.com/llgen/llgen/artifact"
	"github.com/llgen/llgen/bnf"
	"github.com/llgen/llgen/grammar"
)

func compileForTest(t *testing.T, src string) *artifact.Table {
	t.Helper()
	res, err := bnf.Build(src, "test")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	g, err := grammar.Transform(res.Grammar)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	table, err := grammar.BuildParseTable(g)
	if err != nil {
		t.Fatalf("BuildParseTable failed: %v", err)
	}
	var buf bytes.Buffer
	if err := artifact.Write(&buf, res.Matchers, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	decoded, err := artifact.Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return decoded
}

func TestParseTestCase(t *testing.T) {
	fixture := "a classic left-recursive expression\n---\na+a\n---\n(n0 (n1 (t0 \"a\")) (n2))"
	c, err := ParseTestCase(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("ParseTestCase failed: %v", err)
	}
	if c.Description != "a classic left-recursive expression" {
		t.Fatalf("Description = %q", c.Description)
	}
	if string(c.Source) != "a+a" {
		t.Fatalf("Source = %q", c.Source)
	}
	if c.Output.Kind != "n0" || len(c.Output.Children) != 2 {
		t.Fatalf("Output = %+v", c.Output)
	}
}

func TestTester_Run_Pass(t *testing.T) {
	table := compileForTest(t, `S = "a" B; B = "b";`)

	fixture := "expr\n---\nab\n---\n(_ (_ \"a\") (_ (_ \"b\")))"
	c, err := ParseTestCase(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("ParseTestCase failed: %v", err)
	}

	tst := &Tester{
		Table: table,
		Cases: []*TestCaseWithMetadata{{TestCase: c, FilePath: "fixture"}},
	}
	rs := tst.Run()
	if len(rs) != 1 || rs[0].Error != nil {
		t.Fatalf("Run() = %+v", rs)
	}
}

func TestTester_Run_MismatchReportsDiff(t *testing.T) {
	table := compileForTest(t, `T = "a";`)

	fixture := "wrong lexeme\n---\na\n---\n(_ \"b\")"
	c, err := ParseTestCase(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("ParseTestCase failed: %v", err)
	}

	tst := &Tester{
		Table: table,
		Cases: []*TestCaseWithMetadata{{TestCase: c, FilePath: "fixture"}},
	}
	rs := tst.Run()
	if len(rs) != 1 || rs[0].Error == nil || len(rs[0].Diffs) == 0 {
		t.Fatalf("expected a mismatch diff, got %+v", rs)
	}
}
