package artifact

import (
	"bytes"
	"testing"

	"github.com/llgen/llgen/bnf"
	"github.com/llgen/llgen/grammar"
	"github.com/llgen/llgen/regex"
)

func buildTable(t *testing.T, src string) (*bnf.Result, *grammar.ParseTable) {
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
	return res, table
}

func TestArtifact_RoundTrip_Expression(t *testing.T) {
	res, table := buildTable(t, `E = E "+" T | T; T = "a";`)

	var buf bytes.Buffer
	if err := Write(&buf, res.Matchers, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got.Matchers) != len(res.Matchers) {
		t.Fatalf("matcher count = %d; want %d", len(got.Matchers), len(res.Matchers))
	}
	if got.Start.Kind != grammar.SymNonTerminal {
		t.Fatalf("start kind = %v; want nonterminal", got.Start.Kind)
	}
	total := 0
	for _, inner := range got.Rules {
		total += len(inner)
	}
	if total == 0 {
		t.Fatalf("decoded table has no cells")
	}
}

func TestArtifact_RoundTrip_RegexAndExclude(t *testing.T) {
	res, table := buildTable(t, `X = [/[a-z]+/ Keywords]; Keywords = "let";`)

	var buf bytes.Buffer
	if err := Write(&buf, res.Matchers, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got.Matchers) != 2 {
		t.Fatalf("matcher count = %d; want 2", len(got.Matchers))
	}

	sawExclude := false
	for _, m := range got.Matchers {
		if ex, ok := m.(*regex.RegexExcludeMatcher); ok {
			sawExclude = true
			if len(ex.Excludes()) != 1 {
				t.Fatalf("regex-exclude matcher has %d excludes; want 1", len(ex.Excludes()))
			}
		}
	}
	if !sawExclude {
		t.Fatalf("decoded matcher list has no regex-exclude matcher")
	}
}

func TestArtifact_MalformedSentinel(t *testing.T) {
	_, table := buildTable(t, `T = "a";`)
	var buf bytes.Buffer
	if err := Write(&buf, nil, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	// Corrupt the matcher-list terminator: it is the second int64 slot
	// (bytes 8..15), since there are zero matchers (count 0, then
	// immediately EOS).
	raw := buf.Bytes()
	if len(raw) < 16 {
		t.Fatalf("artifact too short to corrupt")
	}
	raw[8] = 0xFF // clobber the EOS sentinel

	if _, err := Read(bytes.NewReader(raw)); err == nil {
		t.Fatalf("expected a malformed-artifact error")
	}
}

func TestCompress_ReportsFewerUniqueRowsThanNonTerminals(t *testing.T) {
	_, table := buildTable(t, `S = "a" S1; S1 = B | C; B = "b"; C = "c";`)

	report, err := Compress(table)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if report.OriginalRows != len(table.NonTerminals) {
		t.Fatalf("OriginalRows = %d; want %d", report.OriginalRows, len(table.NonTerminals))
	}
	if report.UniqueRows <= 0 || report.UniqueRows > report.OriginalRows {
		t.Fatalf("UniqueRows = %d out of range for %d original rows", report.UniqueRows, report.OriginalRows)
	}
	if report.CompressedCells > report.OriginalCells {
		t.Fatalf("compressed cell count %d exceeds original %d", report.CompressedCells, report.OriginalCells)
	}
}
