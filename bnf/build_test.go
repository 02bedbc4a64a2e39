package bnf

import (
	"testing"

	"github.com/llgen/llgen/grammar"
)

func TestBuild_SimpleExpression(t *testing.T) {
	res, err := Build(`E = E "+" T | T; T = "a";`, "test")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.Grammar.Start != "E" {
		t.Fatalf("Start = %q; want E", res.Grammar.Start)
	}
	if len(res.Matchers) != 2 {
		t.Fatalf("expected 2 distinct terminals (+, a), got %d", len(res.Matchers))
	}

	transformed, err := grammar.Transform(res.Grammar)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if _, err := grammar.BuildParseTable(transformed); err != nil {
		t.Fatalf("BuildParseTable failed: %v", err)
	}
}

func TestBuild_Comment(t *testing.T) {
	res, err := Build(`(* hello *) A = "a";`, "test")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(res.Grammar.Productions) != 1 {
		t.Fatalf("expected exactly one production, got %v", res.Grammar.Productions)
	}
}

func TestBuild_StringAndRegexAlternatives(t *testing.T) {
	res, err := Build(`X = "let" | /[a-z]+/;`, "test")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	count := 0
	for _, p := range res.Grammar.Productions {
		if p.Left == "X" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected two alternatives for X, got %d", count)
	}
}

func TestBuild_RegexExclude(t *testing.T) {
	res, err := Build(`X = [/[a-z]+/ Keywords]; Keywords = "let";`, "test")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// One terminal for X's regex-exclude, one for Keywords' own "let"
	// production; the exclude matcher reuses Keywords' interned terminal.
	if len(res.Matchers) != 2 {
		t.Fatalf("expected 2 terminals, got %d", len(res.Matchers))
	}
}

func TestBuild_LeftFactorCandidate(t *testing.T) {
	res, err := Build(`S = "a" B | "a" C; B = "b"; C = "c";`, "test")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	out, err := grammar.Transform(res.Grammar)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if _, err := grammar.BuildParseTable(out); err != nil {
		t.Fatalf("BuildParseTable failed after left-factoring: %v", err)
	}
}

func TestBuild_MalformedSyntax(t *testing.T) {
	if _, err := Build(`E = ;`, "test"); err != nil {
		t.Fatalf("an empty alternative should be a valid epsilon production: %v", err)
	}
	if _, err := Build(`E = `, "test"); err == nil {
		t.Fatalf("expected a syntax error for a missing terminator")
	}
}
