package grammar

import "testing"

func TestNewGrammar_Valid(t *testing.T) {
	g, err := NewGrammar("S", []*Production{
		NewProduction("S", []Symbol{NewTerminal(0)}),
	})
	if err != nil {
		t.Fatalf("NewGrammar failed: %v", err)
	}
	if g.Start != "S" {
		t.Fatalf("Start = %q; want S", g.Start)
	}
}

func TestNewGrammar_UndefinedStart(t *testing.T) {
	_, err := NewGrammar("S", []*Production{
		NewProduction("T", []Symbol{NewTerminal(0)}),
	})
	if err == nil {
		t.Fatalf("expected an error for an undefined start symbol")
	}
}

func TestNewGrammar_UndefinedNonTerminal(t *testing.T) {
	_, err := NewGrammar("S", []*Production{
		NewProduction("S", []Symbol{NewNonTerminal("Missing")}),
	})
	if err == nil {
		t.Fatalf("expected an error for a nonterminal used but never defined")
	}
}
