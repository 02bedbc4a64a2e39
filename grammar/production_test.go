package grammar

import "testing"

func TestProduction_IsEpsilon(t *testing.T) {
	if !NewProduction("A", []Symbol{End}).IsEpsilon() {
		t.Fatalf("A -> End should be epsilon")
	}
	if NewProduction("A", []Symbol{NewTerminal(0)}).IsEpsilon() {
		t.Fatalf("A -> t0 should not be epsilon")
	}
	if NewProduction("A", nil).IsEpsilon() {
		t.Fatalf("A -> (empty slice) should not itself count as epsilon")
	}
}

func TestProduction_RightFirst(t *testing.T) {
	p := NewProduction("A", []Symbol{NewTerminal(1), NewNonTerminal("B")})
	if !p.RightFirst().Equal(NewTerminal(1)) {
		t.Fatalf("RightFirst() = %v; want t1", p.RightFirst())
	}
	if !NewProduction("A", nil).RightFirst().Equal(End) {
		t.Fatalf("RightFirst() of an empty right side should be End")
	}
}

func TestProduction_String(t *testing.T) {
	p := NewProduction("A", []Symbol{NewTerminal(0), NewNonTerminal("B")})
	if got, want := p.String(), "A -> t0 B"; got != want {
		t.Fatalf("String() = %q; want %q", got, want)
	}
}
