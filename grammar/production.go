package grammar

import "strings"

// Production is a pair (Left, Right): a nonterminal and the ordered sequence
// of symbols it derives. A production is epsilon iff its Right is the single
// symbol End. Productions are identified structurally, by their String
// representation (§3), which is what dedup, the fixed-point loop's
// change-detection, and the canonical-order guarantee all key on.
type Production struct {
	Left  string
	Right []Symbol
}

// NewProduction builds a Production.
func NewProduction(left string, right []Symbol) *Production {
	return &Production{Left: left, Right: right}
}

// IsEpsilon reports whether this production derives the empty string.
func (p *Production) IsEpsilon() bool {
	return len(p.Right) == 1 && p.Right[0].IsEnd()
}

// RightFirst returns the first symbol of Right, or End if Right is empty.
func (p *Production) RightFirst() Symbol {
	if len(p.Right) == 0 {
		return End
	}
	return p.Right[0]
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.Left)
	b.WriteString(" ->")
	for _, s := range p.Right {
		b.WriteString(" ")
		b.WriteString(s.String())
	}
	return b.String()
}

// LHS returns the production's left as a Symbol.
func (p *Production) LHS() Symbol {
	return NewNonTerminal(p.Left)
}

// clone returns a copy of p with its own copy of Right, so rewriting the
// copy's right-hand side leaves p untouched.
func (p *Production) clone() *Production {
	right := make([]Symbol, len(p.Right))
	copy(right, p.Right)
	return &Production{Left: p.Left, Right: right}
}
