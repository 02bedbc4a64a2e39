package grammar

import (
	"fmt"

	verr "github.com/llgen/llgen/error"
)

// Grammar is an ordered list of productions plus a start symbol. Order is
// significant: it is the canonical order the transformer and table builder
// use to break ties, and the order artifact writing must reproduce byte for
// byte given the same input.
type Grammar struct {
	Start       string
	Productions []*Production
}

// NewGrammar validates that every nonterminal mentioned anywhere in the
// grammar (as Left, or on some Right) has at least one defining production,
// and that Start itself is defined.
func NewGrammar(start string, prods []*Production) (*Grammar, error) {
	defined := map[string]bool{}
	for _, p := range prods {
		defined[p.Left] = true
	}
	if !defined[start] {
		return nil, &verr.SpecError{Cause: verr.ErrMalformedGrammar, Detail: fmt.Sprintf("start symbol %q has no production", start)}
	}
	for _, p := range prods {
		for _, s := range p.Right {
			if s.IsNonTerminal() && !defined[s.NonTerm] {
				return nil, &verr.SpecError{Cause: verr.ErrMalformedGrammar, Detail: fmt.Sprintf("nonterminal %q is used but never defined", s.NonTerm)}
			}
		}
	}
	return &Grammar{Start: start, Productions: prods}, nil
}

func (g *Grammar) clone() *Grammar {
	prods := make([]*Production, len(g.Productions))
	copy(prods, g.Productions)
	return &Grammar{Start: g.Start, Productions: prods}
}

func (g *Grammar) productionsOf(nonTerm string) []*Production {
	var out []*Production
	for _, p := range g.Productions {
		if p.Left == nonTerm {
			out = append(out, p)
		}
	}
	return out
}

// dedupAppend appends cand unless a structurally identical production is
// already present; productions are identified by their String form.
func dedupAppend(prods []*Production, cand *Production) []*Production {
	s := cand.String()
	for _, p := range prods {
		if p.String() == s {
			return prods
		}
	}
	return append(prods, cand)
}

// maxTransformIterations bounds the fixed-point loop. None of its passes
// come with a termination proof for pathological input (an Open Question in
// the design notes), so a hard cap turns a would-be infinite loop into a
// reported error instead of a hang.
const maxTransformIterations = 256

// Transform runs the fixed-point loop: each iteration prunes unreachable
// productions, rebuilds the first-set graph, removes right-first-End
// productions, eliminates one left-recursion cycle, and eliminates one
// left-factoring opportunity, in that order. The loop stops as soon as an
// iteration makes no change; passes run in listed order and, within a pass,
// iteration follows the grammar's canonical production order.
func Transform(g *Grammar) (*Grammar, error) {
	cur := g
	f := newFactory(g)

	for i := 0; i < maxTransformIterations; i++ {
		changed := false

		var c bool
		cur, c = pruneUnreachable(cur)
		changed = changed || c

		graph := buildGraph(cur)

		cur, c = removeRightFirstEnd(cur, graph)
		changed = changed || c

		cur, c = eliminateLeftRecursion(cur, graph, f)
		changed = changed || c

		cur, c = eliminateBacktracking(cur, graph, f)
		changed = changed || c

		if !changed {
			return cur, nil
		}
	}

	return nil, &verr.SpecError{Cause: verr.ErrNotReducible, Detail: "transformer did not reach a fixed point"}
}
