package grammar

import (
	"fmt"
	"sort"

	verr "github.com/llgen/llgen/error"
)

// ParseTable is the LL(1) predictive parse table M[A, a]: for a nonterminal
// A and a lookahead symbol a (a terminal id, or End for the input-end
// marker), it names the single production to expand.
type ParseTable struct {
	Start   string
	entries map[tableKey]*Production

	// NonTerminals lists every nonterminal in canonical (first-appearance)
	// order; the artifact writer and the driver depend on this order being
	// stable across builds of the same grammar.
	NonTerminals []string
}

type tableKey struct {
	nonTerm string
	look    Symbol
}

// Lookup returns the production to expand nonTerm with, given lookahead,
// and whether an entry exists.
func (t *ParseTable) Lookup(nonTerm string, lookahead Symbol) (*Production, bool) {
	p, ok := t.entries[tableKey{nonTerm: nonTerm, look: lookahead}]
	return p, ok
}

// BuildParseTable computes FIRST and FOLLOW over g and fills the LL(1)
// table. It reports an ErrLL1Conflict if the grammar is not LL(1): two
// distinct productions of the same nonterminal would occupy the same
// (nonTerm, lookahead) cell. Transform should already have removed left
// recursion and left factoring before this is called, but conflicts from
// other causes (a genuinely ambiguous grammar) are still possible and are
// reported rather than silently resolved.
func BuildParseTable(g *Grammar) (*ParseTable, error) {
	first := computeFirstSets(g)
	follow := computeFollowSets(g, first)

	t := &ParseTable{Start: g.Start, entries: map[tableKey]*Production{}}
	seen := map[string]bool{}
	for _, p := range g.Productions {
		if !seen[p.Left] {
			seen[p.Left] = true
			t.NonTerminals = append(t.NonTerminals, p.Left)
		}
	}

	for _, p := range g.Productions {
		rf := first.firstOfSequence(p.Right)
		for look := range rf.terms {
			if err := t.set(p.Left, look, p); err != nil {
				return nil, err
			}
		}
		if rf.empty {
			for look := range follow.byNonTerm[p.Left].terms {
				if err := t.set(p.Left, look, p); err != nil {
					return nil, err
				}
			}
		}
	}

	return t, nil
}

func (t *ParseTable) set(nonTerm string, look Symbol, p *Production) error {
	key := tableKey{nonTerm: nonTerm, look: look}
	if existing, ok := t.entries[key]; ok && existing.String() != p.String() {
		return &verr.SpecError{
			Cause: verr.ErrLL1Conflict,
			Detail: fmt.Sprintf("cell (%s, %s) already holds %q, cannot also hold %q",
				nonTerm, look, existing.String(), p.String()),
		}
	}
	t.entries[key] = p
	return nil
}

// Cells returns every filled table cell in a deterministic order, for
// reporting and for artifact serialization.
func (t *ParseTable) Cells() []struct {
	NonTerm string
	Look    Symbol
	Prod    *Production
} {
	type cell = struct {
		NonTerm string
		Look    Symbol
		Prod    *Production
	}
	cells := make([]cell, 0, len(t.entries))
	for k, p := range t.entries {
		cells = append(cells, cell{NonTerm: k.nonTerm, Look: k.look, Prod: p})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].NonTerm != cells[j].NonTerm {
			return cells[i].NonTerm < cells[j].NonTerm
		}
		return cells[i].Look.String() < cells[j].Look.String()
	})
	return cells
}
