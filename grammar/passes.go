package grammar

// pruneUnreachable is pass 1: drop every production whose left-hand
// nonterminal cannot be reached from the start symbol by following
// nonterminals on the right-hand side.
func pruneUnreachable(g *Grammar) (*Grammar, bool) {
	reachable := map[string]bool{g.Start: true}
	worklist := []string{g.Start}
	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, p := range g.Productions {
			if p.Left != n {
				continue
			}
			for _, s := range p.Right {
				if s.IsNonTerminal() && !reachable[s.NonTerm] {
					reachable[s.NonTerm] = true
					worklist = append(worklist, s.NonTerm)
				}
			}
		}
	}

	var kept []*Production
	changed := false
	for _, p := range g.Productions {
		if !reachable[p.Left] {
			changed = true
			continue
		}
		kept = append(kept, p)
	}
	if !changed {
		return g, false
	}
	return &Grammar{Start: g.Start, Productions: kept}, true
}

// epsilonNonTerminals returns the set of nonterminals with a direct epsilon
// production N -> End.
func epsilonNonTerminals(g *Grammar) map[string]bool {
	eps := map[string]bool{}
	for _, p := range g.Productions {
		if p.IsEpsilon() {
			eps[p.Left] = true
		}
	}
	return eps
}

// removeRightFirstEnd is pass 3: for every production M -> N β where N has
// an epsilon production and β is nonempty, introduce M -> β (N dropped).
// The original production is kept, since N may also derive nonempty
// strings.
func removeRightFirstEnd(g *Grammar, graph *Graph) (*Grammar, bool) {
	eps := epsilonNonTerminals(g)
	if len(eps) == 0 {
		return g, false
	}

	prods := make([]*Production, len(g.Productions))
	copy(prods, g.Productions)

	changed := false
	for _, p := range g.Productions {
		first := p.RightFirst()
		if !first.IsNonTerminal() || !eps[first.NonTerm] {
			continue
		}
		if len(p.Right) <= 1 {
			continue
		}
		cand := NewProduction(p.Left, append([]Symbol{}, p.Right[1:]...))
		before := len(prods)
		prods = dedupAppend(prods, cand)
		if len(prods) != before {
			changed = true
		}
	}

	if !changed {
		return g, false
	}
	return &Grammar{Start: g.Start, Productions: prods}, true
}

// eliminateLeftRecursion is pass 4: seed a DFS from each terminal node of
// the first-set graph, in canonical order, and break the first cycle found.
// A direct self-loop (a single nonterminal A with A -> A β among its
// productions) is rewritten with the standard construction:
//
//	A  -> γ_1 A' | γ_2 A' | ...   (the non-recursive productions of A)
//	A' -> β_1 A' | β_2 A' | ... | End
//
// An indirect cycle (A0 -> A1 -> ... -> Ak -> A0) is reduced one hop at a
// time by substituting A0's productions into the production of Ak that
// closes the loop; repeating this over successive fixed-point iterations
// eventually turns the indirect cycle into a direct one, which the case
// above then eliminates. Only one cycle is broken per invocation: the
// fixed-point loop reruns the whole pass sequence, including a fresh graph,
// before looking for another.
func eliminateLeftRecursion(g *Grammar, graph *Graph, f *factory) (*Grammar, bool) {
	for _, t := range graph.terminalOrder {
		cyc := graph.findCycle(t)
		if cyc == nil {
			continue
		}
		if len(cyc) == 1 {
			return breakDirectLeftRecursion(g, cyc[0].NonTerm, f), true
		}
		return breakIndirectLeftRecursion(g, cyc), true
	}
	return g, false
}

func breakDirectLeftRecursion(g *Grammar, a string, f *factory) *Grammar {
	fresh := f.create(a)

	var newAProds, freshProds []*Production
	for _, p := range g.productionsOf(a) {
		first := p.RightFirst()
		if first.IsNonTerminal() && first.NonTerm == a {
			beta := p.Right[1:]
			right := append(append([]Symbol{}, beta...), NewNonTerminal(fresh))
			freshProds = append(freshProds, NewProduction(fresh, right))
			continue
		}
		var gamma []Symbol
		if p.IsEpsilon() {
			gamma = []Symbol{}
		} else {
			gamma = append([]Symbol{}, p.Right...)
		}
		newAProds = append(newAProds, NewProduction(a, append(gamma, NewNonTerminal(fresh))))
	}
	freshProds = append(freshProds, NewProduction(fresh, []Symbol{End}))

	// Rebuild in canonical order: walk the original list, replacing A's
	// productions in place with newAProds followed immediately by
	// freshProds, the first time A is encountered.
	var out []*Production
	done := false
	for _, p := range g.Productions {
		if p.Left != a {
			out = append(out, p)
			continue
		}
		if done {
			continue
		}
		out = append(out, newAProds...)
		out = append(out, freshProds...)
		done = true
	}

	return &Grammar{Start: g.Start, Productions: out}
}

// breakIndirectLeftRecursion substitutes the productions of cyc[0] into the
// production of cyc[1] that has cyc[0] as its RightFirst (the production
// behind the graph edge cyc[0] -> cyc[1]), replacing that one production with
// one clone per substituted alternative.
func breakIndirectLeftRecursion(g *Grammar, cyc []Symbol) *Grammar {
	head := cyc[0].NonTerm
	tail := cyc[1].NonTerm
	headProds := g.productionsOf(head)

	var out []*Production
	for _, p := range g.Productions {
		if p.Left != tail {
			out = append(out, p)
			continue
		}
		first := p.RightFirst()
		if !first.IsNonTerminal() || first.NonTerm != head {
			out = append(out, p)
			continue
		}
		rest := p.Right[1:]
		for _, hp := range headProds {
			var right []Symbol
			if hp.IsEpsilon() {
				right = append([]Symbol{}, rest...)
			} else {
				right = append(append([]Symbol{}, hp.Right...), rest...)
			}
			if len(right) == 0 {
				right = []Symbol{End}
			}
			out = dedupAppend(out, NewProduction(tail, right))
		}
	}

	return &Grammar{Start: g.Start, Productions: out}
}

// eliminateBacktracking is pass 5: for each terminal node, DFS the graph the
// same way findCycle walks it for left recursion, following edges from node
// to node. At every node reached along the way - not only the seed terminal
// itself - group its outgoing edges by target nonterminal: a group of two or
// more productions means that nonterminal has multiple alternatives sharing
// this node as their leading symbol, however many hops separate it from the
// terminal, which is a backtracking point and gets factored:
//
//	N  -> shared N'
//	N' -> rest_1 | rest_2 | ...
//
// Only the first factoring opportunity found is applied; grammars that need
// factoring at more than one prefix length converge over successive
// fixed-point iterations, since the freshly introduced N' is itself
// re-examined on the next pass.
func eliminateBacktracking(g *Grammar, graph *Graph, f *factory) (*Grammar, bool) {
	for _, t := range graph.terminalOrder {
		if out, ok := factorReachableFrom(g, graph, t, map[Symbol]bool{}, f); ok {
			return out, true
		}
	}
	return g, false
}

// factorReachableFrom walks every node reachable from n and returns the
// first factoring found, checking n itself before recursing into its
// out-edges' targets.
func factorReachableFrom(g *Grammar, graph *Graph, n Symbol, visited map[Symbol]bool, f *factory) (*Grammar, bool) {
	if visited[n] {
		return nil, false
	}
	visited[n] = true

	if out, ok := factorGroupAt(g, graph, n, f); ok {
		return out, true
	}

	for _, e := range graph.adjFor(n) {
		if out, ok := factorReachableFrom(g, graph, e.to, visited, f); ok {
			return out, true
		}
	}
	return nil, false
}

// factorGroupAt groups n's outgoing edges by target nonterminal and factors
// the first group of two or more, if any.
func factorGroupAt(g *Grammar, graph *Graph, n Symbol, f *factory) (*Grammar, bool) {
	edges := graph.adjFor(n)

	var order []string
	groups := map[string][]*Production{}
	for _, e := range edges {
		name := e.to.NonTerm
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], e.prod)
	}

	for _, name := range order {
		group := groups[name]
		if len(group) < 2 {
			continue
		}
		return factorPrefix(g, name, n, group, f), true
	}
	return nil, false
}

func factorPrefix(g *Grammar, n string, shared Symbol, group []*Production, f *factory) *Grammar {
	fresh := f.create(n)

	inGroup := map[*Production]bool{}
	for _, p := range group {
		inGroup[p] = true
	}

	var freshProds []*Production
	for _, p := range group {
		suffix := p.Right[1:]
		if len(suffix) == 0 {
			suffix = []Symbol{End}
		}
		freshProds = append(freshProds, NewProduction(fresh, append([]Symbol{}, suffix...)))
	}
	factored := NewProduction(n, []Symbol{shared, NewNonTerminal(fresh)})

	var out []*Production
	inserted := false
	for _, p := range g.Productions {
		if inGroup[p] {
			if !inserted {
				out = append(out, factored)
				out = append(out, freshProds...)
				inserted = true
			}
			continue
		}
		out = append(out, p)
	}

	return &Grammar{Start: g.Start, Productions: out}
}
