package grammar

// edge is one arrow of the first-set graph: from rightFirst(p) to left(p),
// labeled with the production that produced it.
type edge struct {
	to   Symbol
	prod *Production
}

// Graph is the first-set graph (§3): a directed graph whose nodes are
// Symbols and whose edges point from a production's first right-hand symbol
// toward its left-hand nonterminal, so reachability from a terminal node
// yields every nonterminal whose FIRST set contains it. It is rebuilt from
// scratch every transformer iteration (buildGraph, pass 2) and is never
// persisted.
type Graph struct {
	edges []graphAdj

	byNode map[Symbol]int // node -> index into edges

	// terminalOrder lists the terminal-or-End nodes in first-appearance
	// order, giving the deterministic DFS seed order the transformer
	// requires (§5, ordering guarantee).
	terminalOrder []Symbol
}

type graphAdj struct {
	node Symbol
	out  []edge
}

func (g *Graph) adjFor(s Symbol) []edge {
	i, ok := g.byNode[s]
	if !ok {
		return nil
	}
	return g.edges[i].out
}

func (g *Graph) isTerminalNode(s Symbol) bool {
	return s.IsTerminal() || s.IsEnd()
}

// buildGraph is the non-mutating analysis pass (pass 2): erase any prior
// graph and insert an edge rightFirst(p) -> left(p) for every production.
func buildGraph(g *Grammar) *Graph {
	graph := &Graph{byNode: map[Symbol]int{}}

	ensure := func(s Symbol) int {
		if i, ok := graph.byNode[s]; ok {
			return i
		}
		graph.edges = append(graph.edges, graphAdj{node: s})
		i := len(graph.edges) - 1
		graph.byNode[s] = i
		if graph.isTerminalNode(s) {
			graph.terminalOrder = append(graph.terminalOrder, s)
		}
		return i
	}

	for _, p := range g.Productions {
		from := p.RightFirst()
		to := p.LHS()
		fi := ensure(from)
		ensure(to)
		graph.edges[fi].out = append(graph.edges[fi].out, edge{to: to, prod: p})
	}

	return graph
}

// findCycle runs a DFS from start following graph edges and returns the
// chain of nonterminals forming the first cycle encountered (in the order
// they were first visited), or nil if start reaches no cycle. Per the design
// note, only the first cycle found matters: the caller breaks it and the
// fixed-point loop reruns analysis from scratch.
func (g *Graph) findCycle(start Symbol) []Symbol {
	var path []Symbol
	pos := map[Symbol]int{}

	var walk func(n Symbol) []Symbol
	walk = func(n Symbol) []Symbol {
		if i, ok := pos[n]; ok {
			cyc := make([]Symbol, len(path)-i)
			copy(cyc, path[i:])
			return cyc
		}
		pos[n] = len(path)
		path = append(path, n)
		for _, e := range g.adjFor(n) {
			if cyc := walk(e.to); cyc != nil {
				return cyc
			}
		}
		path = path[:len(path)-1]
		delete(pos, n)
		return nil
	}

	return walk(start)
}
