package grammar

// firstEntry is one nonterminal's FIRST set: the terminals that can begin
// some string it derives, plus a flag recording whether it can derive the
// empty string.
type firstEntry struct {
	terms map[Symbol]bool
	empty bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{terms: map[Symbol]bool{}}
}

func (e *firstEntry) add(sym Symbol) bool {
	if e.terms[sym] {
		return false
	}
	e.terms[sym] = true
	return true
}

func (e *firstEntry) addEmpty() bool {
	if e.empty {
		return false
	}
	e.empty = true
	return true
}

func (e *firstEntry) merge(o *firstEntry) bool {
	changed := false
	for s := range o.terms {
		if e.add(s) {
			changed = true
		}
	}
	if o.empty && e.addEmpty() {
		changed = true
	}
	return changed
}

// firstSets holds FIRST(N) for every nonterminal N in a grammar.
type firstSets struct {
	byNonTerm map[string]*firstEntry
}

// computeFirstSets runs the usual fixed-point iteration: for each
// production Left -> s1 s2 ... sn, FIRST(Left) absorbs FIRST(s1); if s1 is
// nullable, it absorbs FIRST(s2) too, and so on, and Left itself becomes
// nullable if every si is nullable (including an empty right-hand side).
func computeFirstSets(g *Grammar) *firstSets {
	fs := &firstSets{byNonTerm: map[string]*firstEntry{}}
	for _, p := range g.Productions {
		if _, ok := fs.byNonTerm[p.Left]; !ok {
			fs.byNonTerm[p.Left] = newFirstEntry()
		}
	}

	for {
		changed := false
		for _, p := range g.Productions {
			entry := fs.byNonTerm[p.Left]
			if p.IsEpsilon() {
				if entry.addEmpty() {
					changed = true
				}
				continue
			}
			nullablePrefix := true
			for _, s := range p.Right {
				if s.IsTerminal() {
					if entry.add(s) {
						changed = true
					}
					nullablePrefix = false
					break
				}
				sub := fs.byNonTerm[s.NonTerm]
				if sub == nil {
					nullablePrefix = false
					break
				}
				if entry.merge(sub) {
					changed = true
				}
				if !sub.empty {
					nullablePrefix = false
					break
				}
			}
			if nullablePrefix {
				if entry.addEmpty() {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return fs
}

// firstOfSequence computes FIRST of a right-hand-side suffix, used both
// while computing FOLLOW sets and while building the parse table.
func (fs *firstSets) firstOfSequence(seq []Symbol) *firstEntry {
	entry := newFirstEntry()
	nullable := true
	for _, s := range seq {
		if s.IsEnd() {
			continue
		}
		if s.IsTerminal() {
			entry.add(s)
			nullable = false
			break
		}
		sub := fs.byNonTerm[s.NonTerm]
		if sub == nil {
			nullable = false
			break
		}
		for t := range sub.terms {
			entry.add(t)
		}
		if !sub.empty {
			nullable = false
			break
		}
	}
	if nullable {
		entry.addEmpty()
	}
	return entry
}
