package grammar

// followEntry is one nonterminal's FOLLOW set: the terminals (and possibly
// End, the input-end marker) that can immediately follow it in some
// derivation from the start symbol.
type followEntry struct {
	terms map[Symbol]bool
}

func newFollowEntry() *followEntry {
	return &followEntry{terms: map[Symbol]bool{}}
}

func (e *followEntry) add(sym Symbol) bool {
	if e.terms[sym] {
		return false
	}
	e.terms[sym] = true
	return true
}

func (e *followEntry) merge(o *followEntry) bool {
	changed := false
	for s := range o.terms {
		if e.add(s) {
			changed = true
		}
	}
	return changed
}

type followSets struct {
	byNonTerm map[string]*followEntry
}

// computeFollowSets seeds FOLLOW(start) with End and then, for every
// production A -> ... B beta, adds FIRST(beta) (minus emptiness) to
// FOLLOW(B); when beta is empty or nullable it also merges FOLLOW(A) into
// FOLLOW(B), since whatever can follow A can then follow B too.
func computeFollowSets(g *Grammar, first *firstSets) *followSets {
	fs := &followSets{byNonTerm: map[string]*followEntry{}}
	for _, p := range g.Productions {
		if _, ok := fs.byNonTerm[p.Left]; !ok {
			fs.byNonTerm[p.Left] = newFollowEntry()
		}
	}
	fs.byNonTerm[g.Start].add(End)

	for {
		changed := false
		for _, p := range g.Productions {
			for i, s := range p.Right {
				if !s.IsNonTerminal() {
					continue
				}
				beta := p.Right[i+1:]
				betaFirst := first.firstOfSequence(beta)

				entry := fs.byNonTerm[s.NonTerm]
				for t := range betaFirst.terms {
					if entry.add(t) {
						changed = true
					}
				}
				if betaFirst.empty {
					if entry.merge(fs.byNonTerm[p.Left]) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return fs
}
