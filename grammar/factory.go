package grammar

import "fmt"

// factory mints nonterminal names guaranteed not to collide with any name
// already present in the grammar being transformed, or with any name it has
// minted so far this run.
type factory struct {
	seen     map[string]bool
	counters map[string]int
}

func newFactory(g *Grammar) *factory {
	f := &factory{seen: map[string]bool{}, counters: map[string]int{}}
	for _, p := range g.Productions {
		f.seen[p.Left] = true
		for _, s := range p.Right {
			if s.IsNonTerminal() {
				f.seen[s.NonTerm] = true
			}
		}
	}
	return f
}

// create returns a fresh name derived from base, e.g. "E" -> "E_1".
func (f *factory) create(base string) string {
	for {
		f.counters[base]++
		name := fmt.Sprintf("%s_%d", base, f.counters[base])
		if !f.seen[name] {
			f.seen[name] = true
			return name
		}
	}
}
