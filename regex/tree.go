package regex

import "fmt"

// node is a token in the parsed regex tree, produced by the container-stack
// parser in parse.go and consumed by the NFA compiler in nfa.go.
type node interface {
	fmt.Stringer
	generate(g *nfaBuilder, from *state) *state
}

// charNode matches a single literal rune.
type charNode struct {
	r rune
}

func (n *charNode) String() string { return fmt.Sprintf("char(%q)", n.r) }

// anyNode matches any single rune (`.`).
type anyNode struct{}

func (n *anyNode) String() string { return "any" }

// setItem is one member of a character class: either a single rune, a
// From-To range, or a Unicode general-category/script predicate.
type setItem struct {
	from, to rune
	isRange  bool
	pred     runePredicate
}

// runePredicate is satisfied by \p{Name}/\P{Name} class members; it is
// resolved against the ucd package at parse time (see charclass.go).
type runePredicate func(r rune) bool

// setNode matches a character class: `[...]` or `[^...]`.
type setNode struct {
	items   []setItem
	negated bool
}

func (n *setNode) String() string { return fmt.Sprintf("set(negated=%v, %d items)", n.negated, len(n.items)) }

// groupNode is the concatenation of its children, in order. The implicit
// top-level container is also a groupNode.
type groupNode struct {
	children []node
}

func (n *groupNode) String() string { return fmt.Sprintf("group(%d)", len(n.children)) }

func (n *groupNode) append(c node) {
	n.children = append(n.children, c)
}

// altNode matches the left branch or the right branch (`|`).
type altNode struct {
	left, right node
}

func (n *altNode) String() string { return "alt" }

type quantKind int

const (
	quantZeroOrMore quantKind = iota // *
	quantOnceOrMore                  // +
	quantZeroOrOnce                  // ?
)

// quantNode wraps the immediately preceding token with a repetition operator.
type quantNode struct {
	kind  quantKind
	child node
	lazy  bool
}

func (n *quantNode) String() string { return fmt.Sprintf("quant(%v, lazy=%v)", n.kind, n.lazy) }

// lookaheadNode is a zero-width assertion: the wrapped sub-pattern must (or,
// if inverted, must not) match at the current position without consuming it.
type lookaheadNode struct {
	child    node
	inverted bool
}

func (n *lookaheadNode) String() string { return fmt.Sprintf("lookahead(inverted=%v)", n.inverted) }
