// Package parser is the table-driven runtime parser: a pushdown automaton
// over a decoded artifact.Table that consumes tokens from a lexer.Lexer and
// produces a parse tree with epsilon productions elided.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/llgen/llgen/artifact"
	"github.com/llgen/llgen/driver/lexer"
	verr "github.com/llgen/llgen/error"
	"github.com/llgen/llgen/grammar"
)

// Node is one parse-tree node. A terminal node's Value holds the matched
// text; a nonterminal node's Value is unused. Parent is a non-owning
// back-reference used only during epsilon pruning.
type Node struct {
	Symbol   artifact.Symbol
	Value    string
	Children []*Node
	Parent   *Node
}

// Parser drives table against tokens read from lex.
type Parser struct {
	table *artifact.Table
	lex   *lexer.Lexer
}

// New builds a Parser over a decoded artifact and a lexer already
// constructed over that same artifact's matcher list.
func New(table *artifact.Table, lex *lexer.Lexer) *Parser {
	return &Parser{table: table, lex: lex}
}

// Parse runs the pushdown automaton to completion and returns the root node,
// with epsilon productions already pruned.
func (p *Parser) Parse() (*Node, error) {
	end := &Node{Symbol: artifact.Symbol{Kind: grammar.SymEnd}}
	root := &Node{Symbol: p.table.Start}
	stack := []*Node{end, root}

	if err := p.advance(root); err != nil {
		return nil, err
	}

	var epsilonNodes []*Node
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch top.Symbol.Kind {
		case grammar.SymNonTerminal:
			rhs, ok := p.table.Rules[top.Symbol.ID][p.currentLookahead()]
			if !ok {
				return nil, &verr.SpecError{Cause: verr.ErrUnexpectedToken, Detail: "no parse table entry for the current lookahead"}
			}
			if len(rhs) == 1 && rhs[0].Kind == grammar.SymEnd {
				epsilonNodes = append(epsilonNodes, top)
				continue
			}
			children := make([]*Node, len(rhs))
			for i, sym := range rhs {
				children[i] = &Node{Symbol: sym, Parent: top}
			}
			top.Children = children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}

		case grammar.SymTerminal:
			cur := p.lex.CurrentToken()
			if cur.EOF || cur.Term != top.Symbol.ID {
				return nil, &verr.SpecError{Cause: verr.ErrUnexpectedToken, Detail: "terminal mismatch"}
			}
			top.Value = cur.Text
			if err := p.advance(stack[len(stack)-1]); err != nil {
				return nil, err
			}

		case grammar.SymEnd:
			if !p.lex.CurrentToken().EOF {
				return nil, &verr.SpecError{Cause: verr.ErrUnexpectedToken, Detail: "extra input remains after the grammar's start symbol was fully reduced"}
			}
		}
	}

	pruneEpsilon(epsilonNodes)
	return root, nil
}

// advance tells the lexer the candidate set for whatever is newly on top of
// the stack: the single terminal if it's a terminal, the nonterminal's
// direct FIRST-candidates if it's a nonterminal, or "expect EOF" for the
// end-marker.
func (p *Parser) advance(next *Node) error {
	switch next.Symbol.Kind {
	case grammar.SymTerminal:
		return p.lex.ReadNextTokenExpect([]int{next.Symbol.ID})
	case grammar.SymNonTerminal:
		return p.lex.ReadNextTokenExpect(p.firstCandidates(next.Symbol.ID))
	default:
		return p.lex.ReadNextTokenExpectEof()
	}
}

func (p *Parser) firstCandidates(nonTermID int) []int {
	row := p.table.Rules[nonTermID]
	candidates := make([]int, 0, len(row))
	for look := range row {
		if look.Kind == grammar.SymTerminal {
			candidates = append(candidates, look.ID)
		}
	}
	sort.Ints(candidates)
	return candidates
}

func (p *Parser) currentLookahead() artifact.Symbol {
	cur := p.lex.CurrentToken()
	if cur.EOF {
		return artifact.Symbol{Kind: grammar.SymEnd}
	}
	return artifact.Symbol{Kind: grammar.SymTerminal, ID: cur.Term}
}

// pruneEpsilon removes every recorded epsilon node from its parent, then
// cascades upward while the now-empty parent is itself left with no
// children — i.e. was only ever reachable through epsilon productions.
func pruneEpsilon(epsilonNodes []*Node) {
	seen := map[*Node]bool{}
	queue := append([]*Node{}, epsilonNodes...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[n] {
			continue
		}
		seen[n] = true

		parent := n.Parent
		if parent == nil {
			continue
		}
		removeChild(parent, n)
		if len(parent.Children) == 0 {
			queue = append(queue, parent)
		}
	}
}

func removeChild(parent, child *Node) {
	for i, c := range parent.Children {
		if c == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}

// PrintTree writes a box-drawing rendering of tree to a string, for
// debugging and for the `llgen parse` CLI subcommand.
func PrintTree(root *Node) string {
	var b strings.Builder
	printTree(&b, root, "", "")
	return b.String()
}

func printTree(b *strings.Builder, n *Node, ruledLine, childRuledLinePrefix string) {
	if n == nil {
		return
	}

	b.WriteString(ruledLine)
	b.WriteString(symbolLabel(n))
	if n.Symbol.Kind == grammar.SymTerminal {
		fmt.Fprintf(b, " %q", n.Value)
	}
	b.WriteByte('\n')

	num := len(n.Children)
	for i, c := range n.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(b, c, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

func symbolLabel(n *Node) string {
	switch n.Symbol.Kind {
	case grammar.SymTerminal:
		return fmt.Sprintf("t%d", n.Symbol.ID)
	case grammar.SymNonTerminal:
		return fmt.Sprintf("n%d", n.Symbol.ID)
	default:
		return "<end>"
	}
}
