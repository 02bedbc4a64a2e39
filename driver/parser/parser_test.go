package parser

import (
	"bytes"
	"testing"

	"github.com/llgen/llgen/artifact"
	"github.com/llgen/llgen/bnf"
	"github.com/llgen/llgen/driver/lexer"
	"github.com/llgen/llgen/grammar"
	"github.com/llgen/llgen/regex"
)

func compile(t *testing.T, src string) *artifact.Table {
	t.Helper()
	res, err := bnf.Build(src, "test")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	g, err := grammar.Transform(res.Grammar)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	table, err := grammar.BuildParseTable(g)
	if err != nil {
		t.Fatalf("BuildParseTable failed: %v", err)
	}
	var buf bytes.Buffer
	if err := artifact.Write(&buf, res.Matchers, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	decoded, err := artifact.Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return decoded
}

// TestParse_ClassicExpression exercises scenario 1: E = E "+" T | T; T = "a";
// after transform, parsing "a+a+a" should yield a tree with three T nodes.
func TestParse_ClassicExpression(t *testing.T) {
	table := compile(t, `E = E "+" T | T; T = "a";`)

	stream := regex.NewStreamFromString("a+a+a")
	lex := lexer.New(table.Matchers, stream)
	p := New(table, lex)

	root, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// "+" is interned before "a" (E's productions are lowered first), so
	// rather than relying on ids, count the terminal leaves whose matched
	// text is "a".
	count := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Symbol.Kind == grammar.SymTerminal && n.Value == "a" {
			count++
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	if count != 3 {
		t.Fatalf("expected 3 terminal leaves matching \"a\", got %d", count)
	}
}

func TestParse_LeftFactoredAlternatives(t *testing.T) {
	table := compile(t, `S = "a" B | "a" C; B = "b"; C = "c";`)

	stream := regex.NewStreamFromString("ac")
	lex := lexer.New(table.Matchers, stream)
	p := New(table, lex)

	root, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var leaves []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Symbol.Kind == grammar.SymTerminal {
			leaves = append(leaves, n.Value)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	if len(leaves) != 2 || leaves[0] != "a" || leaves[1] != "c" {
		t.Fatalf("leaves = %v; want [a c]", leaves)
	}
}

func TestParse_RejectsExtraInput(t *testing.T) {
	table := compile(t, `T = "a";`)
	stream := regex.NewStreamFromString("aa")
	lex := lexer.New(table.Matchers, stream)
	p := New(table, lex)
	if _, err := p.Parse(); err == nil {
		t.Fatalf("expected an error for trailing extra input")
	}
}

// TestParse_MultiLineComment exercises scenario 6: a comment-only input
// against a grammar whose start symbol reduces straight to a single regex
// terminal spanning the whole "/* ... */" block.
func TestParse_MultiLineComment(t *testing.T) {
	table := compile(t, `S = /\/\*([^*]|\*+[^*\/])*\*+\//;`)

	const src = "/* hello world */"
	stream := regex.NewStreamFromString(src)
	lex := lexer.New(table.Matchers, stream)
	p := New(table, lex)

	root, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("root has %d children; want 1", len(root.Children))
	}
	child := root.Children[0]
	if child.Symbol.Kind != grammar.SymTerminal {
		t.Fatalf("root's only child is not a terminal: %+v", child)
	}
	if child.Value != src {
		t.Fatalf("comment terminal text = %q; want %q", child.Value, src)
	}
}

func TestParse_EpsilonPruning(t *testing.T) {
	// S = "a" S1; S1 = "b" | ; -- S1 can reduce to epsilon.
	table := compile(t, `S = "a" S1; S1 = "b" | "";`)

	stream := regex.NewStreamFromString("a")
	lex := lexer.New(table.Matchers, stream)
	p := New(table, lex)

	root, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, c := range root.Children {
		if len(c.Children) == 0 && c.Symbol.Kind == grammar.SymNonTerminal {
			t.Fatalf("epsilon-collapsed nonterminal child was not pruned: %+v", c)
		}
	}
}
