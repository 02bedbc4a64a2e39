// Package tester runs golden-file test cases against a compiled grammar: a
// test case pairs a source text with the parse tree it must produce, and
// running it diffs the actual tree against the expected one.
package tester

import "fmt"

// Tree is a parse tree written by hand in a test-case file, or built from a
// driver/parser.Node so the two can be diffed. Kind is a symbol label (e.g.
// "n3", "t1", matching artifact.Symbol.String()); "_" matches any kind.
type Tree struct {
	Parent   *Tree
	Offset   int
	Kind     string
	Lexeme   string
	Children []*Tree
}

// NewNonTerminalTree builds an internal node.
func NewNonTerminalTree(kind string, children ...*Tree) *Tree {
	return &Tree{Kind: kind, Children: children}
}

// NewTerminalTree builds a leaf node holding the matched text.
func NewTerminalTree(kind, lexeme string) *Tree {
	return &Tree{Kind: kind, Lexeme: lexeme}
}

// Fill back-fills Parent and Offset on every descendant, needed before path
// can report a useful location for a diff.
func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t.Parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, t.Kind)
}

// TreeDiff is one point of disagreement between an expected and an actual
// tree.
type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// DiffTree compares expected against actual, stopping at the first
// disagreement along a given path (a mismatched kind or lexeme makes the
// subtree's children incomparable).
func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{newTreeDiff(expected, actual, msg)}
	}
	if expected.Lexeme != actual.Lexeme {
		msg := fmt.Sprintf("unexpected lexeme: expected '%v' but got '%v'", expected.Lexeme, actual.Lexeme)
		return []*TreeDiff{newTreeDiff(expected, actual, msg)}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{newTreeDiff(expected, actual, msg)}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}
