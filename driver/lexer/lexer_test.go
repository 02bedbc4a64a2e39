package lexer

import (
	"testing"

	"github.com/llgen/llgen/regex"
)

func TestLexer_LongestMatchWins(t *testing.T) {
	// t0 matches "l", t1 matches "let": both are candidates, t1 should win
	// even though it sorts after t0 in the candidate list.
	matchers := []regex.Matcher{
		regex.NewStringMatcher("l"),
		regex.NewStringMatcher("let"),
	}
	l := New(matchers, regex.NewStreamFromString("let x"))
	if err := l.ReadNextTokenExpect([]int{0, 1}); err != nil {
		t.Fatalf("ReadNextTokenExpect failed: %v", err)
	}
	tok := l.CurrentToken()
	if tok.Term != 1 || tok.Text != "let" {
		t.Fatalf("token = %+v; want term 1 text \"let\"", tok)
	}
}

func TestLexer_SkipsWhitespace(t *testing.T) {
	matchers := []regex.Matcher{regex.NewStringMatcher("x")}
	l := New(matchers, regex.NewStreamFromString("   x"))
	if err := l.ReadNextTokenExpect([]int{0}); err != nil {
		t.Fatalf("ReadNextTokenExpect failed: %v", err)
	}
	if tok := l.CurrentToken(); tok.Text != "x" {
		t.Fatalf("token text = %q; want x", tok.Text)
	}
}

func TestLexer_NoCandidateMatches(t *testing.T) {
	matchers := []regex.Matcher{regex.NewStringMatcher("x")}
	l := New(matchers, regex.NewStreamFromString("y"))
	if err := l.ReadNextTokenExpect([]int{0}); err == nil {
		t.Fatalf("expected an incomplete-token error")
	}
}

func TestLexer_EOF(t *testing.T) {
	matchers := []regex.Matcher{regex.NewStringMatcher("x")}
	l := New(matchers, regex.NewStreamFromString(""))
	if err := l.ReadNextTokenExpect([]int{0}); err != nil {
		t.Fatalf("ReadNextTokenExpect at EOF failed: %v", err)
	}
	if !l.CurrentToken().EOF {
		t.Fatalf("expected an EOF token")
	}
}

func TestLexer_ReadNextTokenExpectEof(t *testing.T) {
	l := New(nil, regex.NewStreamFromString("  "))
	if err := l.ReadNextTokenExpectEof(); err != nil {
		t.Fatalf("ReadNextTokenExpectEof failed on trailing whitespace: %v", err)
	}

	l2 := New(nil, regex.NewStreamFromString("x"))
	if err := l2.ReadNextTokenExpectEof(); err == nil {
		t.Fatalf("expected an error when input remains")
	}
}
