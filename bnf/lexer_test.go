package bnf

import "testing"

func scanAll(t *testing.T, src string) []*token {
	t.Helper()
	l := newLexer(src, "test")
	var toks []*token
	for {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("next() failed: %v", err)
		}
		toks = append(toks, tok)
		if tok.kind == tokenKindEOF {
			break
		}
	}
	return toks
}

func TestLexer_Basics(t *testing.T) {
	toks := scanAll(t, `E = "a" | /b+/U ;`)
	kinds := make([]tokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.kind
	}
	want := []tokenKind{tokenKindID, tokenKindEq, tokenKindString, tokenKindPipe, tokenKindRegex, tokenKindSemi, tokenKindEOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v; want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds[%d] = %v; want %v", i, kinds[i], want[i])
		}
	}
	if !toks[4].lazy {
		t.Fatalf("expected the regex token to be marked lazy")
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\"b\\c"`)
	if toks[0].text != `a"b\c` {
		t.Fatalf("scanned string = %q; want a\"b\\c", toks[0].text)
	}
}

func TestLexer_Comment(t *testing.T) {
	toks := scanAll(t, `(* a comment *) id`)
	if len(toks) != 2 || toks[0].kind != tokenKindID || toks[0].text != "id" {
		t.Fatalf("comment was not skipped: %v", toks)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := newLexer(`"abc`, "test")
	if _, err := l.next(); err == nil {
		t.Fatalf("expected an error for an unterminated string literal")
	}
}

func TestLexer_UnterminatedComment(t *testing.T) {
	l := newLexer(`(* abc`, "test")
	if _, err := l.next(); err == nil {
		t.Fatalf("expected an error for an unterminated comment")
	}
}
