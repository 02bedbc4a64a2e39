package regex

import "testing"

func mustCompile(t *testing.T, pattern string, greedy bool) *RegexMatcher {
	t.Helper()
	m, err := Compile(pattern, greedy)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", pattern, err)
	}
	return m
}

func TestRegexMatcher_Basics(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		wantOK  bool
		wantLen int
	}{
		{"abc", "abc", true, 3},
		{"abc", "abd", false, 0},
		{"a|b", "b", true, 1},
		{"a*", "aaab", true, 3},
		{"a+", "aaab", true, 3},
		{"a+", "b", false, 0},
		{"a?b", "b", true, 1},
		{"(ab)+", "ababc", true, 4},
		{"[a-c]+", "cba123", true, 3},
		{"[^a-c]+", "xyz123abc", true, 6},
		{`"([^\\]|(\\"))*"`, `"aa\"ab"`, true, 8},
	}
	for _, tt := range tests {
		m := mustCompile(t, tt.pattern, true)
		s := NewStreamFromString(tt.input)
		ok := m.Match(s)
		if ok != tt.wantOK {
			t.Fatalf("pattern %q on %q: got match=%v, want %v", tt.pattern, tt.input, ok, tt.wantOK)
		}
		if ok && s.Tellg() != tt.wantLen {
			t.Fatalf("pattern %q on %q: consumed %d runes, want %d", tt.pattern, tt.input, s.Tellg(), tt.wantLen)
		}
	}
}

func TestRegexMatcher_GreedyVsLazy(t *testing.T) {
	greedy := mustCompile(t, "a*", true)
	s := NewStreamFromString("aaab")
	if !greedy.Match(s) || s.Tellg() != 3 {
		t.Fatalf("greedy a* on aaab: got pos %d", s.Tellg())
	}

	lazy := mustCompile(t, "a*", false)
	s2 := NewStreamFromString("aaab")
	if !lazy.Match(s2) || s2.Tellg() != 0 {
		t.Fatalf("lazy a* on aaab: got pos %d", s2.Tellg())
	}
}

func TestRegexMatcher_LookaheadDoesNotConsume(t *testing.T) {
	m, err := Compile(`abc(?=d)`, true)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	s := NewStreamFromString("abcd")
	if !m.Match(s) {
		t.Fatalf("expected match")
	}
	if s.Tellg() != 3 {
		t.Fatalf("lookahead consumed input: pos = %d, want 3", s.Tellg())
	}
	rest := s.GetBufferToIndexAsString(4)
	if rest != "abcd" {
		t.Fatalf("buffer contents changed: %q", rest)
	}
}

func TestRegexMatcher_NegativeLookahead(t *testing.T) {
	m, err := Compile(`a(?!b)`, true)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if s := NewStreamFromString("ab"); m.Match(s) {
		t.Fatalf("expected negative lookahead to reject 'ab'")
	}
	if s := NewStreamFromString("ac"); !m.Match(s) {
		t.Fatalf("expected negative lookahead to accept 'ac'")
	}
}

func TestStringMatcher(t *testing.T) {
	m := NewStringMatcher("let")
	s := NewStreamFromString("let x")
	if !m.Match(s) || s.Tellg() != 3 {
		t.Fatalf("StringMatcher failed to match literal prefix")
	}

	s2 := NewStreamFromString("lex")
	if m.Match(s2) {
		t.Fatalf("StringMatcher should not match a differing prefix")
	}
}

func TestRegexExcludeMatcher(t *testing.T) {
	base := mustCompile(t, "[a-z]+", true)
	kw, err := Compile("let", true)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	ex := NewRegexExcludeMatcher(base, []Matcher{kw})

	if s := NewStreamFromString("let"); ex.Match(s) {
		t.Fatalf("exclude matcher should reject the excluded keyword")
	}
	if s := NewStreamFromString("letter"); !ex.Match(s) {
		t.Fatalf("exclude matcher should accept identifiers that merely start with the keyword")
	}
	if s := NewStreamFromString("foo"); !ex.Match(s) {
		t.Fatalf("exclude matcher should accept any other identifier")
	}
}
