package regex

// Matcher is a terminal-matching primitive: something that can attempt to
// match a prefix of a Stream starting at its current position and, on
// success, leaves the Stream positioned just past the match.
type Matcher interface {
	// Match attempts to match at the stream's current position. On success
	// it returns true with the stream advanced past the match; on failure
	// the stream position is left exactly where it started.
	Match(s *Stream) bool
	// Source returns the regex source string (or literal text, for
	// StringMatcher) this matcher was built from, for serialization.
	Source() string
}

// StringMatcher matches one fixed literal, byte for byte.
type StringMatcher struct {
	literal string
}

func NewStringMatcher(literal string) *StringMatcher {
	return &StringMatcher{literal: literal}
}

func (m *StringMatcher) Source() string { return m.literal }

func (m *StringMatcher) Match(s *Stream) bool {
	mark := s.Tellg()
	for _, want := range m.literal {
		got, ok := s.Get()
		if !ok || got != want {
			s.Seekg(mark)
			return false
		}
	}
	return true
}

// RegexMatcher matches whatever its compiled NFA accepts, greedily or
// lazily depending on how the pattern was written (trailing `U`).
type RegexMatcher struct {
	source string
	nfa    *automaton
	greedy bool
}

// Compile parses and compiles a regex source string into a RegexMatcher.
// A trailing 'U' after the pattern (already stripped by the caller's
// delimiter handling) is not interpreted here; the greedy argument controls
// it directly.
func Compile(source string, greedy bool) (*RegexMatcher, error) {
	root, err := parse(source)
	if err != nil {
		return nil, toSpecError(err, "")
	}
	return &RegexMatcher{source: source, nfa: compile(root), greedy: greedy}, nil
}

func (m *RegexMatcher) Source() string { return m.source }

// Greedy reports whether this matcher consumes as much input as possible
// (the default) rather than as little as possible (a trailing 'U' on the
// source pattern).
func (m *RegexMatcher) Greedy() bool { return m.greedy }

func (m *RegexMatcher) Match(s *Stream) bool {
	mark := s.Tellg()
	ok := runMatch(m.nfa, s, m.greedy)
	if !ok {
		s.Seekg(mark)
	}
	return ok
}

// RegexExcludeMatcher matches iff its regex matches and none of its exclude
// matchers also match the same prefix. This implements "identifier except keyword" as one atomic
// terminal (§3, Matcher).
type RegexExcludeMatcher struct {
	base    *RegexMatcher
	exclude []Matcher
}

func NewRegexExcludeMatcher(base *RegexMatcher, exclude []Matcher) *RegexExcludeMatcher {
	return &RegexExcludeMatcher{base: base, exclude: exclude}
}

func (m *RegexExcludeMatcher) Source() string { return m.base.source }

// Base returns the underlying regex matcher a candidate must satisfy.
func (m *RegexExcludeMatcher) Base() *RegexMatcher { return m.base }

// Excludes returns the matchers that veto an otherwise-successful match.
func (m *RegexExcludeMatcher) Excludes() []Matcher { return m.exclude }

func (m *RegexExcludeMatcher) Match(s *Stream) bool {
	mark := s.Tellg()
	if !m.base.Match(s) {
		return false
	}
	end := s.Tellg()
	matchedLen := end - mark
	s.Seekg(mark)
	for _, ex := range m.exclude {
		exMark := s.Tellg()
		if ex.Match(s) && s.Tellg()-exMark == matchedLen {
			s.Seekg(mark)
			return false
		}
		s.Seekg(exMark)
	}
	s.Seekg(mark)
	for i := 0; i < matchedLen; i++ {
		s.Get()
	}
	return true
}

type stateSet map[*state]bool

func newStateSet(s *state) stateSet {
	return stateSet{s: true}
}

// epsilonClosure expands states via ε-transitions and lookahead transitions,
// which are zero-width and evaluated against ctrl's current position without
// consuming from it.
func epsilonClosure(states stateSet, ctrl *Stream) stateSet {
	visited := stateSet{}
	var visit func(s *state)
	visit = func(s *state) {
		if visited[s] {
			return
		}
		visited[s] = true
		for _, t := range s.transitions {
			if t.cond == nil {
				visit(t.to)
				continue
			}
			if t.cond.kind == condLookahead && evalLookahead(t.cond, ctrl) {
				visit(t.to)
			}
		}
	}
	for s := range states {
		visit(s)
	}
	return visited
}

func evalLookahead(cond *condition, ctrl *Stream) bool {
	mark := ctrl.Tellg()
	ok := runMatch(cond.sub, ctrl, true)
	ctrl.Seekg(mark)
	if cond.inverted {
		return !ok
	}
	return ok
}

func isAnyAccepting(closed stateSet) bool {
	for s := range closed {
		if len(s.transitions) == 0 {
			return true
		}
	}
	return false
}

func step(closed stateSet, r rune) stateSet {
	next := stateSet{}
	for s := range closed {
		for _, t := range s.transitions {
			if t.cond != nil && t.cond.kind != condLookahead && t.cond.acceptsChar(r) {
				next[t.to] = true
			}
		}
	}
	return next
}

// runMatch implements the greedy/lazy matching loop of §4.1: step the state
// set forward one input rune at a time, tracking the last position at which
// any state in the (epsilon+lookahead) closure is accepting.
func runMatch(nfa *automaton, ctrl *Stream, greedy bool) bool {
	current := newStateSet(nfa.start)
	lastMatch := -1
	for {
		closed := epsilonClosure(current, ctrl)
		accepting := isAnyAccepting(closed)
		if accepting {
			if !greedy {
				return true
			}
			lastMatch = ctrl.Tellg()
		}
		if ctrl.AtEOF() {
			break
		}
		r, _ := ctrl.Peek()
		next := step(closed, r)
		if len(next) == 0 {
			break
		}
		ctrl.Get()
		current = next
	}
	if greedy {
		if lastMatch >= 0 {
			ctrl.Seekg(lastMatch)
			return true
		}
		return false
	}
	return false
}
