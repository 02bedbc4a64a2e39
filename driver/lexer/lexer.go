// Package lexer implements the runtime parser's lexer contract: try a
// caller-supplied set of candidate matchers at the current stream position,
// keep the longest match, and expose the result as a single current token.
// Unlike a conventional single-DFA lexer, which token kind is even legal to
// scan for is decided by the parser at each step, since the same input
// position can be ambiguous without that context (an identifier that also
// happens to spell a keyword, say).
package lexer

import (
	"unicode"

	verr "github.com/llgen/llgen/error"
	"github.com/llgen/llgen/regex"
)

// Token is the lexer's sole output: either a matched terminal, or the EOF
// sentinel.
type Token struct {
	Term int
	Text string
	EOF  bool
}

// Lexer scans against a fixed matcher list, indexed by terminal id.
type Lexer struct {
	stream   *regex.Stream
	matchers []regex.Matcher
	cur      Token
}

// New builds a Lexer over stream, matching against matchers (indexed by
// terminal id, as produced by the BNF front end or a decoded artifact).
func New(matchers []regex.Matcher, stream *regex.Stream) *Lexer {
	return &Lexer{stream: stream, matchers: matchers}
}

// CurrentToken inspects the lexer's current token without advancing.
func (l *Lexer) CurrentToken() Token {
	return l.cur
}

func (l *Lexer) skipWhitespace() {
	for {
		r, ok := l.stream.Peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		l.stream.Get()
	}
}

// ReadNextTokenExpect tries every matcher named in candidates at the current
// position (after skipping whitespace) and keeps the longest match. A tie
// favors whichever candidate sorts first in candidates, so callers that pass
// a deterministically ordered candidate set get a deterministic lexer.
func (l *Lexer) ReadNextTokenExpect(candidates []int) error {
	l.skipWhitespace()

	mark := l.stream.Tellg()
	if l.stream.AtEOF() {
		l.cur = Token{EOF: true}
		return nil
	}

	bestLen := -1
	bestIdx := -1
	bestEnd := mark
	for _, idx := range candidates {
		if idx < 0 || idx >= len(l.matchers) {
			continue
		}
		l.stream.Seekg(mark)
		if !l.matchers[idx].Match(l.stream) {
			continue
		}
		if end := l.stream.Tellg(); end-mark > bestLen {
			bestLen = end - mark
			bestIdx = idx
			bestEnd = end
		}
	}
	if bestIdx < 0 {
		l.stream.Seekg(mark)
		return &verr.SpecError{Cause: verr.ErrIncompleteToken, Detail: "no candidate matcher accepted the input at the current position"}
	}

	l.stream.Seekg(mark)
	text := make([]rune, 0, bestLen)
	for i := 0; i < bestLen; i++ {
		r, _ := l.stream.Get()
		text = append(text, r)
	}
	l.stream.ShrinkBufferToIndex(bestEnd)

	l.cur = Token{Term: bestIdx, Text: string(text)}
	return nil
}

// ReadNextTokenExpectEof succeeds iff the stream is exhausted (after
// whitespace), and sets the current token to EOF.
func (l *Lexer) ReadNextTokenExpectEof() error {
	l.skipWhitespace()
	if !l.stream.AtEOF() {
		return &verr.SpecError{Cause: verr.ErrUnexpectedToken, Detail: "expected end of input but more input remains"}
	}
	l.cur = Token{EOF: true}
	return nil
}
