// Package artifact reads and writes the compiled-grammar binary format: a
// terminal matcher list, a start symbol, and an LL(1) parse table, laid out
// as three concatenated segments so the runtime driver can load a grammar
// without the BNF source or the transformer that produced it.
//
// Nonterminals cross the wire as plain integer ids (their name is only
// needed while building the grammar); a caller that wants names back, e.g.
// the `--header` CLI flag, keeps its own id-to-name table built at compile
// time from grammar.ParseTable.NonTerminals.
package artifact

import (
	"encoding/binary"
	"fmt"
	"io"

	verr "github.com/llgen/llgen/error"
	"github.com/llgen/llgen/grammar"
	"github.com/llgen/llgen/regex"
)

// Reserved sentinels, never valid payload values since every real payload
// (a count, a terminal id, a nonterminal id) is non-negative.
const (
	eos   int64 = -2
	split int64 = -3
)

// matcher type tags.
const (
	tagString       = 0
	tagRegex        = 1
	tagRegexExclude = 2
)

// symbol tags.
const (
	symTerminal    = 0
	symNonTerminal = 1
	symEnd         = 2
)

// Symbol is the wire form of grammar.Symbol: nonterminals have already been
// resolved to their integer id, so a driver never needs a name table to
// walk a decoded Table.
type Symbol struct {
	Kind grammar.SymbolKind
	ID   int
}

func (s Symbol) String() string {
	switch s.Kind {
	case grammar.SymTerminal:
		return fmt.Sprintf("t%d", s.ID)
	case grammar.SymNonTerminal:
		return fmt.Sprintf("n%d", s.ID)
	default:
		return "<end>"
	}
}

// Table is a decoded artifact, ready for the runtime driver.
type Table struct {
	Matchers []regex.Matcher
	Start    Symbol
	// Rules maps a nonterminal id to its lookahead table: lookahead Symbol
	// (a terminal id or End) to the production's right-hand side.
	Rules map[int]map[Symbol][]Symbol
}

// Write encodes matchers, the table's start symbol and its cells into w, in
// the three-segment layout: matcher list, start symbol, parse table.
func Write(w io.Writer, matchers []regex.Matcher, table *grammar.ParseTable) error {
	nt := make(map[string]int, len(table.NonTerminals))
	for i, name := range table.NonTerminals {
		nt[name] = i
	}

	bw := &binWriter{w: w}
	writeMatcherList(bw, matchers, nt)
	if err := writeSymbol(bw, grammar.NewNonTerminal(table.Start), nt); err != nil {
		return err
	}
	writeParseTable(bw, table, nt)
	return bw.err
}

func writeMatcherList(bw *binWriter, matchers []regex.Matcher, nt map[string]int) {
	bw.writeInt(int64(len(matchers)))
	for _, m := range matchers {
		switch mm := m.(type) {
		case *regex.StringMatcher:
			bw.writeInt(tagString)
			bw.writeString(mm.Source())
		case *regex.RegexMatcher:
			bw.writeInt(tagRegex)
			bw.writeString(sourceWithLazyMark(mm.Source(), mm.Greedy()))
		case *regex.RegexExcludeMatcher:
			bw.writeInt(tagRegexExclude)
			bw.writeString(sourceWithLazyMark(mm.Base().Source(), mm.Base().Greedy()))
			bw.writeInt(int64(len(mm.Excludes())))
			for _, ex := range mm.Excludes() {
				id := indexOf(matchers, ex)
				bw.writeInt(int64(id))
			}
		default:
			bw.fail(fmt.Errorf("unknown matcher type %T", m))
			return
		}
	}
	bw.writeInt(eos)
}

// sourceWithLazyMark appends the trailing 'U' the BNF front end uses to mark
// a lazy regex literal, so the matcher list segment needs no extra field for
// it and the decoder can recover greediness from the source string alone.
func sourceWithLazyMark(source string, greedy bool) string {
	if greedy {
		return source
	}
	return source + "U"
}

func indexOf(matchers []regex.Matcher, target regex.Matcher) int {
	for i, m := range matchers {
		if m == target {
			return i
		}
	}
	return -1
}

func writeSymbol(bw *binWriter, s grammar.Symbol, nt map[string]int) error {
	switch s.Kind {
	case grammar.SymTerminal:
		bw.writeInt(symTerminal)
		bw.writeInt(int64(s.Term))
	case grammar.SymNonTerminal:
		id, ok := nt[s.NonTerm]
		if !ok {
			return &verr.SpecError{Cause: verr.ErrMalformedGrammar, Detail: fmt.Sprintf("nonterminal %q has no table entry", s.NonTerm)}
		}
		bw.writeInt(symNonTerminal)
		bw.writeInt(int64(id))
	case grammar.SymEnd:
		bw.writeInt(symEnd)
	}
	return nil
}

func writeParseTable(bw *binWriter, table *grammar.ParseTable, nt map[string]int) {
	// table.Cells() is sorted alphabetically by nonterminal name, not in
	// table.NonTerminals' canonical order, so group first and look each
	// nonterminal's cells up by name while walking the canonical order.
	grouped := map[string][]cellRef{}
	for _, c := range table.Cells() {
		grouped[c.NonTerm] = append(grouped[c.NonTerm], cellRef{look: c.Look, prod: c.Prod})
	}

	for _, name := range table.NonTerminals {
		if err := writeSymbol(bw, grammar.NewNonTerminal(name), nt); err != nil {
			bw.fail(err)
			return
		}
		for _, c := range grouped[name] {
			if err := writeSymbol(bw, c.look, nt); err != nil {
				bw.fail(err)
				return
			}
			bw.writeInt(split)
			for _, sym := range c.prod.Right {
				if err := writeSymbol(bw, sym, nt); err != nil {
					bw.fail(err)
					return
				}
			}
			bw.writeInt(eos)
		}
		bw.writeInt(eos)
	}
	bw.writeInt(eos)
}

type cellRef struct {
	look grammar.Symbol
	prod *grammar.Production
}

// Read decodes an artifact written by Write.
func Read(r io.Reader) (*Table, error) {
	br := &binReader{r: r}

	matchers, err := readMatcherList(br)
	if err != nil {
		return nil, err
	}
	start, err := readSymbol(br)
	if err != nil {
		return nil, err
	}
	rules, err := readParseTable(br)
	if err != nil {
		return nil, err
	}
	if br.err != nil {
		return nil, br.err
	}
	return &Table{Matchers: matchers, Start: start, Rules: rules}, nil
}

func readMatcherList(br *binReader) ([]regex.Matcher, error) {
	n, err := br.readInt()
	if err != nil {
		return nil, err
	}
	matchers := make([]regex.Matcher, 0, n)
	for idx := int64(0); idx < n; idx++ {
		tag, err := br.readInt()
		if err != nil {
			return nil, err
		}
		switch tag {
		case tagString:
			s, err := br.readString()
			if err != nil {
				return nil, err
			}
			matchers = append(matchers, regex.NewStringMatcher(s))
		case tagRegex:
			s, err := br.readString()
			if err != nil {
				return nil, err
			}
			m, err := compileWithLazyMark(s)
			if err != nil {
				return nil, err
			}
			matchers = append(matchers, m)
		case tagRegexExclude:
			s, err := br.readString()
			if err != nil {
				return nil, err
			}
			base, err := compileWithLazyMark(s)
			if err != nil {
				return nil, err
			}
			exCount, err := br.readInt()
			if err != nil {
				return nil, err
			}
			var excludeIDs []int64
			for j := int64(0); j < exCount; j++ {
				exID, err := br.readInt()
				if err != nil {
					return nil, err
				}
				excludeIDs = append(excludeIDs, exID)
			}
			matchers = append(matchers, &pendingExclude{base: base, excludeIDs: excludeIDs})
		default:
			return nil, &verr.SpecError{Cause: verr.ErrMalformedArtifact, Detail: fmt.Sprintf("unknown matcher type tag %d", tag)}
		}
	}
	term, err := br.readInt()
	if err != nil {
		return nil, err
	}
	if term != eos {
		return nil, &verr.SpecError{Cause: verr.ErrMalformedArtifact, Detail: "matcher list segment missing end-of-segment sentinel"}
	}

	return resolveExcludes(matchers)
}

// pendingExclude holds a regex-exclude matcher's decoded fields until every
// matcher in the list has been read, since its exclude ids may refer to
// matchers appearing later in the segment.
type pendingExclude struct {
	base       *regex.RegexMatcher
	excludeIDs []int64
}

func (p *pendingExclude) Match(*regex.Stream) bool { panic("artifact: pendingExclude was not resolved") }
func (p *pendingExclude) Source() string           { return p.base.Source() }

func resolveExcludes(matchers []regex.Matcher) ([]regex.Matcher, error) {
	out := make([]regex.Matcher, len(matchers))
	copy(out, matchers)
	for i, m := range matchers {
		pe, ok := m.(*pendingExclude)
		if !ok {
			continue
		}
		var excludes []regex.Matcher
		for _, id := range pe.excludeIDs {
			if id < 0 || int(id) >= len(matchers) {
				return nil, &verr.SpecError{Cause: verr.ErrMalformedArtifact, Detail: fmt.Sprintf("regex-exclude matcher references out-of-range terminal id %d", id)}
			}
			excludes = append(excludes, matchers[id])
		}
		out[i] = regex.NewRegexExcludeMatcher(pe.base, excludes)
	}
	return out, nil
}

func compileWithLazyMark(source string) (*regex.RegexMatcher, error) {
	greedy := true
	if len(source) > 0 && source[len(source)-1] == 'U' {
		greedy = false
		source = source[:len(source)-1]
	}
	return regex.Compile(source, greedy)
}

func readSymbol(br *binReader) (Symbol, error) {
	tag, err := br.readInt()
	if err != nil {
		return Symbol{}, err
	}
	switch tag {
	case symTerminal:
		id, err := br.readInt()
		if err != nil {
			return Symbol{}, err
		}
		return Symbol{Kind: grammar.SymTerminal, ID: int(id)}, nil
	case symNonTerminal:
		id, err := br.readInt()
		if err != nil {
			return Symbol{}, err
		}
		return Symbol{Kind: grammar.SymNonTerminal, ID: int(id)}, nil
	case symEnd:
		return Symbol{Kind: grammar.SymEnd}, nil
	default:
		return Symbol{}, &verr.SpecError{Cause: verr.ErrMalformedArtifact, Detail: fmt.Sprintf("unknown symbol tag %d", tag)}
	}
}

func readParseTable(br *binReader) (map[int]map[Symbol][]Symbol, error) {
	rules := map[int]map[Symbol][]Symbol{}
	for {
		tag, err := br.readInt()
		if err != nil {
			return nil, err
		}
		if tag == eos {
			return rules, nil
		}
		if tag != symNonTerminal {
			return nil, &verr.SpecError{Cause: verr.ErrMalformedArtifact, Detail: "parse table entry does not start with a nonterminal key"}
		}
		id, err := br.readInt()
		if err != nil {
			return nil, err
		}
		inner := map[Symbol][]Symbol{}
		for {
			look, err := peekOrEOS(br)
			if err != nil {
				return nil, err
			}
			if look == nil {
				break
			}
			sep, err := br.readInt()
			if err != nil {
				return nil, err
			}
			if sep != split {
				return nil, &verr.SpecError{Cause: verr.ErrMalformedArtifact, Detail: "parse table cell missing key/value separator"}
			}
			var rhs []Symbol
			for {
				peeked, err := br.peekInt()
				if err != nil {
					return nil, err
				}
				if peeked == eos {
					br.readInt()
					break
				}
				sym, err := readSymbol(br)
				if err != nil {
					return nil, err
				}
				rhs = append(rhs, sym)
			}
			inner[*look] = rhs
		}
		rules[int(id)] = inner
	}
}

// peekOrEOS reads the next symbol unless the next integer is the segment's
// end-of-map sentinel, in which case it consumes it and returns nil.
func peekOrEOS(br *binReader) (*Symbol, error) {
	peeked, err := br.peekInt()
	if err != nil {
		return nil, err
	}
	if peeked == eos {
		br.readInt()
		return nil, nil
	}
	sym, err := readSymbol(br)
	if err != nil {
		return nil, err
	}
	return &sym, nil
}

// binWriter accumulates the first write error so callers can chain writes
// without checking every call.
type binWriter struct {
	w   io.Writer
	err error
}

func (bw *binWriter) fail(err error) {
	if bw.err == nil {
		bw.err = err
	}
}

func (bw *binWriter) writeInt(v int64) {
	if bw.err != nil {
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, bw.err = bw.w.Write(buf[:])
}

func (bw *binWriter) writeString(s string) {
	bw.writeInt(int64(len(s)))
	if bw.err != nil {
		return
	}
	_, bw.err = io.WriteString(bw.w, s)
}

// binReader reads the same fixed-width little-endian ints, with a one-slot
// pushback so the parse-table decoder can look ahead for EOS/SPLIT before
// committing to reading a full Symbol.
type binReader struct {
	r        io.Reader
	err      error
	buffered *int64
}

func (br *binReader) readInt() (int64, error) {
	if br.buffered != nil {
		v := *br.buffered
		br.buffered = nil
		return v, nil
	}
	if br.err != nil {
		return 0, br.err
	}
	var buf [8]byte
	if _, err := io.ReadFull(br.r, buf[:]); err != nil {
		br.err = &verr.SpecError{Cause: verr.ErrMalformedArtifact, Detail: "unexpected end of artifact"}
		return 0, br.err
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

func (br *binReader) peekInt() (int64, error) {
	if br.buffered != nil {
		return *br.buffered, nil
	}
	v, err := br.readInt()
	if err != nil {
		return 0, err
	}
	br.buffered = &v
	return v, nil
}

func (br *binReader) readString() (string, error) {
	n, err := br.readInt()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(br.r, buf); err != nil {
		return "", &verr.SpecError{Cause: verr.ErrMalformedArtifact, Detail: "unexpected end of artifact reading string payload"}
	}
	return string(buf), nil
}
