package bnf

import (
	"fmt"

	verr "github.com/llgen/llgen/error"
	"github.com/llgen/llgen/grammar"
	"github.com/llgen/llgen/regex"
)

// Result is what the front end hands to the rest of the toolchain: the raw
// grammar (not yet LL(1)-transformed) and the terminal matcher list, indexed
// by the terminal ids embedded in the grammar's Symbols.
type Result struct {
	Grammar  *grammar.Grammar
	Matchers []regex.Matcher
}

type terminalKey string

type builder struct {
	sourceName string
	root       *root
	byLHS      map[string][]alt

	ids      map[terminalKey]int
	matchers []regex.Matcher
}

// Build parses src and lowers it into a Result. It does not run the LL(1)
// transformer; that is a separate, explicit step (grammar.Transform).
func Build(src, sourceName string) (*Result, error) {
	r, err := parse(src, sourceName)
	if err != nil {
		return nil, err
	}

	b := &builder{
		sourceName: sourceName,
		root:       r,
		byLHS:      map[string][]alt{},
		ids:        map[terminalKey]int{},
	}
	for _, p := range r.prods {
		b.byLHS[p.lhs] = append(b.byLHS[p.lhs], p.alts...)
	}

	var prods []*grammar.Production
	for _, p := range r.prods {
		for _, a := range p.alts {
			right, err := b.lowerAlt(a)
			if err != nil {
				return nil, err
			}
			prods = append(prods, grammar.NewProduction(p.lhs, right))
		}
	}

	g, err := grammar.NewGrammar(r.prods[0].lhs, prods)
	if err != nil {
		return nil, wrapPos(err, sourceName, Position{Row: r.prods[0].pos.Row, Col: r.prods[0].pos.Col})
	}

	return &Result{Grammar: g, Matchers: b.matchers}, nil
}

func (b *builder) lowerAlt(a alt) ([]grammar.Symbol, error) {
	if a.isEpsilon() {
		return []grammar.Symbol{grammar.End}, nil
	}
	right := make([]grammar.Symbol, 0, len(a.elems))
	for _, e := range a.elems {
		sym, err := b.lowerElem(e)
		if err != nil {
			return nil, err
		}
		right = append(right, sym)
	}
	return right, nil
}

func (b *builder) lowerElem(e elem) (grammar.Symbol, error) {
	switch e.kind {
	case elemNonTerminal:
		return grammar.NewNonTerminal(e.name), nil
	case elemString:
		id, err := b.internString(e.literal)
		if err != nil {
			return grammar.Symbol{}, err
		}
		return grammar.NewTerminal(id), nil
	case elemRegex:
		id, err := b.internRegex(e.pattern, e.lazy, e.pos)
		if err != nil {
			return grammar.Symbol{}, err
		}
		return grammar.NewTerminal(id), nil
	case elemRegexExclude:
		id, err := b.internRegexExclude(e.pattern, e.lazy, e.excludeName, e.pos)
		if err != nil {
			return grammar.Symbol{}, err
		}
		return grammar.NewTerminal(id), nil
	default:
		return grammar.Symbol{}, wrapPos(&verr.SpecError{Cause: verr.ErrMalformedGrammar, Detail: "unknown RHS element kind"}, b.sourceName, e.pos)
	}
}

func (b *builder) internString(literal string) (int, error) {
	key := terminalKey("S:" + literal)
	if id, ok := b.ids[key]; ok {
		return id, nil
	}
	id := len(b.matchers)
	b.matchers = append(b.matchers, regex.NewStringMatcher(literal))
	b.ids[key] = id
	return id, nil
}

func (b *builder) internRegex(pattern string, lazy bool, pos Position) (int, error) {
	key := terminalKey(fmt.Sprintf("R:%v:%s", lazy, pattern))
	if id, ok := b.ids[key]; ok {
		return id, nil
	}
	m, err := regex.Compile(pattern, !lazy)
	if err != nil {
		return 0, wrapPos(err, b.sourceName, pos)
	}
	id := len(b.matchers)
	b.matchers = append(b.matchers, m)
	b.ids[key] = id
	return id, nil
}

func (b *builder) internRegexExclude(pattern string, lazy bool, excludeName string, pos Position) (int, error) {
	key := terminalKey(fmt.Sprintf("X:%v:%s:%s", lazy, pattern, excludeName))
	if id, ok := b.ids[key]; ok {
		return id, nil
	}

	base, err := regex.Compile(pattern, !lazy)
	if err != nil {
		return 0, wrapPos(err, b.sourceName, pos)
	}

	alts, ok := b.byLHS[excludeName]
	if !ok {
		return 0, wrapPos(&verr.SpecError{Cause: verr.ErrMalformedGrammar, Detail: fmt.Sprintf("exclusion list %q is not defined", excludeName)}, b.sourceName, pos)
	}
	var excludes []regex.Matcher
	for _, a := range alts {
		if len(a.elems) != 1 || a.elems[0].kind != elemString {
			return 0, wrapPos(&verr.SpecError{Cause: verr.ErrMalformedGrammar, Detail: fmt.Sprintf("exclusion list %q must have only string-literal alternatives", excludeName)}, b.sourceName, pos)
		}
		// Reuse the same interned matcher the exclusion nonterminal's own
		// production uses, so the artifact writer can resolve exclude lists
		// back to terminal ids by identity.
		exID, err := b.internString(a.elems[0].literal)
		if err != nil {
			return 0, err
		}
		excludes = append(excludes, b.matchers[exID])
	}

	id := len(b.matchers)
	b.matchers = append(b.matchers, regex.NewRegexExcludeMatcher(base, excludes))
	b.ids[key] = id
	return id, nil
}

// wrapPos stamps SourceName/Row/Col on a *verr.SpecError if they are not
// already set, so errors surfacing from a package with no notion of grammar
// source position (like regex) still carry one.
func wrapPos(err error, sourceName string, pos Position) error {
	se, ok := err.(*verr.SpecError)
	if !ok {
		return err
	}
	if se.SourceName == "" {
		se.SourceName = sourceName
	}
	if se.Row == 0 {
		se.Row = pos.Row
		se.Col = pos.Col
	}
	return se
}
