package bnf

import (
	"fmt"

	verr "github.com/llgen/llgen/error"
)

type parser struct {
	lex        *lexer
	cur        *token
	sourceName string
}

func newParser(src, sourceName string) (*parser, error) {
	p := &parser{lex: newLexer(src, sourceName), sourceName: sourceName}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) errAt(pos Position, detail string) error {
	return &verr.SpecError{Cause: verr.ErrMalformedGrammar, SourceName: p.sourceName, Row: pos.Row, Col: pos.Col, Detail: detail}
}

func (p *parser) expect(kind tokenKind) (*token, error) {
	if p.cur.kind != kind {
		return nil, p.errAt(p.cur.pos, fmt.Sprintf("expected %s, found %s", kind, p.cur.kind))
	}
	t := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	return t, nil
}

// parse parses the whole grammar source into a root of productions.
func parse(src, sourceName string) (*root, error) {
	p, err := newParser(src, sourceName)
	if err != nil {
		return nil, err
	}

	r := &root{}
	for p.cur.kind != tokenKindEOF {
		prod, err := p.parseProduction()
		if err != nil {
			return nil, err
		}
		r.prods = append(r.prods, *prod)
	}
	if len(r.prods) == 0 {
		return nil, p.errAt(Position{Row: 1, Col: 1}, "a grammar needs at least one production")
	}
	return r, nil
}

func (p *parser) parseProduction() (*prodNode, error) {
	lhsTok, err := p.expect(tokenKindID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenKindEq); err != nil {
		return nil, err
	}

	var alts []alt
	for {
		a, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		alts = append(alts, a)
		if p.cur.kind == tokenKindPipe {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if _, err := p.expect(tokenKindSemi); err != nil {
		return nil, err
	}

	return &prodNode{lhs: lhsTok.text, alts: alts, pos: lhsTok.pos}, nil
}

func (p *parser) parseAlt() (alt, error) {
	var elems []elem
	for {
		switch p.cur.kind {
		case tokenKindID:
			elems = append(elems, elem{kind: elemNonTerminal, name: p.cur.text, pos: p.cur.pos})
			if err := p.advance(); err != nil {
				return alt{}, err
			}
		case tokenKindString:
			elems = append(elems, elem{kind: elemString, literal: p.cur.text, pos: p.cur.pos})
			if err := p.advance(); err != nil {
				return alt{}, err
			}
		case tokenKindRegex:
			elems = append(elems, elem{kind: elemRegex, pattern: p.cur.text, lazy: p.cur.lazy, pos: p.cur.pos})
			if err := p.advance(); err != nil {
				return alt{}, err
			}
		case tokenKindLBracket:
			e, err := p.parseRegexExclude()
			if err != nil {
				return alt{}, err
			}
			elems = append(elems, e)
		default:
			return alt{elems: elems}, nil
		}
	}
}

func (p *parser) parseRegexExclude() (elem, error) {
	pos := p.cur.pos
	if err := p.advance(); err != nil { // consume '['
		return elem{}, err
	}
	reTok, err := p.expect(tokenKindRegex)
	if err != nil {
		return elem{}, err
	}
	nameTok, err := p.expect(tokenKindID)
	if err != nil {
		return elem{}, err
	}
	if _, err := p.expect(tokenKindRBracket); err != nil {
		return elem{}, err
	}
	return elem{kind: elemRegexExclude, pattern: reTok.text, lazy: reTok.lazy, excludeName: nameTok.text, pos: pos}, nil
}
