package regex

import (
	"fmt"

	verr "github.com/llgen/llgen/error"
)

// container is an open Group or CharSet being built while the source is
// scanned character by character. Reading a character dispatches to the
// container on top of the stack (§4.1 of the design).
type container interface {
	push(p *parser, r rune) error
	node() node
}

// groupContainer accumulates a concatenation of nodes. The bottom of the
// stack is always an implicit top-level groupContainer.
type groupContainer struct {
	group      *groupNode
	lookahead  bool
	invertLA   bool
	sawLAMark  bool // saw the '?' that opens a lookahead assertion
	openedByLA bool
}

func newGroupContainer() *groupContainer {
	return &groupContainer{group: &groupNode{}}
}

func (c *groupContainer) node() node { return c.group }

func (c *groupContainer) lastIndex() int { return len(c.group.children) - 1 }

func (c *groupContainer) popLast() (node, bool) {
	i := c.lastIndex()
	if i < 0 {
		return nil, false
	}
	n := c.group.children[i]
	c.group.children = c.group.children[:i]
	return n, true
}

func (c *groupContainer) push(p *parser, r rune) error {
	switch r {
	case '(':
		p.openGroup()
		return nil
	case ')':
		return p.closeGroup()
	case '[':
		p.openCharSet()
		return nil
	case ']':
		c.group.append(&charNode{r: ']'})
		return nil
	case '|':
		last, ok := c.popLast()
		if !ok {
			return p.errAt(errAltLackOfOperand)
		}
		right, err := p.parseOperandAfterAlt()
		if err != nil {
			return err
		}
		c.group.append(&altNode{left: last, right: right})
		return nil
	case '.':
		c.group.append(&anyNode{})
		return nil
	case '*', '+', '?':
		// An empty lookahead-marked group treats a leading '?' as the
		// assertion marker, not the ZeroOrOnce quantifier, so that
		// `(?=...)` and `(?!...)` parse as lookahead groups.
		if r == '?' && len(c.group.children) == 0 && !c.sawLAMark {
			c.sawLAMark = true
			return nil
		}
		last, ok := c.popLast()
		if !ok {
			return p.errAt(errRepeatNoTarget)
		}
		lazy := false
		if p.peekIs('U') {
			lazy = true
			p.advance()
		}
		var kind quantKind
		switch r {
		case '*':
			kind = quantZeroOrMore
		case '+':
			kind = quantOnceOrMore
		case '?':
			kind = quantZeroOrOnce
		}
		c.group.append(&quantNode{kind: kind, child: last, lazy: lazy})
		return nil
	case '^':
		if c.sawLAMark && len(c.group.children) == 0 {
			// '?^' form: accepted as a negative lookahead marker, like '?!'.
			c.invertLA = true
			c.lookahead = true
			return nil
		}
		c.group.append(&charNode{r: '^'})
		return nil
	case '-':
		c.group.append(&charNode{r: '-'})
		return nil
	case '\\':
		esc, err := p.readEscape()
		if err != nil {
			return err
		}
		c.group.append(esc)
		return nil
	case '=', '!':
		if c.sawLAMark && len(c.group.children) == 0 {
			c.invertLA = r == '!'
			c.lookahead = true
			return nil
		}
		c.group.append(&charNode{r: r})
		return nil
	case '/':
		// Delimiters are handled by the top-level Compile entry point, not
		// nested containers; a literal '/' inside a group is just a char.
		c.group.append(&charNode{r: '/'})
		return nil
	default:
		c.group.append(&charNode{r: r})
		return nil
	}
}

// charSetContainer accumulates the members of a `[...]` character class.
type charSetContainer struct {
	set        *setNode
	pendingRange bool
}

func newCharSetContainer() *charSetContainer {
	return &charSetContainer{set: &setNode{}}
}

func (c *charSetContainer) node() node { return c.set }

func (c *charSetContainer) push(p *parser, r rune) error {
	switch r {
	case ']':
		return p.closeCharSet()
	case '^':
		if len(c.set.items) == 0 && !c.set.negated {
			c.set.negated = true
			return nil
		}
		c.set.items = append(c.set.items, setItem{from: '^', to: '^'})
		return nil
	case '-':
		if len(c.set.items) == 0 {
			return p.errAt(errRangeNoStart)
		}
		c.pendingRange = true
		return nil
	case '\\':
		if !p.eof() && (p.src[p.pos] == 'p' || p.src[p.pos] == 'P') {
			negated := p.advance() == 'P'
			n, err := p.readUnicodeProperty(false)
			if err != nil {
				return err
			}
			item := n.(*setNode).items[0]
			if pred := item.pred; negated {
				item.pred = func(r rune) bool { return !pred(r) }
			}
			c.set.items = append(c.set.items, item)
			return nil
		}
		esc, err := p.readEscapeRune()
		if err != nil {
			return err
		}
		return c.appendRune(p, esc)
	case '(', ')', '[', '|', '.', '*', '+', '?':
		return c.appendRune(p, r)
	default:
		return c.appendRune(p, r)
	}
}

func (c *charSetContainer) appendRune(p *parser, r rune) error {
	if c.pendingRange {
		c.pendingRange = false
		i := len(c.set.items) - 1
		if i < 0 || c.set.items[i].isRange || c.set.items[i].pred != nil {
			return p.errAt(errRangeNoStart)
		}
		start := c.set.items[i].from
		if r < start {
			return p.errAt(errRangeInverted)
		}
		c.set.items[i] = setItem{from: start, to: r, isRange: true}
		return nil
	}
	c.set.items = append(c.set.items, setItem{from: r, to: r})
	return nil
}

type parseError struct {
	cause error
	pos   int
}

func (e *parseError) Error() string { return fmt.Sprintf("%v at %d", e.cause, e.pos) }

var (
	errUnclosedGroup     = fmt.Errorf("unclosed group")
	errUnclosedCharSet   = fmt.Errorf("unclosed character class")
	errGroupNoInitiator  = fmt.Errorf("')' without matching '('")
	errAltLackOfOperand  = fmt.Errorf("'|' is missing an operand")
	errRepeatNoTarget    = fmt.Errorf("repetition operator has no operand")
	errRangeNoStart      = fmt.Errorf("'-' in a character class has no preceding character")
	errRangeInverted     = fmt.Errorf("character class range is inverted")
	errContainerInSet    = fmt.Errorf("group cannot be nested inside a character class")
	errUnknownProperty   = fmt.Errorf("unknown Unicode property")
	errBadEscape         = fmt.Errorf("invalid escape sequence")
	errEmptyPattern      = fmt.Errorf("empty regex pattern")
)

// parser scans a regex source string rune by rune, dispatching to the
// container on top of a stack whose bottom is an implicit top-level Group.
type parser struct {
	src    []rune
	pos    int
	stack  []container
}

func newParser(src string) *parser {
	return &parser{
		src:   []rune(src),
		stack: []container{newGroupContainer()},
	}
}

func (p *parser) top() container { return p.stack[len(p.stack)-1] }

func (p *parser) errAt(cause error) error {
	return &parseError{cause: cause, pos: p.pos}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peekIs(r rune) bool {
	return !p.eof() && p.src[p.pos] == r
}

func (p *parser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	return r
}

func (p *parser) openGroup() {
	p.stack = append(p.stack, newGroupContainer())
}

func (p *parser) closeGroup() error {
	if len(p.stack) < 2 {
		return p.errAt(errGroupNoInitiator)
	}
	top, ok := p.top().(*groupContainer)
	if !ok {
		return p.errAt(errContainerInSet)
	}
	p.stack = p.stack[:len(p.stack)-1]

	var result node = top.group
	if top.lookahead {
		result = &lookaheadNode{child: top.group, inverted: top.invertLA}
	}
	p.top().(*groupContainer).group.append(result)
	return nil
}

func (p *parser) openCharSet() {
	p.stack = append(p.stack, newCharSetContainer())
}

func (p *parser) closeCharSet() error {
	if len(p.stack) < 2 {
		return p.errAt(errUnclosedCharSet)
	}
	top, ok := p.top().(*charSetContainer)
	if !ok {
		return p.errAt(errUnclosedCharSet)
	}
	if top.pendingRange {
		return p.errAt(errRangeNoStart)
	}
	p.stack = p.stack[:len(p.stack)-1]
	parent, ok := p.top().(*groupContainer)
	if !ok {
		return p.errAt(errContainerInSet)
	}
	parent.group.append(top.set)
	return nil
}

// parseOperandAfterAlt parses the right-hand operand of `|` by draining
// characters into a fresh sibling group until the current container would
// naturally close, then returns the resulting single node.
func (p *parser) parseOperandAfterAlt() (node, error) {
	tmp := newGroupContainer()
	p.stack = append(p.stack, tmp)
	depth := len(p.stack)
	for !p.eof() {
		r := p.src[p.pos]
		if len(p.stack) == depth && (r == '|' || r == ')') {
			break
		}
		p.pos++
		if err := p.top().push(p, r); err != nil {
			return nil, err
		}
	}
	if len(p.stack) != depth {
		if _, ok := p.top().(*charSetContainer); ok {
			return nil, p.errAt(errUnclosedCharSet)
		}
		return nil, p.errAt(errUnclosedGroup)
	}
	p.stack = p.stack[:depth-1]
	if len(tmp.group.children) == 0 {
		return nil, p.errAt(errAltLackOfOperand)
	}
	if len(tmp.group.children) == 1 {
		return tmp.group.children[0], nil
	}
	return tmp.group, nil
}

func (p *parser) readEscape() (node, error) {
	if p.eof() {
		return nil, p.errAt(errBadEscape)
	}
	r := p.advance()
	switch r {
	case 'n':
		return &charNode{r: '\n'}, nil
	case 't':
		return &charNode{r: '\t'}, nil
	case 'r':
		return &charNode{r: '\r'}, nil
	case 'p', 'P':
		set, err := p.readUnicodeProperty(r == 'P')
		if err != nil {
			return nil, err
		}
		return set, nil
	default:
		return &charNode{r: r}, nil
	}
}

func (p *parser) readEscapeRune() (rune, error) {
	if p.eof() {
		return 0, p.errAt(errBadEscape)
	}
	r := p.advance()
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	default:
		return r, nil
	}
}

func (p *parser) readUnicodeProperty(negated bool) (node, error) {
	if p.eof() || p.src[p.pos] != '{' {
		return nil, p.errAt(errBadEscape)
	}
	p.pos++
	start := p.pos
	for !p.eof() && p.src[p.pos] != '}' {
		p.pos++
	}
	if p.eof() {
		return nil, p.errAt(errBadEscape)
	}
	name := string(p.src[start:p.pos])
	p.pos++

	pred, err := lookupUnicodeProperty(name)
	if err != nil {
		return nil, p.errAt(err)
	}
	return &setNode{negated: negated, items: []setItem{{pred: pred}}}, nil
}

// parse runs the container-stack scan to completion and returns the root
// node of the token tree.
func parse(src string) (node, error) {
	if src == "" {
		return nil, &parseError{cause: errEmptyPattern}
	}
	p := newParser(src)
	for !p.eof() {
		r := p.advance()
		if err := p.top().push(p, r); err != nil {
			return nil, err
		}
	}
	if len(p.stack) != 1 {
		if _, ok := p.top().(*charSetContainer); ok {
			return nil, p.errAt(errUnclosedCharSet)
		}
		return nil, p.errAt(errUnclosedGroup)
	}
	root := p.stack[0].(*groupContainer).group
	if len(root.children) == 1 {
		return root.children[0], nil
	}
	return root, nil
}

// toSpecError converts a low-level parse error into a positioned SpecError.
func toSpecError(err error, sourceName string) error {
	pe, ok := err.(*parseError)
	if !ok {
		return err
	}
	return &verr.SpecError{
		Cause:      verr.ErrMalformedGrammar,
		SourceName: sourceName,
		Col:        pe.pos + 1,
		Detail:     pe.cause.Error(),
	}
}
