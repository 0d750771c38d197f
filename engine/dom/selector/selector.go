package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/tambo/core"
)

// Combinator joins two compound selectors.
type Combinator byte

// Combinators of CSS Selectors Level 3.
const (
	Descendant Combinator = ' '
	Child      Combinator = '>'
	Adjacent   Combinator = '+'
	Sibling    Combinator = '~'
)

// AttrOp is an attribute selector operator.
type AttrOp uint8

// Attribute selector operators.
const (
	AttrExists    AttrOp = iota // [a]
	AttrEquals                  // [a=v]
	AttrIncludes                // [a~=v]
	AttrDashMatch               // [a|=v]
	AttrPrefix                  // [a^=v]
	AttrSuffix                  // [a$=v]
	AttrSubstring               // [a*=v]
)

// AttrSelector is a selector for an attribute of an element.
type AttrSelector struct {
	Key   string
	Value string
	Op    AttrOp
}

// PseudoClass is a structural pseudo-class. For :nth-child and
// :nth-last-child, A and B hold the coefficients of An+B. For :not, Not
// holds the negated compound.
type PseudoClass struct {
	Name string
	A, B int
	Not  *Compound
}

// Compound is a sequence of simple selectors without combinators.
type Compound struct {
	Tag           string // lower-case; "" or "*" match any element
	ID            string
	Classes       []string
	Attrs         []AttrSelector
	Pseudos       []PseudoClass
	PseudoElement string // ::before etc.; compounds with a pseudo-element never match
}

// Selector is a complex selector, i.e. compound selectors joined by
// combinators. combinators[i] is the combinator between compounds[i] and
// compounds[i+1].
type Selector struct {
	text        string
	compounds   []*Compound
	combinators []Combinator
}

// ErrMalformed is wrapped by errors for selectors which cannot be parsed.
var ErrMalformed = errors.New("malformed selector")

// Parse parses a single selector (no selector groups). The selector is
// checked with cascadia as well; if either fails, an error with code
// core.EMALFORMED is returned.
func Parse(text string) (*Selector, error) {
	text = strings.TrimSpace(text)
	sel, err := parse(text)
	if err != nil {
		return nil, core.WrapError(err, core.EMALFORMED, "cannot parse selector %q", text)
	}
	if _, err := cascadia.Compile(text); err != nil {
		return nil, core.WrapError(err, core.EMALFORMED, "invalid selector %q", text)
	}
	return sel, nil
}

// MustParse is like Parse, but panics on errors. Intended for tests.
func MustParse(text string) *Selector {
	sel, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return sel
}

func (sel *Selector) String() string {
	return sel.text
}

// Subject returns the rightmost compound of a selector.
func (sel *Selector) Subject() *Compound {
	return sel.compounds[len(sel.compounds)-1]
}

// Len returns the number of compounds.
func (sel *Selector) Len() int {
	return len(sel.compounds)
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	s   string
	pos int
}

func parse(text string) (*Selector, error) {
	if text == "" {
		return nil, ErrMalformed
	}
	p := &parser{s: text}
	sel := &Selector{text: text}
	c, err := p.compound()
	if err != nil {
		return nil, err
	}
	sel.compounds = append(sel.compounds, c)
	for {
		hadSpace := p.skipSpace()
		if p.eof() {
			break
		}
		comb := Descendant
		switch p.peek() {
		case '>', '+', '~':
			comb = Combinator(p.peek())
			p.pos++
			p.skipSpace()
		default:
			if !hadSpace {
				return nil, p.errorf("unexpected character %q", p.peek())
			}
		}
		if sel.compounds[len(sel.compounds)-1].PseudoElement != "" {
			return nil, p.errorf("pseudo-element must be last")
		}
		if c, err = p.compound(); err != nil {
			return nil, err
		}
		sel.compounds = append(sel.compounds, c)
		sel.combinators = append(sel.combinators, comb)
	}
	return sel, nil
}

func (p *parser) compound() (*Compound, error) {
	c := &Compound{}
	start := p.pos
	if p.peek() == '*' {
		c.Tag = "*"
		p.pos++
	} else if isNameStart(p.peek()) {
		c.Tag = strings.ToLower(p.ident())
	}
loop:
	for !p.eof() {
		switch p.peek() {
		case '#':
			p.pos++
			if c.ID = p.ident(); c.ID == "" {
				return nil, p.errorf("empty id")
			}
		case '.':
			p.pos++
			cls := p.ident()
			if cls == "" {
				return nil, p.errorf("empty class")
			}
			c.Classes = append(c.Classes, cls)
		case '[':
			a, err := p.attribute()
			if err != nil {
				return nil, err
			}
			c.Attrs = append(c.Attrs, a)
		case ':':
			if err := p.pseudo(c); err != nil {
				return nil, err
			}
		default:
			break loop
		}
	}
	if p.pos == start {
		return nil, p.errorf("expected selector")
	}
	return c, nil
}

func (p *parser) attribute() (AttrSelector, error) {
	a := AttrSelector{}
	p.pos++ // '['
	p.skipSpace()
	if a.Key = strings.ToLower(p.ident()); a.Key == "" {
		return a, p.errorf("missing attribute name")
	}
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return a, nil
	}
	switch {
	case p.consume("="):
		a.Op = AttrEquals
	case p.consume("~="):
		a.Op = AttrIncludes
	case p.consume("|="):
		a.Op = AttrDashMatch
	case p.consume("^="):
		a.Op = AttrPrefix
	case p.consume("$="):
		a.Op = AttrSuffix
	case p.consume("*="):
		a.Op = AttrSubstring
	default:
		return a, p.errorf("unknown attribute operator")
	}
	p.skipSpace()
	if q := p.peek(); q == '"' || q == '\'' {
		p.pos++
		end := strings.IndexByte(p.s[p.pos:], q)
		if end < 0 {
			return a, p.errorf("unterminated string")
		}
		a.Value = p.s[p.pos : p.pos+end]
		p.pos += end + 1
	} else if a.Value = p.ident(); a.Value == "" {
		return a, p.errorf("missing attribute value")
	}
	p.skipSpace()
	if !p.consume("]") {
		return a, p.errorf("expected ]")
	}
	return a, nil
}

func (p *parser) pseudo(c *Compound) error {
	p.pos++ // ':'
	if p.peek() == ':' {
		p.pos++
		if c.PseudoElement = strings.ToLower(p.ident()); c.PseudoElement == "" {
			return p.errorf("empty pseudo-element")
		}
		return nil
	}
	name := strings.ToLower(p.ident())
	switch name {
	case "before", "after", "first-line", "first-letter": // legacy single colon syntax
		c.PseudoElement = name
		return nil
	case "first-child", "last-child", "only-child", "root", "empty",
		"link", "any-link", "hover", "active", "focus", "visited", "checked", "disabled":
		c.Pseudos = append(c.Pseudos, PseudoClass{Name: name})
		return nil
	case "nth-child", "nth-last-child", "not":
		arg, err := p.argument()
		if err != nil {
			return err
		}
		pc := PseudoClass{Name: name}
		if name == "not" {
			sub := &parser{s: strings.TrimSpace(arg)}
			if pc.Not, err = sub.compound(); err != nil {
				return err
			}
			if !sub.eof() || pc.Not.PseudoElement != "" {
				return p.errorf(":not() takes a simple compound selector")
			}
		} else if pc.A, pc.B, err = parseNth(arg); err != nil {
			return p.errorf("%v", err)
		}
		c.Pseudos = append(c.Pseudos, pc)
		return nil
	}
	return p.errorf("unsupported pseudo-class :%s", name)
}

func (p *parser) argument() (string, error) {
	if !p.consume("(") {
		return "", p.errorf("expected (")
	}
	depth, start := 1, p.pos
	for ; !p.eof(); p.pos++ {
		switch p.s[p.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				arg := p.s[start:p.pos]
				p.pos++
				return arg, nil
			}
		}
	}
	return "", p.errorf("unterminated argument")
}

// parseNth parses the argument of :nth-child, i.e. An+B, odd or even.
func parseNth(arg string) (a, b int, err error) {
	arg = strings.ToLower(strings.ReplaceAll(arg, " ", ""))
	switch arg {
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	case "":
		return 0, 0, fmt.Errorf("empty nth argument")
	}
	n := strings.IndexByte(arg, 'n')
	if n < 0 {
		b, err = strconv.Atoi(arg)
		return 0, b, err
	}
	switch coeff := arg[:n]; coeff {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		if a, err = strconv.Atoi(coeff); err != nil {
			return 0, 0, err
		}
	}
	if rest := arg[n+1:]; rest != "" {
		if b, err = strconv.Atoi(rest); err != nil {
			return 0, 0, err
		}
	}
	return a, b, nil
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() {
		ch := p.s[p.pos]
		if isNameStart(ch) || ch >= '0' && ch <= '9' || ch == '-' {
			p.pos++
			continue
		}
		if ch == '\\' && p.pos+1 < len(p.s) {
			p.pos += 2
			continue
		}
		break
	}
	return strings.ReplaceAll(p.s[start:p.pos], "\\", "")
}

func (p *parser) skipSpace() bool {
	start := p.pos
	for !p.eof() && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t' || p.s[p.pos] == '\n' ||
		p.s[p.pos] == '\r' || p.s[p.pos] == '\f') {
		p.pos++
	}
	return p.pos > start
}

func (p *parser) consume(tok string) bool {
	if strings.HasPrefix(p.s[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.s)
}

func (p *parser) errorf(format string, v ...interface{}) error {
	return fmt.Errorf("%w at position %d: %s", ErrMalformed, p.pos, fmt.Sprintf(format, v...))
}

func isNameStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch >= 0x80 ||
		ch == '\\'
}
