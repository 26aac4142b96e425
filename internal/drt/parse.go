package drt

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrParse is returned for malformed DRS text.
var ErrParse = errors.New("malformed DRS text")

// Parse reads a DRS in set notation (<{x},{man(x)}>), linear notation
// ([x| man(x)]) or NLTK notation (([x],[man(x)])). Conditions may use
// ¬, not, - or ! for negation, ⇒, -> or => for implication, ∨ or | for
// disjunction, □ and ◇ for the modal operators, and "p: <box>" for
// propositions. A double-quoted referent is a constant.
func Parse(s string) (*DRS, error) {
	p := &parser{src: s}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skip()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.rest())
	}
	d, ok := ResolveMerges(e).(*DRS)
	if !ok {
		return nil, p.errorf("expression does not resolve to a box")
	}
	return d, nil
}

// MustParse is like Parse but panics on error. For tables and tests.
func MustParse(s string) *DRS {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrParse, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) rest() string {
	r := p.src[p.pos:]
	if len(r) > 20 {
		r = r[:20] + "..."
	}
	return r
}

func (p *parser) skip() {
	for p.pos < len(p.src) {
		r, n := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += n
	}
}

func (p *parser) peek(tok string) bool {
	p.skip()
	return strings.HasPrefix(p.src[p.pos:], tok)
}

func (p *parser) accept(tok string) bool {
	if p.peek(tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) expect(tok string) error {
	if !p.accept(tok) {
		if p.pos >= len(p.src) {
			return p.errorf("expected %q, found end of input", tok)
		}
		return p.errorf("expected %q, found %q", tok, p.rest())
	}
	return nil
}

// expr := operand ('+' operand)*
func (p *parser) expr() (Expr, error) {
	e, err := p.operand()
	if err != nil {
		return nil, err
	}
	for p.accept("+") {
		r, err := p.operand()
		if err != nil {
			return nil, err
		}
		e = NewMerge(e, r)
	}
	return e, nil
}

func (p *parser) operand() (Expr, error) {
	p.skip()
	switch {
	case p.accept("<"):
		return p.setBox()
	case p.peek("(["):
		p.accept("(")
		return p.nltkBox()
	case p.accept("["):
		return p.linearBox()
	case p.accept(SymLambda):
		name := p.ident(isRefRune)
		if name == "" {
			return nil, p.errorf("expected lambda name")
		}
		var refs []Ref
		if p.accept("(") {
			var err error
			if refs, err = p.refList(")"); err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
		}
		return NewLambda(name, refs...), nil
	case p.accept("("):
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		return e, p.expect(")")
	}
	return nil, p.errorf("expected a DRS, found %q", p.rest())
}

func (p *parser) setBox() (Expr, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	u, err := p.refList("}")
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	conds, err := p.condList("}")
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	return NewDRS(u, conds...), nil
}

func (p *parser) linearBox() (Expr, error) {
	u, err := p.refList("|")
	if err != nil {
		return nil, err
	}
	if err := p.expect("|"); err != nil {
		return nil, err
	}
	conds, err := p.condList("]")
	if err != nil {
		return nil, err
	}
	if err := p.expect("]"); err != nil {
		return nil, err
	}
	return NewDRS(u, conds...), nil
}

func (p *parser) nltkBox() (Expr, error) {
	if err := p.expect("["); err != nil {
		return nil, err
	}
	u, err := p.refList("]")
	if err != nil {
		return nil, err
	}
	if err := p.expect("]"); err != nil {
		return nil, err
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	if err := p.expect("["); err != nil {
		return nil, err
	}
	conds, err := p.condList("]")
	if err != nil {
		return nil, err
	}
	if err := p.expect("]"); err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return NewDRS(u, conds...), nil
}

func (p *parser) refList(end string) ([]Ref, error) {
	var refs []Ref
	if p.peek(end) {
		return refs, nil
	}
	for {
		r, err := p.ref()
		if err != nil {
			return nil, err
		}
		refs = append(refs, r)
		if !p.accept(",") {
			return refs, nil
		}
	}
}

func (p *parser) ref() (Ref, error) {
	p.skip()
	if p.accept(`"`) {
		end := strings.IndexByte(p.src[p.pos:], '"')
		if end < 0 {
			return Ref{}, p.errorf("unterminated constant")
		}
		name := p.src[p.pos : p.pos+end]
		p.pos += end + 1
		return NewConst(name), nil
	}
	name := p.ident(isRefRune)
	if name == "" {
		return Ref{}, p.errorf("expected referent, found %q", p.rest())
	}
	return NewRef(name), nil
}

func (p *parser) condList(end string) ([]Cond, error) {
	var conds []Cond
	if p.peek(end) {
		return conds, nil
	}
	for {
		c, err := p.cond()
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
		if !p.accept(",") {
			return conds, nil
		}
	}
}

func (p *parser) cond() (Cond, error) {
	p.skip()
	switch {
	case p.accept(SymNeg), p.accept("!"), p.acceptWord("not"):
		d, err := p.operand()
		if err != nil {
			return nil, err
		}
		return &Neg{DRS: d}, nil
	case p.peek("-") && !p.peek("->"):
		p.accept("-")
		d, err := p.operand()
		if err != nil {
			return nil, err
		}
		return &Neg{DRS: d}, nil
	case p.accept(SymBox):
		d, err := p.operand()
		if err != nil {
			return nil, err
		}
		return &Box{DRS: d}, nil
	case p.accept(SymDiamond):
		d, err := p.operand()
		if err != nil {
			return nil, err
		}
		return &Diamond{DRS: d}, nil
	case p.peek("<"), p.peek("["), p.peek("(["), p.peek("("), p.peek(SymLambda):
		left, err := p.operand()
		if err != nil {
			return nil, err
		}
		switch {
		case p.accept(SymImp), p.accept("->"), p.accept("=>"):
			right, err := p.operand()
			if err != nil {
				return nil, err
			}
			return &Imp{Antecedent: left, Consequent: right}, nil
		case p.accept(SymOr), p.accept("|"):
			right, err := p.operand()
			if err != nil {
				return nil, err
			}
			return &Or{Left: left, Right: right}, nil
		}
		return nil, p.errorf("expected %s or %s after box", SymImp, SymOr)
	}

	start := p.pos
	if p.peek(`"`) {
		r, err := p.ref()
		if err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		d, err := p.operand()
		if err != nil {
			return nil, err
		}
		return &Prop{Ref: r, DRS: d}, nil
	}
	name := p.ident(isRelRune)
	if name == "" {
		return nil, p.errorf("expected condition, found %q", p.rest())
	}
	if p.accept(":") {
		d, err := p.operand()
		if err != nil {
			return nil, err
		}
		return &Prop{Ref: NewRef(name), DRS: d}, nil
	}
	if !p.accept("(") {
		p.pos = start
		return nil, p.errorf("expected '(' after relation %q", name)
	}
	args, err := p.refList(")")
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return &Rel{Name: name, Args: args}, nil
}

// acceptWord consumes w when it is followed by a non-identifier rune.
func (p *parser) acceptWord(w string) bool {
	if !p.peek(w) {
		return false
	}
	next := p.pos + len(w)
	if next < len(p.src) {
		r, _ := utf8.DecodeRuneInString(p.src[next:])
		if isRelRune(r) {
			return false
		}
	}
	p.pos = next
	return true
}

func (p *parser) ident(valid func(rune) bool) string {
	p.skip()
	start := p.pos
	for p.pos < len(p.src) {
		r, n := utf8.DecodeRuneInString(p.src[p.pos:])
		if !valid(r) {
			break
		}
		// A '-' that starts "->" ends the identifier.
		if r == '-' && strings.HasPrefix(p.src[p.pos:], "->") {
			break
		}
		p.pos += n
	}
	return p.src[start:p.pos]
}

func isRefRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isRelRune(r rune) bool {
	switch r {
	case '.', '-', '_', '$', '\'', '&':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
