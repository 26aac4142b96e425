package ccg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category string cannot be parsed.
var ErrUnknownCategory = errors.New("unknown category")

// ErrNotFunctor is returned by Split for atomic categories.
var ErrNotFunctor = errors.New("category is not a functor")

// Slash is the direction of a functor argument.
type Slash byte

const (
	// Forward takes its argument from the right: X/Y.
	Forward Slash = '/'
	// Backward takes its argument from the left: X\Y.
	Backward Slash = '\\'
)

func (s Slash) String() string {
	if s == 0 {
		return ""
	}
	return string(rune(s))
}

// Category is an immutable CCG category. The zero value is the empty
// category, used for the missing child of a unary node.
//
// A [conj] marker is kept apart from the feature, so S[dcl][conj] is the
// atom S[dcl] marked as a conjunct and (S[dcl]\NP)[conj] is a marked
// functor.
type Category struct {
	base    string
	feature string
	conj    bool
	result  *Category
	arg     *Category
	slash   Slash
}

// Common categories.
var (
	Empty   = Category{}
	Conj    = Atom("conj", "")
	NP      = Atom("NP", "")
	N       = Atom("N", "")
	PP      = Atom("PP", "")
	S       = Atom("S", "")
	NNum    = Atom("N", "num")
	ConjFwd = Combine(Conj, Forward, Conj)
	ConjBwd = Combine(Conj, Backward, Conj)
)

// Atom returns an atomic category with an optional feature.
func Atom(base, feature string) Category {
	return Category{base: base, feature: feature}
}

// Combine builds result|arg. An empty argument yields result unchanged.
func Combine(result Category, slash Slash, arg Category) Category {
	if arg.IsEmpty() {
		return result
	}
	r, a := result, arg
	return Category{result: &r, arg: &a, slash: slash}
}

// Parse reads a category such as "(S[dcl]\NP)/NP". Slashes associate to
// the left. The empty string yields Empty.
func Parse(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty, nil
	}
	p := &catParser{src: s}
	c, err := p.functor()
	if err != nil {
		return Empty, err
	}
	if p.pos != len(p.src) {
		return Empty, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return c, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Category {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

type catParser struct {
	src string
	pos int
}

func (p *catParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrUnknownCategory, fmt.Sprintf(format, args...), p.pos, p.src)
}

func (p *catParser) functor() (Category, error) {
	c, err := p.operand()
	if err != nil {
		return Empty, err
	}
	for p.pos < len(p.src) {
		s := Slash(p.src[p.pos])
		if s != Forward && s != Backward {
			break
		}
		p.pos++
		a, err := p.operand()
		if err != nil {
			return Empty, err
		}
		c = Combine(c, s, a)
	}
	return c, nil
}

func (p *catParser) operand() (Category, error) {
	if p.pos >= len(p.src) {
		return Empty, p.errorf("missing operand")
	}
	if p.src[p.pos] == '(' {
		p.pos++
		c, err := p.functor()
		if err != nil {
			return Empty, err
		}
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return Empty, p.errorf("missing ')'")
		}
		p.pos++
		if p.conjMarker() {
			c.conj = true
		}
		return c, nil
	}
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune(`()/\[] `, rune(p.src[p.pos])) {
		p.pos++
	}
	base := p.src[start:p.pos]
	if base == "" {
		return Empty, p.errorf("missing atom")
	}
	var feature string
	if p.pos < len(p.src) && p.src[p.pos] == '[' {
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return Empty, p.errorf("unterminated feature")
		}
		feature = p.src[p.pos+1 : p.pos+end]
		if feature == "" || strings.ContainsAny(feature, `()/\[ `) {
			return Empty, p.errorf("bad feature %q", feature)
		}
		p.pos += end + 1
	}
	c := Atom(base, feature)
	if feature == "conj" {
		c.feature, c.conj = "", true
	}
	if p.conjMarker() {
		c.conj = true
	}
	return c, nil
}

// conjMarker consumes a [conj] suffix.
func (p *catParser) conjMarker() bool {
	if !strings.HasPrefix(p.src[p.pos:], "[conj]") {
		return false
	}
	p.pos += len("[conj]")
	return true
}

// String prints atoms bare and wraps functor operands in parentheses.
func (c Category) String() string {
	var b strings.Builder
	c.write(&b, false)
	return b.String()
}

func (c Category) write(b *strings.Builder, paren bool) {
	switch {
	case c.IsEmpty():
	case c.IsAtom():
		b.WriteString(c.base)
		if c.feature != "" {
			b.WriteByte('[')
			b.WriteString(c.feature)
			b.WriteByte(']')
		}
		if c.conj {
			b.WriteString("[conj]")
		}
	default:
		paren = paren || c.conj
		if paren {
			b.WriteByte('(')
		}
		c.result.write(b, true)
		b.WriteByte(byte(c.slash))
		c.arg.write(b, true)
		if paren {
			b.WriteByte(')')
		}
		if c.conj {
			b.WriteString("[conj]")
		}
	}
}

// Equal reports structural equality including features and [conj]
// markers.
func (c Category) Equal(o Category) bool {
	if c.IsFunctor() != o.IsFunctor() || c.conj != o.conj {
		return false
	}
	if !c.IsFunctor() {
		return c.base == o.base && c.feature == o.feature
	}
	return c.slash == o.slash && c.result.Equal(*o.result) && c.arg.Equal(*o.arg)
}

// Base is the atom name without its feature.
func (c Category) Base() string { return c.base }

// Feature is the bracketed feature of an atom, or "". A [conj] marker is
// not a feature.
func (c Category) Feature() string { return c.feature }

// IsConjunct reports a [conj] marker on c itself.
func (c Category) IsConjunct() bool { return c.conj }

func (c Category) IsEmpty() bool   { return c.base == "" && c.result == nil }
func (c Category) IsAtom() bool    { return c.base != "" }
func (c Category) IsFunctor() bool { return c.result != nil }

// Result is X in X|Y. Atoms yield Empty.
func (c Category) Result() Category {
	if c.result == nil {
		return Empty
	}
	return *c.result
}

// Argument is Y in X|Y. Atoms yield Empty.
func (c Category) Argument() Category {
	if c.arg == nil {
		return Empty
	}
	return *c.arg
}

// Slash is the functor direction, or 0 for atoms.
func (c Category) Slash() Slash { return c.slash }

// Split decomposes a functor into its result, slash and argument.
func (c Category) Split() (Category, Slash, Category, error) {
	if !c.IsFunctor() {
		return Empty, 0, Empty, fmt.Errorf("%w: %s", ErrNotFunctor, c)
	}
	return *c.result, c.slash, *c.arg, nil
}

func (c Category) IsArgLeft() bool  { return c.slash == Backward }
func (c Category) IsArgRight() bool { return c.slash == Forward }

// IsModifier reports X|X.
func (c Category) IsModifier() bool {
	return c.IsFunctor() && c.result.Equal(*c.arg)
}

// IsTypeRaised reports X|(X|Y).
func (c Category) IsTypeRaised() bool {
	return c.IsFunctor() && c.arg.IsFunctor() && c.arg.result.Equal(*c.result)
}

// IsCombinator reports a functor whose argument is a functor, excluding
// modifiers.
func (c Category) IsCombinator() bool {
	return c.IsFunctor() && c.arg.IsFunctor() && !c.IsModifier()
}

var punct = map[string]bool{
	",": true, ".": true, ":": true, ";": true,
	"LRB": true, "RRB": true, "LQU": true, "RQU": true,
}

// IsPunct reports punctuation atoms.
func (c Category) IsPunct() bool {
	return c.IsAtom() && c.feature == "" && punct[c.base]
}

// IsConj reports categories containing a conj atom or a [conj] marker.
func (c Category) IsConj() bool {
	if c.conj {
		return true
	}
	if c.IsAtom() {
		return c.base == "conj"
	}
	return c.IsFunctor() && (c.result.IsConj() || c.arg.IsConj())
}

// HasFeature reports whether any atom carries the feature. "conj" matches
// [conj] markers at any level.
func (c Category) HasFeature(f string) bool {
	if f == "conj" {
		return c.hasConjMarker()
	}
	for _, a := range c.Atoms() {
		if a.feature == f {
			return true
		}
	}
	return false
}

func (c Category) hasConjMarker() bool {
	if c.conj {
		return true
	}
	return c.IsFunctor() && (c.result.hasConjMarker() || c.arg.hasConjMarker())
}
