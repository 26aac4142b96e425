package drt

import (
	"strings"
)

// Notation selects a textual rendering.
type Notation int

const (
	// Linear renders boxes as [x,y| c1,c2].
	Linear Notation = iota
	// Set renders boxes as <{x,y},{c1,c2}>.
	Set
)

// Condition symbols.
const (
	SymNeg     = "¬"
	SymImp     = "⇒"
	SymOr      = "∨"
	SymBox     = "□"
	SymDiamond = "◇"
	SymLambda  = "λ"
)

// Show renders e. Merge nodes are resolved first where possible.
func Show(e Expr, n Notation) string {
	var b strings.Builder
	show(&b, ResolveMerges(e), n)
	return b.String()
}

// String renders d in set notation.
func (d *DRS) String() string { return Show(d, Set) }

// String renders m in set notation.
func (m *Merge) String() string { return Show(m, Set) }

// String renders l.
func (l *Lambda) String() string { return Show(l, Set) }

func show(b *strings.Builder, e Expr, n Notation) {
	switch e := e.(type) {
	case *DRS:
		if n == Set {
			b.WriteString("<{")
			writeRefs(b, e.Universe)
			b.WriteString("},{")
			writeConds(b, e.Conds, n)
			b.WriteString("}>")
			return
		}
		b.WriteByte('[')
		writeRefs(b, e.Universe)
		b.WriteString("| ")
		writeConds(b, e.Conds, n)
		b.WriteByte(']')
	case *Merge:
		b.WriteByte('(')
		show(b, e.Left, n)
		b.WriteString(" + ")
		show(b, e.Right, n)
		b.WriteByte(')')
	case *Lambda:
		b.WriteString(SymLambda)
		b.WriteString(e.Name)
		if len(e.Refs) != 0 {
			b.WriteByte('(')
			writeRefs(b, e.Refs)
			b.WriteByte(')')
		}
	}
}

func writeRefs(b *strings.Builder, rs []Ref) {
	for i, r := range rs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.String())
	}
}

func writeConds(b *strings.Builder, cs []Cond, n Notation) {
	for i, c := range cs {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCond(b, c, n)
	}
}

func writeCond(b *strings.Builder, c Cond, n Notation) {
	switch c := c.(type) {
	case *Rel:
		b.WriteString(c.Name)
		b.WriteByte('(')
		writeRefs(b, c.Args)
		b.WriteByte(')')
	case *Neg:
		b.WriteString(SymNeg)
		show(b, c.DRS, n)
	case *Box:
		b.WriteString(SymBox)
		show(b, c.DRS, n)
	case *Diamond:
		b.WriteString(SymDiamond)
		show(b, c.DRS, n)
	case *Prop:
		b.WriteString(c.Ref.String())
		b.WriteString(": ")
		show(b, c.DRS, n)
	case *Imp:
		show(b, c.Antecedent, n)
		b.WriteString(" " + SymImp + " ")
		show(b, c.Consequent, n)
	case *Or:
		show(b, c.Left, n)
		b.WriteString(" " + SymOr + " ")
		show(b, c.Right, n)
	}
}

// ShowCond renders a single condition.
func ShowCond(c Cond, n Notation) string {
	var b strings.Builder
	writeCond(&b, c, n)
	return b.String()
}
