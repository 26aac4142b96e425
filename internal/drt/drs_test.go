package drt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentPointers(t *testing.T) {
	d := MustParse(`<{},{<{x},{a(x)}> ⇒ <{},{b(x)}>,<{y},{c(y)}> ∨ <{},{e(y)}>,¬<{},{f(x)}>}>`)
	require.Len(t, d.Conds, 3)

	imp := d.Conds[0].(*Imp)
	assert.Same(t, d, imp.Antecedent.Parent())
	assert.Same(t, imp.Antecedent, imp.Consequent.Parent())

	or := d.Conds[1].(*Or)
	assert.Same(t, d, or.Left.Parent())
	assert.Same(t, d, or.Right.Parent())

	neg := d.Conds[2].(*Neg)
	assert.Same(t, d, neg.DRS.Parent())
	assert.Nil(t, d.Parent())
}

func TestAccessibility(t *testing.T) {
	d := MustParse(`[| [x| a(x)] ⇒ [| b(x)],[y| c(y)] ∨ [| e(y)]]`)
	imp := d.Conds[0].(*Imp)
	or := d.Conds[1].(*Or)

	assert.True(t, AccessibleFrom(imp.Antecedent, imp.Consequent))
	assert.True(t, AccessibleFrom(d, imp.Consequent))
	assert.False(t, AccessibleFrom(imp.Consequent, imp.Antecedent))
	assert.False(t, AccessibleFrom(or.Left, or.Right))
	assert.False(t, AccessibleFrom(or.Right, or.Left))

	assert.True(t, HasBound(NewRef("x"), imp.Consequent, d))
	assert.False(t, HasBound(NewRef("y"), or.Right, d))
	assert.False(t, IsProper(d), "e(y) is outside the scope of y")
}

func TestAdoptionClonesSharedChildren(t *testing.T) {
	inner := MustParse(`[| happy(x)]`)
	first := NewDRS(Refs("x"), &Neg{DRS: inner})
	second := NewDRS(Refs("x"), first.Conds[0])

	n1 := first.Conds[0].(*Neg).DRS
	n2 := second.Conds[0].(*Neg).DRS
	assert.Same(t, first, n1.Parent())
	assert.Same(t, second, n2.Parent())
	assert.NotSame(t, n1, n2)
}

func TestClone(t *testing.T) {
	d := MustParse(`[x| man(x),[| a(x)] ⇒ [| b(x)]]`)
	c := Clone(d).(*DRS)
	assert.Equal(t, Show(d, Set), Show(c, Set))
	assert.Nil(t, c.Parent())
	imp := c.Conds[1].(*Imp)
	assert.Same(t, c, imp.Antecedent.Parent())
	assert.Same(t, imp.Antecedent, imp.Consequent.Parent())
}

func TestDeepNesting(t *testing.T) {
	const depth = 1000
	var d Expr = MustParse(`[x| deep(x)]`)
	for range depth {
		d = NewDRS(nil, &Neg{DRS: d})
	}
	top := NewDRS(Refs("x"), &Rel{Name: "top", Args: Refs("x")}, &Neg{DRS: d})

	assert.True(t, IsProper(top))
	assert.False(t, IsPure(top))

	p := Purify(top)
	assert.True(t, IsPure(p))
	assert.True(t, IsProper(p))
	assert.Equal(t, Refs("x", "x1"), Universes(p))

	s := Show(p, Linear)
	assert.Equal(t, depth+1, strings.Count(s, SymNeg))
	assert.True(t, strings.Contains(s, "deep(x1)"))
	assert.Equal(t, s, Show(Purify(p), Linear))
}

func TestEmptyDRS(t *testing.T) {
	e := Empty()
	for name, f := range map[string]func(Expr) Expr{
		"purify":  Purify,
		"resolve": ResolveMerges,
		"alpha": func(d Expr) Expr {
			return AlphaConvert(d, Renaming{{From: NewRef("x"), To: NewRef("y")}})
		},
		"substitute": func(d Expr) Expr {
			return Substitute(d, Renaming{{From: NewRef("x"), To: NewRef("y")}})
		},
		"simplify": SimplifyProps,
	} {
		t.Run(name, func(t *testing.T) {
			got := f(e).(*DRS)
			assert.True(t, got.IsEmpty())
			assert.Equal(t, "<{},{}>", Show(got, Set))
		})
	}
}
