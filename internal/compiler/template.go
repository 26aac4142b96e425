package compiler

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
	"github.com/roach88/ccgdrs/internal/production"
)

// refGen hands out template referents: e1, e2 for events and x1, x2 for
// everything else.
type refGen struct{ e, x int }

func (g *refGen) next(atom ccg.Category) drt.Ref {
	if isEvent(atom) {
		g.e++
		return drt.Ref{Var: drt.Var{Name: "e", Index: g.e}}
	}
	g.x++
	return drt.Ref{Var: drt.Var{Name: "x", Index: g.x}}
}

// isEvent reports atoms whose referent is an event or state.
func isEvent(atom ccg.Category) bool {
	return atom.Base() == "S" && atom.Feature() != "adj"
}

// sameShape reports argument and result categories that describe the same
// referents, as in modifiers, determiners and auxiliaries.
func sameShape(a, b ccg.Category) bool {
	return a.RemoveFeatures().Equal(b.RemoveFeatures()) || a.DRSSignature().Equal(b.DRSSignature())
}

// isRelative reports (T|T)|(S|T) where the clause's argument is the
// modified noun phrase.
func isRelative(c ccg.Category) bool {
	if !c.IsFunctor() {
		return false
	}
	arg, res := c.Argument(), c.Result()
	return res.IsModifier() && res.Argument().IsAtom() &&
		arg.IsFunctor() && arg.Argument().IsAtom() && arg.Result().IsAtom() &&
		!isEvent(arg.Argument()) && !isEvent(res.Argument())
}

// coindex assigns one referent per atom of c, in Atoms order. Atoms that
// denote the same entity share a referent.
func coindex(c ccg.Category, g *refGen) []drt.Ref {
	if !c.IsFunctor() {
		return []drt.Ref{g.next(c)}
	}
	arg, res := c.Argument(), c.Result()
	switch {
	case c.IsTypeRaised():
		x := coindex(arg.Argument(), g)
		t := coindex(res, g)
		return slices.Concat(x, t, t)
	case sameShape(arg, res):
		a := coindex(arg, g)
		return slices.Concat(a, a)
	case isRelative(c):
		np := coindex(res.Argument(), g)
		s := coindex(arg.Result(), g)
		return slices.Concat(np, s, np, np)
	}
	return slices.Concat(coindex(arg, g), coindex(res, g))
}

// template is the referent layout of a lexical functor.
type template struct {
	cat    ccg.Category
	scopes [][]drt.Ref
	final  drt.Ref
}

// newTemplate splits refs, given in Atoms order, into functor scopes and
// the final referent.
func newTemplate(cat ccg.Category, refs []drt.Ref) (template, error) {
	if n := len(cat.Atoms()); n != len(refs) {
		return template{}, fmt.Errorf("category %s has %d atoms, got %d referents", cat, n, len(refs))
	}
	t := template{cat: cat}
	c := cat
	for c.IsFunctor() {
		n := len(c.Argument().Atoms())
		t.scopes = append(t.scopes, refs[:n])
		refs = refs[n:]
		c = c.Result()
	}
	t.final = refs[0]
	return t, nil
}

// lexicalTemplate co-indexes cat and lays out its referents.
func lexicalTemplate(cat ccg.Category) (template, error) {
	return newTemplate(cat, coindex(cat, &refGen{}))
}

// finalCat is the category the template saturates to.
func (t template) finalCat() ccg.Category {
	c := t.cat
	for c.IsFunctor() {
		c = c.Result()
	}
	return c
}

// shared reports whether r is bound by one of the template's scopes.
func (t template) shared(r drt.Ref) bool {
	for _, s := range t.scopes {
		if drt.ContainsRef(s, r) {
			return true
		}
	}
	return false
}

// ordered lists the final referent followed by the argument referents in
// reverse surface order.
func (t template) ordered() []drt.Ref {
	var refs []drt.Ref
	c := t.cat
	for _, s := range t.scopes {
		if c.IsArgRight() {
			refs = append(refs, s...)
		} else {
			refs = slices.Concat(s, refs)
		}
		c = c.Result()
	}
	refs = append(refs, t.final)
	slices.Reverse(refs)
	return drt.Dedup(refs)
}

// functor builds the lexical functor with the given body conditions. The
// final referent is declared when no argument binds it and a condition
// uses it.
func (t template) functor(conds []drt.Cond, proper bool) (*production.FunctorProduction, error) {
	return t.functorDRS(drt.NewDRS(nil, conds...), proper)
}

func (t template) functorDRS(d *drt.DRS, proper bool) (*production.FunctorProduction, error) {
	if !t.shared(t.final) && !drt.ContainsRef(d.Universe, t.final) && drt.ContainsRef(drt.Variables(d), t.final) {
		d.Universe = append([]drt.Ref{t.final}, d.Universe...)
	}
	body := production.NewDrsProduction(d, t.finalCat(), t.final)
	if proper {
		body = body.AsProperNoun()
	}
	return production.NewFunctor(t.cat, t.scopes, body)
}

var tagPattern = regexp.MustCompile(`_(\d+)`)

// taggedCategory is a category pattern whose atoms carry co-index tags,
// as in N_1\N_1. Tags are stored in Atoms order.
type taggedCategory struct {
	cat  ccg.Category
	tags []int
}

// parseTagged reads a tagged category. Every atom must carry a tag.
func parseTagged(s string) (taggedCategory, error) {
	var tags []int
	for _, m := range tagPattern.FindAllStringSubmatch(s, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return taggedCategory{}, err
		}
		tags = append(tags, n)
	}
	cat, err := ccg.Parse(tagPattern.ReplaceAllString(s, ""))
	if err != nil {
		return taggedCategory{}, err
	}
	if len(tags) != len(cat.Atoms()) {
		return taggedCategory{}, fmt.Errorf("%s: every atom needs a tag", s)
	}
	return taggedCategory{cat: cat, tags: atomOrder(cat, tags)}, nil
}

// atomOrder reorders tags from textual order, result before argument,
// to Atoms order, argument before result.
func atomOrder(c ccg.Category, tags []int) []int {
	if !c.IsFunctor() {
		return tags
	}
	n := len(c.Result().Atoms())
	res := atomOrder(c.Result(), tags[:n])
	arg := atomOrder(c.Argument(), tags[n:])
	return slices.Concat(arg, res)
}

// matches reports whether c fits the pattern. A pattern atom without a
// feature, or with feature X, accepts any feature.
func (p taggedCategory) matches(c ccg.Category) bool {
	return shapeMatches(p.cat, c)
}

func shapeMatches(p, c ccg.Category) bool {
	switch {
	case p.IsFunctor():
		return c.IsFunctor() && p.Slash() == c.Slash() &&
			shapeMatches(p.Result(), c.Result()) && shapeMatches(p.Argument(), c.Argument())
	case p.IsAtom():
		if !c.IsAtom() || p.Base() != c.Base() {
			return false
		}
		return p.Feature() == "" || p.Feature() == "X" || p.Feature() == c.Feature()
	}
	return c.IsEmpty()
}
