package production

import (
	"fmt"
	"strings"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
)

// ProductionList is an ordered bag of productions waiting to be merged.
type ProductionList struct {
	items  []Production
	lambda []drt.Ref
	cat    ccg.Category
}

// NewProductionList returns a list holding items in order. Nested lists
// are flattened.
func NewProductionList(cat ccg.Category, items ...Production) *ProductionList {
	l := &ProductionList{cat: cat}
	for _, p := range items {
		l.PushRight(p)
	}
	return l
}

// PushRight appends p.
func (l *ProductionList) PushRight(p Production) *ProductionList {
	if sub, ok := p.(*ProductionList); ok {
		l.items = append(l.items, sub.items...)
		return l
	}
	l.items = append(l.items, p)
	return l
}

// PushLeft prepends p.
func (l *ProductionList) PushLeft(p Production) *ProductionList {
	var head []Production
	if sub, ok := p.(*ProductionList); ok {
		head = sub.items
	} else {
		head = []Production{p}
	}
	l.items = append(append([]Production(nil), head...), l.items...)
	return l
}

// SetLambda fixes the lambda referents of the unified result.
func (l *ProductionList) SetLambda(refs []drt.Ref) *ProductionList {
	l.lambda = append([]drt.Ref(nil), refs...)
	return l
}

// Len is the number of items.
func (l *ProductionList) Len() int { return len(l.items) }

// Items returns the items in order.
func (l *ProductionList) Items() []Production { return l.items }

func (l *ProductionList) Category() ccg.Category { return l.cat }
func (l *ProductionList) IsFunctor() bool        { return false }

func (l *ProductionList) Variables() []drt.Ref {
	var out []drt.Ref
	for _, p := range l.items {
		out = drt.Union(out, p.Variables())
	}
	return drt.Union(out, l.lambda)
}

func (l *ProductionList) Universe() []drt.Ref {
	var out []drt.Ref
	for _, p := range l.items {
		out = drt.Union(out, p.Universe())
	}
	return out
}

func (l *ProductionList) FreeRefs() []drt.Ref {
	var out []drt.Ref
	for _, p := range l.items {
		out = drt.Union(out, p.FreeRefs())
	}
	return drt.Complement(out, l.Universe())
}

func (l *ProductionList) LambdaRefs() []drt.Ref {
	if len(l.lambda) != 0 || len(l.items) == 0 {
		return l.lambda
	}
	return l.items[0].LambdaRefs()
}

func (l *ProductionList) rename(rs drt.Renaming) Production {
	c := &ProductionList{cat: l.cat, lambda: renameRefs(l.lambda, rs)}
	c.items = make([]Production, len(l.items))
	for i, p := range l.items {
		c.items[i] = p.rename(rs)
	}
	return c
}

func (l *ProductionList) String() string {
	s := make([]string, len(l.items))
	for i, p := range l.items {
		s[i] = p.String()
	}
	return "<" + strings.Join(s, "##") + ">"
}

// Unify merges the items right to left into one DrsProduction. A referent
// declared by an item and again by an item to its right is renamed in the
// right-hand items. When every item is a proper noun over one referent the
// relations are hyphenated into a single name. A list that still holds a
// functor is returned unchanged.
func (l *ProductionList) Unify() (Production, error) {
	ml := make([]*DrsProduction, 0, len(l.items))
	for _, p := range l.items {
		switch p := p.(type) {
		case *DrsProduction:
			ml = append(ml, p)
		case *ProductionList:
			u, err := p.Unify()
			if err != nil {
				return nil, err
			}
			d, ok := u.(*DrsProduction)
			if !ok {
				return l, nil
			}
			ml = append(ml, d)
		default:
			return l, nil
		}
	}

	cat := l.cat
	if cat.IsEmpty() && len(ml) != 0 {
		cat = ml[0].cat
	}
	if len(ml) == 1 {
		d := ml[0].WithCategory(cat)
		if len(l.lambda) != 0 {
			d = d.WithLambda(l.lambda)
		}
		return d, nil
	}

	var all []drt.Ref
	for _, d := range ml {
		all = drt.Union(all, d.Variables())
	}
	var universe []drt.Ref
	for i := len(ml) - 1; i >= 0; i-- {
		d := ml[i]
		if rn := drt.Intersect(d.Universe(), universe); len(rn) != 0 {
			nrs := drt.NewRefs(rn, all)
			all = drt.Union(all, nrs)
			xrs := drt.Zip(rn, nrs)
			for j := i + 1; j < len(ml); j++ {
				ml[j] = ml[j].renameDRS(xrs)
			}
			universe = renameRefs(universe, xrs)
		}
		universe = drt.Union(universe, d.Universe())
	}

	var refs []drt.Ref
	var conds []drt.Cond
	proper := len(ml) != 0
	for _, d := range ml {
		proper = proper && d.proper
		refs = drt.Union(refs, d.Universe())
		conds = append(conds, d.drs.Conds...)
	}
	if proper {
		if rel, ok := hyphenate(conds); ok {
			conds = []drt.Cond{rel}
		} else {
			proper = false
		}
	}

	d := &DrsProduction{
		drs:    drt.Purify(drt.NewDRS(refs, conds...)).(*drt.DRS),
		cat:    cat,
		proper: proper,
		lambda: append([]drt.Ref(nil), l.LambdaRefs()...),
	}
	return d, nil
}

// hyphenate joins unary relations over one referent into a compound name
// such as Merryweather-High.
func hyphenate(conds []drt.Cond) (*drt.Rel, bool) {
	if len(conds) == 0 {
		return nil, false
	}
	names := make([]string, 0, len(conds))
	var arg drt.Ref
	for i, c := range conds {
		r, ok := c.(*drt.Rel)
		if !ok || len(r.Args) != 1 {
			return nil, false
		}
		if i == 0 {
			arg = r.Args[0]
		} else if r.Args[0] != arg {
			return nil, false
		}
		names = append(names, r.Name)
	}
	return drt.NewRel(strings.Join(names, "-"), arg), true
}

// unifyWith merges items in order under the given lambda and category.
func unifyWith(cat ccg.Category, lambda []drt.Ref, items ...*DrsProduction) (*DrsProduction, error) {
	l := &ProductionList{cat: cat, lambda: append([]drt.Ref(nil), lambda...)}
	for _, d := range items {
		l.items = append(l.items, d)
	}
	u, err := l.Unify()
	if err != nil {
		return nil, err
	}
	d, ok := u.(*DrsProduction)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, u)
	}
	return d, nil
}
