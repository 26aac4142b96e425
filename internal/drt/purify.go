package drt

import (
	"github.com/hashicorp/go-set/v3"
)

// Purify returns an equivalent DRS in which no universe redeclares a
// referent that is free in d or declared elsewhere in d. Redeclarations are
// renamed to fresh referents, together with the occurrences they bind.
func Purify(d Expr) Expr {
	p := &purifier{
		seen:  set.From(FreeRefs(d)),
		taken: set.From(Variables(d)),
	}
	return p.expr(d, scope{})
}

// scope maps the referents declared on the current accessible path to
// their purified names.
type scope map[Ref]Ref

func (s scope) with(from, to Ref) scope {
	out := make(scope, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[from] = to
	return out
}

func (s scope) apply(r Ref) Ref {
	if to, ok := s[r]; ok {
		return to
	}
	return r
}

type purifier struct {
	// seen holds every name already declared, plus the free referents.
	seen *set.Set[Ref]
	// taken holds every name that a fresh referent must avoid.
	taken *set.Set[Ref]
}

func (p *purifier) fresh(r Ref) Ref {
	n := r.Fresh()
	for p.taken.Contains(n) || p.seen.Contains(n) {
		n = n.Fresh()
	}
	p.taken.Insert(n)
	return n
}

// box purifies d and returns the scope visible to boxes nested in it.
func (p *purifier) box(d *DRS, env scope) (*DRS, scope) {
	u := make([]Ref, len(d.Universe))
	for i, r := range d.Universe {
		n := r
		if r.Const {
			u[i] = r
			continue
		}
		if p.seen.Contains(r) {
			n = p.fresh(r)
		}
		p.seen.Insert(n)
		env = env.with(r, n)
		u[i] = n
	}
	conds := make([]Cond, len(d.Conds))
	for i, c := range d.Conds {
		conds[i] = p.cond(c, env)
	}
	return NewDRS(u, conds...), env
}

func (p *purifier) expr(e Expr, env scope) Expr {
	switch e := e.(type) {
	case *DRS:
		d, _ := p.box(e, env)
		return d
	case *Merge:
		return NewMerge(p.expr(e.Left, env), p.expr(e.Right, env))
	case *Lambda:
		refs := make([]Ref, len(e.Refs))
		for i, r := range e.Refs {
			refs[i] = env.apply(r)
		}
		return NewLambda(e.Name, refs...)
	}
	return e
}

func (p *purifier) cond(c Cond, env scope) Cond {
	switch c := c.(type) {
	case *Rel:
		args := make([]Ref, len(c.Args))
		for i, a := range c.Args {
			args[i] = env.apply(a)
		}
		return &Rel{Name: c.Name, Args: args}
	case *Neg:
		return &Neg{DRS: p.expr(c.DRS, env)}
	case *Box:
		return &Box{DRS: p.expr(c.DRS, env)}
	case *Diamond:
		return &Diamond{DRS: p.expr(c.DRS, env)}
	case *Prop:
		return &Prop{Ref: env.apply(c.Ref), DRS: p.expr(c.DRS, env)}
	case *Or:
		return &Or{Left: p.expr(c.Left, env), Right: p.expr(c.Right, env)}
	case *Imp:
		a, ok := c.Antecedent.(*DRS)
		if !ok {
			return &Imp{Antecedent: p.expr(c.Antecedent, env), Consequent: p.expr(c.Consequent, env)}
		}
		pa, inner := p.box(a, env)
		return &Imp{Antecedent: pa, Consequent: p.expr(c.Consequent, inner)}
	}
	return c
}
