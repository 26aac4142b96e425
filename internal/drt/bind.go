package drt

import (
	"github.com/hashicorp/go-set/v3"
)

// HasBound reports whether r is in the universe of some box on the parent
// chain from local up to and including global.
func HasBound(r Ref, local, global Expr) bool {
	if r.Const {
		return false
	}
	for e := local; e != nil; e = e.Parent() {
		if d, ok := e.(*DRS); ok && ContainsRef(d.Universe, r) {
			return true
		}
		if e == global {
			break
		}
	}
	return false
}

// refVisitor is called for every referent occurrence in a condition, with
// the box hosting the condition.
type refVisitor func(r Ref, host Expr)

// walkRefs visits universes (decl=true) and condition referents (decl=false)
// in pre-order.
func walkRefs(e Expr, decl func(r Ref, box *DRS), use refVisitor) {
	switch e := e.(type) {
	case *DRS:
		if decl != nil {
			for _, r := range e.Universe {
				decl(r, e)
			}
		}
		for _, c := range e.Conds {
			switch c := c.(type) {
			case *Rel:
				if use != nil {
					for _, a := range c.Args {
						use(a, e)
					}
				}
			case *Prop:
				if use != nil {
					use(c.Ref, e)
				}
			}
			for _, s := range subExprs(c) {
				walkRefs(s, decl, use)
			}
		}
	case *Merge:
		walkRefs(e.Left, decl, use)
		walkRefs(e.Right, decl, use)
	case *Lambda:
		if use != nil {
			for _, r := range e.Refs {
				use(r, e)
			}
		}
	}
}

// FreeRefs returns the referents that occur in a condition of d without
// being bound in an accessible universe inside d.
func FreeRefs(d Expr) []Ref {
	return FreeRefsRelative(d, d)
}

// FreeRefsRelative returns the free referents of local, where binding is
// resolved up to and including global.
func FreeRefsRelative(local, global Expr) []Ref {
	var out []Ref
	seen := set.New[Ref](0)
	walkRefs(local, nil, func(r Ref, host Expr) {
		if r.Const || HasBound(r, host, global) {
			return
		}
		if seen.Insert(r) {
			out = append(out, r)
		}
	})
	return out
}

// Variables returns every non-constant referent in d, declared or used,
// in order of first occurrence.
func Variables(d Expr) []Ref {
	var out []Ref
	seen := set.New[Ref](0)
	add := func(r Ref) {
		if !r.Const && seen.Insert(r) {
			out = append(out, r)
		}
	}
	walkRefs(d,
		func(r Ref, _ *DRS) { add(r) },
		func(r Ref, _ Expr) { add(r) })
	return out
}

// Universes concatenates every universe in pre-order. Duplicates are kept.
func Universes(d Expr) []Ref {
	var out []Ref
	walkRefs(d, func(r Ref, _ *DRS) { out = append(out, r) }, nil)
	return out
}

// IsProper reports whether every referent used in a condition is bound in
// an accessible universe.
func IsProper(d Expr) bool {
	proper := true
	walkRefs(d, nil, func(r Ref, host Expr) {
		if !r.Const && !HasBound(r, host, d) {
			proper = false
		}
	})
	return proper
}

// IsPure reports whether no universe redeclares a referent that is free in
// d or declared by another universe in d.
func IsPure(d Expr) bool {
	seen := set.From(FreeRefs(d))
	pure := true
	walkRefs(d, func(r Ref, _ *DRS) {
		if !seen.Insert(r) {
			pure = false
		}
	}, nil)
	return pure
}

// IsResolved reports whether d contains no Merge and no Lambda nodes.
func IsResolved(d Expr) bool {
	switch d := d.(type) {
	case *DRS:
		for _, c := range d.Conds {
			for _, s := range subExprs(c) {
				if !IsResolved(s) {
					return false
				}
			}
		}
		return true
	}
	return false
}

// IsFOLConvertible reports whether d is resolved, pure and proper.
func IsFOLConvertible(d Expr) bool {
	return IsResolved(d) && IsPure(d) && IsProper(d)
}
