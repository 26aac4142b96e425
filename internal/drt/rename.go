package drt

// renamer rebuilds a tree. declared decides whether a universe entry is
// renamed, used decides for a referent occurring at host. Both see the
// original tree.
type renamer struct {
	rs       Renaming
	declared func(r Ref) bool
	used     func(r Ref, host Expr) bool
}

func (rn *renamer) ref(r Ref, ok bool) Ref {
	if !ok {
		return r
	}
	return rn.rs.Apply(r)
}

func (rn *renamer) expr(e Expr) Expr {
	switch e := e.(type) {
	case *DRS:
		u := make([]Ref, len(e.Universe))
		for i, r := range e.Universe {
			u[i] = rn.ref(r, rn.declared(r))
		}
		conds := make([]Cond, len(e.Conds))
		for i, c := range e.Conds {
			conds[i] = rn.cond(c, e)
		}
		return NewDRS(u, conds...)
	case *Merge:
		return NewMerge(rn.expr(e.Left), rn.expr(e.Right))
	case *Lambda:
		refs := make([]Ref, len(e.Refs))
		for i, r := range e.Refs {
			refs[i] = rn.ref(r, rn.used(r, e))
		}
		return NewLambda(e.Name, refs...)
	}
	return e
}

func (rn *renamer) cond(c Cond, host *DRS) Cond {
	switch c := c.(type) {
	case *Rel:
		args := make([]Ref, len(c.Args))
		for i, a := range c.Args {
			args[i] = rn.ref(a, rn.used(a, host))
		}
		return &Rel{Name: c.Name, Args: args}
	case *Neg:
		return &Neg{DRS: rn.expr(c.DRS)}
	case *Box:
		return &Box{DRS: rn.expr(c.DRS)}
	case *Diamond:
		return &Diamond{DRS: rn.expr(c.DRS)}
	case *Prop:
		return &Prop{Ref: rn.ref(c.Ref, rn.used(c.Ref, host)), DRS: rn.expr(c.DRS)}
	case *Or:
		return &Or{Left: rn.expr(c.Left), Right: rn.expr(c.Right)}
	case *Imp:
		return &Imp{Antecedent: rn.expr(c.Antecedent), Consequent: rn.expr(c.Consequent)}
	}
	return c
}

// AlphaConvert renames bound referents of d. Universe entries listed in rs
// are renamed, and every occurrence bound inside d is renamed with them.
// Free occurrences are untouched.
func AlphaConvert(d Expr, rs Renaming) Expr {
	return alphaConvert(d, d, rs)
}

// alphaConvert resolves binding up to global, which must enclose d.
func alphaConvert(d, global Expr, rs Renaming) Expr {
	rn := &renamer{
		rs:       rs,
		declared: func(Ref) bool { return true },
		used:     func(r Ref, host Expr) bool { return HasBound(r, host, global) },
	}
	return rn.expr(d)
}

// Substitute renames the free occurrences of referents in d and leaves
// bound occurrences alone.
func Substitute(d Expr, rs Renaming) Expr {
	rn := &renamer{
		rs:       rs,
		declared: func(Ref) bool { return false },
		used:     func(r Ref, host Expr) bool { return !HasBound(r, host, d) },
	}
	return rn.expr(d)
}

// RenameAll renames every occurrence, bound or free.
func RenameAll(d Expr, rs Renaming) Expr {
	all := func(Ref) bool { return true }
	rn := &renamer{
		rs:       rs,
		declared: all,
		used:     func(Ref, Expr) bool { return true },
	}
	return rn.expr(d)
}

// Renumber renames the variables of d in order of first occurrence. The
// first variable with a given name is bare and later ones count up, so
// e1, x3, x1 become e, x, x1.
func Renumber(d *DRS) *DRS {
	next := map[string]int{}
	var rs Renaming
	for _, r := range Variables(d) {
		n := next[r.Var.Name]
		next[r.Var.Name] = n + 1
		if to := (Ref{Var: Var{Name: r.Var.Name, Index: n}}); to != r {
			rs = append(rs, Rename{From: r, To: to})
		}
	}
	if len(rs) == 0 {
		return d
	}
	return RenameAll(d, rs).(*DRS)
}
