package drt

// MergeDRS combines a and b into a DRS meaning "a, then b". Referents bound
// in b that clash with a's variables are renamed. When a lambda blocks the
// merge the result is an unresolved *Merge.
func MergeDRS(a, b Expr) Expr {
	if isLambda(a) || isLambda(b) {
		return NewMerge(a, b)
	}
	if m, ok := b.(*Merge); ok {
		switch {
		case isLambda(m.Left):
			return NewMerge(m.Left, MergeDRS(a, m.Right))
		case isLambda(m.Right):
			return NewMerge(MergeDRS(a, m.Left), m.Right)
		default:
			return MergeDRS(a, ResolveMerges(b))
		}
	}
	if m, ok := a.(*Merge); ok {
		switch {
		case isLambda(m.Left):
			return NewMerge(m.Left, MergeDRS(m.Right, b))
		case isLambda(m.Right):
			return NewMerge(MergeDRS(m.Left, b), m.Right)
		default:
			return MergeDRS(ResolveMerges(a), b)
		}
	}
	da, ok := a.(*DRS)
	if !ok {
		return NewMerge(a, b)
	}
	db, ok := b.(*DRS)
	if !ok {
		return NewMerge(a, b)
	}
	return mergeBoxes(da, db)
}

func mergeBoxes(a, b *DRS) *DRS {
	pa := Purify(a).(*DRS)
	pb := Purify(b).(*DRS)
	va := Variables(pa)
	vb := Variables(pb)
	if ors := Intersect(vb, va); len(ors) != 0 {
		nrs := NewRefs(ors, Union(va, vb))
		pb = AlphaConvert(pb, Zip(ors, nrs)).(*DRS)
	}
	u := Union(pa.Universe, pb.Universe)
	conds := make([]Cond, 0, len(pa.Conds)+len(pb.Conds))
	conds = append(conds, pa.Conds...)
	conds = append(conds, pb.Conds...)
	return NewDRS(u, conds...)
}

func isLambda(e Expr) bool {
	_, ok := e.(*Lambda)
	return ok
}

// ResolveMerges replaces every Merge node by its algebraic merge, bottom up.
func ResolveMerges(e Expr) Expr {
	switch e := e.(type) {
	case *DRS:
		conds := make([]Cond, len(e.Conds))
		for i, c := range e.Conds {
			conds[i] = mapSubExprs(c, ResolveMerges)
		}
		return NewDRS(e.Universe, conds...)
	case *Merge:
		l := ResolveMerges(e.Left)
		r := ResolveMerges(e.Right)
		return MergeDRS(l, r)
	case *Lambda:
		return NewLambda(e.Name, e.Refs...)
	}
	return e
}

// mapSubExprs rebuilds c with f applied to each sub-expression.
func mapSubExprs(c Cond, f func(Expr) Expr) Cond {
	switch c := c.(type) {
	case *Rel:
		return &Rel{Name: c.Name, Args: append([]Ref(nil), c.Args...)}
	case *Neg:
		return &Neg{DRS: f(c.DRS)}
	case *Box:
		return &Box{DRS: f(c.DRS)}
	case *Diamond:
		return &Diamond{DRS: f(c.DRS)}
	case *Prop:
		return &Prop{Ref: c.Ref, DRS: f(c.DRS)}
	case *Or:
		return &Or{Left: f(c.Left), Right: f(c.Right)}
	case *Imp:
		return &Imp{Antecedent: f(c.Antecedent), Consequent: f(c.Consequent)}
	}
	return c
}

// SimplifyProps inlines every proposition whose box declares exactly one
// referent: that referent is renamed to the proposition referent and the
// box's conditions replace the Prop condition.
func SimplifyProps(e Expr) Expr {
	d, ok := e.(*DRS)
	if !ok {
		return e
	}
	var conds []Cond
	for _, c := range d.Conds {
		p, ok := c.(*Prop)
		if !ok {
			conds = append(conds, mapSubExprs(c, SimplifyProps))
			continue
		}
		inner, ok := SimplifyProps(p.DRS).(*DRS)
		if !ok || len(inner.Universe) != 1 {
			conds = append(conds, &Prop{Ref: p.Ref, DRS: SimplifyProps(p.DRS)})
			continue
		}
		r := inner.Universe[0]
		inner = RenameAll(inner, Renaming{{From: r, To: p.Ref}}).(*DRS)
		conds = append(conds, inner.Conds...)
	}
	return NewDRS(d.Universe, conds...)
}
