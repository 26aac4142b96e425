package drt

// Expr is a DRS expression: a *DRS box, a *Merge or a *Lambda.
// Every expression carries a non-owning pointer to the expression that
// encloses it. The outermost expression has no parent.
type Expr interface {
	Parent() Expr
	setParent(Expr)
	drsExpr() // Sealed
}

// Cond is a DRS condition.
type Cond interface {
	drsCond() // Sealed
}

// DRS is a box: a universe of referents and a list of conditions.
type DRS struct {
	Universe []Ref
	Conds    []Cond
	parent   Expr
}

// Merge is an unresolved merge of two expressions.
type Merge struct {
	Left   Expr
	Right  Expr
	parent Expr
}

// Lambda is a placeholder for a DRS that has not been supplied yet.
type Lambda struct {
	Name   string
	Refs   []Ref
	parent Expr
}

func (d *DRS) Parent() Expr    { return d.parent }
func (m *Merge) Parent() Expr  { return m.parent }
func (l *Lambda) Parent() Expr { return l.parent }

func (d *DRS) setParent(p Expr)    { d.parent = p }
func (m *Merge) setParent(p Expr)  { m.parent = p }
func (l *Lambda) setParent(p Expr) { l.parent = p }

func (*DRS) drsExpr()    {}
func (*Merge) drsExpr()  {}
func (*Lambda) drsExpr() {}

// Rel is an atomic predicate.
type Rel struct {
	Name string
	Args []Ref
}

// Neg is a negated sub-DRS.
type Neg struct {
	DRS Expr
}

// Imp is an implication. The antecedent is accessible from the consequent.
type Imp struct {
	Antecedent Expr
	Consequent Expr
}

// Or is a disjunction. Neither side is accessible from the other.
type Or struct {
	Left  Expr
	Right Expr
}

// Prop names a sub-DRS with a referent.
type Prop struct {
	Ref Ref
	DRS Expr
}

// Box is the necessity operator.
type Box struct {
	DRS Expr
}

// Diamond is the possibility operator.
type Diamond struct {
	DRS Expr
}

func (*Rel) drsCond()     {}
func (*Neg) drsCond()     {}
func (*Imp) drsCond()     {}
func (*Or) drsCond()      {}
func (*Prop) drsCond()    {}
func (*Box) drsCond()     {}
func (*Diamond) drsCond() {}

// NewDRS builds a box and adopts the sub-expressions of its conditions.
// Sub-expressions that already belong to another box are cloned first.
func NewDRS(universe []Ref, conds ...Cond) *DRS {
	d := &DRS{Universe: append([]Ref(nil), universe...)}
	d.Conds = make([]Cond, 0, len(conds))
	for _, c := range conds {
		d.Conds = append(d.Conds, adoptCond(d, c))
	}
	return d
}

// Empty returns the box with no referents and no conditions.
func Empty() *DRS {
	return &DRS{}
}

// NewMerge builds an unresolved merge node.
func NewMerge(a, b Expr) *Merge {
	m := &Merge{}
	m.Left = adopt(m, a)
	m.Right = adopt(m, b)
	return m
}

// NewLambda builds a placeholder.
func NewLambda(name string, refs ...Ref) *Lambda {
	return &Lambda{Name: name, Refs: append([]Ref(nil), refs...)}
}

// NewRel builds a relation.
func NewRel(name string, args ...Ref) *Rel {
	return &Rel{Name: name, Args: append([]Ref(nil), args...)}
}

// IsEmpty reports whether the box has no referents and no conditions.
func (d *DRS) IsEmpty() bool {
	return len(d.Universe) == 0 && len(d.Conds) == 0
}

// adopt makes e a child of p, cloning it when it already has another parent.
func adopt(p Expr, e Expr) Expr {
	if e == nil {
		return nil
	}
	if cur := e.Parent(); cur != nil && cur != p {
		e = Clone(e)
	}
	e.setParent(p)
	return e
}

func adoptCond(owner *DRS, c Cond) Cond {
	switch c := c.(type) {
	case *Rel:
		return &Rel{Name: c.Name, Args: append([]Ref(nil), c.Args...)}
	case *Neg:
		return &Neg{DRS: adopt(owner, c.DRS)}
	case *Box:
		return &Box{DRS: adopt(owner, c.DRS)}
	case *Diamond:
		return &Diamond{DRS: adopt(owner, c.DRS)}
	case *Prop:
		return &Prop{Ref: c.Ref, DRS: adopt(owner, c.DRS)}
	case *Or:
		return &Or{Left: adopt(owner, c.Left), Right: adopt(owner, c.Right)}
	case *Imp:
		a := adopt(owner, c.Antecedent)
		return &Imp{Antecedent: a, Consequent: adopt(a, c.Consequent)}
	}
	return c
}

// Clone deep-copies e. The copy has no parent; the parents of its
// descendants point into the copy.
func Clone(e Expr) Expr {
	switch e := e.(type) {
	case *DRS:
		d := &DRS{Universe: append([]Ref(nil), e.Universe...)}
		d.Conds = make([]Cond, len(e.Conds))
		for i, c := range e.Conds {
			d.Conds[i] = cloneCond(d, c)
		}
		return d
	case *Merge:
		m := &Merge{}
		m.Left = Clone(e.Left)
		m.Left.setParent(m)
		m.Right = Clone(e.Right)
		m.Right.setParent(m)
		return m
	case *Lambda:
		return NewLambda(e.Name, e.Refs...)
	}
	return e
}

func cloneChild(p Expr, e Expr) Expr {
	if e == nil {
		return nil
	}
	c := Clone(e)
	c.setParent(p)
	return c
}

func cloneCond(owner *DRS, c Cond) Cond {
	switch c := c.(type) {
	case *Rel:
		return &Rel{Name: c.Name, Args: append([]Ref(nil), c.Args...)}
	case *Neg:
		return &Neg{DRS: cloneChild(owner, c.DRS)}
	case *Box:
		return &Box{DRS: cloneChild(owner, c.DRS)}
	case *Diamond:
		return &Diamond{DRS: cloneChild(owner, c.DRS)}
	case *Prop:
		return &Prop{Ref: c.Ref, DRS: cloneChild(owner, c.DRS)}
	case *Or:
		return &Or{Left: cloneChild(owner, c.Left), Right: cloneChild(owner, c.Right)}
	case *Imp:
		a := cloneChild(owner, c.Antecedent)
		return &Imp{Antecedent: a, Consequent: cloneChild(a, c.Consequent)}
	}
	return c
}

// AccessibleFrom reports whether d lies on the parent chain starting at other.
func AccessibleFrom(d, other Expr) bool {
	for e := other; e != nil; e = e.Parent() {
		if e == d {
			return true
		}
	}
	return false
}

// subExprs returns the expressions directly held by a condition.
func subExprs(c Cond) []Expr {
	switch c := c.(type) {
	case *Neg:
		return []Expr{c.DRS}
	case *Box:
		return []Expr{c.DRS}
	case *Diamond:
		return []Expr{c.DRS}
	case *Prop:
		return []Expr{c.DRS}
	case *Or:
		return []Expr{c.Left, c.Right}
	case *Imp:
		return []Expr{c.Antecedent, c.Consequent}
	}
	return nil
}
