package production

import (
	"fmt"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
)

// Options tunes argument binding.
type Options uint8

const (
	// RemoveUnaryProps binds a single-referent argument directly instead of
	// wrapping it in a proposition.
	RemoveUnaryProps Options = 1 << iota
)

var propCategory = ccg.Combine(ccg.PP, ccg.Forward, ccg.NP)

// bindRefs maps the g referents onto the f referents at the same position
// when their atoms unify. Pairs declared on both sides stay apart.
func bindRefs(fa, ga []ccg.Category, frefs, grefs, fu, gu []drt.Ref) drt.Renaming {
	n := min(len(frefs), len(grefs))
	checkAtoms := len(fa) == len(ga) && len(fa) >= n
	var rs drt.Renaming
	for i := range n {
		if checkAtoms && !ccg.CanUnifyAtom(fa[i], ga[i]) {
			continue
		}
		if grefs[i] == frefs[i] {
			continue
		}
		if drt.ContainsRef(gu, grefs[i]) && drt.ContainsRef(fu, frefs[i]) {
			continue
		}
		if _, ok := rs.Lookup(grefs[i]); ok {
			continue
		}
		rs = append(rs, drt.Rename{From: grefs[i], To: frefs[i]})
	}
	return rs
}

func (f *FunctorProduction) requireBody() error {
	if f.body == nil {
		return fmt.Errorf("%w: functor %s has no body", ErrArityMismatch, f.cat)
	}
	return nil
}

// reduce merges items under f's body lambda and builds the functor left
// with scopes, or the saturated body when none remain.
func (f *FunctorProduction) reduce(cat ccg.Category, scopes [][]drt.Ref, items ...*DrsProduction) (Production, error) {
	body, err := unifyWith(f.body.cat, f.body.lambda, items...)
	if err != nil {
		return nil, err
	}
	if len(scopes) == 0 {
		return body.WithCategory(cat), nil
	}
	return &FunctorProduction{cat: cat, scopes: cloneScopes(scopes), body: body.WithCategory(finalResult(cat))}, nil
}

// surface orders the bodies of f and g as their words appear.
func surface(fLeft bool, f, g *DrsProduction) []*DrsProduction {
	if fLeft {
		return []*DrsProduction{f, g}
	}
	return []*DrsProduction{g, f}
}

// Apply consumes the outermost argument of f. The result's category is
// f's result category.
func (f *FunctorProduction) Apply(g Production, opts Options) (Production, error) {
	if err := f.requireBody(); err != nil {
		return nil, err
	}
	switch g := g.(type) {
	case *FunctorProduction:
		return f.applyFunctor(g)
	case *PropProduction:
		return nil, fmt.Errorf("%w: cannot apply %s to a proposition functor", ErrArityMismatch, f.cat)
	}
	gd, err := Unify(g)
	if err != nil {
		return nil, err
	}

	f = disjoint(f, gd).(*FunctorProduction)
	flr := f.scopes[0]
	glr := gd.bindingRefs()
	if len(flr) == 1 && len(glr) != 1 {
		gd = NewPropProduction(propCategory, flr[0]).Apply(gd, opts&RemoveUnaryProps != 0)
	} else {
		rs := bindRefs(f.cat.Argument().Atoms(), gd.cat.Atoms(), flr, glr, f.body.Universe(), gd.Universe())
		gd = gd.renameDRS(rs)
	}
	if ors := drt.Intersect(gd.Universe(), f.body.Universe()); len(ors) != 0 {
		nrs := drt.NewRefs(ors, drt.Union(gd.Variables(), f.Variables()))
		gd = gd.renameDRS(drt.Zip(ors, nrs))
	}
	return f.reduceNegated(surface(f.IsArgRight(), f.body, gd))
}

// applyFunctor applies a combinator to a functor argument. The argument's
// scopes are bound to f's outermost scope.
func (f *FunctorProduction) applyFunctor(g *FunctorProduction) (Production, error) {
	if err := g.requireBody(); err != nil {
		return nil, err
	}
	if f.IsArgLeft() {
		f = disjoint(f, g).(*FunctorProduction)
	} else {
		g = disjoint(g, f).(*FunctorProduction)
	}
	flr := f.scopes[0]
	glr := g.unifyRefs(0)
	if len(flr) != len(glr) {
		return nil, fmt.Errorf("%w: %s cannot take %s", ErrArityMismatch, f.cat, g.cat)
	}
	g = g.renameFunctor(bindRefs(f.cat.Argument().Atoms(), g.cat.Atoms(), flr, glr, f.body.Universe(), g.body.Universe()))
	if ors := drt.Intersect(g.Universe(), f.Universe()); len(ors) != 0 {
		nrs := drt.NewRefs(ors, drt.Union(g.Variables(), f.Variables()))
		g = g.renameFunctor(drt.Zip(ors, nrs))
	}
	return f.reduceNegated(surface(f.IsArgRight(), f.body, g.body))
}

// reduceNegated reduces f by one scope. A negated f puts the combined
// meaning of f and its argument under the negation.
func (f *FunctorProduction) reduceNegated(items []*DrsProduction) (Production, error) {
	if f.negate {
		d, err := unifyWith(f.body.cat, f.body.lambda, items...)
		if err != nil {
			return nil, err
		}
		items = []*DrsProduction{negated(d)}
	}
	return f.reduce(f.cat.Result(), f.scopes[1:], items...)
}

// negated wraps d's box in a negation. The lambda referents are kept so
// an enclosing functor can still bind them.
func negated(d *DrsProduction) *DrsProduction {
	return d.WithDRS(drt.NewDRS(nil, &drt.Neg{DRS: d.drs}))
}

// ApplyNullLeft saturates a left argument with a referent introduced on
// the spot, as needed for imperatives.
func (f *FunctorProduction) ApplyNullLeft(opts Options) (Production, error) {
	if err := f.requireBody(); err != nil {
		return nil, err
	}
	if !f.IsArgLeft() {
		return nil, fmt.Errorf("%w: %s does not take a left argument", ErrArityMismatch, f.cat)
	}
	refs := f.scopes[0]
	d := NewDrsProduction(drt.NewDRS(refs), ccg.NP, refs...)
	if arg := f.cat.Argument(); arg.IsAtom() {
		d.cat = arg
	}
	return f.Apply(d, opts)
}

// Compose implements X|Y Y|Z => X|Z for f = X|Y and g = Y|Z, in forward,
// backward and crossing forms.
func (f *FunctorProduction) Compose(g *FunctorProduction) (Production, error) {
	return f.compose(g, 1)
}

// GeneralizedCompose implements X|Y (Y|Z)|W => (X|Z)|W.
func (f *FunctorProduction) GeneralizedCompose(g *FunctorProduction) (Production, error) {
	return f.compose(g, 2)
}

func (f *FunctorProduction) compose(g *FunctorProduction, depth int) (Production, error) {
	if err := f.requireBody(); err != nil {
		return nil, err
	}
	if err := g.requireBody(); err != nil {
		return nil, err
	}
	if len(g.scopes) < depth {
		return nil, fmt.Errorf("%w: cannot compose %s with %s", ErrArityMismatch, f.cat, g.cat)
	}

	slashes := make([]ccg.Slash, depth)
	args := make([]ccg.Category, depth)
	y := g.cat
	for i := range depth {
		slashes[i], args[i] = y.Slash(), y.Argument()
		y = y.Result()
	}
	cat := f.cat.Result()
	for i := depth - 1; i >= 0; i-- {
		cat = ccg.Combine(cat, slashes[i], args[i])
	}

	if f.IsArgLeft() {
		f = disjoint(f, g).(*FunctorProduction)
	} else {
		g = disjoint(g, f).(*FunctorProduction)
	}
	fy := f.scopes[0]
	gy := g.unifyRefs(depth)
	if len(fy) != len(gy) {
		return nil, fmt.Errorf("%w: cannot compose %s with %s", ErrArityMismatch, f.cat, g.cat)
	}
	g = g.renameFunctor(bindRefs(f.cat.Argument().Atoms(), y.Atoms(), fy, gy, f.body.Universe(), g.body.Universe()))

	scopes := append(cloneScopes(g.scopes[:depth]), f.scopes[1:]...)
	p, err := f.reduce(cat, scopes, surface(f.IsArgRight(), f.body, g.body)...)
	if err != nil {
		return nil, err
	}
	// A pending negation moves to the argument the composite takes next.
	if r, ok := p.(*FunctorProduction); ok && (f.negate || g.negate) {
		r.negate = true
	}
	return p, nil
}

// Substitute implements (X|Y)|Z Y|Z => X|Z for f = (X|Y)|Z and g = Y|Z.
func (f *FunctorProduction) Substitute(g *FunctorProduction) (Production, error) {
	if err := f.requireBody(); err != nil {
		return nil, err
	}
	if err := g.requireBody(); err != nil {
		return nil, err
	}
	if len(f.scopes) < 2 {
		return nil, fmt.Errorf("%w: %s cannot substitute", ErrArityMismatch, f.cat)
	}
	xy := f.cat.Result()
	cat := ccg.Combine(xy.Result(), g.cat.Slash(), g.cat.Argument())

	fLeft := xy.IsArgRight()
	if fLeft {
		f = disjoint(f, g).(*FunctorProduction)
	} else {
		g = disjoint(g, f).(*FunctorProduction)
	}
	fz, fy := f.scopes[0], f.scopes[1]
	gz, gy := g.scopes[0], g.unifyRefs(1)
	if len(fy) != len(gy) || len(fz) != len(gz) {
		return nil, fmt.Errorf("%w: cannot substitute %s into %s", ErrArityMismatch, g.cat, f.cat)
	}
	fu, gu := f.body.Universe(), g.body.Universe()
	rs := bindRefs(xy.Argument().Atoms(), g.cat.Result().Atoms(), fy, gy, fu, gu)
	for _, r := range bindRefs(f.cat.Argument().Atoms(), g.cat.Argument().Atoms(), fz, gz, fu, gu) {
		if _, ok := rs.Lookup(r.From); !ok {
			rs = append(rs, r)
		}
	}
	g = g.renameFunctor(rs)

	scopes := append([][]drt.Ref{fz}, f.scopes[2:]...)
	return f.reduce(cat, scopes, surface(fLeft, f.body, g.body)...)
}

// TypeRaise fills a type-raising template T|(T|X) with the meaning of X.
// The template's X referents are bound to the argument's referents.
func (f *FunctorProduction) TypeRaise(g Production, opts Options) (*FunctorProduction, error) {
	if err := f.requireBody(); err != nil {
		return nil, err
	}
	if !f.cat.IsTypeRaised() {
		return nil, fmt.Errorf("%w: %s is not type raised", ErrArityMismatch, f.cat)
	}
	if g.IsFunctor() {
		return nil, fmt.Errorf("%w: cannot type raise functor %s", ErrArityMismatch, g.Category())
	}
	gd, err := Unify(g)
	if err != nil {
		return nil, err
	}
	f = disjoint(f, gd).(*FunctorProduction)

	ft := f.unifyRefs(1)
	var fx []drt.Ref
	for _, r := range f.scopes[0] {
		if !drt.ContainsRef(ft, r) && !drt.ContainsRef(fx, r) {
			fx = append(fx, r)
		}
	}
	glr := gd.bindingRefs()
	switch {
	case len(fx) == len(glr):
		f = f.renameFunctor(drt.Zip(fx, glr))
	case len(fx) == 1:
		gd = NewPropProduction(propCategory, fx[0]).Apply(gd, opts&RemoveUnaryProps != 0)
	default:
		return nil, fmt.Errorf("%w: cannot type raise %s to %s", ErrArityMismatch, g.Category(), f.cat)
	}
	body := gd.WithLambda(f.body.lambda).WithCategory(finalResult(f.cat))
	return &FunctorProduction{cat: f.cat, scopes: cloneScopes(f.scopes), body: body}, nil
}

// Side selects which conjunct's lambda referents survive a conjunction.
type Side int

const (
	LeftLambdas Side = iota
	RightLambdas
)

// Conjoin coordinates two productions of like category. Functor scopes are
// shared; the bodies are merged, or joined in a disjunction when
// disjunction is set and the conjuncts are sentential. Nominal conjuncts
// are always merged: their referents must stay declared in the box that
// binds them.
func Conjoin(f, g Production, side Side, disjunction bool) (Production, error) {
	fc, gc := f.Category(), g.Category()
	if !fc.RemoveFeatures().Equal(gc.RemoveFeatures()) && !fc.CanUnify(gc) {
		return nil, fmt.Errorf("%w: cannot conjoin %s with %s", ErrArityMismatch, fc, gc)
	}
	disjunction = disjunction && sentential(fc)
	if ff, ok := f.(*FunctorProduction); ok {
		gf, ok := g.(*FunctorProduction)
		if !ok {
			return nil, fmt.Errorf("%w: cannot conjoin functor %s with %s", ErrArityMismatch, fc, gc)
		}
		return conjoinFunctors(ff, gf, side, disjunction)
	}
	if g.IsFunctor() {
		return nil, fmt.Errorf("%w: cannot conjoin %s with functor %s", ErrArityMismatch, fc, gc)
	}
	fd, err := Unify(f)
	if err != nil {
		return nil, err
	}
	gd, err := Unify(g)
	if err != nil {
		return nil, err
	}
	fd = disjoint(fd, gd).(*DrsProduction)
	lambda := fd.lambda
	if side == RightLambdas && len(gd.lambda) == len(fd.lambda) {
		lambda = gd.lambda
	}
	if disjunction {
		return disjoin(fd.cat, lambda, fd, gd), nil
	}
	return unifyWith(fd.cat, lambda, fd, gd)
}

func conjoinFunctors(f, g *FunctorProduction, side Side, disjunction bool) (Production, error) {
	if err := f.requireBody(); err != nil {
		return nil, err
	}
	if err := g.requireBody(); err != nil {
		return nil, err
	}
	if len(f.scopes) != len(g.scopes) {
		return nil, fmt.Errorf("%w: cannot conjoin %s with %s", ErrArityMismatch, f.cat, g.cat)
	}
	for i := range f.scopes {
		if len(f.scopes[i]) != len(g.scopes[i]) {
			return nil, fmt.Errorf("%w: cannot conjoin %s with %s", ErrArityMismatch, f.cat, g.cat)
		}
	}
	f = disjoint(f, g).(*FunctorProduction)
	fr, gr := flatten(f.scopes), flatten(g.scopes)
	fa, ga := f.cat.Atoms(), g.cat.Atoms()
	g = g.renameFunctor(bindRefs(fa[:len(fr)], ga[:len(gr)], fr, gr, nil, nil))

	lambda := f.body.lambda
	if side == RightLambdas {
		lambda = g.body.lambda
	}
	var body *DrsProduction
	if disjunction {
		body = disjoin(f.body.cat, lambda, f.body, g.body)
	} else {
		var err error
		if body, err = unifyWith(f.body.cat, lambda, f.body, g.body); err != nil {
			return nil, err
		}
	}
	return &FunctorProduction{cat: f.cat, scopes: cloneScopes(f.scopes), body: body}, nil
}

// sentential reports categories whose final result is an S.
func sentential(c ccg.Category) bool { return finalResult(c).Base() == "S" }

func disjoin(cat ccg.Category, lambda []drt.Ref, a, b *DrsProduction) *DrsProduction {
	drs := drt.NewDRS(nil, &drt.Or{Left: a.drs, Right: b.drs})
	return &DrsProduction{drs: drs, cat: cat, lambda: append([]drt.Ref(nil), lambda...)}
}
