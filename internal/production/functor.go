package production

import (
	"fmt"
	"strings"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
)

// State is the saturation state of a functor.
type State int

const (
	// StateEmpty has scopes but no body yet.
	StateEmpty State = iota
	// StateCurried needs more than one argument.
	StateCurried
	// StateSaturatable needs exactly one argument.
	StateSaturatable
	// StateSaturated is reported for the DrsProduction an application yields.
	StateSaturated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateCurried:
		return "curried"
	case StateSaturatable:
		return "saturatable"
	case StateSaturated:
		return "saturated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FunctorProduction is a curried DRS-valued function. Scope i binds the
// referents for the atoms of the i-th argument consumed, so scope 0 matches
// the category's argument. The body is the meaning once every scope is
// saturated.
type FunctorProduction struct {
	cat    ccg.Category
	scopes [][]drt.Ref
	body   *DrsProduction
	// negate wraps the next argument's meaning in a negation.
	negate bool
}

// NewFunctor builds a functor with one scope per argument of cat. Each
// scope must hold one referent per atom of its argument.
func NewFunctor(cat ccg.Category, scopes [][]drt.Ref, body *DrsProduction) (*FunctorProduction, error) {
	if !cat.IsFunctor() {
		return nil, fmt.Errorf("%w: category %s", ErrNotFunctor, cat)
	}
	groups := cat.ScopeAtoms()
	if len(scopes) != len(groups)-1 {
		return nil, fmt.Errorf("%w: %s needs %d scopes, got %d", ErrArityMismatch, cat, len(groups)-1, len(scopes))
	}
	for i, s := range scopes {
		if len(s) != len(groups[i]) {
			return nil, fmt.Errorf("%w: %s scope %d needs %d referents, got %d", ErrArityMismatch, cat, i, len(groups[i]), len(s))
		}
	}
	f := &FunctorProduction{cat: cat, scopes: cloneScopes(scopes)}
	if body != nil {
		f.body = body.WithCategory(finalResult(cat))
	}
	return f, nil
}

func cloneScopes(scopes [][]drt.Ref) [][]drt.Ref {
	out := make([][]drt.Ref, len(scopes))
	for i, s := range scopes {
		out[i] = append([]drt.Ref(nil), s...)
	}
	return out
}

func finalResult(c ccg.Category) ccg.Category {
	for c.IsFunctor() {
		c = c.Result()
	}
	return c
}

// Push supplies the body of an empty functor.
func (f *FunctorProduction) Push(body *DrsProduction) (*FunctorProduction, error) {
	if f.body != nil {
		return nil, fmt.Errorf("%w: functor %s already has a body", ErrArityMismatch, f.cat)
	}
	c := f.clone()
	c.body = body.WithCategory(finalResult(f.cat))
	return c, nil
}

func (f *FunctorProduction) clone() *FunctorProduction {
	return &FunctorProduction{cat: f.cat, scopes: cloneScopes(f.scopes), body: f.body, negate: f.negate}
}

// Negate returns a copy that negates the meaning of its next argument.
func (f *FunctorProduction) Negate() *FunctorProduction {
	c := f.clone()
	c.negate = true
	return c
}

// IsNegated reports whether the next argument will be negated.
func (f *FunctorProduction) IsNegated() bool { return f.negate }

// WithCategory relabels f. The new category must have the same scope shape.
func (f *FunctorProduction) WithCategory(cat ccg.Category) (*FunctorProduction, error) {
	groups := cat.ScopeAtoms()
	if !cat.IsFunctor() || len(groups) != len(f.scopes)+1 {
		return nil, fmt.Errorf("%w: cannot relabel %s as %s", ErrArityMismatch, f.cat, cat)
	}
	for i, s := range f.scopes {
		if len(groups[i]) != len(s) {
			return nil, fmt.Errorf("%w: cannot relabel %s as %s", ErrArityMismatch, f.cat, cat)
		}
	}
	c := f.clone()
	c.cat = cat
	if c.body != nil {
		c.body = c.body.WithCategory(finalResult(cat))
	}
	return c, nil
}

// State reports how many arguments remain.
func (f *FunctorProduction) State() State {
	switch {
	case f.body == nil:
		return StateEmpty
	case len(f.scopes) > 1:
		return StateCurried
	}
	return StateSaturatable
}

func (f *FunctorProduction) Category() ccg.Category { return f.cat }
func (f *FunctorProduction) IsFunctor() bool        { return true }
func (f *FunctorProduction) Body() *DrsProduction   { return f.body }

// Scopes returns the lambda scopes, argument first.
func (f *FunctorProduction) Scopes() [][]drt.Ref { return cloneScopes(f.scopes) }

func (f *FunctorProduction) IsArgLeft() bool  { return f.cat.IsArgLeft() }
func (f *FunctorProduction) IsArgRight() bool { return f.cat.IsArgRight() }

// IsCombinator reports whether the functor takes a functor argument.
func (f *FunctorProduction) IsCombinator() bool { return f.cat.IsCombinator() }

func flatten(scopes [][]drt.Ref) []drt.Ref {
	var out []drt.Ref
	for _, s := range scopes {
		out = append(out, s...)
	}
	return out
}

// unifyRefs lists referents in the order of cat.Atoms(): scope referents
// argument first, then the body's lambda referents.
func (f *FunctorProduction) unifyRefs(from int) []drt.Ref {
	out := flatten(f.scopes[from:])
	if f.body != nil {
		out = append(out, f.body.lambda...)
	}
	return out
}

func (f *FunctorProduction) LambdaRefs() []drt.Ref {
	return drt.Dedup(f.unifyRefs(0))
}

func (f *FunctorProduction) Variables() []drt.Ref {
	out := drt.Dedup(flatten(f.scopes))
	if f.body != nil {
		out = drt.Union(out, f.body.Variables())
	}
	return out
}

func (f *FunctorProduction) Universe() []drt.Ref {
	if f.body == nil {
		return nil
	}
	return f.body.Universe()
}

func (f *FunctorProduction) FreeRefs() []drt.Ref {
	if f.body == nil {
		return nil
	}
	return drt.Complement(f.body.FreeRefs(), flatten(f.scopes))
}

func (f *FunctorProduction) rename(rs drt.Renaming) Production {
	return f.renameFunctor(rs)
}

func (f *FunctorProduction) renameFunctor(rs drt.Renaming) *FunctorProduction {
	if len(rs) == 0 {
		return f
	}
	c := &FunctorProduction{cat: f.cat, scopes: make([][]drt.Ref, len(f.scopes)), negate: f.negate}
	for i, s := range f.scopes {
		c.scopes[i] = renameRefs(s, rs)
	}
	if f.body != nil {
		c.body = f.body.renameDRS(rs)
	}
	return c
}

// String shows the outermost scope first: λx.λy.[...].
func (f *FunctorProduction) String() string {
	var b strings.Builder
	if f.negate {
		b.WriteString(drt.SymNeg)
	}
	for i := len(f.scopes) - 1; i >= 0; i-- {
		b.WriteString("λ")
		b.WriteString(refList(f.scopes[i]))
		b.WriteString(".")
	}
	if f.body == nil {
		b.WriteString("_")
	} else {
		b.WriteString(f.body.String())
	}
	return b.String()
}

// PropProduction wraps its argument in a proposition: [p| p: A].
type PropProduction struct {
	cat ccg.Category
	ref drt.Ref
}

// NewPropProduction returns the proposition functor binding ref.
func NewPropProduction(cat ccg.Category, ref drt.Ref) *PropProduction {
	return &PropProduction{cat: cat, ref: ref}
}

func (p *PropProduction) Category() ccg.Category { return p.cat }
func (p *PropProduction) Variables() []drt.Ref   { return []drt.Ref{p.ref} }
func (p *PropProduction) Universe() []drt.Ref    { return []drt.Ref{p.ref} }
func (p *PropProduction) FreeRefs() []drt.Ref    { return nil }
func (p *PropProduction) LambdaRefs() []drt.Ref  { return []drt.Ref{p.ref} }
func (p *PropProduction) IsFunctor() bool        { return true }

func (p *PropProduction) rename(rs drt.Renaming) Production {
	return &PropProduction{cat: p.cat, ref: rs.Apply(p.ref)}
}

func (p *PropProduction) String() string {
	return fmt.Sprintf("[%s| %s: *]", p.ref, p.ref)
}

// Apply wraps d. With removeUnary set and a single referent in d's
// universe, that referent is renamed to the proposition referent instead.
func (p *PropProduction) Apply(d *DrsProduction, removeUnary bool) *DrsProduction {
	cat := p.cat
	if cat.IsFunctor() {
		cat = cat.Result()
	}
	if removeUnary && len(d.Universe()) == 1 {
		r := d.renameDRS(drt.Renaming{{From: d.Universe()[0], To: p.ref}})
		r = r.WithLambda([]drt.Ref{p.ref})
		r.cat = cat
		return r
	}
	drs := drt.NewDRS([]drt.Ref{p.ref}, &drt.Prop{Ref: p.ref, DRS: d.drs})
	return &DrsProduction{drs: drs, cat: cat, lambda: []drt.Ref{p.ref}}
}
