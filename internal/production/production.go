package production

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
)

var (
	// ErrArityMismatch is returned when two operands have incompatible shapes.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrNotFunctor is returned when an operation needs a functor operand.
	ErrNotFunctor = errors.New("production is not a functor")
	// ErrUnresolved is returned when a list still holds functors after unification.
	ErrUnresolved = errors.New("unresolved production")
)

// Production is a compile-time meaning: a *DrsProduction, a
// *FunctorProduction, a *PropProduction or a *ProductionList.
type Production interface {
	Category() ccg.Category
	// Variables lists every referent the production mentions.
	Variables() []drt.Ref
	Universe() []drt.Ref
	FreeRefs() []drt.Ref
	// LambdaRefs are the referents an application may bind.
	LambdaRefs() []drt.Ref
	IsFunctor() bool
	String() string

	rename(rs drt.Renaming) Production
}

// DrsProduction is a saturated meaning.
type DrsProduction struct {
	drs    *drt.DRS
	lambda []drt.Ref
	cat    ccg.Category
	proper bool
}

// NewDrsProduction wraps a resolved DRS.
func NewDrsProduction(d *drt.DRS, cat ccg.Category, lambda ...drt.Ref) *DrsProduction {
	if d == nil {
		d = drt.Empty()
	}
	return &DrsProduction{drs: d, cat: cat, lambda: append([]drt.Ref(nil), lambda...)}
}

func (d *DrsProduction) DRS() *drt.DRS          { return d.drs }
func (d *DrsProduction) Category() ccg.Category { return d.cat }
func (d *DrsProduction) Universe() []drt.Ref    { return d.drs.Universe }
func (d *DrsProduction) FreeRefs() []drt.Ref    { return drt.FreeRefs(d.drs) }
func (d *DrsProduction) LambdaRefs() []drt.Ref  { return d.lambda }
func (d *DrsProduction) IsFunctor() bool        { return false }
func (d *DrsProduction) IsEmpty() bool          { return d.drs.IsEmpty() }

// IsProperNoun reports whether the production came from proper noun leaves.
func (d *DrsProduction) IsProperNoun() bool { return d.proper }

func (d *DrsProduction) Variables() []drt.Ref {
	return drt.Union(drt.Variables(d.drs), d.lambda)
}

// IsProper reports whether every referent in the DRS is bound.
func (d *DrsProduction) IsProper() bool { return drt.IsProper(d.drs) }

// IsPure reports whether the DRS has no shadowed referents.
func (d *DrsProduction) IsPure() bool { return drt.IsPure(d.drs) }

func (d *DrsProduction) clone() *DrsProduction {
	c := *d
	c.lambda = append([]drt.Ref(nil), d.lambda...)
	return &c
}

// WithCategory returns a copy with the category replaced.
func (d *DrsProduction) WithCategory(cat ccg.Category) *DrsProduction {
	c := d.clone()
	c.cat = cat
	return c
}

// WithLambda returns a copy with the lambda referents replaced.
func (d *DrsProduction) WithLambda(refs []drt.Ref) *DrsProduction {
	c := d.clone()
	c.lambda = append([]drt.Ref(nil), refs...)
	return c
}

// WithDRS returns a copy carrying a different DRS.
func (d *DrsProduction) WithDRS(drs *drt.DRS) *DrsProduction {
	c := d.clone()
	c.drs = drs
	return c
}

// AsProperNoun returns a copy flagged as a proper noun.
func (d *DrsProduction) AsProperNoun() *DrsProduction {
	c := d.clone()
	c.proper = true
	return c
}

// Purify returns a copy with a pure DRS.
func (d *DrsProduction) Purify() *DrsProduction {
	return d.WithDRS(drt.Purify(d.drs).(*drt.DRS))
}

// bindingRefs are the lambda referents, or the universe when none are set.
func (d *DrsProduction) bindingRefs() []drt.Ref {
	if len(d.lambda) != 0 {
		return d.lambda
	}
	return d.drs.Universe
}

func (d *DrsProduction) rename(rs drt.Renaming) Production {
	return d.renameDRS(rs)
}

func (d *DrsProduction) renameDRS(rs drt.Renaming) *DrsProduction {
	if len(rs) == 0 {
		return d
	}
	c := d.clone()
	c.drs = drt.RenameAll(d.drs, rs).(*drt.DRS)
	c.lambda = renameRefs(d.lambda, rs)
	return c
}

func (d *DrsProduction) String() string {
	return drt.Show(d.drs, drt.Linear)
}

func renameRefs(refs []drt.Ref, rs drt.Renaming) []drt.Ref {
	out := make([]drt.Ref, len(refs))
	for i, r := range refs {
		out[i] = rs.Apply(r)
	}
	return out
}

// Unify reduces p to a single DrsProduction.
func Unify(p Production) (*DrsProduction, error) {
	switch p := p.(type) {
	case *DrsProduction:
		return p, nil
	case *ProductionList:
		u, err := p.Unify()
		if err != nil {
			return nil, err
		}
		if d, ok := u.(*DrsProduction); ok {
			return d, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, u)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnresolved, p)
}

// Recategorize labels p with cat. A functor keeps its scopes, so cat must
// have the same shape.
func Recategorize(p Production, cat ccg.Category) (Production, error) {
	switch p := p.(type) {
	case *DrsProduction:
		return p.WithCategory(cat), nil
	case *FunctorProduction:
		return p.WithCategory(cat)
	case *ProductionList:
		c := p.rename(nil).(*ProductionList)
		c.cat = cat
		return c, nil
	}
	return nil, fmt.Errorf("%w: cannot relabel %s as %s", ErrArityMismatch, p.Category(), cat)
}

// disjoint renames the variables of p that clash with q's.
func disjoint(p, q Production) Production {
	pv, qv := p.Variables(), q.Variables()
	ors := drt.Intersect(pv, qv)
	if len(ors) == 0 {
		return p
	}
	return p.rename(drt.Zip(ors, drt.NewRefs(ors, drt.Union(pv, qv))))
}

func refList(rs []drt.Ref) string {
	s := make([]string, len(rs))
	for i, r := range rs {
		s[i] = r.String()
	}
	return strings.Join(s, ",")
}
