package ccg

import "strings"

// Atoms flattens c into atoms in consumption order: a functor lists its
// argument's atoms before its result's.
func (c Category) Atoms() []Category {
	return c.appendAtoms(nil)
}

func (c Category) appendAtoms(out []Category) []Category {
	switch {
	case c.IsFunctor():
		out = c.arg.appendAtoms(out)
		return c.result.appendAtoms(out)
	case c.IsAtom():
		return append(out, c)
	}
	return out
}

// ScopeAtoms groups atoms by functor scope: the atoms of the argument,
// then of result.argument and so on, ending with the final result atom.
// Each group matches the lambda referents bound at that scope.
func (c Category) ScopeAtoms() [][]Category {
	if c.IsEmpty() {
		return nil
	}
	var out [][]Category
	cat := c
	for cat.IsFunctor() {
		out = append(out, cat.arg.Atoms())
		cat = *cat.result
	}
	return append(out, []Category{cat})
}

// ExtractAtoms returns ScopeAtoms when grouped, otherwise Atoms as a single
// group.
func (c Category) ExtractAtoms(grouped bool) [][]Category {
	if grouped {
		return c.ScopeAtoms()
	}
	if c.IsEmpty() {
		return nil
	}
	return [][]Category{c.Atoms()}
}

// Slashes lists functor slashes in the same order as Atoms.
func (c Category) Slashes() string {
	var b strings.Builder
	c.writeSlashes(&b)
	return b.String()
}

func (c Category) writeSlashes(b *strings.Builder) {
	if !c.IsFunctor() {
		return
	}
	c.arg.writeSlashes(b)
	b.WriteByte(byte(c.slash))
	c.result.writeSlashes(b)
}

// Arity is the number of arguments a category takes before it saturates.
func (c Category) Arity() int {
	n := 0
	for cat := c; cat.IsFunctor(); cat = *cat.result {
		n++
	}
	return n
}

// nominal reports the atoms PP, NP, N and S[adj], which stand for one
// another in unification.
func nominal(a Category) bool {
	switch a.base {
	case "PP", "NP", "N":
		return true
	case "S":
		return a.feature == "adj"
	}
	return false
}

// CanUnifyAtom reports whether two atoms may stand for one another.
// Nominal atoms unify with each other; S atoms unify when either side is
// bare or the features are to/b or dcl/em. [conj] markers are ignored.
func CanUnifyAtom(a, b Category) bool {
	if !a.IsAtom() || !b.IsAtom() {
		return false
	}
	a, b = a.RemoveConjFeature(), b.RemoveConjFeature()
	if a.Equal(b) {
		return true
	}
	if nominal(a) && nominal(b) {
		return true
	}
	if strings.HasPrefix(a.base, "N") && strings.HasPrefix(b.base, "N") {
		return true
	}
	if a.base != "S" || b.base != "S" {
		return false
	}
	if a.feature == "" || b.feature == "" {
		return true
	}
	switch a.feature + "/" + b.feature {
	case "to/b", "b/to", "dcl/em", "em/dcl":
		return true
	}
	return false
}

// CanUnify reports whether two categories of the same shape unify atom by
// atom with matching slashes.
func (c Category) CanUnify(o Category) bool {
	if !c.IsFunctor() || !o.IsFunctor() {
		return CanUnifyAtom(c, o)
	}
	fa, ga := c.ScopeAtoms(), o.ScopeAtoms()
	if len(fa) != len(ga) {
		return false
	}
	for i := range fa {
		if len(fa[i]) != len(ga[i]) {
			return false
		}
		for j := range fa[i] {
			if !CanUnifyAtom(fa[i][j], ga[i][j]) {
				return false
			}
		}
	}
	return c.Slashes() == o.Slashes()
}

// mapAtoms rebuilds c with f applied to every atom. Functor [conj]
// markers are dropped.
func (c Category) mapAtoms(f func(Category) Category) Category {
	switch {
	case c.IsFunctor():
		return Combine(c.result.mapAtoms(f), c.slash, c.arg.mapAtoms(f))
	case c.IsAtom():
		return f(c)
	}
	return c
}

// RemoveFeatures strips every atom feature.
func (c Category) RemoveFeatures() Category {
	return c.mapAtoms(func(a Category) Category { return Atom(a.base, "") })
}

// RemoveConjFeature strips [conj] markers at every level.
func (c Category) RemoveConjFeature() Category {
	return c.mapAtoms(func(a Category) Category { return Atom(a.base, a.feature) })
}

// Simplify canonicalises a category before rule lookup: [conj] markers
// go, NP[nb] loses its feature, S loses every feature, and a bare N
// becomes NP.
func (c Category) Simplify() Category {
	return c.mapAtoms(func(a Category) Category {
		switch {
		case a.base == "NP" && a.feature == "nb":
			return NP
		case a.base == "S":
			return S
		case a.base == "N" && a.feature == "":
			return NP
		}
		return Atom(a.base, a.feature)
	})
}

// DRSSignature folds atoms onto the template alphabet: S[adj], NP and N
// become T, PP becomes Z, other S atoms become S and conj is kept.
func (c Category) DRSSignature() Category {
	return c.mapAtoms(func(a Category) Category {
		switch a.base {
		case "S":
			if a.feature == "adj" {
				return Atom("T", "")
			}
			return S
		case "NP", "N":
			return Atom("T", "")
		case "PP":
			return Atom("Z", "")
		}
		return Atom(a.base, a.feature)
	})
}
