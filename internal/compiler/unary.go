package compiler

import (
	"fmt"
	"slices"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
	"github.com/roach88/ccgdrs/internal/production"
)

// unaryRule rewrites a category into another during a unary type change.
// Tags shared between the two sides co-index their referents.
type unaryRule struct {
	result  taggedCategory
	operand taggedCategory
}

var unaryTable = [][2]string{
	{`N_1\N_1`, `S[pss]_2\NP_1`},
	{`N_1\N_1`, `S[adj]_2\NP_1`},
	{`N_1\N_1`, `S[dcl]_2\NP_1`},
	{`N_1\N_1`, `S[ng]_2\NP_1`},
	{`NP_1\NP_1`, `S[pss]_2\NP_1`},
	{`NP_1\NP_1`, `S[adj]_2\NP_1`},
	{`NP_1\NP_1`, `S[dcl]_2\NP_1`},
	{`NP_1\NP_1`, `S[ng]_2\NP_1`},
	{`NP_1\NP_1`, `S_2/NP_1`},
	{`S_1/S_1`, `S[to]_1\NP_2`},
	{`S_1/S_1`, `S[ng]_1\NP_2`},
	{`S_1/S_1`, `S[pss]_1\NP_2`},
	{`(S_1\NP_2)\(S_1\NP_2)`, `S[ng]_1\NP_2`},
	{`(S_1\NP_2)\(S_1\NP_2)`, `S[to]_1\NP_2`},
	{`NP_1`, `S[ng]_1\NP_2`},
	{`NP_1`, `N_1`},
}

// unaryRules is the parsed unaryTable.
var unaryRules = mustUnaryRules(unaryTable)

func mustUnaryRules(table [][2]string) []unaryRule {
	rules := make([]unaryRule, 0, len(table))
	for _, e := range table {
		r, err := parseTagged(e[0])
		if err != nil {
			panic(fmt.Sprintf("unary table: %v", err))
		}
		o, err := parseTagged(e[1])
		if err != nil {
			panic(fmt.Sprintf("unary table: %v", err))
		}
		rules = append(rules, unaryRule{result: r, operand: o})
	}
	return rules
}

// unaryRefs returns the referents of result\operand in Atoms order, or
// false when no rule covers the pair.
func unaryRefs(result, operand ccg.Category) ([]drt.Ref, bool) {
	cat := ccg.Combine(result, ccg.Backward, operand)
	atoms := cat.Atoms()
	for _, r := range unaryRules {
		if !r.result.matches(result) || !r.operand.matches(operand) {
			continue
		}
		tags := slices.Concat(r.operand.tags, r.result.tags)
		g := &refGen{}
		byTag := map[int]drt.Ref{}
		refs := make([]drt.Ref, len(tags))
		for i, tag := range tags {
			ref, ok := byTag[tag]
			if !ok {
				ref = g.next(atoms[i])
				byTag[tag] = ref
			}
			refs[i] = ref
		}
		return refs, true
	}
	// X|X applied to something that unifies with X.
	if result.IsModifier() && result.Result().CanUnify(operand) &&
		len(result.Result().Atoms()) == len(operand.Atoms()) {
		o := coindex(operand, &refGen{})
		return slices.Concat(o, o, o), true
	}
	return nil, false
}

// unaryTemplate builds the functor result\operand that performs a type
// change. Operand referents that the result does not mention are closed
// existentially unless op already declares them.
func unaryTemplate(result ccg.Category, op production.Production) (*production.FunctorProduction, error) {
	operand := op.Category()
	refs, ok := unaryRefs(result, operand)
	if !ok {
		return nil, &CompileError{
			Kind:     KindUnknownRule,
			Category: result.String(),
			Message:  fmt.Sprintf("no type change from %s", operand),
		}
	}
	t, err := newTemplate(ccg.Combine(result, ccg.Backward, operand), refs)
	if err != nil {
		return nil, err
	}
	opRefs := op.LambdaRefs()
	if f, ok := op.(*production.FunctorProduction); ok && f.Body() != nil {
		opRefs = slices.Concat(slices.Concat(f.Scopes()...), f.Body().LambdaRefs())
	}
	kept := append(slices.Concat(t.scopes[1:]...), t.final)
	var universe []drt.Ref
	for i, r := range t.scopes[0] {
		if drt.ContainsRef(kept, r) || drt.ContainsRef(universe, r) {
			continue
		}
		if i < len(opRefs) && drt.ContainsRef(op.Universe(), opRefs[i]) {
			continue
		}
		universe = append(universe, r)
	}
	body := production.NewDrsProduction(drt.NewDRS(universe), t.finalCat(), t.final)
	return production.NewFunctor(t.cat, t.scopes, body)
}
