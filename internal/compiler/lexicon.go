package compiler

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
	"github.com/roach88/ccgdrs/internal/production"
)

var (
	beForms   = wordSet("be", "is", "am", "are", "was", "were", "been", "being", "'s", "'re", "'m")
	negators  = wordSet("not", "n't", "never")
	articles  = wordSet("a", "an", "the", "some", "thy")
	punctTags = wordSet(",", ".", ":", ";", "``", "''", "-LRB-", "-RRB-", "LRB", "RRB", "LQU", "RQU", "#", "$")
)

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// lexeme is a leaf's word prepared for use as a relation name.
type lexeme struct {
	word   string // relation name
	lower  string
	pos    string
	proper bool
}

// newLexeme strips trailing sentence punctuation. Proper nouns are title
// cased, everything else is lower cased.
func newLexeme(leaf *ccg.Leaf) lexeme {
	w := strings.TrimRight(leaf.Word, "?.,:;")
	if w == "" {
		w = leaf.Word
	}
	lx := lexeme{lower: strings.ToLower(w), pos: leaf.POS}
	if leaf.POS == "NNP" || leaf.POS == "NNPS" {
		lx.word = cases.Title(language.English, cases.NoLower).String(w)
		lx.proper = true
	} else {
		lx.word = lx.lower
	}
	return lx
}

func (lx lexeme) isPunct() bool { return punctTags[lx.pos] }

func (lx lexeme) is(prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(lx.pos, p) {
			return true
		}
	}
	return false
}

func (lx lexeme) isPronoun() bool {
	return lx.pos == "PRP" || lx.pos == "PRP$" || lx.pos == "WP" || lx.pos == "WP$"
}

// lexical returns the meaning of a leaf: a DrsProduction for an atomic
// category, a FunctorProduction otherwise.
func (c *Compiler) lexical(leaf *ccg.Leaf) (production.Production, error) {
	lx := newLexeme(leaf)
	var (
		p   production.Production
		err error
	)
	if leaf.Cat.IsFunctor() {
		p, err = c.lexicalFunctor(leaf.Cat, lx)
	} else {
		p, err = c.lexicalAtom(leaf.Cat, lx)
	}
	if err != nil {
		var ce *CompileError
		if !errors.As(err, &ce) {
			ce = &CompileError{Kind: KindUnknownDrsSignature, Err: err}
		}
		ce.Category, ce.Word = leaf.Cat.String(), leaf.Word
		return nil, ce
	}
	return p, nil
}

func (c *Compiler) lexicalAtom(cat ccg.Category, lx lexeme) (production.Production, error) {
	if cat.IsEmpty() {
		return nil, fmt.Errorf("empty category")
	}
	if lx.isPunct() || cat.IsPunct() || cat.IsConj() {
		return production.NewDrsProduction(drt.Empty(), cat), nil
	}
	r := (&refGen{}).next(cat)
	if lx.isPronoun() {
		if d, ok := c.pronouns.instantiate(lx.lower, r); ok {
			d = drt.NewDRS(append([]drt.Ref{r}, d.Universe...), d.Conds...)
			return production.NewDrsProduction(d, cat, r), nil
		}
	}
	conds := []drt.Cond{drt.NewRel(lx.word, r)}
	proper := lx.proper
	switch {
	case lx.pos == "CD":
		conds = []drt.Cond{drt.NewRel("is.number", r), drt.NewRel(lx.word, r)}
	case lx.proper:
		if rel, ok := dateRelation(lx.word); ok {
			conds = append(conds, drt.NewRel("is.date", r), drt.NewRel(rel, r))
			proper = false
		}
	}
	d := production.NewDrsProduction(drt.NewDRS([]drt.Ref{r}, conds...), cat, r)
	if proper {
		d = d.AsProperNoun()
	}
	return d, nil
}

func (c *Compiler) lexicalFunctor(cat ccg.Category, lx lexeme) (production.Production, error) {
	t, err := lexicalTemplate(cat)
	if err != nil {
		return nil, err
	}
	arg, res := cat.Argument(), cat.Result()
	modifierShaped := sameShape(arg, res)

	switch {
	case lx.isPunct() || cat.IsConj():
		return t.functor(nil, false)

	case isRelative(cat) && (lx.is("WDT", "WP") || lx.lower == "that"):
		return t.functor(nil, false)

	case lx.isPronoun():
		d, ok := c.pronouns.instantiate(lx.lower, t.final)
		if !ok {
			return t.functor([]drt.Cond{drt.NewRel(lx.word, t.final)}, false)
		}
		return t.functorDRS(d, false)

	case lx.is("VB"):
		return c.verb(t, lx)

	case lx.pos == "MD":
		return t.functor([]drt.Cond{drt.NewRel(lx.word, t.final), drt.NewRel("event.modal", t.final)}, false)

	case lx.is("RB", "WRB"):
		if negators[lx.lower] {
			f, err := t.functor(nil, false)
			if err != nil {
				return nil, err
			}
			return f.Negate(), nil
		}
		return adverb(t, lx)

	case lx.pos == "POS":
		return t.functor([]drt.Cond{drt.NewRel("owns", t.scopes[0][0], t.final)}, false)

	case lx.pos == "IN" || lx.pos == "TO":
		if modifierShaped {
			return t.functor(nil, false)
		}
		return t.functor([]drt.Cond{drt.NewRel(lx.word, t.final, t.scopes[0][0])}, false)

	case lx.is("DT", "PDT", "WDT"):
		if articles[lx.lower] {
			return t.functor(nil, false)
		}
		return t.functor([]drt.Cond{drt.NewRel(lx.word, t.final)}, false)

	case lx.pos == "CD":
		return t.functor([]drt.Cond{drt.NewRel("is.number", t.final), drt.NewRel(lx.word, t.final)}, false)

	case lx.is("JJ"):
		return t.functor([]drt.Cond{drt.NewRel(lx.word, subject(t))}, false)

	case lx.proper:
		conds := []drt.Cond{drt.NewRel(lx.word, t.final)}
		if rel, ok := dateRelation(lx.word); ok {
			conds = append(conds, drt.NewRel("is.date", t.final), drt.NewRel(rel, t.final))
			return t.functor(conds, false)
		}
		return t.functor(conds, true)
	}
	return t.functor([]drt.Cond{drt.NewRel(lx.word, t.final)}, false)
}

// subject is the referent an adjective describes: the outermost argument
// of a predicative adjective, the final referent otherwise.
func subject(t template) drt.Ref {
	if t.finalCat().Base() == "S" && len(t.scopes) > 0 {
		return t.scopes[len(t.scopes)-1][0]
	}
	return t.final
}

// verb builds an event template. Auxiliaries share the event of their
// verb phrase argument and add at most a predicate on it.
func (c *Compiler) verb(t template, lx lexeme) (production.Production, error) {
	arg := t.cat.Argument()
	if arg.IsFunctor() && sameShape(arg, t.cat.Result()) {
		if !beForms[lx.lower] {
			return t.functor([]drt.Cond{drt.NewRel("event.verb."+lx.lower, t.final)}, false)
		}
		if !c.opts.Has(AddStatePredicates) {
			return t.functor(nil, false)
		}
		s := drt.NewRef("s1")
		d := drt.NewDRS([]drt.Ref{s},
			drt.NewRel(".STATE", s),
			drt.NewRel("event.agent", s, subject(t)))
		return t.functorDRS(d, false)
	}
	if !isEvent(t.finalCat()) {
		return t.functor([]drt.Cond{drt.NewRel(lx.word, t.final)}, false)
	}

	refs := t.ordered()
	e := refs[0]
	args := slices.Clone(refs[1:])
	slices.Reverse(args)
	conds := []drt.Cond{
		drt.NewRel("event", e),
		drt.NewRel("event.verb."+lx.lower, e),
	}
	for i, r := range args {
		conds = append(conds, drt.NewRel(roleName(i), e, r))
	}
	return t.functor(conds, false)
}

func roleName(i int) string {
	switch i {
	case 0:
		return "event.agent"
	case 1:
		return "event.theme"
	case 2:
		return "event.extra"
	}
	return fmt.Sprintf("event.extra.%d", i-1)
}

// adverb relates the modified referent to any referents the adverb takes
// on its own.
func adverb(t template, lx lexeme) (production.Production, error) {
	refs := []drt.Ref{t.final}
	later := slices.Concat(t.scopes[1:]...)
	for _, r := range t.scopes[0] {
		if r != t.final && !drt.ContainsRef(later, r) && !drt.ContainsRef(refs, r) {
			refs = append(refs, r)
		}
	}
	var name string
	switch len(refs) {
	case 1:
		name = "event.modifier."
	case 2:
		name = "event.attribute."
	default:
		name = "event.related."
	}
	return t.functor([]drt.Cond{drt.NewRel(name+lx.word, refs...)}, false)
}
