package compiler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
	"github.com/roach88/ccgdrs/internal/production"
)

// Compiler turns CCG derivations into DRSs. A Compiler holds only read-only
// tables after New returns and may be shared between goroutines.
type Compiler struct {
	opts        Options
	logger      *slog.Logger
	pronounText map[string]string
	pronouns    pronounTable
}

// New returns a Compiler configured by opts.
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{logger: discardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	p, err := newPronounTable(c.pronounText)
	if err != nil {
		return nil, err
	}
	c.pronouns = p
	return c, nil
}

// Options returns the compile flags in effect.
func (c *Compiler) Options() Options { return c.opts }

// CompileDerivation parses a derivation in CCGbank AUTO format and compiles
// it.
func (c *Compiler) CompileDerivation(text string) (*drt.DRS, error) {
	root, err := Parse(text)
	if err != nil {
		c.logger.Warn("derivation rejected", "kind", KindOf(err), "error", err)
		return nil, err
	}
	return c.Compile(root)
}

// Parse reads a derivation in CCGbank AUTO format. Failures are
// *CompileErrors of kind UnknownCategory or MalformedParseTree.
func Parse(text string) (ccg.Node, error) {
	root, err := ccg.ParseDerivation(text)
	if err != nil {
		return nil, fromParse(err)
	}
	return root, nil
}

// Compile returns the DRS for a derivation. The result is proper and pure.
func (c *Compiler) Compile(root ccg.Node) (*drt.DRS, error) {
	if root == nil {
		return nil, &CompileError{Kind: KindMalformedParseTree, Message: "empty derivation"}
	}
	r, err := c.node(root)
	if err == nil {
		var d *drt.DRS
		if d, err = c.finish(r.prod); err == nil {
			return d, nil
		}
	}
	c.logger.Warn("compile failed", "sentence", ccg.Sentence(root), "kind", KindOf(err), "error", err)
	return nil, err
}

// meaning is the compiled meaning of a subtree. conj records the
// coordinating word a conjunction marker carries up to its conjunct.
type meaning struct {
	prod production.Production
	conj string
}

func (c *Compiler) prodOpts() production.Options {
	if c.opts.Has(RemoveUnaryProps) {
		return production.RemoveUnaryProps
	}
	return 0
}

func (c *Compiler) node(n ccg.Node) (meaning, error) {
	switch n := n.(type) {
	case *ccg.Leaf:
		p, err := c.lexical(n)
		if err != nil {
			return meaning{}, err
		}
		m := meaning{prod: p}
		if n.Cat.IsAtom() && n.Cat.IsConj() {
			m.conj = newLexeme(n).lower
		}
		return m, nil
	case *ccg.Tree:
		switch len(n.Children) {
		case 1:
			child, err := c.node(n.Children[0])
			if err != nil {
				return meaning{}, err
			}
			return c.combine(n.Cat, child, meaning{})
		case 2:
			left, err := c.node(n.Children[0])
			if err != nil {
				return meaning{}, err
			}
			right, err := c.node(n.Children[1])
			if err != nil {
				return meaning{}, err
			}
			return c.combine(n.Cat, left, right)
		}
		return meaning{}, &CompileError{
			Kind:     KindMalformedParseTree,
			Category: n.Cat.String(),
			Message:  fmt.Sprintf("node has %d children", len(n.Children)),
		}
	}
	return meaning{}, &CompileError{Kind: KindMalformedParseTree, Message: fmt.Sprintf("unexpected node %T", n)}
}

// classify names the rule deriving cat from left and right. Declared
// categories are tried first, then their simplified forms.
func classify(left, right, cat ccg.Category) ccg.Rule {
	if r := ccg.GetRule(left, right, cat); r != ccg.RuleNone {
		return r
	}
	return ccg.GetRule(left.Simplify(), right.Simplify(), cat.Simplify())
}

func category(m meaning) ccg.Category {
	if m.prod == nil {
		return ccg.Empty
	}
	return m.prod.Category()
}

// combine applies the rule at a node with category cat. right is empty
// for unary nodes.
func (c *Compiler) combine(cat ccg.Category, left, right meaning) (meaning, error) {
	lc, rc := category(left), category(right)
	rule := classify(lc, rc, cat)
	c.logger.Debug("combine", "rule", rule, "left", lc, "right", rc, "result", cat)
	if rule == ccg.RuleNone {
		return meaning{}, &CompileError{
			Kind:     KindUnknownRule,
			Category: cat.String(),
			Message:  fmt.Sprintf("no rule combines %s and %s", lc, rc),
		}
	}

	out, err := c.dispatch(rule, cat, left, right)
	if err != nil {
		var ce *CompileError
		if !errors.As(err, &ce) {
			ce = fromProduction(err, cat)
		}
		if ce.Category == "" {
			ce.Category = cat.String()
		}
		return meaning{}, ce
	}

	if c.opts.Has(VerifySignatures) && !rule.IsTypeChange() && !rule.IsTypeRaise() {
		if got := out.prod.Category(); !matchesNode(got, cat) {
			return meaning{}, &CompileError{
				Kind:     KindUnknownRule,
				Category: cat.String(),
				Message:  fmt.Sprintf("%s derives %s", rule, got),
			}
		}
	}
	p, err := production.Recategorize(out.prod, cat)
	if err != nil {
		c.logger.Debug("category kept", "derived", out.prod.Category(), "node", cat)
		return out, nil
	}
	out.prod = p
	return out, nil
}

// matchesNode reports whether a derived category agrees with the node's
// declared category up to features.
func matchesNode(derived, node ccg.Category) bool {
	return derived.RemoveFeatures().Equal(node.RemoveFeatures()) ||
		derived.Simplify().Equal(node.Simplify()) ||
		derived.CanUnify(node)
}

func (c *Compiler) dispatch(rule ccg.Rule, cat ccg.Category, left, right meaning) (meaning, error) {
	keep := func(p production.Production, err error) (meaning, error) {
		return meaning{prod: p}, err
	}
	switch rule {
	case ccg.FA, ccg.RNUM:
		return keep(c.apply(left.prod, right.prod))
	case ccg.BA:
		return keep(c.apply(right.prod, left.prod))
	case ccg.FC, ccg.FX:
		return keep(compose(left.prod, right.prod, 1))
	case ccg.BC, ccg.BX:
		return keep(compose(right.prod, left.prod, 1))
	case ccg.GFC, ccg.GFX:
		return keep(compose(left.prod, right.prod, 2))
	case ccg.GBC, ccg.GBX:
		return keep(compose(right.prod, left.prod, 2))
	case ccg.FS, ccg.FXS:
		return keep(substitute(left.prod, right.prod))
	case ccg.BS, ccg.BXS:
		return keep(substitute(right.prod, left.prod))
	case ccg.FTR, ccg.BTR:
		return keep(c.typeRaise(cat, left.prod))
	case ccg.LP:
		if right.prod == nil {
			return meaning{}, &CompileError{Kind: KindMalformedParseTree, Message: "nothing follows the dropped operand"}
		}
		return meaning{prod: right.prod, conj: firstNonEmpty(left.conj, right.conj)}, nil
	case ccg.RP:
		return left, nil
	case ccg.RCONJ:
		p, err := production.Conjoin(left.prod, right.prod, production.LeftLambdas, isDisjunction(right.conj))
		return meaning{prod: p}, err
	case ccg.LCONJ:
		p, err := production.Conjoin(left.prod, right.prod, production.RightLambdas, isDisjunction(left.conj))
		return meaning{prod: p}, err
	case ccg.TCAtom:
		if right.prod != nil && (left.conj != "" || left.prod.Category().IsPunct()) {
			return meaning{prod: right.prod, conj: left.conj}, nil
		}
		return meaning{prod: left.prod, conj: left.conj}, nil
	case ccg.TCLUnary:
		return keep(c.typeChange(cat, left.prod))
	case ccg.TCRUnary:
		p, err := c.typeChange(cat, right.prod)
		return meaning{prod: p, conj: left.conj}, err
	case ccg.TCConj:
		return meaning{prod: right.prod, conj: left.conj}, nil
	}
	return meaning{}, &CompileError{Kind: KindUnknownRule, Message: fmt.Sprintf("rule %s is not supported", rule)}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func isDisjunction(conj string) bool { return conj == "or" || conj == "nor" }

func asFunctor(p production.Production) (*production.FunctorProduction, error) {
	f, ok := p.(*production.FunctorProduction)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a functor", production.ErrNotFunctor, p.Category())
	}
	return f, nil
}

func (c *Compiler) apply(f, g production.Production) (production.Production, error) {
	fp, err := asFunctor(f)
	if err != nil {
		return nil, err
	}
	return fp.Apply(g, c.prodOpts())
}

func compose(f, g production.Production, depth int) (production.Production, error) {
	fp, err := asFunctor(f)
	if err != nil {
		return nil, err
	}
	gp, err := asFunctor(g)
	if err != nil {
		return nil, err
	}
	if depth == 2 {
		return fp.GeneralizedCompose(gp)
	}
	return fp.Compose(gp)
}

func substitute(f, g production.Production) (production.Production, error) {
	fp, err := asFunctor(f)
	if err != nil {
		return nil, err
	}
	gp, err := asFunctor(g)
	if err != nil {
		return nil, err
	}
	return fp.Substitute(gp)
}

// typeRaise builds the raised form of g for a node of category cat.
func (c *Compiler) typeRaise(cat ccg.Category, g production.Production) (production.Production, error) {
	t, err := lexicalTemplate(cat)
	if err != nil {
		return nil, err
	}
	f, err := t.functor(nil, false)
	if err != nil {
		return nil, err
	}
	return f.TypeRaise(g, c.prodOpts())
}

// typeChange rewrites g to cat through the unary rule table.
func (c *Compiler) typeChange(cat ccg.Category, g production.Production) (production.Production, error) {
	if g == nil {
		return nil, &CompileError{Kind: KindMalformedParseTree, Message: "type change without operand"}
	}
	f, err := unaryTemplate(cat, g)
	if err != nil {
		return nil, err
	}
	return f.Apply(g, c.prodOpts())
}

// finish saturates pending left arguments and checks the final DRS.
func (c *Compiler) finish(p production.Production) (*drt.DRS, error) {
	for {
		f, ok := p.(*production.FunctorProduction)
		if !ok || !f.IsArgLeft() {
			break
		}
		var err error
		if p, err = f.ApplyNullLeft(c.prodOpts()); err != nil {
			return nil, fromProduction(err, f.Category())
		}
	}
	d, err := production.Unify(p)
	if err != nil {
		return nil, &CompileError{Kind: KindUnresolvedProduction, Category: p.Category().String(), Err: err}
	}
	if !d.Category().IsAtom() {
		return nil, &CompileError{
			Kind:     KindUnresolvedProduction,
			Category: d.Category().String(),
			Message:  "derivation does not saturate",
		}
	}
	out := d.DRS()
	if c.opts.Has(RemoveUnaryProps) {
		out = drt.SimplifyProps(out).(*drt.DRS)
	}
	if !drt.IsProper(out) || !drt.IsPure(out) {
		return nil, &CompileError{
			Kind:     KindImpureProduction,
			Category: d.Category().String(),
			Message:  fmt.Sprintf("%s is not proper and pure", drt.Show(out, drt.Linear)),
		}
	}
	return drt.Renumber(out), nil
}
