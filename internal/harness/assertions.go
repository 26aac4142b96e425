package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/ccgdrs/internal/drt"
	"github.com/roach88/ccgdrs/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Sentence string // Sentence ID, empty for run-level assertions
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	DRS      string // Rendered DRS for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Sentence != "" {
		fmt.Fprintf(&buf, " [%s]", e.Sentence)
	}
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.DRS != "" {
		fmt.Fprintf(&buf, "  DRS: %s\n", e.DRS)
	}

	return buf.String()
}

// AssertionContext provides what run-level assertions need.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions checks every assertion and returns the failure
// messages in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(result, a, actx); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) error {
	if a.Type == AssertDistinctDRS {
		return assertDistinctDRS(a, actx)
	}

	out, ok := result.output(a.Sentence)
	if !ok {
		return fmt.Errorf("assertion %s: unknown sentence %q", a.Type, a.Sentence)
	}
	if out.drs == nil {
		return &AssertionError{
			Type:     a.Type,
			Sentence: a.Sentence,
			Expected: "a compiled DRS",
			Actual:   fmt.Sprintf("error %s", out.ErrorKind),
		}
	}

	switch a.Type {
	case AssertProper:
		return check(a, out, drt.IsProper(out.drs), "every referent bound", "free referents present")
	case AssertPure:
		return check(a, out, drt.IsPure(out.drs), "no referent declared twice", "redeclared referents present")
	case AssertFOLConvertible:
		return check(a, out, drt.IsFOLConvertible(out.drs), "resolved, proper and pure", "not convertible")
	case AssertHasRelation:
		return check(a, out, slices.Contains(relations(out.drs), a.Relation),
			fmt.Sprintf("relation %s", a.Relation), "not found")
	case AssertLacksRelation:
		return check(a, out, !slices.Contains(relations(out.drs), a.Relation),
			fmt.Sprintf("no relation %s", a.Relation), "found")
	case AssertReferentCount:
		n := len(out.drs.Universe)
		return check(a, out, n == a.Count,
			fmt.Sprintf("%d referents", a.Count), fmt.Sprintf("%d referents", n))
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func check(a Assertion, out Output, ok bool, expected, actual string) error {
	if ok {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Sentence: a.Sentence,
		Expected: expected,
		Actual:   actual,
		DRS:      out.DRS,
	}
}

// assertDistinctDRS counts the distinct meanings recorded in the store.
func assertDistinctDRS(a Assertion, actx *AssertionContext) error {
	var n int
	if err := actx.Store.DB().QueryRowContext(actx.Ctx, `SELECT COUNT(*) FROM drs`).Scan(&n); err != nil {
		return fmt.Errorf("distinct_drs: %w", err)
	}
	if n != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d distinct DRSs", a.Count),
			Actual:   fmt.Sprintf("%d distinct DRSs", n),
		}
	}
	return nil
}

// relations lists every relation name in e, at any depth.
func relations(e drt.Expr) []string {
	var out []string
	var walk func(drt.Expr)
	walk = func(e drt.Expr) {
		switch x := e.(type) {
		case *drt.DRS:
			for _, c := range x.Conds {
				switch c := c.(type) {
				case *drt.Rel:
					out = append(out, c.Name)
				case *drt.Neg:
					walk(c.DRS)
				case *drt.Imp:
					walk(c.Antecedent)
					walk(c.Consequent)
				case *drt.Or:
					walk(c.Left)
					walk(c.Right)
				case *drt.Prop:
					walk(c.DRS)
				case *drt.Box:
					walk(c.DRS)
				case *drt.Diamond:
					walk(c.DRS)
				}
			}
		case *drt.Merge:
			walk(x.Left)
			walk(x.Right)
		}
	}
	walk(e)
	return out
}
