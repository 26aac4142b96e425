package compiler

import (
	"fmt"

	"github.com/roach88/ccgdrs/internal/ccg"
)

// RuleUse records the rule that derives one internal node.
type RuleUse struct {
	Rule     ccg.Rule
	Category ccg.Category
	Left     ccg.Category
	Right    ccg.Category // Empty for unary nodes
}

// Rules names the combinatory rule at every internal node of root, in
// post-order, without building any semantics. It stops at the first node
// no rule derives.
func Rules(root ccg.Node) ([]RuleUse, error) {
	var out []RuleUse
	var walk func(ccg.Node) error
	walk = func(n ccg.Node) error {
		t, ok := n.(*ccg.Tree)
		if !ok {
			return nil
		}
		if len(t.Children) < 1 || len(t.Children) > 2 {
			return &CompileError{
				Kind:     KindMalformedParseTree,
				Category: t.Cat.String(),
				Message:  fmt.Sprintf("node has %d children", len(t.Children)),
			}
		}
		for _, c := range t.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		use := RuleUse{Category: t.Cat, Left: t.Children[0].Category(), Right: ccg.Empty}
		if len(t.Children) == 2 {
			use.Right = t.Children[1].Category()
		}
		use.Rule = classify(use.Left, use.Right, use.Category)
		if use.Rule == ccg.RuleNone {
			return &CompileError{
				Kind:     KindUnknownRule,
				Category: t.Cat.String(),
				Message:  fmt.Sprintf("no rule derives %s from %s %s", t.Cat, use.Left, use.Right),
			}
		}
		out = append(out, use)
		return nil
	}
	if root == nil {
		return nil, &CompileError{Kind: KindMalformedParseTree, Message: "empty derivation"}
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return out, nil
}
