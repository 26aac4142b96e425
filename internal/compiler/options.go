package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Options is a set of compile flags.
type Options uint16

const (
	// RemoveUnaryProps inlines a proposition whose box has one referent.
	RemoveUnaryProps Options = 1 << iota
	// VerifySignatures checks every derived category against its node.
	VerifySignatures
	// AddStatePredicates marks copular states with .STATE(s).
	AddStatePredicates
	// NoVerbnet disables role refinement. Roles always come from the fixed
	// template, so this is the default behaviour.
	NoVerbnet
	// FastRename is accepted for compatibility. Productions are immutable,
	// so renaming already works on fresh copies.
	FastRename
)

var optionNames = []struct {
	opt  Options
	name string
}{
	{RemoveUnaryProps, "remove_unary_props"},
	{VerifySignatures, "verify_signatures"},
	{AddStatePredicates, "add_state_predicates"},
	{NoVerbnet, "no_verbnet"},
	{FastRename, "fast_rename"},
}

// Has reports whether every flag in o2 is set.
func (o Options) Has(o2 Options) bool { return o&o2 == o2 }

func (o Options) String() string {
	var names []string
	for _, n := range optionNames {
		if o.Has(n.opt) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseOptions reads a comma separated flag list such as
// "remove_unary_props,verify_signatures". Names are case insensitive and
// may use dashes.
func ParseOptions(s string) (Options, error) {
	var o Options
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		f = strings.ReplaceAll(f, "-", "_")
		found := false
		for _, n := range optionNames {
			if n.name == f {
				o |= n.opt
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown compile option %q", f)
		}
	}
	return o, nil
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOptions sets the compile flags.
func WithOptions(o Options) Option {
	return func(c *Compiler) {
		c.opts = o
	}
}

// WithLogger sets the logger used for rule tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPronouns replaces the pronoun gazetteer entries for the given words.
// Words missing from m keep their default template.
func WithPronouns(m map[string]string) Option {
	return func(c *Compiler) {
		c.pronounText = m
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
