package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ccgdrs/internal/compiler"
)

// ValidationEntry is the outcome of checking one derivation.
type ValidationEntry struct {
	ID    string    `json:"id"`
	Rules []string  `json:"rules,omitempty"`
	Error *CLIError `json:"error,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Derivations []ValidationEntry `json:"derivations"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <auto-file|->",
		Short: "Check derivations without building semantics",
		Long: `Check that every derivation parses and that a combinatory rule derives
each of its nodes. No DRS is built, so this is faster than compile for
checking parser output. The config file, if given, is validated too.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if _, _, err := opts.compileSettings(); err != nil {
		return failLoad(formatter, err)
	}

	inputs, err := loadInputs(cmd, formatter, path)
	if err != nil {
		return err
	}

	result := ValidationResult{Valid: true, Derivations: make([]ValidationEntry, 0, len(inputs))}
	for _, in := range inputs {
		entry := validateOne(in)
		if entry.Error != nil {
			result.Valid = false
		}
		formatter.VerboseLog("%s: %v", in.ID, entry.Rules)
		result.Derivations = append(result.Derivations, entry)
	}

	return outputValidateResult(formatter, result)
}

func validateOne(in Input) ValidationEntry {
	entry := ValidationEntry{ID: in.ID}
	root, err := compiler.Parse(in.Derivation)
	if err != nil {
		entry.Error = compileErrorPayload(err)
		return entry
	}
	uses, err := compiler.Rules(root)
	if err != nil {
		entry.Error = compileErrorPayload(err)
		return entry
	}
	entry.Rules = make([]string, len(uses))
	for i, u := range uses {
		entry.Rules[i] = u.Rule.String()
	}
	return entry
}

func outputValidateResult(formatter *OutputFormatter, result ValidationResult) error {
	failed := 0
	for _, e := range result.Derivations {
		if e.Error != nil {
			failed++
		}
	}

	if formatter.Format == "json" {
		status := "ok"
		var cliErr *CLIError
		if !result.Valid {
			status = "error"
			cliErr = &CLIError{
				Code:    ErrCodeCompileFails,
				Message: fmt.Sprintf("%d derivation(s) invalid", failed),
			}
		}
		if err := formatter.Respond(status, result, cliErr); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, e := range result.Derivations {
			if e.Error != nil {
				fmt.Fprintf(w, "✗ %s: [%s] %s\n", e.ID, e.Error.Code, e.Error.Message)
				continue
			}
			fmt.Fprintf(w, "✓ %s: %d rule(s)\n", e.ID, len(e.Rules))
		}
		if result.Valid {
			fmt.Fprintln(w, "\n✓ All derivations valid")
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d derivation(s) invalid", failed))
	}
	return nil
}
