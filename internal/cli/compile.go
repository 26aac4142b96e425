package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/compiler"
	"github.com/roach88/ccgdrs/internal/drt"
	"github.com/roach88/ccgdrs/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Notation string // "linear" | "set"
	DB       string // optional store path
}

// SentenceResult is the outcome of one derivation.
type SentenceResult struct {
	ID          string    `json:"id"`
	Sentence    string    `json:"sentence,omitempty"`
	DRS         string    `json:"drs,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	Error       *CLIError `json:"error,omitempty"`
}

// CompileResult holds the outcome of a compile run.
type CompileResult struct {
	Sentences []SentenceResult `json:"sentences"`
	Compiled  int              `json:"compiled"`
	Failed    int              `json:"failed"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <auto-file|->",
		Short: "Compile CCG derivations to DRSs",
		Long: `Compile CCGbank AUTO derivations to Discourse Representation Structures.

Each derivation line is compiled independently. With --db, every attempt is
appended to a SQLite log that "ccgdrs history" lists.

Exit codes:
  0 - Every derivation compiled
  1 - One or more derivations failed
  2 - Command error (unreadable input, bad config, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Notation, "notation", "n", "linear", "DRS notation (linear|set)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record compilations in this SQLite database")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	notation, err := parseNotation(opts.Notation)
	if err != nil {
		return formatter.Fail(ErrCodeGeneric, err.Error())
	}

	c, err := opts.newCompiler(opts.logger(cmd.ErrOrStderr()))
	if err != nil {
		return failLoad(formatter, err)
	}

	inputs, err := loadInputs(cmd, formatter, path)
	if err != nil {
		return err
	}

	var st *store.Store
	if opts.DB != "" {
		st, err = store.Open(opts.DB)
		if err != nil {
			return formatter.Fail(ErrCodeStoreFailed, fmt.Sprintf("opening store: %v", err))
		}
		defer st.Close()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result := CompileResult{Sentences: make([]SentenceResult, 0, len(inputs))}
	for _, in := range inputs {
		formatter.VerboseLog("Compiling %s", in.ID)
		sr, d, cerr := compileOne(c, in, notation)
		if st != nil {
			rec, err := st.Record(ctx, store.Entry{
				Sentence:   sr.Sentence,
				Derivation: in.Derivation,
				Options:    c.Options(),
				DRS:        d,
				Err:        cerr,
			})
			if err != nil {
				return formatter.Fail(ErrCodeStoreFailed, fmt.Sprintf("recording %s: %v", in.ID, err))
			}
			formatter.VerboseLog("Recorded %s as %s", in.ID, rec.ID)
		}
		if cerr != nil {
			result.Failed++
		} else {
			result.Compiled++
		}
		result.Sentences = append(result.Sentences, sr)
	}

	return outputCompileResult(formatter, result)
}

// compileOne compiles a single input. The returned error is the compile
// failure, if any.
func compileOne(c *compiler.Compiler, in Input, notation drt.Notation) (SentenceResult, *drt.DRS, error) {
	sr := SentenceResult{ID: in.ID}

	root, err := compiler.Parse(in.Derivation)
	if err != nil {
		sr.Error = compileErrorPayload(err)
		return sr, nil, err
	}
	sr.Sentence = ccg.Sentence(root)

	d, err := c.Compile(root)
	if err != nil {
		sr.Error = compileErrorPayload(err)
		return sr, nil, err
	}
	sr.DRS = drt.Show(d, notation)
	if sr.Fingerprint, err = drt.Fingerprint(d); err != nil {
		sr.Error = compileErrorPayload(err)
		return sr, nil, err
	}
	return sr, d, nil
}

func parseNotation(s string) (drt.Notation, error) {
	switch s {
	case "linear":
		return drt.Linear, nil
	case "set":
		return drt.Set, nil
	}
	return 0, fmt.Errorf("invalid notation %q: must be linear or set", s)
}

// failLoad outputs a config or compiler setup failure.
func failLoad(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return formatter.Fail(loadErr.Code, loadErr.Error())
	}
	return formatter.Fail(ErrCodeGeneric, err.Error())
}

// outputCompileResult prints the per-sentence results and the summary.
func outputCompileResult(formatter *OutputFormatter, result CompileResult) error {
	if formatter.Format == "json" {
		status := "ok"
		var cliErr *CLIError
		if result.Failed > 0 {
			status = "error"
			cliErr = &CLIError{
				Code:    ErrCodeCompileFails,
				Message: fmt.Sprintf("%d derivation(s) failed", result.Failed),
			}
		}
		if err := formatter.Respond(status, result, cliErr); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, sr := range result.Sentences {
			if sr.Error != nil {
				fmt.Fprintf(w, "✗ %s: [%s] %s\n", sr.ID, sr.Error.Code, sr.Error.Message)
				continue
			}
			fmt.Fprintf(w, "✓ %s: %s\n", sr.ID, sr.DRS)
		}
		fmt.Fprintf(w, "\nCompiled %d derivation(s), %d failed\n", result.Compiled, result.Failed)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d derivation(s) failed", result.Failed))
	}
	return nil
}
