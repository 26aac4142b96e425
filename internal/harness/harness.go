package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ccgdrs/internal/compiler"
	"github.com/roach88/ccgdrs/internal/drt"
	"github.com/roach88/ccgdrs/internal/store"
	"github.com/roach88/ccgdrs/internal/testutil"
)

// Harness runs one scenario against a fresh compiler and store.
type Harness struct {
	compiler *compiler.Compiler
	store    *store.Store
	logger   *slog.Logger
}

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger routes compiler and harness logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with sequential IDs,
// so repeated runs record byte-identical logs.
//
// Execution flow:
// 1. Build a compiler from the scenario's options and pronouns
// 2. Compile each sentence and record it in the store
// 3. Check each sentence's expect clause
// 4. Evaluate assertions
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	flags, err := scenario.compileOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	c, err := compiler.New(
		compiler.WithOptions(flags),
		compiler.WithLogger(cfg.logger),
		compiler.WithPronouns(scenario.Pronouns),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create compiler: %w", err)
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequentialIDs()))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{compiler: c, store: st, logger: cfg.logger}
	ctx := context.Background()

	result := NewResult()
	for _, sent := range scenario.Sentences {
		out, err := h.compile(ctx, sent)
		if err != nil {
			return nil, fmt.Errorf("sentence %s: %w", sent.ID, err)
		}
		result.Outputs = append(result.Outputs, out)
		if msg := checkExpect(sent, out); msg != "" {
			result.AddError(msg)
		}
	}

	actx := &AssertionContext{Store: st, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// compile compiles one sentence and records the attempt. Compile failures
// are outcomes, not errors; only store failures are returned.
func (h *Harness) compile(ctx context.Context, sent Sentence) (Output, error) {
	out := Output{ID: sent.ID, Sentence: sent.Text}

	d, cerr := h.compiler.CompileDerivation(sent.Derivation)
	rec, err := h.store.Record(ctx, store.Entry{
		Sentence:   sent.Text,
		Derivation: sent.Derivation,
		Options:    h.compiler.Options(),
		DRS:        d,
		Err:        cerr,
	})
	if err != nil {
		return Output{}, err
	}

	if cerr != nil {
		out.ErrorKind = rec.ErrorKind
		out.err = cerr
	} else {
		out.DRS = rec.Linear
		out.drs = d
	}

	h.logger.Info("sentence compiled",
		"id", sent.ID,
		"seq", rec.Seq,
		"fingerprint", rec.Fingerprint,
		"error_kind", rec.ErrorKind,
	)
	return out, nil
}

// checkExpect returns a failure message, or "" if out meets the
// sentence's expect clause.
func checkExpect(sent Sentence, out Output) string {
	e := sent.Expect
	if e == nil {
		return ""
	}

	if e.Error != "" {
		if out.ErrorKind != e.Error {
			return fmt.Sprintf("sentence %s: expected error %s, got %s", sent.ID, e.Error, describe(out))
		}
		return ""
	}

	if out.err != nil {
		return fmt.Sprintf("sentence %s: expected %s, got error: %v", sent.ID, e.DRS, out.err)
	}
	want, err := drt.Parse(e.DRS)
	if err != nil {
		return fmt.Sprintf("sentence %s: bad expected drs: %v", sent.ID, err)
	}
	if w := drt.Show(want, drt.Linear); w != out.DRS {
		return fmt.Sprintf("sentence %s: expected %s, got %s", sent.ID, w, out.DRS)
	}
	return ""
}

func describe(out Output) string {
	if out.ErrorKind != "" {
		return out.ErrorKind
	}
	return out.DRS
}
