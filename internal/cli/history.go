package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/ccgdrs/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded compilations",
		Long: `List the most recent compilations recorded by "ccgdrs compile --db",
oldest first.

Examples:
  ccgdrs history --db ccgdrs.db
  ccgdrs history --db ccgdrs.db --limit 50 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database path (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "number of entries to show (0 for all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	// Opening would create a fresh database
	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		return formatter.Fail(ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.DB))
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return formatter.Fail(ErrCodeStoreFailed, fmt.Sprintf("opening store: %v", err))
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := st.History(ctx, opts.Limit)
	if err != nil {
		return formatter.Fail(ErrCodeStoreFailed, fmt.Sprintf("reading history: %v", err))
	}

	if formatter.Format == "json" {
		return formatter.Respond("ok", entries, nil)
	}

	w := formatter.Writer
	if len(entries) == 0 {
		fmt.Fprintln(w, "No compilations recorded.")
		return nil
	}
	for _, e := range entries {
		if e.Succeeded() {
			fmt.Fprintf(w, "%4d ✓ %s\n       %s\n", e.Seq, e.Sentence, e.Linear)
			continue
		}
		fmt.Fprintf(w, "%4d ✗ %s\n       %s\n", e.Seq, e.Sentence, e.ErrorKind)
	}
	return nil
}
