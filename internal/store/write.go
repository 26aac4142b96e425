package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/ccgdrs/internal/compiler"
	"github.com/roach88/ccgdrs/internal/drt"
)

// Entry is one compile attempt to record. Exactly one of DRS and Err is
// set.
type Entry struct {
	Sentence   string
	Derivation string
	Options    compiler.Options
	DRS        *drt.DRS
	Err        error
}

// Compilation is a stored compile attempt. Fingerprint and Linear are
// empty for failures; ErrorKind and Error are empty for successes.
type Compilation struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	Sentence    string `json:"sentence"`
	Derivation  string `json:"derivation"`
	Options     string `json:"options,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Linear      string `json:"drs,omitempty"`
	ErrorKind   string `json:"error_kind,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Succeeded reports whether the attempt produced a DRS.
func (c Compilation) Succeeded() bool { return c.Fingerprint != "" }

// Record appends e to the log and returns the stored row.
//
// The DRS itself is stored once per fingerprint. Sentences with the same
// meaning share the drs row; ON CONFLICT DO NOTHING makes repeats
// idempotent. Seq is assigned inside the transaction as MAX(seq)+1, so the
// log order never depends on wall time.
func (s *Store) Record(ctx context.Context, e Entry) (Compilation, error) {
	if (e.DRS == nil) == (e.Err == nil) {
		return Compilation{}, fmt.Errorf("record: entry needs exactly one of DRS and Err")
	}

	c := Compilation{
		ID:         s.ids.Generate(),
		Sentence:   e.Sentence,
		Derivation: e.Derivation,
		Options:    e.Options.String(),
	}

	var canonical string
	if e.DRS != nil {
		fp, err := drt.Fingerprint(e.DRS)
		if err != nil {
			return Compilation{}, fmt.Errorf("record: %w", err)
		}
		data, err := drt.MarshalCanonical(e.DRS)
		if err != nil {
			return Compilation{}, fmt.Errorf("record: %w", err)
		}
		c.Fingerprint = fp
		c.Linear = drt.Show(e.DRS, drt.Linear)
		canonical = string(data)
	} else {
		c.ErrorKind = string(compiler.KindOf(e.Err))
		if c.ErrorKind == "" {
			c.ErrorKind = "Error"
		}
		c.Error = e.Err.Error()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Compilation{}, fmt.Errorf("record: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if c.Fingerprint != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO drs (fingerprint, canonical, linear)
			VALUES (?, ?, ?)
			ON CONFLICT(fingerprint) DO NOTHING
		`, c.Fingerprint, canonical, c.Linear)
		if err != nil {
			return Compilation{}, fmt.Errorf("record: insert drs: %w", err)
		}
	}

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM compilations`).Scan(&c.Seq); err != nil {
		return Compilation{}, fmt.Errorf("record: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO compilations
		(id, seq, sentence, derivation, options, fingerprint, error_kind, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID,
		c.Seq,
		c.Sentence,
		c.Derivation,
		c.Options,
		nullable(c.Fingerprint),
		c.ErrorKind,
		c.Error,
	)
	if err != nil {
		return Compilation{}, fmt.Errorf("record: insert compilation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Compilation{}, fmt.Errorf("record: commit: %w", err)
	}
	return c, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
