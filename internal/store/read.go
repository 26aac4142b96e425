package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/ccgdrs/internal/drt"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const selectCompilation = `
	SELECT c.id, c.seq, c.sentence, c.derivation, c.options,
	       COALESCE(c.fingerprint, '') AS fingerprint, COALESCE(d.linear, '') AS linear,
	       c.error_kind, c.error_message
	FROM compilations c
	LEFT JOIN drs d ON d.fingerprint = c.fingerprint
`

// History returns the most recent compilations, oldest first. A limit of
// zero or less returns the whole log.
//
// Returns an empty slice (not nil) if the log is empty.
func (s *Store) History(ctx context.Context, limit int) ([]Compilation, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no upper bound
	}
	// Deterministic ordering: ORDER BY seq ASC, id COLLATE BINARY ASC
	return s.queryCompilations(ctx, `
		SELECT * FROM (`+selectCompilation+`
			ORDER BY c.seq DESC LIMIT ?
		)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, limit)
}

// Get returns the compilation with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Compilation, error) {
	cs, err := s.queryCompilations(ctx, selectCompilation+`WHERE c.id = ?`, id)
	if err != nil {
		return Compilation{}, err
	}
	if len(cs) == 0 {
		return Compilation{}, fmt.Errorf("compilation %q: %w", id, ErrNotFound)
	}
	return cs[0], nil
}

// ByFingerprint returns every compilation that produced the DRS with the
// given fingerprint, oldest first.
func (s *Store) ByFingerprint(ctx context.Context, fingerprint string) ([]Compilation, error) {
	return s.queryCompilations(ctx, selectCompilation+`
		WHERE c.fingerprint = ?
		ORDER BY c.seq ASC, c.id COLLATE BINARY ASC
	`, fingerprint)
}

// LoadDRS reads back the DRS stored under fingerprint.
func (s *Store) LoadDRS(ctx context.Context, fingerprint string) (*drt.DRS, error) {
	var linear string
	err := s.db.QueryRowContext(ctx, `SELECT linear FROM drs WHERE fingerprint = ?`, fingerprint).Scan(&linear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("drs %q: %w", fingerprint, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query drs: %w", err)
	}
	d, err := drt.Parse(linear)
	if err != nil {
		return nil, fmt.Errorf("decode drs %q: %w", fingerprint, err)
	}
	return d, nil
}

func (s *Store) queryCompilations(ctx context.Context, query string, args ...any) ([]Compilation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query compilations: %w", err)
	}
	defer rows.Close()

	out := []Compilation{}
	for rows.Next() {
		var c Compilation
		if err := rows.Scan(
			&c.ID, &c.Seq, &c.Sentence, &c.Derivation, &c.Options,
			&c.Fingerprint, &c.Linear, &c.ErrorKind, &c.Error,
		); err != nil {
			return nil, fmt.Errorf("scan compilation: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compilations: %w", err)
	}
	return out, nil
}
