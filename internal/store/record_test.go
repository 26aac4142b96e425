package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccgdrs/internal/compiler"
	"github.com/roach88/ccgdrs/internal/drt"
)

func TestRecord_Success(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	d := drt.MustParse(`[x| man(x),happy(x)]`)

	c, err := s.Record(ctx, Entry{
		Sentence:   "A man is happy.",
		Derivation: "(<L S[dcl] ...>)",
		Options:    compiler.RemoveUnaryProps,
		DRS:        d,
	})
	require.NoError(t, err)

	fp, err := drt.Fingerprint(d)
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-7000-8000-000000000001", c.ID)
	assert.Equal(t, int64(1), c.Seq)
	assert.Equal(t, fp, c.Fingerprint)
	assert.Equal(t, `[x| man(x),happy(x)]`, c.Linear)
	assert.Equal(t, "remove_unary_props", c.Options)
	assert.True(t, c.Succeeded())

	got, err := s.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestRecord_Failure(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	cerr := &compiler.CompileError{Kind: compiler.KindUnknownRule, Message: "no rule"}
	c, err := s.Record(ctx, Entry{Sentence: "bad", Derivation: "(...)", Err: cerr})
	require.NoError(t, err)
	assert.False(t, c.Succeeded())
	assert.Equal(t, "UnknownRule", c.ErrorKind)
	assert.Equal(t, cerr.Error(), c.Error)

	c, err = s.Record(ctx, Entry{Sentence: "worse", Err: errors.New("boom")})
	require.NoError(t, err)
	assert.Equal(t, "Error", c.ErrorKind)
	assert.Equal(t, int64(2), c.Seq)
}

func TestRecord_RejectsAmbiguousEntry(t *testing.T) {
	s := createTestStore(t)
	_, err := s.Record(context.Background(), Entry{Sentence: "none"})
	assert.Error(t, err)

	_, err = s.Record(context.Background(), Entry{
		DRS: drt.MustParse(`[x| a(x)]`),
		Err: errors.New("both"),
	})
	assert.Error(t, err)
}

func TestRecord_SharesDrsByFingerprint(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// The same meaning is stored once.
	a, err := s.Record(ctx, Entry{Sentence: "one", DRS: drt.MustParse(`[x| dog(x)]`)})
	require.NoError(t, err)
	b, err := s.Record(ctx, Entry{Sentence: "two", DRS: drt.MustParse(`[x| dog(x)]`)})
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM drs`).Scan(&n))
	assert.Equal(t, 1, n)

	same, err := s.ByFingerprint(ctx, a.Fingerprint)
	require.NoError(t, err)
	require.Len(t, same, 2)
	assert.Equal(t, "one", same[0].Sentence)
	assert.Equal(t, "two", same[1].Sentence)
}

func TestHistory(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.History(ctx, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, w := range []string{"a", "b", "c", "d"} {
		_, err := s.Record(ctx, Entry{Sentence: w, DRS: drt.MustParse(`[x| ` + w + `(x)]`)})
		require.NoError(t, err)
	}

	last, err := s.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "c", last[0].Sentence)
	assert.Equal(t, "d", last[1].Sentence)

	all, err := s.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, c := range all {
		assert.Equal(t, int64(i+1), c.Seq)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadDRS(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	d := drt.MustParse(`[x| man(x),¬[| happy(x)]]`)

	c, err := s.Record(ctx, Entry{Sentence: "A man is not happy.", DRS: d})
	require.NoError(t, err)

	back, err := s.LoadDRS(ctx, c.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, drt.Show(d, drt.Linear), drt.Show(back, drt.Linear))

	fp, err := drt.Fingerprint(back)
	require.NoError(t, err)
	assert.Equal(t, c.Fingerprint, fp)

	_, err = s.LoadDRS(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14], "version nibble")
}
