package ccg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"N", "N"},
		{"S[dcl]", "S[dcl]"},
		{`S[b]\NP`, `S[b]\NP`},
		{`(S[dcl]\NP)/NP`, `(S[dcl]\NP)/NP`},
		{`S\NP/NP`, `(S\NP)/NP`},
		{`((S\NP))`, `S\NP`},
		{`((S\NP)\(S\NP))/NP`, `((S\NP)\(S\NP))/NP`},
		{`(N/N)/(N/N)`, `(N/N)/(N/N)`},
		{"conj", "conj"},
		{"NP[conj]", "NP[conj]"},
		{"S[dcl][conj]", "S[dcl][conj]"},
		{`(S[dcl]\NP)[conj]`, `(S[dcl]\NP)[conj]`},
		{`((S\NP)\(S\NP))[conj]`, `((S\NP)\(S\NP))[conj]`},
		{`S[dcl]\NP[conj]`, `S[dcl]\NP[conj]`},
		{",", ","},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestParseCategoryErrors(t *testing.T) {
	for _, in := range []string{`(S\NP`, `S[dcl`, `S\`, `/NP`, `S[]`, `NP)`, `S[dcl][b]`, `(S\NP)[dcl]`} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnknownCategory)
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	tests := []struct {
		cat        string
		modifier   bool
		typeRaised bool
		combinator bool
		punct      bool
		conj       bool
	}{
		{"N/N", true, false, false, false, false},
		{`(S\NP)\(S\NP)`, true, false, false, false, false},
		{`(S\NP)/NP`, false, false, false, false, false},
		{`S/(S\NP)`, false, true, true, false, false},
		{`(S\NP)\((S\NP)/NP)`, false, true, true, false, false},
		{`(S\NP)/(S[to]\NP)`, false, false, true, false, false},
		{",", false, false, false, true, false},
		{"LRB", false, false, false, true, false},
		{"conj", false, false, false, false, true},
		{"NP[conj]", false, false, false, false, true},
		{"S[dcl][conj]", false, false, false, false, true},
		{`(S[dcl]\NP)[conj]`, false, false, false, false, true},
		{`conj\conj`, true, false, false, false, true},
		{"NP", false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.cat, func(t *testing.T) {
			c := MustParse(tt.cat)
			assert.Equal(t, tt.modifier, c.IsModifier(), "modifier")
			assert.Equal(t, tt.typeRaised, c.IsTypeRaised(), "type raised")
			assert.Equal(t, tt.combinator, c.IsCombinator(), "combinator")
			assert.Equal(t, tt.punct, c.IsPunct(), "punct")
			assert.Equal(t, tt.conj, c.IsConj(), "conj")
		})
	}
}

func TestSplit(t *testing.T) {
	c := MustParse(`(S[dcl]\NP)/NP`)
	r, s, a, err := c.Split()
	require.NoError(t, err)
	assert.Equal(t, `S[dcl]\NP`, r.String())
	assert.Equal(t, Forward, s)
	assert.Equal(t, "NP", a.String())
	assert.True(t, c.IsArgRight())
	assert.True(t, r.IsArgLeft())

	_, _, _, err = NP.Split()
	assert.ErrorIs(t, err, ErrNotFunctor)
	assert.True(t, NP.Result().IsEmpty())
	assert.True(t, NP.Argument().IsEmpty())
}

func TestExtractAtoms(t *testing.T) {
	c := MustParse(`(S\NP)/NP`)
	assert.Equal(t, []string{"NP", "NP", "S"}, names(c.Atoms()))
	assert.Equal(t, [][]string{{"NP"}, {"NP"}, {"S"}}, groupNames(c.ScopeAtoms()))
	assert.Equal(t, `/\`, c.Slashes())
	assert.Equal(t, 2, c.Arity())

	adv := MustParse(`((S\NP)\(S\NP))/NP`)
	assert.Equal(t, [][]string{{"NP"}, {"NP", "S"}, {"NP"}, {"S"}}, groupNames(adv.ExtractAtoms(true)))
	assert.Equal(t, [][]string{{"NP", "NP", "S", "NP", "S"}}, groupNames(adv.ExtractAtoms(false)))

	assert.Equal(t, [][]string{{"NP"}}, groupNames(NP.ScopeAtoms()))
	assert.Empty(t, Empty.ScopeAtoms())
}

func TestCanUnifyAtom(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"NP", "N", true},
		{"PP", "NP", true},
		{"N[num]", "N", true},
		{"NP[conj]", "NP", true},
		{"S[adj]", "S", true},
		{"S[adj]", "S[dcl]", false},
		{"S[adj]", "NP", true},
		{"S[adj]", "PP", true},
		{"S[adj]", "N", true},
		{"S[to]", "S[b]", true},
		{"S[dcl]", "S[em]", true},
		{"S[ng]", "S[pss]", false},
		{"S[dcl][conj]", "S[dcl]", true},
		{"S", "NP", false},
		{"conj", "NP", false},
		{`S\NP`, "S", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+" "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUnifyAtom(MustParse(tt.a), MustParse(tt.b)))
			assert.Equal(t, tt.want, CanUnifyAtom(MustParse(tt.b), MustParse(tt.a)))
		})
	}
}

func TestCanUnify(t *testing.T) {
	c := MustParse(`(S[dcl]\NP)/NP`)
	assert.True(t, c.CanUnify(MustParse(`(S\NP)/NP`)))
	assert.True(t, c.CanUnify(MustParse(`(S\N)/PP`)))
	assert.False(t, c.CanUnify(MustParse(`(S\NP)\NP`)))
	assert.False(t, c.CanUnify(MustParse(`S\NP`)))
	assert.False(t, c.CanUnify(NP))
}

func TestFeatureRewrites(t *testing.T) {
	tests := []struct {
		in, simplified, bare, signature string
	}{
		{`(S[dcl]\NP[nb])/N`, `(S\NP)/NP`, `(S\NP)/N`, `(S\T)/T`},
		{"N[num]", "N[num]", "N", "T"},
		{"NP[conj]", "NP", "NP", "T"},
		{"NP[thr]", "NP[thr]", "NP", "T"},
		{`(S[b]\NP)/PP`, `(S\NP)/PP`, `(S\NP)/PP`, `(S\T)/Z`},
		{`S[adj]\NP`, `S\NP`, `S\NP`, `T\T`},
		{"conj", "conj", "conj", "conj"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := MustParse(tt.in)
			assert.Equal(t, tt.simplified, c.Simplify().String())
			assert.Equal(t, tt.bare, c.RemoveFeatures().String())
			assert.Equal(t, tt.signature, c.DRSSignature().String())
		})
	}
}

func TestConjMarker(t *testing.T) {
	vp := MustParse(`(S[dcl]\NP)[conj]`)
	require.True(t, vp.IsFunctor())
	assert.True(t, vp.IsConjunct())
	assert.True(t, vp.HasFeature("conj"))
	assert.Equal(t, `S[dcl]\NP`, vp.RemoveConjFeature().String())
	assert.Equal(t, `S\NP`, vp.Simplify().String())
	assert.Equal(t, `S\T`, vp.DRSSignature().String())
	assert.False(t, vp.Equal(MustParse(`S[dcl]\NP`)))
	assert.True(t, vp.CanUnify(MustParse(`S[dcl]\NP`)))

	s := MustParse("S[dcl][conj]")
	assert.Equal(t, "dcl", s.Feature())
	assert.True(t, s.IsConjunct())
	assert.Equal(t, "S[dcl]", s.RemoveConjFeature().String())
	assert.True(t, CanUnifyAtom(s, MustParse("S[dcl]")))

	// Without parentheses the marker belongs to the argument.
	arg := MustParse(`S[dcl]\NP[conj]`)
	assert.False(t, arg.IsConjunct())
	assert.True(t, arg.Argument().IsConjunct())
	assert.Equal(t, `S[dcl]\NP`, arg.RemoveConjFeature().String())
}

func names(cs []Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func groupNames(gs [][]Category) [][]string {
	out := make([][]string, len(gs))
	for i, g := range gs {
		out[i] = names(g)
	}
	return out
}
