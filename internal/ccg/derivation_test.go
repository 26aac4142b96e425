package ccg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const welcome = `(<T S[b]\NP 0 2> (<L (S[b]\NP)/PP VB VB Welcome (S[b]\NP)/PP>) (<T PP 0 2> (<L PP/NP TO TO to PP/NP>) (<T NP 0 1> (<T N 1 2> (<L N/N NNP NNP Merryweather N/N>) (<L N NNP NNP High. N>) ) ) ) )`

func TestParseDerivation(t *testing.T) {
	root, err := ParseDerivation(welcome)
	require.NoError(t, err)

	tree, ok := root.(*Tree)
	require.True(t, ok)
	assert.Equal(t, `S[b]\NP`, tree.Cat.String())
	assert.Equal(t, 0, tree.Head)
	require.Len(t, tree.Children, 2)

	leaves := Leaves(root)
	require.Len(t, leaves, 4)
	assert.Equal(t, "Welcome to Merryweather High.", Sentence(root))
	for i, l := range leaves {
		assert.Equal(t, i, l.Index)
	}
	assert.Equal(t, `(S[b]\NP)/PP`, leaves[0].Cat.String())
	assert.Equal(t, "VB", leaves[0].POS)
	assert.Equal(t, "NNP", leaves[3].OrigPOS)
	assert.Equal(t, "N", leaves[3].PredArg)

	pp := tree.Children[1].(*Tree)
	unary := pp.Children[1].(*Tree)
	assert.Equal(t, "NP", unary.Cat.String())
	assert.Len(t, unary.Children, 1)
}

func TestParseDerivationErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", ``, ErrMalformedDerivation},
		{"unterminated", `(<T NP 0 1> (<L N NN NN dog N>)`, ErrMalformedDerivation},
		{"child count", `(<T NP 0 2> (<L N NN NN dog N>) )`, ErrMalformedDerivation},
		{"three children", `(<T NP 0 3> (<L N NN NN a N>) (<L N NN NN b N>) (<L N NN NN c N>) )`, ErrMalformedDerivation},
		{"leaf fields", `(<L N NN dog N>)`, ErrMalformedDerivation},
		{"header fields", `(<T NP 0> (<L N NN NN dog N>) )`, ErrMalformedDerivation},
		{"trailing", `(<L N NN NN dog N>) x`, ErrMalformedDerivation},
		{"bad category", `(<L (N NN NN dog N>)`, ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDerivation(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
