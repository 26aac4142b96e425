package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccgdrs/internal/ccg"
)

func TestRules(t *testing.T) {
	root, err := Parse(happy)
	require.NoError(t, err)

	uses, err := Rules(root)
	require.NoError(t, err)

	var names []string
	for _, u := range uses {
		names = append(names, u.Rule.String())
	}
	assert.Equal(t, []string{"FA", "FA", "BA", "RP"}, names)
	assert.Equal(t, "S[dcl]", uses[3].Category.String())
}

func TestRules_Unary(t *testing.T) {
	root, err := Parse(welcome)
	require.NoError(t, err)

	uses, err := Rules(root)
	require.NoError(t, err)
	require.NotEmpty(t, uses)
	assert.True(t, uses[1].Right.IsEmpty(), "N to NP is unary")
}

func TestRules_Errors(t *testing.T) {
	root, err := Parse(`(<T S[dcl] 0 2> (<L N NN NN man N>) (<L N NN NN dog N>))`)
	require.NoError(t, err)
	_, err = Rules(root)
	assert.Equal(t, KindUnknownRule, KindOf(err))

	_, err = Rules(nil)
	assert.Equal(t, KindMalformedParseTree, KindOf(err))

	_, err = Rules(&ccg.Tree{Cat: ccg.S})
	assert.Equal(t, KindMalformedParseTree, KindOf(err))
}

func TestParse_ClassifiesErrors(t *testing.T) {
	_, err := Parse(`(<L (N NN NN dog N>)`)
	assert.Equal(t, KindUnknownCategory, KindOf(err))

	_, err = Parse(`(<T S 0 2> (<L N NN NN man N>)`)
	assert.Equal(t, KindMalformedParseTree, KindOf(err))
}
