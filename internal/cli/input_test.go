package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputs(t *testing.T) {
	src := `# comment
ID=wsj_0001.1 PARSER=GOLD NUMPARSE=1
(<L N NN NN man N>)

(<L N NN NN dog N>)
ID=last
  (<L N NN NN cat N>)
`
	inputs, err := parseInputs(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	assert.Equal(t, "wsj_0001.1", inputs[0].ID)
	assert.Equal(t, "(<L N NN NN man N>)", inputs[0].Derivation)
	assert.Equal(t, "2", inputs[1].ID, "unnamed derivations are numbered by position")
	assert.Equal(t, "last", inputs[2].ID)
	assert.Equal(t, "(<L N NN NN cat N>)", inputs[2].Derivation)
}

func TestParseInputs_Empty(t *testing.T) {
	inputs, err := parseInputs(strings.NewReader("# nothing\n\n"))
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestParseInputs_StrayLine(t *testing.T) {
	_, err := parseInputs(strings.NewReader("(<L N NN NN man N>)\nman\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
