package optx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterStorerEmptyMeansIncrementSentinel(t *testing.T) {
	val, err := counterStorer("")
	require.NoError(t, err)
	require.Equal(t, 1, val)
}

func TestCounterStorerExplicitValue(t *testing.T) {
	val, err := counterStorer("5")
	require.NoError(t, err)
	require.Equal(t, 5, val)
}

func TestCounterStorerInvalidSyntax(t *testing.T) {
	_, err := counterStorer("not-a-number")
	require.Error(t, err)
}

func TestCounterInt(t *testing.T) {
	var c Counter = 3
	require.Equal(t, 3, c.Int())
}
