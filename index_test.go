package optx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexForwardZeroIsAnyWhere(t *testing.T) {
	ix := ForwardIndex(0)
	require.True(t, ix.Matches(1, 10))
	require.True(t, ix.Matches(10, 10))
}

func TestIndexBackwardZeroIsAnyWhere(t *testing.T) {
	ix := BackwardIndex(0)
	require.True(t, ix.Matches(1, 10))
	require.True(t, ix.Matches(10, 10))
}

func TestIndexForwardExact(t *testing.T) {
	ix := ForwardIndex(2)
	require.False(t, ix.Matches(1, 3))
	require.True(t, ix.Matches(2, 3))
	require.False(t, ix.Matches(3, 3))
}

func TestIndexBackwardExact(t *testing.T) {
	ix := BackwardIndex(1)
	require.True(t, ix.Matches(3, 3))
	require.False(t, ix.Matches(2, 3))
}

func TestIndexListAndExcept(t *testing.T) {
	list := ListIndex(1, 3)
	require.True(t, list.Matches(1, 5))
	require.False(t, list.Matches(2, 5))
	require.True(t, list.Matches(3, 5))

	except := ExceptIndex(1, 3)
	require.False(t, except.Matches(1, 5))
	require.True(t, except.Matches(2, 5))
}

func TestIndexGreaterAndLess(t *testing.T) {
	require.True(t, GreaterIndex(2).Matches(3, 10))
	require.False(t, GreaterIndex(2).Matches(2, 10))
	require.True(t, LessIndex(2).Matches(1, 10))
	require.False(t, LessIndex(2).Matches(2, 10))
}
