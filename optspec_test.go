package optx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOptSpecBasic(t *testing.T) {
	dk, err := ParseOptSpec("--foo=s", DefaultPrefixes())
	require.NoError(t, err)
	require.Equal(t, "--", dk.Prefix)
	require.Equal(t, "foo", dk.Name)
	require.Equal(t, "s", dk.Type)
	require.False(t, dk.Force)
	require.Nil(t, dk.Index)
}

func TestParseOptSpecForceAndIndex(t *testing.T) {
	dk, err := ParseOptSpec("pos=p!@2", DefaultPrefixes())
	require.NoError(t, err)
	require.Equal(t, "pos", dk.Name)
	require.Equal(t, "p", dk.Type)
	require.True(t, dk.Force)
	require.NotNil(t, dk.Index)
	require.Equal(t, IndexForward, dk.Index.Kind)
	require.Equal(t, 2, dk.Index.N)
}

func TestParseOptSpecEmptyPatternIsError(t *testing.T) {
	_, err := ParseOptSpec("", DefaultPrefixes())
	require.Error(t, err)
	var specErr *ParseSpecError
	require.ErrorAs(t, err, &specErr)
}

func TestParseOptSpecCodePointCorrectness(t *testing.T) {
	// "résumé" has 6 code points but more than 6 bytes (é is 2 bytes in
	// UTF-8); the name must be read by code point, not by byte.
	dk, err := ParseOptSpec("--résumé=s", DefaultPrefixes())
	require.NoError(t, err)
	require.Equal(t, "résumé", dk.Name)
}

func TestParseOptSpecTrailingGarbage(t *testing.T) {
	_, err := ParseOptSpec("--foo=s@2garbage", DefaultPrefixes())
	require.Error(t, err)
}

func TestParseOptSpecIndexForwardZeroIsAnyWhere(t *testing.T) {
	dk, err := ParseOptSpec("pos=p@0", DefaultPrefixes())
	require.NoError(t, err)
	require.True(t, dk.Index.Matches(1, 5))
	require.True(t, dk.Index.Matches(5, 5))
}

func TestParseOptSpecIndexRange(t *testing.T) {
	dk, err := ParseOptSpec("pos=p@2..4", DefaultPrefixes())
	require.NoError(t, err)
	require.False(t, dk.Index.Matches(1, 10))
	require.True(t, dk.Index.Matches(2, 10))
	require.True(t, dk.Index.Matches(4, 10))
	require.False(t, dk.Index.Matches(5, 10))
}

// Round-trip property of spec.md §8: parsing a pattern, rendering it
// back with Canonical, and reparsing must reproduce an equivalent
// DataKeeper.
func TestOptSpecCanonicalRoundTrip(t *testing.T) {
	patterns := []string{
		"--foo=s",
		"pos=p!@2",
		"--bar=i/",
		"pos=p@2..4",
	}
	for _, pattern := range patterns {
		dk, err := ParseOptSpec(pattern, DefaultPrefixes())
		require.NoError(t, err)

		canon := dk.Canonical()
		reparsed, err := ParseOptSpec(canon, DefaultPrefixes())
		require.NoError(t, err, "canonical form %q must reparse", canon)

		require.Equal(t, dk.Name, reparsed.Name)
		require.Equal(t, dk.Type, reparsed.Type)
		require.Equal(t, dk.Force, reparsed.Force)
		require.Equal(t, dk.Deactivate, reparsed.Deactivate)
		if dk.Index == nil {
			require.Nil(t, reparsed.Index)
		} else {
			require.NotNil(t, reparsed.Index)
			require.Equal(t, *dk.Index, *reparsed.Index)
		}
	}
}
