package optx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeFor(t *testing.T, tok string) *argInfo {
	t.Helper()
	info, ok := decodeArgInfo(tok, "", false, DefaultPrefixes())
	require.True(t, ok, "expected %q to be option-like", tok)
	return info
}

func TestGuessEmbeddedValuePlusTooShortProducesNoPolicy(t *testing.T) {
	info := decodeFor(t, "--ab")
	_, ok := guessPolicy(UserEmbeddedValuePlus, info)
	require.False(t, ok)
}

func TestGuessCombinedOptionBareNameProducesNoPolicy(t *testing.T) {
	info := decodeFor(t, "-a")
	_, ok := guessPolicy(UserCombinedOption, info)
	require.False(t, ok)
}

func TestGuessEmbeddedValuePlusSplitPointPrefersLongerName(t *testing.T) {
	// Specs "--op=s" and "--opt=s"; "--opt42" must split as
	// --opt="42", not --op="t42" (spec.md scenario 4).
	p := New()
	_, err := p.AddOpt("op=s").Run()
	require.NoError(t, err)
	_, err = p.AddOpt("opt=s").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "--opt42"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)

	opt := p.OptSet().FindByName("opt")[0]
	require.True(t, opt.Matched())
	require.Equal(t, "42", opt.Value())

	op := p.OptSet().FindByName("op")[0]
	require.False(t, op.Matched())
}

func TestGuessCombinedOptionAllBoolsTrue(t *testing.T) {
	p := New()
	_, err := p.AddOpt("a=b").Run()
	require.NoError(t, err)
	_, err = p.AddOpt("b=b").Run()
	require.NoError(t, err)
	_, err = p.AddOpt("c=b").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "-abc"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Empty(t, ret.Ctx.Args())

	for _, name := range []string{"a", "b", "c"} {
		o := p.OptSet().FindByName(name)[0]
		require.True(t, o.Matched())
		require.Equal(t, true, o.Value())
	}
}
