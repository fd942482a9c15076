package optx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A Cmd-matched token registered with AddParser pivots the remaining
// argv to the named sub-parser (spec.md §6).
func TestAddParserPivotsRemainderToSubParser(t *testing.T) {
	outer := New()
	_, err := outer.AddOpt("serve").Styles(OptCmd).Run()
	require.NoError(t, err)

	inner := New()
	_, err = inner.AddOpt("port=i").Run()
	require.NoError(t, err)

	outer.AddParser("serve", inner)

	ret, err := outer.Parse([]string{"app", "serve", "--port=8080"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, "serve", ret.SubName)
	require.NotNil(t, ret.Sub)
	require.Nil(t, ret.Sub.Failure)
	require.Equal(t, 8080, inner.OptSet().FindByName("port")[0].Value())
}

// A Cmd match whose name has no registered sub-parser behaves exactly
// as before: it does not pivot, and leftover tokens remain this
// parser's own NOA vector.
func TestCmdWithoutRegisteredSubParserDoesNotPivot(t *testing.T) {
	p := New()
	_, err := p.AddOpt("serve").Styles(OptCmd).Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "serve", "extra"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Nil(t, ret.Sub)
	require.Empty(t, ret.SubName)
	require.Equal(t, []string{"extra"}, ret.Ctx.Args())
}

// MustGetopt/Args expose a top-level Parser's leftover NOAs after a
// successful parse.
func TestMustGetoptArgs(t *testing.T) {
	p := New()
	_, err := p.AddOpt("foo=s").Run()
	require.NoError(t, err)

	p.MustGetopt([]string{"app", "--foo=bar", "left", "over"})
	require.Equal(t, []string{"left", "over"}, p.Args())
}
