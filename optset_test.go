package optx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptSetGetByNameFindsRegisteredOption(t *testing.T) {
	p := New()
	uid, err := p.AddOpt("--foo=s").Run()
	require.NoError(t, err)

	o, err := p.OptSet().GetByName("foo")
	require.NoError(t, err)
	require.Equal(t, uid, o.Uid())
}

func TestOptSetGetByNameUnknownReturnsErrNotFound(t *testing.T) {
	p := New()
	_, err := p.OptSet().GetByName("does-not-exist")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestParserHasOptionNamedUsesGetByName(t *testing.T) {
	p := New()
	_, err := p.AddOpt("--bar=b").Run()
	require.NoError(t, err)

	require.True(t, p.HasOptionNamed("bar"))
	require.False(t, p.HasOptionNamed("baz"))
}
