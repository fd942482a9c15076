package optx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario 1: equal-with-value.
func TestScenarioEqualWithValue(t *testing.T) {
	p := New()
	_, err := p.AddOpt("foo=s").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "--foo=bar"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Empty(t, ret.Ctx.Args())
	require.Equal(t, "bar", p.OptSet().FindByName("foo")[0].Value())
}

// Scenario 2: argument-form (value in the next argv slot).
func TestScenarioArgumentForm(t *testing.T) {
	p := New()
	_, err := p.AddOpt("foo=s").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "--foo", "bar"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Empty(t, ret.Ctx.Args())
	require.Equal(t, "bar", p.OptSet().FindByName("foo")[0].Value())
}

// Scenario 3: combined short flags.
func TestScenarioCombinedShortFlags(t *testing.T) {
	p := New()
	for _, name := range []string{"a", "b", "c"} {
		_, err := p.AddOpt(name + "=b").Run()
		require.NoError(t, err)
	}

	ret, err := p.Parse([]string{"app", "-abc"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Empty(t, ret.Ctx.Args())
	for _, name := range []string{"a", "b", "c"} {
		require.Equal(t, true, p.OptSet().FindByName(name)[0].Value())
	}
}

// Scenario 4: embedded-value ambiguity, first successful split wins.
func TestScenarioEmbeddedValueAmbiguity(t *testing.T) {
	p := New()
	_, err := p.AddOpt("op=s").Run()
	require.NoError(t, err)
	_, err = p.AddOpt("opt=s").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "--opt42"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, "42", p.OptSet().FindByName("opt")[0].Value())
}

// Scenario 5: positional with index.
func TestScenarioPositionalWithIndex(t *testing.T) {
	p := New()
	_, err := p.AddOpt("pos=p@2").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "first", "second", "third"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, "second", p.OptSet().FindByName("pos")[0].Value())
}

// Scenario 6: required-check failure.
func TestScenarioRequiredCheckFailure(t *testing.T) {
	p := New()
	_, err := p.AddOpt("foo=s!").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app"})
	require.NoError(t, err)
	require.NotNil(t, ret.Failure)

	var failure *Failure
	require.ErrorAs(t, ret.Failure, &failure)
	require.Equal(t, FailRequired, failure.Kind)
	require.Equal(t, "foo", failure.Option)
}

// A positional built with an explicit RangeIndex predicate (rather than
// one parsed from a pattern's "@lo..hi" suffix) only matches the NOA
// position inside [lo, hi].
func TestPositionalWithExplicitRangeIndex(t *testing.T) {
	p := New()
	_, err := p.AddOpt("pos=s").WithIndex(RangeIndex(3, true, 3)).Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "first", "second", "third", "fourth"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, "third", p.OptSet().FindByName("pos")[0].Value())
	require.Equal(t, []string{"first", "second", "fourth"}, ret.Ctx.Args())
}

// Invariant 1: insertion order and dense uids.
func TestInvariantInsertionOrderAndDenseUids(t *testing.T) {
	p := New()
	names := []string{"zeta", "alpha", "mid"}
	for _, n := range names {
		_, err := p.AddOpt(n + "=s").Run()
		require.NoError(t, err)
	}
	for i, o := range p.OptSet().Iter() {
		require.Equal(t, i, o.Uid())
		require.Equal(t, names[i], o.Name())
	}
}

// Invariant 2: name uniqueness without overload mode.
func TestInvariantNameUniqueness(t *testing.T) {
	p := New()
	_, err := p.AddOpt("foo=s").Run()
	require.NoError(t, err)
	_, err = p.AddOpt("foo=s").Run()
	require.Error(t, err)
}

// Invariant 5: at most one Cmd matched per parse.
func TestInvariantCmdUniqueness(t *testing.T) {
	p := New()
	_, err := p.AddOpt("run").Styles(OptCmd).Run()
	require.NoError(t, err)
	_, err = p.AddOpt("list").Styles(OptCmd).Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "run"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)

	run := p.OptSet().FindByName("run")[0]
	list := p.OptSet().FindByName("list")[0]
	require.True(t, run.Matched())
	require.False(t, list.Matched())
}

// Invariant 6: code-point correctness for embedded-value splits.
func TestInvariantCodePointSplit(t *testing.T) {
	p := New()
	_, err := p.AddOpt("é=s").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "-ébar"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, "bar", p.OptSet().FindByName("é")[0].Value())
}

// Round-trip/idempotence: parse, reset, parse again yields identical
// final values.
func TestParseResetParseIdempotent(t *testing.T) {
	p := New()
	_, err := p.AddOpt("foo=s").Run()
	require.NoError(t, err)

	ret1, err := p.Parse([]string{"app", "--foo=bar"})
	require.NoError(t, err)
	require.Nil(t, ret1.Failure)
	first := p.OptSet().FindByName("foo")[0].Value()

	p.Reset()

	ret2, err := p.Parse([]string{"app", "--foo=bar"})
	require.NoError(t, err)
	require.Nil(t, ret2.Failure)
	second := p.OptSet().FindByName("foo")[0].Value()

	require.Equal(t, first, second)
}

// Non-positional, non-option tokens become the NOA vector passed to Main.
func TestUnmatchedTokensBecomeNoa(t *testing.T) {
	p := New()
	_, err := p.AddOpt("foo=s").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "--foo=bar", "left", "over"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, []string{"left", "over"}, ret.Ctx.Args())
}

// Strict mode turns an unrecognized option-like token into a fatal
// error instead of reclassifying it as a non-option argument.
func TestStrictModeRejectsUnknownOption(t *testing.T) {
	p := New(WithStrict())
	_, err := p.AddOpt("foo=s").Run()
	require.NoError(t, err)

	_, err = p.Parse([]string{"app", "--bogus"})
	require.Error(t, err)
}

// Counter fields increment on bare presence and jump on explicit value.
func TestCounterIncrementAndExplicitJump(t *testing.T) {
	p := New()
	_, err := p.AddOpt("verbose=c").Alias("v").Run()
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "-v", "-v", "-v"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, 3, p.OptSet().FindByName("verbose")[0].Value())

	p.Reset()
	ret, err = p.Parse([]string{"app", "--verbose=7"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, 7, p.OptSet().FindByName("verbose")[0].Value())
}
