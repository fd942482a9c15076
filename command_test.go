package optx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type runOptions struct {
	Verbose bool `doc:"verbose output"`
}

type listOptions struct {
	ID int `doc:"ID of the item to show"`
}

func newTestCLI() (*runOptions, *listOptions, *CommandParser) {
	run := &runOptions{}
	list := &listOptions{}
	cli := Command(
		"test tool", &struct {
			Doc string `doc:"-"`
		}{},
		LeafSubcommand("run", "runs something", run, NoPositionalArguments()),
		LeafSubcommand("list", "lists something", list, NoPositionalArguments()),
	)
	return run, list, cli
}

func TestCommandDispatchesToSelectedSubcommand(t *testing.T) {
	run, _, cli := newTestCLI()

	sc, err := cli.Getopt([]string{"app", "run", "--verbose"})
	require.NoError(t, err)
	require.Same(t, run, sc.Options())
	require.True(t, run.Verbose)
}

func TestCommandRejectsUnknownSubcommand(t *testing.T) {
	_, _, cli := newTestCLI()

	_, err := cli.Getopt([]string{"app", "bogus"})
	require.Error(t, err)
}

func TestCommandLeafRejectsUnexpectedPositional(t *testing.T) {
	_, _, cli := newTestCLI()

	_, err := cli.Getopt([]string{"app", "run", "extra"})
	require.Error(t, err)
}

func TestCommandHelpSubcommandRewritesToContextualHelp(t *testing.T) {
	_, _, cli := newTestCLI()

	sc, err := cli.Getopt([]string{"app", "help", "run"})
	require.NoError(t, err)
	_, ok := sc.Options().(*HasPrintedHelp)
	require.True(t, ok)
}

func TestCommandTopLevelHelpFlagPrintsHelp(t *testing.T) {
	_, _, cli := newTestCLI()

	sc, err := cli.Getopt([]string{"app", "--help"})
	require.NoError(t, err)
	_, ok := sc.Options().(*HasPrintedHelp)
	require.True(t, ok)
}
