package optx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type deriveFlags struct {
	Batch   bool     `doc:"emit JSON formatted logs" short:"b"`
	Name    string   `doc:"target name" short:"n"`
	Input   []string `doc:"add an input" short:"i"`
	Verbose Counter  `doc:"increase verbosity" short:"v"`
	Skipped string   `doc:"-"`
}

func TestNewParserDerivesFieldsAndPopulatesStruct(t *testing.T) {
	flags := &deriveFlags{}
	p, err := NewParser(flags)
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "-b", "--name=demo", "-i", "one", "-i", "two", "-vv"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)

	require.True(t, flags.Batch)
	require.Equal(t, "demo", flags.Name)
	require.Equal(t, []string{"one", "two"}, flags.Input)
	require.Equal(t, Counter(2), flags.Verbose)
}

func TestNewParserMissingDocTagIsError(t *testing.T) {
	type badFlags struct {
		Foo string
	}
	_, err := NewParser(&badFlags{})
	require.Error(t, err)
}

func TestNewParserRequiresPointerToStruct(t *testing.T) {
	_, err := NewParser(deriveFlags{})
	require.Error(t, err)
}

func TestNewParserAutoAddsHelp(t *testing.T) {
	flags := &deriveFlags{}
	p, err := NewParser(flags)
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "--help"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.True(t, p.HelpRequested())
}

func TestNewParserRequiredFieldEnforced(t *testing.T) {
	type requiredFlags struct {
		Token string `doc:"auth token" required:"true"`
	}
	flags := &requiredFlags{}
	p, err := NewParser(flags)
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app"})
	require.NoError(t, err)
	require.NotNil(t, ret.Failure)
}

func TestNewParserIndexTagMakesPositional(t *testing.T) {
	type posFlags struct {
		Target string `doc:"target file" index:"1"`
	}
	flags := &posFlags{}
	p, err := NewParser(flags)
	require.NoError(t, err)

	ret, err := p.Parse([]string{"app", "file.txt"})
	require.NoError(t, err)
	require.Nil(t, ret.Failure)
	require.Equal(t, "file.txt", flags.Target)
}
