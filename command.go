package optx

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	wordwrap "github.com/mitchellh/go-wordwrap"
)

// HasPrintedHelp is the fake subcommand returned when CommandParser.Getopt or
// CommandParser.MustGetopt have printed a help message.
type HasPrintedHelp struct{}

// Command creates the toplevel command for the whole program with the given
// description, the given options, and zero or more subcommands. This function
// also registers an internal "help" subcommand unless one has already been
// included in subcommands. Apart from that, this function is equivalent to
// calling Subcommand with os.Args[0] as the command name.
func Command(description string, options any, subcommands ...*CommandParser) *CommandParser {
	if !containsHelp(subcommands) {
		subcommands = append(subcommands, LeafSubcommand(
			"help", "Prints generic or command-specific help", &subcommandHelp{}))
	}
	return Subcommand(os.Args[0], description, options, subcommands...)
}

func containsHelp(subcommands []*CommandParser) bool {
	for _, sc := range subcommands {
		if sc.name == "help" {
			return true
		}
	}
	return false
}

// subcommandHelp is the internal "help" subcommand.
type subcommandHelp struct{}

// Subcommand creates a new subcommand with the given name, the given
// description, the given options struct (see NewParser for its tag
// conventions), and zero or more nested subcommands.
func Subcommand(name, description string, options any, subcommands ...*CommandParser) *CommandParser {
	sort.SliceStable(subcommands, func(i, j int) bool {
		return subcommands[i].name < subcommands[j].name
	})
	return &CommandParser{
		description: description,
		name:        name,
		options:     options,
		pac:         newPositionalArgumentsChecker(),
		subcommands: subcommands,
	}
}

// LeafSubcommand creates a subcommand that takes no further subcommands
// (a leaf in the commands tree). Use config (e.g. NoPositionalArguments)
// to control how many positional arguments the leaf accepts.
func LeafSubcommand(name, description string, options any, config ...DeriveOption) *CommandParser {
	p := Subcommand(name, description, options)
	for _, entry := range config {
		switch value := entry.(type) {
		case *minMaxPositionalArguments:
			p.pac.minArgs = value.minArgs
			p.pac.maxArgs = value.maxArgs
		default:
			log.Printf("optx: ignoring unsupported piece of config: %T %+v", entry, entry)
		}
	}
	return p
}

// CommandParser is a parser for a command or a subcommand, constructed
// with Command (for the top level) or Subcommand/LeafSubcommand.
type CommandParser struct {
	description string
	name        string
	options     any
	pac         *positionalArgumentsChecker
	subcommands []*CommandParser
}

// SelectedCommand is returned by a successful CommandParser.{Must,}Getopt.
type SelectedCommand struct {
	options any
	args    []string
}

// Args returns the selected command's positional arguments.
func (sc *SelectedCommand) Args() []string { return sc.args }

// NArgs returns the number of positional arguments.
func (sc *SelectedCommand) NArgs() int { return len(sc.args) }

// Options returns the selected command's options struct pointer, the
// same one passed to Command/Subcommand/LeafSubcommand: switch on its
// dynamic type to learn which leaf was selected.
func (sc *SelectedCommand) Options() any { return sc.options }

// Getopt parses command line arguments for the given command, returning
// the selected (sub)command or an error.
func (p *CommandParser) Getopt(args []string) (*SelectedCommand, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("optx: passed a zero length argv")
	}
	sc, err := p.getoptall([]*CommandParser{p}, args)
	if err != nil {
		return nil, err
	}
	// Intercept the internal "help" subcommand and rewrite
	//
	//     args0 help a b c
	//
	// into
	//
	//     args0 a b c --help
	//
	// so contextual help for "a b c" gets printed.
	if _, ok := sc.options.(*subcommandHelp); ok {
		v := append([]string{args[0]}, sc.args...)
		v = append(v, "--help")
		return p.Getopt(v)
	}
	return sc, nil
}

// MustGetopt is exactly like Getopt except that it calls os.Exit(1) on error.
func (p *CommandParser) MustGetopt(args []string) *SelectedCommand {
	sc, err := p.Getopt(args)
	if err != nil {
		os.Exit(1)
	}
	return sc
}

// getoptall is the internal worker behind Getopt.
func (p *CommandParser) getoptall(chain []*CommandParser, args []string) (*SelectedCommand, error) {
	if len(chain) < 1 {
		panic("optx: called with zero length chain")
	}
	cmd := chain[0].name

	fullcmd := p.fullcmd(chain)
	parser, err := NewParser(p.options, SetProgramName(fullcmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: internal error: %s\n", cmd, err.Error())
		return nil, err
	}

	ret, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s. See '%s --help'.\n", cmd, err.Error(), fullcmd)
		return nil, err
	}
	if ret.Failure != nil {
		fmt.Fprintf(os.Stderr, "%s: %s. See '%s --help'.\n", cmd, ret.Failure.Error(), fullcmd)
		return nil, ret.Failure
	}

	leftover := ret.Ctx.Args()

	if parser.HelpRequested() {
		// This level consumed --help. If the leftover arguments still
		// name one of our subcommands, pass --help on to it, so that
		// the help of the innermost named command gets printed.
		for _, sc := range p.subcommands {
			if len(leftover) > 0 && leftover[0] == sc.name {
				subchain := append(append([]*CommandParser{}, chain...), sc)
				return sc.getoptall(subchain, append(append([]string{}, leftover...), "--help"))
			}
		}
		p.printHelp(parser, os.Stdout, chain)
		return &SelectedCommand{options: &HasPrintedHelp{}}, nil
	}

	// If there are no subcommands left we've reached a leaf: check the
	// declared positional-argument policy and return the selection.
	if len(p.subcommands) <= 0 {
		if err := p.pac.check(leftover); err != nil {
			return nil, fmt.Errorf("%s: for command %s: %w", cmd, p.name, err)
		}
		return p.newSelectedCommand(leftover), nil
	}

	// We expected a subcommand name but didn't get one. At the top
	// level this is treated as a request for help, to be friendly.
	if len(leftover) <= 0 {
		if len(chain) < 2 {
			p.printHelp(parser, os.Stdout, chain)
			return &SelectedCommand{options: &HasPrintedHelp{}}, nil
		}
		fmt.Fprintf(os.Stderr, "%s: expected subcommand name. See '%s --help'.\n", cmd, fullcmd)
		return nil, fmt.Errorf("optx: expected subcommand name")
	}

	subcmd := leftover[0]
	for _, sc := range p.subcommands {
		if subcmd != sc.name {
			continue
		}
		subchain := append([]*CommandParser{}, chain...)
		subchain = append(subchain, sc)
		return sc.getoptall(subchain, leftover)
	}

	fmt.Fprintf(os.Stderr, "%s: no such subcommand: '%s'. See '%s --help'.\n", cmd, subcmd, fullcmd)
	return nil, ErrNoSuchSubcommand
}

func (p *CommandParser) newSelectedCommand(args []string) *SelectedCommand {
	return &SelectedCommand{options: p.options, args: args}
}

// printHelp prints the help message for this command.
func (p *CommandParser) printHelp(parser *Parser, w io.Writer, chain []*CommandParser) {
	p.printBriefUsage(w, chain)
	p.printSubcommandDescription(w)
	p.printOptions(w, chain)
	p.printSubcommands(w, nil)
}

func (p *CommandParser) printBriefUsage(w io.Writer, chain []*CommandParser) {
	var sb strings.Builder
	sb.WriteString("\nUsage:")
	for idx, entry := range chain {
		sb.WriteString(" ")
		sb.WriteString(entry.name)
		if entry.hasOptions() {
			sb.WriteString(" [options]")
		}
		if idx >= len(chain)-1 {
			break
		}
	}
	sb.WriteString(p.positionalArgumentsPlaceholder())
	sb.WriteString("\n")
	fmt.Fprint(w, sb.String())
}

func (p *CommandParser) positionalArgumentsPlaceholder() string {
	switch {
	case len(p.subcommands) > 0:
		return " <subcommand> [...]"
	case p.pac.maxArgs > 1 || p.pac.maxArgs < 0:
		return " <argument> [<argument> ...]"
	case p.pac.maxArgs > 0:
		return " <argument>"
	default:
		return ""
	}
}

func (p *CommandParser) hasOptions() bool {
	parser, err := NewParser(p.options)
	return err == nil && parser.NumOptions() > 1 // > 1: ignore the automatic -h/--help
}

func (p *CommandParser) printSubcommandDescription(w io.Writer) {
	fmt.Fprintf(w, "\n")
	doc := p.description
	if !strings.HasSuffix(doc, ".") {
		doc += "."
	}
	for _, line := range strings.Split(wordwrap.WrapString(doc, 72), "\n") {
		fmt.Fprintf(w, "%s\n", line)
	}
	fmt.Fprintf(w, "\n")
}

func (p *CommandParser) printOptions(w io.Writer, chain []*CommandParser) {
	for _, entry := range chain {
		parser, err := NewParser(entry.options)
		if err != nil {
			continue
		}
		if parser.NumOptions() <= 0 {
			continue
		}
		fmt.Fprintf(w, "Options for %s:\n\n", entry.name)
		parser.PrintOptions(w)
	}
}

func (p *CommandParser) printSubcommands(w io.Writer, names []string) {
	if len(p.subcommands) > 0 {
		if len(names) <= 0 {
			fmt.Fprintf(w, "Subcommands:\n\n")
		}
		for _, sc := range p.subcommands {
			newnames := append([]string{}, names...)
			newnames = append(newnames, sc.name)
			if len(sc.subcommands) > 0 {
				sc.printSubcommands(w, newnames)
				continue
			}
			p.printSingleSubcommand(w, sc.description, newnames)
		}
	}
}

func (p *CommandParser) printSingleSubcommand(w io.Writer, doc string, names []string) {
	fmt.Fprintf(w, "  %s\n", strings.Join(names, " "))
	if !strings.HasSuffix(doc, ".") {
		doc += "."
	}
	for _, line := range strings.Split(wordwrap.WrapString(doc, 64), "\n") {
		fmt.Fprintf(w, "             %s\n", line)
	}
	fmt.Fprintf(w, "\n")
}

func (p *CommandParser) fullcmd(chain []*CommandParser) string {
	var sequence []string
	for _, pp := range chain {
		sequence = append(sequence, pp.name)
	}
	return strings.Join(sequence, " ")
}
