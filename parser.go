package optx

import (
	"fmt"
	"log/slog"
	"os"
)

// Return is the result of a completed Parse. Ctx is always non-nil;
// Failure is nil on full success, or the recoverable error a phase's
// SetChecker decided to promote. Fatal errors (malformed specs, handler
// errors that are not Failures) are returned directly by Parse instead.
// Sub and SubName are set when a Cmd-matched token pivoted execution
// into a sub-parser registered with AddParser (spec.md §6): Sub is that
// sub-parser's own Return, and SubName is the Cmd token that selected
// it. Sub is nil unless AddParser registered a sub-parser under the
// matched Cmd's name.
type Return struct {
	Ctx     *Ctx
	Failure error
	Sub     *Return
	SubName string
}

// Parser is the top-level driver: it owns an OptSet, an Invoker, the
// configured UserStyle order, and (for Cmd-triggered dispatch) a table
// of named sub-parsers.
type Parser struct {
	set *OptSet
	inv *Invoker

	styles   []UserStyle
	prefixes []string

	strict   bool
	delay    bool
	overload bool
	debug    bool

	noDelay map[string]bool

	subParsers map[string]*Parser

	logger *slog.Logger

	lastReturn *Return

	// programName and pac back the CommandParser/derive façade (command.go,
	// derive.go): the program name shown in usage/help text, and the
	// positional-argument-count policy for a leaf subcommand.
	programName    string
	posPlaceholder string
	pac            *positionalArgumentsChecker
	helpUid        int
	hasHelpUid     bool
}

// ParserOption configures a Parser at construction time.
type ParserOption func(*Parser)

// WithPrefixes overrides the default {"--", "-"} prefix set.
func WithPrefixes(prefixes ...string) ParserOption {
	return func(p *Parser) { p.prefixes = prefixes }
}

// WithDelay builds a Parser that runs the delayed policy (spec.md §4.6).
func WithDelay() ParserOption {
	return func(p *Parser) { p.delay = true }
}

// WithStrict enables strict mode: an unrecognized option-like token is
// a failure instead of being reclassified as a positional argument.
func WithStrict() ParserOption {
	return func(p *Parser) { p.strict = true }
}

// New builds an empty Parser.
func New(opts ...ParserOption) *Parser {
	p := &Parser{
		styles:     DefaultStyles(),
		prefixes:   DefaultPrefixes(),
		noDelay:    make(map[string]bool),
		subParsers: make(map[string]*Parser),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.set = NewOptSet(p.prefixes)
	p.inv = NewInvoker()
	return p
}

// AddOpt begins building a new option from a mini-language pattern.
// Call Run on the returned builder to finalize it and obtain its uid.
func (p *Parser) AddOpt(spec string) *OptConfigBuilder {
	return newOptConfigBuilder(p, spec)
}

// Entry returns the Invoker builder for uid.
func (p *Parser) Entry(uid int) *InvokerEntry {
	return p.inv.Entry(uid)
}

// OptSet exposes the underlying option collection, e.g. for SetChecker
// or help rendering.
func (p *Parser) OptSet() *OptSet { return p.set }

// SetStrict toggles strict mode. See WithStrict.
func (p *Parser) SetStrict(v bool) *Parser { p.strict = v; return p }

// SetOverload toggles overload mode on the underlying OptSet.
func (p *Parser) SetOverload(v bool) *Parser {
	p.overload = v
	p.set.SetOverload(v)
	return p
}

// SetStyles overrides the UserStyle order consulted by the Guess
// engine. The first style (in this order) whose precondition holds and
// whose Match succeeds wins for a given token (invariant 3).
func (p *Parser) SetStyles(styles []UserStyle) *Parser {
	p.styles = append([]UserStyle{}, styles...)
	return p
}

// SetNoDelay marks name as exempt from the delayed policy's deferral:
// its handler still runs immediately during the options phase.
func (p *Parser) SetNoDelay(name string) *Parser {
	p.noDelay[name] = true
	return p
}

// SetDelay switches between the sequential and delayed policies.
func (p *Parser) SetDelay(v bool) *Parser { p.delay = v; return p }

// SetDebug turns on opt-in slog tracing of Guess/Match decisions.
func (p *Parser) SetDebug(v bool) *Parser { p.debug = v; return p }

// AddParser registers sub as the parser to pivot to when a Cmd-styled
// option named name matches. Sub-parsers form a tree; there are no
// cycles (spec.md §9, "Cyclic sub-parsers").
func (p *Parser) AddParser(name string, sub *Parser) *Parser {
	p.subParsers[name] = sub
	return p
}

// Reset clears all matched state on the OptSet so the Parser can be
// reused for another Parse call with identical configuration (the
// round-trip/idempotence property of spec.md §8).
func (p *Parser) Reset() { p.set.reset() }

// ProgramName returns the name set via derive.go's SetProgramName, or
// the empty string.
func (p *Parser) ProgramName() string { return p.programName }

// NumOptions counts the registered options (used by command.go to
// decide whether to print an "Options for X:" section).
func (p *Parser) NumOptions() int { return p.set.Len() }

// HasOptionNamed reports whether name is already registered, long or
// short; used by the derive façade to avoid clobbering a caller-defined
// -h/--help with an automatic one.
func (p *Parser) HasOptionNamed(name string) bool {
	_, err := p.set.GetByName(name)
	return err == nil
}

// HelpRequested reports whether the automatically-registered -h/--help
// flag (see NewParser) was matched by the most recent Parse call. It
// always returns false for a Parser built without NewParser/derive, or
// one whose flags struct defined its own help option.
func (p *Parser) HelpRequested() bool {
	if !p.hasHelpUid {
		return false
	}
	o := p.set.Get(p.helpUid)
	return o != nil && o.Matched()
}

func (p *Parser) tracef(format string, args ...any) {
	if p.debug {
		p.logger.Debug(fmt.Sprintf(format, args...))
	}
}

// Parse runs the configured policy (sequential by default, delayed if
// WithDelay/SetDelay was used) over args. args[0] is conventionally the
// program name, matching the teacher's argv-style Getopt(args).
func (p *Parser) Parse(args []string) (*Return, error) {
	ctx := NewCtx(args)
	if p.delay {
		return p.parseDelayed(ctx)
	}
	return p.parseSequential(ctx)
}

// MustGetopt is a convenience wrapper around Parse for top-level,
// non-subcommand programs built with NewParser/MustNewParser: it
// prints the error to stderr and calls os.Exit(1) on failure,
// otherwise remembering the Return so a later Args call can expose
// the leftover non-option arguments.
func (p *Parser) MustGetopt(args []string) *Return {
	ret, err := p.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if ret.Failure != nil {
		fmt.Fprintln(os.Stderr, ret.Failure)
		os.Exit(1)
	}
	p.lastReturn = ret
	return ret
}

// Args returns the non-option arguments left over by the most recent
// MustGetopt call, or nil if none has run yet.
func (p *Parser) Args() []string {
	if p.lastReturn == nil {
		return nil
	}
	return p.lastReturn.Ctx.Args()
}
