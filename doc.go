// Package optx implements a GNU-style command line argument parser.
//
// Under the hood there is no single "parse the flags" function, but a
// small pipeline: a Guess engine proposes a candidate interpretation of
// a token for each enabled UserStyle, a Match engine filters the
// configured OptSet against that candidate, and a Parse Policy (either
// Sequential or Delayed) drives the whole argument vector, classifying
// leftover tokens as command/positional/main non-option arguments.
//
// A reflect-based derive façade (see NewParser) and a CommandParser
// subcommand tree (see Command) sit on top of the core Parser for
// applications that would rather describe their options as a tagged
// struct than call AddOpt by hand.
package optx
