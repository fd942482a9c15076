package optx

import (
	"fmt"
	"io"
	"strings"

	wordwrap "github.com/mitchellh/go-wordwrap"
)

// PrintOptions writes one entry per registered option, in insertion
// order: a line with its name and aliases, followed by its help text
// wrapped to a terminal-friendly width.
func (p *Parser) PrintOptions(w io.Writer) {
	for _, o := range p.set.Iter() {
		var sb strings.Builder
		sb.WriteString("  --")
		sb.WriteString(o.Name())
		for _, a := range o.Aliases() {
			sb.WriteString(", -")
			sb.WriteString(a)
		}
		fmt.Fprintln(w, sb.String())
		if o.Help() == "" {
			continue
		}
		for _, line := range strings.Split(wordwrap.WrapString(o.Help(), 64), "\n") {
			fmt.Fprintf(w, "      %s\n", line)
		}
	}
}

// PrintBriefUsage writes a single "Usage: <program> [options]" line,
// followed by the placeholder set with SetPositionalArgumentsPlaceholder
// when there is one.
func (p *Parser) PrintBriefUsage(w io.Writer) {
	if p.posPlaceholder != "" {
		fmt.Fprintf(w, "Usage: %s [options] %s\n", p.programName, p.posPlaceholder)
		return
	}
	fmt.Fprintf(w, "Usage: %s [options]\n", p.programName)
}
