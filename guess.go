package optx

import "unicode/utf8"

// PolicyKind distinguishes the three shapes a guessed policy can take.
type PolicyKind int

const (
	PolicySingleOpt PolicyKind = iota
	PolicyMultiOpt
	PolicySingleNonOpt
)

// SubPolicy is a single candidate opt-style match: "does an option
// named Name, accepting Style, exist, and if so does it want Arg?"
type SubPolicy struct {
	Style  OptStyle
	Name   string
	HasArg bool
	Arg    string
}

// GuessPolicy is the candidate interpretation produced by the Guess
// engine for one (UserStyle, token) pair. It is a sealed sum type
// realized as a tagged struct, per the "Trait/interface objects" design
// note in spec.md §9: a SingleOpt carries one SubPolicy, a MultiOpt
// carries several (combined short options or embedded-value-plus split
// points), and a SingleNonOpt carries none (NonOptStyle only).
type GuessPolicy struct {
	Kind     PolicyKind
	Sub      []SubPolicy
	AnyMatch bool
	Consume  bool

	NonOptStyle UserStyle
}

// argInfo is the decoded shape of one token, as read off the argument
// vector before any style-specific guessing happens.
type argInfo struct {
	name    string
	hasArg  bool
	arg     string
	hasNext bool
	next    string
}

const boolTrue = "true"

// guessPolicy implements the per-UserStyle precondition/policy table
// of spec.md §4.3.
func guessPolicy(style UserStyle, info *argInfo) (*GuessPolicy, bool) {
	switch style {
	case UserEqualWithValue:
		if !info.hasArg || info.name == "" {
			return nil, false
		}
		return &GuessPolicy{
			Kind: PolicySingleOpt,
			Sub:  []SubPolicy{{Style: OptEquals, Name: info.name, HasArg: true, Arg: info.arg}},
		}, true

	case UserArgument:
		if info.hasArg || !info.hasNext || info.name == "" {
			return nil, false
		}
		return &GuessPolicy{
			Kind:    PolicySingleOpt,
			Sub:     []SubPolicy{{Style: OptArgument, Name: info.name, HasArg: true, Arg: info.next}},
			Consume: true,
		}, true

	case UserEmbeddedValue:
		if info.hasArg {
			return nil, false
		}
		runes := []rune(info.name)
		if len(runes) < 2 {
			return nil, false
		}
		name, val := string(runes[:1]), string(runes[1:])
		return &GuessPolicy{
			Kind: PolicySingleOpt,
			Sub:  []SubPolicy{{Style: OptArgument, Name: name, HasArg: true, Arg: val}},
		}, true

	case UserEmbeddedValuePlus:
		if info.hasArg {
			return nil, false
		}
		runes := []rune(info.name)
		if len(runes) < 3 {
			return nil, false
		}
		var subs []SubPolicy
		for k := 3; k < len(runes); k++ {
			name, val := string(runes[:k]), string(runes[k:])
			subs = append(subs, SubPolicy{Style: OptArgument, Name: name, HasArg: true, Arg: val})
		}
		return &GuessPolicy{Kind: PolicyMultiOpt, Sub: subs, AnyMatch: true}, true

	case UserCombinedOption:
		if info.hasArg {
			return nil, false
		}
		runes := []rune(info.name)
		if len(runes) <= 1 {
			return nil, false
		}
		var subs []SubPolicy
		for _, r := range runes {
			subs = append(subs, SubPolicy{Style: OptCombined, Name: string(r), HasArg: true, Arg: boolTrue})
		}
		return &GuessPolicy{Kind: PolicyMultiOpt, Sub: subs, AnyMatch: false}, true

	case UserBoolean:
		if info.hasArg || info.name == "" {
			return nil, false
		}
		return &GuessPolicy{
			Kind: PolicySingleOpt,
			Sub:  []SubPolicy{{Style: OptBoolean, Name: info.name, HasArg: true, Arg: boolTrue}},
		}, true

	case UserFlag:
		if info.hasArg || info.name == "" {
			return nil, false
		}
		return &GuessPolicy{
			Kind: PolicySingleOpt,
			Sub:  []SubPolicy{{Style: OptFlag, Name: info.name, HasArg: false}},
		}, true

	case UserMain, UserPos, UserCmd:
		return &GuessPolicy{Kind: PolicySingleNonOpt, NonOptStyle: style}, true

	default:
		return nil, false
	}
}

// nonOptStyleOf maps a non-option UserStyle to the OptStyle an Option
// must carry to be a candidate for it.
func nonOptStyleOf(style UserStyle) OptStyle {
	switch style {
	case UserCmd:
		return OptCmd
	case UserPos:
		return OptPos
	default:
		return OptMain
	}
}

// runeLenPastPrefix returns the code-point length of name (the part of
// a token past its matched prefix).
func runeLenPastPrefix(name string) int {
	return utf8.RuneCountInString(name)
}
