package optx

import (
	"strconv"
)

// ValueType is an abstract tag of the type an Option's values are
// stored as.
type ValueType int

const (
	TypeAuto ValueType = iota
	TypeInt
	TypeUint
	TypeFloat
	TypeBool
	TypeString
	TypePath
	TypeCount
	TypeMap
	TypeArray
	TypeRaw
)

// builtinCtors maps the ctor keywords of the option mini-language's
// "=type" field to a ValueType. defaultActionFor picks the Action used
// when none is set explicitly.
var builtinCtors = map[string]ValueType{
	"i": TypeInt,
	"u": TypeUint,
	"f": TypeFloat,
	"b": TypeBool,
	"s": TypeString,
	"p": TypePath,
	"c": TypeCount,
	"m": TypeMap,
	"a": TypeArray,
	"r": TypeRaw,
}

func defaultActionFor(vt ValueType) Action {
	switch vt {
	case TypeCount:
		return ActionCnt
	case TypeArray, TypeMap:
		return ActionApp
	default:
		return ActionSet
	}
}

// Storer converts a raw argument string into a typed value.
type Storer func(raw string) (any, error)

// Initializer produces a default value for an Option that was never
// matched.
type Initializer func() any

func storerFor(vt ValueType) Storer {
	switch vt {
	case TypeInt:
		return func(raw string) (any, error) { return strconv.Atoi(raw) }
	case TypeUint:
		return func(raw string) (any, error) {
			v, err := strconv.ParseUint(raw, 10, 64)
			return uint(v), err
		}
	case TypeFloat:
		return func(raw string) (any, error) { return strconv.ParseFloat(raw, 64) }
	case TypeBool:
		return func(raw string) (any, error) {
			if raw == "" {
				return true, nil
			}
			return strconv.ParseBool(raw)
		}
	case TypeCount:
		return counterStorer
	case TypePath, TypeString, TypeMap, TypeArray, TypeRaw:
		return func(raw string) (any, error) { return raw, nil }
	default:
		return func(raw string) (any, error) { return raw, nil }
	}
}

// OptConfig is the compiled, immutable-once-built configuration used to
// construct an Option. See OptConfigBuilder for the mutable form that
// merges a spec-string builder with explicit field overrides.
type OptConfig struct {
	Name        string
	Aliases     []string
	Type        ValueType
	TypeName    string
	Action      Action
	Force       bool
	Deactivate  bool
	Styles      []OptStyle
	Index       *Index
	Storer      Storer
	Initializer Initializer
	Help        string
	Hint        string
}

// OptConfigBuilder is the mutable builder returned by Parser.AddOpt. It
// composes a spec-string builder (the parsed pattern) with a typed
// builder chain of explicit With*-style calls: for every field, the
// explicit call (outer) wins if present, otherwise the field parsed
// from the pattern (inner) is used. ignoreName/ignoreAlias/ignoreIndex
// OR together across both sides.
type OptConfigBuilder struct {
	parser  *Parser
	pattern string

	name    *string
	aliases []string
	force   *bool
	deact   *bool
	index   *Index
	vtype   *ValueType
	tname   *string
	action  *Action
	storer  Storer
	initer  Initializer
	help    *string
	hint    *string
	styles  []OptStyle

	ignoreName  bool
	ignoreAlias bool
	ignoreIndex bool
}

func newOptConfigBuilder(p *Parser, pattern string) *OptConfigBuilder {
	return &OptConfigBuilder{parser: p, pattern: pattern}
}

// Alias registers an additional alias name for the option being built.
func (b *OptConfigBuilder) Alias(name string) *OptConfigBuilder {
	b.aliases = append(b.aliases, name)
	return b
}

// Force marks the option as required.
func (b *OptConfigBuilder) Force(v bool) *OptConfigBuilder {
	b.force = &v
	return b
}

// WithIndex overrides the positional index predicate.
func (b *OptConfigBuilder) WithIndex(ix Index) *OptConfigBuilder {
	b.index = &ix
	return b
}

// WithType overrides the ctor keyword (one of i,u,f,b,s,p,c,m,a,r).
func (b *OptConfigBuilder) WithType(ctor string) *OptConfigBuilder {
	b.tname = &ctor
	return b
}

// WithAction overrides the commit action.
func (b *OptConfigBuilder) WithAction(a Action) *OptConfigBuilder {
	b.action = &a
	return b
}

// WithStorer overrides the raw-to-typed value conversion.
func (b *OptConfigBuilder) WithStorer(s Storer) *OptConfigBuilder {
	b.storer = s
	return b
}

// WithInitializer sets the default-value producer.
func (b *OptConfigBuilder) WithInitializer(i Initializer) *OptConfigBuilder {
	b.initer = i
	return b
}

// Help sets the option's help text.
func (b *OptConfigBuilder) Help(s string) *OptConfigBuilder {
	b.help = &s
	return b
}

// Hint sets the option's hint text, independent from Help (see
// DESIGN.md's note on the reference's with_hint bug).
func (b *OptConfigBuilder) Hint(s string) *OptConfigBuilder {
	b.hint = &s
	return b
}

// Styles overrides the set of OptStyles this option accepts. If not
// called, defaultStylesFor infers them: Pos for an option with an
// index, and a set that depends on the value type otherwise. Cmd and
// Main options cannot be expressed by the pattern alone and need an
// explicit Styles call.
func (b *OptConfigBuilder) Styles(styles ...OptStyle) *OptConfigBuilder {
	b.styles = styles
	return b
}

// IgnoreName drops the name parsed from the pattern (e.g. when the
// caller will supply aliases/an index only).
func (b *OptConfigBuilder) IgnoreName() *OptConfigBuilder {
	b.ignoreName = true
	return b
}

// IgnoreAlias drops every alias added on this builder with Alias,
// whether before or after this call.
func (b *OptConfigBuilder) IgnoreAlias() *OptConfigBuilder {
	b.ignoreAlias = true
	return b
}

// IgnoreIndex drops the index, whether parsed from the pattern or set
// with WithIndex.
func (b *OptConfigBuilder) IgnoreIndex() *OptConfigBuilder {
	b.ignoreIndex = true
	return b
}

// Run finalizes the builder: it parses the pattern, merges it with the
// explicit overrides, infers the builtin type/action/storer, inserts
// the resulting Option into the parser's OptSet, and returns its uid.
func (b *OptConfigBuilder) Run() (int, error) {
	dk, err := ParseOptSpec(b.pattern, b.parser.prefixes)
	if err != nil {
		return -1, err
	}

	cfg := OptConfig{}

	if b.ignoreName {
		cfg.Name = ""
	} else if b.name != nil {
		cfg.Name = *b.name
	} else {
		cfg.Name = dk.Name
	}

	if !b.ignoreAlias {
		cfg.Aliases = append(cfg.Aliases, b.aliases...)
	}

	if b.force != nil {
		cfg.Force = *b.force
	} else {
		cfg.Force = dk.Force
	}
	if b.deact != nil {
		cfg.Deactivate = *b.deact
	} else {
		cfg.Deactivate = dk.Deactivate
	}

	if !b.ignoreIndex {
		if b.index != nil {
			cfg.Index = b.index
		} else {
			cfg.Index = dk.Index
		}
	}

	ctorName := dk.Type
	if b.tname != nil {
		ctorName = *b.tname
	}
	cfg.TypeName = ctorName
	cfg.Type = inferBuiltinType(ctorName)

	if b.action != nil {
		cfg.Action = *b.action
	} else {
		cfg.Action = defaultActionFor(cfg.Type)
	}

	if b.storer != nil {
		cfg.Storer = b.storer
	} else {
		cfg.Storer = storerFor(cfg.Type)
	}
	cfg.Initializer = b.initer

	if b.help != nil {
		cfg.Help = *b.help
	}
	if b.hint != nil {
		cfg.Hint = *b.hint
	}

	if len(b.styles) > 0 {
		cfg.Styles = b.styles
	} else {
		cfg.Styles = defaultStylesFor(cfg)
	}

	opt := newOptionFromConfig(cfg)
	return b.parser.set.Insert(opt)
}

// inferBuiltinType resolves a ctor keyword to a ValueType; unknown or
// empty ctor names fall back to TypeAuto (treated as string).
func inferBuiltinType(ctor string) ValueType {
	if vt, ok := builtinCtors[ctor]; ok {
		return vt
	}
	return TypeAuto
}

// defaultStylesFor infers which OptStyles an option accepts when the
// caller didn't call Styles explicitly. A positional (has an Index)
// only ever accepts OptPos. A bool/count-typed option never consumes a
// following argv slot, so it is a candidate for Boolean/Flag/Combined
// but not Argument/EmbeddedValue(Plus) (both of which are guessed under
// the shared OptArgument style); anything else is value-bearing and is
// a candidate for Argument (and, since a single-character value-bearing
// name can still appear inside a combined cluster, Combined) but not
// Boolean/Flag. OptEquals is granted to both families: UserEqualWithValue
// is gated on its own style precisely so an explicit "name=value" token
// can reach a bool/count option (spec.md's Counter explicit-jump form,
// e.g. "--verbose=7") without reopening OptArgument to
// UserEmbeddedValue/UserEmbeddedValuePlus, which would let a combined
// bool cluster like "-abc" be misguessed as option "a" with value "bc".
func defaultStylesFor(cfg OptConfig) []OptStyle {
	if cfg.Index != nil {
		return []OptStyle{OptPos}
	}
	if cfg.Type == TypeBool || cfg.Type == TypeCount {
		return []OptStyle{OptBoolean, OptFlag, OptCombined, OptEquals}
	}
	return []OptStyle{OptArgument, OptCombined, OptEquals}
}
