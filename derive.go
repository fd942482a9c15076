package optx

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// DeriveOption configures a Parser built by NewParser/MustNewParser.
type DeriveOption interface {
	visit(p *Parser)
}

type setProgramName struct{ name string }

func (c *setProgramName) visit(p *Parser) { p.programName = c.name }

// SetProgramName overrides the program name shown in usage/help text.
func SetProgramName(name string) DeriveOption { return &setProgramName{name: name} }

type setPositionalArgumentsPlaceholder struct{ name string }

func (c *setPositionalArgumentsPlaceholder) visit(p *Parser) {
	// Used by Parser.PrintBriefUsage only; CommandParser computes its
	// own placeholder from pac.
	p.posPlaceholder = c.name
}

// SetPositionalArgumentsPlaceholder sets the "<argument>"-style
// placeholder that Parser.PrintBriefUsage prints after "[options]".
func SetPositionalArgumentsPlaceholder(name string) DeriveOption {
	return &setPositionalArgumentsPlaceholder{name: name}
}

type minMaxPositionalArguments struct{ minArgs, maxArgs int }

func (c *minMaxPositionalArguments) visit(p *Parser) {
	p.pac.minArgs, p.pac.maxArgs = c.minArgs, c.maxArgs
}

// NoPositionalArguments rejects any positional argument for a leaf
// subcommand.
func NoPositionalArguments() DeriveOption { return &minMaxPositionalArguments{0, 0} }

// AtLeastOnePositionalArgument requires one or more positional
// arguments.
func AtLeastOnePositionalArgument() DeriveOption { return &minMaxPositionalArguments{1, -1} }

// JustOnePositionalArgument requires exactly one positional argument.
func JustOnePositionalArgument() DeriveOption { return &minMaxPositionalArguments{1, 1} }

// positionalArgumentsChecker enforces a leaf subcommand's declared
// minimum/maximum positional-argument count. maxArgs < 0 means
// unbounded.
type positionalArgumentsChecker struct {
	minArgs int
	maxArgs int
}

func newPositionalArgumentsChecker() *positionalArgumentsChecker {
	return &positionalArgumentsChecker{minArgs: 0, maxArgs: -1}
}

func (pac *positionalArgumentsChecker) check(args []string) error {
	if len(args) < pac.minArgs {
		return fmt.Errorf("expected at least %d positional argument(s), got %d", pac.minArgs, len(args))
	}
	if pac.maxArgs >= 0 && len(args) > pac.maxArgs {
		return fmt.Errorf("expected at most %d positional argument(s), got %d", pac.maxArgs, len(args))
	}
	return nil
}

var counterType = reflect.TypeOf(Counter(0))

// NewParser builds a Parser by reflecting over flags, which must be a
// pointer to a struct. Each exported field becomes a long option named
// after the kebab-cased field name (or the `name` tag, if present);
// `doc` supplies its help text and is mandatory, except for the literal
// value "-" which skips the field entirely (e.g. because it is handled
// by a different Parser, for a different subcommand). `short` adds a
// single-character alias; `required` marks it mandatory; `index`
// supplies an Index mini-language expression (spec.md §3.3) that turns
// the field into a positional instead of a long option.
func NewParser(flags any, opts ...DeriveOption) (*Parser, error) {
	p := New()
	p.pac = newPositionalArgumentsChecker()

	if err := deriveStruct(p, flags); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt.visit(p)
	}
	p.maybeAddHelp()
	return p, nil
}

// MustNewParser is like NewParser but panics on error, for callers
// that treat a malformed flags struct as a programming error.
func MustNewParser(flags any, opts ...DeriveOption) *Parser {
	p, err := NewParser(flags, opts...)
	if err != nil {
		panic(err.Error())
	}
	return p
}

func deriveStruct(p *Parser, flags any) error {
	value := reflect.ValueOf(flags)
	if value.Kind() != reflect.Ptr {
		return &ParseSpecError{Msg: "NewParser: expected a pointer"}
	}
	pointee := value.Elem()
	if pointee.Kind() != reflect.Struct {
		return &ParseSpecError{Msg: "NewParser: expected a pointer to struct"}
	}
	pointeeType := pointee.Type()

	for idx := 0; idx < pointeeType.NumField(); idx++ {
		fieldValue := pointee.Field(idx)
		if !fieldValue.CanAddr() {
			return &ParseSpecError{Msg: "NewParser: cannot obtain the address of a field"}
		}
		fieldType := pointeeType.Field(idx)
		tag := fieldType.Tag

		doc := tag.Get("doc")
		if doc == "-" {
			continue
		}
		if doc == "" {
			return &ParseSpecError{Msg: fmt.Sprintf("NewParser: field %s has no doc tag", fieldType.Name)}
		}

		if err := deriveField(p, fieldValue, fieldType, doc); err != nil {
			return err
		}
	}
	return nil
}

func deriveField(p *Parser, fv reflect.Value, sf reflect.StructField, doc string) error {
	tag := sf.Tag

	name := tag.Get("name")
	if name == "" {
		name = strcase.ToKebab(sf.Name)
	}

	short := ""
	if s := tag.Get("short"); s != "" {
		if utf8.RuneCountInString(s) != 1 {
			return &ParseSpecError{Msg: "NewParser: the short tag's value must be a single code point"}
		}
		short = s
	}

	ctor := deriveCtorFor(fv.Type())
	indexTag := tag.Get("index")

	var pattern string
	if indexTag != "" {
		pattern = fmt.Sprintf("%s=%s@%s", name, ctor, indexTag)
	} else {
		pattern = fmt.Sprintf("%s=%s", name, ctor)
	}

	b := p.AddOpt(pattern)
	if short != "" {
		b.Alias(short)
	}
	if tag.Get("required") == "true" {
		b.Force(true)
	}
	b.Help(doc)
	if indexTag != "" {
		b.Styles(OptPos)
	}

	vt := inferBuiltinType(ctor)
	uid, err := b.Run()
	if err != nil {
		return err
	}

	p.Entry(uid).On(deriveHandler(fv, vt))
	return nil
}

// deriveHandler performs the normal raw-to-value conversion (via
// convertRaw, the same conversion the non-derived path uses) and then
// additionally reflects the result back into fv, so that a struct
// passed to NewParser ends up populated once Parse returns.
func deriveHandler(fv reflect.Value, vt ValueType) Handler {
	return func(set *OptSet, ctx *Ctx) (any, bool, error) {
		inner := ctx.Inner()
		o := set.Get(inner.Uid)
		val, err := convertRaw(o, inner)
		if err != nil {
			return nil, false, err
		}
		if vt == TypeCount && val == nil {
			val = int(fv.Int()) + 1
		}
		setReflectField(fv, vt, val)
		return val, true, nil
	}
}

func setReflectField(fv reflect.Value, vt ValueType, val any) {
	switch vt {
	case TypeInt:
		fv.SetInt(int64(val.(int)))
	case TypeUint:
		fv.SetUint(uint64(val.(uint)))
	case TypeFloat:
		fv.SetFloat(val.(float64))
	case TypeBool:
		fv.SetBool(val.(bool))
	case TypeCount:
		fv.SetInt(int64(val.(int)))
	case TypeArray:
		s, _ := val.(string)
		fv.Set(reflect.Append(fv, reflect.ValueOf(s)))
	case TypeMap:
		s, _ := val.(string)
		if fv.IsNil() {
			fv.Set(reflect.MakeMap(fv.Type()))
		}
		k, v := splitKV(s)
		fv.SetMapIndex(reflect.ValueOf(k), reflect.ValueOf(v))
	default: // string, path, raw, auto
		s, _ := val.(string)
		fv.SetString(s)
	}
}

func splitKV(s string) (string, string) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// deriveCtorFor maps a struct field's Go type to the mini-language's
// ctor keyword.
func deriveCtorFor(t reflect.Type) string {
	switch {
	case t == counterType:
		return "c"
	case t.Kind() == reflect.Bool:
		return "b"
	case t.Kind() == reflect.String:
		return "s"
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Int64:
		return "i"
	case t.Kind() >= reflect.Uint && t.Kind() <= reflect.Uintptr:
		return "u"
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		return "f"
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String:
		return "a"
	case t.Kind() == reflect.Map:
		return "m"
	default:
		return "r"
	}
}

// maybeAddHelp registers a -h/--help flag unless the flags struct
// already defined one itself. Its handler requests ActQuit, so the
// parse ends successfully as soon as the flag is seen.
func (p *Parser) maybeAddHelp() {
	if p.HasOptionNamed("help") || p.HasOptionNamed("h") {
		return
	}
	uid, err := p.AddOpt("help=b").Alias("h").Help("Shows this help message").Run()
	if err != nil {
		return
	}
	p.Entry(uid).On(func(set *OptSet, ctx *Ctx) (any, bool, error) {
		ctx.SetPolicyAct(ActQuit)
		return true, true, nil
	})
	p.helpUid = uid
	p.hasHelpUid = true
}
