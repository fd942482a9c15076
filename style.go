package optx

// OptStyle is the set of semantic categories a compiled Option can
// accept. An Option may carry more than one.
type OptStyle int

const (
	OptArgument OptStyle = iota
	OptBoolean
	OptFlag
	OptPos
	OptCmd
	OptMain
	OptCombined
	OptEquals
)

func (s OptStyle) String() string {
	switch s {
	case OptArgument:
		return "Argument"
	case OptBoolean:
		return "Boolean"
	case OptFlag:
		return "Flag"
	case OptPos:
		return "Pos"
	case OptCmd:
		return "Cmd"
	case OptMain:
		return "Main"
	case OptCombined:
		return "Combined"
	case OptEquals:
		return "Equals"
	default:
		return "Unknown"
	}
}

// UserStyle is the classification used on the input side to choose a
// guess. The order in which UserStyles are consulted (see
// Parser.SetStyles) is significant: the first style whose precondition
// holds and whose guess produces a match wins.
type UserStyle int

const (
	UserEqualWithValue UserStyle = iota
	UserArgument
	UserEmbeddedValue
	UserEmbeddedValuePlus
	UserCombinedOption
	UserBoolean
	UserFlag
	UserMain
	UserPos
	UserCmd
)

func (s UserStyle) String() string {
	switch s {
	case UserEqualWithValue:
		return "EqualWithValue"
	case UserArgument:
		return "Argument"
	case UserEmbeddedValue:
		return "EmbeddedValue"
	case UserEmbeddedValuePlus:
		return "EmbeddedValuePlus"
	case UserCombinedOption:
		return "CombinedOption"
	case UserBoolean:
		return "Boolean"
	case UserFlag:
		return "Flag"
	case UserMain:
		return "Main"
	case UserPos:
		return "Pos"
	case UserCmd:
		return "Cmd"
	default:
		return "Unknown"
	}
}

// DefaultStyles is the style order used by a freshly constructed
// Parser. Option-consuming styles are tried before the bare Boolean and
// Flag fallbacks, and EmbeddedValuePlus is tried before CombinedOption
// so that "--opt42" is not mistaken for a combination of single-letter
// options when an EmbeddedValuePlus match exists.
func DefaultStyles() []UserStyle {
	return []UserStyle{
		UserEqualWithValue,
		UserArgument,
		UserEmbeddedValuePlus,
		UserEmbeddedValue,
		UserCombinedOption,
		UserBoolean,
		UserFlag,
		UserCmd,
		UserPos,
		UserMain,
	}
}

// Action determines how a newly produced value combines with an
// Option's existing stored values.
type Action int

const (
	// ActionSet replaces the values vector with a single new value.
	ActionSet Action = iota
	// ActionApp appends the new value to the values vector.
	ActionApp
	// ActionCnt increments an integer counter by one; an explicit value
	// (e.g. "--verbose=3") sets the counter to that value instead.
	ActionCnt
	// ActionNull records a match without storing any value.
	ActionNull
)

func (a Action) String() string {
	switch a {
	case ActionSet:
		return "Set"
	case ActionApp:
		return "App"
	case ActionCnt:
		return "Cnt"
	case ActionNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// PolicyAct lets a handler influence the remainder of a parse.
type PolicyAct int

const (
	// ActNull is the default: keep going as usual.
	ActNull PolicyAct = iota
	// ActStop ends the current token's style loop; later tokens still
	// run. Reset to ActNull before the next token is processed.
	ActStop
	// ActQuit ends the whole parse immediately and successfully. Used
	// by handlers such as --help that make the rest of the parse moot.
	ActQuit
)
