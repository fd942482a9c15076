package optx

import (
	"sort"
	"strconv"
	"strings"
)

// DataKeeper is the result of parsing an option-spec pattern string of
// the form:
//
//	pattern   := prefix? name? ("=" type)? ("!"|"/")* ("@" index)?
//	index     := "*" | signed-num | ">" num | "<" num | list | "-" list | range
//	range     := num ".." num | num ".." | ".." num
//	list      := "[" num ("," num)* "]"
//	signed-num:= ("+"|"-")? num
//	num       := [0-9]+   ; whitespace allowed inside lists
//
// Parsing walks code points, not bytes, so that split points computed
// from a DataKeeper (e.g. by the Guess engine) agree with the index at
// which the name was read.
type DataKeeper struct {
	Prefix     string
	Name       string
	Type       string
	Force      bool
	Deactivate bool
	Index      *Index
}

// DefaultPrefixes is the default prefix set: "--" before "-" so that
// longest-match prefix detection prefers the long form.
func DefaultPrefixes() []string {
	return []string{"--", "-"}
}

// ParseOptSpec parses pattern using prefixes as the candidate prefix
// set (longest match wins). An empty pattern is a ParseSpecError, never
// an empty DataKeeper.
func ParseOptSpec(pattern string, prefixes []string) (*DataKeeper, error) {
	if pattern == "" {
		return nil, &ParseSpecError{Pattern: pattern, Msg: "empty pattern"}
	}
	runes := []rune(pattern)
	pos := 0

	dk := &DataKeeper{}

	// 1. prefix: longest match against the configured prefix set.
	if prefix, ok := longestPrefixMatch(pattern, prefixes); ok {
		dk.Prefix = prefix
		pos = len([]rune(prefix))
	}

	// 2. name: characters up to the first of '=', '!', '/', '@'.
	start := pos
	for pos < len(runes) && !isSpecDelim(runes[pos]) {
		pos++
	}
	dk.Name = string(runes[start:pos])

	// 3. optional "=type"
	if pos < len(runes) && runes[pos] == '=' {
		pos++
		start = pos
		for pos < len(runes) && runes[pos] != '!' && runes[pos] != '/' && runes[pos] != '@' {
			pos++
		}
		dk.Type = string(runes[start:pos])
	}

	// 4. "!"/"/" markers, any order, any count.
	for pos < len(runes) && (runes[pos] == '!' || runes[pos] == '/') {
		if runes[pos] == '!' {
			dk.Force = true
		} else {
			dk.Deactivate = true
		}
		pos++
	}

	// 5. "@index-expr"
	if pos < len(runes) && runes[pos] == '@' {
		pos++
		idx, err := parseIndexExpr(pattern, runes[pos:])
		if err != nil {
			return nil, err
		}
		dk.Index = idx
		pos = len(runes)
	}

	if pos != len(runes) {
		return nil, &ParseSpecError{Pattern: pattern, Msg: "trailing characters in pattern"}
	}

	if dk.Prefix == "" && dk.Name == "" && dk.Type == "" && !dk.Force && !dk.Deactivate && dk.Index == nil {
		return nil, &ParseSpecError{Pattern: pattern, Msg: "pattern carries no information"}
	}

	return dk, nil
}

func isSpecDelim(r rune) bool {
	return r == '=' || r == '!' || r == '/' || r == '@'
}

// longestPrefixMatch returns the longest prefix in prefixes that s
// starts with.
func longestPrefixMatch(s string, prefixes []string) (string, bool) {
	sorted := append([]string{}, prefixes...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	for _, p := range sorted {
		if p != "" && strings.HasPrefix(s, p) {
			return p, true
		}
	}
	return "", false
}

// parseIndexExpr parses the index-expr grammar of the mini-language.
// fullPattern is only used for error messages.
func parseIndexExpr(fullPattern string, runes []rune) (*Index, error) {
	if len(runes) == 0 {
		return nil, &ParseSpecError{Pattern: fullPattern, Msg: "empty index expression"}
	}

	switch {
	case len(runes) == 1 && runes[0] == '*':
		idx := AnyWhereIndex()
		return &idx, nil

	case runes[0] == '>':
		n, err := parseIndexNum(fullPattern, string(runes[1:]))
		if err != nil {
			return nil, err
		}
		idx := GreaterIndex(n)
		return &idx, nil

	case runes[0] == '<':
		n, err := parseIndexNum(fullPattern, string(runes[1:]))
		if err != nil {
			return nil, err
		}
		idx := LessIndex(n)
		return &idx, nil

	case runes[0] == '[':
		set, err := parseIndexList(fullPattern, runes)
		if err != nil {
			return nil, err
		}
		idx := ListIndex(set...)
		return &idx, nil

	case runes[0] == '+' && len(runes) > 1 && runes[1] == '[':
		set, err := parseIndexList(fullPattern, runes[1:])
		if err != nil {
			return nil, err
		}
		idx := ListIndex(set...)
		return &idx, nil

	case runes[0] == '-' && len(runes) > 1 && runes[1] == '[':
		set, err := parseIndexList(fullPattern, runes[1:])
		if err != nil {
			return nil, err
		}
		idx := ExceptIndex(set...)
		return &idx, nil
	}

	s := string(runes)
	if strings.Contains(s, "..") {
		return parseIndexRange(fullPattern, s)
	}

	n, err := parseSignedIndexNum(fullPattern, s)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(s, "-") {
		idx := BackwardIndex(-n)
		return &idx, nil
	}
	idx := ForwardIndex(n)
	return &idx, nil
}

func parseIndexRange(fullPattern, s string) (*Index, error) {
	i := strings.Index(s, "..")
	left, right := s[:i], s[i+2:]

	var lo, hi int
	hasLo, hasHi := false, false

	if left != "" {
		v, err := parseIndexNum(fullPattern, left)
		if err != nil {
			return nil, err
		}
		lo, hasLo = v, true
	}
	if right != "" {
		v, err := parseIndexNum(fullPattern, right)
		if err != nil {
			return nil, err
		}
		hi, hasHi = v, true
	}
	if !hasLo && !hasHi {
		return nil, &ParseSpecError{Pattern: fullPattern, Msg: "range has neither bound"}
	}
	idx := Index{Kind: IndexRange, HasLo: hasLo, Lo: lo, HasHi: hasHi, Hi: hi}
	return &idx, nil
}

func parseIndexList(fullPattern string, runes []rune) ([]int, error) {
	if runes[len(runes)-1] != ']' {
		return nil, &ParseSpecError{Pattern: fullPattern, Msg: "index list missing closing ']'"}
	}
	inner := string(runes[1 : len(runes)-1])
	if strings.TrimSpace(inner) == "" {
		return nil, &ParseSpecError{Pattern: fullPattern, Msg: "empty index list"}
	}
	var out []int
	for _, part := range strings.Split(inner, ",") {
		n, err := parseIndexNum(fullPattern, strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseIndexNum(fullPattern, s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseSpecError{Pattern: fullPattern, Msg: "invalid index number: " + s}
	}
	return n, nil
}

func parseSignedIndexNum(fullPattern, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ParseSpecError{Pattern: fullPattern, Msg: "missing index number"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseSpecError{Pattern: fullPattern, Msg: "invalid index number: " + s}
	}
	if n < 0 {
		return n, nil
	}
	return n, nil
}

// Canonical renders dk back into pattern form, used to test the
// round-trip property: ParseOptSpec(Canonical(ParseOptSpec(s))) should
// reproduce an equivalent DataKeeper.
func (dk *DataKeeper) Canonical() string {
	var sb strings.Builder
	sb.WriteString(dk.Prefix)
	sb.WriteString(dk.Name)
	if dk.Type != "" {
		sb.WriteString("=")
		sb.WriteString(dk.Type)
	}
	if dk.Force {
		sb.WriteString("!")
	}
	if dk.Deactivate {
		sb.WriteString("/")
	}
	if dk.Index != nil {
		sb.WriteString("@")
		sb.WriteString(canonicalIndex(*dk.Index))
	}
	return sb.String()
}

func canonicalIndex(ix Index) string {
	switch ix.Kind {
	case IndexAnyWhere:
		return "*"
	case IndexForward:
		return strconv.Itoa(ix.N)
	case IndexBackward:
		return "-" + strconv.Itoa(ix.N)
	case IndexGreater:
		return ">" + strconv.Itoa(ix.N)
	case IndexLess:
		return "<" + strconv.Itoa(ix.N)
	case IndexList:
		return "[" + joinInts(ix.Set) + "]"
	case IndexExcept:
		return "-[" + joinInts(ix.Set) + "]"
	case IndexRange:
		var sb strings.Builder
		if ix.HasLo {
			sb.WriteString(strconv.Itoa(ix.Lo))
		}
		sb.WriteString("..")
		if ix.HasHi {
			sb.WriteString(strconv.Itoa(ix.Hi))
		}
		return sb.String()
	default:
		return ""
	}
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
