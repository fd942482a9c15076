package optx

import "fmt"

// Option is a single compiled option: the runtime representation of an
// OptConfig once it has been inserted into an OptSet and assigned a
// uid.
type Option struct {
	uid int

	name       string
	aliases    []string
	vtype      ValueType
	typeName   string
	action     Action
	force      bool
	deactivate bool
	styles     []OptStyle
	index      *Index

	storer      Storer
	initializer Initializer

	help string
	hint string

	matched bool
	values  []any
	rawvals []string
}

func newOptionFromConfig(cfg OptConfig) *Option {
	return &Option{
		name:        cfg.Name,
		aliases:     append([]string{}, cfg.Aliases...),
		vtype:       cfg.Type,
		typeName:    cfg.TypeName,
		action:      cfg.Action,
		force:       cfg.Force,
		deactivate:  cfg.Deactivate,
		styles:      append([]OptStyle{}, cfg.Styles...),
		index:       cfg.Index,
		storer:      cfg.Storer,
		initializer: cfg.Initializer,
		help:        cfg.Help,
		hint:        cfg.Hint,
	}
}

func (o *Option) Uid() int             { return o.uid }
func (o *Option) Name() string         { return o.name }
func (o *Option) Aliases() []string    { return o.aliases }
func (o *Option) Type() ValueType      { return o.vtype }
func (o *Option) Action() Action       { return o.action }
func (o *Option) Force() bool          { return o.force }
func (o *Option) Deactivated() bool    { return o.deactivate }
func (o *Option) Styles() []OptStyle   { return o.styles }
func (o *Option) Index() *Index        { return o.index }
func (o *Option) Help() string         { return o.help }
func (o *Option) Hint() string         { return o.hint }
func (o *Option) Matched() bool        { return o.matched }
func (o *Option) Values() []any        { return o.values }
func (o *Option) RawValues() []string  { return o.rawvals }

// HasStyle reports whether the option accepts the given OptStyle.
func (o *Option) HasStyle(s OptStyle) bool {
	for _, st := range o.styles {
		if st == s {
			return true
		}
	}
	return false
}

// HasName reports whether name equals the option's canonical name or
// one of its aliases.
func (o *Option) HasName(name string) bool {
	if o.name == name {
		return true
	}
	for _, a := range o.aliases {
		if a == name {
			return true
		}
	}
	return false
}

// Value returns the single current value of the option (the last
// committed one), or the Initializer's default if the option never
// matched, or nil if neither is available.
func (o *Option) Value() any {
	if len(o.values) > 0 {
		return o.values[len(o.values)-1]
	}
	if o.initializer != nil {
		return o.initializer()
	}
	return nil
}

func (o *Option) reset() {
	o.matched = false
	o.values = nil
	o.rawvals = nil
}

// OptSet is an insertion-ordered uid -> Option mapping with auxiliary
// lookup by name and alias. Uids are dense, starting at 0.
type OptSet struct {
	opts     []*Option
	byName   map[string][]int
	overload bool
	prefixes []string
}

// NewOptSet creates an empty OptSet that recognizes the given option
// prefixes.
func NewOptSet(prefixes []string) *OptSet {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes()
	}
	return &OptSet{
		byName:   make(map[string][]int),
		prefixes: append([]string{}, prefixes...),
	}
}

// SetOverload toggles overload mode: when true, multiple options may
// share a name or alias.
func (s *OptSet) SetOverload(v bool) { s.overload = v }

// Overload reports whether overload mode is active.
func (s *OptSet) Overload() bool { return s.overload }

// Prefixes returns the configured prefix set.
func (s *OptSet) Prefixes() []string { return s.prefixes }

// Insert assigns the next dense uid to o, validates name/alias
// uniqueness (unless overload mode is active), and appends it to the
// set. Returns the assigned uid.
func (s *OptSet) Insert(o *Option) (int, error) {
	if !s.overload {
		for _, name := range append([]string{o.name}, o.aliases...) {
			if name == "" {
				continue
			}
			if _, ok := s.byName[name]; ok {
				return -1, &ParseSpecError{Msg: fmt.Sprintf("name %q already registered (enable overload mode to share names)", name)}
			}
		}
	}
	uid := len(s.opts)
	o.uid = uid
	s.opts = append(s.opts, o)
	for _, name := range append([]string{o.name}, o.aliases...) {
		if name == "" {
			continue
		}
		s.byName[name] = append(s.byName[name], uid)
	}
	return uid, nil
}

// Len returns the number of options in the set.
func (s *OptSet) Len() int { return len(s.opts) }

// Iter returns the options in insertion order. The returned slice must
// not be mutated by callers.
func (s *OptSet) Iter() []*Option { return s.opts }

// Get returns the option with the given uid, or nil if uid is out of
// range.
func (s *OptSet) Get(uid int) *Option {
	if uid < 0 || uid >= len(s.opts) {
		return nil
	}
	return s.opts[uid]
}

// FindByName returns every option (in insertion order) whose name or
// alias equals name. Outside overload mode this has at most one
// element.
func (s *OptSet) FindByName(name string) []*Option {
	uids := s.byName[name]
	out := make([]*Option, 0, len(uids))
	for _, uid := range uids {
		out = append(out, s.opts[uid])
	}
	return out
}

// GetByName returns the single option named name (long name or alias),
// or ErrNotFound if none is registered. Use FindByName directly when
// overload mode may register more than one option under the same name.
func (s *OptSet) GetByName(name string) (*Option, error) {
	opts := s.FindByName(name)
	if len(opts) == 0 {
		return nil, ErrNotFound
	}
	return opts[0], nil
}

// ValidatePrefix reports whether token begins with one of the set's
// configured prefixes (longest match wins), returning the matched
// prefix and the remainder.
func (s *OptSet) ValidatePrefix(token string) (prefix, rest string, ok bool) {
	prefix, ok = longestPrefixMatch(token, s.prefixes)
	if !ok {
		return "", token, false
	}
	return prefix, token[len(prefix):], true
}

// reset clears every option's matched/values/rawvals state, so the
// OptSet can be reused for another Parse call.
func (s *OptSet) reset() {
	for _, o := range s.opts {
		o.reset()
	}
}
