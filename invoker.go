package optx

// Handler is a user callback bound to a uid. It returns the value to
// store (store=true), or store=false to mean "no value, but consider
// the option matched" — spec.md's Option<Value>. A non-nil err that
// IsFailure is recoverable; anything else is fatal and aborts the
// parse immediately.
type Handler func(set *OptSet, ctx *Ctx) (value any, store bool, err error)

// EntryStorer is chained after a Handler via InvokerEntry.Then. It
// receives the uid, the set, the raw source string, and the (possibly
// handler-produced) value, and reports whether it stored anything.
type EntryStorer func(uid int, set *OptSet, raw string, val any) bool

type handlerMode int

const (
	modeNone handlerMode = iota
	modeOn
	modeFallback
)

type invokerEntry struct {
	uid     int
	mode    handlerMode
	handler Handler
	storer  EntryStorer
}

// InvokerEntry is the fluent builder returned by Parser.Entry / Invoker.Entry.
type InvokerEntry struct {
	inv   *Invoker
	entry *invokerEntry
}

// On registers h as the option's handler: h's returned value (if
// store==true) is what gets committed; if store==false, the match is
// still recorded but nothing is stored.
func (e *InvokerEntry) On(h Handler) *InvokerEntry {
	e.entry.mode = modeOn
	e.entry.handler = h
	return e
}

// Fallback is like On, except that when h reports store==false, the
// default built-in storer chain runs instead (using the option's
// configured Storer and Action).
func (e *InvokerEntry) Fallback(h Handler) *InvokerEntry {
	e.entry.mode = modeFallback
	e.entry.handler = h
	return e
}

// Then chains a custom EntryStorer after the handler (or, if no handler
// is registered, after the default conversion).
func (e *InvokerEntry) Then(s EntryStorer) *InvokerEntry {
	e.entry.storer = s
	return e
}

// Invoker is a uid-keyed registry of handlers plus the default storer
// chain that runs when no handler overrides it.
type Invoker struct {
	entries map[int]*invokerEntry
}

// NewInvoker returns an empty Invoker.
func NewInvoker() *Invoker {
	return &Invoker{entries: make(map[int]*invokerEntry)}
}

// Entry returns the builder for uid, creating an empty registration if
// none exists yet.
func (inv *Invoker) Entry(uid int) *InvokerEntry {
	e, ok := inv.entries[uid]
	if !ok {
		e = &invokerEntry{uid: uid}
		inv.entries[uid] = e
	}
	return &InvokerEntry{inv: inv, entry: e}
}

// Invoke runs whatever is registered for ctx.Inner().Uid, falling back
// to the default storer chain when nothing is registered or when a
// Fallback handler yields no value. It returns the handler's error or
// the raw-to-value conversion's Failure, if any.
func (inv *Invoker) Invoke(set *OptSet, ctx *Ctx) error {
	inner := ctx.Inner()
	o := set.Get(inner.Uid)
	if o == nil {
		return &Failure{Kind: FailNotFound, Option: inner.Name, Msg: "uid not registered in set"}
	}

	e, hasEntry := inv.entries[inner.Uid]
	raw := effectiveRaw(o, inner)

	runDefault := func(val any) {
		if e != nil && e.storer != nil {
			if e.storer(inner.Uid, set, raw, val) {
				return
			}
		}
		defaultStore(o, raw, val)
	}

	if !hasEntry || e.mode == modeNone {
		val, err := convertRaw(o, inner)
		if err != nil {
			return err
		}
		runDefault(val)
		return nil
	}

	val, store, err := e.handler(set, ctx)
	if err != nil {
		return err
	}

	switch e.mode {
	case modeOn:
		if store {
			runDefault(val)
		} else {
			o.matched = true
		}
	case modeFallback:
		if store {
			runDefault(val)
		} else {
			conv, err := convertRaw(o, inner)
			if err != nil {
				return err
			}
			runDefault(conv)
		}
	}
	return nil
}

// effectiveRaw is the raw string that actually carries a value for
// this match. Boolean/Flag/Combined styles set InnerCtx.Arg to a
// synthetic "true" placeholder purely so a bool Storer has something
// to parse; a Count-typed option matched through one of those styles
// has no real value attached (it's a presence signal, not a "true"),
// so it is treated as the empty raw string that means "increment by
// one" to defaultStore's ActionCnt case. Argument and Equals both carry
// a genuine user-supplied value and are never suppressed.
func effectiveRaw(o *Option, inner *InnerCtx) string {
	if o.vtype == TypeCount && inner.Style != OptArgument && inner.Style != OptEquals {
		return ""
	}
	return inner.Arg
}

func convertRaw(o *Option, inner *InnerCtx) (any, error) {
	raw := effectiveRaw(o, inner)
	if !inner.HasArg {
		if o.vtype == TypeBool {
			return true, nil // bare Flag presence means "on"
		}
		return nil, nil
	}
	if o.vtype == TypeCount && raw == "" {
		return nil, nil
	}
	if o.storer == nil {
		return raw, nil
	}
	val, err := o.storer(raw)
	if err != nil {
		return nil, &Failure{Kind: FailConvert, Option: o.name, Msg: err.Error(), Err: err}
	}
	return val, nil
}

// defaultStore implements the built-in storer semantics table from
// spec.md §4.7.
func defaultStore(o *Option, raw string, val any) {
	switch o.action {
	case ActionSet:
		o.values = []any{val}
	case ActionApp:
		o.values = append(o.values, val)
	case ActionCnt:
		if raw != "" {
			// An explicit value (e.g. "--verbose=3") jumps straight to
			// that count instead of incrementing.
			o.values = []any{val}
		} else {
			if len(o.values) == 0 {
				o.values = []any{0}
			}
			o.values[0] = o.values[0].(int) + 1
		}
	case ActionNull:
		// record matched=true only, no values.
	}
	if raw != "" {
		o.rawvals = append(o.rawvals, raw)
	}
	o.matched = true
}
