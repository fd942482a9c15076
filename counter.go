package optx

import (
	"fmt"
	"strconv"
)

// Counter is a field type recognized by the derive façade (see
// derive.go): a struct field of type Counter gets TypeCount/ActionCnt
// wiring automatically, incrementing once per match, or jumping to an
// explicit value when the option is given one (e.g. "-vvv" vs
// "--verbose=3").
type Counter int

// Int returns the counter's current value.
func (c Counter) Int() int { return int(c) }

// counterStorer parses the raw argument for a Counter-typed option. An
// empty raw string (the common "-v -v -v" case) means "increment by
// one"; defaultStore's ActionCnt handles that case directly and never
// calls this storer. A non-empty raw string sets the counter to that
// exact value, mirroring getopt.v2's Counter.Set.
func counterStorer(raw string) (any, error) {
	if raw == "" {
		return 1, nil
	}
	val, err := strconv.ParseInt(raw, 0, strconv.IntSize)
	if err != nil {
		if e, ok := err.(*strconv.NumError); ok {
			switch e.Err {
			case strconv.ErrRange:
				return nil, fmt.Errorf("value out of range: %s", raw)
			case strconv.ErrSyntax:
				return nil, fmt.Errorf("not a valid number: %s", raw)
			}
		}
		return nil, err
	}
	return int(val), nil
}
