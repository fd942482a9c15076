package optx

import "fmt"

// SetChecker runs the five required-ness/coverage validation phases of
// spec.md §4.8. Each phase is handed the FailManager accumulated during
// the corresponding parse phase so that a recoverable failure is only
// promoted to a fatal, user-visible error if the checker agrees the
// option was actually required.
type SetChecker struct{}

// PreCheck validates that the set itself is well-formed: no dangling
// Index referencing an option style that isn't Pos, and uid density.
func (SetChecker) PreCheck(set *OptSet) error {
	for i, o := range set.Iter() {
		if o.uid != i {
			return &ParseSpecError{Msg: fmt.Sprintf("uid %d is not dense (expected %d)", o.uid, i)}
		}
		if o.index != nil && !o.HasStyle(OptPos) {
			return &ParseSpecError{Msg: fmt.Sprintf("option %q carries an index but is not styled Pos", o.name)}
		}
	}
	return nil
}

// OptCheck validates that every force-required, non-positional,
// non-Cmd option was matched.
func (SetChecker) OptCheck(set *OptSet, fm *FailManager) error {
	for _, o := range set.Iter() {
		if !o.force || o.HasStyle(OptPos) || o.HasStyle(OptCmd) {
			continue
		}
		if !o.matched {
			if best := fm.Best(); best != nil {
				return best
			}
			return &Failure{Kind: FailRequired, Option: o.name, Msg: "required option missing"}
		}
	}
	return nil
}

// CmdCheck validates that at most one Cmd option matched (invariant 5).
func (SetChecker) CmdCheck(set *OptSet, fm *FailManager) error {
	count := 0
	var first *Option
	for _, o := range set.Iter() {
		if o.HasStyle(OptCmd) && o.matched {
			count++
			if first == nil {
				first = o
			}
		}
	}
	if count > 1 {
		return &Failure{Kind: FailCount, Option: first.name, Msg: "more than one Cmd option matched"}
	}
	return nil
}

// PosCheck validates that every force-required positional matched.
// Index slot coverage is not checked separately.
func (SetChecker) PosCheck(set *OptSet, fm *FailManager) error {
	for _, o := range set.Iter() {
		if !o.HasStyle(OptPos) || !o.force {
			continue
		}
		if !o.matched {
			if best := fm.Best(); best != nil {
				return best
			}
			return &Failure{Kind: FailRequired, Option: o.name, Msg: "required positional missing"}
		}
	}
	return nil
}

// PostCheck runs after Main. It is a hook for callers; the built-in
// implementation is a no-op, matching spec.md §4.8.
func (SetChecker) PostCheck(set *OptSet, fm *FailManager) error {
	return nil
}
