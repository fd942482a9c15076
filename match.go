package optx

import "fmt"

// matchOpt runs the Match engine (spec.md §4.4) for a single SubPolicy
// against every option in set, in insertion order. Uids whose style
// doesn't match are filtered out silently (they were never a candidate
// in the first place); uids that are filtered in are ties broken by
// insertion order. overload controls whether the engine stops at the
// first match or collects all of them.
func matchOpt(set *OptSet, sub SubPolicy, overload bool) []int {
	var matched []int
	for _, o := range set.Iter() {
		if !o.HasStyle(sub.Style) {
			continue
		}
		if !o.HasName(sub.Name) {
			continue
		}
		matched = append(matched, o.uid)
		if !overload {
			return matched
		}
	}
	return matched
}

// matchNonOpt runs the Match engine for a SingleNonOpt policy: style
// compatibility filters candidates, and (for positionals with an Index)
// the predicate is evaluated against the current NOA position. An
// index mismatch is a genuine recoverable Failure, not a silent skip,
// because a positional that "almost" matched is useful information for
// SetChecker's pos_check. A Cmd candidate is additionally required to
// be named exactly tok: unlike Pos/Main, Cmd dispatch selects by the
// subcommand name the user actually typed, not merely by style and
// position.
func matchNonOpt(set *OptSet, style UserStyle, tok string, idx, total int, overload bool, fm *FailManager) []int {
	optStyle := nonOptStyleOf(style)
	var matched []int
	for _, o := range set.Iter() {
		if !o.HasStyle(optStyle) {
			continue
		}
		if optStyle == OptCmd {
			if o.matched {
				// Cmd uniqueness (invariant 5): a Cmd option that already
				// matched is filtered out, not re-offered.
				continue
			}
			if !o.HasName(tok) {
				continue
			}
		}
		if o.index != nil {
			if !o.index.Matches(idx, total) {
				fm.Add(&Failure{
					Kind:   FailIndex,
					Option: o.name,
					Msg:    fmt.Sprintf("position %d of %d does not satisfy index predicate", idx, total),
				})
				continue
			}
		}
		matched = append(matched, o.uid)
		if !overload {
			return matched
		}
	}
	return matched
}

// matchMulti resolves a MultiOpt GuessPolicy (combined short options or
// embedded-value-plus) against set. If AnyMatch, the first sub-policy
// that finds at least one match wins and the rest are skipped; if not,
// every sub-policy must find at least one match or the whole thing
// fails, and all matched uids across all sub-policies are returned in
// SubPolicy order.
func matchMulti(set *OptSet, gp *GuessPolicy, overload bool) (uids []int, subs []SubPolicy, ok bool) {
	if gp.AnyMatch {
		for _, sub := range gp.Sub {
			m := matchOpt(set, sub, overload)
			if len(m) > 0 {
				return m, []SubPolicy{sub}, true
			}
		}
		return nil, nil, false
	}

	var allUids []int
	var allSubs []SubPolicy
	for _, sub := range gp.Sub {
		m := matchOpt(set, sub, overload)
		if len(m) == 0 {
			return nil, nil, false
		}
		allUids = append(allUids, m...)
		for range m {
			allSubs = append(allSubs, sub)
		}
	}
	return allUids, allSubs, true
}
