package optx

import "strings"

// decodeArgInfo reads tok as a candidate option token: it strips the
// longest matching prefix, splits off an "=value" suffix if present,
// and records whether a next token is available (for styles that
// consume it). isOptionLike is false for tokens that don't start with
// any configured prefix, or that are exactly "--" (the end-of-options
// marker).
func decodeArgInfo(tok, next string, hasNext bool, prefixes []string) (info *argInfo, isOptionLike bool) {
	prefix, ok := longestPrefixMatch(tok, prefixes)
	if !ok {
		return nil, false
	}
	rest := tok[len(prefix):]
	if rest == "" {
		return nil, false // bare prefix token, e.g. "--", ends option processing
	}

	name := rest
	hasArg := false
	arg := ""
	if i := strings.IndexRune(rest, '='); i >= 0 {
		name = rest[:i]
		arg = rest[i+1:]
		hasArg = true
	}
	return &argInfo{name: name, hasArg: hasArg, arg: arg, hasNext: hasNext, next: next}, true
}

// classifyForTotal performs a read-only dry run of the Guess+Match
// pipeline to determine, for every token in args, whether it would be
// claimed by some option style (and so consumes one or two argv slots)
// or would fall through to become a non-option argument. The resulting
// NOA count becomes Ctx's "total" for Index-predicate evaluation, which
// must be known up front for Backward/Range-without-hi predicates to
// be evaluatable while the real (mutating) pass is still in progress.
// This two-phase design is an explicit addition over spec.md, which
// does not mandate a particular total-computation strategy; see
// DESIGN.md.
func classifyForTotal(set *OptSet, args []string, styles []UserStyle, strict bool) int {
	total := 0
	i := 0
	for i < len(args) {
		tok := args[i]
		var next string
		hasNext := i+1 < len(args)
		if hasNext {
			next = args[i+1]
		}

		info, isOptionLike := decodeArgInfo(tok, next, hasNext, set.Prefixes())
		if !isOptionLike {
			total++
			i++
			continue
		}

		consumed, nTokens := dryRunMatch(set, info, styles)
		if !consumed {
			if strict {
				// Strict mode: an unrecognized option-like token is a
				// failure, not a NOA; it still occupies its own slot
				// and is not counted toward "total".
				i++
				continue
			}
			total++
			i++
			continue
		}
		i += nTokens
	}
	return total
}

// dryRunMatch mirrors the Guess+Match pipeline without mutating
// anything, purely to answer "does some option claim this token, and
// if so, does it also eat the next one?"
func dryRunMatch(set *OptSet, info *argInfo, styles []UserStyle) (matched bool, tokensConsumed int) {
	for _, style := range styles {
		if style == UserMain || style == UserPos || style == UserCmd {
			continue
		}
		gp, ok := guessPolicy(style, info)
		if !ok {
			continue
		}
		switch gp.Kind {
		case PolicySingleOpt:
			sub := gp.Sub[0]
			if len(matchOpt(set, sub, set.Overload())) > 0 {
				if gp.Consume {
					return true, 2
				}
				return true, 1
			}
		case PolicyMultiOpt:
			if _, _, ok := matchMulti(set, gp, set.Overload()); ok {
				return true, 1
			}
		}
	}
	return false, 1
}

// invokeOrDefer either runs uid's handler right away or, under the
// delayed policy, queues it for later. Cmd/Pos/Main invocations are
// never deferred: the delayed policy (spec.md §4.6) only defers the
// option-matching styles, since Cmd/Pos/Main drive the structure of
// the parse itself. A handler's recoverable Failure is added to fm
// (matching continues, as the token was still structurally a match);
// anything else aborts the parse.
func (p *Parser) invokeOrDefer(
	ctx *Ctx, uid int, style OptStyle, name, arg string, hasArg bool, idx, total int,
	delay bool, deferred *[]deferredCall, fm *FailManager,
) (quit bool, fatal error) {
	inner := InnerCtx{Uid: uid, Idx: idx, Total: total, Name: name, Arg: arg, HasArg: hasArg, Style: style}

	deferrable := style == OptArgument || style == OptEquals || style == OptBoolean || style == OptFlag || style == OptCombined
	if delay && deferrable {
		o := p.set.Get(uid)
		if o == nil || !p.noDelay[o.Name()] {
			*deferred = append(*deferred, deferredCall{uid: uid, inner: inner})
			return false, nil
		}
	}

	ctx.SetInner(&inner)
	err := p.inv.Invoke(p.set, ctx)
	ctx.SetInner(nil)
	if err != nil {
		if IsFailure(err) {
			if fm != nil {
				fm.Add(err)
			}
		} else {
			return false, err
		}
	}

	act := ctx.PolicyAct()
	ctx.SetPolicyAct(ActNull)
	return act == ActQuit, nil
}

// invokeCandidates walks uids in match order, invoking (or deferring)
// each. Outside overload mode there is exactly one candidate. Under
// overload, this realizes "the invoker tries each until one handler
// [succeeds]" (GLOSSARY, Overload): a candidate whose invocation added
// no new failure to fm is taken as the winner and the rest are left
// untried; a candidate that fails falls through to the next one.
func (p *Parser) invokeCandidates(
	ctx *Ctx, uids []int, style OptStyle, name, arg string, hasArg bool, idx, total int,
	delay bool, deferred *[]deferredCall, fm *FailManager,
) (quit bool, fatal error) {
	for _, uid := range uids {
		before := fm.Len()
		q, err := p.invokeOrDefer(ctx, uid, style, name, arg, hasArg, idx, total, delay, deferred, fm)
		if err != nil {
			return false, err
		}
		if q {
			return true, nil
		}
		if fm.Len() == before {
			return false, nil
		}
	}
	return false, nil
}

// runPolicy is the shared engine behind both parseSequential and
// parseDelayed. It drives the main token loop (Guess, then Match, then
// Invoke-or-defer for option-like tokens; Cmd-then-Pos classification
// for everything else), drains any deferred calls, runs the SetChecker
// phases in order, and fires Main last with the final NOA list.
//
// Per invariant 3, at most one UserStyle ever wins per option-like
// token: the style loop below tries p.styles in order and stops at the
// first one whose precondition holds AND whose Match succeeds. A
// handler requesting PolicyAct Stop therefore has no further styles
// left to preempt; Stop's effect is already subsumed by that
// first-match-wins structure. Quit is different: it aborts the whole
// remaining parse and is handled explicitly below.
func (p *Parser) runPolicy(ctx *Ctx, delay bool) (*Return, error) {
	full := ctx.Args()
	args := full
	if len(args) > 0 {
		args = args[1:] // args[0] is the program name (see Parse's doc comment)
	}

	checker := SetChecker{}
	if err := checker.PreCheck(p.set); err != nil {
		return nil, err
	}

	total := classifyForTotal(p.set, args, p.styles, p.strict)

	fmOpt := NewFailManager()
	fmCmd := NewFailManager()
	fmPos := NewFailManager()

	var deferred []deferredCall
	var noa []string

	cmdTried := false
	noaIdx := 0

	i := 0
	for i < len(args) {
		tok := args[i]
		hasNext := i+1 < len(args)
		var next string
		if hasNext {
			next = args[i+1]
		}

		info, isOptionLike := decodeArgInfo(tok, next, hasNext, p.prefixes)

		if isOptionLike {
			matchedAny := false
			consumeN := 1
			quit := false

		styleLoop:
			for _, style := range p.styles {
				if style == UserMain || style == UserPos || style == UserCmd {
					continue
				}
				gp, ok := guessPolicy(style, info)
				if !ok {
					continue
				}
				p.tracef("guess: token=%q style=%s kind=%d", tok, style, gp.Kind)

				switch gp.Kind {
				case PolicySingleOpt:
					sub := gp.Sub[0]
					uids := matchOpt(p.set, sub, p.overload)
					p.tracef("match: token=%q style=%s name=%s uids=%v", tok, sub.Style, sub.Name, uids)
					if len(uids) == 0 {
						fmOpt.Add(&Failure{Kind: FailNotFound, Option: sub.Name, Msg: "no option named " + sub.Name})
						continue
					}
					matchedAny = true
					if gp.Consume {
						consumeN = 2
					}
					q, err := p.invokeCandidates(ctx, uids, sub.Style, sub.Name, sub.Arg, sub.HasArg, 0, 0, delay, &deferred, fmOpt)
					if err != nil {
						return nil, err
					}
					quit = q
					break styleLoop

				case PolicyMultiOpt:
					uids, subs, ok := matchMulti(p.set, gp, p.overload)
					p.tracef("match: token=%q style=%s multi uids=%v", tok, style, uids)
					if !ok {
						fmOpt.Add(&Failure{Kind: FailNotFound, Msg: "no combined/embedded option matched " + info.name})
						continue
					}
					matchedAny = true
					for k, uid := range uids {
						sub := subs[k]
						q, err := p.invokeCandidates(ctx, []int{uid}, sub.Style, sub.Name, sub.Arg, sub.HasArg, 0, 0, delay, &deferred, fmOpt)
						if err != nil {
							return nil, err
						}
						if q {
							quit = true
						}
					}
					break styleLoop
				}
			}

			if quit {
				return p.finish(ctx, noa, total, fmOpt, fmCmd, fmPos, deferred, true)
			}
			if matchedAny {
				i += consumeN
				continue
			}
			if p.strict {
				return nil, &Failure{Kind: FailNotFound, Option: info.name, Msg: "unrecognized option " + tok}
			}
			// Not strict: an unmatched option-like token falls through
			// and is treated as a non-option argument below.
		}

		// Non-option argument: try Cmd (at most once, ever), then Pos.
		if !cmdTried {
			cmdTried = true
			uids := matchNonOpt(p.set, UserCmd, tok, 1, total, p.overload, fmCmd)
			p.tracef("match: token=%q style=Cmd uids=%v", tok, uids)
			if len(uids) > 0 {
				q, err := p.invokeCandidates(ctx, uids, OptCmd, tok, tok, true, 1, total, delay, &deferred, fmCmd)
				if err != nil {
					return nil, err
				}
				if err := checker.CmdCheck(p.set, fmCmd); err != nil {
					return nil, err
				}
				if q {
					return p.finish(ctx, noa, total, fmOpt, fmCmd, fmPos, deferred, true)
				}
				// AddParser pivot (spec.md §6): a Cmd match whose name was
				// registered via AddParser hands the rest of argv to that
				// sub-parser instead of continuing this level's token loop.
				// This level still finishes its own deferred calls and
				// SetChecker phases first, over whatever it matched up to
				// and including the Cmd token itself.
				if sub, ok := p.subParsers[tok]; ok {
					ret, err := p.finish(ctx, noa, total, fmOpt, fmCmd, fmPos, deferred, false)
					if err != nil || ret.Failure != nil {
						return ret, err
					}
					remainder := append([]string{tok}, args[i+1:]...)
					subRet, err := sub.Parse(remainder)
					if err != nil {
						return nil, err
					}
					ret.Sub = subRet
					ret.SubName = tok
					return ret, nil
				}
				i++
				continue
			}
		}

		noaIdx++
		uids := matchNonOpt(p.set, UserPos, tok, noaIdx, total, p.overload, fmPos)
		p.tracef("match: token=%q style=Pos idx=%d uids=%v", tok, noaIdx, uids)
		if len(uids) > 0 {
			q, err := p.invokeCandidates(ctx, uids, OptPos, tok, tok, true, noaIdx, total, delay, &deferred, fmPos)
			if err != nil {
				return nil, err
			}
			if q {
				return p.finish(ctx, noa, total, fmOpt, fmCmd, fmPos, deferred, true)
			}
			// A token claimed by a positional is not part of the NOA vector.
			i++
			continue
		}
		noa = append(noa, tok)
		i++
	}

	return p.finish(ctx, noa, total, fmOpt, fmCmd, fmPos, deferred, false)
}

// finish drains any calls deferred by the delayed policy, runs the
// OptCheck/PosCheck SetChecker phases, fires Main once over the final
// NOA list, and runs PostCheck. earlyQuit short-circuits all of that:
// a handler that requested PolicyAct Quit ends the parse successfully
// right away, per spec.md §4.5/§4.6.
func (p *Parser) finish(
	ctx *Ctx, noa []string, total int, fmOpt, fmCmd, fmPos *FailManager,
	deferred []deferredCall, earlyQuit bool,
) (*Return, error) {
	ctx.SetArgs(noa)
	if earlyQuit {
		return &Return{Ctx: ctx}, nil
	}

	checker := SetChecker{}

	for _, dc := range deferred {
		inner := dc.inner
		ctx.SetInner(&inner)
		err := p.inv.Invoke(p.set, ctx)
		ctx.SetInner(nil)
		if err != nil {
			if IsFailure(err) {
				fmOpt.Add(err)
			} else {
				return nil, err
			}
		}
		if ctx.PolicyAct() == ActQuit {
			ctx.SetPolicyAct(ActNull)
			return &Return{Ctx: ctx}, nil
		}
		ctx.SetPolicyAct(ActNull)
	}

	if err := checker.OptCheck(p.set, fmOpt); err != nil {
		return &Return{Ctx: ctx, Failure: err}, nil
	}
	if err := checker.PosCheck(p.set, fmPos); err != nil {
		return &Return{Ctx: ctx, Failure: err}, nil
	}

	fmMain := NewFailManager()
	uids := matchNonOpt(p.set, UserMain, "", 0, total, p.overload, fmMain)
	if len(uids) > 0 {
		_, err := p.invokeCandidates(ctx, uids, OptMain, "", "", false, 0, total, false, nil, fmMain)
		if err != nil {
			return nil, err
		}
	}

	if err := checker.PostCheck(p.set, fmMain); err != nil {
		return &Return{Ctx: ctx, Failure: err}, nil
	}

	return &Return{Ctx: ctx}, nil
}
