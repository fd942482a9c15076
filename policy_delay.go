package optx

// deferredCall is the Go realization of spec.md §4.6's CtxSaver: a
// pair of (uid, captured InnerCtx) queued during the options phase and
// drained, FIFO, once the Cmd and Pos phases have both run.
type deferredCall struct {
	uid   int
	inner InnerCtx
}

// parseDelayed implements the delayed Parse Policy of spec.md §4.6:
// identical to parseSequential except that option handlers are not
// invoked during the options phase. Instead a deferredCall is queued
// for each match — unless the option's canonical name was registered
// via Parser.SetNoDelay, in which case it runs immediately just like
// the sequential policy. After the Cmd and Pos phases complete, the
// queue is drained in push order and handlers run; Main still runs
// last.
func (p *Parser) parseDelayed(ctx *Ctx) (*Return, error) {
	return p.runPolicy(ctx, true)
}
