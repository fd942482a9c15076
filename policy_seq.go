package optx

// parseSequential implements the eager Parse Policy of spec.md §4.5: the
// option phase invokes each matched option's handler immediately, in
// the same pass that classifies the token.
func (p *Parser) parseSequential(ctx *Ctx) (*Return, error) {
	return p.runPolicy(ctx, false)
}
