package optx

// InnerCtx is set immediately before a handler is invoked, and carries
// everything about the match that triggered the invocation.
type InnerCtx struct {
	Uid   int
	Idx   int
	Total int
	Name  string
	Arg   string
	HasArg bool
	Style OptStyle
}

// Ctx is the per-parse context owned by the Parse Policy. orig is never
// mutated; args is rewritten as arguments are consumed.
type Ctx struct {
	orig []string
	args []string

	inner *InnerCtx

	policyAct PolicyAct
}

// NewCtx creates a Ctx over args. orig and args start out identical;
// args is the working copy the policy consumes from.
func NewCtx(args []string) *Ctx {
	cp := append([]string{}, args...)
	return &Ctx{
		orig: append([]string{}, args...),
		args: cp,
	}
}

// Orig returns the original, immutable argument vector.
func (c *Ctx) Orig() []string { return c.orig }

// Args returns the current working argument vector.
func (c *Ctx) Args() []string { return c.args }

// SetArgs replaces the working argument vector.
func (c *Ctx) SetArgs(args []string) { c.args = args }

// Inner returns the InnerCtx for the in-flight handler invocation, or
// nil outside of one.
func (c *Ctx) Inner() *InnerCtx { return c.inner }

// SetInner installs (or clears, with nil) the InnerCtx for the
// in-flight handler invocation.
func (c *Ctx) SetInner(inner *InnerCtx) { c.inner = inner }

// PolicyAct returns the current policy action.
func (c *Ctx) PolicyAct() PolicyAct { return c.policyAct }

// SetPolicyAct lets a handler request Stop or Quit.
func (c *Ctx) SetPolicyAct(act PolicyAct) { c.policyAct = act }
