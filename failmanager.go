package optx

// FailManager accumulates recoverable failures for a single parse
// phase (options, cmd, pos, ...). Its contents are only consulted if
// the corresponding SetChecker phase finds a genuine violation; if the
// checker is satisfied, the accumulated failures are discarded as
// "tried but not needed" (spec.md §7).
type FailManager struct {
	fails []error
}

// NewFailManager returns an empty FailManager.
func NewFailManager() *FailManager { return &FailManager{} }

// Add records a recoverable failure.
func (f *FailManager) Add(err error) {
	if err != nil {
		f.fails = append(f.fails, err)
	}
}

// Len returns the number of recorded failures.
func (f *FailManager) Len() int { return len(f.fails) }

// All returns every recorded failure, in the order they were added.
func (f *FailManager) All() []error { return f.fails }

// Best returns the failure judged most useful to show the user. This
// implementation returns the first recorded failure: the first style
// tried is the one the caller configured earliest in SetStyles, so it
// is the interpretation most likely to be the "intended" one.
func (f *FailManager) Best() error {
	if len(f.fails) == 0 {
		return nil
	}
	return f.fails[0]
}
