package domain

// ResolutionState distinguishes an absent result from a successful or failed
// resolution when handing defaults from world creation to world load.
type ResolutionState uint8

const (
	ResolutionPending ResolutionState = iota
	ResolutionResolved
	ResolutionFailed
)

// String returns a stable name for the state.
func (s ResolutionState) String() string {
	switch s {
	case ResolutionPending:
		return "pending"
	case ResolutionResolved:
		return "resolved"
	case ResolutionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving defaults for one world.
type Resolution struct {
	State   ResolutionState
	Entries []DefaultRuleEntry
	Err     error
}

// Resolved wraps a successful resolution. A nil slice is a valid, empty result.
func Resolved(entries []DefaultRuleEntry) Resolution {
	return Resolution{State: ResolutionResolved, Entries: entries}
}

// Failed records a resolution that could not complete.
func Failed(err error) Resolution {
	return Resolution{State: ResolutionFailed, Err: err}
}

// IsResolved reports whether Entries can be used as-is.
func (r Resolution) IsResolved() bool { return r.State == ResolutionResolved }
