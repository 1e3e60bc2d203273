package sweep

// Outcome classifies the result of a single delete attempt.
type Outcome int

const (
	OutcomeRemoved Outcome = iota
	OutcomeNotFound
	OutcomeFailed
)

// String returns the action label recorded in the history database.
func (o Outcome) String() string {
	switch o {
	case OutcomeRemoved:
		return "REMOVED"
	case OutcomeNotFound:
		return "NOT_FOUND"
	case OutcomeFailed:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Result is the explicit outcome of one target, replacing
// thrown-and-caught errors with a tagged value.
type Result struct {
	Path    string
	Dir     bool
	Outcome Outcome
	Size    int64 // bytes freed; 0 for not-found and failed targets
	Err     error // set only when Outcome is OutcomeFailed
}

// Targets is the fixed, ordered work list for one sweep: file paths
// processed first, in order, then the optional directory removed
// recursively. Targets never change while a sweep is running.
type Targets struct {
	Files     []string
	Directory string
}
