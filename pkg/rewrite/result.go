package rewrite

// 📊 Outcome is the terminal state of one file in a run
type Outcome int

const (
	OutcomeUpdated    Outcome = iota // Content changed and was written back
	OutcomeUnchanged                 // No rule changed the content, nothing written
	OutcomeReadError                 // File could not be read or decoded, skipped
	OutcomeWriteError                // Changed content could not be written, file may be left truncated
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeReadError:
		return "read_error"
	case OutcomeWriteError:
		return "write_error"
	default:
		return "unknown"
	}
}

// IsError reports whether the outcome is one of the error states
func (o Outcome) IsError() bool {
	return o == OutcomeReadError || o == OutcomeWriteError
}

// 📄 FileResult describes what happened to one file
type FileResult struct {
	Path         string  // Path as discovered
	Outcome      Outcome // Terminal state
	Replacements int     // Occurrences replaced, only set when Outcome is OutcomeUpdated
	Err          error   // Set for the error outcomes
}

// 📋 Report collects the results of a run in processing order
type Report struct {
	Results []FileResult
}

// Len returns the number of processed files
func (r *Report) Len() int {
	return len(r.Results)
}

// Count returns how many files ended in the given outcome
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Errors returns the results that ended in an error outcome
func (r *Report) Errors() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if res.Outcome.IsError() {
			out = append(out, res)
		}
	}
	return out
}
