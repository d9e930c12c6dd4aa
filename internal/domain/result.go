package domain

// Summary holds the counters reported by the runner and the summed file duration in milliseconds
type Summary struct {
	Total    int   `json:"total"`
	Passed   int   `json:"passed"`
	Failed   int   `json:"failed"`
	Skipped  int   `json:"skipped"`
	Duration int64 `json:"duration"`
}

// TestResults is the normalized form of a Jest JSON report
type TestResults struct {
	Command  string        `json:"command"`
	Success  bool          `json:"success"`
	Summary  Summary       `json:"summary"`
	Passes   []TestPass    `json:"passes"`
	Failures []TestFailure `json:"failures"`
}

// RawRunOutput is what the process executor collected from the runner
type RawRunOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunResult is returned by the orchestrator. Results is nil when no structured
// report could be recovered; the raw output is always kept.
type RunResult struct {
	Results  *TestResults `json:"results"`
	Stdout   string       `json:"stdout"`
	Stderr   string       `json:"stderr"`
	ExitCode int          `json:"exitCode"`
}

// TestResultsMeta contains metadata about a stored run
type TestResultsMeta struct {
	ProjectPath string `json:"project_path"`
	Command     string `json:"command"`
	ExitCode    int    `json:"exit_code"`
	Parsed      bool   `json:"parsed"`
	Timestamp   string `json:"timestamp"`
}

// TestResultsOutput is the record of the last run kept on disk for the list and faills commands
type TestResultsOutput struct {
	Meta     TestResultsMeta `json:"meta"`
	Results  *TestResults    `json:"results"`
	Stdout   string          `json:"stdout,omitempty"`
	Stderr   string          `json:"stderr,omitempty"`
	Resolved []int           `json:"resolved,omitempty"` // Indexes into Results.Failures marked as resolved
}

// Failures returns the failures of the stored run, or nil when the run was not parsed
func (o *TestResultsOutput) Failures() []TestFailure {
	if o == nil || o.Results == nil {
		return nil
	}
	return o.Results.Failures
}
