package model

// TestResult is the scored outcome of one case.
type TestResult struct {
	Seq         int     `yaml:"seq"`
	Description string  `yaml:"description"`
	Passed      bool    `yaml:"passed"`
	Expected    Outcome `yaml:"expected"`
	Actual      Outcome `yaml:"actual"`
	// Failure classifies abnormal terminations (init timeout, outcome
	// timeout, launch error, signal delivery failure). Empty for cases
	// that reached scoring, whether they passed or not.
	Failure string `yaml:"failure,omitempty"`
}

// Report accumulates results for a run. It is a value threaded through the
// workflow and merged per case; there is no ambient mutable counter state.
type Report struct {
	TotalRun    int          `yaml:"total_run"`
	TotalPassed int          `yaml:"total_passed"`
	TotalFailed int          `yaml:"total_failed"`
	Results     []TestResult `yaml:"results"`
}

// NewReport builds a report from the given results, ready to be merged.
func NewReport(results ...TestResult) Report {
	r := Report{}
	for _, res := range results {
		passed := 0
		failed := 0

		if res.Passed {
			passed = 1
		} else {
			failed = 1
		}

		r = r.Merge(Report{
			TotalRun:    1,
			TotalPassed: passed,
			TotalFailed: failed,
			Results:     []TestResult{res},
		})
	}

	return r
}

// Merge combines two reports into a new value; neither operand is mutated.
func (r Report) Merge(other Report) Report {
	results := make([]TestResult, 0, len(r.Results)+len(other.Results))
	results = append(results, r.Results...)
	results = append(results, other.Results...)

	return Report{
		TotalRun:    r.TotalRun + other.TotalRun,
		TotalPassed: r.TotalPassed + other.TotalPassed,
		TotalFailed: r.TotalFailed + other.TotalFailed,
		Results:     results,
	}
}
