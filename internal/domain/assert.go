package domain

import (
	m "htprobe.dev/pkg/htprobe/internal/model"
)

// Failure classes recorded on abnormal test results. Each maps to one error
// condition in the harness taxonomy; all of them degrade to a failed result
// and never stop the run.
const (
	FailureLaunch  = "launch error"
	FailureInit    = "init timeout"
	FailureOutcome = "outcome timeout"
	FailureSignal  = "signal delivery failure"
)

// Score compares an actual outcome against the expectation and produces the
// test result. Pure: equality of (code, signal) pairs, where signal absence
// on both sides is equality.
func Score(seq int, description string, expected, actual m.Outcome) m.TestResult {
	return m.TestResult{
		Seq:         seq,
		Description: description,
		Passed:      expected.Equal(actual),
		Expected:    expected,
		Actual:      actual,
	}
}

// Fail produces a failed result for a case that never reached scoring.
func Fail(seq int, description string, expected m.Outcome, failure string) m.TestResult {
	return m.TestResult{
		Seq:         seq,
		Description: description,
		Passed:      false,
		Expected:    expected,
		Failure:     failure,
	}
}
