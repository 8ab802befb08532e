package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReport(t *testing.T) {
	report := NewReport(
		TestResult{Seq: 1, Description: "a", Passed: true},
		TestResult{Seq: 2, Description: "b", Passed: false},
		TestResult{Seq: 3, Description: "c", Passed: true},
	)

	assert.Equal(t, 3, report.TotalRun)
	assert.Equal(t, 2, report.TotalPassed)
	assert.Equal(t, 1, report.TotalFailed)
	assert.Len(t, report.Results, 3)
}

func TestReportMerge(t *testing.T) {
	left := NewReport(TestResult{Seq: 1, Passed: true})
	right := NewReport(TestResult{Seq: 2, Passed: false})

	merged := left.Merge(right)

	assert.Equal(t, 2, merged.TotalRun)
	assert.Equal(t, 1, merged.TotalPassed)
	assert.Equal(t, 1, merged.TotalFailed)
	assert.Len(t, merged.Results, 2)
	assert.Equal(t, 1, merged.Results[0].Seq)
	assert.Equal(t, 2, merged.Results[1].Seq)

	// Merge must not mutate its operands.
	assert.Equal(t, 1, left.TotalRun)
	assert.Len(t, left.Results, 1)
	assert.Equal(t, 1, right.TotalRun)
}

func TestReportMergeEmpty(t *testing.T) {
	var report Report

	report = report.Merge(Report{})

	assert.Equal(t, 0, report.TotalRun)
	assert.Empty(t, report.Results)
}
