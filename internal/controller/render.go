package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

// resultLine renders one PASS/FAIL transcript line.
func resultLine(result m.TestResult) string {
	if result.Passed {
		return fmt.Sprintf("PASS  %3d  %s", result.Seq, result.Description)
	}

	if result.Failure != "" {
		return fmt.Sprintf("FAIL  %3d  %s  (%s)", result.Seq, result.Description, result.Failure)
	}

	return fmt.Sprintf(
		"FAIL  %3d  %s  expected %s, got %s",
		result.Seq, result.Description, result.Expected, result.Actual,
	)
}

// renderSummaryTable renders the final counts table.
func renderSummaryTable(report m.Report) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Result", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{"passed", fmt.Sprintf("%d", report.TotalPassed)})
	table.Append([]string{"failed", fmt.Sprintf("%d", report.TotalFailed)})

	table.SetFooter([]string{"total", fmt.Sprintf("%d", report.TotalRun)})
	table.Render()

	return buffer.String()
}

// renderSuitesTable renders suite names and case counts.
func renderSuitesTable(suites []m.Suite) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Suite", "Cases", "Signal Cases"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	total := 0

	for _, suite := range suites {
		table.Append([]string{
			suite.Name,
			fmt.Sprintf("%d", len(suite.Cases)),
			fmt.Sprintf("%d", len(suite.SignalCases)),
		})

		total += suite.Len()
	}

	table.SetFooter([]string{fmt.Sprintf("Total Suites %d", len(suites)), fmt.Sprintf("%d", total), ""})
	table.Render()

	return buffer.String()
}
