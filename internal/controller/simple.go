package controller

import (
	"context"

	"github.com/spf13/cobra"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

// SimpleUI implements UI using cobra Command's Println. One line per case,
// suitable for CI logs and piping.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ int) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayCaseStart is a no-op; SimpleUI prints only completed results.
func (s *SimpleUI) DisplayCaseStart(ctx context.Context, _ int, _ string) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayCaseResult prints one PASS/FAIL line with expected-vs-actual
// values inline on failure.
func (s *SimpleUI) DisplayCaseResult(ctx context.Context, result m.TestResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.cmd.Println(resultLine(result))
}

// DisplaySummary prints the final counts table.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.cmd.Printf("\n%s", renderSummaryTable(report))
}

// DisplaySuites prints suite names and case counts.
func (s *SimpleUI) DisplaySuites(ctx context.Context, suites []m.Suite) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.cmd.Printf("\n%s", renderSuitesTable(suites))
}

// DisplayReport prints a saved report as a transcript plus summary.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, result := range report.Results {
		s.cmd.Println(resultLine(result))
	}

	s.cmd.Printf("\n%s", renderSummaryTable(report))
}
