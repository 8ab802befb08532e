// Package controller provides output adapters for displaying verification
// progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

// UI defines the interface for displaying a verification run.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, total int) error
	Close(ctx context.Context)
	DisplayCaseStart(ctx context.Context, seq int, description string)
	DisplayCaseResult(ctx context.Context, result m.TestResult)
	DisplaySummary(ctx context.Context, report m.Report)
	DisplaySuites(ctx context.Context, suites []m.Suite)
	DisplayReport(ctx context.Context, report m.Report)
}

// NewUI picks the TUI on interactive terminals and the simple printer
// otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
