package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display of a live run.
type TUI struct {
	out     io.Writer
	program *tea.Program
	done    chan struct{}
	final   runModel
}

// NewTUI creates a new TUI writing to out.
func NewTUI(out io.Writer) *TUI {
	return &TUI{out: out}
}

// Start launches the live progress program in the background.
func (t *TUI) Start(ctx context.Context, total int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newRunModel(total)

	// Probe the initial terminal size the way the first WindowSizeMsg
	// would, so short runs render correctly too.
	if f, ok := t.out.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			model.width = width
			model.bar.Width = barWidth(width)
		}
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.out))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		finalModel, err := t.program.Run()
		if err != nil {
			slog.Error("tui terminated", "error", err)
			return
		}

		if rm, ok := finalModel.(runModel); ok {
			t.final = rm
		}
	}()

	return nil
}

// Close stops the program if it is still running.
func (t *TUI) Close(ctx context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()

	select {
	case <-t.done:
	case <-ctx.Done():
	}
}

// DisplayCaseStart marks a case as in flight.
func (t *TUI) DisplayCaseStart(ctx context.Context, seq int, description string) {
	if err := ctx.Err(); err != nil || t.program == nil {
		return
	}

	t.program.Send(caseStartMsg{seq: seq, description: description})
}

// DisplayCaseResult records a scored case.
func (t *TUI) DisplayCaseResult(ctx context.Context, result m.TestResult) {
	if err := ctx.Err(); err != nil || t.program == nil {
		return
	}

	t.program.Send(caseResultMsg{result: result})
}

// DisplaySummary quits the live view and prints the final transcript of
// failures plus the counts table.
func (t *TUI) DisplaySummary(ctx context.Context, report m.Report) {
	if t.program != nil {
		t.program.Send(runDoneMsg{})

		select {
		case <-t.done:
		case <-ctx.Done():
			return
		}
	}

	for _, result := range report.Results {
		if !result.Passed {
			fmt.Fprintln(t.out, resultLine(result))
		}
	}

	fmt.Fprintf(t.out, "\n%s", renderSummaryTable(report))
}

// DisplaySuites prints suite names and counts; no live view needed.
func (t *TUI) DisplaySuites(ctx context.Context, suites []m.Suite) {
	if err := ctx.Err(); err != nil {
		return
	}

	fmt.Fprintf(t.out, "\n%s", renderSuitesTable(suites))
}

// DisplayReport prints a saved report as a transcript plus summary.
func (t *TUI) DisplayReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, result := range report.Results {
		fmt.Fprintln(t.out, resultLine(result))
	}

	fmt.Fprintf(t.out, "\n%s", renderSummaryTable(report))
}

type caseStartMsg struct {
	seq         int
	description string
}

type caseResultMsg struct {
	result m.TestResult
}

type runDoneMsg struct{}

// resultTail is how many recent results the live view keeps on screen.
const resultTail = 8

type runModel struct {
	total   int
	done    int
	passed  int
	failed  int
	current string
	recent  []m.TestResult
	bar     progress.Model
	width   int
}

func newRunModel(total int) runModel {
	bar := progress.New(progress.WithDefaultGradient())

	return runModel{total: total, bar: bar}
}

func (rm runModel) Init() tea.Cmd {
	return nil
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.bar.Width = barWidth(msg.Width)

		return rm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return rm, tea.Quit
		}

		return rm, nil

	case caseStartMsg:
		rm.current = fmt.Sprintf("%3d  %s", msg.seq, msg.description)
		return rm, nil

	case caseResultMsg:
		rm.done++

		if msg.result.Passed {
			rm.passed++
		} else {
			rm.failed++
		}

		rm.recent = append(rm.recent, msg.result)
		if len(rm.recent) > resultTail {
			rm.recent = rm.recent[len(rm.recent)-resultTail:]
		}

		rm.current = ""

		if rm.total > 0 {
			return rm, rm.bar.SetPercent(float64(rm.done) / float64(rm.total))
		}

		return rm, nil

	case runDoneMsg:
		return rm, tea.Quit

	case progress.FrameMsg:
		barModel, cmd := rm.bar.Update(msg)
		if bar, ok := barModel.(progress.Model); ok {
			rm.bar = bar
		}

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("htprobe — subject verification"))
	b.WriteString("\n\n")
	b.WriteString(rm.bar.View())
	fmt.Fprintf(
		&b, "\n\n  %s  %s   (%d/%d)\n\n",
		passStyle.Render(fmt.Sprintf("✓ %d", rm.passed)),
		failStyle.Render(fmt.Sprintf("✗ %d", rm.failed)),
		rm.done, rm.total,
	)

	for _, result := range rm.recent {
		if result.Passed {
			b.WriteString(passStyle.Render(resultLine(result)))
		} else {
			b.WriteString(failStyle.Render(resultLine(result)))
		}

		b.WriteString("\n")
	}

	if rm.current != "" {
		b.WriteString(dimStyle.Render("RUN   " + rm.current))
		b.WriteString("\n")
	}

	return b.String()
}

func barWidth(termWidth int) int {
	const margin = 4

	width := termWidth - margin
	if width < 10 {
		width = 10
	}

	if width > 60 {
		width = 60
	}

	return width
}
