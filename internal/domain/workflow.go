package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"htprobe.dev/pkg/htprobe/internal/adapter"
	"htprobe.dev/pkg/htprobe/internal/controller"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

// ErrVerification marks a completed run with at least one failed case. The
// CLI maps it to exit status 1 after the full report has been printed.
var ErrVerification = errors.New("verification failed")

// RunArgs parameterizes one verification run.
type RunArgs struct {
	// Suites names built-in suites; empty means the default set.
	Suites []string
	// SuiteFile, when set, loads suites from YAML instead of built-ins.
	SuiteFile m.Path
	// Exclude holds case-description regexes to skip.
	Exclude []string
	// Reports is the directory run reports are saved into.
	Reports m.Path
	// Subject is the subject binary name or path to resolve.
	Subject string
	// Size is the terminal geometry for every case.
	Size m.Size
	// CaseTimeout bounds each case end to end.
	CaseTimeout time.Duration
	// InitTimeout bounds each init correlation.
	InitTimeout time.Duration
	// Capture enables per-case raw event capture under the reports dir.
	Capture bool
}

// ListArgs parameterizes suite listing.
type ListArgs struct {
	Suites    []string
	SuiteFile m.Path
	Exclude   []string
}

// ViewArgs parameterizes report viewing.
type ViewArgs struct {
	Reports m.Path
}

// Workflow is the top-level harness orchestration.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	subject adapter.SubjectAdapter
	store   adapter.ReportStore
	ui      controller.UI

	// newRunner builds the per-run runner once the subject is resolved.
	// Swappable in tests.
	newRunner func(cfg RunnerConfig) Runner
}

// NewWorkflow constructs a Workflow wired to the given adapters.
func NewWorkflow(
	subject adapter.SubjectAdapter,
	signals adapter.SignalAdapter,
	scripts adapter.ScriptFSAdapter,
	store adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		subject: subject,
		store:   store,
		ui:      ui,
		newRunner: func(cfg RunnerConfig) Runner {
			return NewRunner(subject, signals, scripts, cfg)
		},
	}
}

// Run executes the selected suites strictly sequentially and reports. Only
// a launch error aborts the run; every other condition degrades to a failed
// result and the run continues to the next case.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	suites, err := w.selectSuites(args.Suites, args.SuiteFile, args.Exclude)
	if err != nil {
		return err
	}

	// Resolve before anything is spawned: a missing subject binary is the
	// one fatal condition, and it must produce zero results.
	bin, err := w.subject.Resolve(args.Subject)
	if err != nil {
		slog.Error("subject resolution failed", "subject", args.Subject, "error", err)
		return err
	}

	cfg := RunnerConfig{
		Bin:         bin,
		Size:        args.Size,
		CaseTimeout: args.CaseTimeout,
		InitTimeout: args.InitTimeout,
	}
	if args.Capture {
		cfg.CaptureDir = m.Path(filepath.Join(string(args.Reports), "capture"))
	}

	runner := w.newRunner(cfg)

	total := 0
	for _, suite := range suites {
		total += suite.Len()
	}

	if err := w.ui.Start(ctx, total); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close(ctx)

	report := m.Report{}
	seq := 0

	for _, suite := range suites {
		slog.Info("running suite", "suite", suite.Name, "cases", suite.Len())

		for _, tc := range suite.Cases {
			seq++
			w.ui.DisplayCaseStart(ctx, seq, tc.Description)

			result := runner.RunCase(ctx, seq, tc)

			w.ui.DisplayCaseResult(ctx, result)

			report = report.Merge(m.NewReport(result))
		}

		for _, sc := range suite.SignalCases {
			seq++
			w.ui.DisplayCaseStart(ctx, seq, sc.Description)

			result := runner.RunSignalCase(ctx, seq, sc)

			w.ui.DisplayCaseResult(ctx, result)

			report = report.Merge(m.NewReport(result))
		}
	}

	w.ui.DisplaySummary(ctx, report)

	if path, err := w.store.Save(args.Reports, report); err != nil {
		slog.Warn("failed to save report", "dir", args.Reports, "error", err)
	} else {
		slog.Info("report saved", "path", path)
	}

	if report.TotalFailed > 0 {
		return fmt.Errorf("%w: %d of %d cases failed", ErrVerification, report.TotalFailed, report.TotalRun)
	}

	return nil
}

// List shows the selected suites and their case counts.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	suites, err := w.selectSuites(args.Suites, args.SuiteFile, args.Exclude)
	if err != nil {
		return err
	}

	w.ui.DisplaySuites(ctx, suites)

	return nil
}

// View renders the most recently saved report.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.store.LoadLatest(args.Reports)
	if err != nil {
		return err
	}

	w.ui.DisplayReport(ctx, report)

	return nil
}

func (w *workflow) selectSuites(names []string, file m.Path, exclude []string) ([]m.Suite, error) {
	var (
		suites []m.Suite
		err    error
	)

	if file != "" {
		suites, err = LoadSuiteFile(file)
	} else {
		suites, err = SelectSuites(names)
	}

	if err != nil {
		return nil, err
	}

	return FilterSuites(suites, exclude)
}
