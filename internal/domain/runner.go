package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sys/unix"
	"htprobe.dev/pkg/htprobe/internal/adapter"
	m "htprobe.dev/pkg/htprobe/internal/model"
	pkg "htprobe.dev/pkg/htprobe/pkg"
)

// RunnerConfig carries the per-run settings shared by every case.
type RunnerConfig struct {
	// Bin is the resolved subject executable path.
	Bin string
	// Size is the terminal geometry passed to the subject.
	Size m.Size
	// CaseTimeout bounds one whole case; on expiry the subject is killed
	// and the case scores as an outcome timeout, never left running.
	CaseTimeout time.Duration
	// InitTimeout bounds the wait for the init event.
	InitTimeout time.Duration
	// CaptureDir, when set, receives one capture log of raw event lines
	// per case.
	CaptureDir m.Path
}

// DefaultSettle is how long signal cases wait between observing init and
// delivering the signal, so the child can finish starting up.
const DefaultSettle = 100 * time.Millisecond

// Runner executes a single case end to end: launch, init correlation,
// optional signal delivery, outcome extraction, scoring. Abnormal paths
// degrade to failed results; only the launcher's preflight can abort a run.
type Runner interface {
	RunCase(ctx context.Context, seq int, tc m.TestCase) m.TestResult
	RunSignalCase(ctx context.Context, seq int, sc m.SignalTestCase) m.TestResult
}

type runner struct {
	subject adapter.SubjectAdapter
	signals adapter.SignalAdapter
	scripts adapter.ScriptFSAdapter
	cfg     RunnerConfig
}

// NewRunner constructs a Runner backed by the provided adapters.
func NewRunner(
	subject adapter.SubjectAdapter,
	signals adapter.SignalAdapter,
	scripts adapter.ScriptFSAdapter,
	cfg RunnerConfig,
) Runner {
	return &runner{
		subject: subject,
		signals: signals,
		scripts: scripts,
		cfg:     cfg,
	}
}

// RunCase drives one plain case through the lifecycle.
func (r *runner) RunCase(ctx context.Context, seq int, tc m.TestCase) m.TestResult {
	expected := tc.Expected()

	runCtx, cancel := context.WithTimeout(ctx, r.cfg.CaseTimeout)
	defer cancel()

	sess, cleanup, err := r.launch(runCtx, seq, tc.Command)
	if err != nil {
		slog.Error("case launch failed", "seq", seq, "case", tc.Description, "error", err)
		return Fail(seq, tc.Description, expected, FailureLaunch)
	}

	defer cleanup()

	pid, err := WaitForInit(runCtx, sess.Events(), r.cfg.InitTimeout)
	if err != nil {
		slog.Error("init correlation failed", "seq", seq, "case", tc.Description, "error", err)
		return Fail(seq, tc.Description, expected, FailureInit)
	}

	slog.Debug("init observed", "seq", seq, "pid", pid)

	for _, line := range tc.Input {
		if err := sess.SendInput(line); err != nil {
			slog.Warn("control input failed", "seq", seq, "error", err)
		}
	}

	actual, err := WaitForExit(runCtx, sess.Events(), r.cfg.CaseTimeout)
	if err != nil {
		slog.Error("outcome extraction failed", "seq", seq, "case", tc.Description, "error", err)
		return Fail(seq, tc.Description, expected, FailureOutcome)
	}

	return Score(seq, tc.Description, expected, actual)
}

// RunSignalCase drives a case that delivers a signal to the direct child
// after init is observed. Delivery only ever happens after correlation, so
// the pid is always the one the subject reported.
func (r *runner) RunSignalCase(ctx context.Context, seq int, sc m.SignalTestCase) m.TestResult {
	expected := sc.Expected()

	sig, err := resolveSignal(sc)
	if err != nil {
		slog.Error("bad signal case", "seq", seq, "case", sc.Description, "error", err)
		return Fail(seq, sc.Description, expected, FailureSignal)
	}

	command := sc.Command
	if command == "" {
		command = "sleep 10"
	}

	runCtx, cancel := context.WithTimeout(ctx, r.cfg.CaseTimeout)
	defer cancel()

	sess, cleanup, err := r.launch(runCtx, seq, command)
	if err != nil {
		slog.Error("case launch failed", "seq", seq, "case", sc.Description, "error", err)
		return Fail(seq, sc.Description, expected, FailureLaunch)
	}

	defer cleanup()

	pid, err := WaitForInit(runCtx, sess.Events(), r.cfg.InitTimeout)
	if err != nil {
		slog.Error("init correlation failed", "seq", seq, "case", sc.Description, "error", err)
		return Fail(seq, sc.Description, expected, FailureInit)
	}

	settle := DefaultSettle
	if sc.SettleMillis > 0 {
		settle = time.Duration(sc.SettleMillis) * time.Millisecond
	}

	select {
	case <-time.After(settle):
	case <-runCtx.Done():
	}

	deliveryFailed := false

	if err := r.signals.Deliver(pid, sig); err != nil {
		slog.Error("signal delivery failed", "seq", seq, "pid", pid, "signal", sig, "error", err)

		deliveryFailed = true
	}

	actual, err := WaitForExit(runCtx, sess.Events(), r.cfg.CaseTimeout)
	if err != nil {
		slog.Error("outcome extraction failed", "seq", seq, "case", sc.Description, "error", err)
		return Fail(seq, sc.Description, expected, FailureOutcome)
	}

	if deliveryFailed {
		return Fail(seq, sc.Description, expected, FailureSignal)
	}

	return Score(seq, sc.Description, expected, actual)
}

func resolveSignal(sc m.SignalTestCase) (unix.Signal, error) {
	if sc.SignalName != "" {
		return adapter.SignalNumber(sc.SignalName)
	}

	if sc.SignalNumber <= 0 {
		return 0, errors.New("no usable signal identifier")
	}

	return unix.Signal(sc.SignalNumber), nil
}

// launch writes the case script, starts the subject on it, and returns the
// session plus a cleanup that reaps the process and removes the script on
// every exit path.
func (r *runner) launch(ctx context.Context, seq int, command string) (adapter.Session, func(), error) {
	script, err := r.scripts.WriteScript(command)
	if err != nil {
		return nil, nil, err
	}

	capture, sink, err := r.openCapture(seq)
	if err != nil {
		_ = r.scripts.Remove(script)
		return nil, nil, err
	}

	subscribe := []m.EventType{m.EventInit, m.EventExit}
	if sink != nil {
		subscribe = []m.EventType{m.EventInit, m.EventOutput, m.EventExit}
	}

	spec := adapter.LaunchSpec{
		Bin:       r.cfg.Bin,
		Subscribe: subscribe,
		Size:      r.cfg.Size,
		Command:   []string{string(script)},
		RawSink:   sink,
	}

	sess, err := r.subject.Launch(ctx, spec)
	if err != nil {
		if capture != nil {
			_ = capture.Close()
		}

		_ = r.scripts.Remove(script)

		return nil, nil, err
	}

	cleanup := func() {
		if err := sess.Reap(); err != nil {
			slog.Error("failed to reap subject", "seq", seq, "error", err)
		}

		if capture != nil {
			if err := capture.Close(); err != nil {
				slog.Error("failed to close capture log", "seq", seq, "error", err)
			}
		}

		if err := r.scripts.Remove(script); err != nil {
			slog.Error("failed to remove case script", "seq", seq, "error", err)
		}
	}

	return sess, cleanup, nil
}

func (r *runner) openCapture(seq int) (pkg.CaptureLog[string], func([]byte), error) {
	if r.cfg.CaptureDir == "" {
		return nil, nil, nil
	}

	pattern := fmt.Sprintf("case-%03d-*.events", seq)

	capture, err := pkg.NewCaptureLog[string](string(r.cfg.CaptureDir), pattern)
	if err != nil {
		return nil, nil, err
	}

	sink := func(line []byte) {
		if err := capture.Append(string(line)); err != nil {
			slog.Warn("event capture append failed", "seq", seq, "error", err)
		}
	}

	return capture, sink, nil
}
