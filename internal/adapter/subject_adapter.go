package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

// ErrLaunch indicates the subject executable could not be found or started.
// It is the only fatal error class: the workflow aborts the whole run on it
// before any case executes.
var ErrLaunch = errors.New("subject launch error")

// LaunchSpec describes one subject invocation.
type LaunchSpec struct {
	// Bin is the resolved subject executable path.
	Bin string
	// Subscribe is the event subscription set passed via --subscribe.
	Subscribe []m.EventType
	// Size is the terminal geometry; the zero value omits --size.
	Size m.Size
	// Command is the argv run inside the subject's terminal.
	Command []string
	// RawSink, when non-nil, observes every raw event line for capture.
	RawSink func([]byte)
}

// Session is one live subject process. Events yields the decoded event
// stream; the channel closes when the subject's stdout closes. Reap must be
// called on every exit path so the OS process is always waited for.
type Session interface {
	Events() <-chan m.Event
	SendInput(text string) error
	SendKeys(keys ...string) error
	Resize(size m.Size) error
	Reap() error
}

// SubjectAdapter abstracts launching the subject process.
type SubjectAdapter interface {
	// Resolve locates the subject executable, returning ErrLaunch when it
	// cannot be found. Run this before any case so a missing binary aborts
	// with no process spawned.
	Resolve(bin string) (string, error)

	// Launch starts the subject. The context bounds the whole invocation:
	// when it expires the process is killed and the event channel closes.
	Launch(ctx context.Context, spec LaunchSpec) (Session, error)
}

// LocalSubjectAdapter provides a concrete implementation using os/exec.
type LocalSubjectAdapter struct{}

// NewLocalSubjectAdapter constructs a LocalSubjectAdapter.
func NewLocalSubjectAdapter() *LocalSubjectAdapter {
	return &LocalSubjectAdapter{}
}

// Resolve locates the subject executable on PATH.
func (a *LocalSubjectAdapter) Resolve(bin string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %q: %v", ErrLaunch, bin, err)
	}

	return path, nil
}

// Launch spawns the subject with its stdout wired into an EventReader.
func (a *LocalSubjectAdapter) Launch(ctx context.Context, spec LaunchSpec) (Session, error) {
	cmd := exec.CommandContext(ctx, spec.Bin, BuildSubjectArgs(spec)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %v", ErrLaunch, err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %v", ErrLaunch, err)
	}

	// Stderr is discarded: the subject's diagnostics are not part of the
	// event interface.
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting %q: %v", ErrLaunch, spec.Bin, err)
	}

	slog.Debug("subject launched", "bin", spec.Bin, "pid", cmd.Process.Pid)

	sess := &subjectSession{
		cmd:    cmd,
		stdin:  stdin,
		events: make(chan m.Event, 16),
		done:   make(chan struct{}),
	}

	reader := NewEventReader(stdout)
	reader.OnRawLine(spec.RawSink)

	sess.group.Go(func() error {
		defer close(sess.events)

		for {
			ev, ok := reader.Next()
			if !ok {
				return nil
			}

			select {
			case sess.events <- ev:
			case <-sess.done:
				return nil
			}
		}
	})

	return sess, nil
}

// BuildSubjectArgs renders a LaunchSpec into the subject's CLI arguments.
func BuildSubjectArgs(spec LaunchSpec) []string {
	var args []string

	if len(spec.Subscribe) > 0 {
		names := make([]string, 0, len(spec.Subscribe))
		for _, et := range spec.Subscribe {
			names = append(names, string(et))
		}

		args = append(args, "--subscribe", strings.Join(names, ","))
	}

	if spec.Size != (m.Size{}) {
		args = append(args, "--size", spec.Size.String())
	}

	return append(args, spec.Command...)
}

type subjectSession struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	events chan m.Event
	group  errgroup.Group
	done   chan struct{}

	writeMu sync.Mutex
	reapOne sync.Once
}

func (s *subjectSession) Events() <-chan m.Event {
	return s.events
}

func (s *subjectSession) SendInput(text string) error {
	return s.writeCommand(m.NewInputCommand(text))
}

func (s *subjectSession) SendKeys(keys ...string) error {
	return s.writeCommand(m.NewSendKeysCommand(keys...))
}

func (s *subjectSession) Resize(size m.Size) error {
	return s.writeCommand(m.NewResizeCommand(size))
}

func (s *subjectSession) writeCommand(cmd any) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode control command: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := fmt.Fprintf(s.stdin, "%s\n", data); err != nil {
		return fmt.Errorf("write control command: %w", err)
	}

	return nil
}

// Reap terminates the subject if it is still running and waits for it.
// Safe to call more than once; later calls are no-ops.
func (s *subjectSession) Reap() error {
	s.reapOne.Do(func() {
		close(s.done)

		_ = s.stdin.Close()

		if s.cmd.Process != nil {
			// Already-exited processes make Kill fail; that is the
			// normal path after a clean exit event.
			_ = s.cmd.Process.Kill()
		}

		if err := s.cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				slog.Debug("subject wait", "error", err)
			}
		}

		_ = s.group.Wait()

		slog.Debug("subject reaped", "pid", s.cmd.Process.Pid)
	})

	return nil
}
