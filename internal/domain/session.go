// Package domain implements the verification workflow: correlating subject
// lifecycle events with OS process state and scoring reported outcomes.
package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	m "htprobe.dev/pkg/htprobe/internal/model"
)

// ErrInitTimeout indicates no init event arrived within the bounded wait.
var ErrInitTimeout = errors.New("timed out waiting for init event")

// ErrOutcomeTimeout indicates the stream ended, or the wait expired, without
// a terminal exit event.
var ErrOutcomeTimeout = errors.New("no exit event before stream end")

// WaitForInit blocks until the first init event arrives and returns the pid
// of the subject's direct child. The wait is event-driven with an explicit
// deadline: it resolves as soon as the init line arrives and never polls.
func WaitForInit(ctx context.Context, events <-chan m.Event, timeout time.Duration) (int, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0, ErrInitTimeout
		case <-timer.C:
			return 0, ErrInitTimeout
		case ev, ok := <-events:
			if !ok {
				return 0, ErrInitTimeout
			}

			if ev.Type != m.EventInit {
				continue
			}

			if ev.Data.Pid <= 0 {
				slog.Debug("init event without pid, skipping")
				continue
			}

			return ev.Data.Pid, nil
		}
	}
}

// WaitForExit blocks until the event stream closes or the wait expires and
// returns the outcome of the last exit event observed. Exit events are
// matched on their decoded structure, never on raw text, so payloads that
// merely resemble an exit line cannot be mistaken for one.
func WaitForExit(ctx context.Context, events <-chan m.Event, timeout time.Duration) (m.Outcome, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var last m.Outcome

	seen := false

	finish := func() (m.Outcome, error) {
		if seen {
			return last, nil
		}

		return m.Outcome{}, ErrOutcomeTimeout
	}

	for {
		select {
		case <-ctx.Done():
			return finish()
		case <-timer.C:
			return finish()
		case ev, ok := <-events:
			if !ok {
				return finish()
			}

			if outcome, isExit := ev.ExitOutcome(); isExit {
				last = outcome
				seen = true
			}
		}
	}
}
