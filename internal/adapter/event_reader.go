// Package adapter contains process and infrastructure adapters for the
// htprobe CLI. Adapters hide direct os/exec and filesystem access so the
// domain logic can be tested without spawning real processes.
package adapter

import (
	"bufio"
	"io"
	"log/slog"

	m "htprobe.dev/pkg/htprobe/internal/model"
)

// maxEventLine bounds a single event line; output events can carry large
// escape-sequence payloads.
const maxEventLine = 1024 * 1024

// EventReader incrementally decodes the subject's newline-delimited event
// stream. The sequence it yields is lazy, finite and non-restartable; it
// ends when the underlying stream closes. Malformed lines are skipped, not
// surfaced: the subject's output is untrusted input here.
type EventReader struct {
	scanner *bufio.Scanner
	rawSink func([]byte)
}

// NewEventReader wraps the subject's stdout.
func NewEventReader(r io.Reader) *EventReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLine)

	return &EventReader{scanner: scanner}
}

// OnRawLine registers a sink that observes every raw line before decoding,
// well-formed or not. Used for event capture.
func (r *EventReader) OnRawLine(fn func([]byte)) {
	r.rawSink = fn
}

// Next returns the next well-formed event. The second return value is false
// once the stream has closed.
func (r *EventReader) Next() (m.Event, bool) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()

		if r.rawSink != nil {
			r.rawSink(append([]byte(nil), line...))
		}

		ev, err := m.DecodeEvent(line)
		if err != nil {
			slog.Debug("skipping malformed event line", "error", err)
			continue
		}

		return ev, true
	}

	if err := r.scanner.Err(); err != nil {
		slog.Debug("event stream closed with error", "error", err)
	}

	return m.Event{}, false
}
