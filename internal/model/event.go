// Package model defines the data structures for subject verification.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventType identifies the kind of lifecycle event emitted by the subject.
type EventType string

const (
	// EventInit is the first lifecycle event; it carries the pid of the
	// subject's direct child.
	EventInit EventType = "init"
	// EventOutput carries terminal output produced by the child.
	EventOutput EventType = "output"
	// EventResize reports a terminal size change.
	EventResize EventType = "resize"
	// EventSnapshot carries a full terminal view snapshot.
	EventSnapshot EventType = "snapshot"
	// EventExit is the terminal lifecycle event; it carries the exit code
	// and, when the direct child was itself signaled, the signal number.
	EventExit EventType = "exit"
)

// Event is one decoded line of the subject's event stream.
type Event struct {
	Type EventType `json:"type"`
	Data EventData `json:"data"`
}

// EventData holds the union of per-event payload fields. Which fields are
// meaningful depends on Event.Type.
type EventData struct {
	Pid    int    `json:"pid,omitempty"`
	Code   *int   `json:"code,omitempty"`
	Signal *int   `json:"signal,omitempty"`
	Seq    string `json:"seq,omitempty"`
	Text   string `json:"text,omitempty"`
	Cols   int    `json:"cols,omitempty"`
	Rows   int    `json:"rows,omitempty"`
}

// DecodeEvent parses one line of the subject's stream into an Event.
// A line without a type field is rejected; the caller decides whether
// malformed input is fatal (for the harness it never is).
func DecodeEvent(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event line: %w", err)
	}

	if ev.Type == "" {
		return Event{}, fmt.Errorf("event line has no type field")
	}

	return ev, nil
}

// ExitOutcome extracts the reported Outcome from an exit event. The second
// return value is false for any other event type, and for exit events that
// lack the mandatory code field.
func (e Event) ExitOutcome() (Outcome, bool) {
	if e.Type != EventExit || e.Data.Code == nil {
		return Outcome{}, false
	}

	return Outcome{Code: *e.Data.Code, Signal: e.Data.Signal}, true
}

// ParseEventTypes converts a comma-separated subscription list into event
// types, rejecting names the subject does not understand.
func ParseEventTypes(list string) ([]EventType, error) {
	known := map[EventType]bool{
		EventInit:     true,
		EventOutput:   true,
		EventResize:   true,
		EventSnapshot: true,
		EventExit:     true,
	}

	var types []EventType

	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		et := EventType(name)
		if !known[et] {
			return nil, fmt.Errorf("invalid event name: %s", name)
		}

		types = append(types, et)
	}

	return types, nil
}
