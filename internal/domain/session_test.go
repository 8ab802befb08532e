package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "htprobe.dev/pkg/htprobe/internal/model"
)

func initEvent(pid int) m.Event {
	return m.Event{Type: m.EventInit, Data: m.EventData{Pid: pid}}
}

func exitEvent(code int, signal *int) m.Event {
	return m.Event{Type: m.EventExit, Data: m.EventData{Code: &code, Signal: signal}}
}

func outputEvent(seq string) m.Event {
	return m.Event{Type: m.EventOutput, Data: m.EventData{Seq: seq}}
}

// closedStream returns a channel preloaded with events and already closed,
// simulating a subject whose stdout has ended.
func closedStream(events ...m.Event) chan m.Event {
	ch := make(chan m.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)

	return ch
}

func TestWaitForInit_ReturnsPid(t *testing.T) {
	events := closedStream(initEvent(1234))

	pid, err := WaitForInit(context.Background(), events, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1234, pid)
}

func TestWaitForInit_SkipsOtherEvents(t *testing.T) {
	events := closedStream(outputEvent("boot noise"), initEvent(7))

	pid, err := WaitForInit(context.Background(), events, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 7, pid)
}

func TestWaitForInit_SkipsInitWithoutPid(t *testing.T) {
	events := closedStream(initEvent(0), initEvent(55))

	pid, err := WaitForInit(context.Background(), events, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 55, pid)
}

func TestWaitForInit_TimesOut(t *testing.T) {
	events := make(chan m.Event)

	_, err := WaitForInit(context.Background(), events, 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrInitTimeout)
}

func TestWaitForInit_StreamClosesWithoutInit(t *testing.T) {
	events := closedStream(outputEvent("only noise"))

	_, err := WaitForInit(context.Background(), events, time.Second)
	assert.ErrorIs(t, err, ErrInitTimeout)
}

func TestWaitForInit_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := make(chan m.Event)

	_, err := WaitForInit(ctx, events, time.Second)
	assert.ErrorIs(t, err, ErrInitTimeout)
}

func TestWaitForExit_ReturnsOutcome(t *testing.T) {
	events := closedStream(exitEvent(42, nil))

	outcome, err := WaitForExit(context.Background(), events, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 42, outcome.Code)
	assert.Nil(t, outcome.Signal)
}

func TestWaitForExit_SignaledOutcome(t *testing.T) {
	events := closedStream(exitEvent(143, m.Sig(15)))

	outcome, err := WaitForExit(context.Background(), events, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 143, outcome.Code)
	require.NotNil(t, outcome.Signal)
	assert.Equal(t, 15, *outcome.Signal)
}

func TestWaitForExit_LastExitWins(t *testing.T) {
	events := closedStream(exitEvent(1, nil), exitEvent(99, nil))

	outcome, err := WaitForExit(context.Background(), events, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 99, outcome.Code)
}

func TestWaitForExit_IgnoresNonExitEvents(t *testing.T) {
	events := closedStream(outputEvent(`{"type":"exit"}`), exitEvent(5, nil))

	outcome, err := WaitForExit(context.Background(), events, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5, outcome.Code)
}

func TestWaitForExit_StreamClosesWithoutExit(t *testing.T) {
	events := closedStream(outputEvent("partial run"))

	_, err := WaitForExit(context.Background(), events, time.Second)
	assert.ErrorIs(t, err, ErrOutcomeTimeout)
}

func TestWaitForExit_TimeoutAfterExitSeen(t *testing.T) {
	// Exit arrived but the stream never closed; the seen outcome still wins.
	events := make(chan m.Event, 1)
	events <- exitEvent(17, nil)

	outcome, err := WaitForExit(context.Background(), events, 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 17, outcome.Code)
}

func TestWaitForExit_TimeoutWithNothingSeen(t *testing.T) {
	events := make(chan m.Event)

	_, err := WaitForExit(context.Background(), events, 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrOutcomeTimeout)
}
