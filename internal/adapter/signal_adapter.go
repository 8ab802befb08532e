package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sys/unix"
)

// SignalAdapter abstracts delivering an OS signal to a pid.
type SignalAdapter interface {
	// Deliver sends the signal. A target that has already exited is not an
	// error: the subject may terminate between pid discovery and delivery,
	// a race that is acknowledged rather than hidden.
	Deliver(pid int, sig unix.Signal) error
}

// LocalSignalAdapter delivers signals via the kill syscall.
type LocalSignalAdapter struct{}

// NewLocalSignalAdapter constructs a LocalSignalAdapter.
func NewLocalSignalAdapter() *LocalSignalAdapter {
	return &LocalSignalAdapter{}
}

// Deliver sends sig to pid, treating a vanished target as benign.
func (a *LocalSignalAdapter) Deliver(pid int, sig unix.Signal) error {
	err := unix.Kill(pid, sig)
	if err == nil {
		return nil
	}

	if errors.Is(err, unix.ESRCH) {
		slog.Debug("signal target already exited", "pid", pid, "signal", sig)
		return nil
	}

	return fmt.Errorf("deliver signal %d to pid %d: %w", sig, pid, err)
}

// SignalNumber resolves a signal name ("TERM", "SIGKILL") to its number.
func SignalNumber(name string) (unix.Signal, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(n, "SIG") {
		n = "SIG" + n
	}

	sig := unix.SignalNum(n)
	if sig == 0 {
		return 0, fmt.Errorf("unknown signal name %q", name)
	}

	return sig, nil
}
