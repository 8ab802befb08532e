// Package pkg provides utilities for htprobe.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// CaptureLog is an append-only on-disk log of items of type T. The harness
// uses it to capture raw subject event lines per case for post-mortem
// inspection.
type CaptureLog[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Range(fn func(index uint64, item T) error) error
	Close() error
}

type captureLogImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewCaptureLog creates a capture log in dir using the given name pattern
// (os.CreateTemp syntax).
func NewCaptureLog[T any](dir, pattern string) (CaptureLog[T], error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create capture dir: %w", err)
	}

	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("create capture log: %w", err)
	}

	slog.Debug("capture log created", "path", file.Name())

	return &captureLogImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// OpenCaptureLog opens an existing capture log read-only. Len reports zero
// for opened logs; Range decodes until the end of the file.
func OpenCaptureLog[T any](path string) (CaptureLog[T], error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open capture log: %w", err)
	}

	return &captureLogImpl[T]{path: path}, nil
}

// Append implements CaptureLog.
func (l *captureLogImpl[T]) Append(item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.encoder == nil {
		return fmt.Errorf("capture log %s is read-only", l.path)
	}

	if err := l.encoder.Encode(item); err != nil {
		return fmt.Errorf("append to capture log: %w", err)
	}

	l.length++

	return nil
}

// Len implements CaptureLog.
func (l *captureLogImpl[T]) Len() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.length
}

// Path implements CaptureLog.
func (l *captureLogImpl[T]) Path() string {
	return l.path
}

// Range implements CaptureLog. It replays the log from the start, decoding
// until the end of the file, so it also works on logs opened read-only.
func (l *captureLogImpl[T]) Range(fn func(index uint64, item T) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open capture log for range: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close capture log", "path", l.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for index := uint64(0); ; index++ {
		var item T

		err := decoder.Decode(&item)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("decode capture log item %d: %w", index, err)
		}

		if err := fn(index, item); err != nil {
			return err
		}
	}
}

// Close implements CaptureLog.
func (l *captureLogImpl[T]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close capture log: %w", err)
	}

	l.file = nil

	slog.Debug("capture log closed", "path", l.path, "length", l.length)

	return nil
}
