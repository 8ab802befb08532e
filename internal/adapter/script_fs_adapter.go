package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	m "htprobe.dev/pkg/htprobe/internal/model"
)

// ScriptFSAdapter abstracts the scratch shell scripts that carry case
// commands into the subject. Script paths are unique per invocation so
// concurrent harness runs never collide, and removal is deterministic on
// every exit path.
type ScriptFSAdapter interface {
	// WriteScript materializes body as an executable /bin/sh script and
	// returns its unique path.
	WriteScript(body string) (m.Path, error)

	// Remove deletes a script; an already-removed script is not an error.
	Remove(path m.Path) error
}

// LocalScriptFSAdapter writes scripts under the system temp directory.
type LocalScriptFSAdapter struct {
	dir string
}

// NewLocalScriptFSAdapter constructs a LocalScriptFSAdapter.
func NewLocalScriptFSAdapter() *LocalScriptFSAdapter {
	return &LocalScriptFSAdapter{dir: os.TempDir()}
}

// WriteScript creates a uniquely named executable script.
func (a *LocalScriptFSAdapter) WriteScript(body string) (m.Path, error) {
	f, err := os.CreateTemp(a.dir, "htprobe-case-*.sh")
	if err != nil {
		return "", fmt.Errorf("create case script: %w", err)
	}

	if _, err := fmt.Fprintf(f, "#!/bin/sh\n%s\n", body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())

		return "", fmt.Errorf("write case script: %w", err)
	}

	if err := f.Chmod(0o700); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())

		return "", fmt.Errorf("chmod case script: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())

		return "", fmt.Errorf("close case script: %w", err)
	}

	slog.Debug("case script written", "path", f.Name())

	return m.Path(f.Name()), nil
}

// Remove deletes the script, tolerating a missing file.
func (a *LocalScriptFSAdapter) Remove(path m.Path) error {
	err := os.Remove(string(path))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove case script: %w", err)
	}

	return nil
}
