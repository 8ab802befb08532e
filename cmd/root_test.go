package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"htprobe.dev/pkg/htprobe/internal/domain"
)

// workflowMock stands in for the package-level workflow during command tests.
type workflowMock struct {
	mock.Mock
}

func (w *workflowMock) Run(ctx context.Context, args domain.RunArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *workflowMock) List(ctx context.Context, args domain.ListArgs) error {
	return w.Called(ctx, args).Error(0)
}

func (w *workflowMock) View(ctx context.Context, args domain.ViewArgs) error {
	return w.Called(ctx, args).Error(0)
}

// setupCommandTest injects a workflow mock, points the log file at a scratch
// dir and captures command output.
func setupCommandTest(t *testing.T) (*workflowMock, *bytes.Buffer) {
	t.Helper()

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "htprobe.log"))

	mockWorkflow := &workflowMock{}
	workflow = mockWorkflow

	t.Cleanup(func() {
		workflow = nil
	})

	buffer := &bytes.Buffer{}
	rootCmd.SetOut(buffer)
	rootCmd.SetErr(buffer)

	return mockWorkflow, buffer
}

func TestRootCommand_ShowsHelp(t *testing.T) {
	_, buffer := setupCommandTest(t)

	rootCmd.SetArgs([]string{})
	require.NoError(t, rootCmd.Execute())

	out := buffer.String()
	assert.Contains(t, out, "htprobe")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "exit-codes")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"run", "list", "view", "init", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
