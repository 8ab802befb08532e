package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "htprobe.dev/pkg/htprobe/internal/model"
)

func TestRunModel_CountsResults(t *testing.T) {
	var model tea.Model = newRunModel(3)

	model, _ = model.Update(caseResultMsg{result: m.TestResult{Seq: 1, Passed: true}})
	model, _ = model.Update(caseResultMsg{result: m.TestResult{Seq: 2, Passed: false}})

	rm, ok := model.(runModel)
	require.True(t, ok)

	assert.Equal(t, 2, rm.done)
	assert.Equal(t, 1, rm.passed)
	assert.Equal(t, 1, rm.failed)
	assert.Len(t, rm.recent, 2)
}

func TestRunModel_RecentResultsAreBounded(t *testing.T) {
	var model tea.Model = newRunModel(100)

	for i := 0; i < resultTail+5; i++ {
		model, _ = model.Update(caseResultMsg{result: m.TestResult{Seq: i + 1, Passed: true}})
	}

	rm, ok := model.(runModel)
	require.True(t, ok)

	assert.Len(t, rm.recent, resultTail)
	assert.Equal(t, resultTail+5, rm.recent[len(rm.recent)-1].Seq)
}

func TestRunModel_CaseStartShowsCurrent(t *testing.T) {
	var model tea.Model = newRunModel(1)

	model, _ = model.Update(caseStartMsg{seq: 1, description: "true exits zero"})

	rm, ok := model.(runModel)
	require.True(t, ok)
	assert.Contains(t, rm.current, "true exits zero")
	assert.Contains(t, rm.View(), "true exits zero")
}

func TestRunModel_QuitKeys(t *testing.T) {
	keys := map[string]tea.KeyMsg{
		"q":      {Type: tea.KeyRunes, Runes: []rune("q")},
		"esc":    {Type: tea.KeyEsc},
		"ctrl+c": {Type: tea.KeyCtrlC},
	}

	for name, msg := range keys {
		t.Run(name, func(t *testing.T) {
			model := newRunModel(1)

			_, cmd := model.Update(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestRunModel_RunDoneQuits(t *testing.T) {
	model := newRunModel(1)

	_, cmd := model.Update(runDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRunModel_WindowSizeAdjustsBar(t *testing.T) {
	model := newRunModel(1)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 200, Height: 50})

	rm, ok := updated.(runModel)
	require.True(t, ok)
	assert.Equal(t, 60, rm.bar.Width)
}

func TestRunModel_ViewShowsCounts(t *testing.T) {
	var model tea.Model = newRunModel(4)

	model, _ = model.Update(caseResultMsg{result: m.TestResult{Seq: 1, Description: "a", Passed: true}})
	model, _ = model.Update(caseResultMsg{result: m.TestResult{Seq: 2, Description: "b", Passed: false}})

	rm, ok := model.(runModel)
	require.True(t, ok)

	view := rm.View()
	assert.Contains(t, view, "✓ 1")
	assert.Contains(t, view, "✗ 1")
	assert.Contains(t, view, "(2/4)")
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 10, barWidth(5))
	assert.Equal(t, 36, barWidth(40))
	assert.Equal(t, 60, barWidth(500))
}
