package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "htprobe.dev/pkg/htprobe/internal/model"
)

func TestScore_Pass(t *testing.T) {
	expected := m.Outcome{Code: 143, Signal: m.Sig(15)}
	actual := m.Outcome{Code: 143, Signal: m.Sig(15)}

	result := Score(3, "killed by TERM", expected, actual)

	assert.True(t, result.Passed)
	assert.Equal(t, 3, result.Seq)
	assert.Equal(t, "killed by TERM", result.Description)
	assert.Empty(t, result.Failure)
}

func TestScore_CodeMismatch(t *testing.T) {
	result := Score(1, "true exits zero", m.Outcome{Code: 0}, m.Outcome{Code: 1})

	assert.False(t, result.Passed)
	assert.Empty(t, result.Failure)
}

func TestScore_SignalPresenceMismatch(t *testing.T) {
	// Same code, but one side was signaled: never a pass.
	expected := m.Outcome{Code: 143}
	actual := m.Outcome{Code: 143, Signal: m.Sig(15)}

	result := Score(2, "grandchild coupling", expected, actual)

	assert.False(t, result.Passed)
}

func TestFail(t *testing.T) {
	expected := m.Outcome{Code: 0}

	result := Fail(9, "slow subject", expected, FailureInit)

	assert.False(t, result.Passed)
	assert.Equal(t, 9, result.Seq)
	assert.Equal(t, FailureInit, result.Failure)
	assert.Equal(t, expected, result.Expected)
	assert.Equal(t, m.Outcome{}, result.Actual)
}
