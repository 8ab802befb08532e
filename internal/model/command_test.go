package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputCommand(t *testing.T) {
	data, err := json.Marshal(NewInputCommand("exit 7\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"input","payload":"exit 7\n"}`, string(data))
}

func TestNewSendKeysCommand(t *testing.T) {
	data, err := json.Marshal(NewSendKeysCommand("Enter", "C-c"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"sendKeys","keys":["Enter","C-c"]}`, string(data))
}

func TestNewResizeCommand(t *testing.T) {
	data, err := json.Marshal(NewResizeCommand(Size{Cols: 80, Rows: 24}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"resize","cols":80,"rows":24}`, string(data))
}
