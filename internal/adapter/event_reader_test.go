package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "htprobe.dev/pkg/htprobe/internal/model"
)

func TestEventReader_DecodesStream(t *testing.T) {
	stream := strings.Join([]string{
		`{"type":"init","data":{"pid":99}}`,
		`{"type":"output","data":{"seq":"hello"}}`,
		`{"type":"exit","data":{"code":0,"signal":null}}`,
	}, "\n")

	reader := NewEventReader(strings.NewReader(stream))

	ev, ok := reader.Next()
	require.True(t, ok)
	assert.Equal(t, m.EventInit, ev.Type)
	assert.Equal(t, 99, ev.Data.Pid)

	ev, ok = reader.Next()
	require.True(t, ok)
	assert.Equal(t, m.EventOutput, ev.Type)

	ev, ok = reader.Next()
	require.True(t, ok)
	assert.Equal(t, m.EventExit, ev.Type)

	_, ok = reader.Next()
	assert.False(t, ok)
}

func TestEventReader_SkipsMalformedLines(t *testing.T) {
	stream := strings.Join([]string{
		"subject starting up",
		`{"broken":`,
		`{"type":"exit","data":{"code":3}}`,
	}, "\n")

	reader := NewEventReader(strings.NewReader(stream))

	ev, ok := reader.Next()
	require.True(t, ok)
	assert.Equal(t, m.EventExit, ev.Type)

	_, ok = reader.Next()
	assert.False(t, ok)
}

func TestEventReader_EmptyStream(t *testing.T) {
	reader := NewEventReader(strings.NewReader(""))

	_, ok := reader.Next()
	assert.False(t, ok)
}

func TestEventReader_RawSinkSeesEveryLine(t *testing.T) {
	stream := "garbage\n" + `{"type":"init","data":{"pid":1}}` + "\n"

	var raw []string

	reader := NewEventReader(strings.NewReader(stream))
	reader.OnRawLine(func(line []byte) {
		raw = append(raw, string(line))
	})

	for {
		if _, ok := reader.Next(); !ok {
			break
		}
	}

	require.Len(t, raw, 2)
	assert.Equal(t, "garbage", raw[0])
	assert.Contains(t, raw[1], `"init"`)
}
