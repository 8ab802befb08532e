package adapter

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSignalNumber(t *testing.T) {
	cases := []struct {
		name string
		want unix.Signal
	}{
		{name: "TERM", want: unix.SIGTERM},
		{name: "SIGTERM", want: unix.SIGTERM},
		{name: "term", want: unix.SIGTERM},
		{name: "HUP", want: unix.SIGHUP},
		{name: "KILL", want: unix.SIGKILL},
		{name: " INT ", want: unix.SIGINT},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig, err := SignalNumber(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sig)
		})
	}
}

func TestSignalNumber_Unknown(t *testing.T) {
	_, err := SignalNumber("NOTASIGNAL")
	assert.Error(t, err)
}

func TestDeliver_ToLiveProcess(t *testing.T) {
	signals := NewLocalSignalAdapter()

	// Signal 0 performs the delivery checks without sending anything.
	err := signals.Deliver(os.Getpid(), 0)
	assert.NoError(t, err)
}

func TestDeliver_VanishedTargetIsBenign(t *testing.T) {
	cmd := exec.Command("true")
	require.NoError(t, cmd.Run())

	signals := NewLocalSignalAdapter()

	err := signals.Deliver(cmd.Process.Pid, unix.SIGTERM)
	assert.NoError(t, err)
}
