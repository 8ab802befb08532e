package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestParseSlogLevel(t *testing.T) {
	cases := []struct {
		value string
		want  slog.Level
	}{
		{value: "debug", want: slog.LevelDebug},
		{value: "DEBUG", want: slog.LevelDebug},
		{value: "info", want: slog.LevelInfo},
		{value: "warn", want: slog.LevelWarn},
		{value: "warning", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: " info ", want: slog.LevelInfo},
		{value: "-4", want: slog.LevelDebug},
		{value: "8", want: slog.Level(8)},
		{value: "", want: slog.LevelWarn},
		{value: "bogus", want: slog.LevelWarn},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.want, parseSlogLevel(tc.value, slog.LevelWarn))
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, "ht", viper.GetString(subjectConfigKey))
	assert.Equal(t, "120x40", viper.GetString(sizeConfigKey))
	assert.Equal(t, DefaultCaseTimeout, viper.GetDuration(caseTimeoutConfigKey))
	assert.Equal(t, DefaultInitTimeout, viper.GetDuration(initTimeoutConfigKey))
	assert.Equal(t, defaultReportsDir, viper.GetString(outputFlagName))
	assert.False(t, viper.GetBool(captureConfigKey))
}
