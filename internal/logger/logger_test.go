package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"panic":   zapcore.PanicLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = New("nope")
	require.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	require.Equal(t, "error", Level())

	l, err := FromEnv()
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.WarnLevel))
	require.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}
