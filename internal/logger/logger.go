// Package logger builds the zap loggers used by the command line tools.
package logger

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"
)

// EnvLevel names the variable read by FromEnv.
const EnvLevel = "LOG_LEVEL"

const defaultLevel = "info"

// ParseLevel maps a level name to a zap level. "warning" is accepted as an
// alias of "warn".
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	case "panic":
		return zapcore.PanicLevel, nil
	}
	return zapcore.InfoLevel, xerrors.Errorf("unknown log level %q", level)
}

// Config returns a console config writing to stderr. Levels are colored
// when stderr is a terminal.
func Config(lvl zapcore.Level) zap.Config {
	encodeLevel := zapcore.CapitalLevelEncoder
	if isatty.IsTerminal(os.Stderr.Fd()) {
		encodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			TimeKey:        "ts",
			CallerKey:      "caller",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    encodeLevel,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}
}

// New builds a console logger for the named level.
func New(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l, err := Config(lvl).Build()
	if err != nil {
		return nil, xerrors.Errorf("build logger: %w", err)
	}
	return l, nil
}

// Level returns $LOG_LEVEL, or "info" when it is unset.
func Level() string {
	if level, ok := os.LookupEnv(EnvLevel); ok {
		return level
	}
	return defaultLevel
}

// FromEnv is New(Level()).
func FromEnv() (*zap.Logger, error) {
	return New(Level())
}
