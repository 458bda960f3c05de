package logio

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a debug level console logger whose lines go to logf.
func NewLogger(logf func(string, ...interface{})) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		&Writer{Logf: logf},
		zapcore.DebugLevel,
	))
}
