// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging owns the process-wide zap logger. Until Initialize is
// called the logger discards everything, so library packages stay quiet in
// tests.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global sugared logger.
var Logger = zap.NewNop().Sugar()

// Options controls Initialize.
type Options struct {
	// JSON selects machine-readable output instead of the console encoder.
	JSON bool

	// Verbose lowers the level from info to debug.
	Verbose bool
}

// Initialize replaces Logger according to opts. Logs go to stderr so that
// stdout carries only command output.
func Initialize(opts Options) error {
	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	Logger = zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)).Sugar()
	return nil
}

// Sync flushes buffered entries. Errors from syncing a terminal are
// ignored.
func Sync() {
	_ = Logger.Sync()
}
