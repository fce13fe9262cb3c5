// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the run logger: an append-only log file plus an
// optional stderr console when verbose output is requested. Logging is
// best effort throughout: a log file that cannot be opened or written
// never aborts a run.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger appending to logFile. When verbose is set, log
// records are also written to stderr. An unopenable log file degrades to
// console-only (or a no-op logger when verbose is off).
func New(logFile string, verbose bool) *zap.Logger {
	var cores []zapcore.Core

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(encCfg),
				zapcore.Lock(f),
				zapcore.InfoLevel,
			))
		}
	}

	if verbose {
		console := zap.NewDevelopmentEncoderConfig()
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(console),
			zapcore.Lock(os.Stderr),
			zapcore.DebugLevel,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...))
}
