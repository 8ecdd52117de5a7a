package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logLevelEnv selects the minimum log level: debug, info, warn or error.
const logLevelEnv = "IMAGE_MANIP_LOG_LEVEL"

// newLogger builds a console logger on stderr; stdout carries the protocol.
func newLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if v, ok := os.LookupEnv(logLevelEnv); ok && v != "" {
		parsed, err := zapcore.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", logLevelEnv, err)
		}
		level = parsed
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
