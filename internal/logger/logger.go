// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment and level.
// Production uses a JSON encoder, every other environment a console encoder.
// An unknown level falls back to info.
func Init(env, level string) {
	once.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		if env == "production" {
			cfg = zap.NewProductionConfig()
		}

		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar().With("service", "spendsmart-api")
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development", "debug")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
