// Copyright 2026 Pathvouch Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides structured logging on top of zap. The package keeps a
// process-wide root logger that is configured once via Setup; loggers with
// additional context are derived from it with New.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

// Level is the log level type re-exported for callers.
type Level = zapcore.Level

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

// Config configures the process-wide root logger.
type Config struct {
	// Level of the logging entries: debug, info or error.
	Level string `toml:"level,omitempty"`
	// Format of the log entries: human or json.
	Format string `toml:"format,omitempty"`
}

// Setup configures the root logger. It must be called before the root logger
// is used. Calling Setup a second time replaces the root logger.
func Setup(cfg Config) error {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return serrors.Wrap("parsing log level", err, "level", cfg.Level)
		}
	}
	zCfg := zap.NewProductionConfig()
	zCfg.Level = zap.NewAtomicLevelAt(level)
	zCfg.DisableStacktrace = true
	switch cfg.Format {
	case "", "json":
	case "human":
		zCfg.Encoding = "console"
		zCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return serrors.New("unsupported log format", "format", cfg.Format)
	}
	zLogger, err := zCfg.Build()
	if err != nil {
		return serrors.Wrap("creating logger", err)
	}
	zap.ReplaceGlobals(zLogger)
	return nil
}

// HandlePanic catches a panic, logs it and re-raises it. It should be
// deferred at the top of every long-running goroutine.
func HandlePanic() {
	if msg := recover(); msg != nil {
		zap.L().Error("Panic", zap.Any("msg", msg), zap.Stack("stack"))
		panic(msg)
	}
}

// Flush writes the logs to the underlying buffer.
func Flush() error {
	return zap.L().Sync()
}

// New creates a logger with the given context attached to the root logger.
func New(ctx ...any) Logger {
	return &logger{logger: zap.L().With(convertCtx(ctx)...)}
}

// Root returns the root logger. It's guaranteed to never return nil.
func Root() Logger {
	return &logger{logger: zap.L()}
}

// Discard sets the root logger to discard all log entries.
func Discard() {
	zap.ReplaceGlobals(zap.NewNop())
}

type logger struct {
	logger *zap.Logger
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(lvl)
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields = append(fields, zap.Any(keyString(ctx[i]), ctx[i+1]))
	}
	return fields
}

func keyString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown"
}
