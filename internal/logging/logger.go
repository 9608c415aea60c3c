// Package logging builds the zap loggers used by the ipchash command.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config defines the knobs for building a zap logger.
type Config struct {
	// Component identifies the emitting subsystem (e.g., "ipchash").
	Component string
	// Level controls the minimum severity ("debug", "info", "warn", "error").
	Level string
	// Output receives the JSON log lines. Defaults to os.Stderr so that stdout
	// stays reserved for command results.
	Output io.Writer
}

// NewLogger builds a structured zap logger writing JSON lines.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level == "" {
		level.SetLevel(zapcore.InfoLevel)
	} else if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(out),
		level,
	)

	logger := zap.New(core, zap.AddCaller())
	if cfg.Component != "" {
		logger = logger.With(zap.String("component", cfg.Component))
	}

	return logger, nil
}

type ctxKey struct{}

// WithLogger stores the provided logger on the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext retrieves the logger from context, falling back to a no-op
// logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}
