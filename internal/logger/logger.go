package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Constants for logging levels
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Environments the service knows how to log for
const (
	EnvDevelopment = "dev"
	EnvProduction  = "prod"
)

// Logger interface defines the logging contract
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) Logger
	WithGroup(name string) Logger
}

// Option overrides logger output
type Option func(*options)

type options struct {
	out io.Writer
}

// WithRotatingFile writes log to a size-rotated file instead of stderr
func WithRotatingFile(path string) Option {
	return func(o *options) {
		o.out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
}

// New selects handler by environment: readable text for dev, JSON for prod
func New(env string, level string, opts ...Option) (Logger, error) {
	switch env {
	case EnvDevelopment:
		return NewTextLogger(level, opts...)
	case EnvProduction:
		return NewJSONLogger(level, opts...)
	default:
		return nil, fmt.Errorf("unknown environment: %q", env)
	}
}

// NewTextLogger creates a new text logger with the specified level
func NewTextLogger(level string, opts ...Option) (Logger, error) {
	handlerOpts, out, err := buildOptions(level, opts)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(out, handlerOpts))
	return &slogLogger{logger: logger}, nil
}

// NewJSONLogger creates a new JSON logger with the specified level
func NewJSONLogger(level string, opts ...Option) (Logger, error) {
	handlerOpts, out, err := buildOptions(level, opts)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(out, handlerOpts))
	return &slogLogger{logger: logger}, nil
}

// NewNoOpLogger creates a logger that discards all log messages
func NewNoOpLogger() Logger {
	logger := slog.New(slog.DiscardHandler)
	return &slogLogger{logger: logger}
}

func buildOptions(level string, opts []Option) (*slog.HandlerOptions, io.Writer, error) {
	slogLevel, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       slogLevel,
		AddSource:   true,
		ReplaceAttr: replace,
	}

	return handlerOpts, o.out, nil
}
