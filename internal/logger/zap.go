// Package logger builds the process-wide zap logger, optionally mirrored to Sentry.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const sentryFlushTimeout = 2 * time.Second

// Config holds logger configuration.
type Config struct {
	Name   string // logger name stamped on every entry
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// SentryConfig holds Sentry configuration.
type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64
}

// Logger wraps zap.Logger and remembers whether Sentry needs flushing.
type Logger struct {
	*zap.Logger
	sentryEnabled bool
}

// New creates a Logger. An unknown level falls back to info. When Sentry is
// enabled, warnings become breadcrumbs and errors become events.
func New(cfg Config, sentryCfg SentryConfig) (*Logger, error) {
	sentryOn := sentryCfg.Enabled && sentryCfg.DSN != ""
	if sentryOn {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryCfg.DSN,
			Environment:      sentryCfg.Environment,
			SampleRate:       sentryCfg.SampleRate,
			AttachStacktrace: true,
		}); err != nil {
			return nil, fmt.Errorf("initializing sentry: %w", err)
		}
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	output, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), output, level)
	if sentryOn {
		core = zapcore.NewTee(core, newSentryCore(maxLevel(level, zapcore.WarnLevel)))
	}

	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if cfg.Name != "" {
		zl = zl.Named(cfg.Name)
	}

	return &Logger{Logger: zl, sentryEnabled: sentryOn}, nil
}

// Sync flushes buffered entries and pending Sentry events.
func (l *Logger) Sync() error {
	if l.sentryEnabled {
		sentry.Flush(sentryFlushTimeout)
	}

	return l.Logger.Sync()
}

func newEncoder(format string) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
		return zapcore.NewConsoleEncoder(ec)
	}

	return zapcore.NewJSONEncoder(ec)
}

func openOutput(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "stdout", "":
		return zapcore.Lock(os.Stdout), nil
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		return zapcore.AddSync(f), nil
	}
}

func maxLevel(a, b zapcore.Level) zapcore.Level {
	if a > b {
		return a
	}
	return b
}
