package logger

import (
	"math"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap/zapcore"
)

// Field keys promoted to Sentry tags so events can be filtered by them.
var sentryTagKeys = map[string]string{
	"key": "collection",
	"op":  "op",
}

// sentryCore mirrors entries to Sentry: warnings are kept as breadcrumbs so
// the best-effort failures leading up to an error travel with its event.
type sentryCore struct {
	zapcore.LevelEnabler
	fields []zapcore.Field
}

func newSentryCore(level zapcore.LevelEnabler) *sentryCore {
	return &sentryCore{LevelEnabler: level}
}

func (c *sentryCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &sentryCore{LevelEnabler: c.LevelEnabler, fields: merged}
}

func (c *sentryCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *sentryCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)
	data := fieldsToMap(all)

	if entry.Level < zapcore.ErrorLevel {
		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Category:  entry.LoggerName,
			Message:   entry.Message,
			Level:     zapLevelToSentry(entry.Level),
			Data:      data,
			Timestamp: entry.Time,
		})
		return nil
	}

	event := sentry.NewEvent()
	event.Level = zapLevelToSentry(entry.Level)
	event.Message = entry.Message
	event.Logger = entry.LoggerName
	event.Timestamp = entry.Time
	event.Extra = data
	event.Tags = tagsFrom(data)

	sentry.CaptureEvent(event)

	return nil
}

func (c *sentryCore) Sync() error {
	sentry.Flush(sentryFlushTimeout)
	return nil
}

func tagsFrom(data map[string]interface{}) map[string]string {
	tags := make(map[string]string)
	for field, tag := range sentryTagKeys {
		if v, ok := data[field].(string); ok && v != "" {
			tags[tag] = v
		}
	}
	return tags
}

// zapLevelToSentry converts zap level to Sentry level.
func zapLevelToSentry(level zapcore.Level) sentry.Level {
	switch level {
	case zapcore.DebugLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return sentry.LevelFatal
	default:
		return sentry.LevelInfo
	}
}

// fieldsToMap converts zap fields to plain values for Sentry.
func fieldsToMap(fields []zapcore.Field) map[string]interface{} {
	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		switch f.Type {
		case zapcore.StringType:
			m[f.Key] = f.String
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
			zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
			m[f.Key] = f.Integer
		case zapcore.Float64Type:
			m[f.Key] = math.Float64frombits(uint64(f.Integer))
		case zapcore.Float32Type:
			m[f.Key] = float64(math.Float32frombits(uint32(f.Integer)))
		case zapcore.BoolType:
			m[f.Key] = f.Integer == 1
		case zapcore.DurationType:
			m[f.Key] = time.Duration(f.Integer).String()
		case zapcore.TimeType:
			if loc, ok := f.Interface.(*time.Location); ok {
				m[f.Key] = time.Unix(0, f.Integer).In(loc).Format(time.RFC3339)
			} else {
				m[f.Key] = time.Unix(0, f.Integer).UTC().Format(time.RFC3339)
			}
		case zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok {
				m[f.Key] = err.Error()
			}
		default:
			if f.Interface != nil {
				m[f.Key] = f.Interface
			}
		}
	}

	return m
}
