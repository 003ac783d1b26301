// Package log provides leveled, request-scoped logging on top of logrus
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Formatter writes entries as "<time> LEVEL [req] message key=value ..."
type Formatter struct {
	TimestampFormat string
}

type contextKey int

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	keyRequestID contextKey = iota
)

const (
	// Field name for the request identifier
	RequestIDField = "request_id"

	defaultTimestampFormat = "2006-01-02 15:04:05"
)

// Logger is the process-wide logger
var Logger = newLogger()

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&Formatter{TimestampFormat: defaultTimestampFormat})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// Init sets the log level from a name such as "debug" or "warn"
func Init(level string) error {
	if level == "" {
		level = logrus.InfoLevel.String()
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetOutput sets the destination for log entries
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

///////////////////////////////////////////////////////////////////////////////
// CONTEXT

// WithRequestID returns a context carrying a new request identifier
func WithRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, keyRequestID, uuid.NewString())
}

// RequestID returns the request identifier from the context, or an empty
// string
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(keyRequestID).(string); ok {
		return id
	}
	return ""
}

// Entry returns a log entry carrying the request identifier, if any
func Entry(ctx context.Context) *logrus.Entry {
	if id := RequestID(ctx); id != "" {
		return Logger.WithField(RequestIDField, id)
	}
	return logrus.NewEntry(Logger)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func Debugf(ctx context.Context, format string, args ...any) {
	Entry(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	Entry(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	Entry(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	Entry(ctx).Errorf(format, args...)
}

// WithField returns an entry with a field and the request identifier
func WithField(ctx context.Context, key string, value any) *logrus.Entry {
	return Entry(ctx).WithField(key, value)
}

// WithFields returns an entry with fields and the request identifier
func WithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return Entry(ctx).WithFields(fields)
}

///////////////////////////////////////////////////////////////////////////////
// FORMATTER

// Format implements logrus.Formatter. Fields other than the request
// identifier are written in key order.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = new(bytes.Buffer)
	}

	format := f.TimestampFormat
	if format == "" {
		format = defaultTimestampFormat
	}
	fmt.Fprintf(b, "%s %-5s ", entry.Time.Format(format), strings.ToUpper(entry.Level.String()))
	if id, ok := entry.Data[RequestIDField].(string); ok && id != "" {
		fmt.Fprintf(b, "[%s] ", shortID(id))
	}
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != RequestIDField {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(b, " %s=%v", key, entry.Data[key])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
