package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"eyeterm/internal/errors"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a record.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured records through logrus.
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
	file  *os.File
}

// Option configures a Logger built by NewLogger or Configure.
type Option func(*options)

type options struct {
	out   io.Writer
	file  string
	json  bool
	level logrus.Level
}

// WithOutput sends records to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithFile appends records to the named file in addition to the output.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithLevel sets the minimum level. Debug records are additionally gated
// by SetDebug.
func WithLevel(level string) Option {
	return func(o *options) {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			o.level = lvl
		}
	}
}

// NewLogger creates a logger. Without options it writes text records to
// stderr, leaving stdout to the terminal UI.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr, level: logrus.DebugLevel}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Logger{base: logrus.New()}
	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.file, err)
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}

	l.base.SetOutput(out)
	l.base.SetLevel(o.level)
	if o.json {
		l.base.SetFormatter(&jsonFormatter{})
	} else {
		l.base.SetFormatter(&textFormatter{})
	}
	l.entry = logrus.NewEntry(l.base)
	return l
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// SetDebug enables or disables debug records for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// Default returns the package-level logger.
func Default() *Logger {
	return logger
}

// With returns a logger that adds fields to every record.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{base: l.base, entry: l.entry.WithFields(data), file: l.file}
}

// WithContext is reserved for request-scoped fields; ctx may be nil.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{base: l.base, entry: l.entry.WithContext(ctx), file: l.file}
}

// WithError attaches err and the fields its kind carries.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

func (l *Logger) Info(msg string)                           { l.log(logrus.InfoLevel, msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(logrus.InfoLevel, format, args...) }
func (l *Logger) Warn(msg string)                           { l.log(logrus.WarnLevel, msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(logrus.WarnLevel, format, args...) }
func (l *Logger) Error(msg string)                          { l.log(logrus.ErrorLevel, msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(logrus.ErrorLevel, format, args...) }

func (l *Logger) Debug(msg string) {
	if isDebug.Load() {
		l.log(logrus.DebugLevel, msg)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.log(logrus.DebugLevel, format, args...)
	}
}

func (l *Logger) log(level logrus.Level, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	entry := l.entry
	// skip log and the exported wrapper that called it
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

// Package-level helpers use the configured logger.

func Info(format string, args ...interface{}) {
	logger.log(logrus.InfoLevel, format, args...)
}

func Warnf(format string, args ...interface{}) {
	logger.log(logrus.WarnLevel, format, args...)
}

func Errorf(format string, args ...interface{}) {
	logger.log(logrus.ErrorLevel, format, args...)
}

func Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		logger.log(logrus.DebugLevel, format, args...)
	}
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with err attached.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.WithError(err).log(logrus.ErrorLevel, msg)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}

	var pathErr *errors.PathError
	if errors.As(err, &pathErr) && pathErr.Path() != "" {
		fields = append(fields, F("path", pathErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var cmdErr *errors.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Command() != "" {
		fields = append(fields, F("command", cmdErr.Command()))
	}
	return fields
}

type textFormatter struct{}

// Format renders "[timestamp] LEVEL: message key=value ...".
func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s", e.Time.Format(timestampFormat), strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format(e *logrus.Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(e.Data)+3)
	for k, v := range e.Data {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}
	data["timestamp"] = e.Time.Format(timestampFormat)
	data["level"] = strings.ToUpper(e.Level.String())
	data["message"] = e.Message

	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log record: %w", err)
	}
	return append(out, '\n'), nil
}
