package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelDebug
	LevelTrace
)

type Logger struct {
	*log.Logger
	level     LogLevel
	isVerbose bool
	timestamp bool
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.Logger = log.NewWithOptions(w, l.options())
	}
}

func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.Logger.SetPrefix(prefix)
	}
}

func WithTimestamp(enabled bool) Option {
	return func(l *Logger) {
		l.timestamp = enabled
		l.Logger.SetReportTimestamp(enabled)
	}
}

func New(options ...Option) *Logger {
	l := &Logger{
		Logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
		level:     LevelInfo,
		timestamp: true,
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

// Discard returns a logger that drops everything, for callers that do not
// care about collaborator output.
func Discard() *Logger {
	return New(WithOutput(io.Discard))
}

func (l *Logger) SetVerbose(verbose bool) {
	l.isVerbose = verbose
	l.syncLevel()
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
	l.syncLevel()
}

func (l *Logger) IsVerbose() bool {
	return l.isVerbose || l.level >= LevelDebug
}

func (l *Logger) syncLevel() {
	if l.IsVerbose() {
		l.Logger.SetLevel(log.DebugLevel)
		return
	}
	l.Logger.SetLevel(log.InfoLevel)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.Logger.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Warnf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.IsVerbose() {
		l.Logger.Debugf(format, args...)
	}
}

func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LevelTrace {
		l.Logger.Debugf("TRACE: "+format, args...)
	}
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Logger.Fatalf(format, args...)
}

// options snapshots the settings of the current backend so it can be
// recreated on a different writer.
func (l *Logger) options() log.Options {
	return log.Options{
		Prefix:          l.Logger.GetPrefix(),
		Level:           l.Logger.GetLevel(),
		ReportTimestamp: l.timestamp,
		TimeFormat:      "15:04:05.00",
	}
}
