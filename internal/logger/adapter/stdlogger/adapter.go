// Package stdlogger exposes the global zerolog logger through printf style methods,
// for libraries that expect a std logger, e.g. gorm's logger.Writer.
package stdlogger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to the global zerolog logger.
type Logger struct {
	printLevel zerolog.Level
	component  string
}

// New returns a Logger whose Printf logs at info level.
func New() *Logger {
	return &Logger{printLevel: zerolog.InfoLevel}
}

// NewComponent returns a Logger tagging each line with the component name,
// Printf logs at the given level.
func NewComponent(component string, printLevel zerolog.Level) *Logger {
	return &Logger{printLevel: printLevel, component: component}
}

func (l *Logger) logf(level zerolog.Level, format string, args ...interface{}) {
	ev := log.WithLevel(level)
	if l.component != "" {
		ev = ev.Str("component", l.component)
	}

	ev.Msgf(strings.TrimRight(format, "\n"), args...)
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.logf(l.printLevel, format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(zerolog.DebugLevel, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(zerolog.InfoLevel, format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.logf(zerolog.WarnLevel, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(zerolog.ErrorLevel, format, args...)
}
