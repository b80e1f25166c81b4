// Package logger provides the prefixed, colored, leveled logger the
// application components share.
package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	errorColor = "\033[31m"
	colorReset = "\033[0m"
)

// Logger writes "[PREFIX] [LEVEL] message" lines in one color.
type Logger struct {
	log *logrus.Logger
}

// New creates a logger writing to w. Every line carries prefix and is
// wrapped in the given ANSI color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, errors.New("logger: nil writer")
	}
	if prefix == "" {
		return nil, errors.New("logger: empty prefix")
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&formatter{prefix: strings.ToUpper(prefix), color: color})
	return &Logger{log: log}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.log.Info(msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.log.Warn(msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.log.Error(msg)
}

type formatter struct {
	prefix string
	color  string
}

// Format implements logrus.Formatter.
func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	color := f.color
	if e.Level <= logrus.ErrorLevel {
		color = errorColor
	}
	line := fmt.Sprintf("%s%s [%s] [%s] %s%s\n",
		color,
		e.Time.Format(time.DateTime),
		f.prefix,
		strings.ToUpper(e.Level.String()),
		e.Message,
		colorReset,
	)
	return []byte(line), nil
}
