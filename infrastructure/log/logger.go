// Package log provides a small colored logger for service components,
// satisfying the general logging interface the realtime socket expects.
package log

import (
	"errors"
	"io"
	"log"
)

const colorReset = "\033[0m"

// Logger writes leveled, prefixed log lines to a single writer.
type Logger struct {
	base   *log.Logger
	prefix string
	color  string
}

// New creates a Logger that tags every line with the given prefix, colored
// with the given ANSI escape code.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if out == nil {
		return nil, errors.New("logger requires an output writer")
	}
	return &Logger{
		base:   log.New(out, "", log.LstdFlags),
		prefix: prefix,
		color:  color,
	}, nil
}

func (l *Logger) Info(msg string) {
	l.print("INFO", msg)
}

func (l *Logger) Warning(msg string) {
	l.print("WARNING", msg)
}

func (l *Logger) Error(msg string) {
	l.print("ERROR", msg)
}

func (l *Logger) print(level, msg string) {
	l.base.Printf("%s[%s] [%s]%s %s", l.color, l.prefix, level, colorReset, msg)
}
