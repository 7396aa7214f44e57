// Package logger provides the leveled logger shared by the service and the
// terminal player.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger is implemented by the std and Rollbar loggers.
// expected args: error, map[string]interface{}, model.Learner or plain values
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// StdLogger writes to a standard library logger.
type StdLogger struct {
	std   *log.Logger
	debug bool
}

var _ Logger = (*StdLogger)(nil)

// New wraps std. Debug lines are dropped unless debug is set.
func New(std *log.Logger, debug bool) *StdLogger {
	return &StdLogger{std: std, debug: debug}
}

// NewStdout returns a logger writing to stdout with the given prefix.
func NewStdout(prefix string, debug bool) *StdLogger {
	return New(log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds), debug)
}

// Discard returns a logger that writes nothing.
func Discard() *StdLogger {
	return New(log.New(io.Discard, "", 0), false)
}

func (l *StdLogger) print(level, msg string, args []interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for _, arg := range args {
		b.WriteString(" | ")
		fmt.Fprintf(&b, "%+v", arg)
	}
	l.std.Println(b.String())
}

func (l *StdLogger) Debug(msg string, args ...interface{}) {
	if l.debug {
		l.print("DEBUG", msg, args)
	}
}

func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

func (l *StdLogger) Warn(msg string, args ...interface{}) {
	l.print("WARN", msg, args)
}

func (l *StdLogger) Error(msg string, args ...interface{}) {
	l.print("ERROR", msg, args)
}

func (l *StdLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	os.Exit(1)
}
