package logger

import (
	"github.com/rollbar/rollbar-go"

	"lessonquiz/internal/model"
)

// RollbarLogger reports to Rollbar and mirrors every line to a StdLogger.
type RollbarLogger struct {
	std *StdLogger
}

var _ Logger = (*RollbarLogger)(nil)

// RollbarOptions configures the Rollbar notifier.
type RollbarOptions struct {
	Token       string
	Environment string
	ServerHost  string
	CodeVersion string
}

func NewRollbar(std *StdLogger, opts RollbarOptions) *RollbarLogger {
	rollbar.SetToken(opts.Token)
	rollbar.SetEnvironment(opts.Environment)
	rollbar.SetServerHost(opts.ServerHost)
	rollbar.SetCodeVersion(opts.CodeVersion)
	return &RollbarLogger{std: std}
}

// Close flushes queued reports.
func (l *RollbarLogger) Close() {
	rollbar.Wait()
}

// prepare pulls a model.Learner out of args and sets it as the Rollbar person.
func (l *RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var personSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		if learner, ok := arg.(model.Learner); ok {
			if !personSet {
				rollbar.SetPerson(learner.ID, learner.Name, learner.Email)
				personSet = true
			}
			continue
		}
		newArgs = append(newArgs, arg)
	}
	if !personSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.std.Debug(msg, args...)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.std.Info(msg, args...)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.std.Warn(msg, args...)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.std.Error(msg, args...)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.std.Fatal(msg, args...)
}
