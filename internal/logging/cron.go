package logging

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger adapts a slog.Logger to cron.Logger. Cron's informational
// messages (including skipped runs) are demoted to debug.
type cronLogger struct {
	logger *slog.Logger
}

// Cron returns a cron.Logger that writes to logger.
func Cron(logger *slog.Logger) cron.Logger {
	if logger == nil {
		logger = Logger()
	}
	return cronLogger{logger: logger.With("component", "cron")}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{KeyError, err}, keysAndValues...)...)
}
