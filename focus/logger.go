package focus

import "log/slog"

const (
	logGroup = "focus"
)

var logger *slog.Logger

func init() {
	logger = slog.Default().WithGroup(logGroup)
}

func SetLogger(log *slog.Logger) {
	logger = log.WithGroup(logGroup)
}

// logNotifier is used when the host provides no notifier.
type logNotifier struct{}

func (logNotifier) Info(msg string)  { logger.Info(msg) }
func (logNotifier) Warn(msg string)  { logger.Warn(msg) }
func (logNotifier) Error(msg string) { logger.Error(msg) }
