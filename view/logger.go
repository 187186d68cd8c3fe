package view

import "log/slog"

var logger *slog.Logger

func init() {
	logger = slog.Default().WithGroup("view")
}

func SetLogger(log *slog.Logger) {
	logger = log.WithGroup("view")
}
