//go:build !go1.22

package main

import (
	"log"
	"log/slog"
)

// slog.SetLogLoggerLevel does not exist before Go 1.22; route the default
// logger through a handler that passes Debug records to the log package.
func enableDebugLogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(log.Writer(), &slog.HandlerOptions{Level: slog.LevelDebug})))
}
