//go:build go1.22

package main

import "log/slog"

func enableDebugLogging() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
}
