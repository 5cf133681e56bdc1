//go:build !go1.22

package xcodeproj

import (
	"log"
	"log/slog"
)

// slog.SetLogLoggerLevel does not exist before Go 1.22; route the default
// logger through a handler that passes Debug records to the log package.
func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(log.Writer(), &slog.HandlerOptions{Level: slog.LevelDebug})))
}
