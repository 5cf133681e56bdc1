//go:build go1.22

package xcodeproj

import "log/slog"

func init() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
}
