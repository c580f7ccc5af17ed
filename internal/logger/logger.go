package logger

import (
	"log/slog"
	"os"
)

// Init configures the process-wide slog default. Local development gets a
// human-readable text handler at debug level; everything else gets JSON.
func Init(env string) *slog.Logger {
	var handler slog.Handler

	if env == "local" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
