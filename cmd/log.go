package cmd

import (
	"log/slog"
	"os"
)

var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

func init() {
	logLevel.Set(slog.LevelWarn)
}

// configureLogging never logs values read from env files, only keys and counts.
func configureLogging(debug bool) {
	if debug {
		logLevel.Set(slog.LevelDebug)
		return
	}
	logLevel.Set(slog.LevelWarn)
}
