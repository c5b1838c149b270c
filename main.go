package main

import (
	"log/slog"
	"os"

	"immich-stacker/internal/app"
)

func main() {
	// Default logger until the configured one takes over in app.Run.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := app.Run(); err != nil {
		slog.Error("stacker failed", "error", err)
		os.Exit(1)
	}
}
