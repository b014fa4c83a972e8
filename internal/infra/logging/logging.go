package logging

import (
	"log/slog"
	"os"
)

// SetupJSON sets slog's default logger to JSON output at the given level.
// Every record carries a "service" attribute so logs from the api and
// migrator binaries stay distinguishable in a shared stream.
func SetupJSON(service string, level slog.Level) {
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	).With(slog.String("service", service))
	slog.SetDefault(logger)
}
