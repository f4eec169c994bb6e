package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Hamish-Leahy/Prism-sub005/internal/buildinfo"
	"github.com/Hamish-Leahy/Prism-sub005/internal/cli"
	"github.com/Hamish-Leahy/Prism-sub005/internal/config"
	"github.com/Hamish-Leahy/Prism-sub005/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Log lines go to stderr so they do not interleave with the prompt.
	opts := &slog.HandlerOptions{Level: logging.ParseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := logging.NewSlogLogger(slog.New(handler))

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
