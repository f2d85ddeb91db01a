// Command devconsole drives a scripted navigation session through the
// performance instrumentation and prints the event stream, the navigation
// graph and per-screen transition statistics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/comalice/navperf/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devconsole: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, logger, defaultScript(cfg.HomeScreen)); err != nil {
		logger.Error("devconsole failed", "error", err)
		os.Exit(1)
	}
}
