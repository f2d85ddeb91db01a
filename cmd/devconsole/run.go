package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/comalice/navperf"
	"github.com/comalice/navperf/internal/config"
	"github.com/comalice/navperf/internal/extensibility"
	"github.com/comalice/navperf/internal/primitives"
	"github.com/comalice/navperf/internal/production"
	"github.com/comalice/navperf/internal/telemetry"
	"github.com/comalice/navperf/realtime"
)

// step is one scripted navigation.
type step struct {
	Screen string
	Extra  navperf.Detail
}

func defaultScript(home string) []step {
	return []step{
		{Screen: "gradeOne", Extra: navperf.Detail{"grade": 1}},
		{Screen: home},
		{Screen: "gradeTwo", Extra: navperf.Detail{"grade": 2}},
		{Screen: "gradeOne", Extra: navperf.Detail{"grade": 1}},
		{Screen: home},
	}
}

// run executes script and reports to out. It returns when the script has
// settled or ctx is cancelled.
func run(ctx context.Context, cfg config.Config, out io.Writer, logger *slog.Logger, script []step) error {
	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTelEndpoint,
		Enabled:     cfg.OTelEnabled,
	})
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	entries := make(chan navperf.Entry, 16)
	opts := []navperf.PerformanceOption{
		navperf.WithLogger(logger),
		navperf.WithResourceObserver(extensibility.NewChannelEntrySource(entries)),
	}
	if cfg.TimelineDir != "" {
		persister, err := production.NewPersister(cfg.TimelineFormat, cfg.TimelineDir)
		if err != nil {
			return fmt.Errorf("timeline persister: %w", err)
		}
		opts = append(opts, navperf.WithPersister(persister))
	}
	perf := navperf.NewPerformance(opts...)

	console := production.NewConsole(out, language.English)
	perf.Initialize(navperf.PerformanceConfig{
		ResourceLogging: cfg.ResourceLogging,
		OnEvent:         extensibility.NewLoggingListener(console.Listen, logger),
	})

	graph := production.NewNavigationGraph()
	perf.Subscribe(graph.Listen)
	perf.Subscribe(telemetry.NewSpanSink(nil, perf.Origin).Listen)

	var journal *production.Journal
	if cfg.JournalPath != "" {
		journal, err = production.OpenJournal(cfg.JournalPath, logger)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()
		perf.Subscribe(journal.Listener(perf.Generation))
	}

	completed := make(chan string, 1)
	perf.Subscribe(func(evt navperf.Event) error {
		if nc, ok := evt.(navperf.NavigationComplete); ok {
			select {
			case completed <- nc.Screen:
			default:
			}
		}
		return nil
	})

	transitionOpts := []navperf.TransitionOption{
		navperf.WithHomeScreen(cfg.HomeScreen),
		navperf.WithDuration(cfg.TransitionDuration),
		navperf.WithViewportWidth(cfg.ViewportWidth),
		navperf.WithTransitionLogger(logger),
		navperf.WithOnChange(func(v navperf.ViewState) {
			for _, pane := range navperf.Layout(v) {
				logger.Debug("pane", "screen", pane.Nav.Screen, "offset", pane.Offset, "outgoing", pane.Outgoing)
			}
		}),
	}
	if cfg.RoutesPath != "" {
		routes, err := production.LoadRouteConfig(cfg.RoutesPath)
		if err != nil {
			return fmt.Errorf("load routes: %w", err)
		}
		policy, err := extensibility.NewRulePolicy(routes)
		if err != nil {
			return err
		}
		logger.Info("route table loaded", "path", cfg.RoutesPath, "version", primitives.ComputeVersion(&routes), "rules", len(routes.Rules))
		transitionOpts = append(transitionOpts, navperf.WithPolicy(policy))
	}

	driver := realtime.NewFrameDriver(realtime.Config{FrameRate: cfg.FrameRate, Logger: logger})
	initial := navperf.NavState{Screen: cfg.HomeScreen}
	shell := navperf.NewShell(initial, perf, driver, transitionOpts...)
	defer shell.Close()

	if cfg.ResourceLogging {
		entries <- navperf.Entry{Name: "app.bundle.js", EntryType: "resource", StartTime: perf.Now(), Duration: 38}
	}
	perf.MarkAppInteractive(navperf.Detail{"initialScreen": initial.Screen})

	requests := make(chan navperf.NavState)
	pumpErr := make(chan error, 1)
	go func() {
		pumpErr <- extensibility.PumpNavigation(ctx, requests, shell.Nav)
	}()

	for _, s := range script {
		if ctx.Err() != nil {
			return report(out, perf, graph, journal, cfg)
		}
		reselect := shell.Transitions.DisplayNav().Screen == s.Screen
		select {
		case requests <- navperf.NavState{Screen: s.Screen, Extra: s.Extra}:
		case <-ctx.Done():
			return report(out, perf, graph, journal, cfg)
		}
		if reselect {
			continue
		}
		if err := awaitCompletion(ctx, s.Screen, completed); err != nil {
			return report(out, perf, graph, journal, cfg)
		}
	}
	close(requests)
	if err := <-pumpErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return report(out, perf, graph, journal, cfg)
}

// awaitCompletion blocks until navigation to screen has been marked complete.
func awaitCompletion(ctx context.Context, screen string, completed <-chan string) error {
	for {
		select {
		case got := <-completed:
			if got == screen {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func report(out io.Writer, perf *navperf.Performance, graph *production.NavigationGraph, journal *production.Journal, cfg config.Config) error {
	fmt.Fprintf(out, "\n--- Navigation graph ---\n%s", graph.ExportDOT(cfg.HomeScreen))

	if journal != nil {
		stats, err := journal.TransitionStats(context.Background(), perf.Generation())
		if err != nil {
			return fmt.Errorf("transition stats: %w", err)
		}
		fmt.Fprintln(out, "--- Transitions ---")
		for _, s := range stats {
			fmt.Fprintf(out, "%-12s n=%d mean=%.1fms max=%.1fms\n", s.Screen, s.Count, s.Mean, s.Max)
		}
	}

	if cfg.TimelineDir != "" {
		if err := perf.SaveTimeline(context.Background()); err != nil {
			return fmt.Errorf("save timeline: %w", err)
		}
		fmt.Fprintf(out, "timeline %s saved to %s\n", perf.Generation(), cfg.TimelineDir)
	}
	return nil
}
