package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/ecosim/broadcast"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/game"
	"github.com/pthm-cable/ecosim/telemetry"
	"github.com/pthm-cable/ecosim/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	headless := flag.Bool("headless", false, "Run without graphics")
	fast := flag.Bool("fast", false, "Headless only: tick as fast as possible on simulated time")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, result and config snapshot")
	listen := flag.String("listen", "", "Address for the websocket stream, e.g. :8080 (overrides config)")
	logStats := flag.Bool("log-stats", false, "Output stats windows via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *logStats {
		cfg.Telemetry.LogStats = true
	}
	if *listen != "" {
		cfg.Broadcast.Listen = *listen
	}
	if *headless {
		cfg.Settings.GraphicsMode = false
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := game.OptionsFromConfig(cfg, rngSeed)
	opts.Output = output

	var clock *game.SteppedTime
	if *fast && !cfg.Settings.GraphicsMode {
		clock = &game.SteppedTime{}
		opts.Time = clock
	}

	g := game.New(opts)
	runner := game.NewRunner(g, cfg.Broadcast.FrameStride)

	if cfg.Broadcast.Listen != "" {
		hub := broadcast.NewHub(runner)
		runner.Observe(hub)
		go func() {
			if err := hub.Serve(ctx, cfg.Broadcast.Listen); err != nil {
				slog.Error("broadcast server failed", "error", err)
			}
		}()
	}

	slog.Info("starting simulation",
		"run_id", g.RunID(),
		"seed", rngSeed,
		"graphics", cfg.Settings.GraphicsMode,
		"fast", clock != nil,
		"output_dir", *outputDir,
		"listen", cfg.Broadcast.Listen,
	)

	var res *telemetry.SimulationResult
	switch {
	case cfg.Settings.GraphicsMode:
		go runner.Run(ctx)
		viewer.New(runner, cfg).Run()
		<-runner.Done()
		res = runner.Result()
	case clock != nil:
		res = runner.RunFast(ctx, clock)
	default:
		res = runner.Run(ctx)
	}

	slog.Info("simulation finished",
		"run_id", res.RunID,
		"end_reason", res.EndReason,
		"duration_ms", res.DurationMS,
		"health", res.Health,
	)
}
