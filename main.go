package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	replayPath := flag.String("replay", "", "Drive the hand from a gesture recording (CSV)")
	recordPath := flag.String("record", "", "Record gesture signals to CSV")
	synthetic := flag.Bool("synthetic", false, "Drive the hand from the scripted synthetic source")
	watch := flag.Bool("watch", false, "Reload -config when the file changes")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Gesture source overrides
	var source string
	switch {
	case *replayPath != "":
		source = game.SourceReplay
	case *synthetic:
		source = game.SourceSynthetic
	}

	// Build game options
	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Source:         source,
		ReplayPath:     *replayPath,
		RecordPath:     *recordPath,
	}

	if !*headless {
		// raylib needs the window before any GPU work
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
		defer rl.CloseWindow()
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *watch {
		startWatch(ctx, *configPath, g)
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		slog.Info("starting headless run",
			"seed", rngSeed,
			"source", g.Source(),
			"max_ticks", *maxTicks,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// startWatch reloads the config file in the background and queues each
// good version for the next frame.
func startWatch(ctx context.Context, path string, g *game.Game) {
	if path == "" {
		slog.Warn("-watch needs -config, not watching")
		return
	}
	go func() {
		err := config.Watch(ctx, path, g.QueueConfig, func(err error) {
			slog.Error("config reload failed", "error", err)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("config watcher stopped", "error", err)
		}
	}()
}
