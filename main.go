package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pong/audio"
	"github.com/pthm-cable/pong/camera"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/input"
	"github.com/pthm-cable/pong/platform"
	"github.com/pthm-cable/pong/render"
	"github.com/pthm-cable/pong/scene"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/term"
	"github.com/pthm-cable/pong/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run an AI-only match without graphics")
	useTerm := flag.Bool("term", false, "Play in the terminal instead of a window")
	autoplay := flag.Bool("autoplay", false, "Let the AI play both paddles")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	matches := flag.Int("matches", 1, "Headless: matches to play before exiting")
	perfEvery := flag.Int("perf-every", 0, "Log frame timings every N frames (0 = never)")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")
	logFile := flag.String("log-file", "", "Write logs to this file (terminal mode discards logs otherwise)")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	closeLog, err := setupLogging(*logText, *logFile, *useTerm, *verbose)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Match.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	dir := cfg.Telemetry.OutputDir
	if *outputDir != "" {
		dir = *outputDir
	}
	out, err := telemetry.NewOutput(dir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}
	collector := telemetry.NewCollector(out)

	if *headless {
		runHeadless(cfg, rng, collector, *maxTicks, *matches)
		return
	}

	sounds, stopAudio := startAudio(cfg)
	defer stopAudio()

	if *useTerm {
		adapter := camera.NewDefaultAdapter(cfg.Derived.VirtualW, cfg.Derived.VirtualH)
		mgr, _ := buildScenes(cfg, adapter, rng, sounds, collector, *autoplay)
		defer mgr.Close()

		screen, err := tcell.NewScreen()
		if err != nil {
			slog.Error("failed to open terminal", "error", err)
			os.Exit(1)
		}
		t, err := term.New(screen, r2.Vec{X: cfg.Derived.VirtualW, Y: cfg.Derived.VirtualH}, 0)
		if err != nil {
			slog.Error("failed to open terminal", "error", err)
			os.Exit(1)
		}
		defer t.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		slog.Info("starting terminal game", "seed", rngSeed)
		t.Run(ctx, mgr, term.Options{FPS: cfg.Screen.TargetFPS, MaxFrames: *maxTicks})
		return
	}

	// Graphical mode
	adapter := camera.NewAdapter(cfg.Screen.Adapter,
		float64(cfg.Screen.Width), float64(cfg.Screen.Height),
		cfg.Derived.VirtualW, cfg.Derived.VirtualH)
	w := platform.Open(cfg, adapter)
	defer w.Close()

	mgr, _ := buildScenes(cfg, adapter, rng, sounds, collector, *autoplay)
	defer mgr.Close()
	mgr.DrawUI = ui.NewRenderer(adapter).Draw

	slog.Info("starting game", "seed", rngSeed, "adapter", cfg.Screen.Adapter)
	w.Run(mgr, platform.Options{MaxFrames: *maxTicks, PerfEvery: *perfEvery})
}

// setupLogging installs the default logger. The returned func closes the log file, if any.
func setupLogging(text bool, path string, terminal, verbose bool) (func(), error) {
	var w io.Writer = os.Stdout
	closer := func() {}
	switch {
	case path != "":
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		w = f
		closer = func() { f.Close() }
	case terminal:
		// stdout belongs to the game screen
		w = io.Discard
	}

	opts := &slog.HandlerOptions{}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	var h slog.Handler = slog.NewJSONHandler(w, opts)
	if text {
		h = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
	return closer, nil
}

// startAudio opens the sound device, falling back to silence when it cannot.
func startAudio(cfg *config.Config) (scene.Mixer, func()) {
	muted := &scene.Muted{Volume: cfg.Audio.MasterVolume}
	if !cfg.Audio.Enabled {
		return muted, func() {}
	}
	p := audio.NewPlayer(audio.Config{
		SampleRate:    cfg.Audio.SampleRate,
		MasterVolume:  cfg.Audio.MasterVolume,
		MaxConcurrent: cfg.Audio.MaxConcurrent,
	})
	if err := p.Start(); err != nil {
		// Non-fatal, game can run without sound
		slog.Warn("audio disabled", "error", err)
		return muted, func() {}
	}
	return p, p.Close
}

// buildScenes registers both scenes and loads the game.
func buildScenes(cfg *config.Config, adapter camera.ScreenAdapter, rng *rand.Rand, sounds scene.Mixer, sink scene.MatchSink, autoplay bool) (*scene.Manager, *scene.PongScene) {
	mgr := scene.NewManager(&input.State{}, sounds)

	p := scene.NewPongScene(cfg, adapter, rng)
	p.Autoplay = autoplay
	p.Sink = sink
	mgr.Add(p)
	mgr.Add(scene.NewBallScene(cfg, adapter))

	mgr.LoadScene(scene.PongSceneName)
	return mgr, p
}

// runHeadless plays AI-only matches at a fixed step, drawing into a recorder.
func runHeadless(cfg *config.Config, rng *rand.Rand, collector *telemetry.Collector, maxTicks, matches int) {
	adapter := camera.NewDefaultAdapter(cfg.Derived.VirtualW, cfg.Derived.VirtualH)
	mgr, p := buildScenes(cfg, adapter, rng, nil, collector, true)
	defer mgr.Close()

	rec := render.NewRecorder()
	targets := scene.Targets{Sprites: rec, Primitives: rec}
	perf := telemetry.NewPerfCollector(cfg.Screen.TargetFPS)
	dt := 1 / float64(max(cfg.Screen.TargetFPS, 1))

	slog.Info("starting headless match",
		"max_ticks", maxTicks,
		"matches", matches,
		"points_to_win", p.PointsToWin(),
	)

	for tick := 1; ; tick++ {
		perf.StartFrame()
		perf.StartPhase(telemetry.PhaseUpdate)
		mgr.Update(dt)
		perf.StartPhase(telemetry.PhaseDraw)
		rec.Reset()
		mgr.Draw(targets, dt)
		perf.EndFrame()

		if p.Finished() {
			if collector.Matches() >= matches {
				break
			}
			p.Rematch()
		}
		if maxTicks > 0 && tick >= maxTicks {
			slog.Info("max ticks reached", "tick", tick)
			break
		}
	}

	l, r := p.Score()
	slog.Info("headless run finished",
		"winner", p.Winner().String(),
		"left", l,
		"right", r,
		"matches", collector.Matches(),
		"last", collector.Last(),
		"perf", perf.Stats(),
	)
}
