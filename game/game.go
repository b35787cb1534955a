package game

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/inspector"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/telemetry"
	"github.com/pthm-cable/morph/ui"
)

// primaryCloud is the ID of the cloud created at startup.
const primaryCloud uint32 = 1

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool

	// Gesture overrides; empty keeps the config values
	Source     string
	ReplayPath string
	RecordPath string

	// StatsCallback receives every flushed stats window
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete scene state.
type Game struct {
	cfg     *config.Config
	pending atomic.Pointer[config.Config]

	world *ecs.World
	rng   *rand.Rand
	seed  int64

	// Cloud entities
	cloudMap    *ecs.Map3[components.Cloud, components.Spin, components.Tint]
	cloudFilter *ecs.Filter3[components.Cloud, components.Spin, components.Tint]
	clouds      *ecs.Map1[components.Cloud]
	spins       *ecs.Map1[components.Spin]
	tints       *ecs.Map1[components.Tint]
	cloud       ecs.Entity

	// Systems
	morph    *systems.MorphSystem
	spin     *systems.SpinSystem
	registry *systems.SystemRegistry

	// Gesture input
	cell       *gesture.Cell
	pub        gesture.Publisher
	source     string
	mouse      *mouseHand
	recorder   *gesture.Recorder
	recordFile *os.File
	cancel     context.CancelFunc
	producers  sync.WaitGroup

	// Rendering (nil in headless mode)
	camera        *camera.Orbit
	cloudRenderer *renderer.PointCloud
	hud           *ui.HUD
	controls      *ui.ControlsPanel
	perfPanel     *ui.PerfPanel
	inspector     *inspector.Inspector
	dragging      bool

	// Telemetry
	perf          *PerfStats
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	errBuf        []float64

	// State
	tick     int32
	elapsed  float64
	paused   bool
	headless bool
	showPerf bool
	signal   gesture.Signal

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game, spawns the primary cloud and starts the
// gesture producer. Call Unload to stop it.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:         cfg,
		world:       world,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		seed:        opts.Seed,
		cloudMap:    ecs.NewMap3[components.Cloud, components.Spin, components.Tint](world),
		cloudFilter: ecs.NewFilter3[components.Cloud, components.Spin, components.Tint](world),
		clouds:      ecs.NewMap1[components.Cloud](world),
		spins:       ecs.NewMap1[components.Spin](world),
		tints:       ecs.NewMap1[components.Tint](world),
		spin:        systems.NewSpinSystem(world),
		registry:    systems.NewSystemRegistry(),
		cell:        &gesture.Cell{},
		signal:      gesture.Neutral(),

		perf:          NewPerfStats(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(statsWindow),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		headless:      opts.Headless,
		screenWidth:   float32(cfg.Screen.Width),
		screenHeight:  float32(cfg.Screen.Height),
	}
	g.morph = systems.NewMorphSystem(world, g.newField)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g.spawnCloud(primaryCloud)

	if !opts.Headless {
		g.camera = camera.New(cfg.Render.CameraDistance, cfg.Render.Fovy, cfg.Render.AutoOrbit)
		g.cloudRenderer = renderer.NewPointCloud(cfg.Render.PointSize)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(int32(g.screenWidth)-210, 10, 200)
		g.perfPanel = ui.NewPerfPanel(10, int32(g.screenHeight)-130)
		g.inspector = inspector.NewInspector(inspectorX(g.screenWidth), 10)
	}

	if err := g.startGesture(opts); err != nil {
		g.Unload()
		return nil, err
	}

	logStartup(g)
	return g, nil
}

// config returns the active configuration.
func (g *Game) config() *config.Config {
	return g.cfg
}

// spawnCloud creates a cloud entity from the current config.
func (g *Game) spawnCloud(id uint32) ecs.Entity {
	cfg := g.config()

	cloud := components.Cloud{ID: id, Shape: cfg.Field.Shape, Count: cfg.Field.Count}
	spin := components.Spin{Rate: cfg.Render.SpinRate}
	tint := components.Tint{Color: cfg.Derived.Color}

	g.cloud = g.cloudMap.NewEntity(&cloud, &spin, &tint)
	return g.cloud
}

// newField builds the particle field for a cloud seen for the first time.
func (g *Game) newField(c components.Cloud) *systems.Field {
	cfg := g.config()
	return systems.NewField(c.Count, c.Shape, fieldParams(cfg), g.rng, noiseModel(cfg, g.seed))
}

func fieldParams(cfg *config.Config) systems.FieldParams {
	return systems.FieldParams{
		Rate:       cfg.Field.Rate,
		SpreadMin:  cfg.Field.SpreadMin,
		SpreadGain: cfg.Field.SpreadGain,
		HandGain:   cfg.Field.HandGain,
	}
}

func noiseModel(cfg *config.Config, seed int64) systems.NoiseModel {
	return systems.NewNoiseModel(cfg.Noise.Model, cfg.Noise.Amp, cfg.Noise.Freq, seed)
}

// step runs one frame of the scene. dt is the wall time the frame stands for.
func (g *Game) step(dt float64) {
	g.applyPendingConfig()

	g.perfCollector.StartTick()
	timer := g.perf.Start(systems.SystemGesture)

	// Read the latest hand once per frame
	g.perfCollector.StartPhase(telemetry.PhaseGesture)
	g.signal = g.config().Gesture.Range.Sanitize(g.cell.Load())

	timer = timer.Next(systems.SystemMorph)
	g.perfCollector.StartPhase(telemetry.PhaseMorph)
	regens := g.morph.Update(g.signal, g.elapsed)
	if regens > 0 {
		logRegeneration(g)
	}

	timer = timer.Next(systems.SystemSpin)
	g.perfCollector.StartPhase(telemetry.PhaseSpin)
	g.spin.Update()

	timer = timer.Next(systems.SystemStats)
	g.perfCollector.StartPhase(telemetry.PhaseStats)
	var spread float32
	if f := g.Field(); f != nil {
		spread = f.Spread(g.signal)
	}
	g.collector.RecordFrame(g.signal.Detected, g.signal.PinchDistance, spread, regens)
	g.elapsed += dt
	g.tick++
	g.flushTelemetry()

	timer.Stop()
	g.perfCollector.EndTick()
}

// UpdateHeadless advances one frame without input or drawing.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	fps := g.config().Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	g.step(1 / float64(fps))
}

// QueueConfig hands a reloaded configuration to the frame loop.
// Safe to call from any goroutine; the newest config wins.
func (g *Game) QueueConfig(cfg *config.Config) {
	g.pending.Store(cfg)
}

// applyPendingConfig applies a queued config on the main goroutine. Only
// keys that changed in the file are pushed to the cloud, so choices made
// in the UI survive unrelated edits.
func (g *Game) applyPendingConfig() {
	next := g.pending.Swap(nil)
	if next == nil {
		return
	}
	prev := g.cfg
	g.cfg = next

	cloud := g.clouds.Get(g.cloud)
	if next.Field.Shape != prev.Field.Shape {
		cloud.Shape = next.Field.Shape
	}
	if next.Field.Count != prev.Field.Count {
		cloud.Count = next.Field.Count
	}
	g.spins.Get(g.cloud).Rate = next.Render.SpinRate
	if next.Derived.Color != prev.Derived.Color {
		g.tints.Get(g.cloud).Color = next.Derived.Color
	}

	if f := g.Field(); f != nil {
		f.SetParams(fieldParams(next))
		f.SetNoise(noiseModel(next, g.seed))
	}
	if g.mouse != nil {
		g.mouse.rng = next.Gesture.Range
	}
	if g.cloudRenderer != nil {
		g.cloudRenderer.SetPointSize(next.Render.PointSize)
	}
	if g.camera != nil {
		g.camera.AutoSpeed = next.Render.AutoOrbit
		g.camera.Fovy = next.Render.Fovy
	}
	if next.Gesture.Source != prev.Gesture.Source {
		slog.Warn("gesture source change takes effect on restart",
			"current", g.source, "configured", next.Gesture.Source)
	}

	slog.Info("config reloaded",
		"shape", cloud.Shape.String(),
		"count", cloud.Count,
		"noise", next.Noise.Model,
	)
}

// SetShape requests a new shape for the primary cloud. The field
// regenerates on the next frame.
func (g *Game) SetShape(s shapes.Shape) {
	g.clouds.Get(g.cloud).Shape = s
}

// SetParticleCount requests a new particle count for the primary cloud.
func (g *Game) SetParticleCount(n int) {
	if n < 0 {
		n = 0
	}
	if n > config.MaxParticles {
		n = config.MaxParticles
	}
	g.clouds.Get(g.cloud).Count = n
}

// Field returns the primary cloud's particle field, or nil before the first frame.
func (g *Game) Field() *systems.Field {
	return g.morph.Field(primaryCloud)
}

// Signal returns the gesture signal used by the last frame.
func (g *Game) Signal() gesture.Signal {
	return g.signal
}

// Publisher returns where gesture producers publish. Tests and embedders
// can drive the scene through it.
func (g *Game) Publisher() gesture.Publisher {
	return g.pub
}

// Tick returns the number of frames run.
func (g *Game) Tick() int32 {
	return g.tick
}

// Elapsed returns scene time in seconds.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Unload stops producers and releases all resources.
func (g *Game) Unload() {
	g.stopGesture()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}
