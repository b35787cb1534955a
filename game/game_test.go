package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/telemetry"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

// newHeadless builds a headless game with no producer and applies
// overrides before the first frame.
func newHeadless(t *testing.T, overrides string, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	if opts.Source == "" {
		opts.Source = SourceNone
	}
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(g.Unload)

	if overrides != "" {
		cfg, err := config.Parse([]byte(overrides))
		if err != nil {
			t.Fatal(err)
		}
		g.QueueConfig(cfg)
	}
	return g
}

func TestHeadlessConverges(t *testing.T) {
	g := newHeadless(t, "field:\n  count: 100\n  shape: SPHERE\nnoise:\n  model: none\n", Options{Seed: 1})

	hand := gesture.Signal{Detected: true, IsOpen: true, PinchDistance: 1, X: 1, Y: 1}
	g.Publisher().Publish(hand)

	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}

	f := g.Field()
	if f == nil || f.Len() != 100 {
		t.Fatal("expected a 100 particle field")
	}
	if f.Shape() != shapes.Sphere {
		t.Errorf("expected SPHERE from reloaded config, got %v", f.Shape())
	}
	if g.Signal() != hand {
		t.Errorf("expected frame to use published hand, got %+v", g.Signal())
	}

	errs := f.ConvergenceError(g.Signal(), nil)
	if max := floats.Max(errs); max > 0.01 {
		t.Errorf("expected converged field, worst particle %g away", max)
	}
	if g.Tick() != 120 {
		t.Errorf("expected 120 ticks, got %d", g.Tick())
	}
	if math.Abs(g.Elapsed()-2) > 1e-9 {
		t.Errorf("expected 2s elapsed at 60fps, got %f", g.Elapsed())
	}
}

func TestInfiniteHandKeepsFieldFinite(t *testing.T) {
	g := newHeadless(t, "field:\n  count: 50\n", Options{Seed: 1})

	g.Publisher().Publish(gesture.Signal{Detected: true, PinchDistance: 0.6, X: float32(math.Inf(1)), Y: 1e30})
	g.UpdateHeadless()
	if g.Signal() != gesture.Neutral() {
		t.Errorf("expected infinite hand replaced by neutral, got %+v", g.Signal())
	}

	g.Publisher().Publish(gesture.Neutral())
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	for i, v := range g.Field().Positions() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("position %d is not finite: %v", i, v)
		}
	}
}

func TestSetShapeRegeneratesOnce(t *testing.T) {
	g := newHeadless(t, "field:\n  count: 50\n", Options{Seed: 2})
	g.UpdateHeadless()

	before := g.Field().Regenerations()
	g.SetShape(shapes.Torus)
	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}

	f := g.Field()
	if f.Shape() != shapes.Torus {
		t.Errorf("expected TORUS, got %v", f.Shape())
	}
	if got := f.Regenerations() - before; got != 1 {
		t.Errorf("expected exactly one regeneration, got %d", got)
	}
}

func TestSetParticleCountClamps(t *testing.T) {
	g := newHeadless(t, "field:\n  count: 10\n", Options{})

	g.SetParticleCount(config.MaxParticles + 1)
	if got := g.clouds.Get(g.cloud).Count; got != config.MaxParticles {
		t.Errorf("expected count clamped to %d, got %d", config.MaxParticles, got)
	}
	g.SetParticleCount(-5)
	g.UpdateHeadless()
	if g.Field().Len() != 0 {
		t.Errorf("expected empty field, got %d", g.Field().Len())
	}
}

func TestConfigReloadKeepsUnchangedKeys(t *testing.T) {
	g := newHeadless(t, "field:\n  count: 20\n", Options{})
	g.UpdateHeadless()

	// A choice made at runtime
	g.SetShape(shapes.Heart)
	g.UpdateHeadless()

	// Reload that only touches count and spin
	cfg, err := config.Parse([]byte("field:\n  count: 30\nrender:\n  spin_rate: 0.01\n"))
	if err != nil {
		t.Fatal(err)
	}
	g.QueueConfig(cfg)
	g.UpdateHeadless()

	if g.Field().Shape() != shapes.Heart {
		t.Errorf("expected runtime shape kept, got %v", g.Field().Shape())
	}
	if g.Field().Len() != 30 {
		t.Errorf("expected reloaded count 30, got %d", g.Field().Len())
	}
	if rate := g.spins.Get(g.cloud).Rate; rate != 0.01 {
		t.Errorf("expected spin rate 0.01, got %f", rate)
	}
}

func TestPausedHeadlessDoesNotAdvance(t *testing.T) {
	g := newHeadless(t, "field:\n  count: 5\n", Options{})
	g.paused = true
	g.UpdateHeadless()
	if g.Tick() != 0 {
		t.Errorf("expected no ticks while paused, got %d", g.Tick())
	}
}

func TestHeadlessMouseFallsBackToSynthetic(t *testing.T) {
	g := newHeadless(t, "", Options{Source: SourceMouse})
	if g.Source() != SourceSynthetic {
		t.Fatalf("expected synthetic fallback, got %q", g.Source())
	}

	deadline := time.Now().Add(2 * time.Second)
	for g.cell.Published() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if g.cell.Published() == 0 {
		t.Error("expected the synthetic hand to publish")
	}
}

func TestStatsOutput(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats

	g := newHeadless(t, "field:\n  count: 40\n", Options{
		OutputDir:      dir,
		StatsWindowSec: 0.099,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}

	// 30 frames at 60fps is half a second: a window closes every 6 frames
	if len(windows) != 5 {
		t.Fatalf("expected 5 stats windows, got %d", len(windows))
	}
	if windows[0].Particles != 40 || windows[0].Shape != "BOTTLE" {
		t.Errorf("unexpected first window %+v", windows[0])
	}
	if windows[4].ErrorMean >= windows[0].ErrorMean {
		t.Errorf("expected error to shrink, first %g last %g", windows[0].ErrorMean, windows[4].ErrorMean)
	}

	g.Unload()
	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(strings.TrimSpace(string(data)), "\n") + 1; lines != 6 {
		t.Errorf("expected header plus 5 rows, got %d lines", lines)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config snapshot: %v", err)
	}
}

func TestRecordThenReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.csv")

	g := newHeadless(t, "", Options{Source: SourceNone, RecordPath: path})
	g.Publisher().Publish(gesture.Signal{Detected: true, PinchDistance: 0.9, X: 2, Y: -1})
	g.Publisher().Publish(gesture.Neutral())
	g.Unload()

	replay, err := gesture.LoadReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(replay.Samples) != 2 {
		t.Fatalf("expected 2 recorded samples, got %d", len(replay.Samples))
	}
	if s := replay.Samples[0]; !s.Detected || s.Pinch != 0.9 || s.X != 2 || s.Y != -1 {
		t.Errorf("unexpected first sample %+v", s)
	}

	// The recording drives a replay source
	r := newHeadless(t, "", Options{Source: SourceReplay, ReplayPath: path})
	if r.Source() != SourceReplay {
		t.Errorf("expected replay source, got %q", r.Source())
	}
}

func TestUnknownSource(t *testing.T) {
	if _, err := NewGameWithOptions(Options{Headless: true, Source: "webcam"}); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestMouseHand(t *testing.T) {
	m := newMouseHand(gesture.DefaultRange)

	if s := m.signal(100, 100, 800, 600, false, 0); s != gesture.Neutral() {
		t.Errorf("expected neutral without button, got %+v", s)
	}

	s := m.signal(800, 0, 800, 600, true, 0)
	if !s.Detected || s.X != 5 || s.Y != 5 {
		t.Errorf("expected top-right corner at (5, 5), got %+v", s)
	}
	if s.PinchDistance != 0.5 || !s.IsOpen {
		t.Errorf("expected default half-open pinch, got %+v", s)
	}

	// Wheel closes the hand even while hidden, and clamps
	m.signal(0, 0, 800, 600, false, -20)
	s = m.signal(400, 300, 800, 600, true, 0)
	if s.PinchDistance != 0 || s.IsOpen {
		t.Errorf("expected closed hand, got %+v", s)
	}
	if s.X != 0 || s.Y != 0 {
		t.Errorf("expected centre at origin, got (%f, %f)", s.X, s.Y)
	}
}

func TestPerfStatsTimer(t *testing.T) {
	p := NewPerfStats()
	timer := p.Start("a")
	timer = timer.Next("b")
	timer.Stop()

	avg := p.Averages()
	if _, ok := avg["a"]; !ok {
		t.Error("expected phase a recorded")
	}
	if _, ok := avg["b"]; !ok {
		t.Error("expected phase b recorded")
	}
	if p.Total() != p.Avg("a")+p.Avg("b") {
		t.Error("expected total to sum phase averages")
	}
}
