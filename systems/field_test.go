package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/morph/gesture"
	"github.com/pthm-cable/morph/shapes"
)

func newTestField(n int, shape shapes.Shape) *Field {
	return NewField(n, shape, DefaultFieldParams(), rand.New(rand.NewSource(1)), NoNoise{})
}

func TestNewField(t *testing.T) {
	f := newTestField(64, shapes.Torus)

	if f.Len() != 64 {
		t.Errorf("expected 64 particles, got %d", f.Len())
	}
	if len(f.Positions()) != 64*3 || len(f.Targets()) != 64*3 {
		t.Fatalf("unexpected buffer lengths %d/%d", len(f.Positions()), len(f.Targets()))
	}
	for i, v := range f.Positions() {
		if v != 0 {
			t.Fatalf("expected particles to start at origin, got %f at %d", v, i)
		}
	}
	if f.Shape() != shapes.Torus {
		t.Errorf("expected TORUS, got %v", f.Shape())
	}
	if f.Regenerations() != 0 {
		t.Errorf("expected no regenerations, got %d", f.Regenerations())
	}
}

func TestSpread(t *testing.T) {
	f := newTestField(1, shapes.Cube)

	tests := []struct {
		pinch float32
		want  float32
	}{
		{0, 0.2},
		{0.1, 0.2}, // 0.15 is under the floor
		{0.5, 0.75},
		{1, 1.5},
	}

	for _, tc := range tests {
		got := f.Spread(gesture.Signal{PinchDistance: tc.pinch})
		if math.Abs(float64(got-tc.want)) > 1e-6 {
			t.Errorf("Spread(pinch=%v) = %v, expected %v", tc.pinch, got, tc.want)
		}
	}

	if got := f.Spread(gesture.Signal{PinchDistance: 0}); got != float32(0.2) {
		t.Errorf("expected spread floor exactly 0.2, got %v", got)
	}
}

func TestHandOffset(t *testing.T) {
	f := newTestField(1, shapes.Cube)

	hx, hy := f.HandOffset(gesture.Signal{Detected: false, X: 4, Y: -3})
	if hx != 0 || hy != 0 {
		t.Errorf("expected no offset without a hand, got (%f, %f)", hx, hy)
	}

	hx, hy = f.HandOffset(gesture.Signal{Detected: true, X: 4, Y: -3})
	if math.Abs(float64(hx-0.4)) > 1e-6 || math.Abs(float64(hy+0.3)) > 1e-6 {
		t.Errorf("expected offset (0.4, -0.3), got (%f, %f)", hx, hy)
	}
}

func TestTick_UndetectedIgnoresStalePosition(t *testing.T) {
	a := newTestField(50, shapes.Sphere)
	b := newTestField(50, shapes.Sphere)

	stale := gesture.Signal{Detected: false, PinchDistance: 0.5, X: 5, Y: 5}
	centered := gesture.Signal{Detected: false, PinchDistance: 0.5}
	for i := 0; i < 10; i++ {
		a.Tick(stale, 0)
		b.Tick(centered, 0)
	}

	pa, pb := a.Positions(), b.Positions()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("stale hand position leaked into particle buffer at %d", i)
		}
	}
}

func TestSetShape_RegeneratesOnce(t *testing.T) {
	f := newTestField(100, shapes.Bottle)

	if f.SetShape(shapes.Bottle) {
		t.Error("expected no regeneration for the current shape")
	}
	if !f.SetShape(shapes.Heart) {
		t.Error("expected regeneration on shape change")
	}
	if f.SetShape(shapes.Heart) {
		t.Error("expected repeated shape to be skipped")
	}
	if f.Regenerations() != 1 {
		t.Errorf("expected exactly 1 regeneration, got %d", f.Regenerations())
	}
}

func TestSetShape_ReplacesTargets(t *testing.T) {
	f := newTestField(100, shapes.Cube)
	f.SetShape(shapes.Sphere)

	want := shapes.Generate(100, shapes.Sphere, nil)
	got := f.Targets()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("target %d = %f, expected %f", i, got[i], want[i])
		}
	}
}

func TestSetShape_ResetsProgress(t *testing.T) {
	f := newTestField(10, shapes.Cube)
	if f.Progress() != 1 {
		t.Errorf("expected settled field, got progress %f", f.Progress())
	}

	f.SetShape(shapes.Torus)
	if f.Progress() != 0 {
		t.Errorf("expected progress reset, got %f", f.Progress())
	}

	g := gesture.Neutral()
	for i := 0; i < 20; i++ {
		f.Tick(g, 0)
	}
	// 1 - 0.95^20
	if p := f.Progress(); math.Abs(float64(p)-(1-math.Pow(0.95, 20))) > 1e-4 {
		t.Errorf("unexpected progress %f after 20 ticks", p)
	}
}

func TestTick_GeometricConvergence(t *testing.T) {
	f := newTestField(200, shapes.Torus)
	g := gesture.Neutral()

	prev := f.ConvergenceError(g, nil)
	initial := append([]float64(nil), prev...)

	for k := 1; k <= 50; k++ {
		f.Tick(g, float64(k))
		cur := f.ConvergenceError(g, nil)

		factor := math.Pow(0.95, float64(k))
		for i := range cur {
			if cur[i] > prev[i]+1e-7 {
				t.Fatalf("tick %d particle %d: error grew from %g to %g", k, i, prev[i], cur[i])
			}
			if want := initial[i] * factor; math.Abs(cur[i]-want) > 1e-4 {
				t.Fatalf("tick %d particle %d: error %g, expected %g", k, i, cur[i], want)
			}
		}
		prev = cur
	}
}

func TestTick_EndToEndSphere(t *testing.T) {
	const n = 100
	f := newTestField(n, shapes.Sphere)
	g := gesture.Signal{Detected: true, IsOpen: true, PinchDistance: 1, X: 1, Y: 1}

	// 0.95^90 < 0.01, so 90 ticks is the first count guaranteed within 1%
	for i := 0; i < 90; i++ {
		f.Tick(g, 0)
	}

	tgt := f.Targets()
	pos := f.Positions()
	offset := [3]float32{0.1, 0.1, 0}
	for i := 0; i < n*3; i++ {
		want := tgt[i]*1.5 + offset[i%3]
		diff := math.Abs(float64(pos[i] - want))
		if diff > 0.01*math.Abs(float64(want))+1e-5 {
			t.Fatalf("component %d: got %f, expected within 1%% of %f", i, pos[i], want)
		}
	}
}

func TestTick_NoiseSharedAcrossAxes(t *testing.T) {
	// Unknown shape: every target is the origin, so one tick from rest
	// leaves exactly the noise term on each axis.
	noise := SineNoise{Amp: 0.01, Freq: 2}
	f := NewField(20, shapes.Shape(99), DefaultFieldParams(), nil, noise)

	const elapsed = 1.25
	f.Tick(gesture.Neutral(), elapsed)

	pos := f.Positions()
	for i := 0; i < 20; i++ {
		want := float32(0.01 * math.Sin(elapsed*2+float64(i)))
		for axis := 0; axis < 3; axis++ {
			if got := pos[i*3+axis]; math.Abs(float64(got-want)) > 1e-7 {
				t.Fatalf("particle %d axis %d: got %g, expected %g", i, axis, got, want)
			}
		}
	}
}

func TestSetParticleCount(t *testing.T) {
	f := newTestField(10, shapes.Cube)
	f.Tick(gesture.Neutral(), 0)

	if f.SetParticleCount(10) {
		t.Error("expected no-op for unchanged count")
	}
	if !f.SetParticleCount(25) {
		t.Fatal("expected reconfiguration")
	}
	if f.Len() != 25 || len(f.Positions()) != 75 || len(f.Targets()) != 75 {
		t.Fatalf("unexpected sizes after reconfiguration: n=%d pos=%d tgt=%d",
			f.Len(), len(f.Positions()), len(f.Targets()))
	}
	for i, v := range f.Positions() {
		if v != 0 {
			t.Fatalf("expected fresh buffer at origin, got %f at %d", v, i)
		}
	}
	if f.Shape() != shapes.Cube {
		t.Errorf("expected shape kept across reconfiguration, got %v", f.Shape())
	}

	// Back buffer must follow the new size too
	f.SetShape(shapes.Sphere)
	if len(f.Targets()) != 75 {
		t.Errorf("expected 75 targets after shape change, got %d", len(f.Targets()))
	}
}

func TestTick_PanicsOnBufferMismatch(t *testing.T) {
	f := newTestField(10, shapes.Cube)
	f.current = f.current[:3]

	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched buffers")
		}
	}()
	f.Tick(gesture.Neutral(), 0)
}

func TestEmptyField(t *testing.T) {
	f := newTestField(-3, shapes.Heart)
	if f.Len() != 0 {
		t.Errorf("expected empty field, got %d", f.Len())
	}
	f.Tick(gesture.Neutral(), 0)
	if got := f.ConvergenceError(gesture.Neutral(), nil); len(got) != 0 {
		t.Errorf("expected no errors, got %d", len(got))
	}
}

func TestNoiseModels(t *testing.T) {
	if NewNoiseModel("none", 1, 1, 0).Sample(3, 10) != 0 {
		t.Error("expected silent noise model")
	}

	sine := NewNoiseModel("bogus", 0.01, 2, 0)
	if _, ok := sine.(SineNoise); !ok {
		t.Errorf("expected sine fallback, got %T", sine)
	}

	simplex := NewNoiseModel("simplex", 0.01, 2, 7)
	for i := 0; i < 100; i++ {
		v := simplex.Sample(i, float64(i)*0.1)
		if v < -0.0101 || v > 0.0101 {
			t.Fatalf("simplex sample %f outside amplitude", v)
		}
	}
}
