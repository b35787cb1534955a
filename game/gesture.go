package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/morph/gesture"
)

// Gesture sources.
const (
	SourceMouse     = "mouse"
	SourceSynthetic = "synthetic"
	SourceReplay    = "replay"
	SourceNone      = "none"
)

// startGesture wires the publisher chain and launches the configured producer.
// The mouse source is polled on the main goroutine in Update instead.
func (g *Game) startGesture(opts Options) error {
	cfg := g.config()

	source := cfg.Gesture.Source
	if opts.Source != "" {
		source = opts.Source
	}
	replayPath := cfg.Gesture.ReplayPath
	if opts.ReplayPath != "" {
		replayPath = opts.ReplayPath
	}
	recordPath := cfg.Gesture.RecordPath
	if opts.RecordPath != "" {
		recordPath = opts.RecordPath
	}

	if source == SourceMouse && g.headless {
		slog.Warn("mouse gesture source needs a window, using synthetic hand")
		source = SourceSynthetic
	}
	g.source = source

	g.pub = g.cell
	if recordPath != "" {
		f, err := os.Create(recordPath)
		if err != nil {
			return fmt.Errorf("creating gesture recording: %w", err)
		}
		g.recordFile = f
		g.recorder = gesture.NewRecorder(f)
		g.pub = gesture.Tee(g.cell, g.recorder)
	}

	var producer gesture.Producer
	switch source {
	case SourceMouse:
		g.mouse = newMouseHand(cfg.Gesture.Range)
		return nil
	case SourceNone:
		return nil
	case SourceSynthetic:
		producer = &gesture.Synthetic{
			Interval: cfg.Derived.SyntheticInterval,
			Period:   cfg.Derived.SyntheticPeriod,
			Radius:   cfg.Synthetic.Radius,
			Absent:   cfg.Derived.SyntheticAbsent,
			Range:    cfg.Gesture.Range,
		}
	case SourceReplay:
		if replayPath == "" {
			return errors.New("replay gesture source needs a recording path")
		}
		replay, err := gesture.LoadReplay(replayPath)
		if err != nil {
			return err
		}
		replay.Loop = cfg.Gesture.ReplayLoop
		replay.Range = cfg.Gesture.Range
		producer = replay
	default:
		return fmt.Errorf("unknown gesture source %q", source)
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.producers.Add(1)
	go func() {
		defer g.producers.Done()
		err := producer.Run(ctx, g.pub)
		switch {
		case err == nil:
			slog.Info("gesture producer finished", "source", source)
		case errors.Is(err, context.Canceled):
		default:
			slog.Error("gesture producer stopped", "source", source, "error", err)
		}
	}()
	return nil
}

// stopGesture cancels the producer, waits for it and closes the recording.
func (g *Game) stopGesture() {
	if g.cancel != nil {
		g.cancel()
		g.producers.Wait()
		g.cancel = nil
	}
	if g.recorder != nil {
		if err := g.recorder.Err(); err != nil {
			slog.Error("gesture recording incomplete", "error", err)
		}
	}
	if g.recordFile != nil {
		if err := g.recordFile.Close(); err != nil {
			slog.Error("failed to close gesture recording", "error", err)
		}
		g.recordFile = nil
	}
}

// Source returns the active gesture source.
func (g *Game) Source() string {
	return g.source
}
