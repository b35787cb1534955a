package game

import (
	"log/slog"

	"github.com/pthm-cable/morph/telemetry"
)

// flushTelemetry closes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.elapsed) {
		return
	}

	stats := g.collector.Flush(g.tick, g.elapsed, g.cell.Published(), g.sampleField())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		slog.Info("stats", "window", stats)
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleField captures the primary cloud's state for a stats window.
func (g *Game) sampleField() telemetry.FieldSample {
	f := g.Field()
	if f == nil {
		return telemetry.FieldSample{}
	}
	g.errBuf = f.ConvergenceError(g.signal, g.errBuf)
	return telemetry.FieldSample{
		Shape:     f.Shape().String(),
		Particles: f.Len(),
		Progress:  f.Progress(),
		Errors:    g.errBuf,
	}
}
