package game

import "log/slog"

// logStartup records how the scene was set up.
func logStartup(g *Game) {
	cfg := g.config()
	slog.Info("scene ready",
		"shape", cfg.Field.Shape.String(),
		"count", cfg.Field.Count,
		"source", g.source,
		"noise", cfg.Noise.Model,
		"headless", g.headless,
		"seed", g.seed,
	)
}

// logRegeneration records a target regeneration of the primary cloud.
func logRegeneration(g *Game) {
	f := g.Field()
	if f == nil {
		return
	}
	slog.Debug("targets regenerated",
		"tick", g.tick,
		"shape", f.Shape().String(),
		"count", f.Len(),
		"regenerations", f.Regenerations(),
	)
}
