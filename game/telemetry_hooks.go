package game

import (
	"log/slog"
)

// bookmarkHistory is the number of stats windows the bookmark detector
// compares against.
const bookmarkHistory = 10

// flushTelemetry closes the stats window when it has run its length, or
// unconditionally when final is set, and hands the row to the log and the
// output files.
func (g *Game) flushTelemetry(now float64, final bool) {
	if !final && !g.collector.ShouldFlush(now) {
		return
	}

	window := g.collector.Flush(now, g.run.tick, g.stats)
	perfStats := g.perf.Stats()

	for _, b := range g.detector.Check(window) {
		slog.Info("bookmark", "run_id", g.runID, "bookmark", b)
		g.bookmarks = append(g.bookmarks, b)
	}

	if g.opts.LogStats {
		window.LogStats()
		slog.Info("perf", "run_id", g.runID, "stats", perfStats)
	}

	if err := g.output.WriteStats(window); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.output.WritePerf(perfStats, g.run.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
