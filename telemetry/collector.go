package telemetry

import "log/slog"

// WindowStats holds event counts for one window of simulated time plus the
// populations at the window's end.
type WindowStats struct {
	WindowStartMS float64 `csv:"-"`
	WindowEndMS   float64 `csv:"window_end_ms"`
	Tick          int     `csv:"tick"`

	SimulationStats

	Births    int `csv:"births"`
	Spawns    int `csv:"spawns"`
	Deaths    int `csv:"deaths"`
	OldAge    int `csv:"deaths_old_age"`
	Starved   int `csv:"deaths_starvation"`
	Parched   int `csv:"deaths_dehydration"`
	Eaten     int `csv:"deaths_predation"`
	Poisoned  int `csv:"deaths_poisoning"`
	Meals     int `csv:"meals"`
	Drinks    int `csv:"drinks"`
	Matings   int `csv:"matings"`
	Fallbacks int `csv:"placement_fallbacks"`
}

// Collector accumulates events within windows of simulated time and produces
// WindowStats.
type Collector struct {
	windowMS    float64
	windowStart float64
	counts      WindowStats
}

// NewCollector creates a collector flushing every windowSec simulated seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{windowMS: windowSec * 1000}
}

// Record counts one event.
func (c *Collector) Record(ev Event) {
	w := &c.counts
	switch ev.Type {
	case EventBirth:
		w.Births++
	case EventSpawn:
		w.Spawns++
	case EventMeal:
		w.Meals++
	case EventDrink:
		w.Drinks++
	case EventMating:
		w.Matings++
	case EventPlacementFallback:
		w.Fallbacks++
	case EventDeath:
		w.Deaths++
		switch ev.Cause {
		case CauseOldAge:
			w.OldAge++
		case CauseStarvation:
			w.Starved++
		case CauseDehydration:
			w.Parched++
		case CausePredation:
			w.Eaten++
		case CausePoisoning:
			w.Poisoned++
		}
	}
}

// RecordAll counts a batch of events.
func (c *Collector) RecordAll(events []Event) {
	for _, ev := range events {
		c.Record(ev)
	}
}

// ShouldFlush reports whether the current window has ended at nowMS.
func (c *Collector) ShouldFlush(nowMS float64) bool {
	return nowMS-c.windowStart >= c.windowMS
}

// Flush closes the current window at nowMS and starts the next one.
func (c *Collector) Flush(nowMS float64, tick int, pop SimulationStats) WindowStats {
	w := c.counts
	w.WindowStartMS = c.windowStart
	w.WindowEndMS = nowMS
	w.Tick = tick
	w.SimulationStats = pop

	c.counts = WindowStats{}
	c.windowStart = nowMS
	return w
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end_ms", s.WindowEndMS),
		slog.Int("tick", s.Tick),
		slog.Any("population", s.SimulationStats),
		slog.Int("births", s.Births),
		slog.Int("spawns", s.Spawns),
		slog.Int("deaths", s.Deaths),
		slog.Int("deaths_old_age", s.OldAge),
		slog.Int("deaths_starvation", s.Starved),
		slog.Int("deaths_dehydration", s.Parched),
		slog.Int("deaths_predation", s.Eaten),
		slog.Int("deaths_poisoning", s.Poisoned),
		slog.Int("meals", s.Meals),
		slog.Int("drinks", s.Drinks),
		slog.Int("matings", s.Matings),
		slog.Int("placement_fallbacks", s.Fallbacks),
	)
}

// LogStats logs the window using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
