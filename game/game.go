// Package game runs the simulation: the entity store, the tick loop, pause
// accounting, termination and the read-only views handed to observers.
package game

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// Options configures a run.
type Options struct {
	Seed       int64
	Settings   config.Settings
	LakeBuffer float64

	LogStats       bool                     // log each stats window
	StatsWindowSec float64                  // simulated seconds per stats window
	PerfWindow     int                      // ticks averaged by the perf collector
	Output         *telemetry.OutputManager // nil disables file output

	Time TimeSource   // nil means wall clock
	Rand systems.Rand // nil means systems.NewRand(Seed)
}

// OptionsFromConfig builds run options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, seed int64) Options {
	return Options{
		Seed:           seed,
		Settings:       cfg.Settings,
		LakeBuffer:     cfg.World.LakeBuffer,
		LogStats:       cfg.Telemetry.LogStats,
		StatsWindowSec: cfg.Telemetry.StatsWindow,
		PerfWindow:     cfg.Telemetry.PerfWindow,
	}
}

// Game holds the complete state of one run. It is single-threaded: every
// method must be called from the goroutine that drives the ticks.
type Game struct {
	world *ecs.World

	// Entity mappers: plants and others carry four components, animals six.
	staticMapper *ecs.Map4[
		components.Identity,
		components.Body,
		components.Lifespan,
		components.Material,
	]
	animalMapper *ecs.Map6[
		components.Identity,
		components.Body,
		components.Lifespan,
		components.Material,
		components.Vitals,
		components.Drive,
	]
	entityFilter *ecs.Filter4[
		components.Identity,
		components.Body,
		components.Lifespan,
		components.Material,
	]
	matingFilter *ecs.Filter2[components.Identity, components.Drive]
	vitalsMap    *ecs.Map[components.Vitals]
	driveMap     *ecs.Map[components.Drive]

	// Entity id -> ECS handle
	index map[uint64]ecs.Entity

	opts      Options
	rng       systems.Rand
	clock     *Clock
	run       *RunContext
	factory   *systems.Factory
	lifecycle *systems.Lifecycle
	behavior  *systems.Behavior
	changes   *systems.Changes
	updates   []components.Entity

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	detector  *telemetry.BookmarkDetector
	bookmarks []telemetry.Bookmark
	output    *telemetry.OutputManager

	// Views of the last committed tick
	entities []components.Entity
	sorted   []components.Entity
	stats    telemetry.SimulationStats

	runID     string
	startWall time.Time
	started   bool
	running   bool
	result    *telemetry.SimulationResult
	onEnd     []func(*telemetry.SimulationResult)
}

// New creates a game for one run. Call Start to populate the world.
func New(opts Options) *Game {
	world := ecs.NewWorld()

	rng := opts.Rand
	if rng == nil {
		rng = systems.NewRand(opts.Seed)
	}

	factory := systems.NewFactory(opts.Settings, rng)
	lifecycle := systems.NewLifecycle(factory, rng, opts.Settings)

	g := &Game{
		world: world,
		staticMapper: ecs.NewMap4[
			components.Identity,
			components.Body,
			components.Lifespan,
			components.Material,
		](world),
		animalMapper: ecs.NewMap6[
			components.Identity,
			components.Body,
			components.Lifespan,
			components.Material,
			components.Vitals,
			components.Drive,
		](world),
		entityFilter: ecs.NewFilter4[
			components.Identity,
			components.Body,
			components.Lifespan,
			components.Material,
		](world),
		matingFilter: ecs.NewFilter2[components.Identity, components.Drive](world),
		vitalsMap:    ecs.NewMap[components.Vitals](world),
		driveMap:     ecs.NewMap[components.Drive](world),
		index:        make(map[uint64]ecs.Entity),

		opts:      opts,
		rng:       rng,
		clock:     NewClock(opts.Time),
		run:       NewRunContext(opts.Settings),
		factory:   factory,
		lifecycle: lifecycle,
		behavior:  systems.NewBehavior(factory, lifecycle, rng),
		changes:   systems.NewChanges(),

		collector: telemetry.NewCollector(opts.StatsWindowSec),
		perf:      telemetry.NewPerfCollector(opts.PerfWindow),
		detector:  telemetry.NewBookmarkDetector(bookmarkHistory),
		output:    opts.Output,
		runID:     uuid.NewString(),
	}
	return g
}

// RunID returns the run's unique id.
func (g *Game) RunID() string { return g.runID }

// Entities returns the entity list of the last committed tick, ordered by
// id. The slice is replaced, never modified, after each tick.
func (g *Game) Entities() []components.Entity { return g.entities }

// Sorted returns the entities lakes first, then by ascending y.
func (g *Game) Sorted() []components.Entity {
	if g.sorted == nil && g.entities != nil {
		g.sorted = components.SortForDrawing(g.entities)
	}
	return g.sorted
}

// Stats returns the population counts of the last committed tick.
func (g *Game) Stats() telemetry.SimulationStats { return g.stats }

// History returns the stats recorded after every committed tick.
func (g *Game) History() []telemetry.SimulationStats { return g.run.history }

// IsRunning reports whether the run has started and not yet ended. A paused
// run is still running.
func (g *Game) IsRunning() bool { return g.running }

// IsPaused reports whether the run is paused.
func (g *Game) IsPaused() bool { return g.clock.Paused() }

// Elapsed returns the simulated run time in milliseconds, paused time excluded.
func (g *Game) Elapsed() float64 {
	if g.result != nil {
		return g.result.DurationMS
	}
	return g.clock.Elapsed()
}

// TickCount returns the number of committed ticks.
func (g *Game) TickCount() int { return g.run.tick }

// Result returns the run result, or nil while the run is in progress.
func (g *Game) Result() *telemetry.SimulationResult { return g.result }

// Settings returns the run's settings.
func (g *Game) Settings() config.Settings { return g.run.Settings }

// OnEnd registers a callback that receives the result when the run ends.
func (g *Game) OnEnd(fn func(*telemetry.SimulationResult)) {
	g.onEnd = append(g.onEnd, fn)
}

// SetVitalsGrowth overrides the per-tick hunger and thirst growth.
func (g *Game) SetVitalsGrowth(hunger, thirst float64) {
	g.run.hungerRate, g.run.thirstRate = hunger, thirst
}

// Pause freezes the run. No-op unless running and not paused.
func (g *Game) Pause() {
	if !g.running || g.clock.Paused() {
		return
	}
	g.clock.Pause()
	slog.Info("simulation paused", "run_id", g.runID, "elapsed_ms", g.clock.Elapsed())
}

// Resume continues a paused run. No-op unless paused.
func (g *Game) Resume() {
	if !g.running || !g.clock.Paused() {
		return
	}
	g.clock.Resume()
	slog.Info("simulation resumed", "run_id", g.runID, "paused_ms", g.clock.PausedTotal())
}

// Stop ends the run with the given reason, or "manually ended" when reason
// is empty. The result uses the stats and history as they are at the call.
// No-op once the run has ended.
func (g *Game) Stop(reason telemetry.EndReason) {
	if !g.running {
		return
	}
	if reason == "" {
		reason = telemetry.ReasonManual
	}
	g.end(reason)
}
