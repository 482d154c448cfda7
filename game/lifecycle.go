package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// population is a requested starting count for one kind.
type population struct {
	kind  components.Kind
	count int
}

// initialAnimals lists the starting animal populations in placement order.
func (g *Game) initialAnimals() []population {
	s := g.run.Settings
	return []population{
		{components.KindSmallCarnivore, s.InitialSmallCarnivores},
		{components.KindBigCarnivore, s.InitialBigCarnivores},
		{components.KindSmallHerbivore, s.InitialSmallHerbivores},
		{components.KindBigHerbivore, s.InitialBigHerbivores},
		{components.KindScavenger, s.InitialScavengers},
		{components.KindInsectivore, s.InitialInsectivores},
	}
}

// Start lays out the lakes and the initial animals and starts the clock.
// Calling Start twice is a no-op.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true

	snap := g.snapshot()
	for range g.run.Settings.LakeCount {
		g.place(snap, components.KindLake, systems.Anywhere)
	}

	for _, group := range g.initialAnimals() {
		for range group.count {
			if g.placeAnimal(snap, group.kind) {
				g.run.initialAnimals++
			}
		}
	}
	g.recordFallbacks()

	g.refresh()
	g.stats = telemetry.Tally(g.entities)

	g.clock.Start()
	g.startWall = time.Now()
	g.running = true

	slog.Info("simulation started",
		"run_id", g.runID,
		"seed", g.opts.Seed,
		"entities", len(g.entities),
		"initial_animals", g.run.initialAnimals,
		"lakes", g.run.Settings.LakeCount,
	)
}

// placeAnimal makes up to AnimalPlacementTries attempts to place an animal
// clear of every lake.
func (g *Game) placeAnimal(snap *systems.Snapshot, kind components.Kind) bool {
	for range systems.AnimalPlacementTries {
		e := g.factory.Create(kind, systems.Anywhere)
		if snap.OverlapsLake(e.X, e.Y, e.Edge()) {
			continue
		}
		g.spawn(&e)
		snap.Add(e)
		g.collector.Record(telemetry.NewSpawnEvent(kind))
		return true
	}
	slog.Warn("animal not placed", "run_id", g.runID, "kind", kind.String(), "attempts", systems.AnimalPlacementTries)
	return false
}

// recordFallbacks turns the factory's fallback placements into events.
func (g *Game) recordFallbacks() {
	for _, kind := range g.factory.TakeFallbacks() {
		g.collector.Record(telemetry.NewPlacementFallbackEvent(kind))
	}
}

// end assembles the result, stops the run and hands the result to every
// OnEnd callback. It runs exactly once per run.
func (g *Game) end(reason telemetry.EndReason) {
	now := g.clock.Elapsed()
	g.running = false

	res := &telemetry.SimulationResult{
		RunID:              g.runID,
		Seed:               g.opts.Seed,
		StartTime:          g.startWall,
		EndTime:            time.Now(),
		DurationMS:         now,
		Ticks:              g.run.tick,
		EndReason:          reason,
		FinalStats:         g.stats,
		InitialAnimals:     g.run.initialAnimals,
		Settings:           g.run.Settings,
		PlacementFallbacks: g.factory.Fallbacks(),
	}
	res.Complete(g.run.history)
	g.result = res

	slog.Info("simulation ended",
		"run_id", g.runID,
		"reason", string(reason),
		"duration_ms", now,
		"ticks", g.run.tick,
		"final", res.FinalStats,
		"health", res.Health,
	)

	g.flushTelemetry(now, true)
	res.Bookmarks = g.bookmarks
	if err := g.output.WriteResult(res); err != nil {
		slog.Error("failed to write result", "error", err)
	}

	for _, fn := range g.onEnd {
		fn(res)
	}
}
