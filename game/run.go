package game

import (
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// extinctionTimer tracks how long a population group has been at zero.
type extinctionTimer struct {
	seen    bool    // the group existed at some point in the run
	running bool    // the group is at zero right now
	since   float64 // elapsed ms when it reached zero
}

// observe updates the timer with the group's current count and reports
// whether it has been empty for at least grace ms.
func (t *extinctionTimer) observe(count int, now, grace float64) bool {
	if count > 0 {
		t.seen = true
		t.running = false
		return false
	}
	if !t.seen {
		return false
	}
	if !t.running {
		t.running, t.since = true, now
	}
	return now-t.since >= grace
}

// RunContext holds the mutable state of one run that is not part of the
// entity set: spawn timers, extinction timers, population history and the
// vital growth rates. It is owned by the game and passed to each phase.
type RunContext struct {
	Settings config.Settings

	lastGrassSpawn  float64
	lastInsectSpawn float64

	herbivores extinctionTimer
	carnivores extinctionTimer

	hungerRate float64
	thirstRate float64

	history        []telemetry.SimulationStats
	initialAnimals int
	tick           int
}

// NewRunContext creates the context for a run with the given settings.
func NewRunContext(settings config.Settings) *RunContext {
	return &RunContext{
		Settings:   settings,
		hungerRate: systems.HungerPerTick,
		thirstRate: systems.ThirstPerTick,
	}
}

// Terminal checks the end conditions in priority order against the stats
// of the last committed tick.
func (r *RunContext) Terminal(now float64, stats telemetry.SimulationStats) (telemetry.EndReason, bool) {
	if stats.Animals == 0 {
		return telemetry.ReasonAnimalsExtinct, true
	}
	if now > systems.TimeLimit {
		return telemetry.ReasonTimeLimit, true
	}

	herbivoresGone := r.herbivores.observe(stats.Herbivores, now, systems.ExtinctionGrace)
	carnivoresGone := r.carnivores.observe(stats.Carnivores, now, systems.ExtinctionGrace)
	if herbivoresGone {
		return telemetry.ReasonHerbivoresExtinct, true
	}
	if carnivoresGone {
		return telemetry.ReasonCarnivoresExtinct, true
	}
	return "", false
}

// grassDue reports whether a grass spawn is due at now and restarts the timer if so.
func (r *RunContext) grassDue(now float64) bool {
	if now-r.lastGrassSpawn > r.Settings.GrassSpawnRate*systems.GrassSpawnPeriod {
		r.lastGrassSpawn = now
		return true
	}
	return false
}

// insectDue reports whether an insect spawn is due at now and restarts the timer if so.
func (r *RunContext) insectDue(now float64) bool {
	if !r.Settings.PeriodicSpawning {
		return false
	}
	if now-r.lastInsectSpawn > r.Settings.InsectSpawnRate*systems.InsectSpawnPeriod {
		r.lastInsectSpawn = now
		return true
	}
	return false
}

// record appends a committed tick's stats to the history.
func (r *RunContext) record(stats telemetry.SimulationStats) {
	r.history = append(r.history, stats)
	r.tick++
}
