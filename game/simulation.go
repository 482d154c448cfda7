package game

import (
	"slices"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// Tick runs one simulation step. It returns false once the run has ended.
// While paused it does nothing and returns true.
//
// Order: termination check, periodic spawning, advance (aging, lifecycle,
// vitals, behavior) against the tick-start snapshot, commit of the staged
// changes, reproduction, stats.
func (g *Game) Tick() bool {
	if !g.running {
		return false
	}
	if g.clock.Paused() {
		return true
	}
	now := g.clock.Elapsed()

	if reason, done := g.run.Terminal(now, g.stats); done {
		g.end(reason)
		return false
	}

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseSpawn)
	snap := g.snapshot()
	g.spawnPeriodic(snap, now)

	g.perf.StartPhase(telemetry.PhaseAdvance)
	g.advance(snap, now)

	g.perf.StartPhase(telemetry.PhaseCommit)
	g.commit()

	g.perf.StartPhase(telemetry.PhaseReproduction)
	g.resolveReproduction(now)

	g.perf.StartPhase(telemetry.PhaseStats)
	g.refresh()
	g.stats = telemetry.Tally(g.entities)
	g.run.record(g.stats)
	g.flushTelemetry(now, false)

	g.perf.EndTick()
	return true
}

// spawnPeriodic adds grass, seedlings and insects when their timers are due.
// New entities are stored immediately and join this tick's snapshot.
func (g *Game) spawnPeriodic(snap *systems.Snapshot, now float64) {
	if g.run.grassDue(now) {
		if g.rng.Float64() < systems.GrassChance {
			g.place(snap, components.KindGrass, systems.Anywhere)
			g.collector.Record(telemetry.NewSpawnEvent(components.KindGrass))
		} else if grass := kindOf(snap.Entities(), components.KindGrass); len(grass) > systems.MinGrassForSeeding {
			parent := grass[systems.Pick(g.rng, len(grass))]
			x := parent.X + g.rng.Float64()*2*systems.SeedlingSpread - systems.SeedlingSpread
			y := parent.Y + g.rng.Float64()*2*systems.SeedlingSpread - systems.SeedlingSpread
			g.place(snap, components.KindSeedling, systems.At(x, y))
			g.collector.Record(telemetry.NewSpawnEvent(components.KindSeedling))
		}
	}

	if g.run.insectDue(now) {
		g.place(snap, components.KindInsect, systems.Anywhere)
		g.collector.Record(telemetry.NewSpawnEvent(components.KindInsect))
	}
}

func kindOf(entities []components.Entity, kind components.Kind) []components.Entity {
	var out []components.Entity
	for i := range entities {
		if entities[i].Kind == kind {
			out = append(out, entities[i])
		}
	}
	return out
}

// advance ages every entity, applies lifecycle transitions and vital
// growth, and runs behavior for the surviving animals. Every read goes
// through snap; results are staged in g.changes and g.updates.
func (g *Game) advance(snap *systems.Snapshot, now float64) {
	ch := g.changes
	ch.Reset()
	g.updates = g.updates[:0]

	for _, committed := range snap.Entities() {
		// Eaten earlier in this tick.
		if ch.Removed(committed.ID) {
			continue
		}

		e := committed.Clone()
		e.Age += systems.TickInterval
		if e.Expired() {
			g.lifecycle.Apply(snap, &e, ch, telemetry.CauseOldAge)
			continue
		}

		if e.IsAnimal() && e.Vitals != nil {
			if !g.metabolize(snap, &e, ch) {
				continue
			}
			if !g.behavior.Step(snap, &e, now, ch) {
				continue
			}
		}
		g.updates = append(g.updates, e)
	}
}

// metabolize grows hunger and thirst and applies starvation or dehydration.
// It returns false when the animal died.
func (g *Game) metabolize(snap *systems.Snapshot, e *components.Entity, ch *systems.Changes) bool {
	v := e.Vitals

	v.Hunger += g.run.hungerRate
	if v.Hunger > systems.StarvationThreshold {
		g.lifecycle.Apply(snap, e, ch, telemetry.CauseStarvation)
		return false
	}

	v.Thirst += g.run.thirstRate
	if v.Thirst > systems.DehydrationThreshold {
		g.lifecycle.Apply(snap, e, ch, telemetry.CauseDehydration)
		return false
	}
	return true
}

// commit applies the staged changes: removals first, then the updated
// entities, partner marks and additions.
func (g *Game) commit() {
	ch := g.changes

	for _, id := range ch.Removals() {
		g.remove(id)
	}
	for i := range g.updates {
		g.store(&g.updates[i])
	}

	// A mark never overrides an animal that already chose its own mate. The
	// partner's cooldown starts only when an offspring is actually born.
	for _, m := range ch.Marks() {
		d := g.drive(m.Partner)
		if d == nil || d.ShouldReproduce {
			continue
		}
		d.ShouldReproduce, d.Partner = true, m.From
	}

	added := ch.Additions()
	for i := range added {
		if ch.Removed(added[i].ID) {
			continue
		}
		g.spawn(&added[i])
	}

	g.collector.RecordAll(ch.Events())
	g.recordFallbacks()
}

// resolveReproduction spawns one offspring per flagged parent whose partner
// still exists, in id order, and clears the flags on both. The partner pays
// the mating cost and both parents start their cooldown.
func (g *Game) resolveReproduction(now float64) {
	var parents []uint64
	query := g.matingFilter.Query()
	for query.Next() {
		id, drive := query.Get()
		if drive.ShouldReproduce {
			parents = append(parents, id.ID)
		}
	}
	if len(parents) == 0 {
		return
	}
	slices.Sort(parents)

	var offspring []components.Entity
	for _, id := range parents {
		d := g.drive(id)
		if d == nil || !d.ShouldReproduce {
			continue
		}
		partnerID := d.Partner
		d.ClearReproduction()

		pd := g.drive(partnerID)
		if pd == nil {
			continue
		}
		if pv := g.vitals(partnerID); pv != nil {
			pv.Hunger += systems.MatingHungerCost
		}
		d.LastReproduction, d.HasReproduced = now, true
		pd.LastReproduction, pd.HasReproduced = now, true
		pd.ClearReproduction()

		parent, partner := g.body(id), g.body(partnerID)
		x := (parent.X+partner.X)/2 + g.rng.Float64()*2*systems.OffspringJitter - systems.OffspringJitter
		y := (parent.Y+partner.Y)/2 + g.rng.Float64()*2*systems.OffspringJitter - systems.OffspringJitter

		kind := g.kind(id)
		child := g.factory.Create(kind, systems.At(x, y))
		child.Age = 0
		if child.Vitals != nil {
			child.Vitals.Hunger = systems.OffspringHunger
		}
		offspring = append(offspring, child)
		g.collector.Record(telemetry.NewBirthEvent(kind))
	}

	for i := range offspring {
		g.spawn(&offspring[i])
	}
	g.recordFallbacks()
}
