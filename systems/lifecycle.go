package systems

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/telemetry"
)

// Outcome describes what a lifecycle transition did to an entity.
type Outcome uint8

const (
	Unchanged Outcome = iota // entity stays as it is
	Removed                  // entity leaves the world
	Replaced                 // entity leaves and the returned entity takes its place
)

// Lifecycle applies the decay chain to entities that outlived their maximum
// age, and the death transition to animals that die early.
type Lifecycle struct {
	factory        *Factory
	rng            Rand
	mushroomChance float64
}

// NewLifecycle creates a lifecycle engine sharing the factory's placement snapshot.
func NewLifecycle(factory *Factory, rng Rand, settings config.Settings) *Lifecycle {
	return &Lifecycle{factory: factory, rng: rng, mushroomChance: settings.MushroomChance}
}

// OnExpire returns the transition for e. world must be the snapshot the
// factory is using.
func (l *Lifecycle) OnExpire(world *Snapshot, e *components.Entity) (components.Entity, Outcome) {
	f := l.factory
	here := Replacing(e)

	switch e.Kind {
	case components.KindGrass, components.KindInsect, components.KindMushroom:
		return components.Entity{}, Removed

	case components.KindSeedling:
		// Three independent rolls; the clearance check only runs when the first one passes.
		if chance(l.rng, SeedlingTreeChance) && l.HasSpaceForTree(world, e.X, e.Y) {
			return f.Tree(here), Replaced
		}
		if chance(l.rng, SeedlingPoisonChance) {
			return f.PoisonousPlant(here), Replaced
		}
		if chance(l.rng, SeedlingPlantChance) {
			return f.Plant(here), Replaced
		}
		return components.Entity{}, Removed

	case components.KindPlant, components.KindPoisonousPlant, components.KindLog, components.KindCarcass:
		return f.Litter(here), Replaced

	case components.KindTree:
		return f.DeadTree(Pinned(e.X, e.Y)), Replaced

	case components.KindDeadTree:
		return f.Log(Pinned(e.X, e.Y)), Replaced

	case components.KindLitter:
		if chance(l.rng, l.mushroomChance) {
			return f.Mushroom(here), Replaced
		}
		return components.Entity{}, Removed

	case components.KindFaeces:
		if chance(l.rng, l.mushroomChance/2) {
			return f.Mushroom(here), Replaced
		}
		return components.Entity{}, Removed
	}

	if e.IsAnimal() {
		return f.Carcass(here), Replaced
	}
	return *e, Unchanged
}

// Apply stages the transition for e in ch. Animal deaths are recorded with cause.
func (l *Lifecycle) Apply(world *Snapshot, e *components.Entity, ch *Changes, cause telemetry.DeathCause) Outcome {
	next, outcome := l.OnExpire(world, e)
	switch outcome {
	case Removed:
		ch.Remove(e.ID)
	case Replaced:
		ch.Remove(e.ID)
		ch.Add(next)
	default:
		return outcome
	}
	if e.IsAnimal() {
		ch.Record(telemetry.NewDeathEvent(e.Kind, cause))
	}
	return outcome
}

// HasSpaceForTree approximates the clearance a tree needs by checking that a
// big box fits at each of the four diagonal offsets around (x, y).
func (l *Lifecycle) HasSpaceForTree(world *Snapshot, x, y float64) bool {
	size := components.SizeBig.Edge()
	for _, d := range [4][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if !world.IsPositionValid(x+d[0]*TreeClearance, y+d[1]*TreeClearance, size, nil, true) {
			return false
		}
	}
	return true
}
