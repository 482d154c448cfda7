package systems

import (
	"log/slog"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// Factory builds entities with the defaults their kind prescribes. It is the
// only place ids are allocated.
type Factory struct {
	settings  config.Settings
	rng       Rand
	world     *Snapshot
	nextID    uint64
	fallbacks int
	pending   []components.Kind
}

// NewFactory creates a factory. Ids start at 1.
func NewFactory(settings config.Settings, rng Rand) *Factory {
	return &Factory{settings: settings, rng: rng, nextID: 1}
}

// Use sets the snapshot placement is validated against.
func (f *Factory) Use(world *Snapshot) { f.world = world }

// Fallbacks returns how many placements ended at the (0, 0) fallback.
func (f *Factory) Fallbacks() int { return f.fallbacks }

// TakeFallbacks returns the kinds placed at the fallback since the last call.
func (f *Factory) TakeFallbacks() []components.Kind {
	out := f.pending
	f.pending = nil
	return out
}

// MaxAge returns the lifespan of kind under the factory's settings. The
// second result is false for kinds that never expire.
func (f *Factory) MaxAge(kind components.Kind) (float64, bool) {
	info := kind.Info()
	switch info.Lifespan {
	case components.LifespanFixed:
		return info.FixedLifespan, true
	case components.LifespanGrass:
		return f.settings.GrassFreshness, true
	case components.LifespanCarcass:
		return f.settings.CarcassFreshness, true
	case components.LifespanInsect:
		return f.settings.InsectLifespan, true
	default:
		return 0, false
	}
}

// Create builds an entity of the given kind placed according to at.
func (f *Factory) Create(kind components.Kind, at Spot) components.Entity {
	if f.world == nil {
		f.world = NewSnapshot(nil, 0)
	}
	info := kind.Info()

	x, y, ok := f.world.FindValidPosition(f.rng, info.Size.Edge(), at, info.AvoidLakes)
	if !ok {
		f.fallbacks++
		f.pending = append(f.pending, kind)
		slog.Warn("placement exhausted", "kind", kind.String(), "size", info.Size.String())
	}

	id := f.nextID
	f.nextID++

	facing := components.FacingRight
	if chance(f.rng, 0.5) {
		facing = components.FacingLeft
	}
	maxAge, mortal := f.MaxAge(kind)

	e := components.Entity{
		ID:          id,
		Kind:        kind,
		Category:    info.Category,
		Size:        info.Size,
		X:           x,
		Y:           y,
		Facing:      facing,
		MaxAge:      maxAge,
		Mortal:      mortal,
		FoodValue:   info.FoodValue,
		CanWalkOver: info.CanWalkOver,
		Renewable:   info.Renewable,
	}
	if info.Category == components.CategoryAnimal {
		e.Vitals = &components.Vitals{Health: 100, Speed: info.Speed}
		e.Drive = &components.Drive{}
	}
	return e
}

// Grass creates a grass tuft.
func (f *Factory) Grass(at Spot) components.Entity {
	return f.Create(components.KindGrass, at)
}

// Seedling creates a seedling.
func (f *Factory) Seedling(at Spot) components.Entity {
	return f.Create(components.KindSeedling, at)
}

// Plant creates an edible plant.
func (f *Factory) Plant(at Spot) components.Entity {
	return f.Create(components.KindPlant, at)
}

// PoisonousPlant creates a plant that kills herbivores that eat it.
func (f *Factory) PoisonousPlant(at Spot) components.Entity {
	return f.Create(components.KindPoisonousPlant, at)
}

// Tree creates a live tree.
func (f *Factory) Tree(at Spot) components.Entity {
	return f.Create(components.KindTree, at)
}

// DeadTree creates a dead tree.
func (f *Factory) DeadTree(at Spot) components.Entity {
	return f.Create(components.KindDeadTree, at)
}

// Log creates a fallen log.
func (f *Factory) Log(at Spot) components.Entity {
	return f.Create(components.KindLog, at)
}

// Litter creates leaf litter.
func (f *Factory) Litter(at Spot) components.Entity {
	return f.Create(components.KindLitter, at)
}

// Mushroom creates a mushroom.
func (f *Factory) Mushroom(at Spot) components.Entity {
	return f.Create(components.KindMushroom, at)
}

// Insect creates an insect.
func (f *Factory) Insect(at Spot) components.Entity {
	return f.Create(components.KindInsect, at)
}

// Insectivore creates an insectivore.
func (f *Factory) Insectivore(at Spot) components.Entity {
	return f.Create(components.KindInsectivore, at)
}

// SmallCarnivore creates a small carnivore.
func (f *Factory) SmallCarnivore(at Spot) components.Entity {
	return f.Create(components.KindSmallCarnivore, at)
}

// BigCarnivore creates a big carnivore.
func (f *Factory) BigCarnivore(at Spot) components.Entity {
	return f.Create(components.KindBigCarnivore, at)
}

// SmallHerbivore creates a small herbivore.
func (f *Factory) SmallHerbivore(at Spot) components.Entity {
	return f.Create(components.KindSmallHerbivore, at)
}

// BigHerbivore creates a big herbivore.
func (f *Factory) BigHerbivore(at Spot) components.Entity {
	return f.Create(components.KindBigHerbivore, at)
}

// Scavenger creates a scavenger.
func (f *Factory) Scavenger(at Spot) components.Entity {
	return f.Create(components.KindScavenger, at)
}

// Carcass creates a carcass.
func (f *Factory) Carcass(at Spot) components.Entity {
	return f.Create(components.KindCarcass, at)
}

// Faeces creates a dropping.
func (f *Factory) Faeces(at Spot) components.Entity {
	return f.Create(components.KindFaeces, at)
}

// Lake creates a lake.
func (f *Factory) Lake(at Spot) components.Entity {
	return f.Create(components.KindLake, at)
}
