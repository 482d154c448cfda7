package game

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/systems"
)

// spawn stores e in the ECS world. Animals get Vitals and Drive, everything
// else only the four shared components.
func (g *Game) spawn(e *components.Entity) ecs.Entity {
	id, body, life, mat := e.Parts()

	var entity ecs.Entity
	if e.Vitals != nil && e.Drive != nil {
		vitals, drive := *e.Vitals, *e.Drive
		entity = g.animalMapper.NewEntity(&id, &body, &life, &mat, &vitals, &drive)
	} else {
		entity = g.staticMapper.NewEntity(&id, &body, &life, &mat)
	}
	g.index[e.ID] = entity
	return entity
}

// remove deletes the entity with the given id. Unknown ids are ignored.
func (g *Game) remove(id uint64) bool {
	entity, ok := g.index[id]
	if !ok {
		return false
	}
	delete(g.index, id)
	if g.world.Alive(entity) {
		g.world.RemoveEntity(entity)
	}
	return true
}

// store writes the mutable parts of e back to its stored components.
func (g *Game) store(e *components.Entity) bool {
	entity, ok := g.index[e.ID]
	if !ok || !g.world.Alive(entity) {
		return false
	}
	_, body, life, _ := g.staticMapper.Get(entity)
	body.X, body.Y, body.Facing = e.X, e.Y, e.Facing
	life.Age = e.Age

	if e.Vitals != nil && g.vitalsMap.Has(entity) {
		*g.vitalsMap.Get(entity) = *e.Vitals
	}
	if e.Drive != nil && g.driveMap.Has(entity) {
		*g.driveMap.Get(entity) = *e.Drive
	}
	return true
}

// body returns the stored body of an entity. The id must be known.
func (g *Game) body(id uint64) components.Body {
	_, body, _, _ := g.staticMapper.Get(g.index[id])
	return *body
}

// kind returns the stored kind of an entity. The id must be known.
func (g *Game) kind(id uint64) components.Kind {
	ident, _, _, _ := g.staticMapper.Get(g.index[id])
	return ident.Kind
}

// drive returns the stored drive of an animal, or nil.
func (g *Game) drive(id uint64) *components.Drive {
	entity, ok := g.index[id]
	if !ok || !g.driveMap.Has(entity) {
		return nil
	}
	return g.driveMap.Get(entity)
}

// vitals returns the stored vitals of an animal, or nil.
func (g *Game) vitals(id uint64) *components.Vitals {
	entity, ok := g.index[id]
	if !ok || !g.vitalsMap.Has(entity) {
		return nil
	}
	return g.vitalsMap.Get(entity)
}

// collect assembles a view of every stored entity, ordered by id.
func (g *Game) collect() []components.Entity {
	out := make([]components.Entity, 0, len(g.index))

	query := g.entityFilter.Query()
	for query.Next() {
		entity := query.Entity()
		id, body, life, mat := query.Get()

		var vitals *components.Vitals
		var drive *components.Drive
		if g.vitalsMap.Has(entity) {
			vitals = g.vitalsMap.Get(entity)
		}
		if g.driveMap.Has(entity) {
			drive = g.driveMap.Get(entity)
		}
		out = append(out, components.Assemble(id, body, life, mat, vitals, drive))
	}

	slices.SortFunc(out, func(a, b components.Entity) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// snapshot indexes the committed entity set for reading during a tick and
// points the factory at it.
func (g *Game) snapshot() *systems.Snapshot {
	snap := systems.NewSnapshot(g.collect(), g.opts.LakeBuffer)
	g.factory.Use(snap)
	return snap
}

// place creates an entity of kind at the given spot and stores it right
// away, outside the tick's staged changes.
func (g *Game) place(snap *systems.Snapshot, kind components.Kind, at systems.Spot) components.Entity {
	e := g.factory.Create(kind, at)
	g.spawn(&e)
	snap.Add(e)
	return e
}

// refresh rebuilds the views after a commit.
func (g *Game) refresh() {
	g.entities = g.collect()
	g.sorted = nil
}
