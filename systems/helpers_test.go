package systems

import (
	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// fixedRand always returns the same draw. 0.5 never passes the small
// retarget/flip/faeces chances, and makes random targets point due west.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// seqRand replays a scripted sequence of draws, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

type kit struct {
	settings  config.Settings
	factory   *Factory
	lifecycle *Lifecycle
	behavior  *Behavior
}

func newKit(rng Rand) *kit {
	settings := config.Default().Settings
	f := NewFactory(settings, rng)
	l := NewLifecycle(f, rng, settings)
	return &kit{settings: settings, factory: f, lifecycle: l, behavior: NewBehavior(f, l, rng)}
}

// place creates an entity at exactly (x, y).
func (k *kit) place(kind components.Kind, x, y float64) components.Entity {
	return k.factory.Create(kind, Pinned(x, y))
}

// world indexes the entities and points the factory at the snapshot.
func (k *kit) world(entities ...components.Entity) *Snapshot {
	w := NewSnapshot(entities, 0)
	k.factory.Use(w)
	return w
}

func addedKinds(ch *Changes) []components.Kind {
	var kinds []components.Kind
	for _, e := range ch.Additions() {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
