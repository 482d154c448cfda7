package game

import (
	"testing"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// fixedRand always returns the same draw. 0.5 never passes the small
// retarget, flip and faeces chances.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// emptySettings returns default settings with no starting population.
func emptySettings() config.Settings {
	s := config.Default().Settings
	s.InitialSmallCarnivores = 0
	s.InitialBigCarnivores = 0
	s.InitialSmallHerbivores = 0
	s.InitialBigHerbivores = 0
	s.InitialScavengers = 0
	s.InitialInsectivores = 0
	s.LakeCount = 0
	s.PeriodicSpawning = false
	return s
}

// newTestGame starts a game on stepped time.
func newTestGame(t *testing.T, settings config.Settings, rng systems.Rand) (*Game, *SteppedTime) {
	t.Helper()
	clock := &SteppedTime{}
	g := New(Options{Seed: 1, Settings: settings, Time: clock, Rand: rng})
	g.Start()
	return g, clock
}

// put stores an entity at exactly (x, y) outside of a tick.
func (g *Game) put(kind components.Kind, x, y float64) components.Entity {
	e := g.place(g.snapshot(), kind, systems.Pinned(x, y))
	g.settle()
	return e
}

// settle rebuilds the views and stats as a committed tick would.
func (g *Game) settle() {
	g.refresh()
	g.stats = telemetry.Tally(g.entities)
}

// lookup returns the committed view of id.
func (g *Game) lookup(id uint64) (components.Entity, bool) {
	for _, e := range g.entities {
		if e.ID == id {
			return e, true
		}
	}
	return components.Entity{}, false
}

// hold points an animal's target at its own center, so the next wander step
// only picks a new target and does not move.
func (g *Game) hold(id uint64) {
	e, _ := g.lookup(id)
	cx, cy := e.Center()
	g.drive(id).SetTarget(cx, cy)
	g.settle()
}

// tickN advances the clock and ticks n times, stopping early if the run ends.
func tickN(g *Game, clock *SteppedTime, n int) int {
	for i := range n {
		clock.Advance(systems.TickInterval)
		if !g.Tick() {
			return i
		}
	}
	return n
}

func countKind(entities []components.Entity, kind components.Kind) int {
	n := 0
	for _, e := range entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
