package telemetry

import (
	"testing"

	"github.com/pthm-cable/ecosim/components"
)

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(1.0)

	c.RecordAll([]Event{
		NewBirthEvent(components.KindSmallHerbivore),
		NewSpawnEvent(components.KindGrass),
		NewSpawnEvent(components.KindInsect),
		NewMealEvent(components.KindScavenger),
		NewDrinkEvent(components.KindBigHerbivore),
		NewMatingEvent(components.KindSmallHerbivore),
		NewPlacementFallbackEvent(components.KindTree),
		NewDeathEvent(components.KindInsect, CauseOldAge),
		NewDeathEvent(components.KindBigCarnivore, CauseStarvation),
		NewDeathEvent(components.KindScavenger, CauseDehydration),
		NewDeathEvent(components.KindSmallHerbivore, CausePredation),
		NewDeathEvent(components.KindSmallHerbivore, CausePoisoning),
	})

	if c.ShouldFlush(999) {
		t.Fatal("window flushed early")
	}
	if !c.ShouldFlush(1000) {
		t.Fatal("window did not flush at its end")
	}

	pop := SimulationStats{Plants: 3, Animals: 2}
	w := c.Flush(1000, 60, pop)

	want := WindowStats{
		WindowStartMS: 0, WindowEndMS: 1000, Tick: 60,
		SimulationStats: pop,
		Births:          1, Spawns: 2, Deaths: 5,
		OldAge: 1, Starved: 1, Parched: 1, Eaten: 1, Poisoned: 1,
		Meals: 1, Drinks: 1, Matings: 1, Fallbacks: 1,
	}
	if w != want {
		t.Errorf("Flush = %+v\nwant %+v", w, want)
	}

	if c.ShouldFlush(1500) {
		t.Error("next window should start at the flush time")
	}
	next := c.Flush(2000, 120, pop)
	if next.WindowStartMS != 1000 || next.Deaths != 0 || next.Births != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorDefaultsWindow(t *testing.T) {
	c := NewCollector(0)
	if !c.ShouldFlush(1000) || c.ShouldFlush(500) {
		t.Error("non-positive window should default to one second")
	}
}
