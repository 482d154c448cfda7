package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/telemetry"
)

func TestSeedlingOutcomeDistribution(t *testing.T) {
	const trials = 20000
	k := newKit(NewRand(42))
	w := k.world()

	counts := make(map[components.Kind]int)
	removed := 0
	for range trials {
		seedling := k.place(components.KindSeedling, 300, 300)
		next, outcome := k.lifecycle.OnExpire(w, &seedling)
		switch outcome {
		case Removed:
			removed++
		case Replaced:
			counts[next.Kind]++
		default:
			t.Fatalf("unexpected outcome %v", outcome)
		}
	}

	want := map[string]float64{
		"tree":            0.10,
		"poisonous_plant": 0.90 * 0.05,
		"plant":           0.90 * 0.95 * 0.50,
		"removed":         0.90 * 0.95 * 0.50,
	}
	got := map[string]float64{
		"tree":            float64(counts[components.KindTree]) / trials,
		"poisonous_plant": float64(counts[components.KindPoisonousPlant]) / trials,
		"plant":           float64(counts[components.KindPlant]) / trials,
		"removed":         float64(removed) / trials,
	}
	for name, p := range want {
		if math.Abs(got[name]-p) > 0.015 {
			t.Errorf("%s frequency = %.4f, want %.4f", name, got[name], p)
		}
	}
}

func TestSeedlingWithoutRoomSkipsTree(t *testing.T) {
	// Two facing draws for the placements below, then: tree roll passes,
	// poison roll fails, plant roll passes, facing of the plant.
	k := newKit(&seqRand{vals: []float64{0.5, 0.5, 0.0, 0.99, 0.0, 0.5}})
	seedling := k.place(components.KindSeedling, 300, 300)
	w := k.world(seedling, k.place(components.KindDeadTree, 360, 300))

	if k.lifecycle.HasSpaceForTree(w, 300, 300) {
		t.Fatal("dead tree should block the clearance check")
	}
	next, outcome := k.lifecycle.OnExpire(w, &seedling)
	if outcome != Replaced || next.Kind != components.KindPlant {
		t.Fatalf("got %v %v, want plant", outcome, next.Kind)
	}
	if next.X != 300 || next.Y != 300 {
		t.Errorf("plant at (%v, %v), want (300, 300)", next.X, next.Y)
	}
}

func TestTreeDecayChainKeepsPosition(t *testing.T) {
	k := newKit(fixedRand(0.5))
	current := k.place(components.KindTree, 200, 300)

	for _, want := range []components.Kind{components.KindDeadTree, components.KindLog, components.KindLitter} {
		w := k.world(current)
		next, outcome := k.lifecycle.OnExpire(w, &current)
		if outcome != Replaced {
			t.Fatalf("%v: outcome %v, want Replaced", current.Kind, outcome)
		}
		if next.Kind != want {
			t.Fatalf("%v became %v, want %v", current.Kind, next.Kind, want)
		}
		if next.X != 200 || next.Y != 300 {
			t.Fatalf("%v placed at (%v, %v), want (200, 300)", next.Kind, next.X, next.Y)
		}
		if next.Age != 0 || next.ID == current.ID {
			t.Fatalf("%v should be a fresh entity", next.Kind)
		}
		current = next
	}
}

func TestTreeTransitionsIgnoreCrowding(t *testing.T) {
	k := newKit(fixedRand(0.5))
	tree := k.place(components.KindTree, 200, 300)
	w := k.world(tree, k.place(components.KindLog, 210, 310))

	next, _ := k.lifecycle.OnExpire(w, &tree)
	if next.Kind != components.KindDeadTree || next.X != 200 || next.Y != 300 {
		t.Errorf("got %v at (%v, %v), want dead_tree at (200, 300)", next.Kind, next.X, next.Y)
	}
}

func TestDecomposition(t *testing.T) {
	mushroom := newKit(fixedRand(0.5)).settings.MushroomChance

	tests := []struct {
		name string
		kind components.Kind
		draw float64
		want components.Kind // KindLake stands for "removed"
	}{
		{"litter sprouts", components.KindLitter, 0, components.KindMushroom},
		{"litter vanishes", components.KindLitter, 0.99, components.KindLake},
		{"litter below chance", components.KindLitter, mushroom * 0.75, components.KindMushroom},
		{"faeces uses half chance", components.KindFaeces, mushroom * 0.75, components.KindLake},
		{"faeces sprouts", components.KindFaeces, mushroom * 0.25, components.KindMushroom},
		{"plant rots", components.KindPlant, 0.5, components.KindLitter},
		{"poisonous plant rots", components.KindPoisonousPlant, 0.5, components.KindLitter},
		{"carcass rots", components.KindCarcass, 0.5, components.KindLitter},
		{"grass vanishes", components.KindGrass, 0.5, components.KindLake},
		{"mushroom vanishes", components.KindMushroom, 0.5, components.KindLake},
		{"insect vanishes", components.KindInsect, 0.5, components.KindLake},
		{"animal leaves a carcass", components.KindScavenger, 0.5, components.KindCarcass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := newKit(fixedRand(tt.draw))
			e := k.place(tt.kind, 120, 240)
			w := k.world(e)

			next, outcome := k.lifecycle.OnExpire(w, &e)
			if tt.want == components.KindLake {
				if outcome != Removed {
					t.Errorf("outcome = %v, want Removed", outcome)
				}
				return
			}
			if outcome != Replaced || next.Kind != tt.want {
				t.Fatalf("got %v %v, want %v", outcome, next.Kind, tt.want)
			}
			if next.X != 120 || next.Y != 240 {
				t.Errorf("%v at (%v, %v), want (120, 240)", next.Kind, next.X, next.Y)
			}
		})
	}
}

func TestLakesNeverChange(t *testing.T) {
	k := newKit(fixedRand(0.5))
	lake := k.place(components.KindLake, 400, 400)
	w := k.world(lake)

	if _, outcome := k.lifecycle.OnExpire(w, &lake); outcome != Unchanged {
		t.Errorf("outcome = %v, want Unchanged", outcome)
	}
}

func TestApplyStagesTransition(t *testing.T) {
	k := newKit(fixedRand(0.5))
	herbivore := k.place(components.KindBigHerbivore, 500, 100)
	w := k.world(herbivore)
	ch := NewChanges()

	if got := k.lifecycle.Apply(w, &herbivore, ch, telemetry.CauseStarvation); got != Replaced {
		t.Fatalf("Apply = %v, want Replaced", got)
	}
	if !ch.Removed(herbivore.ID) {
		t.Error("herbivore not queued for removal")
	}
	added := ch.Additions()
	if len(added) != 1 || added[0].Kind != components.KindCarcass {
		t.Fatalf("additions = %v, want one carcass", addedKinds(ch))
	}
	if added[0].X != 500 || added[0].Y != 100 {
		t.Errorf("carcass at (%v, %v), want (500, 100)", added[0].X, added[0].Y)
	}
	events := ch.Events()
	if len(events) != 1 || events[0] != telemetry.NewDeathEvent(components.KindBigHerbivore, telemetry.CauseStarvation) {
		t.Errorf("events = %+v", events)
	}
}
