package game

import (
	"math"
	"testing"

	"github.com/pthm-cable/ecosim/components"
)

func TestSpawnPeriodicGrass(t *testing.T) {
	tests := []struct {
		name          string
		draw          float64
		existing      int
		wantGrass     int
		wantSeedlings int
	}{
		{"grass roll spawns grass", 0.5, 0, 1, 0},
		{"grass roll ignores grass count", 0.79, 11, 12, 0},
		{"seedling needs more than ten grass", 0.9, 10, 10, 0},
		{"seedling near existing grass", 0.9, 11, 11, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, emptySettings(), fixedRand(tt.draw))
			for i := range tt.existing {
				g.put(components.KindGrass, 50+30*float64(i), 100)
			}

			g.spawnPeriodic(g.snapshot(), 10000)
			g.settle()

			entities := g.Entities()
			if n := countKind(entities, components.KindGrass); n != tt.wantGrass {
				t.Errorf("grass = %d, want %d", n, tt.wantGrass)
			}
			if n := countKind(entities, components.KindSeedling); n != tt.wantSeedlings {
				t.Errorf("seedlings = %d, want %d", n, tt.wantSeedlings)
			}
			if n := countKind(entities, components.KindInsect); n != 0 {
				t.Errorf("insects = %d with periodic spawning off", n)
			}
		})
	}
}

func TestSeedlingJitter(t *testing.T) {
	g, _ := newTestGame(t, emptySettings(), fixedRand(0.9))
	for i := range 11 {
		g.put(components.KindGrass, 50+30*float64(i), 100)
	}

	g.spawnPeriodic(g.snapshot(), 10000)
	g.settle()

	// Draw 0.9 picks the tenth grass, at (320, 100), and offsets both axes
	// by 0.9*64 - 32.
	for _, e := range g.Entities() {
		if e.Kind != components.KindSeedling {
			continue
		}
		if math.Abs(e.X-345.6) > 1e-9 || math.Abs(e.Y-125.6) > 1e-9 {
			t.Errorf("seedling at (%v, %v), want (345.6, 125.6)", e.X, e.Y)
		}
		return
	}
	t.Fatal("no seedling spawned")
}

func TestSpawnPeriodicInsect(t *testing.T) {
	s := emptySettings()
	s.PeriodicSpawning = true
	g, _ := newTestGame(t, s, fixedRand(0.5))

	g.spawnPeriodic(g.snapshot(), 10000)
	g.settle()

	if n := countKind(g.Entities(), components.KindInsect); n != 1 {
		t.Errorf("insects = %d, want 1", n)
	}
}

func TestSpawnPeriodicWaitsForTimer(t *testing.T) {
	g, _ := newTestGame(t, emptySettings(), fixedRand(0.5))

	g.spawnPeriodic(g.snapshot(), 100)
	g.settle()

	if n := len(g.Entities()); n != 0 {
		t.Errorf("entities = %d before the grass period elapsed, want 0", n)
	}
}
