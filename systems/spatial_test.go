package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/ecosim/components"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		ax, ay, as, bx, by, bs float64
		want                   bool
	}{
		{"identical", 0, 0, 48, 0, 0, 48, true},
		{"partial", 0, 0, 48, 40, 40, 24, true},
		{"contained", 0, 0, 72, 10, 10, 24, true},
		{"touching right edge", 0, 0, 48, 48, 0, 48, false},
		{"touching bottom edge", 0, 0, 48, 0, 48, 48, false},
		{"touching corner", 0, 0, 48, 48, 48, 48, false},
		{"apart", 0, 0, 24, 100, 100, 24, false},
		{"one unit overlap", 0, 0, 48, 47, 0, 48, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoxOverlaps(tt.ax, tt.ay, tt.as, tt.bx, tt.by, tt.bs); got != tt.want {
				t.Errorf("BoxOverlaps = %v, want %v", got, tt.want)
			}
			// symmetric
			if got := BoxOverlaps(tt.bx, tt.by, tt.bs, tt.ax, tt.ay, tt.as); got != tt.want {
				t.Errorf("BoxOverlaps (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInsideWorld(t *testing.T) {
	tests := []struct {
		name    string
		x, y, s float64
		want    bool
	}{
		{"origin", 0, 0, 48, true},
		{"flush bottom right", 752, 752, 48, true},
		{"past right edge", 753, 0, 48, false},
		{"past bottom edge", 0, 729, 72, false},
		{"negative x", -1, 0, 24, false},
		{"negative y", 0, -0.5, 24, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInsideWorld(tt.x, tt.y, tt.s); got != tt.want {
				t.Errorf("IsInsideWorld(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.s, got, tt.want)
			}
		})
	}
}

func TestOverlapsLakeUsesFootprint(t *testing.T) {
	lake := []components.Entity{{Kind: components.KindLake, Size: components.SizeBig, X: 100, Y: 100}}

	// The lake is drawn 72 wide but only its 48-unit footprint counts.
	if OverlapsLake(150, 100, 24, lake, 0) {
		t.Error("box beyond the 48-unit footprint should not overlap")
	}
	if !OverlapsLake(140, 100, 24, lake, 0) {
		t.Error("box inside the footprint should overlap")
	}
	if !OverlapsLake(150, 100, 24, lake, 5) {
		t.Error("buffer should grow the footprint")
	}
}

func TestIsPositionValid(t *testing.T) {
	k := newKit(fixedRand(0.5))
	tree := k.place(components.KindTree, 200, 200)
	grass := k.place(components.KindGrass, 400, 400)
	lake := k.place(components.KindLake, 600, 600)
	w := k.world(tree, grass, lake)

	tests := []struct {
		name       string
		x, y, size float64
		exclude    []uint64
		checkLakes bool
		want       bool
	}{
		{"open ground", 50, 50, 48, nil, true, true},
		{"on a tree", 210, 210, 48, nil, true, false},
		{"touching a tree", 152, 200, 48, nil, true, true},
		{"tree excluded", 210, 210, 48, []uint64{tree.ID}, true, true},
		{"on grass", 400, 400, 48, nil, true, true},
		{"in lake footprint", 610, 610, 24, nil, true, false},
		{"lake still solid without lake check", 610, 610, 24, nil, false, false},
		{"outside world", 780, 0, 48, nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.IsPositionValid(tt.x, tt.y, tt.size, tt.exclude, tt.checkLakes); got != tt.want {
				t.Errorf("IsPositionValid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNearbyMatchesLinearScan(t *testing.T) {
	rng := NewRand(7)
	k := newKit(rng)
	var entities []components.Entity
	kinds := components.Kinds()
	for range 300 {
		kind := kinds[Pick(rng, len(kinds))]
		entities = append(entities, k.place(kind, rng.Float64()*750, rng.Float64()*750))
	}
	w := k.world(entities...)

	for _, radius := range []float64{20, 100, 150, 300, 500} {
		for i := 0; i < len(entities); i += 17 {
			self := &entities[i]
			got := w.Nearby(self, radius, 0)

			var want []uint64
			sx, sy := self.Center()
			for j := range entities {
				o := &entities[j]
				ox, oy := o.Center()
				if o.ID != self.ID && math.Hypot(sx-ox, sy-oy) <= radius {
					want = append(want, o.ID)
				}
			}

			if len(got) != len(want) {
				t.Fatalf("radius %v around %d: got %d entities, want %d", radius, self.ID, len(got), len(want))
			}
			for n := range got {
				if got[n].ID != want[n] {
					t.Fatalf("radius %v around %d: order differs at %d", radius, self.ID, n)
				}
			}
		}
	}
}

func TestNearestFiltersKinds(t *testing.T) {
	k := newKit(fixedRand(0.5))
	self := k.place(components.KindSmallHerbivore, 100, 100)
	far := k.place(components.KindGrass, 160, 100)
	near := k.place(components.KindGrass, 130, 100)
	rock := k.place(components.KindLog, 110, 100)
	w := k.world(self, far, near, rock)

	got, dist, ok := w.Nearest(&self, 100, components.SetOf(components.KindGrass), nil)
	if !ok || got.ID != near.ID {
		t.Fatalf("Nearest = %v (ok=%v), want id %d", got.ID, ok, near.ID)
	}
	if dist != 30 {
		t.Errorf("dist = %v, want 30", dist)
	}

	skipNear := func(e *components.Entity) bool { return e.ID != near.ID }
	got, _, ok = w.Nearest(&self, 100, components.SetOf(components.KindGrass), skipNear)
	if !ok || got.ID != far.ID {
		t.Errorf("Nearest with filter = %v, want id %d", got.ID, far.ID)
	}
}

func TestFindValidPosition(t *testing.T) {
	t.Run("preferred spot", func(t *testing.T) {
		k := newKit(fixedRand(0.5))
		w := k.world()
		x, y, ok := w.FindValidPosition(fixedRand(0.5), 48, At(10, 20), true)
		if !ok || x != 10 || y != 20 {
			t.Errorf("got (%v, %v, %v), want (10, 20, true)", x, y, ok)
		}
	})

	t.Run("random spot when preferred is blocked", func(t *testing.T) {
		k := newKit(fixedRand(0.5))
		w := k.world(k.place(components.KindDeadTree, 0, 0))
		x, y, ok := w.FindValidPosition(fixedRand(0.25), 48, At(10, 10), true)
		if !ok || x != 188 || y != 188 {
			t.Errorf("got (%v, %v, %v), want (188, 188, true)", x, y, ok)
		}
	})

	t.Run("raster scan when random draws fail", func(t *testing.T) {
		k := newKit(fixedRand(0.5))
		// A single log where every random draw lands.
		blocker := k.place(components.KindLog, 376, 376)
		w := k.world(blocker)
		x, y, ok := w.FindValidPosition(fixedRand(0.5), 48, Anywhere, true)
		if !ok || x != 0 || y != 0 {
			t.Errorf("got (%v, %v, %v), want scan result (0, 0, true)", x, y, ok)
		}
	})

	t.Run("ignored entity does not block", func(t *testing.T) {
		k := newKit(fixedRand(0.5))
		log := k.place(components.KindLog, 300, 300)
		w := k.world(log)
		x, y, ok := w.FindValidPosition(fixedRand(0.5), 48, Replacing(&log), true)
		if !ok || x != 300 || y != 300 {
			t.Errorf("got (%v, %v, %v), want (300, 300, true)", x, y, ok)
		}
	})

	t.Run("exhausted world falls back to origin", func(t *testing.T) {
		k := newKit(fixedRand(0.5))
		var trees []components.Entity
		for row := 0.0; row < WorldSize; row += 72 {
			for col := 0.0; col < WorldSize; col += 72 {
				trees = append(trees, k.place(components.KindTree, col, row))
			}
		}
		w := k.world(trees...)
		x, y, ok := w.FindValidPosition(NewRand(1), 24, Anywhere, true)
		if ok {
			t.Fatalf("expected exhaustion, got (%v, %v)", x, y)
		}
		if x != 0 || y != 0 {
			t.Errorf("fallback = (%v, %v), want (0, 0)", x, y)
		}
	})
}

func TestRandomPlacementStaysInBounds(t *testing.T) {
	rng := NewRand(3)
	k := newKit(rng)
	w := k.world()
	for _, kind := range components.Kinds() {
		for range 10 {
			e := k.factory.Create(kind, Anywhere)
			if !IsInsideWorld(e.X, e.Y, e.Edge()) {
				t.Fatalf("%v placed out of bounds at (%v, %v)", kind, e.X, e.Y)
			}
			w.Add(e)
		}
	}
	if k.factory.Fallbacks() != 0 {
		t.Errorf("unexpected placement fallbacks: %d", k.factory.Fallbacks())
	}
}

func TestNoSolidOverlapAfterPlacement(t *testing.T) {
	rng := NewRand(11)
	k := newKit(rng)
	w := k.world()
	solid := []components.Kind{components.KindTree, components.KindDeadTree, components.KindLog, components.KindLake}
	for i := range 40 {
		w.Add(k.factory.Create(solid[i%len(solid)], Anywhere))
	}

	es := w.Entities()
	for i := range es {
		for j := i + 1; j < len(es); j++ {
			a, b := &es[i], &es[j]
			if a.CanWalkOver || b.CanWalkOver {
				continue
			}
			if BoxOverlaps(a.X, a.Y, a.Edge(), b.X, b.Y, b.Edge()) {
				t.Fatalf("%v %d overlaps %v %d", a.Kind, a.ID, b.Kind, b.ID)
			}
		}
	}
}
