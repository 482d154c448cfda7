// Package systems provides the simulation services: geometry, placement,
// the entity factory, lifecycle transitions and animal behavior.
package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/ecosim/components"
)

// GridCellSize is the spatial grid cell edge in world units.
const GridCellSize = 100.0

// SpatialGrid buckets snapshot slots by the cell containing their center.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int // flat grid of snapshot slots
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all slots from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a slot to the cell containing (x, y).
func (g *SpatialGrid) Insert(slot int, x, y float64) {
	col, row := g.cell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], slot)
}

// QueryInto appends every slot stored in cells that intersect the square of
// half-width reach around (x, y), in ascending slot order. Callers filter the
// candidates with an exact test.
func (g *SpatialGrid) QueryInto(dst []int, x, y, reach float64) []int {
	c0, r0 := g.cell(x-reach, y-reach)
	c1, r1 := g.cell(x+reach, y+reach)

	start := len(dst)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	slices.Sort(dst[start:])
	return dst
}

// cell returns the clamped column and row for a world position.
func (g *SpatialGrid) cell(x, y float64) (int, int) {
	col := int(math.Floor(x / g.cellSize))
	row := int(math.Floor(y / g.cellSize))
	return min(max(col, 0), g.cols-1), min(max(row, 0), g.rows-1)
}

// Snapshot is an immutable view of the world at the start of a tick. All
// reads made while processing a tick go through it.
type Snapshot struct {
	entities   []components.Entity
	lakes      []components.Entity
	grid       *SpatialGrid
	lakeBuffer float64
	scratch    []int
}

// NewSnapshot indexes entities. The slice is retained and must not be
// modified afterwards.
func NewSnapshot(entities []components.Entity, lakeBuffer float64) *Snapshot {
	s := &Snapshot{
		entities:   entities,
		grid:       NewSpatialGrid(WorldSize, WorldSize, GridCellSize),
		lakeBuffer: lakeBuffer,
	}
	for i := range entities {
		s.index(i)
	}
	return s
}

// Add appends an entity to the snapshot. Used while laying out the initial
// population, where each placement must see the ones before it.
func (s *Snapshot) Add(e components.Entity) {
	s.entities = append(s.entities, e)
	s.index(len(s.entities) - 1)
}

func (s *Snapshot) index(slot int) {
	e := &s.entities[slot]
	cx, cy := e.Center()
	s.grid.Insert(slot, cx, cy)
	if e.Kind == components.KindLake {
		s.lakes = append(s.lakes, *e)
	}
}

// Entities returns the indexed entities. Callers must not modify them.
func (s *Snapshot) Entities() []components.Entity { return s.entities }

// Nearby returns the entities of the given kinds whose center lies within
// radius of self's center, excluding self. An empty kind set matches every kind.
func (s *Snapshot) Nearby(self *components.Entity, radius float64, kinds components.KindSet) []components.Entity {
	var out []components.Entity
	s.eachNear(self, radius, kinds, func(e *components.Entity, _ float64) {
		out = append(out, *e)
	})
	return out
}

// Nearest returns the closest entity accepted by keep among those Nearby
// would return. Ties go to the lowest id.
func (s *Snapshot) Nearest(self *components.Entity, radius float64, kinds components.KindSet, keep func(*components.Entity) bool) (components.Entity, float64, bool) {
	best, bestDist, found := components.Entity{}, math.Inf(1), false
	s.eachNear(self, radius, kinds, func(e *components.Entity, d float64) {
		if keep != nil && !keep(e) {
			return
		}
		if d < bestDist || (d == bestDist && e.ID < best.ID) {
			best, bestDist, found = *e, d, true
		}
	})
	return best, bestDist, found
}

func (s *Snapshot) eachNear(self *components.Entity, radius float64, kinds components.KindSet, fn func(*components.Entity, float64)) {
	cx, cy := self.Center()
	s.scratch = s.grid.QueryInto(s.scratch[:0], cx, cy, radius)
	for _, slot := range s.scratch {
		e := &s.entities[slot]
		if e.ID == self.ID {
			continue
		}
		if !kinds.Empty() && !kinds.Has(e.Kind) {
			continue
		}
		ex, ey := e.Center()
		if d := distance(cx, cy, ex, ey); d <= radius {
			fn(e, d)
		}
	}
}

// IsPositionValid reports whether a box of the given size may occupy (x, y):
// inside the world, clear of lakes when checkLakes is set, and not overlapping
// any solid entity other than those listed in exclude.
func (s *Snapshot) IsPositionValid(x, y, size float64, exclude []uint64, checkLakes bool) bool {
	if !IsInsideWorld(x, y, size) {
		return false
	}
	if checkLakes && OverlapsLake(x, y, size, s.lakes, s.lakeBuffer) {
		return false
	}

	half := size / 2
	reach := half + components.SizeBig.Edge()/2
	s.scratch = s.grid.QueryInto(s.scratch[:0], x+half, y+half, reach)
	for _, slot := range s.scratch {
		e := &s.entities[slot]
		if e.CanWalkOver || slices.Contains(exclude, e.ID) {
			continue
		}
		if BoxOverlaps(x, y, size, e.X, e.Y, e.Edge()) {
			return false
		}
	}
	return true
}

// OverlapsLake reports whether the box intersects a lake in the snapshot.
func (s *Snapshot) OverlapsLake(x, y, size float64) bool {
	return OverlapsLake(x, y, size, s.lakes, s.lakeBuffer)
}

// Spot describes where a new entity would like to go.
type Spot struct {
	X, Y      float64
	Preferred bool   // try (X, Y) first
	Pinned    bool   // use (X, Y) without validation
	Ignore    uint64 // entity that does not block placement (0 = none)
}

// Anywhere lets placement pick a random valid position.
var Anywhere = Spot{}

// At prefers (x, y) and falls back to a random valid position.
func At(x, y float64) Spot { return Spot{X: x, Y: y, Preferred: true} }

// Pinned places exactly at (x, y).
func Pinned(x, y float64) Spot { return Spot{X: x, Y: y, Preferred: true, Pinned: true} }

// Replacing prefers the position of e and ignores e itself, which is about
// to leave the world.
func Replacing(e *components.Entity) Spot {
	return Spot{X: e.X, Y: e.Y, Preferred: true, Ignore: e.ID}
}

// FindValidPosition searches for a valid top-left corner for a box of the
// given size. It tries the preferred point, then PlacementAttempts random
// points, then a raster scan with ScanStride spacing. When everything fails
// it returns (0, 0) and ok=false; the caller places the entity there anyway.
func (s *Snapshot) FindValidPosition(rng Rand, size float64, at Spot, avoidLakes bool) (x, y float64, ok bool) {
	if at.Pinned {
		return at.X, at.Y, true
	}
	var exclude []uint64
	if at.Ignore != 0 {
		exclude = []uint64{at.Ignore}
	}

	if at.Preferred && s.IsPositionValid(at.X, at.Y, size, exclude, avoidLakes) {
		return at.X, at.Y, true
	}

	span := WorldSize - size
	for range PlacementAttempts {
		x := math.Floor(rng.Float64() * span)
		y := math.Floor(rng.Float64() * span)
		if s.IsPositionValid(x, y, size, exclude, avoidLakes) {
			return x, y, true
		}
	}

	for y := 0.0; y < span; y += ScanStride {
		for x := 0.0; x < span; x += ScanStride {
			if s.IsPositionValid(x, y, size, exclude, avoidLakes) {
				return x, y, true
			}
		}
	}

	return 0, 0, false
}
