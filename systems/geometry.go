package systems

import (
	"math"

	"github.com/pthm-cable/ecosim/components"
)

// BoxOverlaps reports whether two axis-aligned squares intersect. Boxes that
// only touch along an edge do not overlap.
func BoxOverlaps(ax, ay, asize, bx, by, bsize float64) bool {
	return ax < bx+bsize && ax+asize > bx &&
		ay < by+bsize && ay+asize > by
}

// IsInsideWorld reports whether a box of the given size at (x, y) lies fully
// within the world.
func IsInsideWorld(x, y, size float64) bool {
	return x >= 0 && y >= 0 && x+size <= WorldSize && y+size <= WorldSize
}

// OverlapsLake reports whether the box intersects the footprint of any lake,
// grown by buffer on every side.
func OverlapsLake(x, y, size float64, lakes []components.Entity, buffer float64) bool {
	for i := range lakes {
		l := &lakes[i]
		if x < l.X+LakeFootprint+buffer && x+size > l.X-buffer &&
			y < l.Y+LakeFootprint+buffer && y+size > l.Y-buffer {
			return true
		}
	}
	return false
}

// distance returns the Euclidean distance between two points.
func distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}

// centerDistance returns the distance between the centers of two entities.
func centerDistance(a, b *components.Entity) float64 {
	ax, ay := a.Center()
	bx, by := b.Center()
	return distance(ax, ay, bx, by)
}

// lakeCenter returns the center of a lake's footprint.
func lakeCenter(l *components.Entity) (float64, float64) {
	return l.X + LakeFootprint/2, l.Y + LakeFootprint/2
}
