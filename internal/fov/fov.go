// Package fov computes tile-based fields of view. It is a pure function of
// (origin, radius, opaque tiles) and knows nothing about entities or levels.
package fov

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// VisibleSet is the set of tiles visible from an origin.
type VisibleSet map[Point]struct{}

// Contains reports whether the tile is in the set.
func (s VisibleSet) Contains(x, y int) bool {
	_, ok := s[Point{X: x, Y: y}]
	return ok
}

func (s VisibleSet) add(x, y int) {
	s[Point{X: x, Y: y}] = struct{}{}
}

// Compute returns the set of tiles visible from the origin within the given
// radius. opaque reports whether a tile blocks sight. Rays are cast to every
// tile on the perimeter of the radius square; each ray marks tiles until it
// hits an opaque one, which is itself marked when lightWalls is set.
func Compute(originX, originY, radius int, lightWalls bool, opaque func(x, y int) bool) VisibleSet {
	visible := make(VisibleSet)
	visible.add(originX, originY)

	if radius <= 0 {
		return visible
	}

	for x := originX - radius; x <= originX+radius; x++ {
		castRay(originX, originY, x, originY-radius, radius, lightWalls, opaque, visible)
		castRay(originX, originY, x, originY+radius, radius, lightWalls, opaque, visible)
	}
	for y := originY - radius; y <= originY+radius; y++ {
		castRay(originX, originY, originX-radius, y, radius, lightWalls, opaque, visible)
		castRay(originX, originY, originX+radius, y, radius, lightWalls, opaque, visible)
	}

	return visible
}

// castRay walks the Bresenham line from the origin toward the target, marking
// tiles visible until sight is blocked or the radius is exceeded.
func castRay(x0, y0, x1, y1, radius int, lightWalls bool, opaque func(x, y int) bool, visible VisibleSet) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := sign(x1 - x0)
	sy := sign(y1 - y0)
	errTerm := dx - dy

	x, y := x0, y0
	for {
		if x != x0 || y != y0 {
			ddx := x - x0
			ddy := y - y0
			if ddx*ddx+ddy*ddy > radius*radius {
				return
			}
			if opaque(x, y) {
				if lightWalls {
					visible.add(x, y)
				}
				return
			}
			visible.add(x, y)
		}

		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * errTerm
		if e2 > -dy {
			errTerm -= dy
			x += sx
		}
		if e2 < dx {
			errTerm += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
