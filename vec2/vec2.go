// Package vec2 provides a minimal integer 2D vector used throughout the
// map, path-finding and solver packages.
package vec2

import "fmt"

// Vec2 is a pair of signed integer coordinates. The zero value is the
// origin. Vec2 is a plain value type: comparable, hashable via its
// fields, and totally ordered lexicographically by Less.
type Vec2 struct {
	X, Y int
}

// New returns the vector (x, y).
func New(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum of v and other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns the component-wise difference v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// ManhattanDistance returns the L1 distance between v and other.
func (v Vec2) ManhattanDistance(other Vec2) int {
	return abs(v.X-other.X) + abs(v.Y-other.Y)
}

// Less reports whether v sorts before other: smaller X first, ties
// broken by smaller Y. This is the canonical ordering used to pick the
// normalized representative of a reachable region.
func (v Vec2) Less(other Vec2) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	return v.Y < other.Y
}

// String renders the vector as "(x, y)".
func (v Vec2) String() string {
	return fmt.Sprintf("(%d, %d)", v.X, v.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
