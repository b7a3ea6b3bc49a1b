package solver

import (
	"github.com/sokoban-engine/core/direction"
	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// DeadlockPredicate decides whether pushing a box to `box` makes the
// state unsolvable, given the rest of the current box set (excluding
// `box` itself). It is consulted before a successor is ever inserted
// into the open set, so a predicate that over-rejects only makes the
// search miss solutions; one that under-rejects only costs time.
type DeadlockPredicate func(m *grid.Map, box vec2.Vec2, otherBoxes []vec2.Vec2) bool

// cornerDeadlock is the minimal required predicate: a box pushed onto a
// non-goal cell with two perpendicular walls against it (e.g. a wall to
// its left and a wall above it) can never be moved again, so the state
// is dead regardless of every other box.
func cornerDeadlock(m *grid.Map, box vec2.Vec2, _ []vec2.Vec2) bool {
	if t, ok := m.Get(box); ok && t.Intersects(tiles.Goal) {
		return false
	}
	wall := func(d direction.Direction) bool {
		t, ok := m.Get(box.Add(d.Vector()))
		return !ok || t.Intersects(tiles.Wall)
	}
	up, down := wall(direction.Up), wall(direction.Down)
	left, right := wall(direction.Left), wall(direction.Right)
	return (up || down) && (left || right)
}
