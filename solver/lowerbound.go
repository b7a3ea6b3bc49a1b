package solver

import (
	"github.com/sokoban-engine/core/direction"
	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// lowerBounds computes, for every cell that could ever hold a single box
// moving toward a goal, the minimum number of pushes required to get a
// box there from that cell, ignoring every other box on the map. Cells
// that are absent from the returned map are dead: no box placed there
// can ever reach a goal, so any state doing so can be pruned outright.
//
// This is a multi-source backward BFS from the goal set over the "pull"
// relation: a box currently at cell a can be pulled to cell b exactly
// when a forward push from b to a is legal, i.e. b itself is walkable
// and the cell on the far side of b (where the player must stand to
// perform that push) is walkable too.
func lowerBounds(m *grid.Map) map[vec2.Vec2]int {
	lb := map[vec2.Vec2]int{}
	var queue []vec2.Vec2
	for _, g := range m.GoalPositions() {
		lb[g] = 0
		queue = append(queue, g)
	}

	walkable := func(p vec2.Vec2) bool {
		t, ok := m.Get(p)
		return ok && !t.Intersects(tiles.Wall)
	}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		for _, d := range direction.All {
			delta := d.Vector()
			b := a.Sub(delta)
			far := b.Sub(delta)
			if !walkable(b) || !walkable(far) {
				continue
			}
			if _, seen := lb[b]; seen {
				continue
			}
			lb[b] = lb[a] + 1
			queue = append(queue, b)
		}
	}
	return lb
}

// heuristic sums the per-box lower bound, the admissible h used by both
// A* and IDA*. ok is false if any box sits on a dead cell, meaning the
// state can never reach a goal and should be pruned.
func heuristic(lb map[vec2.Vec2]int, boxes []vec2.Vec2) (h int, ok bool) {
	for _, b := range boxes {
		v, found := lb[b]
		if !found {
			return 0, false
		}
		h += v
	}
	return h, true
}
