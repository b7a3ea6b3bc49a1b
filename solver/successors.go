package solver

import (
	"github.com/sokoban-engine/core/direction"
	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/pathfind"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// successor is one candidate push out of a state: which box moves,
// which direction, and the resulting (unnormalized) player/box
// configuration.
type successor struct {
	dir       direction.Direction
	player    vec2.Vec2
	boxes     []vec2.Vec2
	pushedBox vec2.Vec2
}

// expand enumerates every legal push out of s: the player reachable
// region is computed once over non-wall, non-box cells, then for each
// box and each direction the entry cell (where the player must stand)
// and target cell (where the box would land) are checked against that
// region, the map, the rest of the box set, and the deadlock predicate.
func expand(m *grid.Map, s state, deadlock DeadlockPredicate) []successor {
	blocked := make(map[vec2.Vec2]bool, len(s.boxes))
	for _, b := range s.boxes {
		blocked[b] = true
	}
	passable := func(p vec2.Vec2) bool {
		t, ok := m.Get(p)
		if !ok || t.Intersects(tiles.Wall) {
			return false
		}
		return !blocked[p]
	}
	region := pathfind.ReachableArea(s.player, passable)

	var out []successor
	for _, box := range s.boxes {
		for _, d := range direction.All {
			delta := d.Vector()
			entry := box.Sub(delta)
			target := box.Add(delta)
			if !region[entry] {
				continue
			}
			t, ok := m.Get(target)
			if !ok || t.Intersects(tiles.Wall) || blocked[target] {
				continue
			}
			others := otherBoxes(s.boxes, box)
			if deadlock != nil && deadlock(m, target, others) {
				continue
			}
			newBoxes := append(append([]vec2.Vec2(nil), others...), target)
			out = append(out, successor{
				dir:       d,
				player:    box,
				boxes:     newBoxes,
				pushedBox: target,
			})
		}
	}
	return out
}

func otherBoxes(boxes []vec2.Vec2, exclude vec2.Vec2) []vec2.Vec2 {
	out := make([]vec2.Vec2, 0, len(boxes)-1)
	removed := false
	for _, b := range boxes {
		if !removed && b == exclude {
			removed = true
			continue
		}
		out = append(out, b)
	}
	return out
}
