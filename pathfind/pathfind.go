// Package pathfind implements the pure, read-only search functions over a
// grid.Map: reachable-area flood fill, player motion paths, and the
// single-box push waypoint graph used by the solver.
package pathfind

import (
	"sort"

	"github.com/sokoban-engine/core/direction"
	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// neighborOrder fixes the deterministic tie-break order used by every BFS
// in this package: Up, Down, Left, Right.
var neighborOrder = direction.All

// ReachableArea returns the set of cells reachable from origin by
// 4-connected flood fill, including only cells for which passable
// returns true. origin is always included, whether or not passable
// accepts it; out-of-bounds neighbors are skipped silently.
func ReachableArea(origin vec2.Vec2, passable func(vec2.Vec2) bool) map[vec2.Vec2]bool {
	area := map[vec2.Vec2]bool{origin: true}
	queue := []vec2.Vec2{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighborOrder {
			next := cur.Add(d.Vector())
			if area[next] {
				continue
			}
			if !passable(next) {
				continue
			}
			area[next] = true
			queue = append(queue, next)
		}
	}
	return area
}

// NormalizedArea returns the lexicographically smallest cell in area:
// smallest X, ties broken by smallest Y. ok is false for an empty area.
func NormalizedArea(area map[vec2.Vec2]bool) (rep vec2.Vec2, ok bool) {
	first := true
	for p := range area {
		if first || p.Less(rep) {
			rep = p
			first = false
		}
	}
	return rep, !first
}

// passableFloor reports whether p holds a walkable, box-free cell: not a
// wall, and not currently occupied by a box.
func passableFloor(m *grid.Map, p vec2.Vec2) bool {
	t, ok := m.Get(p)
	if !ok {
		return false
	}
	return !t.Intersects(tiles.Wall) && !t.Intersects(tiles.Box)
}

// PlayerMovePath returns the shortest path, as an ordered list of cells
// from the map's current player position to target, moving only across
// walkable, box-free cells. It returns ok=false if target is unreachable.
// Equal-length paths are resolved deterministically by exploring
// neighbors in Up, Down, Left, Right order.
func PlayerMovePath(m *grid.Map, target vec2.Vec2) (path []vec2.Vec2, ok bool) {
	start, hasPlayer := m.PlayerPosition()
	if !hasPlayer {
		return nil, false
	}
	return ShortestPath(start, target, func(p vec2.Vec2) bool { return passableFloor(m, p) })
}

// ShortestPath runs a deterministic BFS from start to target across cells
// for which passable returns true, returning the path inclusive of both
// endpoints.
func ShortestPath(start, target vec2.Vec2, passable func(vec2.Vec2) bool) (path []vec2.Vec2, ok bool) {
	if start == target {
		return []vec2.Vec2{start}, true
	}
	prev := map[vec2.Vec2]vec2.Vec2{start: start}
	queue := []vec2.Vec2{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighborOrder {
			next := cur.Add(d.Vector())
			if _, seen := prev[next]; seen {
				continue
			}
			if !passable(next) {
				continue
			}
			prev[next] = cur
			if next == target {
				return reconstruct(prev, start, target), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func reconstruct(prev map[vec2.Vec2]vec2.Vec2, start, target vec2.Vec2) []vec2.Vec2 {
	var rev []vec2.Vec2
	cur := target
	for {
		rev = append(rev, cur)
		if cur == start {
			break
		}
		cur = prev[cur]
	}
	path := make([]vec2.Vec2, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

// WaypointState identifies a single-box push configuration: the box's
// position and the canonical representative of the player-reachable area
// the push was entered from.
type WaypointState struct {
	Position vec2.Vec2
	Side     vec2.Vec2
}

// WaypointEdge records how a WaypointState was first reached: from which
// predecessor state, by pushing in which direction, and at what
// cumulative push cost.
type WaypointEdge struct {
	From      WaypointState
	Direction direction.Direction
	Cost      int
}

// otherBoxesWall returns a passability predicate treating every box
// position except `exclude` as a wall, the "all other boxes treated as
// static walls" rule for single-box waypoint search.
func otherBoxesWall(m *grid.Map, exclude vec2.Vec2) func(vec2.Vec2) bool {
	blocked := map[vec2.Vec2]bool{}
	for _, b := range m.BoxPositions() {
		if b != exclude {
			blocked[b] = true
		}
	}
	return func(p vec2.Vec2) bool {
		t, ok := m.Get(p)
		if !ok {
			return false
		}
		if t.Intersects(tiles.Wall) {
			return false
		}
		return !blocked[p]
	}
}

// BoxMoveWaypoints computes the graph of reachable (box position, player
// side) states obtained by repeatedly pushing a single box starting at
// boxOrigin, with every other box on the map treated as a static wall.
// The result maps each discovered WaypointState to the edge that first
// reached it at minimum cost.
func BoxMoveWaypoints(m *grid.Map, boxOrigin vec2.Vec2) map[WaypointState]WaypointEdge {
	passable := otherBoxesWall(m, boxOrigin)
	result := map[WaypointState]WaypointEdge{}

	type queued struct {
		state WaypointState
		cost  int
	}
	var queue []queued

	// Seed: the player's current reachable area (with the box itself
	// walled off, since the player cannot stand on the box) determines
	// which sides of boxOrigin are initially enterable.
	playerOrigin, hasPlayer := m.PlayerPosition()
	if !hasPlayer {
		return result
	}
	rootArea := ReachableArea(playerOrigin, func(p vec2.Vec2) bool {
		if p == boxOrigin {
			return false
		}
		return passable(p)
	})
	rootSide, ok := NormalizedArea(rootArea)
	if !ok {
		return result
	}
	root := WaypointState{Position: boxOrigin, Side: rootSide}
	queue = append(queue, queued{root, 0})

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		boxPos := cur.state.Position

		// Flood from the side the player is actually standing on, not
		// from boxPos itself: seeding the flood at boxPos would make the
		// box a bridge between regions it in fact separates, since
		// ReachableArea always includes its origin regardless of
		// passable.
		area := ReachableArea(cur.state.Side, func(p vec2.Vec2) bool {
			if p == boxPos {
				return false
			}
			return passable(p)
		})

		for _, d := range neighborOrder {
			entry := boxPos.Sub(d.Vector())
			target := boxPos.Add(d.Vector())
			if !area[entry] {
				continue
			}
			t, ok := m.Get(target)
			if !ok || t.Intersects(tiles.Wall) {
				continue
			}
			if !passable(target) {
				continue
			}
			// After the push, the player stands where the box used to
			// be; the new reachable area (with the box now at target
			// walled off) gives the canonical side for the new state.
			newPassable := func(p vec2.Vec2) bool {
				if p == target {
					return false
				}
				return passable(p)
			}
			newArea := ReachableArea(boxPos, newPassable)
			newSide, ok := NormalizedArea(newArea)
			if !ok {
				continue
			}
			next := WaypointState{Position: target, Side: newSide}
			cost := cur.cost + 1
			if existing, seen := result[next]; seen && existing.Cost <= cost {
				continue
			}
			result[next] = WaypointEdge{From: cur.state, Direction: d, Cost: cost}
			queue = append(queue, queued{next, cost})
		}
	}
	return result
}

// ConstructBoxPath walks the back-pointers recorded in waypoints from the
// lowest-cost state whose position equals to, back to a state whose
// position equals from, returning the resulting chain of box positions
// from `from` to `to` inclusive. It returns an empty slice if no such
// chain exists.
func ConstructBoxPath(from, to vec2.Vec2, waypoints map[WaypointState]WaypointEdge) []vec2.Vec2 {
	var best *WaypointState
	bestCost := -1
	for state, edge := range waypoints {
		if state.Position != to {
			continue
		}
		if bestCost == -1 || edge.Cost < bestCost {
			cp := state
			best = &cp
			bestCost = edge.Cost
		}
	}
	if best == nil {
		return nil
	}
	var rev []vec2.Vec2
	cur := *best
	for {
		rev = append(rev, cur.Position)
		if cur.Position == from {
			break
		}
		edge, ok := waypoints[cur]
		if !ok {
			return nil
		}
		cur = edge.From
	}
	path := make([]vec2.Vec2, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	if path[0] != from {
		return nil
	}
	return path
}

// ConstructPlayerPath reconstructs the full player trajectory that
// realizes boxPath, a chain of consecutive box positions as produced by
// ConstructBoxPath. For each push, the player first walks from its
// current location to the cell opposite the push direction, then takes
// the single push step. playerOrigin is the player's position before the
// first push.
func ConstructPlayerPath(m *grid.Map, playerOrigin vec2.Vec2, boxPath []vec2.Vec2) []vec2.Vec2 {
	if len(boxPath) < 2 {
		return nil
	}
	working := m.Clone()
	// The moving box's own static Box flag is cleared; its current
	// position is tracked dynamically via boxAt instead, so that cells it
	// has already left become walkable again. Every other box on the map
	// stays frozen, mirroring the "one box moving, the rest frozen" model
	// BoxMoveWaypoints uses.
	if t, ok := working.Get(boxPath[0]); ok {
		_ = working.Set(boxPath[0], t.Remove(tiles.Box))
	}
	trajectory := []vec2.Vec2{playerOrigin}
	playerAt := playerOrigin
	boxAt := boxPath[0]

	for i := 1; i < len(boxPath); i++ {
		next := boxPath[i]
		delta := next.Sub(boxAt)
		d, ok := direction.FromVector(delta)
		if !ok {
			return nil
		}
		entry := boxAt.Sub(d.Vector())
		segment, reached := ShortestPath(playerAt, entry, func(p vec2.Vec2) bool {
			if p == boxAt {
				return false
			}
			return passableFloor(working, p)
		})
		if !reached {
			return nil
		}
		if len(trajectory) > 0 && len(segment) > 0 {
			trajectory = append(trajectory, segment[1:]...)
		}
		trajectory = append(trajectory, boxAt)
		playerAt = boxAt
		boxAt = next
	}
	return trajectory
}

// PushableBoxes returns the set of current box positions on m that have
// at least one legal push direction from the player's current
// reachability region.
func PushableBoxes(m *grid.Map) map[vec2.Vec2]bool {
	player, ok := m.PlayerPosition()
	if !ok {
		return nil
	}
	boxes := m.BoxPositions()
	boxSet := map[vec2.Vec2]bool{}
	for _, b := range boxes {
		boxSet[b] = true
	}
	area := ReachableArea(player, func(p vec2.Vec2) bool {
		t, ok := m.Get(p)
		if !ok {
			return false
		}
		return !t.Intersects(tiles.Wall) && !boxSet[p]
	})
	out := map[vec2.Vec2]bool{}
	for _, b := range boxes {
		for _, d := range neighborOrder {
			entry := b.Sub(d.Vector())
			target := b.Add(d.Vector())
			if !area[entry] {
				continue
			}
			t, ok := m.Get(target)
			if !ok || t.Intersects(tiles.Wall) || boxSet[target] {
				continue
			}
			out[b] = true
			break
		}
	}
	return out
}

// SortedPositions returns the members of set in lexicographic order, for
// callers that need deterministic iteration (printing, testing) over a
// position set.
func SortedPositions(set map[vec2.Vec2]bool) []vec2.Vec2 {
	out := make([]vec2.Vec2, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
