package solver

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/pathfind"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// state is a search-space configuration: the normalized player position
// and the (sorted, for deterministic hashing and goal comparison) set of
// box positions.
type state struct {
	player vec2.Vec2
	boxes  []vec2.Vec2
}

// normalize builds the canonical state for player standing at `player`
// with boxes at `boxes`: the player position is replaced by the
// lexicographically smallest cell in the region reachable from it,
// treating walls and boxes as obstacles. Two states with the player
// anywhere in the same reachable region normalize identically.
func normalize(m *grid.Map, player vec2.Vec2, boxes []vec2.Vec2) state {
	blocked := make(map[vec2.Vec2]bool, len(boxes))
	for _, b := range boxes {
		blocked[b] = true
	}
	passable := func(p vec2.Vec2) bool {
		t, ok := m.Get(p)
		if !ok || t.Intersects(tiles.Wall) {
			return false
		}
		return !blocked[p]
	}
	area := pathfind.ReachableArea(player, passable)
	rep, ok := pathfind.NormalizedArea(area)
	if !ok {
		rep = player
	}
	sorted := append([]vec2.Vec2(nil), boxes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	return state{player: rep, boxes: sorted}
}

// isGoal reports whether every box sits on a goal cell. goalSet holds the
// map's goal positions, so checking each box for membership is enough
// once the lengths already match the parser's box/goal invariant.
func (s state) isGoal(goalSet map[vec2.Vec2]bool) bool {
	for _, b := range s.boxes {
		if !goalSet[b] {
			return false
		}
	}
	return true
}

// hash returns a content hash that is independent of box ordering (it
// XORs each box's per-position hash) so that normalize's sorted slice
// and any other permutation of the same box set hash identically.
func (s state) hash() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(s.player.X))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(s.player.Y))
	h := xxhash.Sum64(buf[:])

	var boxHash uint64
	for _, b := range s.boxes {
		var bb [8]byte
		binary.LittleEndian.PutUint32(bb[0:4], uint32(b.X))
		binary.LittleEndian.PutUint32(bb[4:8], uint32(b.Y))
		boxHash ^= xxhash.Sum64(bb[:])
	}
	return h ^ boxHash
}

func goalSetOf(m *grid.Map) map[vec2.Vec2]bool {
	set := make(map[vec2.Vec2]bool)
	for _, g := range m.GoalPositions() {
		set[g] = true
	}
	return set
}
