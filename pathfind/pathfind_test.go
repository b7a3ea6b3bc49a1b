package pathfind

import (
	"testing"

	"github.com/sokoban-engine/core/direction"
	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// buildMap parses a tiny ASCII grid directly (independent of the xsb
// package) so pathfind can be unit-tested in isolation.
func buildMap(t *testing.T, rows []string) *grid.Map {
	t.Helper()
	height := len(rows)
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	m := grid.New(width, height)
	for y, row := range rows {
		for x, c := range row {
			var v tiles.Tiles
			switch c {
			case '#':
				v = tiles.Wall
			case '.':
				v = tiles.Goal
			case '@':
				v = tiles.Player
			case '+':
				v = tiles.Player | tiles.Goal
			case '$':
				v = tiles.Box
			case '*':
				v = tiles.Box | tiles.Goal
			default:
				v = tiles.Floor
			}
			_ = m.Set(vec2.New(x, y), v)
		}
	}
	return m
}

func TestReachableAreaFloodFill(t *testing.T) {
	m := buildMap(t, []string{
		"#####",
		"#@  #",
		"# # #",
		"#   #",
		"#####",
	})
	area := ReachableArea(vec2.New(1, 1), func(p vec2.Vec2) bool {
		v, ok := m.Get(p)
		return ok && !v.Intersects(tiles.Wall)
	})
	if !area[vec2.New(1, 1)] {
		t.Fatal("origin should be included")
	}
	if !area[vec2.New(3, 3)] {
		t.Fatal("expected (3,3) reachable around the inner wall")
	}
	if area[vec2.New(2, 2)] {
		t.Fatal("did not expect the wall cell itself to be reachable")
	}
}

func TestNormalizedAreaPicksLexSmallest(t *testing.T) {
	area := map[vec2.Vec2]bool{
		vec2.New(2, 0): true,
		vec2.New(1, 5): true,
		vec2.New(1, 1): true,
	}
	rep, ok := NormalizedArea(area)
	if !ok || rep != vec2.New(1, 1) {
		t.Fatalf("NormalizedArea = %v, %v; want (1,1), true", rep, ok)
	}
}

func TestNormalizedAreaEmpty(t *testing.T) {
	if _, ok := NormalizedArea(map[vec2.Vec2]bool{}); ok {
		t.Fatal("expected ok=false for an empty area")
	}
}

func TestPlayerMovePathSimple(t *testing.T) {
	m := buildMap(t, []string{
		"#####",
		"#@  #",
		"#   #",
		"#####",
	})
	path, ok := PlayerMovePath(m, vec2.New(3, 2))
	if !ok {
		t.Fatal("expected a path")
	}
	if path[0] != vec2.New(1, 1) || path[len(path)-1] != vec2.New(3, 2) {
		t.Fatalf("path endpoints wrong: %v", path)
	}
	if len(path) != 4 {
		t.Fatalf("len(path) = %d, want 4 (manhattan distance 3 + 1)", len(path))
	}
}

func TestPlayerMovePathUnreachable(t *testing.T) {
	m := buildMap(t, []string{
		"#####",
		"#@#$#",
		"#####",
	})
	if _, ok := PlayerMovePath(m, vec2.New(3, 1)); ok {
		t.Fatal("expected target blocked by a wall to be unreachable")
	}
}

// minimalSolvable is a minimal level where a single push solves it.
func minimalSolvable(t *testing.T) *grid.Map {
	return buildMap(t, []string{
		"#####",
		"#@$.#",
		"#####",
	})
}

func TestPushableBoxesMinimal(t *testing.T) {
	m := minimalSolvable(t)
	pushable := PushableBoxes(m)
	if !pushable[vec2.New(2, 1)] {
		t.Fatalf("expected the single box to be pushable, got %v", pushable)
	}
}

func TestPushableBoxesNoneWhenBoxed(t *testing.T) {
	m := buildMap(t, []string{
		"#####",
		"#@#$#",
		"#. ##",
		"#####",
	})
	pushable := PushableBoxes(m)
	if len(pushable) != 0 {
		t.Fatalf("expected no pushable boxes, got %v", pushable)
	}
}

func TestBoxMoveWaypointsNoLegalPush(t *testing.T) {
	// Box in a dead-end pocket: the player can reach only the cell above
	// it, and pushing down from there runs into a wall.
	m := buildMap(t, []string{
		"####",
		"#@ #",
		"##$#",
		"####",
	})
	wp := BoxMoveWaypoints(m, vec2.New(2, 2))
	if len(wp) != 0 {
		t.Fatalf("expected no waypoints (no legal push), got %d entries", len(wp))
	}
}

func TestBoxMoveWaypointsBoxDoesNotBridgeSplitRegions(t *testing.T) {
	// A 1-wide corridor: the box at (2,1) splits the corridor in two, so
	// the player confined to the left of it can only push it right, never
	// left (pushing left would require standing at (3,1), on the far
	// side of the box).
	m := buildMap(t, []string{
		"#####",
		"#@$ #",
		"#####",
	})
	wp := BoxMoveWaypoints(m, vec2.New(2, 1))
	for state, edge := range wp {
		if edge.Direction == direction.Left {
			t.Fatalf("did not expect a legal left push from %v; the box separates the player from (3,1)", state)
		}
	}
}

func TestBoxMoveWaypointsAndReconstruction(t *testing.T) {
	m := buildMap(t, []string{
		"#######",
		"#@    #",
		"#  $  #",
		"#     #",
		"#######",
	})
	origin := vec2.New(3, 2)
	wp := BoxMoveWaypoints(m, origin)
	if len(wp) < 2 {
		t.Fatalf("expected multiple reachable box states, got %d", len(wp))
	}
	positions := map[vec2.Vec2]bool{}
	for state := range wp {
		positions[state.Position] = true
	}
	if sorted := SortedPositions(positions); len(sorted) < 2 {
		t.Fatalf("expected the box to reach several distinct positions, got %v", sorted)
	}
	target := vec2.New(4, 2)
	boxPath := ConstructBoxPath(origin, target, wp)
	if len(boxPath) < 2 || boxPath[0] != origin || boxPath[len(boxPath)-1] != target {
		t.Fatalf("ConstructBoxPath = %v", boxPath)
	}
	playerPath := ConstructPlayerPath(m, vec2.New(1, 1), boxPath)
	if len(playerPath) == 0 {
		t.Fatal("expected a non-empty player path")
	}
	if playerPath[0] != vec2.New(1, 1) {
		t.Fatalf("player path should start at the player origin, got %v", playerPath[0])
	}
	if playerPath[len(playerPath)-1] != boxPath[len(boxPath)-2] {
		t.Fatalf("player path should end where the box was just pushed from, got %v", playerPath[len(playerPath)-1])
	}
}

func TestConstructBoxPathEmptyWhenUnreachable(t *testing.T) {
	m := buildMap(t, []string{
		"####",
		"#@ #",
		"##$#",
		"####",
	})
	wp := BoxMoveWaypoints(m, vec2.New(2, 2))
	path := ConstructBoxPath(vec2.New(2, 2), vec2.New(2, 1), wp)
	if path != nil {
		t.Fatalf("expected no box path, got %v", path)
	}
}
