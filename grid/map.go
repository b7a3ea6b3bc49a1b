// Package grid implements the dense tile grid (Map) that the rest of the
// Sokoban engine operates on.
package grid

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
)

// ErrOutOfBounds is returned by Set when the given position falls outside
// the map's dimensions. Get reports out-of-bounds positions by returning
// ok=false rather than an error, since "is this in bounds" is a normal
// query during search.
var ErrOutOfBounds = errors.New("grid: position out of bounds")

// Map is a rectangular, row-major grid of tiles.Tiles.
//
// Map owns its cell data outright; callers that need to try a
// hypothetical change without mutating the original should Clone first.
type Map struct {
	width, height int
	cells         []tiles.Tiles
}

// New returns a w×h map filled with Floor. Both dimensions must be at
// least 1.
func New(w, h int) *Map {
	if w < 1 || h < 1 {
		panic("grid: map dimensions must be at least 1x1")
	}
	return &Map{
		width:  w,
		height: h,
		cells:  make([]tiles.Tiles, w*h),
	}
}

// Dimensions returns the map's (width, height) as a vector.
func (m *Map) Dimensions() vec2.Vec2 {
	return vec2.New(m.width, m.height)
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	cp := &Map{width: m.width, height: m.height, cells: make([]tiles.Tiles, len(m.cells))}
	copy(cp.cells, m.cells)
	return cp
}

func (m *Map) inBounds(p vec2.Vec2) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

func (m *Map) index(p vec2.Vec2) int {
	return p.Y*m.width + p.X
}

// Get returns the tiles at p. ok is false when p is out of bounds.
func (m *Map) Get(p vec2.Vec2) (t tiles.Tiles, ok bool) {
	if !m.inBounds(p) {
		return 0, false
	}
	return m.cells[m.index(p)], true
}

// At is the panicking counterpart of Get, for callers that have already
// established p is in bounds.
func (m *Map) At(p vec2.Vec2) tiles.Tiles {
	if !m.inBounds(p) {
		panic("grid: position out of bounds")
	}
	return m.cells[m.index(p)]
}

// Set assigns t to the cell at p. It fails with ErrOutOfBounds if p lies
// outside the map.
func (m *Map) Set(p vec2.Vec2, t tiles.Tiles) error {
	if !m.inBounds(p) {
		return errors.Wrapf(ErrOutOfBounds, "set at %v", p)
	}
	m.cells[m.index(p)] = t
	return nil
}

// PlayerPosition returns the position of the unique Player-flagged cell.
// ok is false if no cell (or more than one, in a malformed map) carries
// the Player flag in a way that breaks the uniqueness invariant; callers
// that construct maps via the xsb parser are guaranteed exactly one.
func (m *Map) PlayerPosition() (vec2.Vec2, bool) {
	found := false
	var pos vec2.Vec2
	for i, t := range m.cells {
		if t.Intersects(tiles.Player) {
			if found {
				return vec2.Vec2{}, false
			}
			found = true
			pos = m.posAt(i)
		}
	}
	return pos, found
}

// BoxPositions returns the positions of every Box-flagged cell, sorted
// lexicographically (smallest X, then smallest Y) for deterministic
// iteration and hashing.
func (m *Map) BoxPositions() []vec2.Vec2 {
	return m.positionsWith(tiles.Box)
}

// GoalPositions returns the positions of every Goal-flagged cell, sorted
// lexicographically.
func (m *Map) GoalPositions() []vec2.Vec2 {
	return m.positionsWith(tiles.Goal)
}

func (m *Map) positionsWith(mask tiles.Tiles) []vec2.Vec2 {
	var out []vec2.Vec2
	for i, t := range m.cells {
		if t.Intersects(mask) {
			out = append(out, m.posAt(i))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (m *Map) posAt(index int) vec2.Vec2 {
	return vec2.New(index%m.width, index/m.width)
}

// Hash returns a content hash that is stable across runs for maps with
// identical dimensions and cell contents.
func (m *Map) Hash() uint64 {
	h := xxhash.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(m.width))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(m.height))
	h.Write(dims[:])
	raw := make([]byte, len(m.cells))
	for i, t := range m.cells {
		raw[i] = byte(t)
	}
	h.Write(raw)
	return h.Sum64()
}

// ValidateBoxesGoals reports whether the number of boxes equals the
// number of goals, the invariant required of any playable map.
func (m *Map) ValidateBoxesGoals() bool {
	return len(m.BoxPositions()) == len(m.GoalPositions())
}
