// Package level owns the mutable per-puzzle state: the current Map, the
// original Map kept for reset, an ordered action log, and the level's
// metadata. It is the layer that turns a parsed Map into something a
// player or solver can actually push boxes around in.
package level

import (
	"github.com/pkg/errors"

	"github.com/sokoban-engine/core/direction"
	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/tiles"
	"github.com/sokoban-engine/core/vec2"
	"github.com/sokoban-engine/core/xsb"
)

// Level is a single puzzle: a mutable Map, the pristine Map it started
// from, the sequence of actions applied so far, and free-form metadata
// carried over from the source text.
type Level struct {
	current  *grid.Map
	original *grid.Map
	history  []Action
	metadata map[string]string
}

// FromStr parses exactly one level out of s. It fails if s contains zero
// or more than one level (use the xsb package directly to work with
// multi-level text).
func FromStr(s string) (*Level, error) {
	parsed, err := xsb.Parse(s)
	if err != nil {
		return nil, errors.Wrap(ErrAmbiguousLevel, err.Error())
	}
	return FromParsed(parsed.Map, parsed.Metadata), nil
}

// FromParsed builds a Level from an already-parsed map and metadata,
// taking ownership of m. Its history starts empty.
func FromParsed(m *grid.Map, metadata map[string]string) *Level {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &Level{
		current:  m,
		original: m.Clone(),
		metadata: metadata,
	}
}

// Map returns the current, mutable Map. Callers that only need to read
// it should treat it as read-only; Level does not defend against
// external mutation bypassing DoActions/Undo.
func (l *Level) Map() *grid.Map { return l.current }

// MapMut returns the current Map for callers that intend to mutate it
// directly, bypassing the action log. Prefer DoActions for anything that
// should be undoable.
func (l *Level) MapMut() *grid.Map { return l.current }

// MapHash returns the content hash of the current Map.
func (l *Level) MapHash() uint64 { return l.current.Hash() }

// Metadata returns the level's key/value metadata.
func (l *Level) Metadata() map[string]string { return l.metadata }

// History returns the actions applied so far, oldest first. The returned
// slice is owned by Level; callers must not mutate it.
func (l *Level) History() []Action { return l.history }

// IsSolved reports whether every goal cell currently holds a box.
func (l *Level) IsSolved() bool {
	for _, g := range l.current.GoalPositions() {
		t, ok := l.current.Get(g)
		if !ok || !t.Intersects(tiles.Box) {
			return false
		}
	}
	return true
}

// DoActions applies a sequence of direction moves in order. Each move
// either slides the player one cell, if the destination is walkable and
// box-free, or pushes a box one cell ahead of the player, if the
// destination holds a box and the cell beyond it is walkable and empty.
// The first illegal move fails with ErrBlocked and leaves Level state
// unchanged; prior, successfully-applied moves in the same call remain
// applied (DoActions does not roll back a partial sequence).
func (l *Level) DoActions(dirs []direction.Direction) error {
	for _, d := range dirs {
		if err := l.doAction(d); err != nil {
			return err
		}
	}
	return nil
}

// doAction applies a single direction move and, on success, appends the
// resulting Action to the history.
func (l *Level) doAction(d direction.Direction) error {
	player, ok := l.current.PlayerPosition()
	if !ok {
		return errors.Wrap(ErrBlocked, "level has no player")
	}
	delta := d.Vector()
	target := player.Add(delta)
	targetTile, ok := l.current.Get(target)
	if !ok || targetTile.Intersects(tiles.Wall) {
		return errors.Wrapf(ErrBlocked, "cannot move %s from %v", d, player)
	}

	kind := Move
	if targetTile.Intersects(tiles.Box) {
		beyond := target.Add(delta)
		beyondTile, ok := l.current.Get(beyond)
		if !ok || beyondTile.Intersects(tiles.Wall) || beyondTile.Intersects(tiles.Box) {
			return errors.Wrapf(ErrBlocked, "cannot push %s from %v", d, target)
		}
		l.moveBox(target, beyond)
		kind = Push
	}
	l.movePlayer(player, target)
	l.history = append(l.history, Action{Kind: kind, Direction: d})
	return nil
}

// Undo reverses the most recently recorded action.
func (l *Level) Undo() error {
	if len(l.history) == 0 {
		return ErrNoHistory
	}
	last := l.history[len(l.history)-1]
	reverse := last.Direction.Flip()

	player, ok := l.current.PlayerPosition()
	if !ok {
		return errors.Wrap(ErrBlocked, "level has no player")
	}
	dest := player.Add(reverse.Vector())

	if last.Kind == Push {
		boxFrom := player.Add(last.Direction.Vector())
		boxTo := player
		l.moveBox(boxFrom, boxTo)
	}
	l.movePlayer(player, dest)
	l.history = l.history[:len(l.history)-1]
	return nil
}

// Reset restores the level to its state at parse time and clears the
// action history.
func (l *Level) Reset() {
	l.current = l.original.Clone()
	l.history = nil
}

// movePlayer clears the Player flag at from and sets it at to, leaving
// any Goal flag on either cell untouched.
func (l *Level) movePlayer(from, to vec2.Vec2) {
	l.setFlag(from, tiles.Player, false)
	l.setFlag(to, tiles.Player, true)
}

// moveBox clears the Box flag at from and sets it at to.
func (l *Level) moveBox(from, to vec2.Vec2) {
	l.setFlag(from, tiles.Box, false)
	l.setFlag(to, tiles.Box, true)
}

func (l *Level) setFlag(p vec2.Vec2, mask tiles.Tiles, set bool) {
	t, ok := l.current.Get(p)
	if !ok {
		return
	}
	if set {
		t = t.Insert(mask)
	} else {
		t = t.Remove(mask)
	}
	_ = l.current.Set(p, t)
}
