package level

import "github.com/sokoban-engine/core/direction"

// ActionKind distinguishes a plain player move from a box push.
type ActionKind int

const (
	// Move is a single player step onto an empty, box-free cell.
	Move ActionKind = iota
	// Push is a player step that shoves a box one cell ahead of it.
	Push
)

// String renders the kind for logging and debugging.
func (k ActionKind) String() string {
	switch k {
	case Move:
		return "move"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// Action is one recorded step of a Level's history: the kind of step and
// the direction the player moved. Undo replays this in reverse.
type Action struct {
	Kind      ActionKind
	Direction direction.Direction
}
