// Package direction provides the four cardinal push/move directions used
// by path-finding and the solver.
package direction

import "github.com/sokoban-engine/core/vec2"

// Direction is one of the four cardinal directions a player can move or
// push a box in.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// All lists the four directions in the fixed enumeration order used for
// deterministic tie-breaking throughout path-finding: Up, Down, Left,
// Right.
var All = [4]Direction{Up, Down, Left, Right}

// String renders the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Invalid"
	}
}

// Vector returns the unit displacement vector for the direction.
func (d Direction) Vector() vec2.Vec2 {
	switch d {
	case Up:
		return vec2.New(0, -1)
	case Down:
		return vec2.New(0, 1)
	case Left:
		return vec2.New(-1, 0)
	case Right:
		return vec2.New(1, 0)
	default:
		return vec2.Vec2{}
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Rotate returns the direction 90 degrees clockwise from d.
func (d Direction) Rotate() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

// FromVector converts a unit displacement vector to a Direction. ok is
// false if delta is not one of the four unit vectors.
func FromVector(delta vec2.Vec2) (d Direction, ok bool) {
	for _, c := range All {
		if c.Vector() == delta {
			return c, true
		}
	}
	return Up, false
}
