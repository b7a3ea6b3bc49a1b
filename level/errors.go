package level

import "github.com/pkg/errors"

var (
	// ErrBlocked is returned when a requested move or push is illegal:
	// the destination is a wall, holds an unpushable box, or lies outside
	// the map.
	ErrBlocked = errors.New("level: move is blocked")
	// ErrNoHistory is returned by Undo when there is no recorded action
	// to reverse.
	ErrNoHistory = errors.New("level: no action to undo")
	// ErrAmbiguousLevel is returned by FromStr when s does not contain
	// exactly one level.
	ErrAmbiguousLevel = errors.New("level: input does not contain exactly one level")
)
