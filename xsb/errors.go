package xsb

import "github.com/pkg/errors"

// Sentinel errors making up the parser's error taxonomy.
var (
	ErrEmptyMap        = errors.New("xsb: map block is empty")
	ErrNoPlayer        = errors.New("xsb: no player found")
	ErrMultiplePlayers = errors.New("xsb: more than one player found")
	ErrBoxGoalMismatch = errors.New("xsb: number of boxes does not match number of goals")
	ErrMalformedRLE    = errors.New("xsb: malformed run-length encoding")
	ErrUnknownChar     = errors.New("xsb: unknown character in map block")
)
