package solver

import "github.com/pkg/errors"

var (
	// ErrTerminated is returned when a search's Terminator fires before a
	// solution was found.
	ErrTerminated = errors.New("solver: search terminated before completion")
	// ErrNoSolution is returned when the search space is fully exhausted
	// without reaching a goal state.
	ErrNoSolution = errors.New("solver: no solution exists")
)
