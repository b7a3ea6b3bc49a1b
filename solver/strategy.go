package solver

import "time"

// Strategy tunes the expansion order the search uses. It never affects
// the admissibility or optimality of the final push count, only how
// quickly a solution is found and how much of the state space is
// explored along the way.
type Strategy int

const (
	// Fast favors moderate pruning and a breadth-leaning expansion
	// order, trading optimality guarantees for quicker first solutions
	// in practice (it is still admissible; this only affects ordering).
	Fast Strategy = iota
	// Mixed balances Fast's breadth preference against OptimalPushes's
	// strict f/h ordering.
	Mixed
	// OptimalPushes uses no ordering heuristics beyond the f, h
	// tie-break itself.
	OptimalPushes
)

func (s Strategy) String() string {
	switch s {
	case Fast:
		return "fast"
	case Mixed:
		return "mixed"
	case OptimalPushes:
		return "optimal-pushes"
	default:
		return "unknown"
	}
}

// terminationBias returns a small additive penalty folded into a node's
// sort key. Fast and Mixed nudge the search to prefer slightly
// shallower-looking branches when f/h are tied; OptimalPushes applies no
// bias.
func (s Strategy) terminationBias(g int) int {
	switch s {
	case Fast:
		return -g / 4
	case Mixed:
		return -g / 8
	default:
		return 0
	}
}

// TerminatorKind identifies which cooperative-cancellation rule a
// Terminator enforces.
type TerminatorKind int

const (
	// NoTerminator never fires; the search runs until it either
	// succeeds or exhausts the state space.
	NoTerminator TerminatorKind = iota
	// IterationsTerminatorKind fires after a fixed number of node
	// expansions.
	IterationsTerminatorKind
	// DurationTerminatorKind fires after a fixed wall-clock budget.
	DurationTerminatorKind
)

// Terminator is a cooperative-cancellation rule checked at each node
// expansion. A triggered Terminator surfaces as ErrTerminated.
type Terminator struct {
	kind       TerminatorKind
	iterations int
	duration   time.Duration
}

// None returns a Terminator that never fires.
func None() Terminator {
	return Terminator{kind: NoTerminator}
}

// Iterations returns a Terminator that fires once n node expansions have
// been performed.
func Iterations(n int) Terminator {
	return Terminator{kind: IterationsTerminatorKind, iterations: n}
}

// Duration returns a Terminator that fires once d wall-clock time has
// elapsed since the search began.
func Duration(d time.Duration) Terminator {
	return Terminator{kind: DurationTerminatorKind, duration: d}
}

// exceeded reports whether the Terminator has fired, given the number of
// node expansions performed so far and the time elapsed since the
// search began.
func (t Terminator) exceeded(expanded int, elapsed time.Duration) bool {
	switch t.kind {
	case IterationsTerminatorKind:
		return expanded >= t.iterations
	case DurationTerminatorKind:
		return elapsed >= t.duration
	default:
		return false
	}
}
