// Package solver implements heuristic push-search over a Sokoban Map:
// a precomputed per-cell lower-bound table, state normalization and
// hashing, successor generation, and both A* and IDA* drivers sharing
// that machinery.
package solver

import (
	"container/heap"
	"log/slog"
	"time"

	"github.com/sokoban-engine/core/direction"
	"github.com/sokoban-engine/core/grid"
	"github.com/sokoban-engine/core/vec2"
)

// Result is the outcome of a successful search: the push directions to
// replay from the level's starting state, in order, plus counters
// useful for logging and benchmarking.
type Result struct {
	Directions []direction.Direction
	Expanded   int
	Visited    int
}

// Solver precomputes a Map's lower-bound table once and reuses it across
// any number of searches over that same Map. It must not be used
// concurrently.
type Solver struct {
	m          *grid.Map
	lb         map[vec2.Vec2]int
	goals      map[vec2.Vec2]bool
	strategy   Strategy
	deadlock   DeadlockPredicate
	terminator Terminator
}

// New builds a Solver for m with the given Strategy, the minimal corner
// deadlock predicate, and no Terminator. Use the fluent With* methods to
// customize before calling AStarSearch or IDAStarSearch.
func New(m *grid.Map, strategy Strategy) *Solver {
	return &Solver{
		m:          m,
		lb:         lowerBounds(m),
		goals:      goalSetOf(m),
		strategy:   strategy,
		deadlock:   cornerDeadlock,
		terminator: None(),
	}
}

// WithTerminator returns a copy of the Solver configured to stop a
// search once t fires.
func (s *Solver) WithTerminator(t Terminator) *Solver {
	out := *s
	out.terminator = t
	return &out
}

// WithDeadlockPredicate returns a copy of the Solver using pred instead
// of the default corner-deadlock check. A nil pred disables deadlock
// pruning entirely.
func (s *Solver) WithDeadlockPredicate(pred DeadlockPredicate) *Solver {
	out := *s
	out.deadlock = pred
	return &out
}

func (s *Solver) initialState(player vec2.Vec2, boxes []vec2.Vec2) (state, int, bool) {
	st := normalize(s.m, player, boxes)
	h, ok := heuristic(s.lb, st.boxes)
	return st, h, ok
}

// AStarSearch runs an A* search from the given player position and box
// set to any configuration where every box sits on a goal. The open set
// is ordered by f = g + h, tied toward the smaller h; the closed set
// tracks the best g seen per normalized-state hash so a cheaper path to
// an already-seen state can still reopen it.
func (s *Solver) AStarSearch(player vec2.Vec2, boxes []vec2.Vec2) (Result, error) {
	start := time.Now()
	initial, h, ok := s.initialState(player, boxes)
	if !ok {
		return Result{}, ErrNoSolution
	}

	open := &openQueue{{state: initial, g: 0, h: h}}
	heap.Init(open)
	closed := map[uint64]int{}
	expanded := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if s.terminator.exceeded(expanded, time.Since(start)) {
			return Result{}, ErrTerminated
		}
		hash := cur.state.hash()
		if best, seen := closed[hash]; seen && best <= cur.g {
			continue
		}
		closed[hash] = cur.g
		expanded++

		if cur.state.isGoal(s.goals) {
			slog.Info("a-star search solved", "expanded", expanded, "pushes", cur.g)
			return Result{Directions: cur.directions(), Expanded: expanded, Visited: len(closed)}, nil
		}

		for _, succ := range expand(s.m, cur.state, s.deadlock) {
			childState := normalize(s.m, succ.player, succ.boxes)
			childHash := childState.hash()
			if best, seen := closed[childHash]; seen && best <= cur.g+1 {
				continue
			}
			childH, ok := heuristic(s.lb, childState.boxes)
			if !ok {
				continue
			}
			child := &node{
				state:  childState,
				g:      cur.g + 1,
				h:      childH + s.strategy.terminationBias(cur.g+1),
				parent: cur,
				dir:    succ.dir,
				hasDir: true,
			}
			heap.Push(open, child)
		}
	}
	slog.Info("a-star search exhausted", "expanded", expanded)
	return Result{}, ErrNoSolution
}

// IDAStarSearch runs an iterative-deepening A* search: the f-cost
// threshold starts at h(initial) and is raised, each pass, to the
// smallest f that exceeded the previous threshold. Each pass is a
// depth-first walk with path-local revisit avoidance (a state cannot
// recur within the same root-to-leaf path) plus the iteration's own
// closed set, which remembers the smallest g at which a state was fully
// explored and found dead so a costlier path to the same state within
// the same threshold is pruned without re-expanding it.
func (s *Solver) IDAStarSearch(player vec2.Vec2, boxes []vec2.Vec2) (Result, error) {
	start := time.Now()
	initial, h, ok := s.initialState(player, boxes)
	if !ok {
		return Result{}, ErrNoSolution
	}

	threshold := h
	expanded := 0
	for iteration := 0; ; iteration++ {
		root := &node{state: initial, g: 0, h: h}
		onPath := map[uint64]bool{initial.hash(): true}
		closed := map[uint64]int{}
		found, nextThreshold, terminated := s.idaStarVisit(root, threshold, onPath, closed, &expanded, start)
		if terminated {
			return Result{}, ErrTerminated
		}
		if found != nil {
			slog.Info("ida-star search solved", "iteration", iteration, "threshold", threshold, "expanded", expanded)
			return Result{Directions: found.directions(), Expanded: expanded}, nil
		}
		slog.Info("ida-star contour exhausted", "iteration", iteration, "threshold", threshold, "expanded", expanded)
		if nextThreshold == noBound {
			return Result{}, ErrNoSolution
		}
		threshold = nextThreshold
	}
}

// noBound marks "no successor exceeded the current threshold", i.e.
// the whole reachable space was explored within budget.
const noBound = -1

// idaStarVisit performs one depth-first step of an IDA* contour. It
// returns the goal node if found, otherwise the smallest f-value that
// exceeded threshold among the pruned branches (or noBound if none
// did), plus whether the Terminator fired.
func (s *Solver) idaStarVisit(n *node, threshold int, onPath map[uint64]bool, closed map[uint64]int, expanded *int, start time.Time) (*node, int, bool) {
	f := n.f()
	if f > threshold {
		return nil, f, false
	}
	hash := n.state.hash()
	if best, seen := closed[hash]; seen && best <= n.g {
		return nil, noBound, false
	}
	if s.terminator.exceeded(*expanded, time.Since(start)) {
		return nil, noBound, true
	}
	*expanded++
	if n.state.isGoal(s.goals) {
		return n, noBound, false
	}

	next := noBound
	for _, succ := range expand(s.m, n.state, s.deadlock) {
		childState := normalize(s.m, succ.player, succ.boxes)
		childHash := childState.hash()
		if onPath[childHash] {
			continue
		}
		childH, ok := heuristic(s.lb, childState.boxes)
		if !ok {
			continue
		}
		child := &node{
			state:  childState,
			g:      n.g + 1,
			h:      childH + s.strategy.terminationBias(n.g+1),
			parent: n,
			dir:    succ.dir,
			hasDir: true,
		}
		onPath[childHash] = true
		found, childNext, terminated := s.idaStarVisit(child, threshold, onPath, closed, expanded, start)
		delete(onPath, childHash)
		if terminated {
			return nil, noBound, true
		}
		if found != nil {
			return found, noBound, false
		}
		if childNext != noBound && (next == noBound || childNext < next) {
			next = childNext
		}
	}
	closed[hash] = n.g
	return nil, next, false
}
