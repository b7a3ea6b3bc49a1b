package solver

import "github.com/sokoban-engine/core/direction"

// node is one entry of the search tree: a state plus the push that
// reached it (hasDir is false at the root) and the bookkeeping needed to
// reconstruct a solution path once a goal node is found.
type node struct {
	state  state
	g      int
	h      int
	parent *node
	dir    direction.Direction
	hasDir bool
}

func (n *node) f() int { return n.g + n.h }

// directions walks parent pointers from the goal node back to the root,
// returning the push directions in forward order.
func (n *node) directions() []direction.Direction {
	var out []direction.Direction
	for cur := n; cur != nil && cur.hasDir; cur = cur.parent {
		out = append(out, cur.dir)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// openQueue is a container/heap priority queue ordered by f-cost, with
// ties broken toward the smaller h (the greedier, more goal-directed
// node), matching the search's admissible tie-break rule.
type openQueue []*node

func (q openQueue) Len() int { return len(q) }

func (q openQueue) Less(i, j int) bool {
	if q[i].f() != q[j].f() {
		return q[i].f() < q[j].f()
	}
	return q[i].h < q[j].h
}

func (q openQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *openQueue) Push(x interface{}) {
	*q = append(*q, x.(*node))
}

func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
