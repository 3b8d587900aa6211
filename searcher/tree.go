package searcher

import (
	"fmt"
	"maps"
)

const noParent = -1

type node[A comparable, P comparable] struct {
	parent         int
	action         A // Edge from the parent
	player         P // Acting player, known once the node was reached at a non-terminal state
	hasPlayer      bool
	visits         int
	terminalVisits int // Passes that stopped here because the state was terminal
	rewards        map[P]float64
	children       map[A]int
	order          []A // Children in creation order
	availability   map[A]int
}

// Tree is an arena of search nodes addressed by index. The root has index 0.
// A Tree is owned by a single goroutine.
type Tree[A comparable, P comparable] struct {
	nodes []node[A, P]
}

// NodeStats is a read-only snapshot of one node.
type NodeStats[A comparable, P comparable] struct {
	Index     int
	Parent    int
	Action    A
	Player    P
	HasPlayer bool
	Visits    int
	Rewards   map[P]float64
}

func newTree[A comparable, P comparable]() *Tree[A, P] {
	t := &Tree[A, P]{}
	var zero A
	t.add(noParent, zero)
	return t
}

func (t *Tree[A, P]) add(parent int, action A) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node[A, P]{
		parent:       parent,
		action:       action,
		rewards:      map[P]float64{},
		children:     map[A]int{},
		availability: map[A]int{},
	})
	if parent != noParent {
		p := &t.nodes[parent]
		p.children[action] = idx
		p.order = append(p.order, action)
	}
	return idx
}

func (t *Tree[A, P]) child(idx int, action A) (int, bool) {
	c, ok := t.nodes[idx].children[action]
	return c, ok
}

func (t *Tree[A, P]) setPlayer(idx int, player P) {
	n := &t.nodes[idx]
	if !n.hasPlayer {
		n.player = player
		n.hasPlayer = true
	}
}

func (t *Tree[A, P]) Root() int {
	return 0
}

func (t *Tree[A, P]) Len() int {
	return len(t.nodes)
}

func (t *Tree[A, P]) Stats(idx int) NodeStats[A, P] {
	n := t.nodes[idx]
	return NodeStats[A, P]{
		Index:     idx,
		Parent:    n.parent,
		Action:    n.action,
		Player:    n.player,
		HasPlayer: n.hasPlayer,
		Visits:    n.visits,
		Rewards:   maps.Clone(n.rewards),
	}
}

// Children returns child indexes in creation order.
func (t *Tree[A, P]) Children(idx int) []int {
	n := t.nodes[idx]
	children := make([]int, 0, len(n.order))
	for _, a := range n.order {
		children = append(children, n.children[a])
	}
	return children
}

// Availability returns how many visits of idx saw action as legal.
func (t *Tree[A, P]) Availability(idx int, action A) int {
	return t.nodes[idx].availability[action]
}

// Validate checks the visit bookkeeping of a completed search: every node's visits
// equal its children's visits plus the passes that stopped at it, plus one for the
// pass that created it.
func (t *Tree[A, P]) Validate() error {
	for idx, n := range t.nodes {
		expected := n.terminalVisits
		if n.parent != noParent {
			expected++
		}
		for _, c := range n.children {
			expected += t.nodes[c].visits
		}
		if n.visits != expected {
			return fmt.Errorf("node %d has %d visits, expected %d", idx, n.visits, expected)
		}
		if len(n.order) != len(n.children) {
			return fmt.Errorf("node %d has inconsistent child order", idx)
		}
		for _, a := range n.order {
			if c := n.children[a]; t.nodes[c].parent != idx {
				return fmt.Errorf("node %d is not the parent of its child %d", idx, c)
			}
		}
	}
	return nil
}

// rootStats returns the root's action statistics for player, ordered by actions.
// Actions without a child are reported with zero visits.
func (t *Tree[A, P]) rootStats(actions []A, player P) []ActionStats[A] {
	root := t.nodes[t.Root()]
	stats := make([]ActionStats[A], 0, len(actions))
	for _, a := range actions {
		s := ActionStats[A]{Action: a}
		if c, ok := root.children[a]; ok {
			s.Visits = t.nodes[c].visits
			s.Reward = t.nodes[c].rewards[player]
		}
		stats = append(stats, s)
	}
	return stats
}
