package game

import (
	"golang.org/x/exp/rand"
)

type RandomConfig struct {
	Depth     int     // Maximum depth; nodes at this depth are leaves
	Branching int     // Maximum children per internal node, at least 1
	Values    int     // Leaf values are drawn from [-Values, Values]
	EarlyLeaf float64 // Chance that a non-root node above Depth is a leaf
	RootRole  Role
}

// Random builds a well-formed tree with ids assigned in breadth-first order.
// Leaf values are small integers so that equal values (and tie-breaks) occur.
func Random(rng *rand.Rand, cfg RandomConfig) *Tree {
	if cfg.Branching < 1 {
		cfg.Branching = 1
	}
	if cfg.RootRole != Min {
		cfg.RootRole = Max
	}

	adjacency := make(map[NodeID][]NodeID)
	leafValues := make(map[NodeID]float64)

	type pending struct {
		id    NodeID
		depth int
	}
	next := RootID + 1
	queue := []pending{{id: RootID}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		isLeaf := p.depth >= cfg.Depth || (p.id != RootID && rng.Float64() < cfg.EarlyLeaf)
		if isLeaf {
			leafValues[p.id] = float64(rng.Intn(2*cfg.Values+1) - cfg.Values)
			continue
		}

		n := 1 + rng.Intn(cfg.Branching)
		children := make([]NodeID, n)
		for i := range children {
			children[i] = next
			queue = append(queue, pending{id: next, depth: p.depth + 1})
			next++
		}
		adjacency[p.id] = children
	}

	t, err := Build(adjacency, leafValues, WithRootRole(cfg.RootRole))
	if err != nil {
		panic("generated tree is malformed: " + err.Error())
	}
	return t
}
