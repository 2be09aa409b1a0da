package searcher

import (
	"gametree/game"
)

// FindOptimal walks from the root to a leaf following the annotated values.
// At each node it takes the leftmost child whose annotation equals score
// (minimax) or -score (negamax, flipping score on every step down). Children
// skipped by pruning have no annotation and never match.
func FindOptimal(tree *game.Tree, annotations Annotations, formulation Formulation, score float64) ([]game.NodeID, error) {
	if formulation != Minimax && formulation != Negamax {
		return nil, &UnsupportedFormulationError{Formulation: string(formulation)}
	}

	id := tree.Root()
	path := []game.NodeID{id}
	for {
		children := tree.ChildrenOf(id)
		if len(children) == 0 {
			return path, nil
		}

		target := score
		if formulation == Negamax {
			target = -score
		}

		next, found := id, false
		for _, child := range children {
			if v, ok := annotations.Value(child); ok && v == target {
				next, found = child, true
				break
			}
		}
		if !found {
			return nil, &ReconstructionError{Node: id, Target: target}
		}

		path = append(path, next)
		id, score = next, target
	}
}

// Edge is a parent -> child move in the tree.
type Edge struct {
	Parent game.NodeID
	Child  game.NodeID
}

// PathEdges turns a node path into its consecutive edges.
func PathEdges(path []game.NodeID) []Edge {
	if len(path) < 2 {
		return []Edge{}
	}
	edges := make([]Edge, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		edges = append(edges, Edge{Parent: path[i-1], Child: path[i]})
	}
	return edges
}
