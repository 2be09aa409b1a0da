package searcher

import (
	"math"

	"gametree/experiments/metrics"
	"gametree/game"

	"github.com/rs/zerolog/log"
)

// search holds the per-call state of one alpha-beta run. The tree is only
// read, so any number of searches may share it.
type search struct {
	tree        *game.Tree
	annotations Annotations
	visited     []game.NodeID
	metrics     metrics.Collector
}

func newSearch(tree *game.Tree, collector metrics.Collector) *search {
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &search{
		tree:        tree,
		annotations: make(Annotations, tree.Len()),
		visited:     []game.NodeID{},
		metrics:     collector,
	}
}

// AlphaBetaMinimax evaluates tree from the root with an unbounded window.
// It returns the root value, the leaves in visiting order and the value of
// every node the search entered, all from MAX's point of view.
func AlphaBetaMinimax(tree *game.Tree, collector metrics.Collector) (float64, []game.NodeID, Annotations) {
	s := newSearch(tree, collector)
	value := s.minimax(tree.Root(), math.Inf(-1), math.Inf(1))
	return value, s.visited, s.annotations
}

// AlphaBetaNegamax is the sign-flipping equivalent of AlphaBetaMinimax. The
// returned root value and annotations are relative to the player to move at
// each node.
func AlphaBetaNegamax(tree *game.Tree, collector metrics.Collector) (float64, []game.NodeID, Annotations) {
	s := newSearch(tree, collector)
	value := s.negamax(tree.Root(), math.Inf(-1), math.Inf(1))
	return value, s.visited, s.annotations
}

func (s *search) leaf(id game.NodeID) float64 {
	value, _ := s.tree.TerminalValue(id)
	s.visited = append(s.visited, id)
	s.metrics.AddLeaf()
	return value
}

func (s *search) cutoff(id game.NodeID, alpha, beta float64, pruned int) {
	if pruned == 0 {
		return
	}
	s.metrics.AddCutoff(pruned)
	log.Trace().
		Int("node", int(id)).
		Float64("alpha", alpha).
		Float64("beta", beta).
		Int("pruned", pruned).
		Msg("cutoff")
}

func (s *search) minimax(id game.NodeID, alpha, beta float64) float64 {
	s.metrics.AddNode()

	var value float64
	switch s.tree.RoleOf(id) {
	case game.Leaf:
		value = s.leaf(id)

	case game.Max:
		value = math.Inf(-1)
		children := s.tree.ChildrenOf(id)
		for i, child := range children {
			value = max(value, s.minimax(child, alpha, beta))
			alpha = max(alpha, value)
			if alpha >= beta {
				s.cutoff(id, alpha, beta, len(children)-i-1)
				break
			}
		}

	case game.Min:
		value = math.Inf(1)
		children := s.tree.ChildrenOf(id)
		for i, child := range children {
			value = min(value, s.minimax(child, alpha, beta))
			beta = min(beta, value)
			if alpha >= beta {
				s.cutoff(id, alpha, beta, len(children)-i-1)
				break
			}
		}
	}

	s.annotations.Annotate(id, value)
	return value
}

func (s *search) negamax(id game.NodeID, alpha, beta float64) float64 {
	s.metrics.AddNode()

	if s.tree.RoleOf(id) == game.Leaf {
		value := s.leaf(id)
		if s.tree.SideOf(id) == game.Min {
			value = -value
		}
		s.annotations.Annotate(id, value)
		return value
	}

	value := math.Inf(-1)
	children := s.tree.ChildrenOf(id)
	for i, child := range children {
		value = max(value, -s.negamax(child, -beta, -alpha))
		alpha = max(alpha, value)
		if alpha >= beta {
			s.cutoff(id, alpha, beta, len(children)-i-1)
			break
		}
	}

	s.annotations.Annotate(id, value)
	return value
}

// FullMinimax evaluates tree without pruning and reports how many leaves it
// had to look at. It is the reference the pruned searches must agree with.
func FullMinimax(tree *game.Tree) (value float64, leaves int) {
	var eval func(id game.NodeID) float64
	eval = func(id game.NodeID) float64 {
		role := tree.RoleOf(id)
		if role == game.Leaf {
			leaves++
			v, _ := tree.TerminalValue(id)
			return v
		}
		best := math.Inf(-1)
		if role == game.Min {
			best = math.Inf(1)
		}
		for _, child := range tree.ChildrenOf(id) {
			v := eval(child)
			if role == game.Max {
				best = max(best, v)
			} else {
				best = min(best, v)
			}
		}
		return best
	}
	value = eval(tree.Root())
	return value, leaves
}
