package searcher

import (
	"errors"
	"fmt"
	"testing"

	"gametree/experiments/metrics"
	"gametree/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Scenario tree:

	        0 (max)
	      /        \
	   1 (min)    2 (min)
	   /   \      /    \
	  3=3  4=5   5=2   6=9

Node 1 evaluates to 3 and raises alpha to 3 at the root. Node 2 sees leaf 5=2,
drops beta to 2 <= alpha and skips leaf 6.
*/

func scenarioTree(t *testing.T) *game.Tree {
	t.Helper()
	tree, err := game.Build(
		map[game.NodeID][]game.NodeID{0: {1, 2}, 1: {3, 4}, 2: {5, 6}},
		map[game.NodeID]float64{3: 3, 4: 5, 5: 2, 6: 9},
	)
	require.NoError(t, err)
	return tree
}

func buildTree(t *testing.T, adjacency map[game.NodeID][]game.NodeID, leaves map[game.NodeID]float64, options ...game.BuildOption) *game.Tree {
	t.Helper()
	tree, err := game.Build(adjacency, leaves, options...)
	require.NoError(t, err)
	return tree
}

func TestAlphaBetaMinimax(t *testing.T) {
	t.Run("pruning the second MIN subtree", func(t *testing.T) {
		tree := scenarioTree(t)

		value, visited, annotations := AlphaBetaMinimax(tree, nil)

		require.Equal(t, 3.0, value)
		require.Equal(t, []game.NodeID{3, 4, 5}, visited, "leaf 6 should be pruned")
		require.Equal(t, Annotations{0: 3, 1: 3, 2: 2, 3: 3, 4: 5, 5: 2}, annotations,
			"pruned leaf should carry no annotation")
	})

	t.Run("collecting search metrics", func(t *testing.T) {
		tree := scenarioTree(t)
		collector := metrics.NewCollector()
		collector.Start(string(Minimax))

		AlphaBetaMinimax(tree, collector)
		got := collector.Complete()

		require.Equal(t, "minimax", got.Formulation)
		require.Equal(t, 6, got.Nodes)
		require.Equal(t, 3, got.Leaves)
		require.Equal(t, 1, got.Cutoffs)
		require.Equal(t, 1, got.PrunedChildren)
	})

	t.Run("evaluating a MIN root", func(t *testing.T) {
		tree := buildTree(t,
			map[game.NodeID][]game.NodeID{0: {1, 2}, 1: {3, 4}, 2: {5, 6}},
			map[game.NodeID]float64{3: 3, 4: 5, 5: 2, 6: 9},
			game.WithRootRole(game.Min),
		)

		value, visited, _ := AlphaBetaMinimax(tree, nil)

		// MAX children: node 1 = 5, node 2 fails high on its last leaf 6=9
		require.Equal(t, 5.0, value)
		require.Equal(t, []game.NodeID{3, 4, 5, 6}, visited)
	})

	t.Run("not counting a break after the last child as a cutoff", func(t *testing.T) {
		tree := buildTree(t,
			map[game.NodeID][]game.NodeID{0: {1, 2}, 2: {3, 4}},
			map[game.NodeID]float64{1: 5, 3: 7, 4: 1},
		)
		collector := metrics.NewCollector()

		value, visited, _ := AlphaBetaMinimax(tree, collector)

		// Leaf 4 ends node 2's scan with alpha >= beta, but nothing is left to skip
		require.Equal(t, 5.0, value)
		require.Equal(t, []game.NodeID{1, 3, 4}, visited)
		require.Equal(t, 0, collector.Complete().Cutoffs)
	})
}

func TestAlphaBetaNegamax(t *testing.T) {
	t.Run("pruning the second MIN subtree", func(t *testing.T) {
		tree := scenarioTree(t)

		value, visited, annotations := AlphaBetaNegamax(tree, nil)

		require.Equal(t, 3.0, value)
		require.Equal(t, []game.NodeID{3, 4, 5}, visited)
		require.Equal(t, Annotations{0: 3, 1: -3, 2: -2, 3: 3, 4: 5, 5: 2}, annotations,
			"MIN nodes should carry mover-relative values")
	})

	t.Run("negating leaves on MIN plies", func(t *testing.T) {
		tree := buildTree(t,
			map[game.NodeID][]game.NodeID{0: {1, 2}},
			map[game.NodeID]float64{1: 4, 2: -6},
		)

		value, visited, annotations := AlphaBetaNegamax(tree, nil)

		require.Equal(t, 4.0, value)
		require.Equal(t, []game.NodeID{1, 2}, visited)
		require.Equal(t, -4.0, annotations[1])
		require.Equal(t, 6.0, annotations[2])
	})

	t.Run("returning the mover's value at a MIN root", func(t *testing.T) {
		tree := buildTree(t,
			map[game.NodeID][]game.NodeID{0: {1, 2}},
			map[game.NodeID]float64{1: 4, 2: -6},
			game.WithRootRole(game.Min),
		)

		value, _, _ := AlphaBetaNegamax(tree, nil)

		require.Equal(t, 6.0, value, "MIN picks -6, worth 6 to MIN")
	})
}

func TestFullMinimax(t *testing.T) {
	tree := scenarioTree(t)

	value, leaves := FullMinimax(tree)

	require.Equal(t, 3.0, value)
	require.Equal(t, 4, leaves)
}

// Seeded random trees of both root roles
func randomTrees(t *testing.T, n int) []*game.Tree {
	t.Helper()
	rng := rand.New(rand.NewSource(2024))
	configs := []game.RandomConfig{
		{Depth: 1, Branching: 3, Values: 3},
		{Depth: 3, Branching: 3, Values: 2},
		{Depth: 4, Branching: 4, Values: 9, EarlyLeaf: 0.15},
		{Depth: 6, Branching: 3, Values: 20, EarlyLeaf: 0.1, RootRole: game.Min},
	}
	trees := make([]*game.Tree, 0, n*len(configs))
	for _, cfg := range configs {
		for i := 0; i < n; i++ {
			trees = append(trees, game.Random(rng, cfg))
		}
	}
	return trees
}

func TestPruningProperties(t *testing.T) {
	for i, tree := range randomTrees(t, 40) {
		t.Run(fmt.Sprintf("tree %d", i), func(t *testing.T) {
			want, total := FullMinimax(tree)
			collector := metrics.NewCollector()

			mmValue, mmVisited, _ := AlphaBetaMinimax(tree, collector)
			nmValue, nmVisited, _ := AlphaBetaNegamax(tree, nil)
			if tree.SideOf(tree.Root()) == game.Min {
				nmValue = -nmValue
			}

			require.Equal(t, want, mmValue, "pruning must not change the value")
			require.Equal(t, want, nmValue, "negamax must agree with minimax")
			require.Equal(t, mmVisited, nmVisited, "both formulations prune the same leaves")
			require.LessOrEqual(t, len(mmVisited), total)

			cutoffs := collector.Complete().Cutoffs
			if cutoffs == 0 {
				require.Equal(t, total, len(mmVisited))
			} else {
				require.Less(t, len(mmVisited), total)
			}
		})
	}
}

func TestAnnotations(t *testing.T) {
	a := Annotations{}
	a.Annotate(1, 5)
	a.Annotate(1, -2)

	v, ok := a.Value(1)
	require.True(t, ok)
	require.Equal(t, -2.0, v, "later annotation should overwrite")
	_, ok = a.Value(2)
	require.False(t, ok)
}

func TestParseFormulation(t *testing.T) {
	for _, s := range []string{"minimax", "negamax"} {
		f, err := ParseFormulation(s)
		require.NoError(t, err)
		require.Equal(t, Formulation(s), f)
	}

	for _, s := range []string{"alphabeta", "", "Minimax"} {
		_, err := ParseFormulation(s)
		require.ErrorIs(t, err, ErrUnsupportedFormulation)
		var unsupported *UnsupportedFormulationError
		require.True(t, errors.As(err, &unsupported))
		require.Equal(t, s, unsupported.Formulation)
	}
}
