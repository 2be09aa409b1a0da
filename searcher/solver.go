package searcher

import (
	"fmt"

	"gametree/experiments/metrics"
	"gametree/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Option func(s *Solver)

// WithMetrics records node, leaf and cutoff counts for every search.
func WithMetrics() Option {
	return func(s *Solver) {
		s.newCollector = metrics.NewCollector
	}
}

// Result is everything one solve produced. RootValue is always from MAX's
// point of view; Annotations keep the convention of the formulation used.
type Result struct {
	Formulation        Formulation
	RootValue          float64
	VisitedLeaves      []game.NodeID
	PrincipalVariation []game.NodeID
	Annotations        Annotations
	Metric             metrics.SearchMetric
}

// PrincipalEdges returns the principal variation as parent -> child edges.
func (r Result) PrincipalEdges() []Edge {
	return PathEdges(r.PrincipalVariation)
}

type Solver struct {
	tree         *game.Tree
	newCollector func() metrics.Collector
}

func NewSolver(tree *game.Tree, options ...Option) *Solver {
	s := &Solver{ // Default values
		tree:         tree,
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Solve is a shorthand for NewSolver(tree).Solve(formulation).
func Solve(tree *game.Tree, formulation string) (Result, error) {
	return NewSolver(tree).Solve(formulation)
}

// Solve runs the named formulation from the root with an unbounded window,
// then reconstructs the principal variation from its annotations.
func (s *Solver) Solve(formulation string) (Result, error) {
	f, err := ParseFormulation(formulation)
	if err != nil {
		return Result{}, err
	}
	return s.SolveWith(f)
}

func (s *Solver) SolveWith(formulation Formulation) (Result, error) {
	collector := s.newCollector()
	collector.Start(string(formulation))

	var (
		score       float64
		visited     []game.NodeID
		annotations Annotations
	)
	switch formulation {
	case Minimax:
		score, visited, annotations = AlphaBetaMinimax(s.tree, collector)
	case Negamax:
		score, visited, annotations = AlphaBetaNegamax(s.tree, collector)
	default:
		return Result{}, &UnsupportedFormulationError{Formulation: string(formulation)}
	}

	pv, err := FindOptimal(s.tree, annotations, formulation, score)
	if err != nil {
		return Result{}, fmt.Errorf("%s search: %w", formulation, err)
	}

	rootValue := score
	if formulation == Negamax && s.tree.SideOf(s.tree.Root()) == game.Min {
		rootValue = -score
	}

	result := Result{
		Formulation:        formulation,
		RootValue:          rootValue,
		VisitedLeaves:      visited,
		PrincipalVariation: pv,
		Annotations:        annotations,
		Metric:             collector.Complete(),
	}

	log.Debug().
		Str("formulation", string(formulation)).
		Float64("value", rootValue).
		Ints("visited", toInts(visited)).
		Ints("pv", toInts(pv)).
		Msg("search complete")

	return result, nil
}

func toInts(ids []game.NodeID) []int {
	return lo.Map(ids, func(id game.NodeID, _ int) int { return int(id) })
}
