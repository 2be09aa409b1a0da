package engine

import (
	"context"
	"errors"
	"fmt"

	"gametree/game"
	"gametree/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var ErrFormulationMismatch = errors.New("minimax and negamax disagree")

// Report holds one solve per formulation over the same tree.
type Report struct {
	Minimax searcher.Result
	Negamax searcher.Result
}

// CrossCheck solves tree with both formulations concurrently and verifies
// they agree on the root value and on the set of visited leaves.
func CrossCheck(ctx context.Context, tree *game.Tree, options ...searcher.Option) (Report, error) {
	solver := searcher.NewSolver(tree, options...)

	var report Report
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := solver.SolveWith(searcher.Minimax)
		report.Minimax = r
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := solver.SolveWith(searcher.Negamax)
		report.Negamax = r
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	if report.Minimax.RootValue != report.Negamax.RootValue {
		return report, fmt.Errorf("%w: root value %v (minimax) vs %v (negamax)",
			ErrFormulationMismatch, report.Minimax.RootValue, report.Negamax.RootValue)
	}
	onlyMinimax, onlyNegamax := lo.Difference(report.Minimax.VisitedLeaves, report.Negamax.VisitedLeaves)
	if len(onlyMinimax) > 0 || len(onlyNegamax) > 0 {
		return report, fmt.Errorf("%w: leaves visited only by minimax %v, only by negamax %v",
			ErrFormulationMismatch, onlyMinimax, onlyNegamax)
	}

	log.Debug().
		Float64("value", report.Minimax.RootValue).
		Int("visited", len(report.Minimax.VisitedLeaves)).
		Msg("formulations agree")

	return report, nil
}
