package engine

import (
	"context"
	"fmt"

	"gametree/game"
	"gametree/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Job struct {
	Name string
	Tree *game.Tree
}

// Local solves batches of independent trees on a fixed number of goroutines.
type Local struct {
	goroutines int
	options    []searcher.Option
}

func NewLocal(goroutines int, options ...searcher.Option) *Local {
	if goroutines < 1 {
		panic("need at least one goroutine")
	}
	return &Local{goroutines: goroutines, options: options}
}

// Run solves every job with formulation and returns the results in job
// order. The first failure, or ctx being done, stops jobs not yet started.
func (l *Local) Run(ctx context.Context, jobs []Job, formulation searcher.Formulation) ([]searcher.Result, error) {
	if _, err := searcher.ParseFormulation(string(formulation)); err != nil {
		return nil, err
	}

	log.Info().Msgf("solving %d trees with %s on %d goroutines", len(jobs), formulation, l.goroutines)

	results := make([]searcher.Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.goroutines)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := searcher.NewSolver(job.Tree, l.options...).SolveWith(formulation)
			if err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("solved %d trees", len(jobs))
	return results, nil
}
