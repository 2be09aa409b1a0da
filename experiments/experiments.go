package experiments

import (
	"context"
	"fmt"

	"gametree/engine"
	"gametree/experiments/metrics"
	"gametree/game"
	"gametree/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var DefaultConfigs = []metrics.TreeConfig{
	{ID: 1, Depth: 2, Branching: 2, Values: 9, Trials: 50, Seed: 1},
	{ID: 2, Depth: 4, Branching: 3, Values: 9, Trials: 50, Seed: 2},
	{ID: 3, Depth: 6, Branching: 4, Values: 20, Trials: 20, Seed: 3},
	{ID: 4, Depth: 8, Branching: 4, Values: 50, EarlyLeaf: 0.1, Trials: 10, Seed: 4},
}

func randomTree(rng *rand.Rand, config metrics.TreeConfig) *game.Tree {
	return game.Random(rng, game.RandomConfig{
		Depth:     config.Depth,
		Branching: config.Branching,
		Values:    config.Values,
		EarlyLeaf: config.EarlyLeaf,
	})
}

// RunPruningExperiment compares, for each tree config, how many leaves the
// pruned searches visit against the unpruned reference, and writes the
// records as CSV under dir.
func RunPruningExperiment(ctx context.Context, dir string, configs []metrics.TreeConfig) ([]metrics.PruningRecord, error) {
	log.Info().Msgf("starting pruning experiment with %d configs...", len(configs))

	records := []metrics.PruningRecord{}
	for ci, config := range configs {
		rng := rand.New(rand.NewSource(config.Seed))
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(configs), config)

		for trial := 0; trial < config.Trials; trial++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			tree := randomTree(rng, config)
			want, total := searcher.FullMinimax(tree)

			report, err := engine.CrossCheck(ctx, tree, searcher.WithMetrics())
			if err != nil {
				return nil, fmt.Errorf("config %d trial %d: %w", config.ID, trial, err)
			}
			if report.Minimax.RootValue != want {
				return nil, fmt.Errorf("config %d trial %d: pruned value %v differs from unpruned value %v",
					config.ID, trial, report.Minimax.RootValue, want)
			}

			records = append(records, metrics.PruningRecord{
				Config:        config.ID,
				Trial:         trial,
				RootValue:     want,
				TotalLeaves:   total,
				MinimaxLeaves: len(report.Minimax.VisitedLeaves),
				NegamaxLeaves: len(report.Negamax.VisitedLeaves),
				Minimax:       report.Minimax.Metric,
			})
		}
		log.Info().Msgf("completed config %d of %d", ci+1, len(configs))
	}

	log.Info().Msg("completed pruning experiment")

	writer, err := metrics.NewWriter(dir, "pruning")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err = writer.WriteTreeConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to store tree configs: %w", err)
	}
	log.Info().Msg("stored tree configs")
	if err = writer.WritePruningRecords(records); err != nil {
		return nil, fmt.Errorf("failed to store pruning records: %w", err)
	}
	log.Info().Msgf("stored pruning records in %s", writer.Dir())

	return records, nil
}
