package experiments

import (
	"context"
	"fmt"
	"time"

	"gametree/engine"
	"gametree/experiments/metrics"
	"gametree/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var DefaultGoroutines = []int{1, 2, 4, 8, 16}

// RunThroughputExperiment solves the same batch of random trees once per
// goroutine count and records how long each batch took.
func RunThroughputExperiment(ctx context.Context, dir string, config metrics.TreeConfig, goroutines []int) ([]metrics.ThroughputRecord, error) {
	rng := rand.New(rand.NewSource(config.Seed))
	jobs := make([]engine.Job, config.Trials)
	for i := range jobs {
		jobs[i] = engine.Job{Name: fmt.Sprintf("tree-%d", i), Tree: randomTree(rng, config)}
	}

	log.Info().Msgf("starting throughput experiment on %d trees...", len(jobs))

	records := []metrics.ThroughputRecord{}
	for _, n := range goroutines {
		start := time.Now()
		if _, err := engine.NewLocal(n).Run(ctx, jobs, searcher.Negamax); err != nil {
			return nil, fmt.Errorf("goroutines=%d: %w", n, err)
		}
		elapsed := time.Since(start)
		records = append(records, metrics.ThroughputRecord{Goroutines: n, Trees: len(jobs), Duration: elapsed})
		log.Info().Msgf("%d goroutines solved %d trees in %s", n, len(jobs), elapsed)
	}

	writer, err := metrics.NewWriter(dir, "throughput")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err = writer.WriteTreeConfigs([]metrics.TreeConfig{config}); err != nil {
		return nil, fmt.Errorf("failed to store tree configs: %w", err)
	}
	if err = writer.WriteThroughputRecords(records); err != nil {
		return nil, fmt.Errorf("failed to store throughput records: %w", err)
	}
	log.Info().Msgf("stored throughput records in %s", writer.Dir())

	return records, nil
}
