package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"gametree/engine"
	"gametree/experiments"
	"gametree/experiments/metrics"
	"gametree/game"
	"gametree/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	treeFile := flag.String("tree", "", "YAML tree description (default: built-in example tree)")
	formulation := flag.String("formulation", string(searcher.Minimax), "Search formulation: minimax or negamax")
	crossCheck := flag.Bool("crosscheck", false, "Solve with both formulations and compare")
	experiment := flag.String("experiment", "", "Run an experiment instead: pruning or throughput")
	out := flag.String("out", "experiments", "Directory for experiment results")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *experiment {
	case "":
	case "pruning":
		if _, err := experiments.RunPruningExperiment(ctx, *out, experiments.DefaultConfigs); err != nil {
			log.Fatal().Err(err).Msg("pruning experiment failed")
		}
		return
	case "throughput":
		config := metrics.TreeConfig{ID: 1, Depth: 8, Branching: 4, Values: 50, Trials: 200, Seed: 1}
		if _, err := experiments.RunThroughputExperiment(ctx, *out, config, experiments.DefaultGoroutines); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		return
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}

	tree, err := loadTree(*treeFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load tree")
	}

	if *crossCheck {
		report, err := engine.CrossCheck(ctx, tree)
		if err != nil {
			log.Fatal().Err(err).Msg("cross-check failed")
		}
		printResult(tree, report.Minimax)
		printResult(tree, report.Negamax)
		return
	}

	result, err := searcher.Solve(tree, *formulation)
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}
	printResult(tree, result)
}

// exampleTree is the classic two-ply tree where the second MIN subtree is
// cut off after its first leaf.
func exampleTree() (*game.Tree, error) {
	return game.Build(
		map[game.NodeID][]game.NodeID{0: {1, 2}, 1: {3, 4}, 2: {5, 6}},
		map[game.NodeID]float64{3: 3, 4: 5, 5: 2, 6: 9},
	)
}

func loadTree(path string) (*game.Tree, error) {
	if path == "" {
		return exampleTree()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return game.LoadDescription(f)
}

func printResult(tree *game.Tree, result searcher.Result) {
	fmt.Printf("Formulation: %s\n", result.Formulation)
	fmt.Printf("Optimal score: %v\n", result.RootValue)
	fmt.Printf("Visited leaves: %v\n", result.VisitedLeaves)
	fmt.Printf("Principal variation: %v\n", result.PrincipalVariation)

	ids := make([]game.NodeID, 0, tree.Len())
	for _, edge := range allEdges(tree) {
		ids = append(ids, edge.Child)
	}
	ids = append(ids, tree.Root())
	slices.Sort(ids)

	onPath := make(map[searcher.Edge]bool)
	for _, edge := range result.PrincipalEdges() {
		onPath[edge] = true
	}
	for _, id := range ids {
		value := "-"
		if v, ok := result.Annotations.Value(id); ok {
			value = fmt.Sprint(v)
		}
		marker := ""
		if parent, ok := tree.Parent(id); ok && onPath[searcher.Edge{Parent: parent, Child: id}] {
			marker = " *"
		}
		fmt.Printf("  node %d (%s): %s%s\n", id, tree.RoleOf(id), value, marker)
	}
}

func allEdges(tree *game.Tree) []searcher.Edge {
	edges := []searcher.Edge{}
	queue := []game.NodeID{tree.Root()}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range tree.ChildrenOf(id) {
			edges = append(edges, searcher.Edge{Parent: id, Child: child})
			queue = append(queue, child)
		}
	}
	return edges
}
