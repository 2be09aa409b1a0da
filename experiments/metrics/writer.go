package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TreeConfig describes a family of random trees used by an experiment.
type TreeConfig struct {
	ID        int
	Depth     int
	Branching int
	Values    int
	EarlyLeaf float64
	Trials    int
	Seed      uint64
}

type PruningRecord struct {
	Config        int // TreeConfig.ID
	Trial         int
	RootValue     float64
	TotalLeaves   int
	MinimaxLeaves int
	NegamaxLeaves int
	Minimax       SearchMetric
}

type ThroughputRecord struct {
	Goroutines int
	Trees      int
	Duration   time.Duration
}

type Writer struct {
	baseDir string
}

// NewWriter creates a fresh timestamped directory under root/name.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteTreeConfigs(configs []TreeConfig) error {
	header := []string{"id", "depth", "branching", "values", "early_leaf", "trials", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Branching),
			strconv.Itoa(config.Values),
			strconv.FormatFloat(config.EarlyLeaf, 'f', -1, 64),
			strconv.Itoa(config.Trials),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.write("tree_configs.csv", header, rows)
}

func (w *Writer) WritePruningRecords(records []PruningRecord) error {
	header := []string{"config", "trial", "root_value", "total_leaves", "minimax_leaves", "negamax_leaves", "nodes", "cutoffs", "pruned_children", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Config),
			strconv.Itoa(record.Trial),
			strconv.FormatFloat(record.RootValue, 'f', -1, 64),
			strconv.Itoa(record.TotalLeaves),
			strconv.Itoa(record.MinimaxLeaves),
			strconv.Itoa(record.NegamaxLeaves),
			strconv.Itoa(record.Minimax.Nodes),
			strconv.Itoa(record.Minimax.Cutoffs),
			strconv.Itoa(record.Minimax.PrunedChildren),
			record.Minimax.Duration.String(),
		})
	}
	return w.write("pruning_records.csv", header, rows)
}

func (w *Writer) WriteThroughputRecords(records []ThroughputRecord) error {
	header := []string{"goroutines", "trees", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Trees),
			record.Duration.String(),
		})
	}
	return w.write("throughput_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows) // Flushes
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}

	return nil
}
