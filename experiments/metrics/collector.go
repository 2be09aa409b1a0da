package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes a single alpha-beta search.
type SearchMetric struct {
	Formulation    string
	Duration       time.Duration
	Nodes          int // Nodes entered, leaves included
	Leaves         int // Leaves visited
	Cutoffs        int // Internal nodes that stopped early
	PrunedChildren int // Children skipped by those cutoffs
}

type Collector interface {
	Start(formulation string)
	AddNode()
	AddLeaf()
	AddCutoff(pruned int)
	Complete() SearchMetric
}

type collector struct {
	formulation    string
	startTime      time.Time
	nodes          atomic.Int32
	leaves         atomic.Int32
	cutoffs        atomic.Int32
	prunedChildren atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(formulation string) {
	m.startTime = time.Now()
	m.formulation = formulation
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff(pruned int) {
	m.cutoffs.Add(1)
	m.prunedChildren.Add(int32(pruned))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Formulation:    m.formulation,
		Duration:       time.Since(m.startTime),
		Nodes:          int(m.nodes.Load()),
		Leaves:         int(m.leaves.Load()),
		Cutoffs:        int(m.cutoffs.Load()),
		PrunedChildren: int(m.prunedChildren.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(formulation string) {}
func (m *dummyCollector) AddNode()                 {}
func (m *dummyCollector) AddLeaf()                 {}
func (m *dummyCollector) AddCutoff(pruned int)     {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
