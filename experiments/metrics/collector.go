package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Determinizations int // Configured determinization units (1 for plain MCTS)
	Simulations      int // Configured simulations per unit
	Workers          int
	Duration         time.Duration
	Episodes         int // Completed search passes
	FullPlayouts     int // Rollouts that reached a terminal state
	Sampled          int // Determinizations drawn
}

type MoveMetric struct {
	Step   int
	Player string
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winners        []string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers search metrics. Implementations are safe for concurrent use
// between Start and Complete.
type Collector interface {
	Start(determinizations, simulations, workers int)
	AddEpisode()
	AddFullPlayout()
	AddDeterminization()
	Complete() SearchMetric
}

type collector struct {
	determinizations int
	simulations      int
	workers          int
	startTime        time.Time
	episodes         atomic.Int64
	fullPlayouts     atomic.Int64
	sampled          atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(determinizations, simulations, workers int) {
	m.startTime = time.Now()
	m.determinizations = determinizations
	m.simulations = simulations
	m.workers = workers
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.sampled.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddDeterminization() {
	m.sampled.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Determinizations: m.determinizations,
		Simulations:      m.simulations,
		Workers:          m.workers,
		Duration:         time.Since(m.startTime),
		Episodes:         int(m.episodes.Load()),
		FullPlayouts:     int(m.fullPlayouts.Load()),
		Sampled:          int(m.sampled.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(determinizations, simulations, workers int) {}
func (m *dummyCollector) AddEpisode()                                      {}
func (m *dummyCollector) AddFullPlayout()                                  {}
func (m *dummyCollector) AddDeterminization()                              {}
func (m *dummyCollector) Complete() SearchMetric                           { return SearchMetric{} }
