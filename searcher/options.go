package searcher

import (
	"fmt"
	"math"
	"runtime"

	"ismcts/experiments/metrics"

	"golang.org/x/exp/rand"
)

// MaxCutoff plays rollouts until the game ends.
const MaxCutoff = math.MaxInt

// RolloutPolicy picks the index of the next rollout action among n legal actions.
type RolloutPolicy func(rng *rand.Rand, n int) int

func UniformRollout(rng *rand.Rand, n int) int {
	return rng.Intn(n)
}

func FirstActionRollout(_ *rand.Rand, _ int) int {
	return 0
}

type ExpansionOrder int

const (
	ExpandInOrder ExpansionOrder = iota // First untried action in enumeration order
	ExpandRandom                        // Uniformly random untried action
)

// TieBreak decides between root actions with the same visit count.
type TieBreak int

const (
	TieBreakMeanReward  TieBreak = iota // Higher mean reward, then enumeration order
	TieBreakEnumeration                 // Enumeration order
	TieBreakRandom                      // Uniformly random
)

type Option func(c *config)

type config struct {
	exploration float64
	tieBreak    TieBreak
	rollout     RolloutPolicy
	expansion   ExpansionOrder
	cutoff      int
	workers     int
	metrics     metrics.Collector
}

func newConfig(options []Option) (config, error) {
	c := config{ // Default values
		exploration: DefaultExploration,
		tieBreak:    TieBreakMeanReward,
		rollout:     UniformRollout,
		expansion:   ExpandInOrder,
		cutoff:      MaxCutoff,
		workers:     runtime.NumCPU(),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&c)
	}

	switch {
	case c.exploration < 0 || math.IsNaN(c.exploration) || math.IsInf(c.exploration, 0):
		return c, fmt.Errorf("%w: exploration constant must be finite and non-negative, got %v", ErrInvalidConfig, c.exploration)
	case c.rollout == nil:
		return c, fmt.Errorf("%w: rollout policy must not be nil", ErrInvalidConfig)
	case c.cutoff <= 0:
		return c, fmt.Errorf("%w: cutoff must be positive, got %d", ErrInvalidConfig, c.cutoff)
	case c.workers <= 0:
		return c, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.workers)
	case c.metrics == nil:
		return c, fmt.Errorf("%w: metrics collector must not be nil", ErrInvalidConfig)
	}
	return c, nil
}

// WithExploration sets the UCB1 exploration constant C.
func WithExploration(c float64) Option {
	return func(cfg *config) {
		cfg.exploration = c
	}
}

func WithTieBreak(tieBreak TieBreak) Option {
	return func(cfg *config) {
		cfg.tieBreak = tieBreak
	}
}

func WithRollout(policy RolloutPolicy) Option {
	return func(cfg *config) {
		cfg.rollout = policy
	}
}

func WithExpansion(order ExpansionOrder) Option {
	return func(cfg *config) {
		cfg.expansion = order
	}
}

// WithCutoff stops rollouts after depth actions. States implementing game.Evaluator
// are then scored by their evaluation; other states keep playing to the end.
func WithCutoff(depth int) Option {
	return func(cfg *config) {
		cfg.cutoff = depth
	}
}

// WithWorkers caps the number of goroutines running determinizations in parallel.
func WithWorkers(workers int) Option {
	return func(cfg *config) {
		cfg.workers = workers
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(cfg *config) {
		cfg.metrics = collector
	}
}
