package agent

import (
	"errors"
	"fmt"

	"ismcts/experiments/metrics"
	"ismcts/game"
	"ismcts/searcher"

	"golang.org/x/exp/rand"
)

var ErrNotAgentsTurn = errors.New("agent asked to act for another player")

// Config is fixed at agent construction.
type Config[P comparable] struct {
	Player            P
	NumSimulations    int
	NumDeterminations int
}

type Agent[S any, A comparable, P comparable] interface {
	Player() P
	Config() Config[P]
	// FindAction returns the chosen action and the metrics collected while searching.
	FindAction(rng *rand.Rand, state S) (A, metrics.SearchMetric, error)
}

type engine[S any, A comparable, P comparable] interface {
	FindAction(rng *rand.Rand, state S) (A, searcher.Result[A, P], error)
}

type Option func(s *settings)

type settings struct {
	temperature float64
	search      []searcher.Option
}

// WithTemperature makes the agent sample its action from the root visit distribution
// sharpened by 1/temperature instead of always playing the most visited action.
func WithTemperature(temperature float64) Option {
	return func(s *settings) {
		s.temperature = temperature
	}
}

// WithSearchOptions configures the engine the agent builds.
func WithSearchOptions(options ...searcher.Option) Option {
	return func(s *settings) {
		s.search = append(s.search, options...)
	}
}

func newSettings(options []Option) (settings, error) {
	s := settings{}
	for _, option := range options {
		option(&s)
	}
	if s.temperature < 0 {
		return s, fmt.Errorf("%w: temperature must be non-negative, got %v", searcher.ErrInvalidConfig, s.temperature)
	}
	return s, nil
}

// NewMCTSAgent builds an agent for perfect-information games. NumDeterminations is ignored.
func NewMCTSAgent[S game.State[S, A, P], A comparable, P comparable](config Config[P], options ...Option) (Agent[S, A, P], error) {
	s, err := newSettings(options)
	if err != nil {
		return nil, err
	}
	m, err := searcher.NewMCTS[S, A, P](config.NumSimulations, s.search...)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent for %v: %w", config.Player, err)
	}
	return &searchAgent[S, A, P]{config: config, engine: m, temperature: s.temperature}, nil
}

// NewISMCTSAgent builds a single-threaded information set agent running
// NumDeterminations*NumSimulations passes into one shared tree.
func NewISMCTSAgent[S game.InformationSetState[S, A, P], A comparable, P comparable](config Config[P], options ...Option) (Agent[S, A, P], error) {
	s, err := newSettings(options)
	if err != nil {
		return nil, err
	}
	m, err := searcher.NewISMCTS[S, A, P](config.NumDeterminations, config.NumSimulations, s.search...)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent for %v: %w", config.Player, err)
	}
	return &searchAgent[S, A, P]{config: config, engine: m, temperature: s.temperature}, nil
}

// NewMultithreadedAgent builds an information set agent running NumDeterminations
// independent units of NumSimulations passes on a worker pool.
func NewMultithreadedAgent[S game.SharedInformationSetState[S, A, P], A comparable, P comparable](config Config[P], options ...Option) (Agent[S, A, P], error) {
	s, err := newSettings(options)
	if err != nil {
		return nil, err
	}
	o, err := searcher.NewOrchestrator[S, A, P](config.NumDeterminations, config.NumSimulations, s.search...)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent for %v: %w", config.Player, err)
	}
	return &searchAgent[S, A, P]{config: config, engine: o, temperature: s.temperature}, nil
}

type searchAgent[S game.State[S, A, P], A comparable, P comparable] struct {
	config      Config[P]
	engine      engine[S, A, P]
	temperature float64
}

func (a *searchAgent[S, A, P]) Player() P {
	return a.config.Player
}

func (a *searchAgent[S, A, P]) Config() Config[P] {
	return a.config
}

func (a *searchAgent[S, A, P]) FindAction(rng *rand.Rand, state S) (A, metrics.SearchMetric, error) {
	if current := state.CurrentPlayer(); current != a.config.Player {
		var zero A
		return zero, metrics.SearchMetric{}, fmt.Errorf("%w: agent of %v, current player %v", ErrNotAgentsTurn, a.config.Player, current)
	}

	action, result, err := a.engine.FindAction(rng, state)
	if err != nil {
		return action, result.Metric, err
	}
	if a.temperature > 0 {
		action = sample(result, a.temperature, rng)
	}
	return action, result.Metric, nil
}
