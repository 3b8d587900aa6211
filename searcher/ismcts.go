package searcher

import (
	"fmt"

	"ismcts/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ISMCTS fuses determinizations into one information set tree. Every pass samples a
// fresh determinization, so determinizations*simulations passes are run per Search.
// It is not safe for concurrent Search calls.
type ISMCTS[S game.InformationSetState[S, A, P], A comparable, P comparable] struct {
	determinizations int
	simulations      int
	cfg              config
	tree             *Tree[A, P]
}

func NewISMCTS[S game.InformationSetState[S, A, P], A comparable, P comparable](determinizations, simulations int, options ...Option) (*ISMCTS[S, A, P], error) {
	if err := validateBudget(determinizations, simulations); err != nil {
		return nil, err
	}
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return &ISMCTS[S, A, P]{determinizations: determinizations, simulations: simulations, cfg: cfg}, nil
}

// Search runs the passes from the current player's information set.
func (m *ISMCTS[S, A, P]) Search(rng *rand.Rand, state S) (Result[A, P], error) {
	if state.IsTerminal() {
		return Result[A, P]{}, ErrTerminalState
	}

	player := state.CurrentPlayer()
	sampler := Sampler[S, A, P]{Observer: player}
	m.tree = newTree[A, P]()
	p := &pass[S, A, P]{cfg: &m.cfg, tree: m.tree, availability: true}

	m.cfg.metrics.Start(m.determinizations, m.simulations, 1)
	passes := m.determinizations * m.simulations
	for i := 0; i < passes; i++ {
		det, err := sampler.Sample(rng, state)
		if err != nil {
			return Result[A, P]{}, fmt.Errorf("pass %d: %w", i, err)
		}
		m.cfg.metrics.AddDeterminization()
		if err := p.run(rng, det); err != nil {
			return Result[A, P]{}, fmt.Errorf("pass %d: %w", i, err)
		}
	}
	metric := m.cfg.metrics.Complete()

	log.Debug().Int("passes", passes).Int("nodes", m.tree.Len()).Msgf("player %v finished searching", player)
	return Result[A, P]{
		Player: player,
		Stats:  m.tree.rootStats(state.Actions(), player),
		Metric: metric,
	}, nil
}

func (m *ISMCTS[S, A, P]) FindAction(rng *rand.Rand, state S) (A, Result[A, P], error) {
	return findAction(m.Search, m.cfg.tieBreak, rng, state)
}

// Tree returns the information set tree built by the last Search.
func (m *ISMCTS[S, A, P]) Tree() *Tree[A, P] {
	return m.tree
}

func validateBudget(determinizations, simulations int) error {
	if determinizations <= 0 {
		return fmt.Errorf("%w: determinizations must be positive, got %d", ErrInvalidConfig, determinizations)
	}
	if simulations <= 0 {
		return fmt.Errorf("%w: simulations must be positive, got %d", ErrInvalidConfig, simulations)
	}
	return nil
}
