package searcher

import (
	"fmt"

	"ismcts/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MCTS searches a single fully observable game tree. It is not safe for concurrent
// Search calls.
type MCTS[S game.State[S, A, P], A comparable, P comparable] struct {
	simulations int
	cfg         config
	tree        *Tree[A, P]
}

func NewMCTS[S game.State[S, A, P], A comparable, P comparable](simulations int, options ...Option) (*MCTS[S, A, P], error) {
	if simulations <= 0 {
		return nil, fmt.Errorf("%w: simulations must be positive, got %d", ErrInvalidConfig, simulations)
	}
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return &MCTS[S, A, P]{simulations: simulations, cfg: cfg}, nil
}

// Search runs the configured number of simulations from state and returns the root statistics.
func (m *MCTS[S, A, P]) Search(rng *rand.Rand, state S) (Result[A, P], error) {
	if state.IsTerminal() {
		return Result[A, P]{}, ErrTerminalState
	}

	m.tree = newTree[A, P]()
	p := &pass[S, A, P]{cfg: &m.cfg, tree: m.tree}

	m.cfg.metrics.Start(1, m.simulations, 1)
	for i := 0; i < m.simulations; i++ {
		if err := p.run(rng, state); err != nil {
			return Result[A, P]{}, fmt.Errorf("simulation %d: %w", i, err)
		}
	}
	metric := m.cfg.metrics.Complete()

	player := state.CurrentPlayer()
	log.Debug().Int("simulations", m.simulations).Int("nodes", m.tree.Len()).Msgf("player %v finished searching", player)
	return Result[A, P]{
		Player: player,
		Stats:  m.tree.rootStats(state.Actions(), player),
		Metric: metric,
	}, nil
}

// FindAction searches state and returns the most visited root action.
func (m *MCTS[S, A, P]) FindAction(rng *rand.Rand, state S) (A, Result[A, P], error) {
	return findAction(m.Search, m.cfg.tieBreak, rng, state)
}

// Tree returns the tree built by the last Search.
func (m *MCTS[S, A, P]) Tree() *Tree[A, P] {
	return m.tree
}

func findAction[S any, A comparable, P comparable](search func(*rand.Rand, S) (Result[A, P], error), tieBreak TieBreak, rng *rand.Rand, state S) (A, Result[A, P], error) {
	result, err := search(rng, state)
	if err != nil {
		var zero A
		return zero, result, err
	}
	action, err := result.Best(tieBreak, rng)
	return action, result, err
}
