package engine

import (
	"fmt"
	"time"

	"ismcts/experiments/metrics"
	"ismcts/game"
	"ismcts/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type status int

const (
	running status = iota
	terminated
)

// Controller drives turn order. It owns the authoritative state and the rng that is
// passed to agents and to state transitions.
type Controller[S game.State[S, A, P], A comparable, P comparable] struct {
	rng         *rand.Rand
	state       S
	agents      map[P]agent.Agent[S, A, P]
	status      status
	moves       int
	moveMetrics []metrics.MoveMetric
}

func NewController[S game.State[S, A, P], A comparable, P comparable](rng *rand.Rand, initial S, agents map[P]agent.Agent[S, A, P]) (*Controller[S, A, P], error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: rng must not be nil", ErrInvalidConfig)
	}
	for player, a := range agents {
		if a == nil {
			return nil, fmt.Errorf("%w: agent of %v is nil", ErrInvalidConfig, player)
		}
		if a.Player() != player {
			return nil, fmt.Errorf("%w: agent of %v is registered for %v", ErrInvalidConfig, a.Player(), player)
		}
	}

	c := &Controller[S, A, P]{
		rng:    rng,
		state:  initial,
		agents: agents,
	}
	if initial.IsTerminal() {
		c.status = terminated
	}
	return c, nil
}

// Step asks the current player's agent for an action and applies it.
// A failed Step leaves the state unchanged.
func (c *Controller[S, A, P]) Step() (A, error) {
	var zero A
	if c.status == terminated {
		return zero, ErrTerminated
	}

	player := c.state.CurrentPlayer()
	a, ok := c.agents[player]
	if !ok {
		return zero, fmt.Errorf("%w: %v", ErrNoAgent, player)
	}

	action, metric, err := a.FindAction(c.rng, c.state)
	if err != nil {
		return zero, fmt.Errorf("%w: player %v: %w", ErrAgentDecision, player, err)
	}

	next, err := c.state.Apply(c.rng, action)
	if err != nil {
		return zero, fmt.Errorf("%w: player %v action %v: %w", ErrIllegalAction, player, action, err)
	}

	c.moves++
	c.moveMetrics = append(c.moveMetrics, metrics.MoveMetric{
		Step:         c.moves,
		Player:       fmt.Sprint(player),
		Action:       fmt.Sprint(action),
		SearchMetric: metric,
	})
	log.Debug().Int("step", c.moves).Msgf("player %v played %v", player, action)

	c.state = next
	if next.IsTerminal() {
		c.status = terminated
	}
	return action, nil
}

func (c *Controller[S, A, P]) IsTerminated() bool {
	return c.status == terminated
}

// Run executes the game loop until the game terminates.
func (c *Controller[S, A, P]) Run() (metrics.GameMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: fmt.Sprint(c.state.CurrentPlayer()),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("player %v is starting", c.state.CurrentPlayer())

	for !c.IsTerminated() {
		if c.moves >= MaxMoves {
			return gameMetric, fmt.Errorf("%w: %d moves", ErrMoveLimit, MaxMoves)
		}
		if _, err := c.Step(); err != nil {
			return gameMetric, err
		}
	}

	outcome, _ := game.NewOutcome[S, A, P](c.state)
	for _, w := range outcome.Winners {
		gameMetric.Winners = append(gameMetric.Winners, fmt.Sprint(w))
	}
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = c.moves

	log.Info().Int("moves", c.moves).Msgf("game over, winners: %v", gameMetric.Winners)
	return gameMetric, nil
}

// Outcome returns the rewards of every player once the game has terminated.
func (c *Controller[S, A, P]) Outcome() (game.Outcome[P], error) {
	outcome, ok := game.NewOutcome[S, A, P](c.state)
	if !ok {
		return outcome, ErrNotTerminated
	}
	return outcome, nil
}

func (c *Controller[S, A, P]) State() S {
	return c.state
}

// MoveMetrics returns the search metrics of every step so far.
func (c *Controller[S, A, P]) MoveMetrics() []metrics.MoveMetric {
	return c.moveMetrics
}
