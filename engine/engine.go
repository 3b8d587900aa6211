package engine

import (
	"errors"

	"ismcts/experiments/metrics"
)

// MaxMoves bounds Run for games that fail to terminate.
const MaxMoves = 10000

var (
	ErrTerminated    = errors.New("game already terminated")
	ErrNotTerminated = errors.New("game is still running")
	ErrNoAgent       = errors.New("no agent for player")
	ErrAgentDecision = errors.New("agent failed to decide")
	ErrIllegalAction = errors.New("failed to apply action")
	ErrMoveLimit     = errors.New("move limit reached")
	ErrInvalidConfig = errors.New("invalid controller configuration")
)

type Engine interface {
	// Run plays until the game terminates or MaxMoves is reached
	Run() (metrics.GameMetric, error)
	IsTerminated() bool
}
