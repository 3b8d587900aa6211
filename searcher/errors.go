package searcher

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks failures caused by a game implementation that does not
// honour the game contract. They are fatal for the search that observed them.
var ErrContractViolation = errors.New("game contract violation")

var (
	ErrIllegalAction               = fmt.Errorf("%w: illegal action", ErrContractViolation)
	ErrNoActions                   = fmt.Errorf("%w: no legal actions at a non-terminal state", ErrContractViolation)
	ErrTerminalState               = fmt.Errorf("%w: search started from a terminal state", ErrContractViolation)
	ErrChanceUnsupported           = fmt.Errorf("%w: chance event during an information set search", ErrContractViolation)
	ErrInconsistentDeterminization = fmt.Errorf("%w: determinization is inconsistent with the information set", ErrContractViolation)
)

var (
	ErrInvalidConfig = errors.New("invalid search configuration")
	ErrEmptyResult   = errors.New("search result has no actions")
)
