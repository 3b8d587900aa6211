package searcher

import (
	"fmt"
	"slices"

	"ismcts/game"

	"golang.org/x/exp/rand"
)

// Sampler draws determinizations of an information set state on behalf of observer
// and rejects samples that contradict what observer can see.
type Sampler[S game.InformationSetState[S, A, P], A comparable, P comparable] struct {
	Observer P
}

func (s Sampler[S, A, P]) Sample(rng *rand.Rand, state S) (S, error) {
	det := state.Determinize(rng, s.Observer)

	switch {
	case det.CurrentPlayer() != state.CurrentPlayer():
		return det, fmt.Errorf("%w: current player %v, expected %v", ErrInconsistentDeterminization, det.CurrentPlayer(), state.CurrentPlayer())
	case det.IsTerminal() != state.IsTerminal():
		return det, fmt.Errorf("%w: terminal status changed", ErrInconsistentDeterminization)
	case state.CurrentPlayer() == s.Observer && !slices.Equal(det.Actions(), state.Actions()):
		return det, fmt.Errorf("%w: observer's legal actions changed", ErrInconsistentDeterminization)
	}
	return det, nil
}
