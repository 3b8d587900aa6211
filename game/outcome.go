package game

import "slices"

// Outcome summarizes a terminal state.
type Outcome[P comparable] struct {
	Rewards map[P]float64
	Winners []P // Players sharing the maximal reward, in Players() order
}

// IsDraw reports whether every player shares the maximal reward.
func (o Outcome[P]) IsDraw() bool {
	return len(o.Winners) > 1 && len(o.Winners) == len(o.Rewards)
}

// NewOutcome reads the rewards of a terminal state. It returns false if state is not terminal.
func NewOutcome[S State[S, A, P], A comparable, P comparable](state S) (Outcome[P], bool) {
	if !state.IsTerminal() {
		return Outcome[P]{}, false
	}

	players := state.Players()
	rewards := make(map[P]float64, len(players))
	for _, p := range players {
		rewards[p] = state.Reward(p)
	}

	winners := []P{}
	for _, p := range players {
		switch {
		case len(winners) == 0 || rewards[p] > rewards[winners[0]]:
			winners = []P{p}
		case rewards[p] == rewards[winners[0]]:
			winners = append(winners, p)
		}
	}
	return Outcome[P]{Rewards: rewards, Winners: slices.Clip(winners)}, true
}
