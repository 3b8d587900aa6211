package searcher

import (
	"fmt"
	"slices"

	"ismcts/game"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// pass runs selection, expansion, rollout and backpropagation over one tree.
// With availability set it keeps the per-action availability counts of information
// set search, scores children by them, and refuses chance events.
type pass[S game.State[S, A, P], A comparable, P comparable] struct {
	cfg          *config
	tree         *Tree[A, P]
	availability bool
}

func (p *pass[S, A, P]) run(rng *rand.Rand, state S) error {
	idx := p.tree.Root()
	path := []int{idx}
	created := false

	for {
		if err := p.checkChance(state); err != nil {
			return err
		}
		if state.IsTerminal() {
			break
		}

		actions := state.Actions()
		if len(actions) == 0 {
			return ErrNoActions
		}
		player := state.CurrentPlayer()
		p.tree.setPlayer(idx, player)
		if p.availability {
			n := &p.tree.nodes[idx]
			for _, a := range actions {
				n.availability[a]++
			}
		}

		children := p.tree.nodes[idx].children
		untried := lo.Filter(actions, func(a A, _ int) bool {
			_, ok := children[a]
			return !ok
		})
		if len(untried) > 0 {
			action := p.expand(rng, untried)
			next, err := apply[S, A, P](rng, state, action)
			if err != nil {
				return err
			}
			idx = p.tree.add(idx, action)
			path = append(path, idx)
			state = next
			created = true
			break
		}

		action, child := p.selectChild(idx, actions, player)
		next, err := apply[S, A, P](rng, state, action)
		if err != nil {
			return err
		}
		idx = child
		path = append(path, idx)
		state = next
	}

	rewards, err := p.rollout(rng, state)
	if err != nil {
		return err
	}
	p.backup(path, rewards, !created)
	p.cfg.metrics.AddEpisode()
	return nil
}

func (p *pass[S, A, P]) expand(rng *rand.Rand, untried []A) A {
	if p.cfg.expansion == ExpandRandom {
		return untried[rng.Intn(len(untried))]
	}
	return untried[0]
}

// selectChild picks the legal child maximizing the acting player's UCB1 score.
// Ties keep the earliest action in enumeration order.
func (p *pass[S, A, P]) selectChild(idx int, actions []A, player P) (A, int) {
	n := p.tree.nodes[idx]

	var policy ucb
	if !p.availability {
		policy = newUCB(p.cfg.exploration, float64(n.visits))
	}

	bestScore := 0.0
	bestAction, bestChild := actions[0], -1
	for _, a := range actions {
		c := n.children[a]
		if p.availability {
			policy = newUCB(p.cfg.exploration, float64(n.availability[a]))
		}
		child := p.tree.nodes[c]
		score := policy.evaluate(child.rewards[player], float64(child.visits))
		if bestChild == -1 || score > bestScore {
			bestScore, bestAction, bestChild = score, a, c
		}
	}
	return bestAction, bestChild
}

func (p *pass[S, A, P]) rollout(rng *rand.Rand, state S) (map[P]float64, error) {
	depth := 0
	for !state.IsTerminal() {
		if depth >= p.cfg.cutoff {
			if evaluator, ok := any(state).(game.Evaluator[P]); ok {
				return collect(state.Players(), evaluator.Evaluate), nil
			}
		}
		if err := p.checkChance(state); err != nil {
			return nil, err
		}

		action, err := p.rolloutAction(rng, state)
		if err != nil {
			return nil, err
		}
		state, err = apply[S, A, P](rng, state, action)
		if err != nil {
			return nil, err
		}
		depth++
	}

	p.cfg.metrics.AddFullPlayout()
	return collect(state.Players(), state.Reward), nil
}

func (p *pass[S, A, P]) rolloutAction(rng *rand.Rand, state S) (A, error) {
	if hinter, ok := any(state).(game.RolloutHinter[A]); ok {
		if action, ok := hinter.RolloutAction(rng); ok {
			return action, nil
		}
	}
	actions := state.Actions()
	if len(actions) == 0 {
		var zero A
		return zero, ErrNoActions
	}
	return actions[p.cfg.rollout(rng, len(actions))], nil
}

func (p *pass[S, A, P]) backup(path []int, rewards map[P]float64, terminalStop bool) {
	leaf := path[len(path)-1]
	if terminalStop {
		p.tree.nodes[leaf].terminalVisits++
	}
	for _, idx := range slices.Backward(path) {
		n := &p.tree.nodes[idx]
		n.visits++
		for player, r := range rewards {
			n.rewards[player] += r
		}
	}
}

func (p *pass[S, A, P]) checkChance(state S) error {
	if !p.availability {
		return nil
	}
	if stochastic, ok := any(state).(game.Stochastic); ok && stochastic.IsChance() {
		return ErrChanceUnsupported
	}
	return nil
}

func apply[S game.State[S, A, P], A comparable, P comparable](rng *rand.Rand, state S, action A) (S, error) {
	next, err := state.Apply(rng, action)
	if err != nil {
		return next, fmt.Errorf("%w: %v: %v", ErrIllegalAction, action, err)
	}
	return next, nil
}

func collect[P comparable](players []P, reward func(P) float64) map[P]float64 {
	rewards := make(map[P]float64, len(players))
	for _, player := range players {
		rewards[player] = reward(player)
	}
	return rewards
}
