package searcher

import (
	"fmt"

	"ismcts/experiments/metrics"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// ActionStats aggregates the root child reached by Action. Reward is the cumulative
// reward of the deciding player.
type ActionStats[A comparable] struct {
	Action A
	Visits int
	Reward float64
}

func (s ActionStats[A]) Mean() float64 {
	if s.Visits == 0 {
		return 0
	}
	return s.Reward / float64(s.Visits)
}

// Result holds the root statistics of one decision, in enumeration order.
type Result[A comparable, P comparable] struct {
	Player P
	Stats  []ActionStats[A]
	Metric metrics.SearchMetric
}

// Total is the sum of root action visits.
func (r Result[A, P]) Total() int {
	return lo.SumBy(r.Stats, func(s ActionStats[A]) int { return s.Visits })
}

// Policy returns the visit distribution over root actions.
func (r Result[A, P]) Policy() map[A]float64 {
	total := r.Total()
	policy := make(map[A]float64, len(r.Stats))
	for _, s := range r.Stats {
		if total > 0 {
			policy[s.Action] = float64(s.Visits) / float64(total)
		} else {
			policy[s.Action] = 0
		}
	}
	return policy
}

// Get returns the statistics of action.
func (r Result[A, P]) Get(action A) (ActionStats[A], bool) {
	s, ok := lo.Find(r.Stats, func(s ActionStats[A]) bool { return s.Action == action })
	return s, ok
}

// Merge adds other's statistics into r. Actions unknown to r are appended in other's order.
func (r *Result[A, P]) Merge(other Result[A, P]) error {
	if r.Player != other.Player {
		return fmt.Errorf("%w: merging results of %v into results of %v", ErrInconsistentDeterminization, other.Player, r.Player)
	}
	for _, s := range other.Stats {
		_, i, ok := lo.FindIndexOf(r.Stats, func(own ActionStats[A]) bool { return own.Action == s.Action })
		if !ok {
			r.Stats = append(r.Stats, s)
			continue
		}
		r.Stats[i].Visits += s.Visits
		r.Stats[i].Reward += s.Reward
	}
	return nil
}

// Reduce sums unit results in order. The reduction order is fixed so that results
// are reproducible for a fixed seed.
func Reduce[A comparable, P comparable](player P, units []Result[A, P]) (Result[A, P], error) {
	merged := Result[A, P]{Player: player}
	for i, u := range units {
		if err := merged.Merge(u); err != nil {
			return Result[A, P]{}, fmt.Errorf("failed to reduce unit %d: %w", i, err)
		}
	}
	return merged, nil
}

// Best returns the most visited action. rng is only used by TieBreakRandom.
func (r Result[A, P]) Best(tieBreak TieBreak, rng *rand.Rand) (A, error) {
	if len(r.Stats) == 0 {
		var zero A
		return zero, ErrEmptyResult
	}

	ties := []ActionStats[A]{r.Stats[0]}
	for _, s := range r.Stats[1:] {
		best := ties[0]
		switch {
		case s.Visits > best.Visits:
			ties = []ActionStats[A]{s}
		case s.Visits < best.Visits:
		case tieBreak == TieBreakMeanReward && s.Mean() > best.Mean():
			ties = []ActionStats[A]{s}
		case tieBreak == TieBreakMeanReward && s.Mean() < best.Mean():
		default:
			ties = append(ties, s)
		}
	}

	if tieBreak == TieBreakRandom && len(ties) > 1 {
		if rng == nil {
			var zero A
			return zero, fmt.Errorf("%w: random tie break requires an rng", ErrInvalidConfig)
		}
		return ties[rng.Intn(len(ties))].Action, nil
	}
	return ties[0].Action, nil
}
