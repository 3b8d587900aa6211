package agent

import (
	"testing"

	"ismcts/game/highcard"
	"ismcts/game/oneshot"
	"ismcts/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestNewAgents(t *testing.T) {
	t.Run("invalid budgets are rejected", func(t *testing.T) {
		_, err := NewMCTSAgent[oneshot.State, oneshot.Action, oneshot.Player](Config[oneshot.Player]{Player: "A"})
		require.ErrorIs(t, err, searcher.ErrInvalidConfig)

		_, err = NewISMCTSAgent[highcard.State, highcard.Action, highcard.Player](Config[highcard.Player]{Player: highcard.First, NumSimulations: 10})
		require.ErrorIs(t, err, searcher.ErrInvalidConfig)

		_, err = NewMultithreadedAgent[highcard.State, highcard.Action, highcard.Player](Config[highcard.Player]{Player: highcard.First, NumDeterminations: 2})
		require.ErrorIs(t, err, searcher.ErrInvalidConfig)
	})

	t.Run("negative temperature is rejected", func(t *testing.T) {
		_, err := NewMCTSAgent[oneshot.State, oneshot.Action, oneshot.Player](
			Config[oneshot.Player]{Player: "A", NumSimulations: 10}, WithTemperature(-1))
		require.ErrorIs(t, err, searcher.ErrInvalidConfig)
	})

	t.Run("search options reach the engine", func(t *testing.T) {
		_, err := NewMultithreadedAgent[highcard.State, highcard.Action, highcard.Player](
			Config[highcard.Player]{Player: highcard.First, NumDeterminations: 2, NumSimulations: 2},
			WithSearchOptions(searcher.WithWorkers(0)))
		require.ErrorIs(t, err, searcher.ErrInvalidConfig)
	})

	t.Run("config is kept", func(t *testing.T) {
		config := Config[highcard.Player]{Player: highcard.Second, NumDeterminations: 3, NumSimulations: 7}
		a, err := NewISMCTSAgent[highcard.State, highcard.Action, highcard.Player](config)
		require.NoError(t, err)
		require.Equal(t, highcard.Second, a.Player())
		require.Equal(t, config, a.Config())
	})
}

func TestAgentFindAction(t *testing.T) {
	t.Run("plays the best action of a one ply game", func(t *testing.T) {
		a, err := NewMCTSAgent[oneshot.State, oneshot.Action, oneshot.Player](Config[oneshot.Player]{Player: "A", NumSimulations: 200})
		require.NoError(t, err)

		action, metric, err := a.FindAction(newRand(1), oneshot.XY())
		require.NoError(t, err)
		require.Equal(t, oneshot.Action("X"), action)
		require.Zero(t, metric.Episodes, "no collector was configured")
	})

	t.Run("refuses to act for another player", func(t *testing.T) {
		a, err := NewMCTSAgent[oneshot.State, oneshot.Action, oneshot.Player](Config[oneshot.Player]{Player: "B", NumSimulations: 10})
		require.NoError(t, err)

		_, _, err = a.FindAction(newRand(1), oneshot.XY())
		require.ErrorIs(t, err, ErrNotAgentsTurn)
	})

	t.Run("information set agents act from their own view", func(t *testing.T) {
		state, err := highcard.New(3, 2, 3)
		require.NoError(t, err)
		state, err = state.Apply(nil, highcard.Bet)
		require.NoError(t, err)

		config := Config[highcard.Player]{Player: highcard.Second, NumDeterminations: 10, NumSimulations: 30}
		ismcts, err := NewISMCTSAgent[highcard.State, highcard.Action, highcard.Player](config)
		require.NoError(t, err)
		multithreaded, err := NewMultithreadedAgent[highcard.State, highcard.Action, highcard.Player](config)
		require.NoError(t, err)

		for _, a := range []Agent[highcard.State, highcard.Action, highcard.Player]{ismcts, multithreaded} {
			action, _, err := a.FindAction(newRand(4), state)
			require.NoError(t, err)
			require.Equal(t, highcard.Call, action)
		}
	})

	t.Run("temperature samples every action that was visited", func(t *testing.T) {
		a, err := NewMCTSAgent[oneshot.State, oneshot.Action, oneshot.Player](
			Config[oneshot.Player]{Player: "A", NumSimulations: 2}, WithTemperature(1))
		require.NoError(t, err)

		// Two simulations visit X and Y once each
		seen := map[oneshot.Action]bool{}
		rng := newRand(8)
		for i := 0; i < 100; i++ {
			action, _, err := a.FindAction(rng, oneshot.XY())
			require.NoError(t, err)
			seen[action] = true
		}
		require.True(t, seen["X"])
		require.True(t, seen["Y"])
	})
}

func TestAdjustTemperature(t *testing.T) {
	result := searcher.Result[string, string]{Stats: []searcher.ActionStats[string]{
		{Action: "a", Visits: 1},
		{Action: "b", Visits: 3},
	}}

	t.Run("unit temperature keeps the visit distribution", func(t *testing.T) {
		probs := adjustTemperature(result, 1)
		require.InDeltaSlice(t, []float64{0.25, 0.75}, probs, 1e-9)
	})

	t.Run("low temperature sharpens the distribution", func(t *testing.T) {
		probs := adjustTemperature(result, 0.5)
		require.InDeltaSlice(t, []float64{0.1, 0.9}, probs, 1e-9)
	})

	t.Run("follows the result's visit policy", func(t *testing.T) {
		policy := result.Policy()
		probs := adjustTemperature(result, 1)
		for i, s := range result.Stats {
			require.InDelta(t, policy[s.Action], probs[i], 1e-9)
		}

		empty := searcher.Result[string, string]{Stats: []searcher.ActionStats[string]{{Action: "a"}, {Action: "b"}}}
		require.Equal(t, []float64{0, 0}, adjustTemperature(empty, 1))
	})

	t.Run("unvisited actions are never sampled", func(t *testing.T) {
		r := searcher.Result[string, string]{Stats: []searcher.ActionStats[string]{
			{Action: "a", Visits: 0},
			{Action: "b", Visits: 5},
		}}
		rng := newRand(1)
		for i := 0; i < 50; i++ {
			require.Equal(t, "b", sample(r, 1, rng))
		}
	})
}
