package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
name: smoke
seed: 42
games_per_matchup: 2
agents:
  - {id: 1, kind: mcts, simulations: 20}
  - {id: 2, kind: multithreaded, simulations: 10, determinizations: 3, workers: 2, exploration: 1.0}
matchups:
  - [1, 2]
`

func TestParseConfig(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(sampleConfig))
		require.NoError(t, err)
		require.Equal(t, "smoke", cfg.Name)
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, "info", cfg.LogLevel)
		require.Equal(t, 1, cfg.Parallel)
		require.Equal(t, 3, cfg.DeckSize)
		require.Equal(t, 2, cfg.GamesPerMatchup)
		require.Len(t, cfg.Agents, 2)
		require.Equal(t, KindMultithreaded, cfg.Agents[1].Kind)
		require.Equal(t, 2, cfg.Agents[1].Workers)
		require.Equal(t, [][2]int{{1, 2}}, cfg.Matchups)
	})

	t.Run("rejects invalid configs", func(t *testing.T) {
		tests := map[string]string{
			"no matchups":               "agents: [{id: 1, kind: mcts, simulations: 1}]",
			"unknown kind":              "agents: [{id: 1, kind: minimax, simulations: 1}]\nmatchups: [[1, 1]]",
			"duplicate ids":             "agents: [{id: 1, kind: mcts, simulations: 1}, {id: 1, kind: mcts, simulations: 1}]\nmatchups: [[1, 1]]",
			"unknown agent":             "agents: [{id: 1, kind: mcts, simulations: 1}]\nmatchups: [[1, 2]]",
			"no games":                  "games_per_matchup: 0\nagents: [{id: 1, kind: mcts, simulations: 1}]\nmatchups: [[1, 1]]",
			"no parallelism":            "parallel: -1\nagents: [{id: 1, kind: mcts, simulations: 1}]\nmatchups: [[1, 1]]",
			"no simulations":            "agents: [{id: 1, kind: mcts}]\nmatchups: [[1, 1]]",
			"no determinizations":       "agents: [{id: 1, kind: ismcts, simulations: 5}]\nmatchups: [[1, 1]]",
			"negative determinizations": "agents: [{id: 1, kind: multithreaded, simulations: 5, determinizations: -2}]\nmatchups: [[1, 1]]",
			"negative workers":          "agents: [{id: 1, kind: multithreaded, simulations: 5, determinizations: 2, workers: -1}]\nmatchups: [[1, 1]]",
			"negative exploration":      "agents: [{id: 1, kind: mcts, simulations: 5, exploration: -1}]\nmatchups: [[1, 1]]",
			"negative temperature":      "agents: [{id: 1, kind: mcts, simulations: 5, temperature: -0.5}]\nmatchups: [[1, 1]]",
		}
		for name, data := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := ParseConfig([]byte(data))
				require.ErrorIs(t, err, ErrInvalidConfig)
			})
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("agents: {"))
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "smoke", cfg.Name)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestResolveSeed(t *testing.T) {
	require.Equal(t, uint64(7), Config{Seed: 7}.ResolveSeed())
	require.NotZero(t, Config{}.ResolveSeed())
}
