package experiments

import (
	"errors"
	"fmt"
	"math"
	"os"

	"ismcts/experiments/metrics"

	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"
)

const (
	KindMCTS          = "mcts"
	KindISMCTS        = "ismcts"
	KindMultithreaded = "multithreaded"
)

var ErrInvalidConfig = errors.New("invalid experiment configuration")

type Config struct {
	Name            string                `yaml:"name"`
	Seed            uint64                `yaml:"seed"` // 0 draws a random seed
	LogLevel        string                `yaml:"log_level"`
	OutputDir       string                `yaml:"output_dir"` // Empty skips writing records
	GamesPerMatchup int                   `yaml:"games_per_matchup"`
	Parallel        int                   `yaml:"parallel"` // Games played concurrently
	DeckSize        int                   `yaml:"deck_size"`
	Agents          []metrics.AgentConfig `yaml:"agents"`
	Matchups        [][2]int              `yaml:"matchups"` // Pairs of agent IDs
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML, fills defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	c := Config{ // Default values
		Name:            "experiment",
		LogLevel:        "info",
		GamesPerMatchup: 10,
		Parallel:        1,
		DeckSize:        3,
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.GamesPerMatchup <= 0 {
		return fmt.Errorf("%w: games_per_matchup must be positive", ErrInvalidConfig)
	}
	if c.Parallel <= 0 {
		return fmt.Errorf("%w: parallel must be positive", ErrInvalidConfig)
	}
	if len(c.Matchups) == 0 {
		return fmt.Errorf("%w: no matchups", ErrInvalidConfig)
	}

	ids := map[int]bool{}
	for _, a := range c.Agents {
		if ids[a.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidConfig, a.ID)
		}
		ids[a.ID] = true
		switch a.Kind {
		case KindMCTS:
		case KindISMCTS, KindMultithreaded:
			if a.Determinizations <= 0 {
				return fmt.Errorf("%w: agent %d needs a positive number of determinizations", ErrInvalidConfig, a.ID)
			}
		default:
			return fmt.Errorf("%w: agent %d has unknown kind %q", ErrInvalidConfig, a.ID, a.Kind)
		}
		switch {
		case a.Simulations <= 0:
			return fmt.Errorf("%w: agent %d needs a positive number of simulations", ErrInvalidConfig, a.ID)
		case a.Workers < 0:
			return fmt.Errorf("%w: agent %d has a negative worker count", ErrInvalidConfig, a.ID)
		case a.Exploration < 0:
			return fmt.Errorf("%w: agent %d has a negative exploration constant", ErrInvalidConfig, a.ID)
		case a.Temperature < 0:
			return fmt.Errorf("%w: agent %d has a negative temperature", ErrInvalidConfig, a.ID)
		}
	}
	for _, m := range c.Matchups {
		for _, id := range m {
			if !ids[id] {
				return fmt.Errorf("%w: matchup references unknown agent %d", ErrInvalidConfig, id)
			}
		}
	}
	return nil
}

// ResolveSeed returns the configured seed, or a random non-zero one.
func (c Config) ResolveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return frand.Uint64n(math.MaxUint64) + 1
}

func (c Config) agent(id int) metrics.AgentConfig {
	for _, a := range c.Agents {
		if a.ID == id {
			return a
		}
	}
	panic(fmt.Sprintf("unknown agent %d", id))
}
