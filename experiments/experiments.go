package experiments

import (
	"fmt"

	"ismcts/engine"
	"ismcts/experiments/metrics"
	"ismcts/game"
	"ismcts/searcher"
	"ismcts/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Setup describes the two-player game an experiment is played on.
type Setup[S game.SharedInformationSetState[S, A, P], A comparable, P comparable] struct {
	Players [2]P
	Deal    func(rng *rand.Rand) (S, error)
}

type Report struct {
	Seed        uint64
	Games       []metrics.GameRecord
	Moves       []metrics.MoveRecord
	Summaries   []Summary
	RecordsPath string
}

// Run plays every matchup, alternating seats between games, and writes the records
// when an output directory is configured.
func Run[S game.SharedInformationSetState[S, A, P], A comparable, P comparable](cfg Config, setup Setup[S, A, P]) (Report, error) {
	seed := cfg.ResolveSeed()
	rng := rand.New(rand.NewSource(seed))
	report := Report{Seed: seed}

	log.Info().Uint64("seed", seed).Msgf("starting %s experiment...", cfg.Name)

	count := 0
	for mi, matchup := range cfg.Matchups {
		log.Info().Msgf("starting matchup %d of %d between agent %d and agent %d...", mi+1, len(cfg.Matchups), matchup[0], matchup[1])

		// Seeds are drawn in game order so results do not depend on scheduling
		seeds := make([]uint64, cfg.GamesPerMatchup)
		for i := range seeds {
			seeds[i] = rng.Uint64()
		}

		games := make([]metrics.GameRecord, cfg.GamesPerMatchup)
		moves := make([][]metrics.MoveMetric, cfg.GamesPerMatchup)
		var g errgroup.Group
		g.SetLimit(cfg.Parallel)
		for i := range cfg.GamesPerMatchup {
			seats := matchup
			if i%2 == 1 {
				seats = [2]int{matchup[1], matchup[0]}
			}
			g.Go(func() error {
				record, mm, err := runGame(cfg, setup, seats, seeds[i])
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				games[i], moves[i] = record, mm
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return report, err
		}

		for i := range games {
			count++
			games[i].ID = count
			report.Games = append(report.Games, games[i])
			for _, mm := range moves[i] {
				report.Moves = append(report.Moves, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(cfg.Matchups))
	}

	report.Summaries = Summarize(report.Games)
	log.Info().Msgf("completed %s experiment", cfg.Name)

	if cfg.OutputDir == "" {
		return report, nil
	}
	path, err := store(cfg, report)
	if err != nil {
		return report, err
	}
	report.RecordsPath = path
	return report, nil
}

func runGame[S game.SharedInformationSetState[S, A, P], A comparable, P comparable](cfg Config, setup Setup[S, A, P], seats [2]int, seed uint64) (metrics.GameRecord, []metrics.MoveMetric, error) {
	rng := rand.New(rand.NewSource(seed))
	state, err := setup.Deal(rng)
	if err != nil {
		return metrics.GameRecord{}, nil, fmt.Errorf("failed to deal: %w", err)
	}

	agents := map[P]agent.Agent[S, A, P]{}
	for i, id := range seats {
		a, err := newAgent[S, A, P](cfg.agent(id), setup.Players[i])
		if err != nil {
			return metrics.GameRecord{}, nil, err
		}
		agents[setup.Players[i]] = a
	}

	controller, err := engine.NewController(rng, state, agents)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	gameMetric, err := controller.Run()
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}
	outcome, err := controller.Outcome()
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	return metrics.GameRecord{
		Agent1:     seats[0],
		Agent2:     seats[1],
		Reward1:    outcome.Rewards[setup.Players[0]],
		Reward2:    outcome.Rewards[setup.Players[1]],
		GameMetric: gameMetric,
	}, controller.MoveMetrics(), nil
}

func newAgent[S game.SharedInformationSetState[S, A, P], A comparable, P comparable](config metrics.AgentConfig, player P) (agent.Agent[S, A, P], error) {
	search := []searcher.Option{searcher.WithMetrics(metrics.NewCollector())}
	if config.Exploration > 0 {
		search = append(search, searcher.WithExploration(config.Exploration))
	}
	if config.Workers > 0 {
		search = append(search, searcher.WithWorkers(config.Workers))
	}
	options := []agent.Option{agent.WithSearchOptions(search...), agent.WithTemperature(config.Temperature)}

	c := agent.Config[P]{
		Player:            player,
		NumSimulations:    config.Simulations,
		NumDeterminations: config.Determinizations,
	}
	switch config.Kind {
	case KindMCTS:
		return agent.NewMCTSAgent[S, A, P](c, options...)
	case KindISMCTS:
		return agent.NewISMCTSAgent[S, A, P](c, options...)
	case KindMultithreaded:
		return agent.NewMultithreadedAgent[S, A, P](c, options...)
	default:
		return nil, fmt.Errorf("%w: unknown agent kind %q", ErrInvalidConfig, config.Kind)
	}
}

func store(cfg Config, report Report) (string, error) {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	// Store experiment metadata
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
