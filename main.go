package main

import (
	"flag"
	"fmt"
	"os"

	"ismcts/experiments"
	"ismcts/game/highcard"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const defaultConfig = `
name: highcard
games_per_matchup: 10
parallel: 2
deck_size: 3
agents:
  - {id: 1, kind: mcts, simulations: 200}
  - {id: 2, kind: ismcts, simulations: 50, determinizations: 4}
  - {id: 3, kind: multithreaded, simulations: 50, determinizations: 8}
matchups:
  - [1, 2]
  - [2, 3]
  - [1, 3]
`

func main() {
	path := flag.String("config", "", "path to a YAML experiment config")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadConfig(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	setup := experiments.Setup[highcard.State, highcard.Action, highcard.Player]{
		Players: [2]highcard.Player{highcard.First, highcard.Second},
		Deal: func(rng *rand.Rand) (highcard.State, error) {
			return highcard.Deal(rng, cfg.DeckSize)
		},
	}
	report, err := experiments.Run(cfg, setup)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	fmt.Printf("seed %d\n", report.Seed)
	for _, s := range report.Summaries {
		fmt.Printf("agent %d: games=%d wins=%d mean=%.3f stddev=%.3f\n", s.Agent, s.Games, s.Wins, s.MeanReward, s.StdDev)
	}
	if report.RecordsPath != "" {
		fmt.Printf("records written to %s\n", report.RecordsPath)
	}
}

func loadConfig(path string) (experiments.Config, error) {
	if path == "" {
		return experiments.ParseConfig([]byte(defaultConfig))
	}
	return experiments.LoadConfig(path)
}
