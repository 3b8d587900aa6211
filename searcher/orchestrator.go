package searcher

import (
	"context"
	"fmt"

	"ismcts/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs determinization units on a fixed pool of goroutines. Each unit
// owns a clone of the root state, a determinization of it, a private tree and an
// rng seeded from the caller's rng. Unit results are reduced in unit order.
// It is not safe for concurrent Search calls.
type Orchestrator[S game.SharedInformationSetState[S, A, P], A comparable, P comparable] struct {
	determinizations int
	simulations      int
	cfg              config
}

func NewOrchestrator[S game.SharedInformationSetState[S, A, P], A comparable, P comparable](determinizations, simulations int, options ...Option) (*Orchestrator[S, A, P], error) {
	if err := validateBudget(determinizations, simulations); err != nil {
		return nil, err
	}
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return &Orchestrator[S, A, P]{determinizations: determinizations, simulations: simulations, cfg: cfg}, nil
}

// Search returns the reduction of all unit results.
func (o *Orchestrator[S, A, P]) Search(rng *rand.Rand, state S) (Result[A, P], error) {
	o.cfg.metrics.Start(o.determinizations, o.simulations, o.workers())
	units, err := o.SearchUnits(rng, state)
	if err != nil {
		return Result[A, P]{}, err
	}

	result, err := Reduce(state.CurrentPlayer(), units)
	if err != nil {
		return Result[A, P]{}, err
	}
	result.Metric = o.cfg.metrics.Complete()
	return result, nil
}

func (o *Orchestrator[S, A, P]) FindAction(rng *rand.Rand, state S) (A, Result[A, P], error) {
	return findAction(o.Search, o.cfg.tieBreak, rng, state)
}

// SearchUnits runs every determinization unit and returns their results indexed by unit.
func (o *Orchestrator[S, A, P]) SearchUnits(rng *rand.Rand, state S) ([]Result[A, P], error) {
	if state.IsTerminal() {
		return nil, ErrTerminalState
	}

	// Seeds and clones are prepared on the calling goroutine so that workers never
	// touch the caller's rng or state.
	seeds := make([]uint64, o.determinizations)
	clones := make([]S, o.determinizations)
	for i := range seeds {
		seeds[i] = rng.Uint64()
		clones[i] = state.Clone()
	}

	task := make(chan int, o.determinizations)
	for i := 0; i < o.determinizations; i++ {
		task <- i
	}
	close(task)

	workers := o.workers()
	log.Debug().Int("determinizations", o.determinizations).Int("simulations", o.simulations).Int("workers", workers).Msg("starting determinization units")

	results := make([]Result[A, P], o.determinizations)
	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range task {
				if ctx.Err() != nil {
					return nil
				}
				result, err := o.unit(seeds[i], clones[i])
				if err != nil {
					return fmt.Errorf("determinization %d: %w", i, err)
				}
				results[i] = result
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *Orchestrator[S, A, P]) unit(seed uint64, state S) (Result[A, P], error) {
	rng := rand.New(rand.NewSource(seed))
	player := state.CurrentPlayer()

	det, err := Sampler[S, A, P]{Observer: player}.Sample(rng, state)
	if err != nil {
		return Result[A, P]{}, err
	}
	o.cfg.metrics.AddDeterminization()

	tree := newTree[A, P]()
	p := &pass[S, A, P]{cfg: &o.cfg, tree: tree, availability: true}
	for i := 0; i < o.simulations; i++ {
		if err := p.run(rng, det); err != nil {
			return Result[A, P]{}, fmt.Errorf("simulation %d: %w", i, err)
		}
	}
	return Result[A, P]{Player: player, Stats: tree.rootStats(det.Actions(), player)}, nil
}

func (o *Orchestrator[S, A, P]) workers() int {
	return min(o.cfg.workers, o.determinizations)
}
