// Package oneshot implements games that end after a single decision. The acting
// player picks one action from a table and every player is paid according to it.
package oneshot

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
)

type Player string

type Action string

var ErrIllegalAction = errors.New("illegal action")

// Table lists the players (the first one acts), the actions in enumeration order and
// the reward vector paid for each action.
type Table struct {
	Players []Player
	Actions []Action
	Rewards map[Action]map[Player]float64
}

type State struct {
	table  *Table
	chosen Action
	done   bool
}

func New(table Table) (State, error) {
	if len(table.Players) == 0 {
		return State{}, fmt.Errorf("table must have at least one player")
	}
	if len(table.Actions) == 0 {
		return State{}, fmt.Errorf("table must have at least one action")
	}
	for _, a := range table.Actions {
		if _, ok := table.Rewards[a]; !ok {
			return State{}, fmt.Errorf("table has no rewards for action %s", a)
		}
	}
	return State{table: &table}, nil
}

// Trivial is a single-player game with a single action.
func Trivial() State {
	s, _ := New(Table{
		Players: []Player{"solo"},
		Actions: []Action{"only"},
		Rewards: map[Action]map[Player]float64{"only": {"solo": 1}},
	})
	return s
}

// XY is a two-player zero-sum game where A picks X (A wins) or Y (B wins).
func XY() State {
	s, _ := New(Table{
		Players: []Player{"A", "B"},
		Actions: []Action{"X", "Y"},
		Rewards: map[Action]map[Player]float64{
			"X": {"A": 1, "B": -1},
			"Y": {"A": -1, "B": 1},
		},
	})
	return s
}

func (s State) CurrentPlayer() Player {
	return s.table.Players[0]
}

func (s State) Players() []Player {
	return slices.Clone(s.table.Players)
}

func (s State) Actions() []Action {
	if s.done {
		return nil
	}
	return slices.Clone(s.table.Actions)
}

func (s State) Apply(_ *rand.Rand, action Action) (State, error) {
	if s.done {
		return s, fmt.Errorf("%w: game is over", ErrIllegalAction)
	}
	if !slices.Contains(s.table.Actions, action) {
		return s, fmt.Errorf("%w: %s", ErrIllegalAction, action)
	}
	return State{table: s.table, chosen: action, done: true}, nil
}

func (s State) IsTerminal() bool {
	return s.done
}

func (s State) Reward(player Player) float64 {
	if !s.done {
		panic("reward queried on a non-terminal state")
	}
	return s.table.Rewards[s.chosen][player]
}

// Chosen returns the action played, if any.
func (s State) Chosen() (Action, bool) {
	return s.chosen, s.done
}

// Determinize returns s: there is no hidden information.
func (s State) Determinize(_ *rand.Rand, _ Player) State {
	return s
}

func (s State) Clone() State {
	return s
}
