// Package highcard is a two-player betting game with one hidden card per player.
//
// First opens with Bet or Check. A Check goes straight to showdown for one chip.
// After a Bet, Second may Fold (First wins one chip) or Call (showdown for two chips).
// The higher card wins the showdown.
package highcard

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
)

type Player int

const (
	First Player = iota + 1
	Second
)

func (p Player) Opponent() Player {
	if p == First {
		return Second
	}
	return First
}

func (p Player) String() string {
	return fmt.Sprintf("player%d", int(p))
}

type Action int

const (
	Check Action = iota
	Bet
	Fold
	Call
)

func (a Action) String() string {
	switch a {
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Fold:
		return "fold"
	case Call:
		return "call"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrInvalidDeal   = errors.New("invalid deal")
)

const MinDeckSize = 2

// State is the authoritative game state. Both hands are stored; only Determinize
// hides the opponent's card.
type State struct {
	deck    Deck
	hands   [2]Card
	history []Action
}

// New deals the given cards from a deck of deckSize ranks.
func New(deckSize int, first, second Card) (State, error) {
	if deckSize < MinDeckSize {
		return State{}, fmt.Errorf("%w: deck must have at least %d cards, got %d", ErrInvalidDeal, MinDeckSize, deckSize)
	}
	deck := NewDeck(deckSize)
	if !slices.Contains(deck, first) || !slices.Contains(deck, second) {
		return State{}, fmt.Errorf("%w: cards %v and %v must be in the deck", ErrInvalidDeal, first, second)
	}
	if first == second {
		return State{}, fmt.Errorf("%w: both players hold %v", ErrInvalidDeal, first)
	}
	return State{deck: deck, hands: [2]Card{first, second}}, nil
}

// Deal shuffles a deck of deckSize ranks and hands one card to each player.
func Deal(rng *rand.Rand, deckSize int) (State, error) {
	if deckSize < MinDeckSize {
		return State{}, fmt.Errorf("%w: deck must have at least %d cards, got %d", ErrInvalidDeal, MinDeckSize, deckSize)
	}
	shuffled := NewDeck(deckSize).Shuffled(rng)
	return New(deckSize, shuffled[0], shuffled[1])
}

func (s State) Hand(p Player) Card {
	return s.hands[p-1]
}

func (s State) History() []Action {
	return slices.Clone(s.history)
}

func (s State) CurrentPlayer() Player {
	if len(s.history) == 1 {
		return Second
	}
	return First
}

func (s State) Players() []Player {
	return []Player{First, Second}
}

func (s State) Actions() []Action {
	switch {
	case len(s.history) == 0:
		return []Action{Check, Bet}
	case len(s.history) == 1 && s.history[0] == Bet:
		return []Action{Fold, Call}
	default:
		return nil
	}
}

func (s State) Apply(_ *rand.Rand, action Action) (State, error) {
	if !slices.Contains(s.Actions(), action) {
		return s, fmt.Errorf("%w: %v after %v", ErrIllegalAction, action, s.history)
	}
	next := s.Clone()
	next.history = append(next.history, action)
	return next, nil
}

func (s State) IsTerminal() bool {
	return len(s.history) > 0 && len(s.Actions()) == 0
}

func (s State) Reward(player Player) float64 {
	if !s.IsTerminal() {
		panic("reward queried on a non-terminal state")
	}

	var firstGain float64
	switch {
	case s.history[0] == Check:
		firstGain = s.showdown(1)
	case s.history[1] == Fold:
		firstGain = 1
	default:
		firstGain = s.showdown(2)
	}

	if player == First {
		return firstGain
	}
	return -firstGain
}

func (s State) showdown(stake float64) float64 {
	if s.hands[0] > s.hands[1] {
		return stake
	}
	return -stake
}

// Determinize keeps observer's card and the public history, and redraws the
// opponent's card uniformly from the cards observer cannot see.
func (s State) Determinize(rng *rand.Rand, observer Player) State {
	next := s.Clone()
	own := s.Hand(observer)
	next.hands[observer.Opponent()-1] = s.deck.Without(own).Draw(rng)
	return next
}

func (s State) Clone() State {
	return State{
		deck:    slices.Clone(s.deck),
		hands:   s.hands,
		history: slices.Clone(s.history),
	}
}
