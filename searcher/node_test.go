package searcher

import (
	"errors"
	"slices"

	"golang.org/x/exp/rand"
)

// raceState is a counting race: players take turns adding 1 or 2 to a total and the
// player who reaches the target wins 1, everybody else 0.
type raceState struct {
	players int
	target  int
	total   int
	turn    int
	last    int
}

func newRace(players, target int) raceState {
	return raceState{players: players, target: target, last: -1}
}

func (s raceState) CurrentPlayer() int { return s.turn }

func (s raceState) Players() []int {
	players := make([]int, s.players)
	for i := range players {
		players[i] = i
	}
	return players
}

func (s raceState) Actions() []int {
	if s.IsTerminal() {
		return nil
	}
	return []int{1, 2}
}

func (s raceState) Apply(_ *rand.Rand, action int) (raceState, error) {
	if !slices.Contains(s.Actions(), action) {
		return s, errors.New("not a legal step")
	}
	next := s
	next.total += action
	next.last = s.turn
	next.turn = (s.turn + 1) % s.players
	return next, nil
}

func (s raceState) IsTerminal() bool { return s.total >= s.target }

func (s raceState) Reward(player int) float64 {
	if player == s.last {
		return 1
	}
	return 0
}

func (s raceState) Determinize(_ *rand.Rand, _ int) raceState { return s }

func (s raceState) Clone() raceState { return s }

// coinState starts with a chance event: the single player flips a coin.
type coinState struct {
	flipped bool
	heads   bool
}

func (s coinState) CurrentPlayer() string { return "p" }
func (s coinState) Players() []string     { return []string{"p"} }
func (s coinState) IsChance() bool        { return !s.flipped }
func (s coinState) IsTerminal() bool      { return s.flipped }

func (s coinState) Actions() []string {
	if s.flipped {
		return nil
	}
	return []string{"flip"}
}

func (s coinState) Apply(rng *rand.Rand, action string) (coinState, error) {
	if s.flipped || action != "flip" {
		return s, errors.New("coin already flipped")
	}
	return coinState{flipped: true, heads: rng.Intn(2) == 0}, nil
}

func (s coinState) Reward(string) float64 {
	if s.heads {
		return 1
	}
	return 0
}

func (s coinState) Determinize(_ *rand.Rand, _ string) coinState { return s }
func (s coinState) Clone() coinState                             { return s }

// brokenState misbehaves according to its mode.
type brokenState struct {
	mode string // "illegal", "stuck" or "shifty", whose determinizations hand the turn to q
}

func (s brokenState) Players() []string     { return []string{"p", "q"} }
func (s brokenState) IsTerminal() bool      { return false }
func (s brokenState) Reward(string) float64 { return 0 }

func (s brokenState) CurrentPlayer() string {
	if s.mode == "other" {
		return "q"
	}
	return "p"
}

func (s brokenState) Actions() []string {
	if s.mode == "stuck" {
		return nil
	}
	return []string{"a"}
}

func (s brokenState) Apply(_ *rand.Rand, _ string) (brokenState, error) {
	if s.mode == "illegal" {
		return s, errors.New("rejected")
	}
	return s, nil
}

func (s brokenState) Determinize(_ *rand.Rand, _ string) brokenState {
	if s.mode == "shifty" {
		return brokenState{mode: "other"}
	}
	return s
}

func (s brokenState) Clone() brokenState { return s }

// hiddenState is a two move game where p picks a or b, then q answers with x, or with
// z when the hidden bit is set. Only q sees the bit, so z is available in some of p's
// determinizations and not in others.
type hiddenState struct {
	hidden bool
	moves  []string
}

func (s hiddenState) Players() []string { return []string{"p", "q"} }
func (s hiddenState) IsTerminal() bool  { return len(s.moves) == 2 }

func (s hiddenState) CurrentPlayer() string {
	if len(s.moves) == 0 {
		return "p"
	}
	return "q"
}

func (s hiddenState) Actions() []string {
	switch len(s.moves) {
	case 0:
		return []string{"a", "b"}
	case 1:
		if s.hidden {
			return []string{"x", "z"}
		}
		return []string{"x"}
	default:
		return nil
	}
}

func (s hiddenState) Apply(_ *rand.Rand, action string) (hiddenState, error) {
	if !slices.Contains(s.Actions(), action) {
		return s, errors.New("not a legal move")
	}
	next := s.Clone()
	next.moves = append(next.moves, action)
	return next, nil
}

func (s hiddenState) Reward(player string) float64 {
	qWins := s.moves[1] == "z"
	if (player == "q") == qWins {
		return 1
	}
	return 0
}

func (s hiddenState) Determinize(rng *rand.Rand, observer string) hiddenState {
	next := s.Clone()
	if observer == "p" {
		next.hidden = rng.Intn(2) == 1
	}
	return next
}

func (s hiddenState) Clone() hiddenState {
	return hiddenState{hidden: s.hidden, moves: slices.Clone(s.moves)}
}
