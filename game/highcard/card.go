package highcard

import (
	"slices"
	"strconv"

	"golang.org/x/exp/rand"
)

// Card is a rank. Higher ranks win showdowns.
type Card int

func (c Card) String() string {
	return "card" + strconv.Itoa(int(c))
}

// Deck holds distinct ranks 1..n.
type Deck []Card

func NewDeck(size int) Deck {
	d := make(Deck, size)
	for i := range d {
		d[i] = Card(i + 1)
	}
	return d
}

// Without returns the deck minus the given cards.
func (d Deck) Without(cards ...Card) Deck {
	rest := make(Deck, 0, len(d))
	for _, c := range d {
		if !slices.Contains(cards, c) {
			rest = append(rest, c)
		}
	}
	return rest
}

// Draw picks a card uniformly at random.
func (d Deck) Draw(rng *rand.Rand) Card {
	return d[rng.Intn(len(d))]
}

func (d Deck) Shuffled(rng *rand.Rand) Deck {
	s := slices.Clone(d)
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
	return s
}
