package entities

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// DeckSize is the number of cards in a full deck
const DeckSize = 52

type Deck struct {
	Cards []Card
}

// NewRand returns a random source seeded with seed, or with the clock when
// seed is zero
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewDeck creates a shuffled deck of 52 cards, one of each rank and suit.
// Card IDs are drawn from rng so a seeded source reproduces the whole deck.
func NewDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(newCardID(rng), suit, rank))
		}
	}

	return &Deck{Cards: Shuffle(cards, rng)}
}

func newCardID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Shuffle returns a uniformly permuted copy of cards. The input is not
// modified.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)

	// Fisher-Yates: position i takes a uniform pick from [0, i]
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.Cards)
}

// Draw removes and returns the top card, which is the last card of the slice
func (d *Deck) Draw() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	card := d.Cards[len(d.Cards)-1]
	d.Cards = d.Cards[:len(d.Cards)-1]
	return card, true
}
