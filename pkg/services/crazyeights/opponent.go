package crazyeights

import (
	"math/rand"

	"github.com/fadedpez/crazyeights/pkg/entities"
)

// Move is the opponent's decision for one turn: draw, or play Card naming
// Suit when Card is an eight
type Move struct {
	Draw bool
	Card entities.Card
	Suit entities.Suit
}

// Opponent is the computer player's move policy
type Opponent struct {
	rng *rand.Rand
}

// NewOpponent creates an opponent that breaks ties between playable cards
// with rng
func NewOpponent(rng *rand.Rand) *Opponent {
	return &Opponent{rng: rng}
}

// ChooseMove picks a move for hand. It draws when nothing is playable, picks
// uniformly among playable non-eights when there are any, and only falls back
// to an eight when every playable card is one.
func (o *Opponent) ChooseMove(hand []entities.Card, top entities.Card, activeSuit entities.Suit) Move {
	legal := LegalMoves(hand, top, activeSuit)
	if len(legal) == 0 {
		return Move{Draw: true}
	}

	plain := make([]entities.Card, 0, len(legal))
	for _, card := range legal {
		if !card.IsWild() {
			plain = append(plain, card)
		}
	}

	if len(plain) > 0 {
		return Move{Card: plain[o.rng.Intn(len(plain))]}
	}

	eight := legal[0]
	return Move{Card: eight, Suit: ChooseSuit(without(hand, eight.ID))}
}

// ChooseSuit names the suit held most often in remaining. Ties go to the suit
// listed first in entities.Suits, so an empty hand gives hearts.
func ChooseSuit(remaining []entities.Card) entities.Suit {
	counts := make(map[entities.Suit]int, len(entities.Suits))
	for _, card := range remaining {
		counts[card.Suit]++
	}

	best := entities.Suits[0]
	for _, suit := range entities.Suits[1:] {
		if counts[suit] > counts[best] {
			best = suit
		}
	}
	return best
}

func without(hand []entities.Card, id string) []entities.Card {
	if i, ok := findCard(hand, id); ok {
		return removeCard(hand, i)
	}
	return hand
}
