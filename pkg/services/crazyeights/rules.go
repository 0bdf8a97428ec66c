package crazyeights

import (
	"github.com/fadedpez/crazyeights/pkg/entities"
)

const (
	InitialHandSize = 8 // Cards dealt to each side at the start of a game
)

// IsValidMove reports whether card may be played on top. An eight is always
// legal. Otherwise the card must match the rank of top, or the suit that is
// in force: activeSuit when set, top's own suit when not.
func IsValidMove(card, top entities.Card, activeSuit entities.Suit) bool {
	if card.IsWild() {
		return true
	}

	target := top.Suit
	if activeSuit != entities.NoSuit {
		target = activeSuit
	}

	return card.Suit == target || card.Rank == top.Rank
}

// LegalMoves returns the cards of hand that may be played, in hand order
func LegalMoves(hand []entities.Card, top entities.Card, activeSuit entities.Suit) []entities.Card {
	legal := make([]entities.Card, 0, len(hand))
	for _, card := range hand {
		if IsValidMove(card, top, activeSuit) {
			legal = append(legal, card)
		}
	}
	return legal
}
