package crazyeights

import (
	"math/rand"
	"time"

	"github.com/fadedpez/crazyeights/pkg/entities"
)

// testDeck is a full deck in suit then rank order with readable ids such as
// "8S" or "10H"
func testDeck() []entities.Card {
	cards := make([]entities.Card, 0, entities.DeckSize)
	for _, suit := range entities.Suits {
		for _, rank := range entities.Ranks {
			cards = append(cards, entities.NewCard(string(rank)+string(suit)[:1], suit, rank))
		}
	}
	return cards
}

// c returns the test deck card with the given id
func c(id string) entities.Card {
	for _, card := range testDeck() {
		if card.ID == id {
			return card
		}
	}
	panic("no test card " + id)
}

func cards(ids ...string) []entities.Card {
	out := make([]entities.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, c(id))
	}
	return out
}

// leftover names where the cards not placed explicitly end up
type leftover int

const (
	toDrawPile leftover = iota
	toDiscardBottom
	toOpponentHand
)

// layout builds a playing state holding the whole deck, with the player's
// turn unless changed afterwards
func layout(player, opponent, discard []string, rest leftover) State {
	used := make(map[string]bool)
	for _, ids := range [][]string{player, opponent, discard} {
		for _, id := range ids {
			used[id] = true
		}
	}

	var remaining []entities.Card
	for _, card := range testDeck() {
		if !used[card.ID] {
			remaining = append(remaining, card)
		}
	}

	s := State{
		PlayerHand:   cards(player...),
		OpponentHand: cards(opponent...),
		DiscardPile:  cards(discard...),
		Turn:         TurnPlayer,
		Status:       StatusPlaying,
	}
	switch rest {
	case toDrawPile:
		s.DrawPile = remaining
	case toDiscardBottom:
		s.DiscardPile = append(remaining, s.DiscardPile...)
	case toOpponentHand:
		s.OpponentHand = append(s.OpponentHand, remaining...)
	}
	return s
}

// newTestGame returns a game on a fixed seed and clock with state installed
func newTestGame(state State) *Game {
	g := NewGame(rand.New(rand.NewSource(1)))
	g.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	g.ID = "game-1"
	g.state = state
	return g
}

// dealOrder returns a deck that Deal lays out as player, opponent, then the
// remaining cards in the given order
func dealOrder(player, opponent, rest []string) []entities.Card {
	deck := cards(player...)
	deck = append(deck, cards(opponent...)...)
	return append(deck, cards(rest...)...)
}

func ids(cards []entities.Card) []string {
	out := make([]string, 0, len(cards))
	for _, card := range cards {
		out = append(out, card.ID)
	}
	return out
}
