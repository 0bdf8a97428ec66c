package crazyeights

import (
	"fmt"

	"github.com/fadedpez/crazyeights/pkg/entities"
)

// Turn identifies which side may act
type Turn string

const (
	TurnPlayer   Turn = "player"
	TurnOpponent Turn = "opponent"
)

// Other returns the side that acts after t
func (t Turn) Other() Turn {
	if t == TurnPlayer {
		return TurnOpponent
	}
	return TurnPlayer
}

// Label returns the name used for t in action summaries
func (t Turn) Label() string {
	if t == TurnPlayer {
		return "You"
	}
	return "Opponent"
}

// Status represents where the game is in its lifecycle
type Status string

const (
	StatusMenu    Status = "menu"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// IsFinished returns true once either side has emptied its hand
func (s Status) IsFinished() bool {
	return s == StatusWon || s == StatusLost
}

// State is the complete state of one game. The draw pile is a stack whose top
// is the last element; the top of the discard pile is its last element too.
type State struct {
	DrawPile     []entities.Card
	PlayerHand   []entities.Card
	OpponentHand []entities.Card
	DiscardPile  []entities.Card
	ActiveSuit   entities.Suit
	Turn         Turn
	Status       Status
	LastAction   string
	Moves        int

	// PendingCardID is the eight the player has chosen but not yet named a
	// suit for. It stays in the player's hand until the suit arrives.
	PendingCardID string
}

// clone returns a deep copy so a transition can be computed without touching
// the committed state
func (s State) clone() State {
	next := s
	next.DrawPile = cloneCards(s.DrawPile)
	next.PlayerHand = cloneCards(s.PlayerHand)
	next.OpponentHand = cloneCards(s.OpponentHand)
	next.DiscardPile = cloneCards(s.DiscardPile)
	return next
}

func cloneCards(cards []entities.Card) []entities.Card {
	if cards == nil {
		return nil
	}
	out := make([]entities.Card, len(cards))
	copy(out, cards)
	return out
}

// hand returns the hand owned by side
func (s *State) hand(side Turn) *[]entities.Card {
	if side == TurnPlayer {
		return &s.PlayerHand
	}
	return &s.OpponentHand
}

// TopCard returns the top of the discard pile
func (s *State) TopCard() (entities.Card, bool) {
	if len(s.DiscardPile) == 0 {
		return entities.Card{}, false
	}
	return s.DiscardPile[len(s.DiscardPile)-1], true
}

// CardCount returns the number of cards across all four locations
func (s State) CardCount() int {
	return len(s.DrawPile) + len(s.DiscardPile) + len(s.PlayerHand) + len(s.OpponentHand)
}

// verify checks that every card is in exactly one place and that a game in
// play has something to match against
func (s *State) verify() error {
	if s.Status == StatusMenu {
		if s.CardCount() != 0 {
			return fmt.Errorf("menu state holds %d cards", s.CardCount())
		}
		return nil
	}

	if count := s.CardCount(); count != entities.DeckSize {
		return fmt.Errorf("card count is %d, want %d", count, entities.DeckSize)
	}

	seen := make(map[string]string, entities.DeckSize)
	locations := []struct {
		name  string
		cards []entities.Card
	}{
		{"draw pile", s.DrawPile},
		{"discard pile", s.DiscardPile},
		{"player hand", s.PlayerHand},
		{"opponent hand", s.OpponentHand},
	}
	for _, loc := range locations {
		for _, card := range loc.cards {
			if where, ok := seen[card.ID]; ok {
				return fmt.Errorf("card %s is in both the %s and the %s", card.ID, where, loc.name)
			}
			seen[card.ID] = loc.name
		}
	}

	if s.Status == StatusPlaying && len(s.DiscardPile) == 0 {
		return fmt.Errorf("discard pile is empty during play")
	}

	if s.PendingCardID != "" {
		if s.Status != StatusPlaying {
			return fmt.Errorf("pending eight outside of play")
		}
		if _, ok := findCard(s.PlayerHand, s.PendingCardID); !ok {
			return fmt.Errorf("pending card %s is not in the player hand", s.PendingCardID)
		}
	}

	return nil
}

// checkWin moves a game in play to won or lost once a hand is empty
func (s *State) checkWin() {
	if s.Status != StatusPlaying {
		return
	}
	switch {
	case len(s.PlayerHand) == 0:
		s.Status = StatusWon
		s.LastAction = "You won!"
	case len(s.OpponentHand) == 0:
		s.Status = StatusLost
		s.LastAction = "Opponent won!"
	}
}

// findCard returns the index of the card with id in cards
func findCard(cards []entities.Card, id string) (int, bool) {
	for i, card := range cards {
		if card.ID == id {
			return i, true
		}
	}
	return -1, false
}

// removeCard returns cards without the card at index i, keeping order
func removeCard(cards []entities.Card, i int) []entities.Card {
	out := make([]entities.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}
