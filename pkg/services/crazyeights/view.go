package crazyeights

import (
	"github.com/fadedpez/crazyeights/pkg/entities"
)

// View is the read model handed to the presentation layer. The opponent's
// hand is reduced to a count and the draw pile to its size.
type View struct {
	GameID        string
	Version       uint64
	Status        Status
	Turn          Turn
	PlayerHand    []entities.Card
	PlayableCards []entities.Card
	OpponentCount int
	DrawCount     int
	DiscardCount  int
	TopCard       *entities.Card
	ActiveSuit    entities.Suit
	LastAction    string
	Moves         int

	// AwaitingSuit is set while the player's eight waits for a suit
	AwaitingSuit bool
	PendingCard  *entities.Card

	// Paused is filled in by the table that hosts the game
	Paused bool
}

// PlayerCanAct returns true when the player may draw or play
func (v View) PlayerCanAct() bool {
	return v.Status == StatusPlaying && v.Turn == TurnPlayer && !v.AwaitingSuit && !v.Paused
}

// SuitInForce returns the suit a card has to match, which is the active suit
// when an eight set one and the top card's suit otherwise
func (v View) SuitInForce() entities.Suit {
	if v.ActiveSuit != entities.NoSuit {
		return v.ActiveSuit
	}
	if v.TopCard != nil {
		return v.TopCard.Suit
	}
	return entities.NoSuit
}

func newView(id string, version uint64, s *State) View {
	view := View{
		GameID:        id,
		Version:       version,
		Status:        s.Status,
		Turn:          s.Turn,
		PlayerHand:    cloneCards(s.PlayerHand),
		OpponentCount: len(s.OpponentHand),
		DrawCount:     len(s.DrawPile),
		DiscardCount:  len(s.DiscardPile),
		ActiveSuit:    s.ActiveSuit,
		LastAction:    s.LastAction,
		Moves:         s.Moves,
		AwaitingSuit:  s.PendingCardID != "",
	}

	top, hasTop := s.TopCard()
	if hasTop {
		view.TopCard = &top
	}

	if view.AwaitingSuit {
		if i, ok := findCard(s.PlayerHand, s.PendingCardID); ok {
			pending := s.PlayerHand[i]
			view.PendingCard = &pending
		}
	}

	if s.Status == StatusPlaying && s.Turn == TurnPlayer && !view.AwaitingSuit && hasTop {
		view.PlayableCards = LegalMoves(s.PlayerHand, top, s.ActiveSuit)
	}

	return view
}
