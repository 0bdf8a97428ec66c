package crazyeights

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fadedpez/crazyeights/internal/types"
	"github.com/fadedpez/crazyeights/pkg/entities"
	"github.com/google/uuid"
)

// Game is the state machine for one human against the computer. Every
// transition is computed on a copy of the state, checked, and only then
// committed, so a rejected or failed transition leaves the game untouched.
//
// Game is not safe for concurrent use; the table that owns it serializes
// access.
type Game struct {
	ID        string
	StartedAt time.Time

	state    State
	version  uint64
	rng      *rand.Rand
	opponent *Opponent

	newDeck func(rng *rand.Rand) []entities.Card
	now     func() time.Time
}

// NewGame creates a game sitting at the menu. All shuffling, opponent choices
// and game ids are drawn from rng.
func NewGame(rng *rand.Rand) *Game {
	return &Game{
		state: State{
			Status:     StatusMenu,
			LastAction: "Press Deal to start a game.",
		},
		rng:      rng,
		opponent: NewOpponent(rng),
		newDeck: func(rng *rand.Rand) []entities.Card {
			return entities.NewDeck(rng).Cards
		},
		now: time.Now,
	}
}

// Status returns the current game status
func (g *Game) Status() Status {
	return g.state.Status
}

// Turn returns the side that may act next
func (g *Game) Turn() Turn {
	return g.state.Turn
}

// Version increases by one with every committed transition
func (g *Game) Version() uint64 {
	return g.version
}

// Snapshot returns a deep copy of the full state, opponent hand included
func (g *Game) Snapshot() State {
	return g.state.clone()
}

// View returns the read model of the current state
func (g *Game) View() View {
	return newView(g.ID, g.version, &g.state)
}

// commit verifies next and makes it the current state
func (g *Game) commit(next State) error {
	if err := next.verify(); err != nil {
		return types.WrapError(types.ErrInvariantViolation, "game state check failed", err)
	}
	g.state = next
	g.version++
	return nil
}

// Deal throws away any current game and starts a new one
func (g *Game) Deal() error {
	next, err := dealState(g.newDeck(g.rng))
	if err != nil {
		return err
	}
	if err := g.commit(next); err != nil {
		return err
	}

	g.ID = g.newID()
	g.StartedAt = g.now()
	return nil
}

// Restart is Deal under the name the table uses once a game has begun
func (g *Game) Restart() error {
	return g.Deal()
}

// Reset abandons any game and goes back to the menu
func (g *Game) Reset() error {
	next := State{
		Status:     StatusMenu,
		LastAction: "Game abandoned.",
	}
	if err := g.commit(next); err != nil {
		return err
	}
	g.ID = ""
	return nil
}

func (g *Game) newID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// dealState lays out a shuffled deck: the first cards go to the player, the
// next to the opponent, the first non-eight after that starts the discard
// pile and everything else is the draw pile.
func dealState(deck []entities.Card) (State, error) {
	if len(deck) < 2*InitialHandSize+1 {
		return State{}, types.NewGameError(types.ErrInvariantViolation,
			fmt.Sprintf("deck of %d cards is too small to deal", len(deck)))
	}

	player := cloneCards(deck[:InitialHandSize])
	opponent := cloneCards(deck[InitialHandSize : 2*InitialHandSize])
	rest := deck[2*InitialHandSize:]

	first := -1
	for i, card := range rest {
		if !card.IsWild() {
			first = i
			break
		}
	}
	if first < 0 {
		return State{}, types.NewGameError(types.ErrInvariantViolation,
			"no card other than an eight is left to start the discard pile")
	}

	return State{
		DrawPile:     removeCard(rest, first),
		PlayerHand:   player,
		OpponentHand: opponent,
		DiscardPile:  []entities.Card{rest[first]},
		ActiveSuit:   entities.NoSuit,
		Turn:         TurnPlayer,
		Status:       StatusPlaying,
		LastAction:   "Game started! Your turn.",
	}, nil
}

// checkActor rejects intents from side when it may not act right now
func (g *Game) checkActor(side Turn) error {
	if g.state.Status != StatusPlaying {
		return types.NewGameError(types.ErrInvalidState, fmt.Sprintf("game is %s, not playing", g.state.Status))
	}
	if g.state.PendingCardID != "" {
		return types.NewGameError(types.ErrAwaitingSuit, "a suit must be chosen for the eight first")
	}
	if g.state.Turn != side {
		return types.NewGameError(types.ErrNotPlayerTurn, fmt.Sprintf("it is not %s turn", possessive(side)))
	}
	return nil
}

// Draw gives side one card and passes the turn. When the draw pile is empty
// the discard pile, minus its top card, is shuffled into a new draw pile. When
// that leaves nothing to draw the turn passes without a card.
func (g *Game) Draw(side Turn) error {
	if err := g.checkActor(side); err != nil {
		return err
	}

	next := g.state.clone()
	hand := next.hand(side)

	if len(next.DrawPile) == 0 {
		if len(next.DiscardPile) <= 1 {
			next.Turn = side.Other()
			next.Moves++
			next.LastAction = fmt.Sprintf("%s could not draw: no cards left. Turn passes.", side.Label())
			return g.commit(next)
		}

		top := next.DiscardPile[len(next.DiscardPile)-1]
		next.DrawPile = entities.Shuffle(next.DiscardPile[:len(next.DiscardPile)-1], g.rng)
		next.DiscardPile = []entities.Card{top}
	}

	card := next.DrawPile[len(next.DrawPile)-1]
	next.DrawPile = next.DrawPile[:len(next.DrawPile)-1]
	*hand = append(*hand, card)

	next.Turn = side.Other()
	next.Moves++
	next.LastAction = fmt.Sprintf("%s drew a card.", side.Label())
	next.checkWin()

	return g.commit(next)
}

// Play puts cardID from side's hand on the discard pile. An eight needs a
// suit: the opponent names one itself, and when the player has not supplied
// one the play waits for SelectSuit without moving any card.
func (g *Game) Play(side Turn, cardID string, suit entities.Suit) error {
	if err := g.checkActor(side); err != nil {
		return err
	}

	i, ok := findCard(*g.state.hand(side), cardID)
	if !ok {
		return types.NewGameError(types.ErrCardNotFound, fmt.Sprintf("card %s is not in %s hand", cardID, possessive(side)))
	}
	card := (*g.state.hand(side))[i]

	top, _ := g.state.TopCard()
	if !IsValidMove(card, top, g.state.ActiveSuit) {
		return types.NewGameError(types.ErrIllegalMove, fmt.Sprintf("%s cannot be played on %s", card.Short(), top.Short()))
	}

	if !card.IsWild() {
		return g.play(side, card, entities.NoSuit)
	}

	if side == TurnOpponent {
		return g.play(side, card, ChooseSuit(without(g.state.OpponentHand, card.ID)))
	}

	if suit.Valid() {
		return g.play(side, card, suit)
	}

	next := g.state.clone()
	next.PendingCardID = card.ID
	next.LastAction = fmt.Sprintf("Choose a suit for your %s.", card.Short())
	return g.commit(next)
}

// SelectSuit completes the player's pending eight
func (g *Game) SelectSuit(suit entities.Suit) error {
	if g.state.Status != StatusPlaying || g.state.PendingCardID == "" {
		return types.NewGameError(types.ErrInvalidState, "no eight is waiting for a suit")
	}
	if !suit.Valid() {
		return types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("unknown suit %q", suit))
	}

	i, ok := findCard(g.state.PlayerHand, g.state.PendingCardID)
	if !ok {
		return types.NewGameError(types.ErrInvariantViolation, "pending eight is missing from the player hand")
	}
	return g.play(TurnPlayer, g.state.PlayerHand[i], suit)
}

// play moves card from side's hand to the discard pile and sets the active
// suit, which is cleared by anything but an eight
func (g *Game) play(side Turn, card entities.Card, suit entities.Suit) error {
	next := g.state.clone()
	hand := next.hand(side)

	i, ok := findCard(*hand, card.ID)
	if !ok {
		return types.NewGameError(types.ErrCardNotFound, fmt.Sprintf("card %s is not in %s hand", card.ID, possessive(side)))
	}
	*hand = removeCard(*hand, i)
	next.DiscardPile = append(next.DiscardPile, card)
	next.ActiveSuit = suit
	next.PendingCardID = ""
	next.Turn = side.Other()
	next.Moves++

	if suit != entities.NoSuit {
		next.LastAction = fmt.Sprintf("%s played %s and chose %s.", side.Label(), card.Short(), suit)
	} else {
		next.LastAction = fmt.Sprintf("%s played %s.", side.Label(), card.Short())
	}
	next.checkWin()

	return g.commit(next)
}

// OpponentMove returns what the opponent would do in the current state
func (g *Game) OpponentMove() (Move, error) {
	if err := g.checkActor(TurnOpponent); err != nil {
		return Move{}, err
	}
	top, _ := g.state.TopCard()
	return g.opponent.ChooseMove(g.state.OpponentHand, top, g.state.ActiveSuit), nil
}

// PlayOpponentTurn lets the opponent take its turn
func (g *Game) PlayOpponentTurn() error {
	move, err := g.OpponentMove()
	if err != nil {
		return err
	}
	if move.Draw {
		return g.Draw(TurnOpponent)
	}
	return g.Play(TurnOpponent, move.Card.ID, move.Suit)
}

// Result returns the outcome of a finished game for playerID
func (g *Game) Result(playerID, channelID string) (*entities.GameResult, bool) {
	if !g.state.Status.IsFinished() {
		return nil, false
	}

	outcome := entities.OutcomeLose
	if g.state.Status == StatusWon {
		outcome = entities.OutcomeWin
	}

	return &entities.GameResult{
		GameID:      g.ID,
		GameType:    entities.GameTypeCrazyEights,
		ChannelID:   channelID,
		PlayerID:    playerID,
		Outcome:     outcome,
		Moves:       g.state.Moves,
		StartedAt:   g.StartedAt,
		CompletedAt: g.now(),
	}, true
}

func possessive(side Turn) string {
	if side == TurnPlayer {
		return "your"
	}
	return "the opponent's"
}
