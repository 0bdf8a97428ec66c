package crazyeights

import (
	"math/rand"
	"testing"

	"github.com/fadedpez/crazyeights/internal/types"
	"github.com/fadedpez/crazyeights/pkg/entities"
	"github.com/stretchr/testify/suite"
)

type GameTestSuite struct {
	suite.Suite
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}

// assertPartition checks that state holds each card of a full deck exactly once
func (s *GameTestSuite) assertPartition(state State) {
	all := append([]entities.Card{}, state.DrawPile...)
	all = append(all, state.DiscardPile...)
	all = append(all, state.PlayerHand...)
	all = append(all, state.OpponentHand...)
	s.Len(all, entities.DeckSize, "Every card should be somewhere")

	ids := make(map[string]bool)
	pairs := make(map[string]bool)
	for _, card := range all {
		s.False(ids[card.ID], "Card %s appears twice", card.ID)
		ids[card.ID] = true
		pairs[card.String()] = true
	}
	s.Len(pairs, entities.DeckSize, "Every rank and suit should be present")
}

// assertRejected checks that err has code and g did not change
func (s *GameTestSuite) assertRejected(g *Game, before State, version uint64, err error, code types.ErrorCode) {
	s.Error(err)
	s.True(types.IsGameError(err, code), "Expected %s, got %v", code, err)
	s.True(types.IsRejection(err))
	s.Equal(before, g.Snapshot(), "Rejected intent should leave state unchanged")
	s.Equal(version, g.Version(), "Rejected intent should not bump the version")
}

func (s *GameTestSuite) TestNewGame() {
	g := NewGame(entities.NewRand(1))

	s.Equal(StatusMenu, g.Status())
	s.Equal(uint64(0), g.Version())
	s.Empty(g.ID)
	s.Equal(0, g.Snapshot().CardCount())
}

func (s *GameTestSuite) TestDealPartitionsDeck() {
	for seed := int64(1); seed <= 200; seed++ {
		// Setup
		g := NewGame(rand.New(rand.NewSource(seed)))

		// Execute
		err := g.Deal()

		// Assert
		s.Require().NoError(err)
		state := g.Snapshot()
		s.assertPartition(state)
		s.Len(state.PlayerHand, InitialHandSize)
		s.Len(state.OpponentHand, InitialHandSize)
		s.Len(state.DiscardPile, 1)
		s.Len(state.DrawPile, entities.DeckSize-2*InitialHandSize-1)
		s.NotEqual(entities.Eight, state.DiscardPile[0].Rank, "Discard must not start with an eight")
		s.Equal(TurnPlayer, state.Turn)
		s.Equal(StatusPlaying, state.Status)
		s.Equal(entities.NoSuit, state.ActiveSuit)
		s.NotEmpty(g.ID)
	}
}

func (s *GameTestSuite) TestDealIsSeeded() {
	first := NewGame(rand.New(rand.NewSource(9)))
	second := NewGame(rand.New(rand.NewSource(9)))

	s.Require().NoError(first.Deal())
	s.Require().NoError(second.Deal())

	s.Equal(first.Snapshot(), second.Snapshot())
	s.Equal(first.ID, second.ID)
}

func (s *GameTestSuite) TestDealSkipsLeadingEights() {
	// Setup
	player := []string{"AH", "2H", "3H", "4H", "5H", "6H", "7H", "9H"}
	opponent := []string{"AC", "2C", "3C", "4C", "5C", "6C", "7C", "9C"}
	used := map[string]bool{}
	for _, id := range append(append([]string{}, player...), opponent...) {
		used[id] = true
	}
	rest := []string{"8H", "8C", "KD"}
	for _, id := range rest {
		used[id] = true
	}
	for _, card := range testDeck() {
		if !used[card.ID] {
			rest = append(rest, card.ID)
		}
	}

	g := newTestGame(State{Status: StatusMenu})
	g.newDeck = func(*rand.Rand) []entities.Card { return dealOrder(player, opponent, rest) }

	// Execute
	err := g.Deal()

	// Assert
	s.Require().NoError(err)
	state := g.Snapshot()
	s.Equal([]string{"KD"}, ids(state.DiscardPile), "First non-eight should start the discard pile")
	s.Equal(player, ids(state.PlayerHand))
	s.Equal(opponent, ids(state.OpponentHand))
	s.Equal("8H", state.DrawPile[0].ID, "Skipped eights should stay in the draw pile in order")
	s.Equal("8C", state.DrawPile[1].ID)
	s.NotContains(ids(state.DrawPile), "KD")
	s.assertPartition(state)
}

func (s *GameTestSuite) TestDealWithOnlyEightsLeft() {
	// Setup
	deck := cards("AH", "2H", "3H", "4H", "5H", "6H", "7H", "9H",
		"AC", "2C", "3C", "4C", "5C", "6C", "7C", "9C",
		"8H", "8D", "8C", "8S")
	g := newTestGame(State{Status: StatusMenu})
	g.newDeck = func(*rand.Rand) []entities.Card { return deck }
	before := g.Snapshot()

	// Execute
	err := g.Deal()

	// Assert
	s.Error(err)
	s.True(types.IsGameError(err, types.ErrInvariantViolation), "Should surface an invariant violation")
	s.False(types.IsRejection(err))
	s.Equal(before, g.Snapshot(), "Failed deal should leave state unchanged")
	s.Equal(uint64(0), g.Version())
}

func (s *GameTestSuite) TestDealRejectsCorruptDeck() {
	// Setup
	deck := testDeck()
	deck[51] = deck[0]
	g := newTestGame(State{Status: StatusMenu})
	g.newDeck = func(*rand.Rand) []entities.Card { return deck }

	// Execute
	err := g.Deal()

	// Assert
	s.True(types.IsGameError(err, types.ErrInvariantViolation), "Duplicate card should fail the state check")
	s.Equal(StatusMenu, g.Status())
}

func (s *GameTestSuite) TestDrawFromPile() {
	// Setup
	g := newTestGame(layout(
		[]string{"2H", "3H"}, []string{"4C", "5C"}, []string{"9D"}, toDrawPile))
	before := g.Snapshot()
	top := before.DrawPile[len(before.DrawPile)-1]

	// Execute
	err := g.Draw(TurnPlayer)

	// Assert
	s.Require().NoError(err)
	after := g.Snapshot()
	s.Len(after.PlayerHand, len(before.PlayerHand)+1, "Hand should grow by one")
	s.Len(after.DrawPile, len(before.DrawPile)-1, "Draw pile should shrink by one")
	s.Equal(top, after.PlayerHand[len(after.PlayerHand)-1], "The top of the draw pile should be drawn")
	s.Equal(TurnOpponent, after.Turn)
	s.Equal(1, after.Moves)
	s.Equal(uint64(1), g.Version())
	s.assertPartition(after)
}

func (s *GameTestSuite) TestDrawWithNothingToRecover() {
	// Setup
	g := newTestGame(layout(
		[]string{"2H", "3H"}, []string{"4C"}, []string{"9D"}, toOpponentHand))
	before := g.Snapshot()

	// Execute
	err := g.Draw(TurnPlayer)

	// Assert
	s.Require().NoError(err)
	after := g.Snapshot()
	s.Equal(TurnOpponent, after.Turn, "Turn should pass even without a card")
	s.Equal(before.PlayerHand, after.PlayerHand)
	s.Equal(before.OpponentHand, after.OpponentHand)
	s.Equal(before.DiscardPile, after.DiscardPile)
	s.Empty(after.DrawPile)
	s.Contains(after.LastAction, "could not draw")
	s.assertPartition(after)
}

func (s *GameTestSuite) TestDrawReshufflesDiscard() {
	// Setup
	g := newTestGame(layout(
		[]string{"2H", "3H"}, []string{"4C", "5C"}, []string{"9D"}, toDiscardBottom))
	g.state.Turn = TurnOpponent
	before := g.Snapshot()
	top := before.DiscardPile[len(before.DiscardPile)-1]

	// Execute
	err := g.Draw(TurnOpponent)

	// Assert
	s.Require().NoError(err)
	after := g.Snapshot()
	s.Equal([]entities.Card{top}, after.DiscardPile, "Only the top card should remain on the discard pile")
	s.Len(after.DrawPile, len(before.DiscardPile)-2, "Draw pile is the old discard minus the top and the drawn card")
	s.Len(after.OpponentHand, len(before.OpponentHand)+1)
	s.NotContains(ids(after.DrawPile), top.ID, "Top card must never be reshuffled")
	s.NotEqual(top.ID, after.OpponentHand[len(after.OpponentHand)-1].ID)
	s.Equal(TurnPlayer, after.Turn)
	s.assertPartition(after)
}

func (s *GameTestSuite) TestDrawRejections() {
	testCases := []struct {
		name  string
		setup func() *Game
		side  Turn
		code  types.ErrorCode
	}{
		{
			name:  "menu",
			setup: func() *Game { return newTestGame(State{Status: StatusMenu}) },
			side:  TurnPlayer,
			code:  types.ErrInvalidState,
		},
		{
			name: "wrong turn",
			setup: func() *Game {
				return newTestGame(layout([]string{"2H"}, []string{"4C"}, []string{"9D"}, toDrawPile))
			},
			side: TurnOpponent,
			code: types.ErrNotPlayerTurn,
		},
		{
			name: "game over",
			setup: func() *Game {
				state := layout([]string{"2H"}, []string{"4C"}, []string{"9D"}, toDrawPile)
				state.Status = StatusWon
				return newTestGame(state)
			},
			side: TurnPlayer,
			code: types.ErrInvalidState,
		},
		{
			name: "awaiting suit",
			setup: func() *Game {
				state := layout([]string{"8H", "2H"}, []string{"4C"}, []string{"9D"}, toDrawPile)
				state.PendingCardID = "8H"
				return newTestGame(state)
			},
			side: TurnPlayer,
			code: types.ErrAwaitingSuit,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Setup
			g := tc.setup()
			before := g.Snapshot()

			// Execute
			err := g.Draw(tc.side)

			// Assert
			s.assertRejected(g, before, 0, err, tc.code)
		})
	}
}

func (s *GameTestSuite) TestPlayRejections() {
	testCases := []struct {
		name   string
		side   Turn
		cardID string
		code   types.ErrorCode
	}{
		{name: "illegal card", side: TurnPlayer, cardID: "5S", code: types.ErrIllegalMove},
		{name: "card not in hand", side: TurnPlayer, cardID: "4C", code: types.ErrCardNotFound},
		{name: "unknown card", side: TurnPlayer, cardID: "nope", code: types.ErrCardNotFound},
		{name: "wrong turn", side: TurnOpponent, cardID: "4C", code: types.ErrNotPlayerTurn},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Setup
			g := newTestGame(layout([]string{"5H", "5S"}, []string{"4C"}, []string{"9H"}, toDrawPile))
			before := g.Snapshot()

			// Execute
			err := g.Play(tc.side, tc.cardID, entities.NoSuit)

			// Assert
			s.assertRejected(g, before, 0, err, tc.code)
		})
	}
}

func (s *GameTestSuite) TestPlayNonEight() {
	// Setup
	state := layout([]string{"5C", "KD"}, []string{"4C", "6S"}, []string{"9H", "8D"}, toDrawPile)
	state.ActiveSuit = entities.Clubs
	g := newTestGame(state)

	// Execute
	err := g.Play(TurnPlayer, "5C", entities.Spades)

	// Assert
	s.Require().NoError(err)
	after := g.Snapshot()
	s.Equal([]string{"KD"}, ids(after.PlayerHand))
	s.Equal("5C", after.DiscardPile[len(after.DiscardPile)-1].ID)
	s.Equal(entities.NoSuit, after.ActiveSuit, "A non-eight clears the active suit")
	s.Equal(TurnOpponent, after.Turn)
	s.Equal("You played 5♣.", after.LastAction)
	s.assertPartition(after)
}

func (s *GameTestSuite) TestPlayerEightWaitsForSuit() {
	// Setup
	g := newTestGame(layout([]string{"8S", "5H"}, []string{"4C", "6D"}, []string{"9D"}, toDrawPile))
	before := g.Snapshot()

	// Execute
	err := g.Play(TurnPlayer, "8S", entities.NoSuit)

	// Assert
	s.Require().NoError(err)
	pending := g.Snapshot()
	s.Equal("8S", pending.PendingCardID)
	s.Equal(before.PlayerHand, pending.PlayerHand, "No card moves until the suit is chosen")
	s.Equal(before.DiscardPile, pending.DiscardPile)
	s.Equal(TurnPlayer, pending.Turn)

	view := g.View()
	s.True(view.AwaitingSuit)
	s.Require().NotNil(view.PendingCard)
	s.Equal("8S", view.PendingCard.ID)
	s.Empty(view.PlayableCards, "Nothing is playable while a suit is awaited")

	// Other intents are refused while waiting
	version := g.Version()
	s.assertRejected(g, pending, version, g.Draw(TurnPlayer), types.ErrAwaitingSuit)
	s.assertRejected(g, pending, version, g.Play(TurnPlayer, "5H", entities.NoSuit), types.ErrAwaitingSuit)
	s.assertRejected(g, pending, version, g.SelectSuit("STARS"), types.ErrInvalidArgument)

	// Execute
	err = g.SelectSuit(entities.Clubs)

	// Assert
	s.Require().NoError(err)
	after := g.Snapshot()
	s.Empty(after.PendingCardID)
	s.Equal([]string{"5H"}, ids(after.PlayerHand))
	s.Equal("8S", after.DiscardPile[len(after.DiscardPile)-1].ID)
	s.Equal(entities.Clubs, after.ActiveSuit)
	s.Equal(TurnOpponent, after.Turn)
	s.Equal(1, after.Moves, "Choosing the suit completes a single move")
	s.assertPartition(after)
}

func (s *GameTestSuite) TestPlayerEightWithSuit() {
	// Setup
	g := newTestGame(layout([]string{"8S", "5H"}, []string{"4C"}, []string{"9D"}, toDrawPile))

	// Execute
	err := g.Play(TurnPlayer, "8S", entities.Diamonds)

	// Assert
	s.Require().NoError(err)
	after := g.Snapshot()
	s.Empty(after.PendingCardID)
	s.Equal(entities.Diamonds, after.ActiveSuit)
	s.Equal(TurnOpponent, after.Turn)
}

func (s *GameTestSuite) TestSelectSuitWithoutPendingEight() {
	g := newTestGame(layout([]string{"5H"}, []string{"4C"}, []string{"9D"}, toDrawPile))
	before := g.Snapshot()

	s.assertRejected(g, before, 0, g.SelectSuit(entities.Hearts), types.ErrInvalidState)
}

func (s *GameTestSuite) TestOpponentEightChoosesMostHeldSuit() {
	// Setup
	state := layout([]string{"2D", "3D"}, []string{"8S", "5H", "7H", "2C"}, []string{"KD"}, toDrawPile)
	state.Turn = TurnOpponent
	g := newTestGame(state)

	// Execute
	err := g.PlayOpponentTurn()

	// Assert
	s.Require().NoError(err)
	after := g.Snapshot()
	s.Equal("8S", after.DiscardPile[len(after.DiscardPile)-1].ID)
	s.Equal(entities.Hearts, after.ActiveSuit)
	s.Equal([]string{"5H", "7H", "2C"}, ids(after.OpponentHand))
	s.Equal(TurnPlayer, after.Turn)
	s.Equal("Opponent played 8♠ and chose HEARTS.", after.LastAction)
}

func (s *GameTestSuite) TestOpponentEightIgnoresSuppliedSuit() {
	state := layout([]string{"2D"}, []string{"8S", "5H", "7H"}, []string{"KD"}, toDrawPile)
	state.Turn = TurnOpponent
	g := newTestGame(state)

	s.Require().NoError(g.Play(TurnOpponent, "8S", entities.Spades))
	s.Equal(entities.Hearts, g.Snapshot().ActiveSuit, "The opponent always names its own suit")
}

func (s *GameTestSuite) TestPlayOpponentTurnRejected() {
	g := newTestGame(layout([]string{"2D"}, []string{"5H"}, []string{"KD"}, toDrawPile))
	before := g.Snapshot()

	s.assertRejected(g, before, 0, g.PlayOpponentTurn(), types.ErrNotPlayerTurn)
}

func (s *GameTestSuite) TestPlayerWins() {
	// Setup
	g := newTestGame(layout([]string{"5H"}, []string{"4C", "6S"}, []string{"9H"}, toDrawPile))

	// Execute
	err := g.Play(TurnPlayer, "5H", entities.NoSuit)

	// Assert
	s.Require().NoError(err)
	s.Equal(StatusWon, g.Status())
	s.Equal("You won!", g.View().LastAction)
	s.Empty(g.View().PlayableCards)

	before := g.Snapshot()
	version := g.Version()
	s.assertRejected(g, before, version, g.Draw(TurnOpponent), types.ErrInvalidState)
	s.assertRejected(g, before, version, g.Play(TurnOpponent, "4C", entities.NoSuit), types.ErrInvalidState)

	result, ok := g.Result("user-1", "channel-1")
	s.Require().True(ok)
	s.Equal(entities.OutcomeWin, result.Outcome)
	s.Equal("game-1", result.GameID)
	s.Equal("user-1", result.PlayerID)
	s.Equal("channel-1", result.ChannelID)
	s.Equal(entities.GameTypeCrazyEights, result.GameType)
	s.Equal(1, result.Moves)
}

func (s *GameTestSuite) TestOpponentWins() {
	// Setup
	state := layout([]string{"2D", "3D"}, []string{"9S"}, []string{"9H"}, toDrawPile)
	state.Turn = TurnOpponent
	g := newTestGame(state)

	// Execute
	err := g.PlayOpponentTurn()

	// Assert
	s.Require().NoError(err)
	s.Equal(StatusLost, g.Status())
	result, ok := g.Result("user-1", "channel-1")
	s.Require().True(ok)
	s.Equal(entities.OutcomeLose, result.Outcome)
}

func (s *GameTestSuite) TestResultWhilePlaying() {
	g := newTestGame(layout([]string{"2D"}, []string{"9S"}, []string{"9H"}, toDrawPile))

	result, ok := g.Result("user-1", "channel-1")

	s.False(ok)
	s.Nil(result)
}

func (s *GameTestSuite) TestDealPlayDrawScenario() {
	// Setup
	player := []string{"5H", "2C", "3C", "4C", "6C", "7C", "JC", "10C"}
	opponent := []string{"2S", "3S", "4S", "6S", "7S", "9S", "10S", "JS"}
	rest := []string{"9H"}
	used := map[string]bool{"9H": true}
	for _, id := range append(append([]string{}, player...), opponent...) {
		used[id] = true
	}
	for _, card := range testDeck() {
		if !used[card.ID] && card.ID != "QD" {
			rest = append(rest, card.ID)
		}
	}
	rest = append(rest, "QD")

	g := newTestGame(State{Status: StatusMenu})
	g.newDeck = func(*rand.Rand) []entities.Card { return dealOrder(player, opponent, rest) }

	// Execute: deal
	s.Require().NoError(g.Deal())

	// Assert
	view := g.View()
	s.Equal(StatusPlaying, view.Status)
	s.Equal(TurnPlayer, view.Turn)
	s.Require().NotNil(view.TopCard)
	s.Equal("9H", view.TopCard.ID)
	s.Equal([]string{"5H"}, ids(view.PlayableCards))
	s.Equal(InitialHandSize, view.OpponentCount)

	// Execute: the player follows suit
	s.Require().NoError(g.Play(TurnPlayer, "5H", entities.NoSuit))

	// Assert
	view = g.View()
	s.Equal(TurnOpponent, view.Turn)
	s.Equal("5H", view.TopCard.ID)
	s.Len(view.PlayerHand, InitialHandSize-1)
	s.Empty(view.PlayableCards, "Nothing is playable on the opponent's turn")

	// Execute: the opponent has nothing to play and must draw
	move, err := g.OpponentMove()
	s.Require().NoError(err)
	s.True(move.Draw)
	s.Require().NoError(g.PlayOpponentTurn())

	// Assert
	view = g.View()
	s.Equal(TurnPlayer, view.Turn)
	s.Equal(InitialHandSize+1, view.OpponentCount)
	s.Equal("QD", g.Snapshot().OpponentHand[InitialHandSize].ID, "Opponent should draw the top of the pile")
	s.Equal("Opponent drew a card.", view.LastAction)
	s.Equal(2, view.Moves)
	s.assertPartition(g.Snapshot())
}

func (s *GameTestSuite) TestRestartAfterWin() {
	// Setup
	g := NewGame(rand.New(rand.NewSource(5)))
	s.Require().NoError(g.Deal())
	firstID := g.ID
	g.state = layout([]string{"5H"}, []string{"4C"}, []string{"9H"}, toDrawPile)
	s.Require().NoError(g.Play(TurnPlayer, "5H", entities.NoSuit))
	s.Require().Equal(StatusWon, g.Status())

	// Execute
	err := g.Restart()

	// Assert
	s.Require().NoError(err)
	state := g.Snapshot()
	s.assertPartition(state)
	s.Equal(StatusPlaying, state.Status)
	s.Equal(TurnPlayer, state.Turn)
	s.Equal(entities.NoSuit, state.ActiveSuit)
	s.Equal(0, state.Moves)
	s.Len(state.PlayerHand, InitialHandSize)
	s.NotEqual(firstID, g.ID, "Restart should start a new game")
}

func (s *GameTestSuite) TestReset() {
	// Setup
	g := NewGame(rand.New(rand.NewSource(5)))
	s.Require().NoError(g.Deal())

	// Execute
	err := g.Reset()

	// Assert
	s.Require().NoError(err)
	s.Equal(StatusMenu, g.Status())
	s.Empty(g.ID)
	s.Equal(0, g.Snapshot().CardCount())
	s.Equal(uint64(2), g.Version())
}

func (s *GameTestSuite) TestViewHidesOpponentHand() {
	g := newTestGame(layout([]string{"5H", "KS"}, []string{"4C", "6S", "7D"}, []string{"9H"}, toDrawPile))

	view := g.View()

	s.Equal(3, view.OpponentCount)
	s.Equal(2, len(view.PlayerHand))
	s.Equal(entities.DeckSize-6, view.DrawCount)
	s.Equal(1, view.DiscardCount)
	s.Equal(entities.Hearts, view.SuitInForce())
	s.True(view.PlayerCanAct())
	s.Equal([]string{"5H"}, ids(view.PlayableCards))
}

// TestRandomGamesKeepInvariants plays whole games with the player using the
// opponent's own policy and checks the state after every move
func (s *GameTestSuite) TestRandomGamesKeepInvariants() {
	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGame(rng)
		policy := NewOpponent(rng)
		s.Require().NoError(g.Deal())

		for step := 0; step < 1000 && g.Status() == StatusPlaying; step++ {
			if g.Turn() == TurnOpponent {
				s.Require().NoError(g.PlayOpponentTurn())
			} else {
				state := g.Snapshot()
				top, _ := state.TopCard()
				move := policy.ChooseMove(state.PlayerHand, top, state.ActiveSuit)
				if move.Draw {
					s.Require().NoError(g.Draw(TurnPlayer))
				} else {
					s.Require().NoError(g.Play(TurnPlayer, move.Card.ID, move.Suit))
				}
			}
			s.assertPartition(g.Snapshot())
		}
	}
}
