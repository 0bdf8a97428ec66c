package crazyeights

import (
	"math/rand"
	"sync"
	"time"

	"github.com/fadedpez/crazyeights/internal/logging"
	"github.com/fadedpez/crazyeights/internal/types"
	"github.com/fadedpez/crazyeights/pkg/entities"
	engine "github.com/fadedpez/crazyeights/pkg/services/crazyeights"
)

// DefaultOpponentDelay is how long the opponent "thinks" before moving
const DefaultOpponentDelay = 1500 * time.Millisecond

// TableOptions configures a Table
type TableOptions struct {
	ChannelID string
	OwnerID   string
	Delay     time.Duration
	Rand      *rand.Rand
	Clock     Clock
	Logger    *logging.Logger

	// OnUpdate receives the view after every opponent move made by the timer
	OnUpdate func(t *Table, view engine.View)

	// OnFinish receives the result once per finished game
	OnFinish func(result *entities.GameResult)
}

// Table is the single owner of one game. Every intent takes the table lock,
// runs one transition and publishes the resulting view. The opponent moves
// from a timer whose callback re-checks that the game it was scheduled for
// is still current before touching it.
type Table struct {
	ChannelID string
	OwnerID   string

	mu         sync.Mutex
	game       *engine.Game
	messageID  string
	paused     bool
	closed     bool
	delay      time.Duration
	clock      Clock
	timer      Timer
	lastActive time.Time
	onUpdate   func(t *Table, view engine.View)
	onFinish   func(result *entities.GameResult)
	log        *logging.Logger

	// opponentTurn plays the opponent's move
	opponentTurn func(g *engine.Game) error

	// pubMu orders the messages sent for this table; published is the
	// version of the newest view handed to Publish
	pubMu     sync.Mutex
	published uint64
}

// NewTable creates a table with its game at the menu
func NewTable(opts TableOptions) *Table {
	if opts.Rand == nil {
		opts.Rand = entities.NewRand(0)
	}
	if opts.Clock == nil {
		opts.Clock = RealClock
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}

	return &Table{
		ChannelID:  opts.ChannelID,
		OwnerID:    opts.OwnerID,
		game:       engine.NewGame(opts.Rand),
		delay:      opts.Delay,
		clock:      opts.Clock,
		lastActive: opts.Clock.Now(),
		onUpdate:   opts.OnUpdate,
		onFinish:   opts.OnFinish,
		log:        opts.Logger.WithField("channel", opts.ChannelID),

		opponentTurn: (*engine.Game).PlayOpponentTurn,
	}
}

// Deal starts a new game, abandoning any game in progress
func (t *Table) Deal() (engine.View, error) {
	return t.apply("deal", func(g *engine.Game) error {
		t.paused = false
		return g.Deal()
	})
}

// Restart is Deal offered once a game has started or ended
func (t *Table) Restart() (engine.View, error) {
	return t.apply("restart", func(g *engine.Game) error {
		t.paused = false
		return g.Restart()
	})
}

// ReturnToMenu abandons the game and goes back to the menu
func (t *Table) ReturnToMenu() (engine.View, error) {
	return t.apply("menu", func(g *engine.Game) error {
		t.paused = false
		return g.Reset()
	})
}

// Draw draws a card for the player
func (t *Table) Draw() (engine.View, error) {
	return t.apply("draw", func(g *engine.Game) error {
		if err := t.checkNotPaused(); err != nil {
			return err
		}
		return g.Draw(engine.TurnPlayer)
	})
}

// PlayCard plays cardID for the player. suit is used only when the card is an
// eight, and may be left empty to be chosen afterwards with SelectSuit.
func (t *Table) PlayCard(cardID string, suit entities.Suit) (engine.View, error) {
	return t.apply("play", func(g *engine.Game) error {
		if err := t.checkNotPaused(); err != nil {
			return err
		}
		return g.Play(engine.TurnPlayer, cardID, suit)
	})
}

// SelectSuit names the suit for the player's pending eight
func (t *Table) SelectSuit(suit entities.Suit) (engine.View, error) {
	return t.apply("suit", func(g *engine.Game) error {
		if err := t.checkNotPaused(); err != nil {
			return err
		}
		return g.SelectSuit(suit)
	})
}

// Pause stops the opponent and the player from moving until Resume
func (t *Table) Pause() (engine.View, error) {
	return t.apply("pause", func(g *engine.Game) error {
		if g.Status() != engine.StatusPlaying {
			return types.NewGameError(types.ErrInvalidState, "only a game in play can be paused")
		}
		t.paused = true
		return nil
	})
}

// Resume lifts a pause
func (t *Table) Resume() (engine.View, error) {
	return t.apply("resume", func(g *engine.Game) error {
		if !t.paused {
			return types.NewGameError(types.ErrInvalidState, "game is not paused")
		}
		t.paused = false
		return nil
	})
}

// View returns the current view without changing anything
func (t *Table) View() engine.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewLocked()
}

// MessageID returns the id of the Discord message showing this table
func (t *Table) MessageID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messageID
}

// SetMessageID records the Discord message showing this table
func (t *Table) SetMessageID(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messageID = id
}

// LastActive returns the time of the last player intent
func (t *Table) LastActive() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActive
}

// OpponentPending reports whether an opponent move is scheduled
func (t *Table) OpponentPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Close cancels any scheduled opponent move. A closed table ignores its
// timers but still answers View.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.cancelLocked()
}

// Publish hands view to send unless a newer view of this table has already
// been sent. With refresh set, a stale view is replaced by the current one
// instead of being dropped. It reports whether send was called.
func (t *Table) Publish(view engine.View, refresh bool, send func(engine.View) error) (bool, error) {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()

	if view.Version < t.published {
		if !refresh {
			return false, nil
		}
		view = t.View()
	}
	t.published = view.Version
	return true, send(view)
}

func (t *Table) checkNotPaused() error {
	if t.paused {
		return types.NewGameError(types.ErrInvalidState, "game is paused")
	}
	return nil
}

// apply runs one intent under the lock. Rejected intents are logged and
// dropped; anything else that fails is returned.
func (t *Table) apply(intent string, fn func(g *engine.Game) error) (engine.View, error) {
	t.mu.Lock()
	wasFinished := t.game.Status().IsFinished()
	err := fn(t.game)
	t.lastActive = t.clock.Now()

	var result *entities.GameResult
	if err == nil && !wasFinished {
		result, _ = t.game.Result(t.OwnerID, t.ChannelID)
	}
	if err == nil {
		t.scheduleLocked()
	}
	view := t.viewLocked()
	onFinish := t.onFinish
	t.mu.Unlock()

	if result != nil && onFinish != nil {
		onFinish(result)
	}

	if err != nil {
		if types.IsRejection(err) {
			t.log.Debug("Ignored %s: %v", intent, err)
			return view, nil
		}
		t.log.LogError(err)
		return view, err
	}
	return view, nil
}

// scheduleLocked arranges the opponent's move when it is the opponent's turn,
// replacing any earlier schedule
func (t *Table) scheduleLocked() {
	t.cancelLocked()
	if t.closed || t.paused {
		return
	}
	if t.game.Status() != engine.StatusPlaying || t.game.Turn() != engine.TurnOpponent {
		return
	}

	gameID, version := t.game.ID, t.game.Version()
	t.timer = t.clock.AfterFunc(t.delay, func() {
		t.opponentMove(gameID, version)
	})
}

func (t *Table) cancelLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// opponentMove is the timer callback. It does nothing unless the game is
// exactly the one it was scheduled for.
func (t *Table) opponentMove(gameID string, version uint64) {
	t.mu.Lock()
	valid := !t.closed && !t.paused &&
		t.game.ID == gameID && t.game.Version() == version &&
		t.game.Status() == engine.StatusPlaying && t.game.Turn() == engine.TurnOpponent
	if !valid {
		t.mu.Unlock()
		t.log.Debug("Dropped stale opponent move for game %s version %d", gameID, version)
		return
	}

	t.timer = nil
	err := t.opponentTurn(t.game)
	var result *entities.GameResult
	if err == nil {
		result, _ = t.game.Result(t.OwnerID, t.ChannelID)
		t.scheduleLocked()
	}
	view := t.viewLocked()
	onUpdate, onFinish := t.onUpdate, t.onFinish
	t.mu.Unlock()

	if err != nil {
		// The game is left waiting; Restart or Menu recover it
		t.log.LogError(err)
		return
	}
	t.log.Debug("Opponent moved in game %s: %s", gameID, view.LastAction)

	if result != nil && onFinish != nil {
		onFinish(result)
	}
	if onUpdate != nil {
		onUpdate(t, view)
	}
}

func (t *Table) viewLocked() engine.View {
	view := t.game.View()
	view.Paused = t.paused
	if t.paused {
		view.PlayableCards = nil
	}
	return view
}
