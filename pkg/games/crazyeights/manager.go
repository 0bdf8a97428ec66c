package crazyeights

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/crazyeights/internal/discord"
	"github.com/fadedpez/crazyeights/internal/logging"
	"github.com/fadedpez/crazyeights/internal/types"
	"github.com/fadedpez/crazyeights/pkg/entities"
	engine "github.com/fadedpez/crazyeights/pkg/services/crazyeights"
	"github.com/fadedpez/crazyeights/pkg/services/statistics"
)

// Slash command names
const (
	CommandName      = "crazyeights"
	StatsCommandName = "crazyeights-stats"
)

// leaderboardSize is how many players /crazyeights-stats lists
const leaderboardSize = 10

// recordTimeout bounds how long saving a finished game may take
const recordTimeout = 5 * time.Second

// ManagerOptions configures the tables a Manager creates
type ManagerOptions struct {
	// Delay before the opponent moves; zero means DefaultOpponentDelay
	Delay time.Duration

	// Seed makes table n deal from seed+n; zero seeds every table from the clock
	Seed int64

	Clock  Clock
	Logger *logging.Logger
}

// Manager hosts one Table per Discord channel and translates interactions
// into table intents
type Manager struct {
	session  discord.SessionHandler
	stats    *statistics.Service
	opts     ManagerOptions
	tables   map[string]*Table
	tableSeq int64
	mu       sync.Mutex
	log      *logging.Logger
}

// NewManager creates a new crazy eights manager. stats may be nil, in which
// case results are not recorded.
func NewManager(session discord.SessionHandler, stats *statistics.Service, opts ManagerOptions) *Manager {
	if opts.Delay == 0 {
		opts.Delay = DefaultOpponentDelay
	}
	if opts.Clock == nil {
		opts.Clock = RealClock
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default
	}

	return &Manager{
		session: session,
		stats:   stats,
		opts:    opts,
		tables:  make(map[string]*Table),
		log:     opts.Logger.WithField("game", CommandName),
	}
}

// Commands returns the slash commands of the game
func (m *Manager) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Play Crazy Eights against the computer",
		},
		{
			Name:        StatsCommandName,
			Description: "Show your Crazy Eights record and the leaderboard",
		},
	}
}

// ComponentPrefix returns the custom id prefix of every component the game sends
func (m *Manager) ComponentPrefix() string {
	return ComponentPrefix
}

// HandleCommand handles /crazyeights and /crazyeights-stats
func (m *Manager) HandleCommand(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	userID := discord.UserID(i)
	if userID == "" || i.ChannelID == "" {
		m.respondError(s, i, types.NewGameError(types.ErrInvalidArgument, "invalid interaction"))
		return
	}

	switch name := i.ApplicationCommandData().Name; name {
	case CommandName:
		m.handleOpen(s, i, userID)
	case StatsCommandName:
		m.handleStats(s, i, userID)
	default:
		m.respondError(s, i, types.NewGameError(types.ErrInvalidCommand, fmt.Sprintf("unknown command %s", name)))
	}
}

// handleOpen shows the channel's table, creating one at the menu when needed
func (m *Manager) handleOpen(s discord.SessionHandler, i *discordgo.InteractionCreate, userID string) {
	table, err := m.openTable(i.ChannelID, userID)
	if err != nil {
		m.respondError(s, i, err)
		return
	}

	view := table.View()
	if err := discord.SendGameResponse(s, i, RenderView(view), Components(view)); err != nil {
		m.log.Error("Failed to send table for channel %s: %v", i.ChannelID, err)
	}
}

// openTable returns the table userID may use in channelID. A table owned by
// someone else is replaced unless its game is still being played.
func (m *Manager) openTable(channelID, userID string) (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if table, ok := m.tables[channelID]; ok {
		status := table.View().Status
		if table.OwnerID == userID {
			if status.IsFinished() {
				if _, err := table.ReturnToMenu(); err != nil {
					return nil, err
				}
			}
			return table, nil
		}
		if status == engine.StatusPlaying {
			return nil, types.NewGameError(types.ErrPermissionDenied, "A game is already being played in this channel")
		}
		table.Close()
	}

	m.tableSeq++
	var seed int64
	if m.opts.Seed != 0 {
		seed = m.opts.Seed + m.tableSeq
	}

	table := NewTable(TableOptions{
		ChannelID: channelID,
		OwnerID:   userID,
		Delay:     m.opts.Delay,
		Rand:      entities.NewRand(seed),
		Clock:     m.opts.Clock,
		Logger:    m.log,
		OnUpdate:  m.publish,
		OnFinish:  m.record,
	})
	m.tables[channelID] = table
	m.log.Info("Opened table in channel %s for %s", channelID, userID)
	return table, nil
}

// HandleButton handles the buttons and the card select of a table
func (m *Manager) HandleButton(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	userID := discord.UserID(i)

	table := m.GetTable(i.ChannelID)
	if table == nil {
		m.respondError(s, i, types.NewGameError(types.ErrGameNotFound, "No game in this channel. Use /crazyeights to start one."))
		return
	}
	if table.OwnerID != userID {
		m.respondError(s, i, types.NewGameError(types.ErrPermissionDenied, fmt.Sprintf("Only <@%s> can use this table", table.OwnerID)))
		return
	}
	if i.Message != nil {
		table.SetMessageID(i.Message.ID)
	}

	view, err := m.dispatch(table, i.MessageComponentData())
	if err != nil {
		m.respondError(s, i, err)
		return
	}

	_, err = table.Publish(view, true, func(v engine.View) error {
		return discord.UpdateGameResponse(s, i, RenderView(v), Components(v))
	})
	if err != nil {
		m.log.Error("Failed to update table in channel %s: %v", i.ChannelID, err)
	}
}

// dispatch runs the intent named by a component
func (m *Manager) dispatch(table *Table, data discordgo.MessageComponentInteractionData) (engine.View, error) {
	switch id := data.CustomID; {
	case id == ButtonDeal:
		return table.Deal()
	case id == ButtonDraw:
		return table.Draw()
	case id == ButtonRestart:
		return table.Restart()
	case id == ButtonMenu:
		return table.ReturnToMenu()
	case id == ButtonPause:
		return table.Pause()
	case id == ButtonResume:
		return table.Resume()
	case id == SelectPlay:
		if len(data.Values) == 0 {
			return table.View(), types.NewGameError(types.ErrInvalidArgument, "no card selected")
		}
		return table.PlayCard(data.Values[0], entities.NoSuit)
	case strings.HasPrefix(id, suitPrefix):
		suit, err := entities.ParseSuit(strings.TrimPrefix(id, suitPrefix))
		if err != nil {
			return table.View(), types.WrapError(types.ErrInvalidArgument, "unknown suit", err)
		}
		return table.SelectSuit(suit)
	default:
		return table.View(), types.NewGameError(types.ErrInvalidCommand, fmt.Sprintf("unknown control %s", id))
	}
}

// handleStats shows the caller's record and the top of the leaderboard
func (m *Manager) handleStats(s discord.SessionHandler, i *discordgo.InteractionCreate, userID string) {
	if m.stats == nil {
		m.respondError(s, i, types.NewGameError(types.ErrInternalError, "statistics are not available"))
		return
	}

	ctx := context.Background()
	record, err := m.stats.GetRecord(ctx, userID)
	if err != nil {
		m.log.LogError(err)
		m.respondError(s, i, err)
		return
	}
	board, err := m.stats.GetLeaderboard(ctx, 1, leaderboardSize)
	if err != nil {
		m.log.LogError(err)
		m.respondError(s, i, err)
		return
	}

	if err := discord.SendResponse(s, i, discord.NewEphemeralResponse(renderStats(record, board), nil)); err != nil {
		m.log.Error("Failed to send stats: %v", err)
	}
}

func renderStats(record *entities.PlayerRecord, board *statistics.Leaderboard) string {
	var sb strings.Builder
	sb.WriteString("📊 **Your Crazy Eights record**\n")
	if record.GamesPlayed == 0 {
		sb.WriteString("No games finished yet.\n")
	} else {
		sb.WriteString(fmt.Sprintf("%d wins, %d losses (%.0f%% won)\n", record.Wins, record.Losses, record.WinRate()))
	}

	sb.WriteString("\n🏆 **Leaderboard**\n")
	if len(board.Players) == 0 {
		sb.WriteString("Nobody has finished a game yet.")
		return sb.String()
	}
	for _, p := range board.Players {
		sb.WriteString(fmt.Sprintf("%d. <@%s> %d wins, %d losses (%.0f%%)\n", p.Rank, p.PlayerID, p.Wins, p.Losses, p.WinRate))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// publish re-renders a table message after a timer-driven opponent move
func (m *Manager) publish(table *Table, view engine.View) {
	messageID := table.MessageID()
	if messageID == "" {
		m.log.Debug("No message to update for channel %s", table.ChannelID)
		return
	}
	sent, err := table.Publish(view, false, func(v engine.View) error {
		return discord.EditMessage(m.session, table.ChannelID, messageID, RenderView(v), Components(v))
	})
	if err != nil {
		m.log.Error("Failed to edit table message in channel %s: %v", table.ChannelID, err)
		return
	}
	if !sent {
		m.log.Debug("Dropped outdated update of version %d for channel %s", view.Version, table.ChannelID)
	}
}

// record stores the result of a finished game
func (m *Manager) record(result *entities.GameResult) {
	m.log.Info("Game %s in channel %s finished: %s after %d moves", result.GameID, result.ChannelID, result.Outcome, result.Moves)
	if m.stats == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := m.stats.RecordResult(ctx, result); err != nil {
		m.log.LogError(err)
	}
}

func (m *Manager) respondError(s discord.SessionHandler, i *discordgo.InteractionCreate, err error) {
	if err := discord.SendErrorResponse(s, i, err); err != nil {
		m.log.Error("Failed to send error response: %v", err)
	}
}

// GetTable returns the table of a channel, or nil
func (m *Manager) GetTable(channelID string) *Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tables[channelID]
}

// TableCount returns the number of open tables
func (m *Manager) TableCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables)
}

// CleanupIdleTables closes and forgets tables nobody has touched for longer
// than idleFor
func (m *Manager) CleanupIdleTables(ctx context.Context, idleFor time.Duration) (int, error) {
	now := m.opts.Clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for channelID, table := range m.tables {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if now.Sub(table.LastActive()) > idleFor {
			table.Close()
			delete(m.tables, channelID)
			removed++
		}
	}
	return removed, nil
}

// Shutdown closes every table
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for channelID, table := range m.tables {
		table.Close()
		delete(m.tables, channelID)
	}
}
