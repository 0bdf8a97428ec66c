package statistics

import (
	"context"
	"sort"
	"time"

	"github.com/fadedpez/crazyeights/internal/types"
	"github.com/fadedpez/crazyeights/pkg/entities"
	"github.com/fadedpez/crazyeights/pkg/repositories/game"
)

// DefaultPlayersPerPage is the leaderboard page size when none is given
const DefaultPlayersPerPage = 10

// Service records finished games and derives player records from them
type Service struct {
	repository game.Repository
	now        func() time.Time
}

// NewService creates a new statistics service
func NewService(repository game.Repository) *Service {
	return &Service{
		repository: repository,
		now:        time.Now,
	}
}

// PlayerRank represents a player's record with ranking information
type PlayerRank struct {
	*entities.PlayerRecord
	Rank        int     `json:"rank"`
	WinRate     float64 `json:"win_rate"`
	IsTopWinner bool    `json:"is_top_winner"`
	IsTopPlayer bool    `json:"is_top_player"`
}

// Leaderboard represents a paginated leaderboard of player records
type Leaderboard struct {
	Players        []*PlayerRank `json:"players"`
	TotalPlayers   int           `json:"total_players"`
	CurrentPage    int           `json:"current_page"`
	TotalPages     int           `json:"total_pages"`
	PlayersPerPage int           `json:"players_per_page"`
	LastUpdated    time.Time     `json:"last_updated"`
}

// RecordResult stores the result of a finished game
func (s *Service) RecordResult(ctx context.Context, result *entities.GameResult) error {
	if result == nil || result.GameID == "" || result.PlayerID == "" {
		return types.NewGameError(types.ErrInvalidArgument, "game result needs a game and a player")
	}
	if err := s.repository.SaveGameResult(ctx, result); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to save game result", err)
	}
	return nil
}

// GetRecord returns the win/lose record of a player
func (s *Service) GetRecord(ctx context.Context, playerID string) (*entities.PlayerRecord, error) {
	record, err := s.repository.GetPlayerRecord(ctx, playerID)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load player record", err)
	}
	return record, nil
}

// GetPlayerResults returns the most recent results of a player, newest first
func (s *Service) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.GameResult, error) {
	results, err := s.repository.GetPlayerResults(ctx, playerID, limit)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load player results", err)
	}
	return results, nil
}

// GetLeaderboard retrieves a paginated leaderboard ordered by wins, then win rate
func (s *Service) GetLeaderboard(ctx context.Context, page, playersPerPage int) (*Leaderboard, error) {
	// Default values
	if page < 1 {
		page = 1
	}
	if playersPerPage < 1 {
		playersPerPage = DefaultPlayersPerPage
	}

	records, err := s.repository.GetAllPlayerRecords(ctx)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load player records", err)
	}

	playerRanks := make([]*PlayerRank, 0, len(records))
	for _, record := range records {
		// Skip players with no games
		if record.GamesPlayed == 0 {
			continue
		}
		playerRanks = append(playerRanks, &PlayerRank{
			PlayerRecord: record,
			WinRate:      record.WinRate(),
		})
	}

	sort.SliceStable(playerRanks, func(i, j int) bool {
		if playerRanks[i].Wins != playerRanks[j].Wins {
			return playerRanks[i].Wins > playerRanks[j].Wins
		}
		if playerRanks[i].WinRate != playerRanks[j].WinRate {
			return playerRanks[i].WinRate > playerRanks[j].WinRate
		}
		return playerRanks[i].PlayerID < playerRanks[j].PlayerID
	})

	// Mark top winner and the player with the most games
	if len(playerRanks) > 0 {
		playerRanks[0].IsTopWinner = true

		mostGamesIdx := 0
		for i := 1; i < len(playerRanks); i++ {
			if playerRanks[i].GamesPlayed > playerRanks[mostGamesIdx].GamesPlayed {
				mostGamesIdx = i
			}
		}
		playerRanks[mostGamesIdx].IsTopPlayer = true
	}

	for i := range playerRanks {
		playerRanks[i].Rank = i + 1
	}

	// Calculate pagination
	totalPlayers := len(playerRanks)
	totalPages := (totalPlayers + playersPerPage - 1) / playersPerPage
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := (page - 1) * playersPerPage
	end := start + playersPerPage
	if end > totalPlayers {
		end = totalPlayers
	}

	currentPagePlayers := []*PlayerRank{}
	if start < totalPlayers {
		currentPagePlayers = playerRanks[start:end]
	}

	return &Leaderboard{
		Players:        currentPagePlayers,
		TotalPlayers:   totalPlayers,
		CurrentPage:    page,
		TotalPages:     totalPages,
		PlayersPerPage: playersPerPage,
		LastUpdated:    s.now(),
	}, nil
}
