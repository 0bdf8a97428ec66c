package game

import (
	"context"
	"time"

	"github.com/fadedpez/crazyeights/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_game

// DefaultResultLimit caps result listings when no limit is given
const DefaultResultLimit = 50

// Repository defines storage operations for finished game results. Only
// outcomes are stored; a game in progress is never persisted.
type Repository interface {
	// Game results
	SaveGameResult(ctx context.Context, result *entities.GameResult) error
	GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.GameResult, error)
	GetChannelResults(ctx context.Context, channelID string, limit int) ([]*entities.GameResult, error)

	// Aggregated records
	GetPlayerRecord(ctx context.Context, playerID string) (*entities.PlayerRecord, error)
	GetAllPlayerRecords(ctx context.Context) ([]*entities.PlayerRecord, error)

	// PruneResults deletes results completed before the given time and
	// returns how many were removed
	PruneResults(ctx context.Context, before time.Time) (int64, error)

	// Close closes any resources used by the repository
	Close() error
}
