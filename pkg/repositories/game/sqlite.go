package game

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/crazyeights/pkg/db/migrations"
	"github.com/fadedpez/crazyeights/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const resultColumns = `game_id, game_type, channel_id, player_id, outcome, moves, started_at, completed_at`

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Ensure the directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	// Open the database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Apply migrations
	migrator := migrations.NewMigrator(db)
	if err := migrator.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveGameResult stores a game result. Saving the same game twice is a no-op.
func (r *SQLiteRepository) SaveGameResult(ctx context.Context, result *entities.GameResult) error {
	query := `
		INSERT INTO game_results (` + resultColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		result.GameID, string(result.GameType), result.ChannelID, result.PlayerID,
		string(result.Outcome), result.Moves, result.StartedAt.UTC(), result.CompletedAt.UTC())
	if err != nil {
		return fmt.Errorf("error saving game result: %w", err)
	}
	return nil
}

// GetPlayerResults retrieves the most recent game results for a player
func (r *SQLiteRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.GameResult, error) {
	return r.queryResults(ctx, `WHERE player_id = ?`, playerID, limit)
}

// GetChannelResults retrieves recent game results for a channel
func (r *SQLiteRepository) GetChannelResults(ctx context.Context, channelID string, limit int) ([]*entities.GameResult, error) {
	return r.queryResults(ctx, `WHERE channel_id = ?`, channelID, limit)
}

func (r *SQLiteRepository) queryResults(ctx context.Context, where string, arg string, limit int) ([]*entities.GameResult, error) {
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	query := `
		SELECT ` + resultColumns + `
		FROM game_results
		` + where + `
		ORDER BY completed_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, arg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*entities.GameResult, 0)
	for rows.Next() {
		var (
			result   entities.GameResult
			gameType string
			outcome  string
		)

		err := rows.Scan(
			&result.GameID, &gameType, &result.ChannelID, &result.PlayerID,
			&outcome, &result.Moves, &result.StartedAt, &result.CompletedAt,
		)
		if err != nil {
			return nil, err
		}

		result.GameType = entities.GameType(gameType)
		result.Outcome = entities.Outcome(outcome)
		results = append(results, &result)
	}

	return results, rows.Err()
}

// GetPlayerRecord aggregates a player's wins and losses
func (r *SQLiteRepository) GetPlayerRecord(ctx context.Context, playerID string) (*entities.PlayerRecord, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		FROM game_results
		WHERE player_id = ?`

	record := &entities.PlayerRecord{PlayerID: playerID}
	err := r.db.QueryRowContext(ctx, query, string(entities.OutcomeWin), string(entities.OutcomeLose), playerID).
		Scan(&record.GamesPlayed, &record.Wins, &record.Losses)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetAllPlayerRecords aggregates the record of every player with a result
func (r *SQLiteRepository) GetAllPlayerRecords(ctx context.Context) ([]*entities.PlayerRecord, error) {
	query := `
		SELECT player_id, COUNT(*),
			SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END)
		FROM game_results
		GROUP BY player_id
		ORDER BY player_id`

	rows, err := r.db.QueryContext(ctx, query, string(entities.OutcomeWin), string(entities.OutcomeLose))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*entities.PlayerRecord, 0)
	for rows.Next() {
		record := &entities.PlayerRecord{}
		if err := rows.Scan(&record.PlayerID, &record.GamesPlayed, &record.Wins, &record.Losses); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// PruneResults deletes results completed before the given time
func (r *SQLiteRepository) PruneResults(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM game_results WHERE completed_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("error pruning game results: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
