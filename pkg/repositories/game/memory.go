package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fadedpez/crazyeights/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// All results in the order they were saved
	results []*entities.GameResult
	// Game IDs already stored
	seen map[string]bool
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		results: make([]*entities.GameResult, 0),
		seen:    make(map[string]bool),
	}
}

// SaveGameResult stores a game result. Saving the same game twice is a no-op.
func (r *MemoryRepository) SaveGameResult(ctx context.Context, result *entities.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seen[result.GameID] {
		return nil
	}
	stored := *result
	r.results = append(r.results, &stored)
	r.seen[result.GameID] = true
	return nil
}

// GetPlayerResults retrieves the most recent game results for a player
func (r *MemoryRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.GameResult, error) {
	return r.filter(limit, func(result *entities.GameResult) bool {
		return result.PlayerID == playerID
	}), nil
}

// GetChannelResults retrieves recent game results for a channel
func (r *MemoryRepository) GetChannelResults(ctx context.Context, channelID string, limit int) ([]*entities.GameResult, error) {
	return r.filter(limit, func(result *entities.GameResult) bool {
		return result.ChannelID == channelID
	}), nil
}

// filter returns up to limit matching results, newest first
func (r *MemoryRepository) filter(limit int, match func(*entities.GameResult) bool) []*entities.GameResult {
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entities.GameResult, 0)
	for _, result := range r.results {
		if match(result) {
			copied := *result
			matched = append(matched, &copied)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CompletedAt.After(matched[j].CompletedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// GetPlayerRecord aggregates a player's wins and losses
func (r *MemoryRepository) GetPlayerRecord(ctx context.Context, playerID string) (*entities.PlayerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record := &entities.PlayerRecord{PlayerID: playerID}
	for _, result := range r.results {
		if result.PlayerID == playerID {
			record.Add(result)
		}
	}
	return record, nil
}

// GetAllPlayerRecords aggregates the record of every player with a result
func (r *MemoryRepository) GetAllPlayerRecords(ctx context.Context) ([]*entities.PlayerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byPlayer := make(map[string]*entities.PlayerRecord)
	for _, result := range r.results {
		record, ok := byPlayer[result.PlayerID]
		if !ok {
			record = &entities.PlayerRecord{PlayerID: result.PlayerID}
			byPlayer[result.PlayerID] = record
		}
		record.Add(result)
	}

	records := make([]*entities.PlayerRecord, 0, len(byPlayer))
	for _, record := range byPlayer {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].PlayerID < records[j].PlayerID
	})
	return records, nil
}

// PruneResults drops results completed before the given time
func (r *MemoryRepository) PruneResults(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.results[:0]
	var removed int64
	for _, result := range r.results {
		if result.CompletedAt.Before(before) {
			delete(r.seen, result.GameID)
			removed++
			continue
		}
		kept = append(kept, result)
	}
	r.results = kept
	return removed, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}
