package entities

import "time"

// GameType identifies which game produced a result
type GameType string

const GameTypeCrazyEights GameType = "crazyeights"

// Outcome is the result of a finished game from the human player's side
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLose Outcome = "LOSE"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// IsWin returns true if this outcome represents a win
func (o Outcome) IsWin() bool {
	return o == OutcomeWin
}

// GameResult represents the outcome of one finished game
type GameResult struct {
	GameID      string    `json:"game_id"`
	GameType    GameType  `json:"game_type"`
	ChannelID   string    `json:"channel_id"`
	PlayerID    string    `json:"player_id"`
	Outcome     Outcome   `json:"outcome"`
	Moves       int       `json:"moves"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// PlayerRecord is the aggregated win/lose record of one player
type PlayerRecord struct {
	PlayerID    string `json:"player_id"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

// WinRate calculates the player's win rate as a percentage
func (r *PlayerRecord) WinRate() float64 {
	if r.GamesPlayed == 0 {
		return 0.0
	}
	return float64(r.Wins) / float64(r.GamesPlayed) * 100.0
}

// Add folds one result into the record
func (r *PlayerRecord) Add(result *GameResult) {
	r.GamesPlayed++
	switch result.Outcome {
	case OutcomeWin:
		r.Wins++
	case OutcomeLose:
		r.Losses++
	}
}
