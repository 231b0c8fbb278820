// Package repository provides data access to the SQLite game store.
package repository

import (
	"context"
	"time"

	"github.com/yourusername/mlb-trends/internal/database"
	"github.com/yourusername/mlb-trends/internal/models"
)

// TeamRepository defines team persistence operations
type TeamRepository interface {
	Upsert(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	ListIDs(ctx context.Context) ([]int, error)
}

// PlayerRepository defines player persistence operations
type PlayerRepository interface {
	Upsert(ctx context.Context, player *models.Player) error
	// UpsertMinimal records a player discovered through a box score, keeping
	// any previously known name or team when the new value is absent.
	UpsertMinimal(ctx context.Context, id int, name string, teamID *int) error
}

// GameRepository defines game persistence and read operations
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	// ListCompleted returns all games with both scores present, ordered by
	// date ascending with game id as the stable tiebreaker.
	ListCompleted(ctx context.Context) ([]models.Game, error)
	// ListCompletedIDs returns ids of completed games within [start, end].
	ListCompletedIDs(ctx context.Context, start, end time.Time) ([]int64, error)
	// LatestDate returns the most recent game date in the store, or
	// models.ErrNotFound when the store holds no games.
	LatestDate(ctx context.Context) (time.Time, error)
}

// StatsRepository defines box-score persistence and aggregate reads
type StatsRepository interface {
	UpsertBatting(ctx context.Context, line *models.BattingLine) error
	UpsertPitching(ctx context.Context, line *models.PitchingLine) error
	// UpsertBatch writes a group of batting and pitching lines in one
	// transaction. Either every line lands or none do.
	UpsertBatch(ctx context.Context, batting []models.BattingLine, pitching []models.PitchingLine) error
	BattingTotals(ctx context.Context, start, end time.Time, limit int) ([]BattingTotals, error)
	PitchingTotals(ctx context.Context, start, end time.Time, limit int) ([]PitchingTotals, error)
}

// BattingTotals aggregates a player's batting lines over a date range.
type BattingTotals struct {
	PlayerID   int
	PlayerName string
	Games      int
	AtBats     int
	Hits       int
	HomeRuns   int
	RBI        int
	Walks      int
	Strikeouts int
}

// PitchingTotals aggregates a player's pitching lines over a date range.
type PitchingTotals struct {
	PlayerID    int
	PlayerName  string
	Games       int
	OutsPitched int
	EarnedRuns  int
	Walks       int
	Strikeouts  int
}

// Repositories bundles all repository implementations
type Repositories struct {
	Teams   TeamRepository
	Players PlayerRepository
	Games   GameRepository
	Stats   StatsRepository
}

// NewRepositories creates SQLite-backed repositories over the given store
func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Teams:   NewTeamRepository(db),
		Players: NewPlayerRepository(db),
		Games:   NewGameRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
