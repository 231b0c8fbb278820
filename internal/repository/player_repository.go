package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/mlb-trends/internal/database"
	"github.com/yourusername/mlb-trends/internal/models"
)

// SQLitePlayerRepository implements PlayerRepository for the SQLite game store
type SQLitePlayerRepository struct {
	db *database.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) PlayerRepository {
	return &SQLitePlayerRepository{db: db}
}

// Upsert inserts or refreshes a player from a roster pull. A null incoming
// birthdate never clobbers a known one.
func (r *SQLitePlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (player_id, name, team_id, position, birthdate)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			name=excluded.name,
			team_id=excluded.team_id,
			position=excluded.position,
			birthdate=COALESCE(excluded.birthdate, players.birthdate)
	`

	_, err := r.db.Handle().ExecContext(ctx, query,
		player.ID, player.Name, player.TeamID, player.Position, player.Birthdate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

// UpsertMinimal records a player seen only in a box score
func (r *SQLitePlayerRepository) UpsertMinimal(ctx context.Context, id int, name string, teamID *int) error {
	query := `
		INSERT INTO players (player_id, name, team_id, position, birthdate)
		VALUES (?, ?, ?, NULL, NULL)
		ON CONFLICT(player_id) DO UPDATE SET
			name=COALESCE(NULLIF(excluded.name, ''), players.name),
			team_id=COALESCE(excluded.team_id, players.team_id)
	`

	_, err := r.db.Handle().ExecContext(ctx, query, id, name, teamID)
	if err != nil {
		return fmt.Errorf("failed to upsert minimal player: %w", err)
	}
	return nil
}
