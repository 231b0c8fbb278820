package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yourusername/mlb-trends/internal/database"
	"github.com/yourusername/mlb-trends/internal/models"
)

// SQLiteTeamRepository implements TeamRepository for the SQLite game store
type SQLiteTeamRepository struct {
	db *database.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *database.DB) TeamRepository {
	return &SQLiteTeamRepository{db: db}
}

// Upsert inserts or refreshes a team
func (r *SQLiteTeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (team_id, name, abbreviation, location)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(team_id) DO UPDATE SET
			name=excluded.name,
			abbreviation=excluded.abbreviation,
			location=excluded.location
	`

	_, err := r.db.Handle().ExecContext(ctx, query, team.ID, team.Name, team.Abbreviation, team.Location)
	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}
	return nil
}

// GetByID retrieves a team by id
func (r *SQLiteTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT team_id, name, abbreviation, location FROM teams WHERE team_id = ?`

	team := &models.Team{}
	var location sql.NullString
	err := r.db.Handle().QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.Abbreviation, &location)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	team.Location = location.String

	return team, nil
}

// List retrieves all teams ordered by abbreviation
func (r *SQLiteTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT team_id, name, abbreviation, location FROM teams ORDER BY abbreviation`

	rows, err := r.db.Handle().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		team := &models.Team{}
		var location sql.NullString
		if err := rows.Scan(&team.ID, &team.Name, &team.Abbreviation, &location); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		team.Location = location.String
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// ListIDs retrieves all stored team ids
func (r *SQLiteTeamRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.Handle().QueryContext(ctx, `SELECT team_id FROM teams ORDER BY team_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query team ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
