package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yourusername/mlb-trends/internal/database"
	"github.com/yourusername/mlb-trends/internal/models"
)

const dateLayout = "2006-01-02"

const errScanGame = "failed to scan game: %w"

// SQLiteGameRepository implements GameRepository for the SQLite game store
type SQLiteGameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) GameRepository {
	return &SQLiteGameRepository{db: db}
}

// Upsert inserts or refreshes a game. A known score is never replaced with
// null, so a later schedule pull for a finished game cannot erase its result.
func (r *SQLiteGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (game_id, date, home_team_id, away_team_id, home_score, away_score, venue)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			date=excluded.date,
			home_team_id=excluded.home_team_id,
			away_team_id=excluded.away_team_id,
			home_score=COALESCE(excluded.home_score, games.home_score),
			away_score=COALESCE(excluded.away_score, games.away_score),
			venue=excluded.venue
	`

	_, err := r.db.Handle().ExecContext(ctx, query,
		game.ID, game.Date.Format(dateLayout), game.HomeTeamID, game.AwayTeamID,
		game.HomeScore, game.AwayScore, game.Venue,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}
	return nil
}

// ListCompleted returns all games with both scores present, ordered by date
// ascending. Game id breaks date ties so downstream windowing is reproducible.
func (r *SQLiteGameRepository) ListCompleted(ctx context.Context) ([]models.Game, error) {
	query := `
		SELECT game_id, date, home_team_id, away_team_id, home_score, away_score, venue
		FROM games
		WHERE home_score IS NOT NULL AND away_score IS NOT NULL
		ORDER BY date ASC, game_id ASC
	`

	rows, err := r.db.Handle().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var (
			game  models.Game
			date  string
			venue sql.NullString
		)
		err := rows.Scan(&game.ID, &date, &game.HomeTeamID, &game.AwayTeamID,
			&game.HomeScore, &game.AwayScore, &venue)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		game.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		game.Venue = venue.String
		games = append(games, game)
	}

	return games, rows.Err()
}

// ListCompletedIDs returns ids of completed games within [start, end]
func (r *SQLiteGameRepository) ListCompletedIDs(ctx context.Context, start, end time.Time) ([]int64, error) {
	query := `
		SELECT game_id FROM games
		WHERE date BETWEEN ? AND ?
		  AND home_score IS NOT NULL
		  AND away_score IS NOT NULL
		ORDER BY date ASC, game_id ASC
	`

	rows, err := r.db.Handle().QueryContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query completed game ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// LatestDate returns the most recent game date in the store
func (r *SQLiteGameRepository) LatestDate(ctx context.Context) (time.Time, error) {
	var date sql.NullString
	err := r.db.Handle().QueryRowContext(ctx, `SELECT MAX(date) FROM games`).Scan(&date)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query latest game date: %w", err)
	}
	if !date.Valid {
		return time.Time{}, models.ErrNotFound
	}

	parsed, err := time.Parse(dateLayout, date.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse latest game date: %w", err)
	}
	return parsed, nil
}
