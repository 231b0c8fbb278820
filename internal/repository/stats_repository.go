package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yourusername/mlb-trends/internal/database"
	"github.com/yourusername/mlb-trends/internal/models"
)

const upsertBattingQuery = `
	INSERT INTO player_game_stats
		(game_id, player_id, at_bats, hits, runs, home_runs, rbi, walks, strikeouts)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(game_id, player_id) DO UPDATE SET
		at_bats=excluded.at_bats,
		hits=excluded.hits,
		runs=excluded.runs,
		home_runs=excluded.home_runs,
		rbi=excluded.rbi,
		walks=excluded.walks,
		strikeouts=excluded.strikeouts
`

const upsertPitchingQuery = `
	INSERT INTO pitcher_game_stats
		(game_id, player_id, outs_pitched, hits_allowed, runs_allowed, earned_runs,
		 home_runs_allowed, walks, strikeouts, batters_faced, pitches, strikes, decision)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(game_id, player_id) DO UPDATE SET
		outs_pitched=excluded.outs_pitched,
		hits_allowed=excluded.hits_allowed,
		runs_allowed=excluded.runs_allowed,
		earned_runs=excluded.earned_runs,
		home_runs_allowed=excluded.home_runs_allowed,
		walks=excluded.walks,
		strikeouts=excluded.strikeouts,
		batters_faced=excluded.batters_faced,
		pitches=excluded.pitches,
		strikes=excluded.strikes,
		decision=COALESCE(excluded.decision, pitcher_game_stats.decision)
`

// SQLiteStatsRepository implements StatsRepository for the SQLite game store
type SQLiteStatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new box-score stats repository
func NewStatsRepository(db *database.DB) StatsRepository {
	return &SQLiteStatsRepository{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func execBatting(ctx context.Context, e execer, line *models.BattingLine) error {
	_, err := e.ExecContext(ctx, upsertBattingQuery,
		line.GameID, line.PlayerID, line.AtBats, line.Hits, line.Runs,
		line.HomeRuns, line.RBI, line.Walks, line.Strikeouts,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert batting line: %w", err)
	}
	return nil
}

func execPitching(ctx context.Context, e execer, line *models.PitchingLine) error {
	_, err := e.ExecContext(ctx, upsertPitchingQuery,
		line.GameID, line.PlayerID, line.OutsPitched, line.HitsAllowed, line.RunsAllowed,
		line.EarnedRuns, line.HomeRunsAllowed, line.Walks, line.Strikeouts,
		line.BattersFaced, line.Pitches, line.Strikes, line.Decision,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pitching line: %w", err)
	}
	return nil
}

// UpsertBatting inserts or replaces a per-game batting line
func (r *SQLiteStatsRepository) UpsertBatting(ctx context.Context, line *models.BattingLine) error {
	return execBatting(ctx, r.db.Handle(), line)
}

// UpsertPitching inserts or replaces a per-game pitching line
func (r *SQLiteStatsRepository) UpsertPitching(ctx context.Context, line *models.PitchingLine) error {
	return execPitching(ctx, r.db.Handle(), line)
}

// UpsertBatch writes all lines inside one transaction so a partially failed
// batch leaves the store untouched.
func (r *SQLiteStatsRepository) UpsertBatch(ctx context.Context, batting []models.BattingLine, pitching []models.PitchingLine) error {
	if len(batting) == 0 && len(pitching) == 0 {
		return nil
	}

	return r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for i := range batting {
			if err := execBatting(ctx, tx, &batting[i]); err != nil {
				return err
			}
		}
		for i := range pitching {
			if err := execPitching(ctx, tx, &pitching[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// BattingTotals aggregates batting lines per player over completed games in
// [start, end], ordered by hits descending.
func (r *SQLiteStatsRepository) BattingTotals(ctx context.Context, start, end time.Time, limit int) ([]BattingTotals, error) {
	query := `
		SELECT s.player_id, p.name,
		       COUNT(*) AS games,
		       SUM(s.at_bats), SUM(s.hits), SUM(s.home_runs),
		       SUM(s.rbi), SUM(s.walks), SUM(s.strikeouts)
		FROM player_game_stats s
		JOIN players p ON p.player_id = s.player_id
		JOIN games g ON g.game_id = s.game_id
		WHERE g.date BETWEEN ? AND ?
		GROUP BY s.player_id, p.name
		HAVING SUM(s.at_bats) > 0
		ORDER BY SUM(s.hits) DESC, s.player_id ASC
		LIMIT ?
	`

	rows, err := r.db.Handle().QueryContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query batting totals: %w", err)
	}
	defer rows.Close()

	var totals []BattingTotals
	for rows.Next() {
		var t BattingTotals
		err := rows.Scan(&t.PlayerID, &t.PlayerName, &t.Games, &t.AtBats, &t.Hits,
			&t.HomeRuns, &t.RBI, &t.Walks, &t.Strikeouts)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batting totals: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// PitchingTotals aggregates pitching lines per player over completed games in
// [start, end], ordered by strikeouts descending.
func (r *SQLiteStatsRepository) PitchingTotals(ctx context.Context, start, end time.Time, limit int) ([]PitchingTotals, error) {
	query := `
		SELECT s.player_id, p.name,
		       COUNT(*) AS games,
		       SUM(s.outs_pitched), SUM(s.earned_runs), SUM(s.walks), SUM(s.strikeouts)
		FROM pitcher_game_stats s
		JOIN players p ON p.player_id = s.player_id
		JOIN games g ON g.game_id = s.game_id
		WHERE g.date BETWEEN ? AND ?
		GROUP BY s.player_id, p.name
		HAVING SUM(s.outs_pitched) > 0
		ORDER BY SUM(s.strikeouts) DESC, s.player_id ASC
		LIMIT ?
	`

	rows, err := r.db.Handle().QueryContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pitching totals: %w", err)
	}
	defer rows.Close()

	var totals []PitchingTotals
	for rows.Next() {
		var t PitchingTotals
		err := rows.Scan(&t.PlayerID, &t.PlayerName, &t.Games, &t.OutsPitched,
			&t.EarnedRuns, &t.Walks, &t.Strikeouts)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pitching totals: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
