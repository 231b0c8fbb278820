// Package analytics derives team-centric views from the game store: the
// team-game flattening, rolling win percentage, and the home-win model
// dataset. Everything here is a pure recomputation over in-memory rows;
// nothing is persisted.
package analytics

import (
	"time"

	"github.com/yourusername/mlb-trends/internal/models"
)

// TeamGameRow is one team's perspective on a completed game. Two rows exist
// per game, sharing the game id.
type TeamGameRow struct {
	GameID      int64     `json:"game_id"`
	Date        time.Time `json:"date"`
	TeamID      int       `json:"team_id"`
	OpponentID  int       `json:"opponent_id"`
	RunsFor     int       `json:"runs_for"`
	RunsAgainst int       `json:"runs_against"`
	IsHome      int       `json:"is_home"`
	Win         int       `json:"win"`
}

// RunDiff returns the signed run differential from this team's perspective.
func (r TeamGameRow) RunDiff() int {
	return r.RunsFor - r.RunsAgainst
}

// Flatten converts completed games into per-team rows: a home-perspective row
// and an away-perspective row per game. Games missing a score are skipped.
// The function is pure and stable: identical input yields identical output,
// including row order.
func Flatten(games []models.Game) []TeamGameRow {
	rows := make([]TeamGameRow, 0, 2*len(games))
	for i := range games {
		g := &games[i]
		if !g.Completed() {
			continue
		}

		home := TeamGameRow{
			GameID:      g.ID,
			Date:        g.Date,
			TeamID:      g.HomeTeamID,
			OpponentID:  g.AwayTeamID,
			RunsFor:     *g.HomeScore,
			RunsAgainst: *g.AwayScore,
			IsHome:      1,
		}
		away := TeamGameRow{
			GameID:      g.ID,
			Date:        g.Date,
			TeamID:      g.AwayTeamID,
			OpponentID:  g.HomeTeamID,
			RunsFor:     *g.AwayScore,
			RunsAgainst: *g.HomeScore,
			IsHome:      0,
		}
		// Ties yield win=0 on both sides.
		if home.RunsFor > home.RunsAgainst {
			home.Win = 1
		}
		if away.RunsFor > away.RunsAgainst {
			away.Win = 1
		}

		rows = append(rows, home, away)
	}
	return rows
}
