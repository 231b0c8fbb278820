package models

import "time"

// Game represents a scheduled or completed game. Scores are nil until the game
// is final; only games with both scores present participate in any derived
// computation.
type Game struct {
	ID         int64     `db:"game_id" json:"game_id"`
	Date       time.Time `db:"date" json:"date"`
	HomeTeamID int       `db:"home_team_id" json:"home_team_id"`
	AwayTeamID int       `db:"away_team_id" json:"away_team_id"`
	HomeScore  *int      `db:"home_score" json:"home_score,omitempty"`
	AwayScore  *int      `db:"away_score" json:"away_score,omitempty"`
	Venue      string    `db:"venue" json:"venue"`
}

// Completed reports whether both scores are known.
func (g *Game) Completed() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// HomeWin reports whether the home team won. Only meaningful for completed games.
func (g *Game) HomeWin() bool {
	return g.Completed() && *g.HomeScore > *g.AwayScore
}
