package analytics

import (
	"sort"
	"time"

	"github.com/yourusername/mlb-trends/internal/models"
)

// Model feature windowing is fixed regardless of the window chosen for
// interactive trend display.
const (
	ModelWindow     = 10
	ModelMinPeriods = 5
)

// neutralForm is the fallback used when a side's rolling form is absent at
// the point the differential is computed.
const neutralForm = 0.5

// HomeWinRow is one supervised-learning row: features plus label for a
// completed game where both sides had enough history.
type HomeWinRow struct {
	GameID     int64     `json:"game_id"`
	Date       time.Time `json:"date"`
	HomeTeamID int       `json:"home_team_id"`
	AwayTeamID int       `json:"away_team_id"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	HomeForm   float64   `json:"home_r10"`
	AwayForm   float64   `json:"away_r10"`
	FormDiff   float64   `json:"r10_diff"`
	IsHome     int       `json:"is_home"` // constant 1: the target is always the home team
	HomeWin    int       `json:"home_win"`
}

type formKey struct {
	gameID int64
	teamID int
}

// BuildHomeWinDataset joins each side's rolling form (window 10, floor 5)
// back onto the completed games and keeps only rows where both sides' values
// are present. Output is sorted by date ascending, game id as tiebreaker, as
// required by the chronological train/test split.
func BuildHomeWinDataset(games []models.Game, rows []TeamGameRow) []HomeWinRow {
	// Rolling form per team across all its rows (home and away mixed).
	teamIDs := make(map[int]struct{})
	for _, r := range rows {
		teamIDs[r.TeamID] = struct{}{}
	}

	homeForm := make(map[formKey]float64)
	awayForm := make(map[formKey]float64)
	for tid := range teamIDs {
		points, err := TeamRollingForm(rows, tid, ModelWindow, ModelMinPeriods)
		if err != nil {
			// Unreachable with a constant window; keep the dataset empty-safe.
			continue
		}
		for _, p := range points {
			if !p.HasForm {
				continue
			}
			key := formKey{gameID: p.GameID, teamID: p.TeamID}
			if p.IsHome == 1 {
				homeForm[key] = p.RollingWinPct
			} else {
				awayForm[key] = p.RollingWinPct
			}
		}
	}

	var out []HomeWinRow
	for i := range games {
		g := &games[i]
		if !g.Completed() {
			continue
		}

		hVal, hOK := homeForm[formKey{gameID: g.ID, teamID: g.HomeTeamID}]
		aVal, aOK := awayForm[formKey{gameID: g.ID, teamID: g.AwayTeamID}]

		// The 0.5 default is applied before the diff so an absent value never
		// propagates; the presence filter below then drops such rows anyway.
		if !hOK {
			hVal = neutralForm
		}
		if !aOK {
			aVal = neutralForm
		}

		if !hOK || !aOK {
			continue
		}

		row := HomeWinRow{
			GameID:     g.ID,
			Date:       g.Date,
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			HomeScore:  *g.HomeScore,
			AwayScore:  *g.AwayScore,
			HomeForm:   hVal,
			AwayForm:   aVal,
			FormDiff:   hVal - aVal,
			IsHome:     1,
		}
		if g.HomeWin() {
			row.HomeWin = 1
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].GameID < out[j].GameID
		}
		return out[i].Date.Before(out[j].Date)
	})

	return out
}
