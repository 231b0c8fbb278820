package analytics

import (
	"sort"

	"github.com/yourusername/mlb-trends/internal/models"
)

// FormPoint annotates a team-game row with the rolling win percentage over
// the trailing window ending at that row. HasForm is false while fewer than
// the minimum observations exist.
type FormPoint struct {
	TeamGameRow
	RollingWinPct float64 `json:"rolling_win_pct"`
	HasForm       bool    `json:"has_form"`
}

// DefaultMinPeriods is the observation floor used when none is supplied:
// half the window, never below one.
func DefaultMinPeriods(window int) int {
	m := window / 2
	if m < 1 {
		m = 1
	}
	return m
}

// TeamRollingForm computes the trailing win percentage for one team. Rows are
// filtered to the team and sorted by date ascending; ties keep their input
// order so the window is reproducible. The window includes the current row.
// minPeriods <= 0 selects the default floor.
func TeamRollingForm(rows []TeamGameRow, teamID, window, minPeriods int) ([]FormPoint, error) {
	if window < 1 {
		return nil, models.ErrInvalidWindow
	}
	if minPeriods <= 0 {
		minPeriods = DefaultMinPeriods(window)
	}
	if minPeriods > window {
		minPeriods = window
	}

	var team []TeamGameRow
	for _, r := range rows {
		if r.TeamID == teamID {
			team = append(team, r)
		}
	}
	sort.SliceStable(team, func(i, j int) bool {
		return team[i].Date.Before(team[j].Date)
	})

	points := make([]FormPoint, len(team))
	windowSum := 0
	for i, r := range team {
		windowSum += r.Win
		if i >= window {
			windowSum -= team[i-window].Win
		}

		count := i + 1
		if count > window {
			count = window
		}

		points[i] = FormPoint{TeamGameRow: r}
		if count >= minPeriods {
			points[i].RollingWinPct = float64(windowSum) / float64(count)
			points[i].HasForm = true
		}
	}

	return points, nil
}
