package analytics

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-trends/internal/models"
)

// teamRows builds rows for one team from a win/loss sequence, one game per day.
func teamRows(teamID int, results []int) []TeamGameRow {
	rows := make([]TeamGameRow, len(results))
	for i, win := range results {
		runsFor, runsAgainst := 2, 4
		if win == 1 {
			runsFor, runsAgainst = 4, 2
		}
		rows[i] = TeamGameRow{
			GameID:      int64(i + 1),
			Date:        day(i),
			TeamID:      teamID,
			OpponentID:  999,
			RunsFor:     runsFor,
			RunsAgainst: runsAgainst,
			IsHome:      i % 2,
			Win:         win,
		}
	}
	return rows
}

func TestTeamRollingFormRejectsBadWindow(t *testing.T) {
	_, err := TeamRollingForm(nil, 1, 0, 0)
	assert.ErrorIs(t, err, models.ErrInvalidWindow)

	_, err = TeamRollingForm(nil, 1, -3, 0)
	assert.ErrorIs(t, err, models.ErrInvalidWindow)
}

func TestDefaultMinPeriods(t *testing.T) {
	assert.Equal(t, 1, DefaultMinPeriods(1))
	assert.Equal(t, 1, DefaultMinPeriods(2))
	assert.Equal(t, 5, DefaultMinPeriods(10))
	assert.Equal(t, 15, DefaultMinPeriods(30))
}

func TestRollingFormFloorBoundary(t *testing.T) {
	rows := teamRows(7, []int{1, 1, 0, 1, 0, 1, 1})
	points, err := TeamRollingForm(rows, 7, 10, 5)
	require.NoError(t, err)
	require.Len(t, points, 7)

	// With floor-1 observations the value is absent; at the floor it appears.
	assert.False(t, points[3].HasForm, "4 observations is below the floor of 5")
	assert.True(t, points[4].HasForm, "5 observations meets the floor")
	assert.InDelta(t, 3.0/5.0, points[4].RollingWinPct, 1e-12)
}

func TestRollingFormAlternatingConvergesToHalf(t *testing.T) {
	// 12 games alternating win/loss starting with a win, window=10, floor=5.
	results := []int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0}
	points, err := TeamRollingForm(teamRows(3, results), 3, 10, 5)
	require.NoError(t, err)
	require.Len(t, points, 12)

	// By the 6th game: 3 wins of 6.
	assert.True(t, points[5].HasForm)
	assert.InDelta(t, 0.5, points[5].RollingWinPct, 1e-12)

	// After the 12th: window holds games 3..12, still an even split.
	assert.True(t, points[11].HasForm)
	assert.InDelta(t, 0.5, points[11].RollingWinPct, 1e-12)
}

func TestRollingFormSwappingLossForWinNeverDecreases(t *testing.T) {
	base := []int{0, 1, 0, 0, 1, 1, 0, 1, 0, 1}
	window, floor := 5, 3

	basePoints, err := TeamRollingForm(teamRows(3, base), 3, window, floor)
	require.NoError(t, err)

	// Flip each loss to a win in turn; no later rolling value may decrease.
	for flip, r := range base {
		if r == 1 {
			continue
		}
		mutated := append([]int(nil), base...)
		mutated[flip] = 1

		mutPoints, err := TeamRollingForm(teamRows(3, mutated), 3, window, floor)
		require.NoError(t, err)

		for i := range basePoints {
			if !basePoints[i].HasForm {
				continue
			}
			assert.GreaterOrEqual(t, mutPoints[i].RollingWinPct, basePoints[i].RollingWinPct,
				"flipping game %d to a win decreased rolling form at game %d", flip, i)
		}
	}
}

func TestRollingFormWindowSlides(t *testing.T) {
	// 5 wins then 5 losses, window 5 floor 1: after game 10 the window is all losses.
	results := []int{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
	points, err := TeamRollingForm(teamRows(3, results), 3, 5, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, points[4].RollingWinPct, 1e-12)
	assert.InDelta(t, 0.0, points[9].RollingWinPct, 1e-12)
}

func TestRollingFormIgnoresOtherTeams(t *testing.T) {
	rows := append(teamRows(3, []int{1, 1, 1}), teamRows(4, []int{0, 0, 0})...)
	points, err := TeamRollingForm(rows, 3, 3, 1)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 1.0, points[2].RollingWinPct, 1e-12)
}

func TestRollingFormIdempotent(t *testing.T) {
	rows := teamRows(3, []int{1, 0, 0, 1, 1, 0, 1})
	first, err := TeamRollingForm(rows, 3, 4, 0)
	require.NoError(t, err)
	second, err := TeamRollingForm(rows, 3, 4, 0)
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(first, second))
}
