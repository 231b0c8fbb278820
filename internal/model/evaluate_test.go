package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-trends/internal/analytics"
	"github.com/yourusername/mlb-trends/internal/models"
)

func syntheticDataset(n int, homeWin func(i int) int) []analytics.HomeWinRow {
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]analytics.HomeWinRow, n)
	for i := 0; i < n; i++ {
		win := homeWin(i)
		diff := -0.2
		homeScore, awayScore := 2, 6
		if win == 1 {
			diff = 0.2
			homeScore, awayScore = 6, 2
		}
		rows[i] = analytics.HomeWinRow{
			GameID:     int64(i + 1),
			Date:       base.AddDate(0, 0, i),
			HomeTeamID: 100,
			AwayTeamID: 200,
			HomeScore:  homeScore,
			AwayScore:  awayScore,
			HomeForm:   0.5 + diff/2,
			AwayForm:   0.5 - diff/2,
			FormDiff:   diff,
			IsHome:     1,
			HomeWin:    win,
		}
	}
	return rows
}

func fullRange() (time.Time, time.Time) {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestEvaluateChronologicalSplitNoLeakage(t *testing.T) {
	ds := syntheticDataset(100, func(i int) int { return i % 2 })
	start, end := fullRange()

	eval, err := Evaluate(ds, start, end)
	require.NoError(t, err)
	require.False(t, eval.Insufficient)

	assert.Equal(t, 100, eval.TotalRows)
	assert.Equal(t, 80, eval.TrainRows, "training partition must be exactly the first 80 rows")
	assert.Equal(t, 20, eval.TestRows)
	require.Len(t, eval.Predictions, 20)

	// The held-out rows are exactly games 81..100 in order.
	for i, p := range eval.Predictions {
		assert.Equal(t, int64(81+i), p.GameID)
	}
}

func TestEvaluateInsufficientData(t *testing.T) {
	ds := syntheticDataset(49, func(i int) int { return i % 2 })
	start, end := fullRange()

	eval, err := Evaluate(ds, start, end)
	require.NoError(t, err, "insufficient data is a result, not an error")
	assert.True(t, eval.Insufficient)
	assert.Equal(t, 49, eval.TotalRows)
	assert.Empty(t, eval.Predictions)
	assert.False(t, eval.AUCValid)
}

func TestEvaluateRangeFilterCausesInsufficiency(t *testing.T) {
	ds := syntheticDataset(100, func(i int) int { return i % 2 })

	// A 10-day slice of the season leaves far fewer than 50 rows.
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	eval, err := Evaluate(ds, start, start.AddDate(0, 0, 9))
	require.NoError(t, err)
	assert.True(t, eval.Insufficient)
	assert.Equal(t, 10, eval.TotalRows)
}

func TestEvaluateSingleClassTestPartitionAUCUndefined(t *testing.T) {
	// Mixed labels early so training is fittable, all home wins in the last 20.
	ds := syntheticDataset(100, func(i int) int {
		if i >= 80 {
			return 1
		}
		return i % 2
	})
	start, end := fullRange()

	eval, err := Evaluate(ds, start, end)
	require.NoError(t, err)
	require.False(t, eval.Insufficient)

	assert.False(t, eval.AUCValid, "single-class evaluation partition leaves AUC undefined")
	assert.Zero(t, eval.AUC)
	assert.Len(t, eval.Predictions, 20, "predictions are still produced")
}

func TestEvaluateCoefficientsExposed(t *testing.T) {
	ds := syntheticDataset(100, func(i int) int { return i % 2 })
	start, end := fullRange()

	eval, err := Evaluate(ds, start, end)
	require.NoError(t, err)
	require.Len(t, eval.Coefficients, 2)

	assert.Equal(t, "r10_diff", eval.Coefficients[0].Feature)
	assert.Equal(t, "is_home", eval.Coefficients[1].Feature)
	assert.Greater(t, eval.Coefficients[0].Value, 0.0,
		"a positive form differential predicts a home win in this dataset")
}

func TestEvaluateDiscriminatesSeparableData(t *testing.T) {
	ds := syntheticDataset(100, func(i int) int { return i % 2 })
	start, end := fullRange()

	eval, err := Evaluate(ds, start, end)
	require.NoError(t, err)
	require.True(t, eval.AUCValid)
	assert.InDelta(t, 1.0, eval.AUC, 1e-9, "separable data should rank perfectly")
}

func TestEvaluateRejectsInvertedRange(t *testing.T) {
	ds := syntheticDataset(100, func(i int) int { return i % 2 })
	start, end := fullRange()

	_, err := Evaluate(ds, end, start)
	assert.ErrorIs(t, err, models.ErrInvalidDateRange)
}

func TestEvaluateIndependentCalls(t *testing.T) {
	ds := syntheticDataset(100, func(i int) int { return i % 2 })
	start, end := fullRange()

	first, err := Evaluate(ds, start, end)
	require.NoError(t, err)
	second, err := Evaluate(ds, start, end)
	require.NoError(t, err)

	assert.Equal(t, first.Coefficients, second.Coefficients, "every call fits fresh from the same data")
	assert.Equal(t, first.AUC, second.AUC)
}

func TestRecent(t *testing.T) {
	ds := syntheticDataset(100, func(i int) int { return i % 2 })
	start, end := fullRange()

	eval, err := Evaluate(ds, start, end)
	require.NoError(t, err)

	recent := eval.Recent(5)
	require.Len(t, recent, 5)
	assert.Equal(t, int64(96), recent[0].GameID)

	assert.Len(t, eval.Recent(100), 20, "asking for more rows than exist returns all")
}
