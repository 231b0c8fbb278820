package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-trends/internal/models"
)

func day(offset int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func completedGame(id int64, offset int, homeID, awayID, homeScore, awayScore int) models.Game {
	return models.Game{
		ID:         id,
		Date:       day(offset),
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeScore:  &homeScore,
		AwayScore:  &awayScore,
	}
}

func TestFlattenEmitsTwoRowsPerGame(t *testing.T) {
	games := []models.Game{
		completedGame(1, 0, 100, 200, 5, 3),
		completedGame(2, 1, 200, 100, 2, 7),
	}

	rows := Flatten(games)
	require.Len(t, rows, 4)

	// Exactly one win per game pair.
	for i := 0; i < len(rows); i += 2 {
		home, away := rows[i], rows[i+1]
		assert.Equal(t, home.GameID, away.GameID)
		assert.Equal(t, 1, home.IsHome)
		assert.Equal(t, 0, away.IsHome)
		assert.Equal(t, 1, home.Win+away.Win, "win flags across a pair must sum to 1")
		assert.Equal(t, home.RunsFor, away.RunsAgainst)
		assert.Equal(t, home.RunsAgainst, away.RunsFor)
	}

	assert.Equal(t, 100, rows[0].TeamID)
	assert.Equal(t, 200, rows[0].OpponentID)
	assert.Equal(t, 1, rows[0].Win)
	assert.Equal(t, 0, rows[1].Win)
}

func TestFlattenSkipsIncompleteGames(t *testing.T) {
	score := 4
	games := []models.Game{
		completedGame(1, 0, 100, 200, 5, 3),
		{ID: 2, Date: day(1), HomeTeamID: 100, AwayTeamID: 200, HomeScore: &score}, // away score pending
		{ID: 3, Date: day(2), HomeTeamID: 100, AwayTeamID: 200},
	}

	rows := Flatten(games)
	assert.Len(t, rows, 2)
}

func TestFlattenTieYieldsNoWin(t *testing.T) {
	rows := Flatten([]models.Game{completedGame(1, 0, 100, 200, 4, 4)})
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Win)
	assert.Equal(t, 0, rows[1].Win)
}

func TestFlattenIdempotent(t *testing.T) {
	games := []models.Game{
		completedGame(1, 0, 100, 200, 5, 3),
		completedGame(2, 1, 200, 300, 2, 7),
		completedGame(3, 1, 300, 100, 0, 1),
	}

	first := Flatten(games)
	second := Flatten(games)
	assert.True(t, reflect.DeepEqual(first, second), "flatten must be stable under re-invocation")
}
