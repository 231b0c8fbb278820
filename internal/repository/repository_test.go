package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-trends/internal/config"
	"github.com/yourusername/mlb-trends/internal/database"
	"github.com/yourusername/mlb-trends/internal/models"
)

func newTestStore(t *testing.T) (*Repositories, *database.DB) {
	t.Helper()
	ctx := context.Background()

	cfg := &config.StoreConfig{Path: filepath.Join(t.TempDir(), "store.db")}
	db, err := database.OpenOrCreate(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepositories(db), db
}

func seedTeams(t *testing.T, repos *Repositories) {
	t.Helper()
	ctx := context.Background()
	for _, team := range []*models.Team{
		{ID: 147, Name: "New York Yankees", Abbreviation: "NYY", Location: "Bronx"},
		{ID: 111, Name: "Boston Red Sox", Abbreviation: "BOS", Location: "Boston"},
	} {
		require.NoError(t, repos.Teams.Upsert(ctx, team))
	}
}

func gameOn(id int64, date string, home, away int, homeScore, awayScore *int) *models.Game {
	d, _ := time.Parse("2006-01-02", date)
	return &models.Game{
		ID: id, Date: d,
		HomeTeamID: home, AwayTeamID: away,
		HomeScore: homeScore, AwayScore: awayScore,
	}
}

func intp(v int) *int { return &v }

func TestOpenFailsFastOnMissingStore(t *testing.T) {
	cfg := &config.StoreConfig{Path: filepath.Join(t.TempDir(), "nope.db")}
	_, err := database.Open(context.Background(), cfg)
	assert.ErrorIs(t, err, models.ErrStoreNotFound)
}

func TestTeamUpsertAndRead(t *testing.T) {
	repos, _ := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	team, err := repos.Teams.GetByID(ctx, 147)
	require.NoError(t, err)
	assert.Equal(t, "NYY", team.Abbreviation)

	// Second upsert replaces fields.
	require.NoError(t, repos.Teams.Upsert(ctx, &models.Team{ID: 147, Name: "New York Yankees", Abbreviation: "NY"}))
	team, err = repos.Teams.GetByID(ctx, 147)
	require.NoError(t, err)
	assert.Equal(t, "NY", team.Abbreviation)

	_, err = repos.Teams.GetByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	teams, err := repos.Teams.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "BOS", teams[0].Abbreviation)

	ids, err := repos.Teams.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{111, 147}, ids)
}

func TestGameUpsertNeverErasesScores(t *testing.T) {
	repos, _ := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 147, 111, intp(5), intp(2))))

	// A later schedule pull without scores must not null out the result.
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 147, 111, nil, nil)))

	games, err := repos.Games.ListCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.NotNil(t, games[0].HomeScore)
	assert.Equal(t, 5, *games[0].HomeScore)
	assert.Equal(t, 2, *games[0].AwayScore)
}

func TestListCompletedOrdering(t *testing.T) {
	repos, _ := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	// Inserted out of order, with a date tie between games 3 and 2.
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(3, "2024-04-02", 147, 111, intp(1), intp(0))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 111, 147, intp(4), intp(6))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(2, "2024-04-02", 111, 147, intp(3), intp(3))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(4, "2024-04-03", 147, 111, nil, nil)))

	games, err := repos.Games.ListCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, int64(1), games[0].ID)
	assert.Equal(t, int64(2), games[1].ID)
	assert.Equal(t, int64(3), games[2].ID)
}

func TestListCompletedIDsRange(t *testing.T) {
	repos, _ := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 147, 111, intp(2), intp(1))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(2, "2024-04-05", 147, 111, intp(2), intp(1))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(3, "2024-04-09", 147, 111, intp(2), intp(1))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(4, "2024-04-05", 111, 147, nil, nil)))

	start, _ := time.Parse("2006-01-02", "2024-04-02")
	end, _ := time.Parse("2006-01-02", "2024-04-08")
	ids, err := repos.Games.ListCompletedIDs(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestLatestDate(t *testing.T) {
	repos, _ := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	_, err := repos.Games.LatestDate(ctx)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 147, 111, intp(1), intp(0))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(2, "2024-04-07", 147, 111, nil, nil)))

	latest, err := repos.Games.LatestDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-07", latest.Format("2006-01-02"))
}

func TestPlayerUpsertKeepsBirthdate(t *testing.T) {
	repos, db := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	teamID := 147
	birthdate := "1992-04-26"
	position := "RF"
	require.NoError(t, repos.Players.Upsert(ctx, &models.Player{
		ID: 592450, Name: "Aaron Judge", TeamID: &teamID, Position: &position, Birthdate: &birthdate,
	}))

	// Roster refresh without a birthdate must keep the stored one.
	require.NoError(t, repos.Players.Upsert(ctx, &models.Player{
		ID: 592450, Name: "Aaron Judge", TeamID: &teamID, Position: &position,
	}))

	var stored string
	err := db.Handle().QueryRowContext(ctx,
		`SELECT birthdate FROM players WHERE player_id = ?`, 592450).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, birthdate, stored)
}

func TestUpsertMinimalKeepsKnownFields(t *testing.T) {
	repos, db := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	teamID := 147
	require.NoError(t, repos.Players.UpsertMinimal(ctx, 543037, "Gerrit Cole", &teamID))

	// Later box score with no name or team must not blank the row.
	require.NoError(t, repos.Players.UpsertMinimal(ctx, 543037, "", nil))

	var name string
	var storedTeam int
	err := db.Handle().QueryRowContext(ctx,
		`SELECT name, team_id FROM players WHERE player_id = ?`, 543037).Scan(&name, &storedTeam)
	require.NoError(t, err)
	assert.Equal(t, "Gerrit Cole", name)
	assert.Equal(t, 147, storedTeam)
}

func TestBattingTotalsAggregation(t *testing.T) {
	repos, _ := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 147, 111, intp(5), intp(2))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(2, "2024-04-02", 111, 147, intp(1), intp(4))))
	require.NoError(t, repos.Games.Upsert(ctx, gameOn(3, "2024-05-15", 147, 111, intp(2), intp(0))))

	teamID := 147
	require.NoError(t, repos.Players.UpsertMinimal(ctx, 592450, "Aaron Judge", &teamID))
	require.NoError(t, repos.Players.UpsertMinimal(ctx, 543037, "Gerrit Cole", &teamID))

	for gid, line := range map[int64]models.BattingLine{
		1: {GameID: 1, PlayerID: 592450, AtBats: 4, Hits: 2, HomeRuns: 1, RBI: 2},
		2: {GameID: 2, PlayerID: 592450, AtBats: 3, Hits: 1},
		3: {GameID: 3, PlayerID: 592450, AtBats: 4, Hits: 3},
	} {
		l := line
		l.GameID = gid
		require.NoError(t, repos.Stats.UpsertBatting(ctx, &l))
	}
	// A pitcher with no at bats is excluded from batting totals.
	require.NoError(t, repos.Stats.UpsertBatting(ctx, &models.BattingLine{GameID: 1, PlayerID: 543037}))

	start, _ := time.Parse("2006-01-02", "2024-04-01")
	end, _ := time.Parse("2006-01-02", "2024-04-30")
	totals, err := repos.Stats.BattingTotals(ctx, start, end, 10)
	require.NoError(t, err)

	// Only April games count: 7 at bats, 3 hits across 2 games.
	require.Len(t, totals, 1)
	assert.Equal(t, 592450, totals[0].PlayerID)
	assert.Equal(t, 2, totals[0].Games)
	assert.Equal(t, 7, totals[0].AtBats)
	assert.Equal(t, 3, totals[0].Hits)
	assert.Equal(t, 1, totals[0].HomeRuns)
}

func TestUpsertBatchCommitsAllLines(t *testing.T) {
	repos, db := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 147, 111, intp(5), intp(2))))
	teamID := 147
	require.NoError(t, repos.Players.UpsertMinimal(ctx, 592450, "Aaron Judge", &teamID))
	require.NoError(t, repos.Players.UpsertMinimal(ctx, 543037, "Gerrit Cole", &teamID))

	err := repos.Stats.UpsertBatch(ctx,
		[]models.BattingLine{{GameID: 1, PlayerID: 592450, AtBats: 4, Hits: 2}},
		[]models.PitchingLine{{GameID: 1, PlayerID: 543037, OutsPitched: 18, Strikeouts: 7}},
	)
	require.NoError(t, err)

	var battingRows, pitchingRows int
	require.NoError(t, db.Handle().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM player_game_stats`).Scan(&battingRows))
	require.NoError(t, db.Handle().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pitcher_game_stats`).Scan(&pitchingRows))
	assert.Equal(t, 1, battingRows)
	assert.Equal(t, 1, pitchingRows)
}

func TestUpsertBatchRollsBackAtomically(t *testing.T) {
	repos, db := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 147, 111, intp(5), intp(2))))
	teamID := 147
	require.NoError(t, repos.Players.UpsertMinimal(ctx, 592450, "Aaron Judge", &teamID))

	// The second line references a player that does not exist, so the foreign
	// key rejects it and the valid first line must roll back with it.
	err := repos.Stats.UpsertBatch(ctx,
		[]models.BattingLine{
			{GameID: 1, PlayerID: 592450, AtBats: 4, Hits: 2},
			{GameID: 1, PlayerID: 999999, AtBats: 3, Hits: 1},
		},
		nil,
	)
	require.Error(t, err)

	var rows int
	require.NoError(t, db.Handle().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM player_game_stats`).Scan(&rows))
	assert.Zero(t, rows)
}

func TestPitchingTotalsAndDecisionPreserved(t *testing.T) {
	repos, db := newTestStore(t)
	seedTeams(t, repos)
	ctx := context.Background()

	require.NoError(t, repos.Games.Upsert(ctx, gameOn(1, "2024-04-01", 147, 111, intp(5), intp(2))))

	teamID := 147
	require.NoError(t, repos.Players.UpsertMinimal(ctx, 543037, "Gerrit Cole", &teamID))

	decision := "(W, 1-0)"
	require.NoError(t, repos.Stats.UpsertPitching(ctx, &models.PitchingLine{
		GameID: 1, PlayerID: 543037, OutsPitched: 20, EarnedRuns: 2, Strikeouts: 9, Decision: &decision,
	}))

	// Re-ingest without the decision note; the stored note survives.
	require.NoError(t, repos.Stats.UpsertPitching(ctx, &models.PitchingLine{
		GameID: 1, PlayerID: 543037, OutsPitched: 20, EarnedRuns: 2, Strikeouts: 9,
	}))

	var stored string
	err := db.Handle().QueryRowContext(ctx,
		`SELECT decision FROM pitcher_game_stats WHERE game_id = 1 AND player_id = ?`, 543037).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, decision, stored)

	start, _ := time.Parse("2006-01-02", "2024-04-01")
	end, _ := time.Parse("2006-01-02", "2024-04-30")
	totals, err := repos.Stats.PitchingTotals(ctx, start, end, 10)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 20, totals[0].OutsPitched)
	assert.Equal(t, 9, totals[0].Strikeouts)
}
