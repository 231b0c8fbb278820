// Package service implements the ingestion workflow over the stats API and
// game store repositories.
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-trends/internal/metrics"
	"github.com/yourusername/mlb-trends/internal/models"
	"github.com/yourusername/mlb-trends/internal/repository"
	"github.com/yourusername/mlb-trends/internal/statsapi"
)

// StatsFetcher is the subset of the stats API client used by ingestion
type StatsFetcher interface {
	Teams(ctx context.Context) ([]statsapi.APITeam, error)
	Roster(ctx context.Context, teamID int) ([]statsapi.RosterEntry, error)
	Person(ctx context.Context, personID int) (*statsapi.APIPerson, error)
	Schedule(ctx context.Context, start, end time.Time) ([]statsapi.ScheduleGame, error)
	Boxscore(ctx context.Context, gamePk int64) (*statsapi.BoxscoreResponse, error)
}

// IngestionService handles the data ingestion workflow
type IngestionService struct {
	api       StatsFetcher
	repos     *repository.Repositories
	logger    *logrus.Entry
	batchSize int
	sleep     time.Duration
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(api StatsFetcher, repos *repository.Repositories, logger *logrus.Entry, batchSize int, sleep time.Duration) *IngestionService {
	if batchSize <= 0 {
		batchSize = 25
	}

	return &IngestionService{
		api:       api,
		repos:     repos,
		logger:    logger,
		batchSize: batchSize,
		sleep:     sleep,
	}
}

// SyncTeams fetches all MLB teams and upserts them into the store
func (s *IngestionService) SyncTeams(ctx context.Context) (*RunReport, error) {
	report := NewRunReport()
	start := time.Now()

	teams, err := s.api.Teams(ctx)
	if err != nil {
		return report, err
	}

	for i := range teams {
		t := &teams[i]
		if err := t.Validate(); err != nil {
			s.logger.WithError(err).Warn("Skipping malformed team entry")
			report.Errors++
			continue
		}

		team := &models.Team{
			ID:           t.ID,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			Location:     t.LocationName,
		}
		if err := s.repos.Teams.Upsert(ctx, team); err != nil {
			s.logger.WithError(err).WithField("team_id", t.ID).Error("Failed to upsert team")
			report.Errors++
			continue
		}
		report.TeamsUpserted++
	}

	report.Duration = time.Since(start)
	s.logger.WithField("report", report.String()).Info("Team sync complete")
	return report, nil
}

// SyncPlayers fetches the active roster for every stored team and upserts
// players, enriching each with a birthdate from the people endpoint.
func (s *IngestionService) SyncPlayers(ctx context.Context) (*RunReport, error) {
	report := NewRunReport()
	start := time.Now()

	teamIDs, err := s.repos.Teams.ListIDs(ctx)
	if err != nil {
		return report, err
	}

	for _, tid := range teamIDs {
		roster, err := s.api.Roster(ctx, tid)
		if err != nil {
			s.logger.WithError(err).WithField("team_id", tid).Warn("Skipping roster fetch")
			report.Errors++
			continue
		}

		for i := range roster {
			entry := &roster[i]
			if entry.Person.ID == 0 {
				report.Errors++
				continue
			}

			teamID := tid
			player := &models.Player{
				ID:     entry.Person.ID,
				Name:   entry.Person.FullName,
				TeamID: &teamID,
			}
			if pos := entry.Position.Abbreviation; pos != "" {
				player.Position = &pos
			}

			// Birthdate enrichment is best-effort; the roster row stands alone.
			if info, err := s.api.Person(ctx, entry.Person.ID); err == nil && info != nil && info.BirthDate != "" {
				birthdate := info.BirthDate
				player.Birthdate = &birthdate
			}

			if err := s.repos.Players.Upsert(ctx, player); err != nil {
				s.logger.WithError(err).WithField("player_id", player.ID).Error("Failed to upsert player")
				report.Errors++
				continue
			}
			report.PlayersSeen++
		}
	}

	report.Duration = time.Since(start)
	s.logger.WithField("report", report.String()).Info("Player sync complete")
	return report, nil
}

// SyncGames fetches the schedule for [start, end] and upserts games.
// Games missing identity fields are skipped, not fatal.
func (s *IngestionService) SyncGames(ctx context.Context, startDate, endDate time.Time) (*RunReport, error) {
	report := NewRunReport()
	start := time.Now()

	games, err := s.api.Schedule(ctx, startDate, endDate)
	if err != nil {
		return report, err
	}

	for i := range games {
		g := &games[i]
		if err := g.Validate(); err != nil {
			s.logger.WithError(err).Warn("Skipping malformed schedule entry")
			report.Errors++
			continue
		}

		date, err := time.Parse("2006-01-02", g.GameDay())
		if err != nil {
			s.logger.WithError(err).WithField("game_pk", g.GamePk).Warn("Skipping game with bad date")
			report.Errors++
			continue
		}

		game := &models.Game{
			ID:         g.GamePk,
			Date:       date,
			HomeTeamID: g.Teams.Home.Team.ID,
			AwayTeamID: g.Teams.Away.Team.ID,
			HomeScore:  g.Teams.Home.Score,
			AwayScore:  g.Teams.Away.Score,
			Venue:      g.Venue.Name,
		}
		if err := s.repos.Games.Upsert(ctx, game); err != nil {
			s.logger.WithError(err).WithField("game_pk", g.GamePk).Error("Failed to upsert game")
			report.Errors++
			continue
		}
		report.GamesUpserted++
		metrics.GamesIngestedTotal.Inc()
	}

	report.Duration = time.Since(start)
	s.logger.WithField("report", report.String()).Infof("Game sync complete (%s to %s)",
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	return report, nil
}

// lineBatch accumulates stat lines until they are committed together.
type lineBatch struct {
	batting  []models.BattingLine
	pitching []models.PitchingLine
}

func (b *lineBatch) size() int {
	return len(b.batting) + len(b.pitching)
}

func (b *lineBatch) reset() {
	b.batting = nil
	b.pitching = nil
}

// SyncBoxscores fetches box scores for completed games in [start, end] and
// upserts batting and pitching lines, committed in transactions of roughly
// batchSize lines. A failed game is skipped and the run continues; a failed
// batch rolls back as a unit.
func (s *IngestionService) SyncBoxscores(ctx context.Context, startDate, endDate time.Time) (*RunReport, error) {
	report := NewRunReport()
	start := time.Now()

	gameIDs, err := s.repos.Games.ListCompletedIDs(ctx, startDate, endDate)
	if err != nil {
		return report, err
	}

	var batch lineBatch
	for idx, gid := range gameIDs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		box, err := s.api.Boxscore(ctx, gid)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", gid).Warn("Skipping game boxscore")
			report.GamesSkipped++
			metrics.BoxscoresSkippedTotal.Inc()
			continue
		}

		s.collectBoxscoreSide(ctx, gid, &box.Teams.Home, &batch, report)
		s.collectBoxscoreSide(ctx, gid, &box.Teams.Away, &batch, report)
		metrics.BoxscoresIngestedTotal.Inc()

		if batch.size() >= s.batchSize {
			s.flushLines(ctx, &batch, report)
		}

		if s.sleep > 0 && idx < len(gameIDs)-1 {
			time.Sleep(s.sleep)
		}
	}
	s.flushLines(ctx, &batch, report)

	report.Duration = time.Since(start)
	s.logger.WithField("report", report.String()).Info("Boxscore sync complete")
	return report, nil
}

// flushLines commits the pending batch. On failure the whole batch is rolled
// back and counted as errors; the sync moves on to the next batch.
func (s *IngestionService) flushLines(ctx context.Context, batch *lineBatch, report *RunReport) {
	if batch.size() == 0 {
		return
	}

	if err := s.repos.Stats.UpsertBatch(ctx, batch.batting, batch.pitching); err != nil {
		s.logger.WithError(err).WithField("lines", batch.size()).Error("Failed to commit stat line batch")
		report.Errors += batch.size()
	} else {
		report.BattingLines += len(batch.batting)
		report.PitchingLines += len(batch.pitching)
	}
	batch.reset()
}

func (s *IngestionService) collectBoxscoreSide(ctx context.Context, gameID int64, side *statsapi.BoxscoreSide, batch *lineBatch, report *RunReport) {
	var teamID *int
	if side.Team.ID != 0 {
		id := side.Team.ID
		teamID = &id
	}

	for _, node := range side.Players {
		pid := node.Person.ID
		if pid == 0 {
			continue
		}

		if err := s.repos.Players.UpsertMinimal(ctx, pid, node.Person.FullName, teamID); err != nil {
			s.logger.WithError(err).WithField("player_id", pid).Error("Failed to upsert boxscore player")
			report.Errors++
			continue
		}
		report.PlayersSeen++

		batting := models.BattingLine{
			GameID:     gameID,
			PlayerID:   pid,
			AtBats:     node.Stats.Batting.AtBats,
			Hits:       node.Stats.Batting.Hits,
			Runs:       node.Stats.Batting.Runs,
			HomeRuns:   node.Stats.Batting.HomeRuns,
			RBI:        node.Stats.Batting.RBI,
			Walks:      node.Stats.Batting.BaseOnBalls,
			Strikeouts: node.Stats.Batting.StrikeOuts,
		}
		if !batting.Empty() {
			batch.batting = append(batch.batting, batting)
		}

		pitching := models.PitchingLine{
			GameID:          gameID,
			PlayerID:        pid,
			OutsPitched:     node.Stats.Pitching.OutsPitched(),
			HitsAllowed:     node.Stats.Pitching.Hits,
			RunsAllowed:     node.Stats.Pitching.Runs,
			EarnedRuns:      node.Stats.Pitching.EarnedRuns,
			HomeRunsAllowed: node.Stats.Pitching.HomeRuns,
			Walks:           node.Stats.Pitching.BaseOnBalls,
			Strikeouts:      node.Stats.Pitching.StrikeOuts,
			BattersFaced:    node.Stats.Pitching.BattersFaced,
			Pitches:         node.Stats.Pitching.PitchesThrown,
			Strikes:         node.Stats.Pitching.Strikes,
		}
		if note := firstNonEmpty(node.Note, node.Stats.Pitching.Note); note != "" {
			pitching.Decision = &note
		}
		if !pitching.Empty() {
			batch.pitching = append(batch.pitching, pitching)
		}
	}
}

// SyncAll runs the full ingestion pass: teams, players, games, box scores.
func (s *IngestionService) SyncAll(ctx context.Context, startDate, endDate time.Time) (*RunReport, error) {
	report := NewRunReport()
	runStart := time.Now()

	steps := []func() (*RunReport, error){
		func() (*RunReport, error) { return s.SyncTeams(ctx) },
		func() (*RunReport, error) { return s.SyncPlayers(ctx) },
		func() (*RunReport, error) { return s.SyncGames(ctx, startDate, endDate) },
		func() (*RunReport, error) { return s.SyncBoxscores(ctx, startDate, endDate) },
	}

	for _, step := range steps {
		stepReport, err := step()
		report.Merge(stepReport)
		if err != nil {
			report.Duration = time.Since(runStart)
			return report, err
		}
	}

	report.Duration = time.Since(runStart)
	s.logger.WithField("report", report.String()).Info("Full sync complete")
	return report, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
