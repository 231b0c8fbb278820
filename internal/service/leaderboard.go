package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/mlb-trends/internal/repository"
)

// BattingLeader is a batting leaderboard entry with the derived average.
type BattingLeader struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	Games      int    `json:"games"`
	AtBats     int    `json:"at_bats"`
	Hits       int    `json:"hits"`
	HomeRuns   int    `json:"home_runs"`
	RBI        int    `json:"rbi"`
	Average    string `json:"avg"`
}

// PitchingLeader is a pitching leaderboard entry with the derived ERA.
type PitchingLeader struct {
	PlayerID       int    `json:"player_id"`
	PlayerName     string `json:"player_name"`
	Games          int    `json:"games"`
	InningsPitched string `json:"innings_pitched"`
	EarnedRuns     int    `json:"earned_runs"`
	Strikeouts     int    `json:"strikeouts"`
	Walks          int    `json:"walks"`
	ERA            string `json:"era"`
}

// LeaderboardService derives batting and pitching leaderboards from stored
// box-score lines. Rate stats use fixed-point arithmetic so that rounding is
// deterministic across runs.
type LeaderboardService struct {
	stats repository.StatsRepository
}

// NewLeaderboardService creates a leaderboard service
func NewLeaderboardService(stats repository.StatsRepository) *LeaderboardService {
	return &LeaderboardService{stats: stats}
}

// Batting returns the top hitters by batting average within [start, end].
func (s *LeaderboardService) Batting(ctx context.Context, start, end time.Time, limit int) ([]BattingLeader, error) {
	totals, err := s.stats.BattingTotals(ctx, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load batting totals: %w", err)
	}

	leaders := make([]BattingLeader, 0, len(totals))
	for _, t := range totals {
		avg := decimal.Zero
		if t.AtBats > 0 {
			avg = decimal.NewFromInt(int64(t.Hits)).DivRound(decimal.NewFromInt(int64(t.AtBats)), 3)
		}
		leaders = append(leaders, BattingLeader{
			PlayerID:   t.PlayerID,
			PlayerName: t.PlayerName,
			Games:      t.Games,
			AtBats:     t.AtBats,
			Hits:       t.Hits,
			HomeRuns:   t.HomeRuns,
			RBI:        t.RBI,
			Average:    avg.StringFixed(3),
		})
	}
	return leaders, nil
}

// Pitching returns the top pitchers by ERA within [start, end]. Innings are
// stored as outs; ERA is earned runs times 27 over outs recorded.
func (s *LeaderboardService) Pitching(ctx context.Context, start, end time.Time, limit int) ([]PitchingLeader, error) {
	totals, err := s.stats.PitchingTotals(ctx, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pitching totals: %w", err)
	}

	leaders := make([]PitchingLeader, 0, len(totals))
	for _, t := range totals {
		era := decimal.Zero
		innings := decimal.Zero
		if t.OutsPitched > 0 {
			outs := decimal.NewFromInt(int64(t.OutsPitched))
			era = decimal.NewFromInt(int64(t.EarnedRuns) * 27).DivRound(outs, 2)
			innings = outs.DivRound(decimal.NewFromInt(3), 1)
		}
		leaders = append(leaders, PitchingLeader{
			PlayerID:       t.PlayerID,
			PlayerName:     t.PlayerName,
			Games:          t.Games,
			InningsPitched: innings.StringFixed(1),
			EarnedRuns:     t.EarnedRuns,
			Strikeouts:     t.Strikeouts,
			Walks:          t.Walks,
			ERA:            era.StringFixed(2),
		})
	}
	return leaders, nil
}
