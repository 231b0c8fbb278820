package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunReport captures the outcome of one ingestion run
type RunReport struct {
	RunID         uuid.UUID
	TeamsUpserted int
	PlayersSeen   int
	GamesUpserted int
	BattingLines  int
	PitchingLines int
	GamesSkipped  int
	Errors        int
	Duration      time.Duration
}

// NewRunReport creates a report with a fresh run id
func NewRunReport() *RunReport {
	return &RunReport{RunID: uuid.New()}
}

// String renders a one-line summary for logging
func (r *RunReport) String() string {
	return fmt.Sprintf(
		"run=%s teams=%d players=%d games=%d batting=%d pitching=%d skipped=%d errors=%d duration=%v",
		r.RunID, r.TeamsUpserted, r.PlayersSeen, r.GamesUpserted,
		r.BattingLines, r.PitchingLines, r.GamesSkipped, r.Errors, r.Duration,
	)
}

// Merge folds another report's counts into this one, keeping this run id.
func (r *RunReport) Merge(other *RunReport) {
	if other == nil {
		return
	}
	r.TeamsUpserted += other.TeamsUpserted
	r.PlayersSeen += other.PlayersSeen
	r.GamesUpserted += other.GamesUpserted
	r.BattingLines += other.BattingLines
	r.PitchingLines += other.PitchingLines
	r.GamesSkipped += other.GamesSkipped
	r.Errors += other.Errors
	r.Duration += other.Duration
}
