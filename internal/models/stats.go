package models

// BattingLine is a per-game, per-player batting box score row.
type BattingLine struct {
	GameID     int64 `db:"game_id" json:"game_id"`
	PlayerID   int   `db:"player_id" json:"player_id"`
	AtBats     int   `db:"at_bats" json:"at_bats"`
	Hits       int   `db:"hits" json:"hits"`
	Runs       int   `db:"runs" json:"runs"`
	HomeRuns   int   `db:"home_runs" json:"home_runs"`
	RBI        int   `db:"rbi" json:"rbi"`
	Walks      int   `db:"walks" json:"walks"`
	Strikeouts int   `db:"strikeouts" json:"strikeouts"`
}

// Empty reports whether every counting stat is zero; such lines are not stored.
func (b *BattingLine) Empty() bool {
	return b.AtBats == 0 && b.Hits == 0 && b.Runs == 0 && b.HomeRuns == 0 &&
		b.RBI == 0 && b.Walks == 0 && b.Strikeouts == 0
}

// PitchingLine is a per-game, per-player pitching box score row.
// Innings are stored as outs to avoid the "5.2 innings" notation ambiguity.
type PitchingLine struct {
	GameID          int64   `db:"game_id" json:"game_id"`
	PlayerID        int     `db:"player_id" json:"player_id"`
	OutsPitched     int     `db:"outs_pitched" json:"outs_pitched"`
	HitsAllowed     int     `db:"hits_allowed" json:"hits_allowed"`
	RunsAllowed     int     `db:"runs_allowed" json:"runs_allowed"`
	EarnedRuns      int     `db:"earned_runs" json:"earned_runs"`
	HomeRunsAllowed int     `db:"home_runs_allowed" json:"home_runs_allowed"`
	Walks           int     `db:"walks" json:"walks"`
	Strikeouts      int     `db:"strikeouts" json:"strikeouts"`
	BattersFaced    int     `db:"batters_faced" json:"batters_faced"`
	Pitches         int     `db:"pitches" json:"pitches"`
	Strikes         int     `db:"strikes" json:"strikes"`
	Decision        *string `db:"decision" json:"decision,omitempty"` // W, L, S when available
}

// Empty reports whether the line carries no pitching activity at all.
func (p *PitchingLine) Empty() bool {
	return p.OutsPitched == 0 && p.HitsAllowed == 0 && p.RunsAllowed == 0 &&
		p.EarnedRuns == 0 && p.BattersFaced == 0 && p.Pitches == 0
}
