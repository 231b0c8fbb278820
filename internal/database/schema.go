package database

import (
	"context"
	"fmt"
)

// Game store schema shared with the original loader scripts.
const schema = `
CREATE TABLE IF NOT EXISTS teams (
	team_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	abbreviation TEXT NOT NULL,
	location TEXT
);

CREATE TABLE IF NOT EXISTS players (
	player_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	team_id INTEGER,
	position TEXT,
	birthdate TEXT,
	FOREIGN KEY (team_id) REFERENCES teams(team_id)
);

CREATE TABLE IF NOT EXISTS games (
	game_id INTEGER PRIMARY KEY,
	date TEXT NOT NULL,
	home_team_id INTEGER NOT NULL,
	away_team_id INTEGER NOT NULL,
	home_score INTEGER,
	away_score INTEGER,
	venue TEXT,
	FOREIGN KEY (home_team_id) REFERENCES teams(team_id),
	FOREIGN KEY (away_team_id) REFERENCES teams(team_id)
);
CREATE INDEX IF NOT EXISTS idx_games_date ON games(date);

CREATE TABLE IF NOT EXISTS player_game_stats (
	stat_id INTEGER PRIMARY KEY,
	game_id INTEGER NOT NULL,
	player_id INTEGER NOT NULL,
	at_bats INTEGER,
	hits INTEGER,
	runs INTEGER,
	home_runs INTEGER,
	rbi INTEGER,
	walks INTEGER,
	strikeouts INTEGER,
	FOREIGN KEY (game_id) REFERENCES games(game_id),
	FOREIGN KEY (player_id) REFERENCES players(player_id)
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_player_game ON player_game_stats(game_id, player_id);
CREATE INDEX IF NOT EXISTS idx_pgs_player ON player_game_stats(player_id);
CREATE INDEX IF NOT EXISTS idx_pgs_game ON player_game_stats(game_id);

CREATE TABLE IF NOT EXISTS pitcher_game_stats (
	stat_id INTEGER PRIMARY KEY,
	game_id INTEGER NOT NULL,
	player_id INTEGER NOT NULL,
	outs_pitched INTEGER,
	hits_allowed INTEGER,
	runs_allowed INTEGER,
	earned_runs INTEGER,
	home_runs_allowed INTEGER,
	walks INTEGER,
	strikeouts INTEGER,
	batters_faced INTEGER,
	pitches INTEGER,
	strikes INTEGER,
	decision TEXT,
	FOREIGN KEY (game_id) REFERENCES games(game_id),
	FOREIGN KEY (player_id) REFERENCES players(player_id),
	UNIQUE (game_id, player_id)
);
CREATE INDEX IF NOT EXISTS idx_pit_game ON pitcher_game_stats(game_id);
CREATE INDEX IF NOT EXISTS idx_pit_player ON pitcher_game_stats(player_id);
`

// InitSchema creates all tables and indexes if they do not exist
func (d *DB) InitSchema(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize store schema: %w", err)
	}
	return nil
}
