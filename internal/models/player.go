package models

// Player represents a rostered (or box-score-discovered) player.
// TeamID, Position and Birthdate may be unknown when the player was first seen
// through a box score rather than a roster pull.
type Player struct {
	ID        int     `db:"player_id" json:"player_id"`
	Name      string  `db:"name" json:"name"`
	TeamID    *int    `db:"team_id" json:"team_id,omitempty"`
	Position  *string `db:"position" json:"position,omitempty"`
	Birthdate *string `db:"birthdate" json:"birthdate,omitempty"` // YYYY-MM-DD
}
