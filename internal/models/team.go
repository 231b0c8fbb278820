package models

// Team represents an MLB franchise as returned by the stats API teams endpoint.
type Team struct {
	ID           int    `db:"team_id" json:"team_id"`
	Name         string `db:"name" json:"name"`
	Abbreviation string `db:"abbreviation" json:"abbreviation"`
	Location     string `db:"location" json:"location"`
}
