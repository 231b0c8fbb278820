package statsapi

import (
	"errors"
	"fmt"
	"strings"
)

// Response types mirror the subset of the MLB Stats API actually consumed.
// Each payload is decoded into these structs and validated once at the
// boundary; malformed entries are rejected there, not downstream.

// TeamsResponse is the /teams payload
type TeamsResponse struct {
	Teams []APITeam `json:"teams"`
}

// APITeam is one franchise entry from /teams
type APITeam struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	LocationName string `json:"locationName"`
}

// Validate rejects a team entry missing its identity
func (t *APITeam) Validate() error {
	if t.ID == 0 {
		return errors.New("team entry missing id")
	}
	if t.Name == "" || t.Abbreviation == "" {
		return fmt.Errorf("team %d missing name or abbreviation", t.ID)
	}
	return nil
}

// RosterResponse is the /teams/{id}/roster payload
type RosterResponse struct {
	Roster []RosterEntry `json:"roster"`
}

// RosterEntry is one player on an active roster
type RosterEntry struct {
	Person   APIPerson   `json:"person"`
	Position APIPosition `json:"position"`
}

// APIPerson identifies a player
type APIPerson struct {
	ID        int    `json:"id"`
	FullName  string `json:"fullName"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD, only populated by /people
}

// APIPosition is a fielding position
type APIPosition struct {
	Abbreviation string `json:"abbreviation"`
}

// PeopleResponse is the /people payload used for birthdate enrichment
type PeopleResponse struct {
	People []APIPerson `json:"people"`
}

// ScheduleResponse is the /schedule payload
type ScheduleResponse struct {
	Dates []ScheduleDate `json:"dates"`
}

// ScheduleDate groups games under one calendar date
type ScheduleDate struct {
	Date  string         `json:"date"`
	Games []ScheduleGame `json:"games"`
}

// ScheduleGame is one scheduled or completed game
type ScheduleGame struct {
	GamePk   int64         `json:"gamePk"`
	GameDate string        `json:"gameDate"` // RFC3339; only the date part is kept
	Teams    ScheduleTeams `json:"teams"`
	Venue    APIVenue      `json:"venue"`
}

// ScheduleTeams holds both sides of a scheduled game
type ScheduleTeams struct {
	Home ScheduleSide `json:"home"`
	Away ScheduleSide `json:"away"`
}

// ScheduleSide is one side's team reference and score (nil until final)
type ScheduleSide struct {
	Team  APITeamRef `json:"team"`
	Score *int       `json:"score"`
}

// APITeamRef is a bare team id/name reference
type APITeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// APIVenue names a ballpark
type APIVenue struct {
	Name string `json:"name"`
}

// Validate rejects a schedule entry that cannot be stored
func (g *ScheduleGame) Validate() error {
	if g.GamePk == 0 {
		return errors.New("schedule game missing gamePk")
	}
	if g.Teams.Home.Team.ID == 0 || g.Teams.Away.Team.ID == 0 {
		return fmt.Errorf("game %d missing a team id", g.GamePk)
	}
	if len(g.GameDate) < 10 {
		return fmt.Errorf("game %d has malformed gameDate %q", g.GamePk, g.GameDate)
	}
	return nil
}

// GameDay returns the YYYY-MM-DD portion of the game timestamp
func (g *ScheduleGame) GameDay() string {
	return g.GameDate[:10]
}

// BoxscoreResponse is the /game/{pk}/boxscore payload
type BoxscoreResponse struct {
	Teams struct {
		Home BoxscoreSide `json:"home"`
		Away BoxscoreSide `json:"away"`
	} `json:"teams"`
}

// BoxscoreSide holds one team's player lines, keyed "ID<personId>"
type BoxscoreSide struct {
	Team    APITeamRef                `json:"team"`
	Players map[string]BoxscorePlayer `json:"players"`
}

// BoxscorePlayer is one player's box-score node
type BoxscorePlayer struct {
	Person APIPerson `json:"person"`
	Stats  struct {
		Batting  BattingStats  `json:"batting"`
		Pitching PitchingStats `json:"pitching"`
	} `json:"stats"`
	Note string `json:"note"`
}

// BattingStats is the batting portion of a box-score node
type BattingStats struct {
	AtBats      int `json:"atBats"`
	Hits        int `json:"hits"`
	Runs        int `json:"runs"`
	HomeRuns    int `json:"homeRuns"`
	RBI         int `json:"rbi"`
	BaseOnBalls int `json:"baseOnBalls"`
	StrikeOuts  int `json:"strikeOuts"`
}

// PitchingStats is the pitching portion of a box-score node
type PitchingStats struct {
	InningsPitched string `json:"inningsPitched"` // "5.2" notation
	Hits           int    `json:"hits"`
	Runs           int    `json:"runs"`
	EarnedRuns     int    `json:"earnedRuns"`
	HomeRuns       int    `json:"homeRuns"`
	BaseOnBalls    int    `json:"baseOnBalls"`
	StrikeOuts     int    `json:"strikeOuts"`
	BattersFaced   int    `json:"battersFaced"`
	PitchesThrown  int    `json:"pitchesThrown"`
	Strikes        int    `json:"strikes"`
	Note           string `json:"note"`
}

// OutsPitched converts "5.2"-style innings notation to outs
// ("5.0" -> 15, "5.1" -> 16, "5.2" -> 17).
func (p *PitchingStats) OutsPitched() int {
	if p.InningsPitched == "" {
		return 0
	}
	whole, frac, _ := strings.Cut(p.InningsPitched, ".")
	outs := 0
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0
		}
		outs = outs*10 + int(r-'0')
	}
	outs *= 3
	switch frac {
	case "1":
		outs++
	case "2":
		outs += 2
	}
	return outs
}
