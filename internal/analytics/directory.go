package analytics

import (
	"context"
	"strconv"
	"sync"

	"github.com/yourusername/mlb-trends/internal/models"
)

// TeamLoader fetches the current team list, typically repository-backed.
type TeamLoader func(ctx context.Context) ([]*models.Team, error)

// TeamDirectory is a read-only id/abbreviation lookup passed explicitly to
// components that resolve team names. It is loaded once at startup and
// refreshed via Reload rather than by import-time side effects.
type TeamDirectory struct {
	mu       sync.RWMutex
	abbrByID map[int]string
	idByAbbr map[string]int
	teams    []*models.Team
}

// NewTeamDirectory builds a directory from a team list.
func NewTeamDirectory(teams []*models.Team) *TeamDirectory {
	d := &TeamDirectory{}
	d.replace(teams)
	return d
}

// Reload replaces the directory contents from the loader.
func (d *TeamDirectory) Reload(ctx context.Context, load TeamLoader) error {
	teams, err := load(ctx)
	if err != nil {
		return err
	}
	d.replace(teams)
	return nil
}

func (d *TeamDirectory) replace(teams []*models.Team) {
	abbrByID := make(map[int]string, len(teams))
	idByAbbr := make(map[string]int, len(teams))
	for _, t := range teams {
		abbrByID[t.ID] = t.Abbreviation
		idByAbbr[t.Abbreviation] = t.ID
	}

	d.mu.Lock()
	d.abbrByID = abbrByID
	d.idByAbbr = idByAbbr
	d.teams = teams
	d.mu.Unlock()
}

// Abbreviation resolves a team id, falling back to the numeric id when the
// team is unknown.
func (d *TeamDirectory) Abbreviation(teamID int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if abbr, ok := d.abbrByID[teamID]; ok {
		return abbr
	}
	return strconv.Itoa(teamID)
}

// ID resolves an abbreviation to a team id.
func (d *TeamDirectory) ID(abbr string) (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.idByAbbr[abbr]
	return id, ok
}

// Teams returns the directory's team list in load order.
func (d *TeamDirectory) Teams() []*models.Team {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.teams
}
