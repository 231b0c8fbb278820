package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Client fetches MLB data from the Stats API. Box-score responses are cached
// for a short TTL so re-running a loader over an overlapping date range does
// not refetch finished games.
type Client struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	boxCache   *cache.Cache
	logger     *logrus.Entry
}

// Config holds client configuration
type Config struct {
	BaseURL  string
	HTTP     HTTPClientConfig
	CacheTTL time.Duration
	Logger   *logrus.Entry
}

// NewClient creates a new Stats API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://statsapi.mlb.com/api/v1"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return &Client{
		httpClient: NewRateLimitedHTTPClient(cfg.HTTP, cfg.Logger),
		baseURL:    cfg.BaseURL,
		boxCache:   cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		logger:     cfg.Logger,
	}
}

// Teams fetches all MLB franchises
func (c *Client) Teams(ctx context.Context) ([]APITeam, error) {
	var resp TeamsResponse
	if err := c.getJSON(ctx, "/teams", url.Values{"sportId": {"1"}}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	return resp.Teams, nil
}

// Roster fetches a team's active roster
func (c *Client) Roster(ctx context.Context, teamID int) ([]RosterEntry, error) {
	var resp RosterResponse
	path := fmt.Sprintf("/teams/%d/roster", teamID)
	if err := c.getJSON(ctx, path, url.Values{"rosterType": {"active"}}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch roster for team %d: %w", teamID, err)
	}
	return resp.Roster, nil
}

// Person fetches one player's bio record, or nil when the API has none
func (c *Client) Person(ctx context.Context, personID int) (*APIPerson, error) {
	var resp PeopleResponse
	if err := c.getJSON(ctx, "/people", url.Values{"personIds": {fmt.Sprint(personID)}}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch person %d: %w", personID, err)
	}
	if len(resp.People) == 0 {
		return nil, nil
	}
	return &resp.People[0], nil
}

// Schedule fetches the MLB schedule for an inclusive date range
func (c *Client) Schedule(ctx context.Context, start, end time.Time) ([]ScheduleGame, error) {
	params := url.Values{
		"sportId":   {"1"},
		"startDate": {start.Format("2006-01-02")},
		"endDate":   {end.Format("2006-01-02")},
	}

	var resp ScheduleResponse
	if err := c.getJSON(ctx, "/schedule", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	var games []ScheduleGame
	for _, d := range resp.Dates {
		games = append(games, d.Games...)
	}
	return games, nil
}

// Boxscore fetches the box score for one game, serving repeats from cache
func (c *Client) Boxscore(ctx context.Context, gamePk int64) (*BoxscoreResponse, error) {
	key := fmt.Sprint(gamePk)
	if cached, found := c.boxCache.Get(key); found {
		if box, ok := cached.(*BoxscoreResponse); ok {
			return box, nil
		}
	}

	var resp BoxscoreResponse
	path := fmt.Sprintf("/game/%d/boxscore", gamePk)
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch boxscore for game %d: %w", gamePk, err)
	}

	c.boxCache.Set(key, &resp, cache.DefaultExpiration)
	return &resp, nil
}

// Close releases client resources
func (c *Client) Close() error {
	return c.httpClient.Close()
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
