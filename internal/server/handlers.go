package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/yourusername/mlb-trends/internal/analytics"
	"github.com/yourusername/mlb-trends/internal/metrics"
	"github.com/yourusername/mlb-trends/internal/model"
	"github.com/yourusername/mlb-trends/internal/models"
)

const dateLayout = "2006-01-02"

// TeamSummary is one entry of the team directory response.
type TeamSummary struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Location     string `json:"location,omitempty"`
}

// TrendPoint is one dated rolling-form observation for a team.
type TrendPoint struct {
	GameID        int64    `json:"game_id"`
	Date          string   `json:"date"`
	Opponent      string   `json:"opponent"`
	IsHome        int      `json:"is_home"`
	Win           int      `json:"win"`
	RollingWinPct *float64 `json:"rolling_win_pct"`
}

// TrendResponse is the body for GET /api/trend.
type TrendResponse struct {
	TeamID       int          `json:"team_id"`
	Abbreviation string       `json:"abbreviation"`
	Window       int          `json:"window"`
	Start        string       `json:"start"`
	End          string       `json:"end"`
	Points       []TrendPoint `json:"points"`
}

// RunDiffPoint is one dated run differential observation for a team.
type RunDiffPoint struct {
	GameID      int64  `json:"game_id"`
	Date        string `json:"date"`
	Opponent    string `json:"opponent"`
	IsHome      int    `json:"is_home"`
	RunsFor     int    `json:"runs_for"`
	RunsAgainst int    `json:"runs_against"`
	RunDiff     int    `json:"run_diff"`
	Win         int    `json:"win"`
}

// RunDiffResponse is the body for GET /api/rundiff.
type RunDiffResponse struct {
	TeamID       int            `json:"team_id"`
	Abbreviation string         `json:"abbreviation"`
	Start        string         `json:"start"`
	End          string         `json:"end"`
	Points       []RunDiffPoint `json:"points"`
}

// ModelPrediction is one evaluated test-set game with team labels resolved.
type ModelPrediction struct {
	GameID        int64   `json:"game_id"`
	Date          string  `json:"date"`
	Home          string  `json:"home"`
	Away          string  `json:"away"`
	HomeScore     int     `json:"home_score"`
	AwayScore     int     `json:"away_score"`
	HomeForm      float64 `json:"home_r10"`
	AwayForm      float64 `json:"away_r10"`
	PredictedProb float64 `json:"pred_home_win"`
	HomeWin       int     `json:"home_win"`
}

// ModelResponse is the body for GET /api/model.
type ModelResponse struct {
	Insufficient bool                `json:"insufficient"`
	Message      string              `json:"message,omitempty"`
	TotalRows    int                 `json:"total_rows"`
	TrainRows    int                 `json:"train_rows"`
	TestRows     int                 `json:"test_rows"`
	Coefficients []model.Coefficient `json:"coefficients,omitempty"`
	Intercept    float64             `json:"intercept"`
	AUC          *float64            `json:"auc"`
	Start        string              `json:"start"`
	End          string              `json:"end"`
	Recent       []ModelPrediction   `json:"recent,omitempty"`
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.Reload(r.Context(), s.repos.Teams.List); err != nil {
		s.logger.WithError(err).Error("Failed to reload team directory")
		writeError(w, http.StatusInternalServerError, "failed to load teams")
		return
	}

	teams := s.directory.Teams()
	out := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamSummary{
			ID:           t.ID,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			Location:     t.Location,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	teamID, err := s.parseTeam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	window := s.cfg.Dashboard.DefaultWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		window, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "window must be an integer")
			return
		}
	}
	if window < 5 || window > 30 {
		writeError(w, http.StatusBadRequest, "window must be between 5 and 30")
		return
	}

	start, end, err := s.parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	games, err := s.repos.Games.ListCompleted(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list completed games")
		writeError(w, http.StatusInternalServerError, "failed to load games")
		return
	}

	points, err := analytics.TeamRollingForm(analytics.Flatten(games), teamID, window, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := TrendResponse{
		TeamID:       teamID,
		Abbreviation: s.directory.Abbreviation(teamID),
		Window:       window,
		Start:        start.Format(dateLayout),
		End:          end.Format(dateLayout),
		Points:       []TrendPoint{},
	}
	for _, p := range points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		tp := TrendPoint{
			GameID:   p.GameID,
			Date:     p.Date.Format(dateLayout),
			Opponent: s.directory.Abbreviation(p.OpponentID),
			IsHome:   p.IsHome,
			Win:      p.Win,
		}
		if p.HasForm {
			v := p.RollingWinPct
			tp.RollingWinPct = &v
		}
		resp.Points = append(resp.Points, tp)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRunDiff(w http.ResponseWriter, r *http.Request) {
	teamID, err := s.parseTeam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, end, err := s.parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	games, err := s.repos.Games.ListCompleted(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list completed games")
		writeError(w, http.StatusInternalServerError, "failed to load games")
		return
	}

	resp := RunDiffResponse{
		TeamID:       teamID,
		Abbreviation: s.directory.Abbreviation(teamID),
		Start:        start.Format(dateLayout),
		End:          end.Format(dateLayout),
		Points:       []RunDiffPoint{},
	}
	for _, row := range analytics.Flatten(games) {
		if row.TeamID != teamID || row.Date.Before(start) || row.Date.After(end) {
			continue
		}
		resp.Points = append(resp.Points, RunDiffPoint{
			GameID:      row.GameID,
			Date:        row.Date.Format(dateLayout),
			Opponent:    s.directory.Abbreviation(row.OpponentID),
			IsHome:      row.IsHome,
			RunsFor:     row.RunsFor,
			RunsAgainst: row.RunsAgainst,
			RunDiff:     row.RunDiff(),
			Win:         row.Win,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	start, end, err := s.parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	games, err := s.repos.Games.ListCompleted(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list completed games")
		writeError(w, http.StatusInternalServerError, "failed to load games")
		return
	}
	metrics.StoredGames.Set(float64(len(games)))

	timer := time.Now()
	dataset := analytics.BuildHomeWinDataset(games, analytics.Flatten(games))
	eval, err := model.Evaluate(dataset, start, end)
	metrics.EvaluationDuration.Observe(time.Since(timer).Seconds())
	if err != nil {
		if errors.Is(err, models.ErrInvalidDateRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("Model evaluation failed")
		writeError(w, http.StatusInternalServerError, "model evaluation failed")
		return
	}
	metrics.ModelEvaluationsTotal.Inc()

	resp := ModelResponse{
		Insufficient: eval.Insufficient,
		TotalRows:    eval.TotalRows,
		TrainRows:    eval.TrainRows,
		TestRows:     eval.TestRows,
		Coefficients: eval.Coefficients,
		Intercept:    eval.Intercept,
		Start:        start.Format(dateLayout),
		End:          end.Format(dateLayout),
	}
	if eval.Insufficient {
		metrics.InsufficientDataTotal.Inc()
		resp.Message = fmt.Sprintf("not enough completed games in range to train a model (need %d, have %d)", model.MinRows, eval.TotalRows)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if eval.AUCValid {
		auc := eval.AUC
		resp.AUC = &auc
	}
	for _, p := range eval.Recent(s.cfg.Dashboard.RecentEvalRows) {
		resp.Recent = append(resp.Recent, ModelPrediction{
			GameID:        p.GameID,
			Date:          p.Date.Format(dateLayout),
			Home:          s.directory.Abbreviation(p.HomeTeamID),
			Away:          s.directory.Abbreviation(p.AwayTeamID),
			HomeScore:     p.HomeScore,
			AwayScore:     p.AwayScore,
			HomeForm:      p.HomeForm,
			AwayForm:      p.AwayForm,
			PredictedProb: p.PredictedProb,
			HomeWin:       p.HomeWin,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	start, end, err := s.parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = "batting"
	}

	switch category {
	case "batting":
		leaders, err := s.leaderboard.Batting(r.Context(), start, end, limit)
		if err != nil {
			s.logger.WithError(err).Error("Failed to build batting leaderboard")
			writeError(w, http.StatusInternalServerError, "failed to build leaderboard")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"category": category,
			"start":    start.Format(dateLayout),
			"end":      end.Format(dateLayout),
			"leaders":  leaders,
		})
	case "pitching":
		leaders, err := s.leaderboard.Pitching(r.Context(), start, end, limit)
		if err != nil {
			s.logger.WithError(err).Error("Failed to build pitching leaderboard")
			writeError(w, http.StatusInternalServerError, "failed to build leaderboard")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"category": category,
			"start":    start.Format(dateLayout),
			"end":      end.Format(dateLayout),
			"leaders":  leaders,
		})
	default:
		writeError(w, http.StatusBadRequest, "category must be batting or pitching")
	}
}

// parseTeam resolves the team query parameter, accepting either a numeric id
// or an abbreviation known to the directory.
func (s *Server) parseTeam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("team")
	if raw == "" {
		return 0, fmt.Errorf("team parameter is required")
	}
	if id, err := strconv.Atoi(raw); err == nil {
		return id, nil
	}
	if id, ok := s.directory.ID(raw); ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown team %q", raw)
}

// parseDateRange reads start/end query parameters. When absent, the range
// defaults to the configured lookback ending at the latest stored game date,
// or today when the store is empty.
func (s *Server) parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	var start, end time.Time

	if raw := q.Get("end"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return start, end, fmt.Errorf("end must be formatted as YYYY-MM-DD")
		}
		end = t
	} else {
		latest, err := s.repos.Games.LatestDate(r.Context())
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				return start, end, fmt.Errorf("failed to resolve default date range")
			}
			latest = time.Now().UTC().Truncate(24 * time.Hour)
		}
		end = latest
	}

	if raw := q.Get("start"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return start, end, fmt.Errorf("start must be formatted as YYYY-MM-DD")
		}
		start = t
	} else {
		start = end.AddDate(0, 0, -s.cfg.Dashboard.LookbackDays)
	}

	if start.After(end) {
		return start, end, fmt.Errorf("start must not be after end")
	}
	return start, end, nil
}
