package model

import (
	"time"

	"github.com/yourusername/mlb-trends/internal/analytics"
	"github.com/yourusername/mlb-trends/internal/models"
)

// MinRows is the smallest dataset the estimator will train on after range
// filtering; below it the evaluation reports insufficient data.
const MinRows = 50

// TrainFraction of the chronologically sorted rows form the training
// partition; the remainder is held out for evaluation.
const TrainFraction = 0.8

// Feature names in column order, exposed alongside the fitted coefficients.
var featureNames = []string{"r10_diff", "is_home"}

// Coefficient pairs a feature with its fitted weight.
type Coefficient struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"coef"`
}

// PredictionRow is one held-out game with its predicted probability.
type PredictionRow struct {
	GameID        int64     `json:"game_id"`
	Date          time.Time `json:"date"`
	HomeTeamID    int       `json:"home_team_id"`
	AwayTeamID    int       `json:"away_team_id"`
	HomeScore     int       `json:"home_score"`
	AwayScore     int       `json:"away_score"`
	HomeForm      float64   `json:"home_r10"`
	AwayForm      float64   `json:"away_r10"`
	PredictedProb float64   `json:"pred_home_win"`
	HomeWin       int       `json:"home_win"`
}

// Evaluation is the ephemeral result of one fit/score pass. When
// Insufficient is set no model was fit and the remaining fields are zero.
// AUCValid distinguishes a computed score from an undefined one (single-class
// evaluation partition).
type Evaluation struct {
	Insufficient bool            `json:"insufficient"`
	TotalRows    int             `json:"total_rows"`
	TrainRows    int             `json:"train_rows"`
	TestRows     int             `json:"test_rows"`
	Coefficients []Coefficient   `json:"coefficients,omitempty"`
	Intercept    float64         `json:"intercept"`
	AUC          float64         `json:"auc"`
	AUCValid     bool            `json:"auc_valid"`
	Predictions  []PredictionRow `json:"predictions,omitempty"`
}

// Evaluate filters the dataset to [start, end], splits it chronologically
// 80/20, fits a fresh logistic model on the training partition and scores the
// held-out rows. Fewer than MinRows after filtering yields an Insufficient
// result, not an error. Calls share no state; every invocation fits anew.
func Evaluate(dataset []analytics.HomeWinRow, start, end time.Time) (*Evaluation, error) {
	if start.After(end) {
		return nil, models.ErrInvalidDateRange
	}

	var rows []analytics.HomeWinRow
	for _, r := range dataset {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		rows = append(rows, r)
	}

	if len(rows) < MinRows {
		return &Evaluation{Insufficient: true, TotalRows: len(rows)}, nil
	}

	// The dataset builder emits date-ascending rows; the split index cuts the
	// timeline so training strictly precedes evaluation.
	splitIdx := int(float64(len(rows)) * TrainFraction)

	features := make([][]float64, len(rows))
	labels := make([]int, len(rows))
	for i, r := range rows {
		features[i] = []float64{r.FormDiff, float64(r.IsHome)}
		labels[i] = r.HomeWin
	}

	fitted, err := FitLogistic(features[:splitIdx], labels[:splitIdx])
	if err != nil {
		return nil, err
	}

	testRows := rows[splitIdx:]
	scores := make([]float64, len(testRows))
	predictions := make([]PredictionRow, len(testRows))
	for i, r := range testRows {
		prob := fitted.PredictProb(features[splitIdx+i])
		scores[i] = prob
		predictions[i] = PredictionRow{
			GameID:        r.GameID,
			Date:          r.Date,
			HomeTeamID:    r.HomeTeamID,
			AwayTeamID:    r.AwayTeamID,
			HomeScore:     r.HomeScore,
			AwayScore:     r.AwayScore,
			HomeForm:      r.HomeForm,
			AwayForm:      r.AwayForm,
			PredictedProb: prob,
			HomeWin:       r.HomeWin,
		}
	}

	auc, aucValid := RankAUC(scores, labels[splitIdx:])

	eval := &Evaluation{
		TotalRows: len(rows),
		TrainRows: splitIdx,
		TestRows:  len(testRows),
		Intercept: fitted.Weights[0],
		Coefficients: []Coefficient{
			{Feature: featureNames[0], Value: fitted.Weights[1]},
			{Feature: featureNames[1], Value: fitted.Weights[2]},
		},
		AUC:         auc,
		AUCValid:    aucValid,
		Predictions: predictions,
	}
	return eval, nil
}

// Recent returns the last n prediction rows, or all of them when fewer exist.
func (e *Evaluation) Recent(n int) []PredictionRow {
	if n <= 0 || len(e.Predictions) <= n {
		return e.Predictions
	}
	return e.Predictions[len(e.Predictions)-n:]
}
