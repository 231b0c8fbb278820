// Package model fits and evaluates the home-win probability model. A model
// instance is ephemeral: every evaluation fits a fresh one and discards it.
package model

import (
	"errors"
	"math"
)

const (
	logisticIters = 1000
	logisticLR    = 0.5
)

// Logistic is a binary logistic regression fit by gradient descent on the
// log-loss. Weights[0] is the intercept; Weights[1:] align with the feature
// columns.
type Logistic struct {
	Weights []float64
}

// FitLogistic trains on the given feature rows and 0/1 labels.
func FitLogistic(features [][]float64, labels []int) (*Logistic, error) {
	if len(features) == 0 || len(features) != len(labels) {
		return nil, errors.New("feature and label counts must match and be non-empty")
	}

	dim := len(features[0]) + 1 // intercept
	w := make([]float64, dim)
	n := float64(len(features))

	for iter := 0; iter < logisticIters; iter++ {
		for i, x := range features {
			p := sigmoid(dotWithIntercept(w, x))
			// gradient of -[y*log(p)+(1-y)*log(1-p)] is (p-y)*x
			err := p - float64(labels[i])
			w[0] -= logisticLR * err / n
			for k, xv := range x {
				w[k+1] -= logisticLR * err * xv / n
			}
		}
	}

	return &Logistic{Weights: w}, nil
}

// PredictProb returns the predicted probability of the positive class.
func (m *Logistic) PredictProb(x []float64) float64 {
	return sigmoid(dotWithIntercept(m.Weights, x))
}

func dotWithIntercept(w, x []float64) float64 {
	s := w[0]
	for i, xv := range x {
		s += w[i+1] * xv
	}
	return s
}

func sigmoid(z float64) float64 {
	if z > 20 {
		return 1.0
	}
	if z < -20 {
		return 0.0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}
