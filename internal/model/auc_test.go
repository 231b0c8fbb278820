package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankAUCPerfectRanking(t *testing.T) {
	scores := []float64{0.9, 0.8, 0.2, 0.1}
	labels := []int{1, 1, 0, 0}

	auc, ok := RankAUC(scores, labels)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, auc, 1e-12)
}

func TestRankAUCInvertedRanking(t *testing.T) {
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	labels := []int{1, 1, 0, 0}

	auc, ok := RankAUC(scores, labels)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, auc, 1e-12)
}

func TestRankAUCTiesCountHalf(t *testing.T) {
	scores := []float64{0.5, 0.5}
	labels := []int{1, 0}

	auc, ok := RankAUC(scores, labels)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, auc, 1e-12)
}

func TestRankAUCSingleClassUndefined(t *testing.T) {
	auc, ok := RankAUC([]float64{0.9, 0.8, 0.7}, []int{1, 1, 1})
	assert.False(t, ok, "all-positive labels leave the score undefined")
	assert.Zero(t, auc)

	_, ok = RankAUC([]float64{0.1, 0.2}, []int{0, 0})
	assert.False(t, ok, "all-negative labels leave the score undefined")
}

func TestRankAUCMixedRanking(t *testing.T) {
	// One of the two positives is outranked by the negative: 1 of 2 pairs.
	scores := []float64{0.9, 0.3, 0.5}
	labels := []int{1, 1, 0}

	auc, ok := RankAUC(scores, labels)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, auc, 1e-12)
}
