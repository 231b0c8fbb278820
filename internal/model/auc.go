package model

// RankAUC computes the area under the ROC curve: the probability that a
// randomly chosen positive is scored above a randomly chosen negative, with
// ties counting half. The second return value is false when the labels hold
// only one class, in which case the score is undefined.
func RankAUC(scores []float64, labels []int) (float64, bool) {
	var pos, neg int
	for _, y := range labels {
		if y == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0, false
	}

	// Pairwise scan. Evaluation partitions are small (20% of a few hundred
	// rows), so clarity beats a sort-based formulation here.
	var ranked float64
	for i, si := range scores {
		if labels[i] != 1 {
			continue
		}
		for j, sj := range scores {
			if labels[j] == 1 {
				continue
			}
			switch {
			case si > sj:
				ranked += 1
			case si == sj:
				ranked += 0.5
			}
		}
	}

	return ranked / float64(pos*neg), true
}
