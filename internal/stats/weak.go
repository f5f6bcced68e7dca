package stats

import (
	"sort"

	"github.com/verte-zerg/keyrush/internal/model"
)

// SelectWeakLetters returns up to top letters with the lowest accuracy, ties
// broken by slower average latency and then alphabetically. Letters that were
// never missed are skipped.
func SelectWeakLetters(aggs []model.LetterAggregate, top int) []string {
	candidates := make([]model.LetterAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := accuracy(candidates[i]), accuracy(candidates[j])
		if ai != aj {
			return ai < aj
		}
		li, lj := avgLatency(candidates[i]), avgLatency(candidates[j])
		if li != lj {
			return li > lj
		}
		return candidates[i].Letter < candidates[j].Letter
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for _, c := range candidates[:top] {
		out = append(out, c.Letter)
	}
	return out
}

func accuracy(agg model.LetterAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

func avgLatency(agg model.LetterAggregate) float64 {
	if agg.LatencyCount == 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}
