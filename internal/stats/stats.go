// Package stats contains round statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/keyrush/internal/model"
)

const sparkChars = " .:-=+*#%@"

// RoundMetrics computes the per-minute rate and accuracy for a round.
func RoundMetrics(correct, errors, durationSeconds int) (spm, accuracy float64) {
	if durationSeconds <= 0 {
		return 0, 0
	}
	spm = float64(correct) / (float64(durationSeconds) / 60.0)
	den := float64(correct + errors)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return spm, accuracy
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary of the rounds played.
func RenderSummary(w io.Writer, rounds []model.RoundSummary) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds played.")
		return err
	}
	var totalSPM, totalAcc float64
	best := 0
	scores := make([]float64, len(rounds))
	for i, r := range rounds {
		_, acc := RoundMetrics(r.Correct, r.Errors, r.DurationSeconds)
		totalSPM += float64(r.ScorePerMinute)
		totalAcc += acc
		best = max(best, r.ScorePerMinute)
		scores[i] = float64(r.ScorePerMinute)
	}
	count := float64(len(rounds))
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", len(rounds)),
		fmt.Sprintf("Avg SPM: %.1f", totalSPM/count),
		fmt.Sprintf("Best SPM: %d", best),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
	}
	if len(rounds) > 1 {
		lines = append(lines, fmt.Sprintf("Trend: [%s]", Sparkline(scores)))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRoundTable prints one row per round.
func RenderRoundTable(w io.Writer, rounds []model.RoundSummary) error {
	if len(rounds) == 0 {
		return nil
	}
	return writeTable(w, roundColumns, RoundRows(rounds))
}

// RoundRows formats rounds as table cells, numbered from 1.
func RoundRows(rounds []model.RoundSummary) [][]string {
	rows := make([][]string, 0, len(rounds))
	for i, r := range rounds {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%ds", r.DurationSeconds),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Errors),
			fmt.Sprintf("%d", r.ScorePerMinute),
		})
	}
	return rows
}

// RenderLetterTable prints per-letter aggregates, least accurate first.
func RenderLetterTable(w io.Writer, aggs []model.LetterAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No letter stats found.")
		return err
	}
	type row struct {
		letter    string
		acc       float64
		latency   float64
		correct   int
		incorrect int
	}
	rows := make([]row, 0, len(aggs))
	for _, agg := range aggs {
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, row{
			letter:    agg.Letter,
			acc:       accuracy(agg),
			latency:   lat,
			correct:   agg.Correct,
			incorrect: agg.Incorrect,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].letter < rows[j].letter
		}
		return rows[i].acc < rows[j].acc
	})

	if _, err := fmt.Fprintln(w, "Per-Letter"); err != nil {
		return err
	}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.letter,
			fmt.Sprintf("%.2f%%", r.acc*100),
			fmt.Sprintf("%.1f", r.latency),
			fmt.Sprintf("%d", r.correct),
			fmt.Sprintf("%d", r.incorrect),
		})
	}
	return writeTable(w, letterColumns, tableRows)
}
