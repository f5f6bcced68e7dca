package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/keyrush/internal/model"
)

func TestRoundMetrics(t *testing.T) {
	spm, acc := RoundMetrics(10, 3, 15)
	if spm != 40 {
		t.Fatalf("expected 40 spm, got %f", spm)
	}
	if math.Abs(acc-10.0/13.0) > 1e-9 {
		t.Fatalf("unexpected accuracy: %f", acc)
	}
	if spm, acc := RoundMetrics(5, 0, 0); spm != 0 || acc != 0 {
		t.Fatalf("expected zero metrics for zero duration, got %f %f", spm, acc)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No rounds played.") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	rounds := []model.RoundSummary{
		{DurationSeconds: 15, Correct: 10, Errors: 0, ScorePerMinute: 40},
		{DurationSeconds: 30, Correct: 30, Errors: 10, ScorePerMinute: 60},
	}
	if err := RenderSummary(&buf, rounds); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rounds: 2", "Avg SPM: 50.0", "Best SPM: 60", "Avg Accuracy: 87.50%", "Trend: [ @]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderLetterTableSortsByAccuracy(t *testing.T) {
	var buf bytes.Buffer
	aggs := []model.LetterAggregate{
		{Letter: "A", Correct: 9, Incorrect: 1},
		{Letter: "B", Correct: 1, Incorrect: 1, LatencySumMs: 500, LatencyCount: 1},
	}
	if err := RenderLetterTable(&buf, aggs); err != nil {
		t.Fatalf("render letters: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "B") || !strings.Contains(lines[2], "500.0") {
		t.Fatalf("expected B first, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "A") {
		t.Fatalf("expected A second, got %q", lines[3])
	}
}

func TestRenderRoundTable(t *testing.T) {
	var buf bytes.Buffer
	rounds := []model.RoundSummary{{DurationSeconds: 15, Correct: 10, Errors: 3, ScorePerMinute: 40}}
	if err := RenderRoundTable(&buf, rounds); err != nil {
		t.Fatalf("render rounds: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "1      15s      10      3  40" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestSelectWeakLetters(t *testing.T) {
	aggs := []model.LetterAggregate{
		{Letter: "A", Correct: 10, Incorrect: 0},
		{Letter: "B", Correct: 1, Incorrect: 1, LatencySumMs: 100, LatencyCount: 1},
		{Letter: "C", Correct: 1, Incorrect: 1, LatencySumMs: 900, LatencyCount: 1},
		{Letter: "D", Correct: 3, Incorrect: 1},
	}
	got := SelectWeakLetters(aggs, 2)
	if len(got) != 2 || got[0] != "C" || got[1] != "B" {
		t.Fatalf("unexpected weak letters: %v", got)
	}
	all := SelectWeakLetters(aggs, 0)
	if len(all) != 3 || all[2] != "D" {
		t.Fatalf("unexpected weak letters: %v", all)
	}
}
