package stats

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/keyrush/internal/model"
	"github.com/verte-zerg/keyrush/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	empty, err := BuildReport(ctx, st)
	if err != nil {
		t.Fatalf("build empty report: %v", err)
	}
	if len(empty.Rounds) != 0 || len(empty.LetterAggs) != 0 {
		t.Fatalf("expected empty report, got %+v", empty)
	}

	for i := 0; i < 2; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		round := model.RoundSummary{
			StartedAt:       start,
			EndedAt:         start.Add(15 * time.Second),
			DurationSeconds: 15,
			Correct:         10,
			Errors:          1,
			ScorePerMinute:  40,
		}
		letters := []model.LetterStats{
			{Letter: "K", Correct: 5, Incorrect: 0},
			{Letter: "J", Correct: 5, Incorrect: 1},
		}
		if _, err := st.InsertRound(ctx, round, letters); err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}

	report, err := BuildReport(ctx, st)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(report.Rounds))
	}
	if len(report.LetterAggs) != 2 {
		t.Fatalf("expected 2 letter aggregates, got %d", len(report.LetterAggs))
	}

	var buf bytes.Buffer
	if err := report.Render(&buf); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rounds: 2", "Per-Letter", "Duration"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
