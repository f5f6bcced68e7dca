package store

import (
	"context"
	"testing"
	"time"

	"github.com/verte-zerg/keyrush/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListRounds(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
		round := model.RoundSummary{
			StartedAt:       start,
			EndedAt:         start.Add(15 * time.Second),
			DurationSeconds: 15,
			Correct:         10 + i,
			Errors:          i,
			ScorePerMinute:  (10 + i) * 4,
		}
		letters := []model.LetterStats{
			{Letter: "A", Correct: 3, Incorrect: 1, LatencySumMs: 900, LatencyCount: 3},
			{Letter: "B", Correct: 2, Incorrect: 0, LatencySumMs: 400, LatencyCount: 2},
		}
		id, err := st.InsertRound(ctx, round, letters)
		if err != nil {
			t.Fatalf("insert round: %v", err)
		}
		ids = append(ids, id)
	}

	rounds, err := st.ListRounds(ctx)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	for i, r := range rounds {
		if r.ID != ids[i] {
			t.Fatalf("round %d: unexpected id %d", i, r.ID)
		}
		if r.Correct != 10+i || r.ScorePerMinute != (10+i)*4 {
			t.Fatalf("round %d: unexpected values %+v", i, r)
		}
		if !r.EndedAt.Equal(r.StartedAt.Add(15 * time.Second)) {
			t.Fatalf("round %d: unexpected times %+v", i, r)
		}
	}

	aggs, err := st.ListLetterAggregates(ctx, nil)
	if err != nil {
		t.Fatalf("list aggregates: %v", err)
	}
	if len(aggs) != 2 || aggs[0].Letter != "A" {
		t.Fatalf("unexpected aggregates: %+v", aggs)
	}
	if aggs[0].Correct != 9 || aggs[0].Incorrect != 3 || aggs[0].LatencyCount != 9 {
		t.Fatalf("unexpected A aggregate: %+v", aggs[0])
	}

	windowed, err := st.ListLetterAggregates(ctx, ids[2:])
	if err != nil {
		t.Fatalf("list windowed aggregates: %v", err)
	}
	if len(windowed) != 2 || windowed[1].Correct != 2 {
		t.Fatalf("unexpected windowed aggregates: %+v", windowed)
	}
}

func TestOpenStartsEmpty(t *testing.T) {
	st := openTestStore(t)
	rounds, err := st.ListRounds(context.Background())
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 0 {
		t.Fatalf("expected no rounds, got %d", len(rounds))
	}
}

func TestInsertRoundWithoutLetters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.InsertRound(ctx, model.RoundSummary{DurationSeconds: 60}, nil); err != nil {
		t.Fatalf("insert round: %v", err)
	}
	aggs, err := st.ListLetterAggregates(ctx, nil)
	if err != nil {
		t.Fatalf("list aggregates: %v", err)
	}
	if len(aggs) != 0 {
		t.Fatalf("expected no aggregates, got %+v", aggs)
	}
}

func TestListRoundsKeepsInsertOrderAcrossOffsets(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	// Local clocks fall back one hour between the two rounds.
	cest := time.FixedZone("CEST", 2*60*60)
	cet := time.FixedZone("CET", 1*60*60)
	ends := []time.Time{
		time.Date(2024, 10, 27, 2, 50, 0, 0, cest),
		time.Date(2024, 10, 27, 2, 10, 0, 0, cet),
	}
	for i, end := range ends {
		round := model.RoundSummary{
			StartedAt:       end.Add(-15 * time.Second),
			EndedAt:         end,
			DurationSeconds: 15,
			Correct:         i + 1,
			ScorePerMinute:  (i + 1) * 4,
		}
		if _, err := st.InsertRound(ctx, round, nil); err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}

	rounds, err := st.ListRounds(ctx)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	for i, r := range rounds {
		if r.Correct != i+1 {
			t.Fatalf("round %d: expected correct %d, got %d", i, i+1, r.Correct)
		}
		if !r.EndedAt.Equal(ends[i]) {
			t.Fatalf("round %d: expected end %s, got %s", i, ends[i], r.EndedAt)
		}
	}
}
