package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/keyrush/internal/model"
	"github.com/verte-zerg/keyrush/internal/store"
)

// Report contains precomputed data for the run summary.
type Report struct {
	Rounds     []model.RoundSummary
	LetterAggs []model.LetterAggregate
}

// BuildReport loads every round of the run and its per-letter aggregates.
func BuildReport(ctx context.Context, st *store.Store) (Report, error) {
	rounds, err := st.ListRounds(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(rounds) == 0 {
		return Report{}, nil
	}
	aggs, err := st.ListLetterAggregates(ctx, nil)
	if err != nil {
		return Report{}, err
	}
	return Report{Rounds: rounds, LetterAggs: aggs}, nil
}

// Render prints the summary, round table and letter table.
func (r Report) Render(w io.Writer) error {
	if err := RenderSummary(w, r.Rounds); err != nil {
		return err
	}
	if len(r.Rounds) == 0 {
		return nil
	}
	if err := RenderRoundTable(w, r.Rounds); err != nil {
		return err
	}
	return RenderLetterTable(w, r.LetterAggs)
}
