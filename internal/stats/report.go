// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/mirova/fluxquiz/internal/model"
	"github.com/mirova/fluxquiz/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Rounds  []model.RoundAggregate
	Summary Summary
	Totals  model.SessionStats
}

// BuildReport loads and prepares round history for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	rounds, err := st.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	totals, err := st.Totals(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Rounds:  rounds,
		Summary: Summarize(rounds),
		Totals:  totals,
	}, nil
}
