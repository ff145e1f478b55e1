// Package stats contains statistics calculations and reporting.
package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mirova/fluxquiz/internal/model"
)

// Summary aggregates answered rounds for display.
type Summary struct {
	Rounds        int
	Correct       int
	AccuracyPct   float64
	AvgResponseMs float64
	StdResponseMs float64
	BestStreak    int
	CurrentStreak int
}

// Summarize computes totals, accuracy, response-time moments, and streaks.
func Summarize(rounds []model.RoundAggregate) Summary {
	if len(rounds) == 0 {
		return Summary{}
	}
	s := Summary{Rounds: len(rounds)}
	responses := make([]float64, 0, len(rounds))
	streak := 0
	for _, r := range rounds {
		if r.Correct {
			s.Correct++
			streak++
			if streak > s.BestStreak {
				s.BestStreak = streak
			}
		} else {
			streak = 0
		}
		responses = append(responses, float64(r.ResponseMs))
	}
	s.CurrentStreak = streak
	s.AccuracyPct = 100 * float64(s.Correct) / float64(s.Rounds)
	s.AvgResponseMs = stat.Mean(responses, nil)
	if len(responses) > 1 {
		s.StdResponseMs = stat.StdDev(responses, nil)
	}
	return s
}

// AccuracySeries maps each round to 100 (correct) or 0 (incorrect), in order.
func AccuracySeries(rounds []model.RoundAggregate) []float64 {
	out := make([]float64, len(rounds))
	for i, r := range rounds {
		if r.Correct {
			out[i] = 100
		}
	}
	return out
}

// ResponseSeries extracts per-round response times in milliseconds.
func ResponseSeries(rounds []model.RoundAggregate) []float64 {
	out := make([]float64, len(rounds))
	for i, r := range rounds {
		out[i] = float64(r.ResponseMs)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}
