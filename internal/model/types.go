// Package model defines shared data structures.
package model

import "time"

// Sample is one brightness measurement at a discrete time step.
// Value is normalized flux, centered near 1.0.
type Sample struct {
	Index int
	Value float64
}

// Series is an ordered sequence of samples with contiguous indices 0..N-1.
type Series []Sample

// Values extracts the flux values in index order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, sample := range s {
		out[i] = sample.Value
	}
	return out
}

// SynthesisParams controls light-curve generation. Immutable once passed
// to the synthesizer.
type SynthesisParams struct {
	Length         int
	NoiseAmplitude float64
	HasTransit     bool
}

// Task is one multi-panel guessing round. Exactly one option contains a
// transit and CorrectOption points to it.
type Task struct {
	ID            string
	Options       []Series
	CorrectOption int
}

// SessionStats accumulates answers within one process-local session.
type SessionStats struct {
	TotalAnswered int
	TotalCorrect  int
}

// Config defines quiz settings.
type Config struct {
	Panels       int
	SeriesLength int
	NoiseMin     float64
	NoiseMax     float64
	Seed         int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// RoundRecord captures one answered task for persistence.
type RoundRecord struct {
	TaskID        string
	AnsweredAt    time.Time
	OptionCount   int
	SeriesLength  int
	Selected      int
	CorrectOption int
	Correct       bool
	ResponseMs    int64
}

// RoundAggregate summarizes a stored round for reporting.
type RoundAggregate struct {
	RoundID    int64
	AnsweredAt time.Time
	Selected   int
	Correct    bool
	ResponseMs int64
}
