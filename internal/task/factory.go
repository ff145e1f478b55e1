// Package task assembles multi-panel guessing rounds.
package task

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/mirova/fluxquiz/internal/model"
	"github.com/mirova/fluxquiz/internal/synth"
)

const (
	// DefaultOptionCount is the number of panels per task.
	DefaultOptionCount = 3
	// DefaultSeriesLength is the number of samples per panel.
	DefaultSeriesLength = 300

	// Per-option noise amplitude is drawn uniformly from [NoiseMin, NoiseMax)
	// so the noise level cannot leak which panel holds the transit.
	NoiseMin = 0.004
	NoiseMax = 0.008
)

// Factory builds tasks from an injected random source and ID provider.
type Factory struct {
	rng          *rand.Rand
	newID        func() string
	seriesLength int
	noiseMin     float64
	noiseMax     float64
}

// Option customizes a Factory.
type Option func(*Factory)

// WithIDProvider replaces the default UUID task IDs.
func WithIDProvider(newID func() string) Option {
	return func(f *Factory) { f.newID = newID }
}

// WithSeriesLength sets the per-panel sample count.
func WithSeriesLength(length int) Option {
	return func(f *Factory) { f.seriesLength = length }
}

// WithNoiseRange sets the half-open interval noise amplitudes are drawn from.
func WithNoiseRange(min, max float64) Option {
	return func(f *Factory) {
		f.noiseMin = min
		f.noiseMax = max
	}
}

// New returns a Factory drawing entropy from rng.
func New(rng *rand.Rand, opts ...Option) *Factory {
	f := &Factory{
		rng:          rng,
		newID:        uuid.NewString,
		seriesLength: DefaultSeriesLength,
		noiseMin:     NoiseMin,
		noiseMax:     NoiseMax,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateTask synthesizes optionCount panels with exactly one transit at a
// uniformly random position.
func (f *Factory) CreateTask(optionCount int) (model.Task, error) {
	if optionCount < 2 {
		return model.Task{}, fmt.Errorf("%w: option count must be >= 2, got %d", synth.ErrInvalidParams, optionCount)
	}

	correct := f.rng.Intn(optionCount)
	options := make([]model.Series, optionCount)
	for k := 0; k < optionCount; k++ {
		noise := f.noiseMin + f.rng.Float64()*(f.noiseMax-f.noiseMin)
		series, err := synth.Synthesize(model.SynthesisParams{
			Length:         f.seriesLength,
			NoiseAmplitude: noise,
			HasTransit:     k == correct,
		}, f.rng)
		if err != nil {
			return model.Task{}, fmt.Errorf("synthesize option %d: %w", k, err)
		}
		options[k] = series
	}

	return model.Task{
		ID:            f.newID(),
		Options:       options,
		CorrectOption: correct,
	}, nil
}
