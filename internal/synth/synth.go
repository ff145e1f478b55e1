// Package synth fabricates normalized stellar light curves.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/mirova/fluxquiz/internal/model"
)

// ErrInvalidParams reports synthesis parameters outside their valid range.
var ErrInvalidParams = errors.New("invalid parameters")

const (
	// TransitDepth is the flux drop at the center of an injected transit.
	TransitDepth = 0.02
	// trendAmplitude scales the sinusoidal baseline drift.
	trendAmplitude = 0.002

	transitStartFrac = 0.45
	transitEndFrac   = 0.55
	valuePrecision   = 1e5
)

// Trend returns the baseline drift at index i for a series of the given length.
func Trend(i, length int) float64 {
	return trendAmplitude * math.Sin(2*math.Pi*float64(i)/float64(length))
}

// TransitWindow returns the inclusive index range [t0, t1] that holds the
// injected dip for a series of the given length.
func TransitWindow(length int) (t0, t1 int) {
	t0 = int(math.Floor(transitStartFrac * float64(length)))
	t1 = int(math.Floor(transitEndFrac * float64(length)))
	return t0, t1
}

// Synthesize produces one light curve from params, drawing entropy only from
// rng. Values are rounded to 5 decimal digits.
func Synthesize(params model.SynthesisParams, rng *rand.Rand) (model.Series, error) {
	if params.Length <= 0 {
		return nil, fmt.Errorf("%w: length must be > 0, got %d", ErrInvalidParams, params.Length)
	}
	if params.NoiseAmplitude < 0 {
		return nil, fmt.Errorf("%w: noise amplitude must be >= 0, got %g", ErrInvalidParams, params.NoiseAmplitude)
	}

	t0, t1 := TransitWindow(params.Length)
	series := make(model.Series, params.Length)
	for i := 0; i < params.Length; i++ {
		value := 1.0 + Trend(i, params.Length)
		value += (rng.Float64()*2 - 1) * params.NoiseAmplitude
		if params.HasTransit && i >= t0 && i <= t1 {
			value -= TransitDepth * (0.75 + 0.25*dipShape(i, t0, t1))
		}
		series[i] = model.Sample{
			Index: i,
			Value: math.Round(value*valuePrecision) / valuePrecision,
		}
	}
	return series, nil
}

// dipShape eases the dip from 0 at the window edges toward 1 at the center,
// so ingress and egress are smooth rather than a step.
func dipShape(i, t0, t1 int) float64 {
	if t1 == t0 {
		// Degenerate single-sample window: full depth.
		return 1
	}
	edge := float64(minInt(i-t0, t1-i)) / float64(t1-t0)
	ramp := math.Min(1, edge*2)
	return 1 - (1-ramp)*(1-ramp)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
