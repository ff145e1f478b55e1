package synth

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/mirova/fluxquiz/internal/model"
)

func TestSynthesizeRejectsInvalidParams(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []struct {
		name   string
		params model.SynthesisParams
	}{
		{name: "zero length", params: model.SynthesisParams{Length: 0}},
		{name: "negative length", params: model.SynthesisParams{Length: -5}},
		{name: "negative noise", params: model.SynthesisParams{Length: 100, NoiseAmplitude: -0.001}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			series, err := Synthesize(tc.params, rng)
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
			if series != nil {
				t.Fatalf("expected no partial series, got %d samples", len(series))
			}
		})
	}
}

func TestSynthesizeIndicesContiguous(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	series, err := Synthesize(model.SynthesisParams{Length: 300, NoiseAmplitude: 0.006}, rng)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if len(series) != 300 {
		t.Fatalf("expected 300 samples, got %d", len(series))
	}
	for i, sample := range series {
		if sample.Index != i {
			t.Fatalf("sample %d has index %d", i, sample.Index)
		}
	}
}

func TestSynthesizeNoTransitStaysNearBaseline(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const noise = 0.008
	for trial := 0; trial < 20; trial++ {
		series, err := Synthesize(model.SynthesisParams{Length: 300, NoiseAmplitude: noise}, rng)
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		// Rounding to 5 digits can push a value at most 5e-6 past the
		// analytic envelope.
		bound := 0.002 + noise + 5e-6
		for _, sample := range series {
			if math.Abs(sample.Value-1) > bound {
				t.Fatalf("sample %d deviates %g from baseline, bound %g", sample.Index, math.Abs(sample.Value-1), bound)
			}
		}
	}
}

func TestSynthesizeTransitDipsInsideWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	t0, t1 := TransitWindow(300)
	hits := 0
	const trials = 50
	for trial := 0; trial < trials; trial++ {
		series, err := Synthesize(model.SynthesisParams{Length: 300, NoiseAmplitude: 0.006, HasTransit: true}, rng)
		if err != nil {
			t.Fatalf("synthesize: %v", err)
		}
		minInside := math.Inf(1)
		minOutside := math.Inf(1)
		for _, sample := range series {
			if sample.Index >= t0 && sample.Index <= t1 {
				if sample.Value < minInside {
					minInside = sample.Value
				}
			} else if sample.Value < minOutside {
				minOutside = sample.Value
			}
		}
		if minInside < minOutside {
			hits++
		}
	}
	// A 2% dip against 0.6% noise should essentially always win; allow a
	// small slack to keep the statistical property non-flaky.
	if hits < trials-1 {
		t.Fatalf("dip minimum inside window on only %d/%d trials", hits, trials)
	}
}

func TestSynthesizeNoiseFreeTransitScenario(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	series, err := Synthesize(model.SynthesisParams{Length: 10, NoiseAmplitude: 0, HasTransit: true}, rng)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	t0, t1 := TransitWindow(10)
	if t0 != 4 || t1 != 5 {
		t.Fatalf("expected window [4,5], got [%d,%d]", t0, t1)
	}
	for _, sample := range series {
		want := 1 + Trend(sample.Index, 10)
		want = math.Round(want*1e5) / 1e5
		if sample.Index >= t0 && sample.Index <= t1 {
			if sample.Value >= 1 {
				t.Fatalf("sample %d inside window not dipped: %g", sample.Index, sample.Value)
			}
			// Window edges carry 75% of the full depth.
			dipped := math.Round((1+Trend(sample.Index, 10)-0.015)*1e5) / 1e5
			if sample.Value != dipped {
				t.Fatalf("sample %d = %g, want %g", sample.Index, sample.Value, dipped)
			}
			continue
		}
		if sample.Value != want {
			t.Fatalf("sample %d = %g, want exact baseline %g", sample.Index, sample.Value, want)
		}
	}
}

func TestSynthesizeReproducibleWithSeed(t *testing.T) {
	params := model.SynthesisParams{Length: 120, NoiseAmplitude: 0.005, HasTransit: true}
	a, err := Synthesize(params, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	b, err := Synthesize(params, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs across identical seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSynthesizeRoundsToFiveDigits(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	series, err := Synthesize(model.SynthesisParams{Length: 200, NoiseAmplitude: 0.007}, rng)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	for _, sample := range series {
		scaled := sample.Value * 1e5
		if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("sample %d value %v not rounded to 5 digits", sample.Index, sample.Value)
		}
	}
}
