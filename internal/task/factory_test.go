package task

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mirova/fluxquiz/internal/synth"
)

func TestCreateTaskRejectsSmallOptionCount(t *testing.T) {
	f := New(rand.New(rand.NewSource(1)))
	for _, count := range []int{-1, 0, 1} {
		if _, err := f.CreateTask(count); !errors.Is(err, synth.ErrInvalidParams) {
			t.Fatalf("optionCount=%d: expected ErrInvalidParams, got %v", count, err)
		}
	}
}

func TestCreateTaskExactlyOneTransit(t *testing.T) {
	f := New(rand.New(rand.NewSource(2)), WithSeriesLength(100))
	for trial := 0; trial < 25; trial++ {
		tk, err := f.CreateTask(3)
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
		if len(tk.Options) != 3 {
			t.Fatalf("expected 3 options, got %d", len(tk.Options))
		}
		if tk.CorrectOption < 0 || tk.CorrectOption >= len(tk.Options) {
			t.Fatalf("correct option %d out of range", tk.CorrectOption)
		}
		t0, t1 := synth.TransitWindow(100)
		for k, series := range tk.Options {
			dipped := windowMean(series.Values(), t0, t1) < outsideMean(series.Values(), t0, t1)-0.01
			if dipped != (k == tk.CorrectOption) {
				t.Fatalf("trial %d: option %d dipped=%v, correct=%d", trial, k, dipped, tk.CorrectOption)
			}
		}
	}
}

func TestCreateTaskFreshIDs(t *testing.T) {
	counter := 0
	f := New(rand.New(rand.NewSource(3)),
		WithSeriesLength(20),
		WithIDProvider(func() string {
			counter++
			return fmt.Sprintf("task-%d", counter)
		}))
	a, err := f.CreateTask(2)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	b, err := f.CreateTask(2)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if a.ID != "task-1" || b.ID != "task-2" {
		t.Fatalf("unexpected ids: %q, %q", a.ID, b.ID)
	}
}

func TestCreateTaskCorrectIndexUniform(t *testing.T) {
	const trials = 10000
	f := New(rand.New(rand.NewSource(4)), WithSeriesLength(8))
	observed := make([]float64, 3)
	for i := 0; i < trials; i++ {
		tk, err := f.CreateTask(3)
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
		observed[tk.CorrectOption]++
	}

	expected := float64(trials) / 3
	chi2 := 0.0
	for _, count := range observed {
		diff := count - expected
		chi2 += diff * diff / expected
	}
	// Critical value for df=2 at alpha=0.001.
	critical := distuv.ChiSquared{K: 2}.Quantile(0.999)
	if chi2 > critical {
		t.Fatalf("chi-square %.2f exceeds critical %.2f, counts %v", chi2, critical, observed)
	}
}

func TestCreateTaskNoiseIndependentOfCorrectSlot(t *testing.T) {
	// Noise amplitude spread of the correct panel should match the decoys;
	// compare rough scatter outside the transit window.
	f := New(rand.New(rand.NewSource(5)), WithSeriesLength(200))
	var correctSpread, decoySpread []float64
	for trial := 0; trial < 200; trial++ {
		tk, err := f.CreateTask(3)
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
		t0, t1 := synth.TransitWindow(200)
		for k, series := range tk.Options {
			spread := outsideScatter(series.Values(), t0, t1)
			if k == tk.CorrectOption {
				correctSpread = append(correctSpread, spread)
			} else {
				decoySpread = append(decoySpread, spread)
			}
		}
	}
	cm := mean(correctSpread)
	dm := mean(decoySpread)
	if math.Abs(cm-dm) > 0.001 {
		t.Fatalf("scatter leaks the correct panel: correct %.5f vs decoy %.5f", cm, dm)
	}
}

func windowMean(values []float64, t0, t1 int) float64 {
	var sum float64
	count := 0
	for i := t0; i <= t1 && i < len(values); i++ {
		sum += values[i]
		count++
	}
	return sum / float64(count)
}

func outsideMean(values []float64, t0, t1 int) float64 {
	var sum float64
	count := 0
	for i, v := range values {
		if i >= t0 && i <= t1 {
			continue
		}
		sum += v
		count++
	}
	return sum / float64(count)
}

func outsideScatter(values []float64, t0, t1 int) float64 {
	var sum float64
	count := 0
	for i, v := range values {
		if i >= t0 && i <= t1 {
			continue
		}
		sum += math.Abs(v - 1)
		count++
	}
	return sum / float64(count)
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
