package stats

import (
	"math"
	"testing"
	"time"

	"github.com/mirova/fluxquiz/internal/model"
)

func roundAt(i int, correct bool, responseMs int64) model.RoundAggregate {
	return model.RoundAggregate{
		RoundID:    int64(i + 1),
		AnsweredAt: time.Unix(int64(i)*60, 0),
		Correct:    correct,
		ResponseMs: responseMs,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	rounds := []model.RoundAggregate{
		roundAt(0, true, 1000),
		roundAt(1, true, 2000),
		roundAt(2, false, 3000),
		roundAt(3, true, 2000),
	}
	s := Summarize(rounds)
	if s.Rounds != 4 || s.Correct != 3 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.AccuracyPct != 75 {
		t.Fatalf("accuracy = %v, want 75", s.AccuracyPct)
	}
	if s.AvgResponseMs != 2000 {
		t.Fatalf("avg response = %v, want 2000", s.AvgResponseMs)
	}
	if s.BestStreak != 2 || s.CurrentStreak != 1 {
		t.Fatalf("streaks = %d/%d, want 2/1", s.BestStreak, s.CurrentStreak)
	}
	if s.StdResponseMs <= 0 {
		t.Fatalf("expected positive response stddev, got %v", s.StdResponseMs)
	}
}

func TestAccuracySeries(t *testing.T) {
	rounds := []model.RoundAggregate{
		roundAt(0, true, 0),
		roundAt(1, false, 0),
		roundAt(2, true, 0),
	}
	got := AccuracySeries(rounds)
	want := []float64{100, 0, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("accuracy series = %v, want %v", got, want)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("moving average = %v, want %v", got, want)
		}
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	values := []float64{3, 1, 4}
	got := MovingAverage(values, 1)
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("window=1 must copy input, got %v", got)
		}
	}
	got[0] = 99
	if values[0] == 99 {
		t.Fatalf("moving average must not alias its input")
	}
}
