package quiz

import (
	"errors"
	"sync"
	"testing"

	"github.com/mirova/fluxquiz/internal/model"
)

func twoOptionTask(correct int) model.Task {
	return model.Task{
		ID:            "t",
		Options:       []model.Series{{}, {}},
		CorrectOption: correct,
	}
}

func TestRecordCorrectSelection(t *testing.T) {
	s := NewSession()
	res, err := s.Record(twoOptionTask(1), 1)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !res.Correct {
		t.Fatalf("expected correct result")
	}
	if res.Stats.TotalAnswered != 1 || res.Stats.TotalCorrect != 1 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
}

func TestRecordIncorrectSelection(t *testing.T) {
	s := NewSession()
	res, err := s.Record(twoOptionTask(1), 0)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if res.Correct {
		t.Fatalf("expected incorrect result")
	}
	if res.Stats.TotalAnswered != 1 || res.Stats.TotalCorrect != 0 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
}

func TestRecordRejectsOutOfRange(t *testing.T) {
	s := NewSession()
	for _, selected := range []int{-1, 2, 10} {
		if _, err := s.Record(twoOptionTask(0), selected); !errors.Is(err, ErrOutOfRangeSelection) {
			t.Fatalf("selected=%d: expected ErrOutOfRangeSelection, got %v", selected, err)
		}
	}
	if got := s.Stats(); got.TotalAnswered != 0 || got.TotalCorrect != 0 {
		t.Fatalf("rejected selections must not mutate stats: %+v", got)
	}
}

func TestStatsMonotonic(t *testing.T) {
	s := NewSession()
	prev := s.Stats()
	picks := []int{0, 1, 1, 0, 1, 0, 0, 1}
	for _, pick := range picks {
		res, err := s.Record(twoOptionTask(1), pick)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if res.Stats.TotalAnswered < prev.TotalAnswered || res.Stats.TotalCorrect < prev.TotalCorrect {
			t.Fatalf("stats regressed: %+v -> %+v", prev, res.Stats)
		}
		if res.Stats.TotalCorrect > res.Stats.TotalAnswered {
			t.Fatalf("correct exceeds answered: %+v", res.Stats)
		}
		prev = res.Stats
	}
	if prev.TotalAnswered != len(picks) || prev.TotalCorrect != 4 {
		t.Fatalf("unexpected totals: %+v", prev)
	}
}

func TestAccuracyPercent(t *testing.T) {
	s := NewSession()
	if got := s.AccuracyPercent(); got != 0 {
		t.Fatalf("empty session accuracy = %d, want 0", got)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.Record(twoOptionTask(0), 0); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if got := s.AccuracyPercent(); got != 100 {
		t.Fatalf("all-correct accuracy = %d, want 100", got)
	}
	if _, err := s.Record(twoOptionTask(0), 1); err != nil {
		t.Fatalf("record: %v", err)
	}
	// 3/4 rounds to 75.
	if got := s.AccuracyPercent(); got != 75 {
		t.Fatalf("accuracy = %d, want 75", got)
	}
	if _, err := s.Record(twoOptionTask(0), 1); err != nil {
		t.Fatalf("record: %v", err)
	}
	// 3/5 = 60.
	if got := s.AccuracyPercent(); got != 60 {
		t.Fatalf("accuracy = %d, want 60", got)
	}
}

func TestRecordConcurrent(t *testing.T) {
	s := NewSession()
	const workers = 8
	const perWorker = 250
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				pick := i % 2
				if _, err := s.Record(twoOptionTask(0), pick); err != nil {
					t.Errorf("record: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	stats := s.Stats()
	if stats.TotalAnswered != workers*perWorker {
		t.Fatalf("answered = %d, want %d", stats.TotalAnswered, workers*perWorker)
	}
	if stats.TotalCorrect != workers*perWorker/2 {
		t.Fatalf("correct = %d, want %d", stats.TotalCorrect, workers*perWorker/2)
	}
}
