// Package quiz scores panel selections and accumulates session accuracy.
package quiz

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/mirova/fluxquiz/internal/model"
)

// ErrOutOfRangeSelection reports a selected index outside the task's options.
var ErrOutOfRangeSelection = errors.New("selection out of range")

// Result reports one scored selection together with cumulative stats.
type Result struct {
	Correct bool
	Stats   model.SessionStats
}

// Session is a pure accumulator over completed tasks. It holds no per-task
// state; callers must track whether a given task was already answered.
// Safe for use from concurrent callers.
type Session struct {
	mu    sync.Mutex
	stats model.SessionStats
}

// NewSession returns an empty scoring session.
func NewSession() *Session {
	return &Session{}
}

// Record scores selected against the task's correct option and updates the
// running totals. An out-of-range selection leaves the stats unchanged.
func (s *Session) Record(task model.Task, selected int) (Result, error) {
	if selected < 0 || selected >= len(task.Options) {
		return Result{}, fmt.Errorf("%w: index %d with %d options", ErrOutOfRangeSelection, selected, len(task.Options))
	}
	correct := selected == task.CorrectOption

	s.mu.Lock()
	s.stats.TotalAnswered++
	if correct {
		s.stats.TotalCorrect++
	}
	stats := s.stats
	s.mu.Unlock()

	return Result{Correct: correct, Stats: stats}, nil
}

// Stats returns a copy of the cumulative totals.
func (s *Session) Stats() model.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// AccuracyPercent returns the rounded percentage of correct answers, or 0
// before any answer has been recorded.
func (s *Session) AccuracyPercent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats.TotalAnswered == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.stats.TotalCorrect) / float64(s.stats.TotalAnswered)))
}
