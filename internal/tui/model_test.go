package tui

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/mirova/fluxquiz/internal/model"
	"github.com/mirova/fluxquiz/internal/quiz"
	"github.com/mirova/fluxquiz/internal/store"
	"github.com/mirova/fluxquiz/internal/task"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "fluxquiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	counter := 0
	factory := task.New(rand.New(rand.NewSource(7)),
		task.WithSeriesLength(30),
		task.WithIDProvider(func() string {
			counter++
			return fmt.Sprintf("task-%d", counter)
		}))
	cfg := model.Config{Panels: 3, SeriesLength: 30, NoiseMin: 0.004, NoiseMax: 0.008}
	return NewModel(cfg, st, factory, quiz.NewSession())
}

func TestPanelKey(t *testing.T) {
	cases := []struct {
		key   string
		count int
		idx   int
		ok    bool
	}{
		{key: "1", count: 3, idx: 0, ok: true},
		{key: "3", count: 3, idx: 2, ok: true},
		{key: "4", count: 3, ok: false},
		{key: "0", count: 3, ok: false},
		{key: "a", count: 3, ok: false},
		{key: "10", count: 3, ok: false},
	}
	for _, tc := range cases {
		idx, ok := panelKey(tc.key, tc.count)
		if ok != tc.ok || (ok && idx != tc.idx) {
			t.Fatalf("panelKey(%q, %d) = (%d, %v), want (%d, %v)", tc.key, tc.count, idx, ok, tc.idx, tc.ok)
		}
	}
}

func TestSelectPanelAnswersOnce(t *testing.T) {
	m := testModel(t)
	if m.answered {
		t.Fatalf("fresh task must start unanswered")
	}
	m.selectPanel(0)
	if !m.answered {
		t.Fatalf("selection must mark the task answered")
	}
	m.selectPanel(1)
	m.selectPanel(2)
	stats := m.session.Stats()
	if stats.TotalAnswered != 1 {
		t.Fatalf("repeat selections leaked into the session: %+v", stats)
	}
}

func TestNextTaskResetsAnsweredState(t *testing.T) {
	m := testModel(t)
	firstID := m.task.ID
	m.selectPanel(0)
	m.nextTask()
	if m.answered {
		t.Fatalf("new task must reset answered state")
	}
	if m.task.ID == firstID {
		t.Fatalf("new task must carry a fresh id")
	}
}

func TestSelectPanelUpdatesAllTime(t *testing.T) {
	m := testModel(t)
	before := m.allAnswered
	m.selectPanel(m.task.CorrectOption)
	if m.allAnswered != before+1 {
		t.Fatalf("all-time answered = %d, want %d", m.allAnswered, before+1)
	}
	if !m.lastResult.Correct {
		t.Fatalf("picking the correct panel must score as correct")
	}
}
