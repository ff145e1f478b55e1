// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mirova/fluxquiz/internal/model"
	"github.com/mirova/fluxquiz/internal/quiz"
	statsPkg "github.com/mirova/fluxquiz/internal/stats"
	"github.com/mirova/fluxquiz/internal/store"
	"github.com/mirova/fluxquiz/internal/task"
)

// Model implements the Bubble Tea quiz UI. It tracks whether the current
// task has been answered; the scoring session itself holds no per-task state.
type Model struct {
	config  model.Config
	store   *store.Store
	factory *task.Factory
	session *quiz.Session

	width  int
	height int

	task       model.Task
	shownAt    time.Time
	answered   bool
	selected   int
	lastResult quiz.Result
	errMsg     string

	allAnswered int
	allCorrect  int
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A")).Padding(0, 1)
	hitStyle      = panelStyle.BorderForeground(lipgloss.Color("#52C41A"))
	missStyle     = panelStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
	panelLabel    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	resultHit     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	resultMiss    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	curveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8FBCBB"))
	revealedCurve = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)

// NewModel constructs a quiz TUI model and deals the first task.
func NewModel(cfg model.Config, st *store.Store, factory *task.Factory, session *quiz.Session) *Model {
	m := &Model{
		config:  cfg,
		store:   st,
		factory: factory,
		session: session,
	}
	m.loadAllTime()
	m.nextTask()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC, msg.String() == "q":
			return m, tea.Quit
		case msg.String() == "n", msg.Type == tea.KeyEnter:
			if m.answered {
				m.nextTask()
			}
			return m, nil
		default:
			if idx, ok := panelKey(msg.String(), len(m.task.Options)); ok {
				m.selectPanel(idx)
			}
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	body := m.renderPanels(bodyHeight)
	return strings.Join([]string{header, "", body, "", footer}, "\n")
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("Which light curve hides a transit?")
	var status string
	if m.answered {
		if m.lastResult.Correct {
			status = resultHit.Render("Correct!") + promptStyle.Render(fmt.Sprintf("  The transit was in panel %d.", m.task.CorrectOption+1))
		} else {
			status = resultMiss.Render("Not this one.") + promptStyle.Render(fmt.Sprintf("  The transit was in panel %d.", m.task.CorrectOption+1))
		}
	} else {
		status = promptStyle.Render(fmt.Sprintf("Press 1-%d to pick the panel with the dip.", len(m.task.Options)))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status)
	if m.errMsg != "" {
		line += "\n" + errorStyle.Render(m.errMsg)
	}
	return line
}

func (m *Model) renderPanels(bodyHeight int) string {
	count := len(m.task.Options)
	if count == 0 {
		return ""
	}
	// Border (2) + horizontal padding (2) per panel.
	panelWidth := m.width/count - 4
	if panelWidth < 10 {
		panelWidth = 10
	}
	// Border (2) + label line.
	plotHeight := bodyHeight - 3
	if plotHeight < 2 {
		plotHeight = 2
	}

	panels := make([]string, 0, count)
	for k, series := range m.task.Options {
		lines := statsPkg.RenderLines(series.Values(), panelWidth, plotHeight)
		curve := strings.Join(lines, "\n")
		if m.answered && k == m.task.CorrectOption {
			curve = revealedCurve.Render(curve)
		} else {
			curve = curveStyle.Render(curve)
		}
		label := panelLabel.Render(fmt.Sprintf("[%d]", k+1))
		content := label + "\n" + curve

		style := panelStyle
		if m.answered {
			switch {
			case k == m.task.CorrectOption:
				style = hitStyle
			case k == m.selected:
				style = missStyle
			}
		}
		panels = append(panels, style.Render(content))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, row)
}

func (m *Model) renderFooter() string {
	stats := m.session.Stats()
	segments := []string{
		fmt.Sprintf("Session %d%% (%d/%d)", m.session.AccuracyPercent(), stats.TotalCorrect, stats.TotalAnswered),
	}
	if m.allAnswered > 0 {
		allPct := int(math.Round(100 * float64(m.allCorrect) / float64(m.allAnswered)))
		segments = append(segments, fmt.Sprintf("All-time %d%% (%d/%d)", allPct, m.allCorrect, m.allAnswered))
	}
	if m.answered {
		segments = append(segments, "Next: n/enter")
	}
	segments = append(segments, "Quit: q")
	footer := footerStyle.Render(strings.Join(segments, "  ·  "))
	return lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

// selectPanel records at most one answer per task; later presses on the same
// task are ignored here so the session never double counts.
func (m *Model) selectPanel(idx int) {
	if m.answered {
		return
	}
	res, err := m.session.Record(m.task, idx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.answered = true
	m.selected = idx
	m.lastResult = res
	m.allAnswered++
	if res.Correct {
		m.allCorrect++
	}
	m.persistRound(idx, res)
}

func (m *Model) persistRound(idx int, res quiz.Result) {
	seriesLength := 0
	if len(m.task.Options) > 0 {
		seriesLength = len(m.task.Options[0])
	}
	round := model.RoundRecord{
		TaskID:        m.task.ID,
		AnsweredAt:    time.Now(),
		OptionCount:   len(m.task.Options),
		SeriesLength:  seriesLength,
		Selected:      idx,
		CorrectOption: m.task.CorrectOption,
		Correct:       res.Correct,
		ResponseMs:    time.Since(m.shownAt).Milliseconds(),
	}
	if _, err := m.store.InsertRound(context.Background(), round); err != nil {
		logErrf("failed to save round: %v\n", err)
	}
}

func (m *Model) nextTask() {
	tk, err := m.factory.CreateTask(m.config.Panels)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.task = tk
	m.shownAt = time.Now()
	m.answered = false
	m.selected = -1
	m.errMsg = ""
}

func (m *Model) loadAllTime() {
	totals, err := m.store.Totals(context.Background())
	if err != nil {
		logErrf("failed to load all-time stats: %v\n", err)
		return
	}
	m.allAnswered = totals.TotalAnswered
	m.allCorrect = totals.TotalCorrect
}

func panelKey(key string, count int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	if idx >= count {
		return 0, false
	}
	return idx, true
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
