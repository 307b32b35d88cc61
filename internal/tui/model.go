package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/tracker"
	"github.com/julianstephens/diacare/internal/tui/components/rewards"
	"github.com/julianstephens/diacare/internal/tui/components/today"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateRewards
	StateAddHabit
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

const refreshInterval = 30 * time.Second

type HabitFormModel struct {
	Name string
	Icon string
	Time string
}

type tickMsg time.Time

type Model struct {
	ctx          context.Context
	tracker      *tracker.Tracker
	state        SessionState
	keys         KeyMap
	help         help.Model
	todayModel   today.Model
	rewardsModel rewards.Model
	form         *huh.Form
	habitForm    *HabitFormModel
	flash        string
	failed       bool
	quitting     bool
	width        int
	height       int
}

func NewModel(ctx context.Context, t *tracker.Tracker) Model {
	m := Model{
		ctx:          ctx,
		tracker:      t,
		state:        StateToday,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		todayModel:   today.New(0, 0),
		rewardsModel: rewards.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		tk := m.todayModel.Keys()
		keys = append(keys, tk.Do, tk.Snooze, tk.Skip, tk.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateToday {
		tk := m.todayModel.Keys()
		actions = []key.Binding{tk.Do, tk.Snooze, tk.Skip, tk.Undo, tk.Add, tk.Recover}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh reloads every view from the tracker.
func (m *Model) refresh() {
	summary, err := m.tracker.Today(m.ctx)
	if err != nil {
		logger.Warn("Failed to load today", "error", err)
		return
	}
	m.todayModel.SetSummary(summary, m.tracker.Clock().Now())
	m.rewardsModel.SetData(m.tracker.RewardCatalog(m.ctx), summary.Streak, summary.Points)
}

func (m *Model) setFlash(msg string, failed bool) {
	m.flash = msg
	m.failed = failed
}
