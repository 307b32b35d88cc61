package today

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/diacare/internal/tracker"
)

type AddHabitMsg struct{}

// DoMsg asks to complete a habit from its reminder.
type DoMsg struct {
	ID string
	// Confirm is set when the snooze ran out and the prompt is "done?"
	Confirm bool
}

type SnoozeMsg struct {
	ID string
}

type SkipMsg struct {
	ID string
}

type UndoMsg struct {
	ID string
}

type RecoverMsg struct{}

type Item struct {
	Status tracker.HabitStatus
	Now    time.Time
}

func (i Item) Title() string {
	switch {
	case i.Status.Completed:
		return "✓ " + i.Status.Habit.Name
	case i.Status.Snooze.Snoozed:
		return "⏰ " + i.Status.Habit.Name
	default:
		return "○ " + i.Status.Habit.Name
	}
}

func (i Item) Description() string {
	s := i.Status
	switch {
	case s.Completed:
		return s.Habit.Time + " | done"
	case s.Snooze.Snoozed && s.Snooze.Expired:
		return s.Habit.Time + " | snooze over, have you done this?"
	case s.Snooze.Snoozed:
		return fmt.Sprintf("%s | snoozed, back %s", s.Habit.Time, humanize.RelTime(time.UnixMilli(s.SnoozeUntil), i.Now, "ago", "from now"))
	default:
		return s.Habit.Time
	}
}

func (i Item) FilterValue() string { return i.Status.Habit.Name }

type KeyMap struct {
	Do      key.Binding
	Snooze  key.Binding
	Skip    key.Binding
	Undo    key.Binding
	Add     key.Binding
	Recover key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Do: key.NewBinding(
			key.WithKeys("enter", "d"),
			key.WithHelp("d", "done"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snooze"),
		),
		Skip: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "skip"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Recover: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recover points"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	summary tracker.DaySummary
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	bindings := func() []key.Binding {
		return []key.Binding{keys.Do, keys.Snooze, keys.Skip, keys.Undo, keys.Add, keys.Recover}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	return Model{list: l, keys: keys}
}

// SetSummary replaces the rows, keeping the cursor where it was.
func (m *Model) SetSummary(summary tracker.DaySummary, now time.Time) {
	m.summary = summary
	items := make([]list.Item, len(summary.Habits))
	for i, s := range summary.Habits {
		items[i] = Item{Status: s, Now: now}
	}
	m.list.SetItems(items)
}

func (m Model) Summary() tracker.DaySummary {
	return m.summary
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Recover):
			if m.summary.ShowRecovery {
				return m, func() tea.Msg { return RecoverMsg{} }
			}
			return m, nil
		}

		item, ok := m.list.SelectedItem().(Item)
		if ok {
			s := item.Status
			switch {
			case key.Matches(msg, m.keys.Do):
				if !s.Completed {
					confirm := s.Snooze.Snoozed && s.Snooze.Expired
					return m, func() tea.Msg { return DoMsg{ID: s.Habit.ID, Confirm: confirm} }
				}
				return m, nil
			case key.Matches(msg, m.keys.Snooze):
				if !s.Completed {
					return m, func() tea.Msg { return SnoozeMsg{ID: s.Habit.ID} }
				}
				return m, nil
			case key.Matches(msg, m.keys.Skip):
				if !s.Completed {
					return m, func() tea.Msg { return SkipMsg{ID: s.Habit.ID} }
				}
				return m, nil
			case key.Matches(msg, m.keys.Undo):
				if s.Completed {
					return m, func() tea.Msg { return UndoMsg{ID: s.Habit.ID} }
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.summary.Habits) == 0 {
		return "No habits enabled. Press 'a' to add one."
	}
	return m.list.View()
}
