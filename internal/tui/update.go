package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/tracker"
	"github.com/julianstephens/diacare/internal/tui/components/today"
)

// chromeHeight is the space taken by tabs, header and help.
const chromeHeight = 9

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddHabit {
		return m.updateAddHabit(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.todayModel.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.rewardsModel.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.flash = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.flash = ""
			return m, nil
		}

	case today.AddHabitMsg:
		m.habitForm = &HabitFormModel{Icon: habitIcons[0]}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case today.DoMsg:
		var res tracker.ActionResult
		var err error
		if msg.Confirm {
			res, err = m.tracker.ConfirmDone(m.ctx, msg.ID)
		} else {
			res, err = m.tracker.DoNow(m.ctx, msg.ID)
		}
		m.afterAction(err, completionFlash(res))
		return m, nil

	case today.SnoozeMsg:
		_, err := m.tracker.SnoozeReminder(m.ctx, msg.ID)
		m.afterAction(err, "Snoozed. We'll remind you again soon.")
		return m, nil

	case today.SkipMsg:
		res, err := m.tracker.Skip(m.ctx, msg.ID)
		m.afterAction(err, fmt.Sprintf("Skipped. %d points can be recovered.", res.Points.PendingRecovery))
		return m, nil

	case today.UndoMsg:
		_, err := m.tracker.Uncomplete(m.ctx, msg.ID, m.tracker.TodayDate())
		m.afterAction(err, "Marked as not done.")
		return m, nil

	case today.RecoverMsg:
		res, err := m.tracker.RecoverPoints(m.ctx)
		m.afterAction(err, fmt.Sprintf("Points recovered! Total: %d", res.TotalPoints))
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case StateRewards:
		m.rewardsModel, cmd = m.rewardsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) afterAction(err error, success string) {
	if err != nil {
		m.setFlash("Could not save: "+err.Error(), true)
	} else {
		m.setFlash(success, false)
	}
	m.refresh()
}

func completionFlash(res tracker.ActionResult) string {
	c := res.Completion
	if c == nil {
		return "Done!"
	}
	var parts []string
	parts = append(parts, fmt.Sprintf("Great job! +%d points", constants.PointsForCompletion))
	if c.PerfectDay && c.StreakUpdated {
		parts = append(parts, fmt.Sprintf("Perfect day! Streak: %d", c.Streak.CurrentStreak))
	}
	for _, r := range c.NewRewards {
		parts = append(parts, "Unlocked "+r.Name+"!")
	}
	return strings.Join(parts, " | ")
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateToday
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		habit := models.Habit{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(m.habitForm.Name),
			Icon:      m.habitForm.Icon,
			Time:      m.habitForm.Time,
			Enabled:   true,
			Frequency: models.FrequencyDaily,
		}
		if err := m.tracker.AddHabit(m.ctx, habit); err != nil {
			// Stay in the form so the user can retry or cancel
			m.setFlash("Could not save habit: "+err.Error(), true)
			m.form.State = huh.StateNormal
			break
		}
		m.setFlash("Added "+habit.Name, false)
		m.refresh()
		m.state = StateToday
	case huh.StateAborted:
		m.state = StateToday
	}
	return m, tea.Batch(cmds...)
}
