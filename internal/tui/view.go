package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateRewards:
		content = docStyle.Render(m.rewardsModel.View())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	}

	parts := []string{m.viewTabs(), content}
	if m.flash != "" {
		if m.failed {
			parts = append(parts, dangerStyle.Render(m.flash))
		} else {
			parts = append(parts, flashStyle.Render(m.flash))
		}
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Rewards"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	s := m.todayModel.Summary()

	header := []string{
		companionStyle.Render(s.Message),
		fmt.Sprintf("%s %d/%d  %s  streak %d  points %d",
			progressBar(s.Progress), s.CompletedCount, s.TotalCount, s.Date,
			s.Streak.CurrentStreak, s.Points.TotalPoints),
	}
	if s.MissedCount > 0 {
		header = append(header, warningStyle.Render(fmt.Sprintf("%d habit(s) missed yesterday", s.MissedCount)))
	}
	if s.ShowRecovery {
		header = append(header, warningStyle.Render(fmt.Sprintf("%d points can be recovered, press r", s.Points.PendingRecovery)))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(strings.Join(header, "\n")),
		"",
		m.todayModel.View(),
	))
}

func progressBar(progress float64) string {
	filled := int(progress * barWidth)
	filled = min(max(filled, 0), barWidth)
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}
