package rewards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/tracker"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	unlockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(20)
)

type Model struct {
	viewport viewport.Model
	catalog  []tracker.RewardStatus
	streak   models.StreakData
	points   models.PointsData
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) SetData(catalog []tracker.RewardStatus, streak models.StreakData, points models.PointsData) {
	m.catalog = catalog
	m.streak = streak
	m.points = points
	m.render()
}

func (m *Model) render() {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Progress"))
	b.WriteString("\n\n")
	row := func(label string, value any) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(fmt.Sprint(value))
		b.WriteString("\n")
	}
	row("Current streak", fmt.Sprintf("%d days", m.streak.CurrentStreak))
	row("Longest streak", fmt.Sprintf("%d days", m.streak.LongestStreak))
	row("Perfect days", m.streak.TotalCompletedDays)
	row("Points", m.points.TotalPoints)
	if m.points.PendingRecovery > 0 {
		row("Recoverable", m.points.PendingRecovery)
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Rewards"))
	b.WriteString("\n\n")
	for _, r := range m.catalog {
		if r.Unlocked {
			b.WriteString(unlockedStyle.Render("★ " + r.Name))
			b.WriteString(fmt.Sprintf("  unlocked %s\n", dateOf(r.UnlockedAt)))
		} else {
			b.WriteString(lockedStyle.Render("☆ " + r.Name))
			b.WriteString(fmt.Sprintf("  %s\n", r.Requirement))
		}
	}

	m.viewport.SetContent(b.String())
}

func dateOf(timestamp string) string {
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}
