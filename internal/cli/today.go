package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/diacare/internal/tracker"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	snoozeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	s, err := ctx.Tracker.Today(ctx.Ctx)
	if err != nil {
		return err
	}
	now := ctx.Clock.Now()

	ctx.println(titleStyle.Render(s.Message))
	ctx.printf("%s  %d/%d done  streak %d  points %s\n\n",
		s.Date, s.CompletedCount, s.TotalCount, s.Streak.CurrentStreak, ctx.number(s.Points.TotalPoints))

	if len(s.Habits) == 0 {
		ctx.println("No habits enabled. Add one with 'diacare habit add'.")
		return nil
	}
	for _, h := range s.Habits {
		ctx.println(habitLine(h, now))
	}

	if s.MissedCount > 0 {
		ctx.printf("\n%d habit(s) missed yesterday.\n", s.MissedCount)
	}
	if s.ShowRecovery {
		ctx.printf("%d points can be recovered with 'diacare points recover'.\n", s.Points.PendingRecovery)
	}
	return nil
}

func habitLine(h tracker.HabitStatus, now time.Time) string {
	line := fmt.Sprintf("%s  %s", h.Habit.Time, h.Habit.Name)
	switch {
	case h.Completed:
		return doneStyle.Render("✓ " + line)
	case h.Snooze.Snoozed && h.Snooze.Expired:
		return snoozeStyle.Render("⏰ "+line) + mutedStyle.Render("  (snooze over, done yet?)")
	case h.Snooze.Snoozed:
		until := time.UnixMilli(h.SnoozeUntil)
		return snoozeStyle.Render("⏰ "+line) +
			mutedStyle.Render("  (back "+humanize.RelTime(until, now, "ago", "from now")+")")
	default:
		return pendingStyle.Render("○ " + line)
	}
}
