// Package reminder turns the enabled habit list into a daily reminder
// schedule and, in watch mode, delivers due reminders.
package reminder

import (
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/utils"
)

// Reminder is one daily reminder slot
type Reminder struct {
	HabitID string
	Name    string
	Icon    string
	Time    string // HH:MM format
	Minutes int    // minutes after midnight
}

// At returns the reminder's instant on the calendar day of day.
func (r Reminder) At(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, r.Minutes/60, r.Minutes%60, 0, 0, day.Location())
}

// Planner keeps the reminder schedule in step with the habit registry.
// It implements tracker.HabitObserver.
type Planner struct {
	mu        sync.RWMutex
	reminders []Reminder
}

func NewPlanner() *Planner {
	return &Planner{}
}

// HabitsChanged rebuilds the schedule from the enabled habits. Habits with
// an unparseable time are left out.
func (p *Planner) HabitsChanged(enabled []models.Habit) {
	reminders := make([]Reminder, 0, len(enabled))
	for _, h := range enabled {
		if !h.Enabled {
			continue
		}
		minutes, err := utils.ParseTimeToMinutes(h.Time)
		if err != nil {
			logger.Warn("Skipping reminder with invalid time", "habit", h.ID, "time", h.Time, "error", err)
			continue
		}
		reminders = append(reminders, Reminder{
			HabitID: h.ID,
			Name:    h.Name,
			Icon:    h.Icon,
			Time:    h.Time,
			Minutes: minutes,
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].Minutes < reminders[j].Minutes
	})

	p.mu.Lock()
	p.reminders = reminders
	p.mu.Unlock()

	logger.Debug("Reminder schedule rebuilt", "count", len(reminders))
}

// Schedule returns a copy of the current schedule, ordered by time of day.
func (p *Planner) Schedule() []Reminder {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Reminder, len(p.reminders))
	copy(out, p.reminders)
	return out
}

// Next returns the first reminder strictly after now, wrapping to
// tomorrow's first reminder. ok is false when the schedule is empty.
func (p *Planner) Next(now time.Time) (r Reminder, at time.Time, ok bool) {
	schedule := p.Schedule()
	if len(schedule) == 0 {
		return Reminder{}, time.Time{}, false
	}

	for _, r := range schedule {
		if at := r.At(now); at.After(now) {
			return r, at, true
		}
	}
	first := schedule[0]
	return first, first.At(now.AddDate(0, 0, 1)), true
}

// Due returns the reminders whose time today is at or before now.
func (p *Planner) Due(now time.Time) []Reminder {
	minute := now.Hour()*60 + now.Minute()

	var due []Reminder
	for _, r := range p.Schedule() {
		if r.Minutes <= minute {
			due = append(due, r)
		}
	}
	return due
}
