package tracker

import (
	"context"
	"time"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

func noSnoozes() []models.SnoozedTask {
	return []models.SnoozedTask{}
}

// todaysSnoozes drops entries left over from earlier days.
func (t *Tracker) todaysSnoozes(all []models.SnoozedTask) []models.SnoozedTask {
	out := make([]models.SnoozedTask, 0, len(all))
	for _, s := range all {
		if clock.IsToday(s.Date, t.clock) {
			out = append(out, s)
		}
	}
	return out
}

// Snoozed returns today's snoozed habits.
func (t *Tracker) Snoozed(ctx context.Context) []models.SnoozedTask {
	return t.todaysSnoozes(loadDoc(ctx, t, constants.KeySnoozedTasks, noSnoozes))
}

// Snooze defers habitID by minutes from now. Snoozing an already snoozed
// habit moves its deadline instead of adding a second entry.
func (t *Tracker) Snooze(ctx context.Context, habitID string, minutes int) (models.SnoozedTask, error) {
	unlock := t.locks.lock(constants.KeySnoozedTasks)
	defer unlock()

	all, err := readDoc(ctx, t, constants.KeySnoozedTasks, noSnoozes)
	if err != nil {
		return models.SnoozedTask{}, err
	}
	tasks := t.todaysSnoozes(all)

	entry := models.SnoozedTask{
		HabitID:     habitID,
		SnoozeUntil: t.clock.Now().Add(time.Duration(minutes) * time.Minute).UnixMilli(),
		Date:        clock.Today(t.clock),
	}

	found := false
	for i := range tasks {
		if tasks[i].HabitID == habitID {
			tasks[i].SnoozeUntil = entry.SnoozeUntil
			found = true
			break
		}
	}
	if !found {
		tasks = append(tasks, entry)
	}

	return entry, t.writeDoc(ctx, constants.KeySnoozedTasks, tasks)
}

func (t *Tracker) ClearSnooze(ctx context.Context, habitID string) error {
	unlock := t.locks.lock(constants.KeySnoozedTasks)
	defer unlock()

	all, err := readDoc(ctx, t, constants.KeySnoozedTasks, noSnoozes)
	if err != nil {
		return err
	}

	kept := make([]models.SnoozedTask, 0, len(all))
	for _, s := range t.todaysSnoozes(all) {
		if s.HabitID != habitID {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	return t.writeDoc(ctx, constants.KeySnoozedTasks, kept)
}

// IsSnoozed reports whether habitID has a snooze today and whether its
// deadline has passed.
func (t *Tracker) IsSnoozed(ctx context.Context, habitID string) models.SnoozeStatus {
	entry, ok := t.snoozeFor(ctx, habitID)
	if !ok {
		return models.SnoozeStatus{}
	}
	return models.SnoozeStatus{
		Snoozed: true,
		Expired: t.clock.Now().UnixMilli() >= entry.SnoozeUntil,
	}
}

func (t *Tracker) snoozeFor(ctx context.Context, habitID string) (models.SnoozedTask, bool) {
	for _, s := range t.Snoozed(ctx) {
		if s.HabitID == habitID {
			return s, true
		}
	}
	return models.SnoozedTask{}, false
}
