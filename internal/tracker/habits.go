package tracker

import (
	"context"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

// Habits returns every habit, or the default set when none were saved.
func (t *Tracker) Habits(ctx context.Context) []models.Habit {
	return loadDoc(ctx, t, constants.KeyHabits, models.DefaultHabits)
}

func (t *Tracker) EnabledHabits(ctx context.Context) []models.Habit {
	return enabledOnly(t.Habits(ctx))
}

func (t *Tracker) Habit(ctx context.Context, id string) (models.Habit, bool) {
	for _, h := range t.Habits(ctx) {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// AddHabit appends h. Ids are not checked for uniqueness.
func (t *Tracker) AddHabit(ctx context.Context, h models.Habit) error {
	unlock := t.locks.lock(constants.KeyHabits)
	defer unlock()

	habits, err := readDoc(ctx, t, constants.KeyHabits, models.DefaultHabits)
	if err != nil {
		return err
	}

	habits = append(habits, h)
	return t.saveHabits(ctx, habits)
}

// UpdateHabit applies patch to the habit with id. It reports false and
// writes nothing when no such habit exists.
func (t *Tracker) UpdateHabit(ctx context.Context, id string, patch models.HabitPatch) (bool, error) {
	unlock := t.locks.lock(constants.KeyHabits)
	defer unlock()

	habits, err := readDoc(ctx, t, constants.KeyHabits, models.DefaultHabits)
	if err != nil {
		return false, err
	}

	for i := range habits {
		if habits[i].ID == id {
			habits[i] = patch.Apply(habits[i])
			return true, t.saveHabits(ctx, habits)
		}
	}
	return false, nil
}

// RemoveHabit deletes the habit with id. It reports false when no such
// habit exists. Completions for the habit are kept.
func (t *Tracker) RemoveHabit(ctx context.Context, id string) (bool, error) {
	unlock := t.locks.lock(constants.KeyHabits)
	defer unlock()

	habits, err := readDoc(ctx, t, constants.KeyHabits, models.DefaultHabits)
	if err != nil {
		return false, err
	}

	kept := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(habits) {
		return false, nil
	}
	return true, t.saveHabits(ctx, kept)
}

// SetHabits replaces the whole habit list.
func (t *Tracker) SetHabits(ctx context.Context, habits []models.Habit) error {
	unlock := t.locks.lock(constants.KeyHabits)
	defer unlock()

	if habits == nil {
		habits = []models.Habit{}
	}
	return t.saveHabits(ctx, habits)
}

func (t *Tracker) saveHabits(ctx context.Context, habits []models.Habit) error {
	if err := t.writeDoc(ctx, constants.KeyHabits, habits); err != nil {
		return err
	}

	enabled := enabledOnly(habits)
	for _, o := range t.observers {
		o.HabitsChanged(enabled)
	}
	return nil
}

func enabledOnly(habits []models.Habit) []models.Habit {
	enabled := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.Enabled {
			enabled = append(enabled, h)
		}
	}
	return enabled
}
