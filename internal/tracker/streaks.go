package tracker

import (
	"context"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

func noStreak() models.StreakData {
	return models.StreakData{}
}

func (t *Tracker) Streaks(ctx context.Context) models.StreakData {
	return loadDoc(ctx, t, constants.KeyStreaks, noStreak)
}

type streakUpdate struct {
	perfect bool
	mutated bool
	streak  models.StreakData
	rewards []models.Reward
}

// updateStreaks counts date as a perfect day once every enabled habit has
// a completion on it. A perfect day directly after the last one extends
// the streak; any other new perfect day restarts it at 1. A date that was
// already counted changes nothing. Callers hold the completions lock.
func (t *Tracker) updateStreaks(ctx context.Context, date string, done []models.CompletedTask) (streakUpdate, error) {
	enabled := t.EnabledHabits(ctx)

	update := streakUpdate{perfect: isPerfectDay(enabled, done)}
	if !update.perfect {
		update.streak = t.Streaks(ctx)
		return update, nil
	}

	unlock := t.locks.lock(constants.KeyStreaks)
	defer unlock()

	streak, err := readDoc(ctx, t, constants.KeyStreaks, noStreak)
	if err != nil {
		return update, err
	}
	update.streak = streak

	last := streak.LastCompleted()
	if last == date {
		return update, nil
	}

	previous, err := clock.PreviousDay(date)
	if err != nil {
		return update, err
	}

	if last == previous {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}
	streak.LastCompletedDate = &date
	streak.LongestStreak = max(streak.LongestStreak, streak.CurrentStreak)
	streak.TotalCompletedDays++

	if err := t.writeDoc(ctx, constants.KeyStreaks, streak); err != nil {
		return update, err
	}
	update.mutated = true
	update.streak = streak

	t.log.Debug("Streak updated", "date", date, "current", streak.CurrentStreak, "longest", streak.LongestStreak)

	rewards, err := t.unlockRewards(ctx, streak)
	if err != nil {
		return update, err
	}
	update.rewards = rewards
	return update, nil
}

// isPerfectDay reports whether every enabled habit is in done. An empty
// enabled set is never perfect.
func isPerfectDay(enabled []models.Habit, done []models.CompletedTask) bool {
	if len(enabled) == 0 {
		return false
	}
	for _, h := range enabled {
		if !hasCompletion(done, h.ID) {
			return false
		}
	}
	return true
}
