package tracker

import (
	"context"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

// CompletionResult describes what a Complete call changed.
type CompletionResult struct {
	Task models.CompletedTask
	// Duplicate is set when de-duplication skipped the ledger write
	Duplicate bool
	// PerfectDay is set when every enabled habit is done for the date
	PerfectDay bool
	// StreakUpdated is set when this call advanced or restarted the streak
	StreakUpdated bool
	Streak        models.StreakData
	NewRewards    []models.Reward
}

func noCompletions() []models.CompletedTask {
	return []models.CompletedTask{}
}

func (t *Tracker) AllCompletions(ctx context.Context) []models.CompletedTask {
	return loadDoc(ctx, t, constants.KeyCompletedTasks, noCompletions)
}

func (t *Tracker) CompletionsForDate(ctx context.Context, date string) []models.CompletedTask {
	return forDate(t.AllCompletions(ctx), date)
}

func (t *Tracker) IsCompleted(ctx context.Context, habitID, date string) bool {
	return hasCompletion(t.CompletionsForDate(ctx, date), habitID)
}

// Complete records habitID as done on date, then re-evaluates the streak
// for that date.
func (t *Tracker) Complete(ctx context.Context, habitID, date string) (CompletionResult, error) {
	unlock := t.locks.lock(constants.KeyCompletedTasks)
	defer unlock()

	all, err := readDoc(ctx, t, constants.KeyCompletedTasks, noCompletions)
	if err != nil {
		return CompletionResult{}, err
	}

	result := CompletionResult{
		Task: models.CompletedTask{
			HabitID:     habitID,
			CompletedAt: t.now(),
			Date:        date,
		},
	}

	if t.dedupe && hasCompletion(forDate(all, date), habitID) {
		result.Duplicate = true
		t.log.Debug("Completion already recorded", "habit", habitID, "date", date)
	} else {
		all = append(all, result.Task)
		if err := t.writeDoc(ctx, constants.KeyCompletedTasks, all); err != nil {
			return CompletionResult{}, err
		}
	}

	update, err := t.updateStreaks(ctx, date, forDate(all, date))
	if err != nil {
		return result, err
	}
	result.PerfectDay = update.perfect
	result.StreakUpdated = update.mutated
	result.Streak = update.streak
	result.NewRewards = update.rewards
	return result, nil
}

// Uncomplete removes every completion of habitID on date and returns how
// many rows were removed. The streak is left as it is.
func (t *Tracker) Uncomplete(ctx context.Context, habitID, date string) (int, error) {
	unlock := t.locks.lock(constants.KeyCompletedTasks)
	defer unlock()

	all, err := readDoc(ctx, t, constants.KeyCompletedTasks, noCompletions)
	if err != nil {
		return 0, err
	}

	kept := make([]models.CompletedTask, 0, len(all))
	for _, c := range all {
		if c.HabitID == habitID && c.Date == date {
			continue
		}
		kept = append(kept, c)
	}

	removed := len(all) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, t.writeDoc(ctx, constants.KeyCompletedTasks, kept)
}

// MissedYesterday lists the ids of habits enabled now that have no
// completion yesterday. Habits disabled since yesterday are not reported.
func (t *Tracker) MissedYesterday(ctx context.Context) []string {
	done := t.CompletionsForDate(ctx, clock.Yesterday(t.clock))

	missed := []string{}
	for _, h := range t.EnabledHabits(ctx) {
		if !hasCompletion(done, h.ID) {
			missed = append(missed, h.ID)
		}
	}
	return missed
}

func forDate(all []models.CompletedTask, date string) []models.CompletedTask {
	out := make([]models.CompletedTask, 0)
	for _, c := range all {
		if c.Date == date {
			out = append(out, c)
		}
	}
	return out
}

func hasCompletion(tasks []models.CompletedTask, habitID string) bool {
	for _, c := range tasks {
		if c.HabitID == habitID {
			return true
		}
	}
	return false
}
