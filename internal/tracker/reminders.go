package tracker

import (
	"context"
	"fmt"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/utils"
)

// PromptKind is the choice a reminder offers for a habit
type PromptKind int

const (
	// PromptInitial offers "do it now" or "snooze"
	PromptInitial PromptKind = iota
	// PromptCompletion offers "done" or "skip" once a snooze ran out
	PromptCompletion
)

func (k PromptKind) String() string {
	if k == PromptCompletion {
		return "completion"
	}
	return "initial"
}

// Mood is the companion's expression on the today screen
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodEncouraging Mood = "encouraging"
	MoodSupportive  Mood = "supportive"
)

// ActionResult is returned by the reminder actions.
type ActionResult struct {
	Completion *CompletionResult
	Points     models.PointsData
	Snooze     *models.SnoozedTask
}

// HabitStatus is one row of the today screen
type HabitStatus struct {
	Habit     models.Habit
	Completed bool
	Snooze    models.SnoozeStatus
	// SnoozeUntil is set while the habit is snoozed
	SnoozeUntil int64
}

// DaySummary is the read model behind the today views.
type DaySummary struct {
	Date           string
	Greeting       string
	Name           string
	Habits         []HabitStatus
	CompletedCount int
	TotalCount     int
	Progress       float64
	Mood           Mood
	Message        string
	Points         models.PointsData
	Streak         models.StreakData
	MissedCount    int
	// ShowRecovery is set while deducted points can still be recovered
	ShowRecovery bool
}

// Prompt decides which reminder choice to offer for habitID.
func (t *Tracker) Prompt(ctx context.Context, habitID string) PromptKind {
	if status := t.IsSnoozed(ctx, habitID); status.Snoozed && status.Expired {
		return PromptCompletion
	}
	return PromptInitial
}

// DoNow completes habitID today from the initial prompt.
func (t *Tracker) DoNow(ctx context.Context, habitID string) (ActionResult, error) {
	return t.completeFromReminder(ctx, habitID)
}

// ConfirmDone completes habitID today from the completion prompt.
func (t *Tracker) ConfirmDone(ctx context.Context, habitID string) (ActionResult, error) {
	return t.completeFromReminder(ctx, habitID)
}

func (t *Tracker) completeFromReminder(ctx context.Context, habitID string) (ActionResult, error) {
	completion, err := t.Complete(ctx, habitID, clock.Today(t.clock))
	if err != nil {
		return ActionResult{}, fmt.Errorf("failed to complete %s: %w", habitID, err)
	}
	if err := t.ClearSnooze(ctx, habitID); err != nil {
		return ActionResult{Completion: &completion}, fmt.Errorf("failed to clear snooze for %s: %w", habitID, err)
	}
	// A de-duplicated completion was already paid for.
	if completion.Duplicate {
		return ActionResult{Completion: &completion, Points: t.Points(ctx)}, nil
	}
	points, err := t.AddPoints(ctx, constants.PointsForCompletion)
	if err != nil {
		return ActionResult{Completion: &completion}, fmt.Errorf("failed to award points: %w", err)
	}
	return ActionResult{Completion: &completion, Points: points}, nil
}

// SnoozeReminder defers habitID by the default snooze length.
func (t *Tracker) SnoozeReminder(ctx context.Context, habitID string) (ActionResult, error) {
	entry, err := t.Snooze(ctx, habitID, constants.DefaultSnoozeMinutes)
	if err != nil {
		return ActionResult{}, fmt.Errorf("failed to snooze %s: %w", habitID, err)
	}
	return ActionResult{Snooze: &entry, Points: t.Points(ctx)}, nil
}

// Skip gives up on habitID for now. The penalty lands in pending recovery.
func (t *Tracker) Skip(ctx context.Context, habitID string) (ActionResult, error) {
	if err := t.ClearSnooze(ctx, habitID); err != nil {
		return ActionResult{}, fmt.Errorf("failed to clear snooze for %s: %w", habitID, err)
	}
	points, err := t.DeductPoints(ctx, constants.PointsForSkip)
	if err != nil {
		return ActionResult{}, fmt.Errorf("failed to deduct points: %w", err)
	}
	return ActionResult{Points: points}, nil
}

// Today builds the summary shown on the today screen.
func (t *Tracker) Today(ctx context.Context) (DaySummary, error) {
	if err := ctx.Err(); err != nil {
		return DaySummary{}, err
	}

	today := clock.Today(t.clock)
	now := t.clock.Now()

	done := t.CompletionsForDate(ctx, today)
	snoozed := make(map[string]models.SnoozedTask)
	for _, s := range t.Snoozed(ctx) {
		snoozed[s.HabitID] = s
	}

	summary := DaySummary{
		Date:     today,
		Greeting: utils.Greeting(now),
		Name:     t.Profile(ctx).Name,
		Points:   t.Points(ctx),
		Streak:   t.Streaks(ctx),
	}

	for _, h := range t.EnabledHabits(ctx) {
		status := HabitStatus{Habit: h, Completed: hasCompletion(done, h.ID)}
		if s, ok := snoozed[h.ID]; ok {
			status.Snooze = models.SnoozeStatus{Snoozed: true, Expired: now.UnixMilli() >= s.SnoozeUntil}
			status.SnoozeUntil = s.SnoozeUntil
		}
		if status.Completed {
			summary.CompletedCount++
		}
		summary.Habits = append(summary.Habits, status)
	}

	summary.TotalCount = len(summary.Habits)
	if summary.TotalCount > 0 {
		summary.Progress = float64(summary.CompletedCount) / float64(summary.TotalCount)
	}
	summary.Mood = moodFor(summary.Progress)
	summary.Message = companionMessage(summary.Progress, summary.Greeting, summary.Name)
	summary.MissedCount = len(t.MissedYesterday(ctx))
	summary.ShowRecovery = summary.Points.PendingRecovery > 0

	return summary, nil
}

func moodFor(progress float64) Mood {
	switch {
	case progress >= constants.MoodHappyThreshold:
		return MoodHappy
	case progress >= constants.MoodEncouragingThreshold:
		return MoodEncouraging
	default:
		return MoodSupportive
	}
}

func companionMessage(progress float64, greeting, name string) string {
	switch {
	case progress >= 1:
		return fmt.Sprintf("Amazing work, %s! You've completed all your tasks today!", name)
	case progress >= 0.8:
		return fmt.Sprintf("You're doing wonderfully, %s! Almost there!", name)
	case progress >= 0.5:
		return fmt.Sprintf("Great progress, %s! Keep it up!", name)
	case progress > 0:
		return fmt.Sprintf("Every small step counts, %s. You've got this!", name)
	default:
		return fmt.Sprintf("%s, %s! Ready for a healthy day?", greeting, name)
	}
}
