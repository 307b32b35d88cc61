package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/tracker"
	"github.com/julianstephens/diacare/internal/utils"
	"github.com/julianstephens/diacare/internal/validation"
)

type TaskCompleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Date to complete (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *TaskCompleteCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	date := ctx.dateOrToday(c.Date)
	if err := validation.Date(date); err != nil {
		return err
	}

	res, err := ctx.Tracker.Complete(ctx.Ctx, habit.ID, date)
	if err != nil {
		return fmt.Errorf("failed to complete %s: %w", habit.Name, err)
	}
	printCompletion(ctx, habit.Name, date, res)
	return nil
}

func printCompletion(ctx *Context, name, date string, res tracker.CompletionResult) {
	if res.Duplicate {
		ctx.printf("%s was already done on %s\n", name, date)
	} else {
		ctx.printf("✓ %s done for %s\n", name, date)
	}
	if res.PerfectDay && res.StreakUpdated {
		ctx.printf("Perfect day! Current streak: %d (longest %d)\n", res.Streak.CurrentStreak, res.Streak.LongestStreak)
	}
	for _, r := range res.NewRewards {
		ctx.printf("★ Unlocked %s (%s)\n", r.Name, r.Requirement)
	}
}

type TaskUncompleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Date to undo (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *TaskUncompleteCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	date := ctx.dateOrToday(c.Date)
	if err := validation.Date(date); err != nil {
		return err
	}

	removed, err := ctx.Tracker.Uncomplete(ctx.Ctx, habit.ID, date)
	if err != nil {
		return fmt.Errorf("failed to undo %s: %w", habit.Name, err)
	}
	if removed == 0 {
		ctx.printf("%s was not done on %s\n", habit.Name, date)
		return nil
	}
	ctx.printf("Removed %d completion(s) of %s on %s\n", removed, habit.Name, date)
	return nil
}

// TaskDoCmd answers today's reminder for a habit with "done", whichever
// prompt it is showing.
type TaskDoCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *TaskDoCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if ctx.alreadyDoneToday(habit) {
		return nil
	}

	var res tracker.ActionResult
	if ctx.Tracker.Prompt(ctx.Ctx, habit.ID) == tracker.PromptCompletion {
		res, err = ctx.Tracker.ConfirmDone(ctx.Ctx, habit.ID)
	} else {
		res, err = ctx.Tracker.DoNow(ctx.Ctx, habit.ID)
	}
	if res.Completion != nil {
		printCompletion(ctx, habit.Name, ctx.Tracker.TodayDate(), *res.Completion)
	}
	if err != nil {
		return err
	}
	ctx.printf("Points: %s (+%s today)\n", ctx.number(res.Points.TotalPoints), ctx.number(res.Points.EarnedToday))
	return nil
}

// alreadyDoneToday reports a habit that needs no reminder answer today.
func (c *Context) alreadyDoneToday(habit models.Habit) bool {
	if !c.Tracker.IsCompleted(c.Ctx, habit.ID, c.Tracker.TodayDate()) {
		return false
	}
	c.printf("%s is already done today.\n", habit.Name)
	return true
}

type TaskSkipCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *TaskSkipCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if ctx.alreadyDoneToday(habit) {
		return nil
	}
	res, err := ctx.Tracker.Skip(ctx.Ctx, habit.ID)
	if err != nil {
		return err
	}
	ctx.printf("Skipped %s. Points: %s, recoverable: %s\n",
		habit.Name, ctx.number(res.Points.TotalPoints), ctx.number(res.Points.PendingRecovery))
	return nil
}

type TaskSnoozeCmd struct {
	Habit   string `arg:"" help:"Habit id or name."`
	Minutes int    `help:"Minutes to snooze for." default:"5"`
}

func (c *TaskSnoozeCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := validation.SnoozeMinutes(c.Minutes); err != nil {
		return err
	}
	entry, err := ctx.Tracker.Snooze(ctx.Ctx, habit.ID, c.Minutes)
	if err != nil {
		return fmt.Errorf("failed to snooze %s: %w", habit.Name, err)
	}
	until := time.UnixMilli(entry.SnoozeUntil)
	ctx.printf("Snoozed %s until %s (%s)\n", habit.Name,
		until.In(ctx.Clock.Now().Location()).Format("15:04"),
		humanize.RelTime(until, ctx.Clock.Now(), "ago", "from now"))
	return nil
}

type TaskStatusCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Date to check (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *TaskStatusCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	date := ctx.dateOrToday(c.Date)
	if err := validation.Date(date); err != nil {
		return err
	}

	ctx.printf("%s (%s at %s)\n", habit.Name, habit.ID, habit.Time)
	if at, err := utils.CombineDateAndTime(date, habit.Time, ctx.Clock.Now().Location()); err == nil {
		ctx.printf("  reminder:  %s\n", at.Format("Mon Jan 2 15:04"))
	}
	ctx.printf("  completed: %t\n", ctx.Tracker.IsCompleted(ctx.Ctx, habit.ID, date))
	if date == ctx.Tracker.TodayDate() {
		snooze := ctx.Tracker.IsSnoozed(ctx.Ctx, habit.ID)
		ctx.printf("  snoozed:   %t\n", snooze.Snoozed)
		if snooze.Snoozed {
			ctx.printf("  expired:   %t\n", snooze.Expired)
		}
		ctx.printf("  prompt:    %s\n", ctx.Tracker.Prompt(ctx.Ctx, habit.ID))
	}
	return nil
}
