package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/notifier"
	"github.com/julianstephens/diacare/internal/reminder"
)

type RemindScheduleCmd struct{}

func (c *RemindScheduleCmd) Run(ctx *Context) error {
	planner := reminder.NewPlanner()
	planner.HabitsChanged(ctx.Tracker.EnabledHabits(ctx.Ctx))

	schedule := planner.Schedule()
	if len(schedule) == 0 {
		ctx.println("No reminders scheduled")
		return nil
	}

	today := ctx.Tracker.TodayDate()
	for _, r := range schedule {
		line := fmt.Sprintf("%s  %s %s", r.Time, r.Icon, r.Name)
		if ctx.Tracker.IsCompleted(ctx.Ctx, r.HabitID, today) {
			line = doneStyle.Render(line + " (done)")
		}
		ctx.println(line)
	}

	if r, at, ok := planner.Next(ctx.Clock.Now()); ok {
		ctx.printf("\nNext: %s at %s\n", r.Name, at.Format("Mon 15:04"))
	}
	return nil
}

type RemindWatchCmd struct {
	Interval time.Duration `help:"How often to check for due reminders." default:"10s"`
}

func (c *RemindWatchCmd) Run(ctx *Context) error {
	runCtx, stop := signal.NotifyContext(ctx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	planner := reminder.NewPlanner()
	planner.HabitsChanged(ctx.Tracker.EnabledHabits(runCtx))
	if len(planner.Schedule()) == 0 {
		logger.Warn("No enabled habits have a valid reminder time")
	}

	// Other processes may edit habits while we run.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				planner.HabitsChanged(ctx.Tracker.EnabledHabits(runCtx))
			}
		}
	}()

	w := reminder.NewWatcher(planner, ctx.Tracker, notifier.New(), reminder.WithInterval(c.Interval))
	logger.Info("Watching for due reminders", "interval", c.Interval, "reminders", len(planner.Schedule()))
	ctx.println("Watching for reminders. Press Ctrl+C to stop.")

	if err := w.Run(runCtx); err != nil && err != context.Canceled {
		return fmt.Errorf("reminder watcher stopped: %w", err)
	}
	return nil
}
