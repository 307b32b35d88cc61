package cli

import (
	"fmt"
	"strings"
)

type PointsShowCmd struct{}

func (c *PointsShowCmd) Run(ctx *Context) error {
	p := ctx.Tracker.Points(ctx.Ctx)
	ctx.printf("Total points:   %s\n", ctx.number(p.TotalPoints))
	ctx.printf("Earned today:   %s\n", ctx.number(p.EarnedToday))
	ctx.printf("Lost today:     %s\n", ctx.number(p.LostToday))
	if p.PendingRecovery > 0 {
		ctx.printf("Recoverable:    %s (run 'diacare points recover')\n", ctx.number(p.PendingRecovery))
	}
	return nil
}

type PointsRecoverCmd struct{}

func (c *PointsRecoverCmd) Run(ctx *Context) error {
	before := ctx.Tracker.Points(ctx.Ctx).PendingRecovery
	if before == 0 {
		ctx.println("Nothing to recover.")
		return nil
	}
	p, err := ctx.Tracker.RecoverPoints(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to recover points: %w", err)
	}
	ctx.printf("Recovered %s points. Total: %s\n", ctx.number(before), ctx.number(p.TotalPoints))
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	s := ctx.Tracker.Streaks(ctx.Ctx)
	ctx.printf("Current streak: %d days\n", s.CurrentStreak)
	ctx.printf("Longest streak: %d days\n", s.LongestStreak)
	ctx.printf("Perfect days:   %d\n", s.TotalCompletedDays)
	if last := s.LastCompleted(); last != "" {
		ctx.printf("Last perfect:   %s\n", last)
	}
	return nil
}

type RewardsCmd struct{}

func (c *RewardsCmd) Run(ctx *Context) error {
	for _, r := range ctx.Tracker.RewardCatalog(ctx.Ctx) {
		if r.Unlocked {
			ctx.println(doneStyle.Render(fmt.Sprintf("★ %-18s unlocked %s", r.Name, r.UnlockedAt)))
		} else {
			ctx.println(mutedStyle.Render(fmt.Sprintf("☆ %-18s %s", r.Name, r.Requirement)))
		}
	}
	return nil
}

type MissedCmd struct{}

func (c *MissedCmd) Run(ctx *Context) error {
	missed := ctx.Tracker.MissedYesterday(ctx.Ctx)
	if len(missed) == 0 {
		ctx.println("Nothing missed yesterday.")
		return nil
	}

	names := make([]string, 0, len(missed))
	for _, id := range missed {
		if h, ok := ctx.Tracker.Habit(ctx.Ctx, id); ok {
			names = append(names, h.Name)
		} else {
			names = append(names, id)
		}
	}
	ctx.printf("Missed yesterday (%d): %s\n", len(missed), strings.Join(names, ", "))
	return nil
}
