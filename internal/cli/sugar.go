package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/validation"
)

type SugarAddCmd struct {
	Value float64 `arg:"" help:"Reading value."`
	Unit  string  `help:"Unit: mg/dL or mmol/L." default:"mg/dL"`
	Meal  string  `help:"Meal context: fasting, before_meal, after_meal or bedtime." default:"fasting"`
	Notes string  `help:"Free-form notes."`
}

func (c *SugarAddCmd) Run(ctx *Context) error {
	if err := validation.BloodSugar(c.Value, c.Unit, c.Meal); err != nil {
		return err
	}
	entry := ctx.Tracker.NewBloodSugarLog(uuid.New().String(), c.Value, c.Unit, c.Meal, c.Notes)
	if err := ctx.Tracker.AddBloodSugarLog(ctx.Ctx, entry); err != nil {
		return fmt.Errorf("failed to log reading: %w", err)
	}
	ctx.printf("Logged %g %s (%s)\n", entry.Value, entry.Unit, entry.MealContext)

	target := ctx.Tracker.Profile(ctx.Ctx).TargetBloodSugar
	if target != nil && (entry.Value < target.Min || entry.Value > target.Max) {
		ctx.printf("Outside your target range of %g-%g.\n", target.Min, target.Max)
	}
	return nil
}

type SugarListCmd struct {
	Date string `help:"Only show readings from this date (YYYY-MM-DD or 'today')."`
	Days int    `help:"Show readings from the last N days." default:"7"`
}

func (c *SugarListCmd) Run(ctx *Context) error {
	var logs []models.BloodSugarLog
	if c.Date != "" {
		date := ctx.dateOrToday(c.Date)
		if err := validation.Date(date); err != nil {
			return err
		}
		logs = ctx.Tracker.BloodSugarLogsForDate(ctx.Ctx, date)
	} else {
		days := c.Days
		if days <= 0 {
			days = constants.DefaultRecentLog
		}
		logs = ctx.Tracker.RecentBloodSugarLogs(ctx.Ctx, days)
	}

	if len(logs) == 0 {
		ctx.println("No readings found")
		return nil
	}
	for _, l := range logs {
		line := fmt.Sprintf("%s  %6g %-6s %s", l.LoggedAt, l.Value, l.Unit, l.MealContext)
		if l.Notes != "" {
			line += "  " + l.Notes
		}
		ctx.println(line)
	}
	return nil
}
