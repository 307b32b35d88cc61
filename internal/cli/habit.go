package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/validation"
)

type HabitListCmd struct {
	EnabledOnly bool `help:"Show only enabled habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.Tracker.Habits(ctx.Ctx)
	if len(habits) == 0 {
		ctx.println("No habits found")
		return nil
	}

	ctx.println("Habits:")
	for _, h := range habits {
		if c.EnabledOnly && !h.Enabled {
			continue
		}
		status := "enabled"
		if !h.Enabled {
			status = "disabled"
		}
		ctx.printf("  [%s] %s  %s (%s, %s) id=%s\n", status, h.Time, h.Name, h.Frequency, h.Icon, h.ID)
	}
	return nil
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Time      string `help:"Daily reminder time (HH:MM)." required:""`
	Icon      string `help:"Icon name." default:"heart"`
	Frequency string `help:"How often: daily or weekly." default:"daily" enum:"daily,weekly"`
	Disabled  bool   `help:"Add the habit without enabling it."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(c.Name),
		Icon:      c.Icon,
		Time:      c.Time,
		Enabled:   !c.Disabled,
		Frequency: models.Frequency(c.Frequency),
	}
	if err := validation.Habit(habit); err != nil {
		return err
	}
	if err := ctx.Tracker.AddHabit(ctx.Ctx, habit); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	ctx.printf("Added habit: %s at %s\n", habit.Name, habit.Time)
	warnConflicts(ctx)
	return nil
}

type HabitEditCmd struct {
	Habit     string `arg:"" help:"Habit id or name."`
	Name      string `help:"New name."`
	Time      string `help:"New reminder time (HH:MM)."`
	Icon      string `help:"New icon name."`
	Frequency string `help:"New frequency: daily or weekly."`
}

func (c *HabitEditCmd) patch() models.HabitPatch {
	var p models.HabitPatch
	if c.Name != "" {
		p.Name = &c.Name
	}
	if c.Time != "" {
		p.Time = &c.Time
	}
	if c.Icon != "" {
		p.Icon = &c.Icon
	}
	if c.Frequency != "" {
		f := models.Frequency(c.Frequency)
		p.Frequency = &f
	}
	return p
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	patch := c.patch()
	if err := validation.HabitPatch(patch); err != nil {
		return err
	}
	return updateHabit(ctx, c.Habit, patch, "Updated")
}

type HabitEnableCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitEnableCmd) Run(ctx *Context) error {
	enabled := true
	return updateHabit(ctx, c.Habit, models.HabitPatch{Enabled: &enabled}, "Enabled")
}

type HabitDisableCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitDisableCmd) Run(ctx *Context) error {
	enabled := false
	return updateHabit(ctx, c.Habit, models.HabitPatch{Enabled: &enabled}, "Disabled")
}

func updateHabit(ctx *Context, ref string, patch models.HabitPatch, verb string) error {
	habit, err := ctx.resolveHabit(ref)
	if err != nil {
		return err
	}
	found, err := ctx.Tracker.UpdateHabit(ctx.Ctx, habit.ID, patch)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	if !found {
		return fmt.Errorf("habit not found: %s", ref)
	}
	ctx.printf("%s habit: %s\n", verb, patch.Apply(habit).Name)
	warnConflicts(ctx)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Delete habit %q? Its completion history is kept.", habit.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Delete cancelled.")
			return nil
		}
	}

	found, err := ctx.Tracker.RemoveHabit(ctx.Ctx, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if !found {
		return fmt.Errorf("habit not found: %s", c.Habit)
	}
	ctx.printf("Deleted habit: %s\n", habit.Name)
	return nil
}

// warnConflicts prints habit list problems without failing the command.
func warnConflicts(ctx *Context) {
	result := validation.New().ValidateHabits(ctx.Tracker.Habits(ctx.Ctx))
	if result.HasConflicts() {
		ctx.println()
		ctx.println(result.FormatReport())
	}
}
