package cli

import (
	"github.com/julianstephens/diacare/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	ctx.println("Validating habits...")
	result := validation.New().ValidateHabits(ctx.Tracker.Habits(ctx.Ctx))

	ctx.println()
	ctx.println(result.FormatReport())

	// Conflicts are reported, not treated as failures.
	return nil
}
