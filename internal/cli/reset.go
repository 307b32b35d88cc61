package cli

import "fmt"

type ResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		ctx.println("⚠️  This deletes every habit, completion, streak, reward and reading.")
		ok, err := ctx.confirm("Reset all data?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.ResetAll(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	ctx.println("✓ All data cleared")
	return nil
}
