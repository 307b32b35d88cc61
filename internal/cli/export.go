package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/diacare/internal/export"
)

type ExportCmd struct {
	Format string `help:"Output format: yaml or json." enum:"yaml,yml,json" default:"yaml"`
	Out    string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	snap, err := export.Take(ctx.Ctx, ctx.Store, ctx.Clock.Now())
	if err != nil {
		return err
	}

	if c.Out == "" {
		return export.Write(ctx.Out, snap, format)
	}

	f, err := os.OpenFile(c.Out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, snap, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	ctx.printf("✓ Exported %d documents to %s\n", len(snap.Documents), c.Out)
	return nil
}

type ImportCmd struct {
	File   string `arg:"" help:"Export file to import." type:"existingfile"`
	Format string `help:"Input format: yaml or json." enum:"yaml,yml,json" default:"yaml"`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	snap, err := export.Read(f, format)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Overwrite %d documents with the contents of %s?", len(snap.Documents), c.File))
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	n, err := export.Apply(ctx.Ctx, ctx.Store, snap)
	if err != nil {
		return err
	}
	ctx.printf("✓ Imported %d documents\n", n)
	return nil
}
