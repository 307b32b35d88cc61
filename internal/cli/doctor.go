package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/utils"
	"github.com/julianstephens/diacare/internal/validation"
)

// schemaReporter is implemented by the SQL backends.
type schemaReporter interface {
	SchemaVersions() (current, latest int, err error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	report := func(name string, err error, warnOnly bool) {
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", name)
		case warnOnly:
			ctx.printf("⚠ %s: WARNING\n   %v\n", name, err)
		default:
			ctx.printf("❌ %s: FAIL\n   Error: %v\n", name, err)
			hasError = true
		}
	}

	reachable := checkStoreReachable(ctx)
	report("Store reachable", reachable, false)
	report("Schema version", checkSchemaVersion(ctx), false)
	report("Backups present", checkBackupsPresent(ctx), true)

	if reachable == nil {
		report("Habit validation", checkHabits(ctx), true)
	} else {
		ctx.println("⊘ Habit validation: SKIPPED (store not reachable)")
	}
	report("Clock/timezone", checkClockTimezone(ctx), false)

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if _, err := ctx.Store.Keys(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	sr, ok := ctx.Store.(schemaReporter)
	if !ok {
		return nil
	}
	current, latest, err := sr.SchemaVersions()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'diacare backup create'")
	}
	return nil
}

func checkHabits(ctx *Context) error {
	result := validation.New().ValidateHabits(ctx.Tracker.Habits(ctx.Ctx))
	if result.HasConflicts() {
		return fmt.Errorf("%d habit conflict(s); run 'diacare validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := time.Parse(constants.DateFormat, ctx.Tracker.TodayDate()); err != nil {
		return fmt.Errorf("cannot compute today's date: %w", err)
	}
	if tz := os.Getenv(constants.EnvTimezone); tz != "" && !utils.ValidateTimezone(tz) {
		return fmt.Errorf("%s=%q is not a valid IANA timezone", constants.EnvTimezone, tz)
	}
	if now.Location() == time.UTC {
		ctx.println("   Note: timezone is UTC")
	}
	return nil
}
