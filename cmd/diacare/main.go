package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/diacare/internal/cli"
	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/config"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/errors"
	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/tracker"
	"github.com/julianstephens/diacare/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store path (.db for SQLite, .json for a JSON file) or PostgreSQL connection string without a password. Defaults to ~/.config/diacare/diacare.db." env:"DIACARE_CONFIG"`
	Timezone string `help:"IANA timezone used to decide what day it is." env:"DIACARE_TIMEZONE" default:"Local"`
	Debug    bool   `help:"Log debug output to stderr." env:"DIACARE_DEBUG"`
	Dedupe   bool   `help:"Ignore a second completion of the same habit on the same day."`

	Init     cli.InitCmd  `cmd:"" help:"Initialize diacare storage."`
	Tui      cli.TuiCmd   `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    cli.TodayCmd `cmd:"" help:"Show today's habits and progress."`
	Habit    struct {
		List    cli.HabitListCmd    `cmd:"" help:"List habits." default:"1"`
		Add     cli.HabitAddCmd     `cmd:"" help:"Add a habit."`
		Edit    cli.HabitEditCmd    `cmd:"" help:"Edit a habit."`
		Enable  cli.HabitEnableCmd  `cmd:"" help:"Enable a habit."`
		Disable cli.HabitDisableCmd `cmd:"" help:"Disable a habit."`
		Delete  cli.HabitDeleteCmd  `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Manage habits."`
	Task struct {
		Complete   cli.TaskCompleteCmd   `cmd:"" help:"Mark a habit done."`
		Uncomplete cli.TaskUncompleteCmd `cmd:"" help:"Undo a completion."`
		Do         cli.TaskDoCmd         `cmd:"" help:"Answer a reminder with 'do it now' or 'yes, done'."`
		Skip       cli.TaskSkipCmd       `cmd:"" help:"Skip a reminder and lose points."`
		Snooze     cli.TaskSnoozeCmd     `cmd:"" help:"Snooze a reminder."`
		Status     cli.TaskStatusCmd     `cmd:"" help:"Show a habit's status for a day."`
	} `cmd:"" help:"Track today's habits."`
	Points struct {
		Show    cli.PointsShowCmd    `cmd:"" help:"Show points." default:"1"`
		Recover cli.PointsRecoverCmd `cmd:"" help:"Win back points lost to skipped reminders."`
	} `cmd:"" help:"Show and recover points."`
	Streak  cli.StreakCmd  `cmd:"" help:"Show streaks."`
	Rewards cli.RewardsCmd `cmd:"" help:"Show rewards."`
	Missed  cli.MissedCmd  `cmd:"" help:"Show habits missed yesterday."`
	Sugar   struct {
		Add  cli.SugarAddCmd  `cmd:"" help:"Log a blood sugar reading."`
		List cli.SugarListCmd `cmd:"" help:"List blood sugar readings." default:"1"`
	} `cmd:"" help:"Log and review blood sugar readings."`
	Profile struct {
		Show cli.ProfileShowCmd `cmd:"" help:"Show the profile." default:"1"`
		Set  cli.ProfileSetCmd  `cmd:"" help:"Update the profile."`
	} `cmd:"" help:"Manage your profile."`
	Onboarding cli.OnboardingCmd `cmd:"" help:"Show or complete onboarding."`
	Notify     struct {
		Settings cli.NotifySettingsCmd `cmd:"" help:"Show or change notification settings." default:"1"`
		Test     cli.NotifyTestCmd     `cmd:"" help:"Send a test notification."`
	} `cmd:"" help:"Manage notifications."`
	Remind struct {
		Schedule cli.RemindScheduleCmd `cmd:"" help:"Show today's reminder schedule." default:"1"`
		Watch    cli.RemindWatchCmd    `cmd:"" help:"Deliver reminders until interrupted."`
	} `cmd:"" help:"Reminder schedule and delivery."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Export  cli.ExportCmd `cmd:"" help:"Export all data as YAML or JSON."`
	Import  cli.ImportCmd `cmd:"" help:"Import data from an export file."`
	Stats   cli.StatsCmd  `cmd:"" help:"Print progress metrics in Prometheus format."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Get    cli.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Reset    cli.ResetCmd    `cmd:"" help:"Delete all data."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate cli.ValidateCmd `cmd:"" help:"Check habits for conflicts."`
	DebugCmd struct {
		DBPath cli.DebugDBPathCmd `cmd:"" name:"db-path" help:"Show the store location."`
		Keys   cli.DebugKeysCmd   `cmd:"" help:"List stored document keys."`
		Dump   cli.DebugDumpCmd   `cmd:"" help:"Print a stored document."`
	} `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// needsNoStore lists commands that run before, or without, a loaded store.
func needsNoStore(command string) bool {
	return command == "init" || strings.HasPrefix(command, "keyring")
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
	}

	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily diabetes care habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	target, err := config.Resolve(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	configDir, err := target.ConfigDir()
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Resolved store", "backend", target.Backend, "location", target.Display(), "source", target.Source)

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatalf("invalid --timezone: %v", err)
	}

	store := target.Open()
	if !needsNoStore(kctx.Command()) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(context.Background(), target, store,
		tracker.WithClock(clock.System(loc)),
		tracker.WithDedupedCompletions(CLI.Dedupe),
		tracker.WithLogger(logger.Default()),
	)

	err = kctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}
