package constants

import "time"

const (
	AppName            = "diacare"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/diacare/diacare.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "diacare-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "diacare-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.diacare"
	TrayAppExecutable      = "diacare-tray"

	// Reminder constants
	ReminderPollInterval = 10 * time.Second
	ReminderBurst        = 3
)

// Storage keys. Every document the application persists lives under one
// of these namespaced keys.
const (
	KeyPrefix               = "@diabetes_care/"
	KeyUserProfile          = KeyPrefix + "user_profile"
	KeyHabits               = KeyPrefix + "habits"
	KeyCompletedTasks       = KeyPrefix + "completed_tasks"
	KeyStreaks              = KeyPrefix + "streaks"
	KeyRewards              = KeyPrefix + "rewards"
	KeyPoints               = KeyPrefix + "points"
	KeySnoozedTasks         = KeyPrefix + "snoozed_tasks"
	KeyOnboardingComplete   = KeyPrefix + "onboarding_complete"
	KeyBloodSugarLogs       = KeyPrefix + "blood_sugar_logs"
	KeyNotificationSettings = KeyPrefix + "notification_settings"
)

// AllKeys lists every storage key, in the order ResetAll removes them.
var AllKeys = []string{
	KeyUserProfile,
	KeyHabits,
	KeyCompletedTasks,
	KeyStreaks,
	KeyRewards,
	KeyPoints,
	KeySnoozedTasks,
	KeyOnboardingComplete,
	KeyBloodSugarLogs,
	KeyNotificationSettings,
}
