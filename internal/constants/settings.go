package constants

const (
	// Environment variables
	EnvDBConnection = "DIACARE_DB_CONNECTION"
	EnvTimezone     = "DIACARE_TIMEZONE"

	// Default profile / notification values
	DefaultProfileName  = "Friend"
	DefaultSoundName    = "default"
	OnboardingDoneValue = "true"

	// Blood sugar units and meal contexts
	UnitMgDL         = "mg/dL"
	UnitMmolL        = "mmol/L"
	MealFasting      = "fasting"
	MealBeforeMeal   = "before_meal"
	MealAfterMeal    = "after_meal"
	MealBedtime      = "bedtime"
	DefaultRecentLog = 7
)
