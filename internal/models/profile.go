package models

// DiabetesType is the kind of diabetes recorded on the profile
type DiabetesType string

const (
	DiabetesType1       DiabetesType = "type1"
	DiabetesType2       DiabetesType = "type2"
	DiabetesPrediabetes DiabetesType = "prediabetes"
	DiabetesGestational DiabetesType = "gestational"
)

// BloodSugarRange is a target range in the user's preferred unit
type BloodSugarRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserProfile holds the user's personal details
type UserProfile struct {
	Name                 string           `json:"name"`
	AvatarURI            string           `json:"avatarUri,omitempty"`
	NotificationsEnabled bool             `json:"notificationsEnabled"`
	CreatedAt            string           `json:"createdAt"`
	DiabetesType         DiabetesType     `json:"diabetesType,omitempty"`
	DiagnosisDate        string           `json:"diagnosisDate,omitempty"`
	Medications          []string         `json:"medications,omitempty"`
	EmergencyContact     string           `json:"emergencyContact,omitempty"`
	DoctorName           string           `json:"doctorName,omitempty"`
	TargetBloodSugar     *BloodSugarRange `json:"targetBloodSugar,omitempty"`
}

// NotificationSettings controls reminder delivery
type NotificationSettings struct {
	Enabled   bool   `json:"enabled"`
	SoundName string `json:"soundName"`
	Vibrate   bool   `json:"vibrate"`
}

// BloodSugarLog is a single glucose reading
type BloodSugarLog struct {
	ID          string  `json:"id"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`        // mg/dL or mmol/L
	MealContext string  `json:"mealContext"` // fasting, before_meal, after_meal, bedtime
	Notes       string  `json:"notes,omitempty"`
	LoggedAt    string  `json:"loggedAt"`
	Date        string  `json:"date"`
}
