package entities

// RecoveryDayPlan is one milestone entry in the fixed recovery schedule.
// Only specific milestone days exist; the schedule is sparse, not interpolated.
type RecoveryDayPlan struct {
	Day         int      `json:"day"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Focus       string   `json:"focus"`
	Checklist   []string `json:"checklist"`
}
