package models

// Settings represents application-wide settings
type Settings struct {
	DayStart           string `json:"day_start"`            // the time the day starts, e.g. "07:00"
	DayEnd             string `json:"day_end"`              // the time the day ends, e.g. "22:00"
	DefaultDurationMin int    `json:"default_duration_min"` // default duration for new tasks in minutes
	Timezone           string `json:"timezone"`             // IANA timezone name or "Local"
}
