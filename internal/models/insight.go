package models

import "github.com/julianstephens/cadence/internal/constants"

// InsightAction is the machine-readable suggestion attached to an actionable insight
type InsightAction struct {
	Type              constants.ActionType `json:"type"`
	SuggestedDuration int                  `json:"suggested_duration,omitempty"`
	SuggestedTime     string               `json:"suggested_time,omitempty"` // HH:MM format
}

// Insight is a ranked, human-readable suggestion. Insights are rebuilt on every
// analysis run and never stored.
type Insight struct {
	Type       constants.InsightType `json:"type"`
	Title      string                `json:"title"`
	Text       string                `json:"text"`
	TaskID     string                `json:"task_id,omitempty"`
	Priority   float64               `json:"priority"`
	Actionable bool                  `json:"actionable,omitempty"`
	Action     *InsightAction        `json:"action,omitempty"`
}

// RoutineSuggestion proposes a task and start time for a weekday
type RoutineSuggestion struct {
	TaskID        string                 `json:"task_id"`
	TaskName      string                 `json:"task_name"`
	Category      constants.TaskCategory `json:"category"`
	SuggestedTime string                 `json:"suggested_time"` // HH:MM format
	Duration      int                    `json:"duration"`
	Confidence    float64                `json:"confidence"`
	Reason        string                 `json:"reason"`
	DaySpecific   bool                   `json:"day_specific"`
}
