package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
)

// HistoryEntry is an immutable record of one completed or skipped task instance
type HistoryEntry struct {
	ID              string                  `json:"id"`
	TaskID          string                  `json:"task_id"`
	Date            string                  `json:"date"`                 // YYYY-MM-DD format
	StartTime       string                  `json:"start_time,omitempty"` // HH:MM format
	EndTime         string                  `json:"end_time,omitempty"`   // HH:MM format
	PlannedDuration int                     `json:"planned_duration"`
	ActualDuration  *int                    `json:"actual_duration,omitempty"` // only when completed
	Status          constants.HistoryStatus `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
}

func (h *HistoryEntry) Validate() error {
	if h.TaskID == "" {
		return fmt.Errorf("history entry must reference a task")
	}
	if _, err := time.Parse(constants.DateFormat, h.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if h.StartTime != "" {
		if _, err := time.Parse(constants.TimeFormat, h.StartTime); err != nil {
			return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
		}
	}
	if h.EndTime != "" {
		if _, err := time.Parse(constants.TimeFormat, h.EndTime); err != nil {
			return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
		}
	}
	switch h.Status {
	case constants.StatusCompleted:
	case constants.StatusSkipped:
		if h.ActualDuration != nil {
			return fmt.Errorf("skipped entries cannot carry an actual duration")
		}
	default:
		return fmt.Errorf("invalid status %q (use completed or skipped)", h.Status)
	}
	if h.PlannedDuration < 0 {
		return fmt.Errorf("planned duration cannot be negative")
	}
	return nil
}

// IsCompleted returns true if the entry records a completion
func (h *HistoryEntry) IsCompleted() bool {
	return h.Status == constants.StatusCompleted
}

// Weekday returns the weekday of the entry's date; ok is false when the date is malformed
func (h *HistoryEntry) Weekday() (time.Weekday, bool) {
	d, err := time.Parse(constants.DateFormat, h.Date)
	if err != nil {
		return 0, false
	}
	return d.Weekday(), true
}
