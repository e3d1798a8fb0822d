package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
)

// ScheduledInstance is a task placed on the calendar for a given day
type ScheduledInstance struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Date      string `json:"date"`       // YYYY-MM-DD format
	StartTime string `json:"start_time"` // HH:MM format
	Duration  int    `json:"duration"`   // minutes
}

func (s *ScheduledInstance) Validate() error {
	if s.TaskID == "" {
		return fmt.Errorf("scheduled instance must reference a task")
	}
	if _, err := time.Parse(constants.DateFormat, s.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if _, err := time.Parse(constants.TimeFormat, s.StartTime); err != nil {
		return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %d", s.Duration)
	}
	return nil
}
