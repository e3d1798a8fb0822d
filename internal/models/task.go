package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/cadence/internal/constants"
)

type Task struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Category        constants.TaskCategory `json:"category"`
	DefaultDuration int                    `json:"default_duration"`     // minutes
	DeletedAt       *string                `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t.DefaultDuration <= 0 {
		return fmt.Errorf("default duration must be positive, got %d", t.DefaultDuration)
	}
	if !IsValidCategory(t.Category) {
		return fmt.Errorf("invalid category %q", t.Category)
	}
	return nil
}

// IsValidCategory reports whether c is one of the fixed task categories
func IsValidCategory(c constants.TaskCategory) bool {
	for _, known := range constants.TaskCategories {
		if c == known {
			return true
		}
	}
	return false
}

// TaskIndex maps task ids to tasks for lookups that may miss
type TaskIndex map[string]Task

func NewTaskIndex(tasks []Task) TaskIndex {
	idx := make(TaskIndex, len(tasks))
	for _, t := range tasks {
		idx[t.ID] = t
	}
	return idx
}

// Lookup returns the task with the given id, if it is still in the catalog
func (idx TaskIndex) Lookup(id string) (Task, bool) {
	t, ok := idx[id]
	return t, ok
}
