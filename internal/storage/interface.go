package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/cadence/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
	// GetSetting returns the raw value stored under key; ok is false when the
	// key has never been set.
	GetSetting(key string) (value string, ok bool, err error)
	SetSetting(key, value string) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetAllTasksIncludingDeleted() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// History
	AddHistoryEntry(models.HistoryEntry) error
	GetAllHistory() ([]models.HistoryEntry, error)

	// Schedule
	AddScheduledInstance(models.ScheduledInstance) error
	GetAllScheduledInstances() ([]models.ScheduledInstance, error)
	GetScheduledInstancesForDate(date string) ([]models.ScheduledInstance, error)

	// Patterns
	GetAllPatterns() ([]models.Pattern, error)
	// SavePattern inserts the pattern or replaces the stored pattern with the same id.
	SavePattern(models.Pattern) (models.Pattern, error)

	// Utils
	GetConfigPath() string
}

// SettingReader is the read half of the key/value settings table
type SettingReader interface {
	GetSetting(key string) (value string, ok bool, err error)
}

// SettingWriter is the write half of the key/value settings table
type SettingWriter interface {
	SetSetting(key, value string) error
}

// GetJSONSetting decodes the JSON value stored under key, returning def when
// the key is unset or empty.
func GetJSONSetting[T any](r SettingReader, key string, def T) (T, error) {
	raw, ok, err := r.GetSetting(key)
	if err != nil {
		return def, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	if !ok || raw == "" {
		return def, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return v, nil
}

// SetJSONSetting encodes v as JSON and stores it under key
func SetJSONSetting[T any](w SettingWriter, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	return w.SetSetting(key, string(raw))
}
