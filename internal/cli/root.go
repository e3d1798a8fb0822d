package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/insights"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
	"github.com/julianstephens/cadence/internal/utils"
)

type Context struct {
	Store storage.Provider
}

// Engine builds an insight engine over the context's store
func (c *Context) Engine() *insights.Engine {
	return insights.NewEngine(c.Store)
}

// Today returns today's date in the configured timezone
func (c *Context) Today() (string, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return utils.GetTodayFromSettings(settings)
}

// ResolveDate returns date unchanged after validating it, or today when empty
func (c *Context) ResolveDate(date string) (string, error) {
	if date == "" {
		return c.Today()
	}
	if _, err := utils.ParseDate(date); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return date, nil
}

// TaskByRef finds an active task by id or, failing that, by case-insensitive name
func (c *Context) TaskByRef(ref string) (models.Task, error) {
	if task, err := c.Store.GetTask(ref); err == nil {
		return task, nil
	}
	tasks, err := c.Store.GetAllTasks()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to get tasks: %w", err)
	}
	var match []models.Task
	for _, t := range tasks {
		if strings.EqualFold(t.Name, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return models.Task{}, fmt.Errorf("task %q: %w", ref, storage.ErrNotFound)
	case 1:
		return match[0], nil
	default:
		return models.Task{}, fmt.Errorf("task name %q is ambiguous (%d matches), use the task ID", ref, len(match))
	}
}

var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts a day name, its three-letter abbreviation, or 0-6 (0=Sunday)
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if wd, ok := weekdayNames[s]; ok {
		return wd, nil
	}
	if num, err := strconv.Atoi(s); err == nil && num >= 0 && num < constants.DaysPerWeek {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}
