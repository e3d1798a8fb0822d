package insights

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

// ErrInvalidWeekday is returned when a weekday outside 0-6 is requested
var ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

// SuggestRoutineForDate proposes tasks for the weekday of a YYYY-MM-DD date
func (e *Engine) SuggestRoutineForDate(date string, tasks []models.Task) ([]models.RoutineSuggestion, error) {
	day, err := utils.WeekdayOf(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return e.SuggestRoutine(day, tasks)
}

// SuggestRoutine proposes tasks and start times for the given weekday from the
// persisted routine patterns. A task is suggested when it falls on that weekday
// often enough and a usual start time is known for it. When tasks is nil the
// catalog is loaded from the store. Suggestions are only proposals; the caller
// decides what to schedule.
func (e *Engine) SuggestRoutine(day time.Weekday, tasks []models.Task) ([]models.RoutineSuggestion, error) {
	if day < time.Sunday || day > time.Saturday {
		return nil, ErrInvalidWeekday
	}
	if tasks == nil {
		var err error
		if tasks, err = e.store.GetAllTasks(); err != nil {
			return nil, fmt.Errorf("failed to get tasks: %w", err)
		}
	}
	patterns, err := e.store.GetAllPatterns()
	if err != nil {
		return nil, fmt.Errorf("failed to get patterns: %w", err)
	}

	index := models.NewTaskIndex(tasks)
	general := make(map[string]models.Pattern)
	daySpecific := make(map[string]models.Pattern)
	var frequency []models.Pattern
	for _, p := range patterns {
		if !p.IsRoutine() {
			continue
		}
		switch p.Type {
		case constants.PatternFrequency:
			frequency = append(frequency, p)
		case constants.PatternTime:
			general[p.TaskID] = p
		case constants.PatternTimeDay:
			if p.Time != nil && p.Time.DayOfWeek != nil && *p.Time.DayOfWeek == int(day) {
				daySpecific[p.TaskID] = p
			}
		}
	}

	var suggestions []models.RoutineSuggestion
	for _, freq := range frequency {
		task, ok := index.Lookup(freq.TaskID)
		if !ok || freq.Frequency == nil {
			continue
		}
		pref, ok := freq.Frequency.PreferredDay(day)
		if !ok || pref.Percentage < constants.RoutineMinDayShare {
			continue
		}

		s := models.RoutineSuggestion{
			TaskID:     task.ID,
			TaskName:   task.Name,
			Category:   task.Category,
			Duration:   task.DefaultDuration,
			Confidence: freq.Confidence,
		}
		if tp, ok := daySpecific[task.ID]; ok {
			s.SuggestedTime = tp.Time.AverageTime
			s.DaySpecific = true
			s.Confidence = math.Min(freq.Confidence*constants.RoutineDaySpecificBoost, 1)
			s.Reason = fmt.Sprintf("You usually do this on %ss around %s (%.0f%% of occurrences fall on %ss)",
				day, s.SuggestedTime, pref.Percentage, day)
		} else if tp, ok := general[task.ID]; ok && tp.Time != nil {
			s.SuggestedTime = tp.Time.AverageTime
			s.Reason = fmt.Sprintf("Based on your habitual time of %s; %.0f%% of occurrences fall on %ss",
				s.SuggestedTime, pref.Percentage, day)
		} else {
			continue
		}
		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].SuggestedTime != suggestions[j].SuggestedTime {
			return suggestions[i].SuggestedTime < suggestions[j].SuggestedTime
		}
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions, nil
}
