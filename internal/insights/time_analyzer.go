package insights

import (
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

type timeSample struct {
	minutes float64
	day     time.Weekday
}

// AnalyzeTimes finds the usual start time of each task, overall and per weekday.
// A task needs at least three timed completions. The overall pattern is only
// emitted when the start times stay within an hour of each other; weekday
// patterns use a tighter bound.
func AnalyzeTimes(history []models.HistoryEntry, tasks []models.Task) []models.Pattern {
	byTask := completedByTask(history)

	var patterns []models.Pattern
	for _, task := range tasks {
		var samples []timeSample
		for _, entry := range byTask[task.ID] {
			minutes, err := utils.ParseTimeToMinutes(entry.StartTime)
			if err != nil {
				continue
			}
			day, ok := entry.Weekday()
			if !ok {
				continue
			}
			samples = append(samples, timeSample{minutes: float64(minutes), day: day})
		}
		if len(samples) < constants.TimeMinSamples {
			continue
		}

		if stats, ok := timeStats(samples, constants.TimeMaxStdDevMin); ok {
			conf := utils.Saturate(float64(len(samples)), constants.TimeConfidenceSamples)
			patterns = append(patterns, models.NewTimePattern(task.ID, stats, len(samples), conf))
		}

		byDay := make(map[time.Weekday][]timeSample)
		for _, s := range samples {
			byDay[s.day] = append(byDay[s.day], s)
		}
		for day := time.Sunday; day <= time.Saturday; day++ {
			daySamples := byDay[day]
			if len(daySamples) < constants.TimeDayMinSamples {
				continue
			}
			stats, ok := timeStats(daySamples, constants.TimeDayMaxStdDevMin)
			if !ok {
				continue
			}
			d := int(day)
			stats.DayOfWeek = &d
			conf := utils.Saturate(float64(len(daySamples)), constants.TimeDayConfidenceSamples)
			patterns = append(patterns, models.NewTimePattern(task.ID, stats, len(daySamples), conf))
		}
	}
	return patterns
}

// timeStats summarizes the samples; ok is false when they are too spread out
func timeStats(samples []timeSample, maxStdDev float64) (models.TimeStats, bool) {
	minutes := make([]float64, len(samples))
	for i, s := range samples {
		minutes[i] = s.minutes
	}
	sd := utils.StdDev(minutes)
	if sd >= maxStdDev {
		return models.TimeStats{}, false
	}
	mean := utils.Mean(minutes)
	return models.TimeStats{
		AverageTime:    utils.MinutesToTime(int(utils.RoundTo(mean, 0))),
		AverageMinutes: utils.RoundTo(mean, 1),
		Variance:       utils.RoundTo(sd, 1),
	}, true
}

// completedByTask groups completed entries by task id, preserving input order
func completedByTask(history []models.HistoryEntry) map[string][]models.HistoryEntry {
	byTask := make(map[string][]models.HistoryEntry)
	for _, entry := range history {
		if !entry.IsCompleted() {
			continue
		}
		byTask[entry.TaskID] = append(byTask[entry.TaskID], entry)
	}
	return byTask
}
