package insights

import (
	"sort"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

// AnalyzeFrequency measures how often each task is completed per week and on
// which weekdays. The weekly rate is taken over the span between the first and
// last history date, so at least two distinct dates are required.
func AnalyzeFrequency(history []models.HistoryEntry, tasks []models.Task) []models.Pattern {
	first, last, distinct := dateSpan(history)
	if distinct < constants.FrequencyMinDistinctDates {
		return nil
	}
	totalDays, err := utils.DaysBetween(first, last)
	if err != nil || totalDays < 1 {
		totalDays = 1
	}
	totalWeeks := float64(totalDays) / constants.DaysPerWeek

	byTask := completedByTask(history)

	var patterns []models.Pattern
	for _, task := range tasks {
		entries := byTask[task.ID]
		if len(entries) == 0 {
			continue
		}

		dates := make(map[string]struct{})
		var dayCounts [constants.DaysPerWeek]int
		for _, entry := range entries {
			dates[entry.Date] = struct{}{}
			if day, ok := entry.Weekday(); ok {
				dayCounts[day]++
			}
		}

		count := len(entries)
		stats := models.FrequencyStats{
			TotalOccurrences: count,
			UniqueDays:       len(dates),
			TimesPerWeek:     utils.RoundTo(float64(count)/totalWeeks, 1),
			PreferredDays:    topDays(dayCounts, count),
		}
		conf := utils.Saturate(float64(count), constants.FrequencyConfidenceSamples)
		patterns = append(patterns, models.NewFrequencyPattern(task.ID, stats, conf))
	}
	return patterns
}

// topDays ranks weekdays by occurrence count, earliest weekday first on ties
func topDays(counts [constants.DaysPerWeek]int, total int) []models.DayPreference {
	var prefs []models.DayPreference
	for day := time.Sunday; day <= time.Saturday; day++ {
		if counts[day] == 0 {
			continue
		}
		prefs = append(prefs, models.DayPreference{
			Day:        int(day),
			Count:      counts[day],
			Percentage: utils.RoundTo(float64(counts[day])/float64(total)*100, 1),
		})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		return prefs[i].Count > prefs[j].Count
	})
	if len(prefs) > constants.FrequencyTopDays {
		prefs = prefs[:constants.FrequencyTopDays]
	}
	return prefs
}

// dateSpan returns the earliest and latest well-formed dates and the number of distinct dates
func dateSpan(history []models.HistoryEntry) (first, last string, distinct int) {
	seen := make(map[string]struct{})
	for _, entry := range history {
		if _, err := utils.ParseDate(entry.Date); err != nil {
			continue
		}
		seen[entry.Date] = struct{}{}
		if first == "" || entry.Date < first {
			first = entry.Date
		}
		if entry.Date > last {
			last = entry.Date
		}
	}
	return first, last, len(seen)
}
