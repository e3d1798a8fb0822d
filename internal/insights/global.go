package insights

import (
	"fmt"
	"math"
	"sort"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

// GlobalInsights produces schedule-wide insights that are not tied to one task:
// idle gaps in the schedule, the peak start hour, and weekday/weekend drift.
func GlobalInsights(history []models.HistoryEntry, schedule []models.ScheduledInstance) []models.Insight {
	var out []models.Insight
	if in, ok := deadTimeInsight(schedule); ok {
		out = append(out, in)
	}
	if in, ok := peakWindowInsight(history); ok {
		out = append(out, in)
	}
	if in, ok := weekdayWeekendInsight(history); ok {
		out = append(out, in)
	}
	return out
}

// deadTimeInsight averages the idle gaps between consecutive scheduled
// instances on each day. Back-to-back and overlapping pairs count as a zero gap.
func deadTimeInsight(schedule []models.ScheduledInstance) (models.Insight, bool) {
	type slot struct{ start, end int }
	byDate := make(map[string][]slot)
	for _, inst := range schedule {
		start, err := utils.ParseTimeToMinutes(inst.StartTime)
		if err != nil {
			continue
		}
		byDate[inst.Date] = append(byDate[inst.Date], slot{start: start, end: start + inst.Duration})
	}

	var gaps []float64
	for _, slots := range byDate {
		sort.Slice(slots, func(i, j int) bool { return slots[i].start < slots[j].start })
		for i := 1; i < len(slots); i++ {
			gap := slots[i].start - slots[i-1].end
			gaps = append(gaps, math.Max(0, float64(gap)))
		}
	}
	if len(gaps) == 0 {
		return models.Insight{}, false
	}
	avg := utils.Mean(gaps)
	if avg <= constants.DeadTimeMinAverageGapMin {
		return models.Insight{}, false
	}
	return models.Insight{
		Type:  constants.InsightOptimization,
		Title: "Dead time between tasks",
		Text: fmt.Sprintf("Your scheduled tasks are %.0f min apart on average. Grouping them could free up longer blocks.",
			avg),
		Priority: constants.DeadTimePriority,
	}, true
}

// peakWindowInsight finds the hour in which completed tasks most often start
func peakWindowInsight(history []models.HistoryEntry) (models.Insight, bool) {
	var byHour [24]int
	total := 0
	for _, entry := range history {
		if !entry.IsCompleted() {
			continue
		}
		minutes, err := utils.ParseTimeToMinutes(entry.StartTime)
		if err != nil {
			continue
		}
		byHour[minutes/constants.MinutesPerHour]++
		total++
	}
	if total < constants.PeakWindowMinCompletions {
		return models.Insight{}, false
	}
	peak := 0
	for h := 1; h < 24; h++ {
		if byHour[h] > byHour[peak] {
			peak = h
		}
	}
	return models.Insight{
		Type:  constants.InsightInsight,
		Title: "Peak productivity window",
		Text: fmt.Sprintf("You start the most tasks between %s and %s (%d of %d completions).",
			utils.MinutesToTime(peak*constants.MinutesPerHour), utils.MinutesToTime((peak+1)*constants.MinutesPerHour),
			byHour[peak], total),
		Priority: constants.PeakWindowPriority,
	}, true
}

// weekdayWeekendInsight compares completion rates on weekdays and weekends
func weekdayWeekendInsight(history []models.HistoryEntry) (models.Insight, bool) {
	var weekday, weekend Tally
	for _, entry := range history {
		day, ok := entry.Weekday()
		if !ok {
			continue
		}
		if utils.IsWeekend(day) {
			weekend.add(entry)
		} else {
			weekday.add(entry)
		}
	}
	if weekday.Total() < constants.WeekdayWeekendMinWeekday || weekend.Total() < constants.WeekdayWeekendMinWeekend {
		return models.Insight{}, false
	}
	weekdayPct := weekday.Rate() * 100
	weekendPct := weekend.Rate() * 100
	if math.Abs(weekdayPct-weekendPct) <= constants.WeekdayWeekendMinDiffPoints {
		return models.Insight{}, false
	}

	better, worse := "weekdays", "weekends"
	hi, lo := weekdayPct, weekendPct
	if weekendPct > weekdayPct {
		better, worse = worse, better
		hi, lo = lo, hi
	}
	return models.Insight{
		Type:     constants.InsightInsight,
		Title:    fmt.Sprintf("You follow through more on %s", better),
		Text:     fmt.Sprintf("Completion rate is %.0f%% on %s versus %.0f%% on %s.", hi, better, lo, worse),
		Priority: constants.WeekdayWeekendPriority,
	}, true
}
