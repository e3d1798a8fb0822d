package insights

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

// TimeInsights reports habitual start times from time and time_day patterns
func TimeInsights(patterns []models.Pattern, tasks models.TaskIndex) []models.Insight {
	var out []models.Insight
	for _, p := range patterns {
		task, ok := tasks.Lookup(p.TaskID)
		if !ok || p.Time == nil {
			continue
		}
		switch p.Type {
		case constants.PatternTime:
			if p.Confidence <= constants.TimeInsightMinConfidence {
				continue
			}
			out = append(out, models.Insight{
				Type:  constants.InsightPattern,
				Title: fmt.Sprintf("Habitual time for %s", task.Name),
				Text: fmt.Sprintf("You usually start %s around %s (±%.0f min over %d sessions). Scheduling it then keeps your routine intact.",
					task.Name, p.Time.AverageTime, p.Time.Variance, p.SampleSize),
				TaskID:     task.ID,
				Priority:   p.Confidence * constants.TimeInsightPriorityWeight,
				Actionable: true,
				Action: &models.InsightAction{
					Type:          constants.ActionSuggestTime,
					SuggestedTime: p.Time.AverageTime,
				},
			})
		case constants.PatternTimeDay:
			if p.Confidence <= constants.TimeDayInsightMinConfidence || p.Time.DayOfWeek == nil {
				continue
			}
			day := time.Weekday(*p.Time.DayOfWeek)
			out = append(out, models.Insight{
				Type:     constants.InsightPattern,
				Title:    fmt.Sprintf("%s on %ss", task.Name, day),
				Text:     fmt.Sprintf("On %ss you tend to start %s at %s.", day, task.Name, p.Time.AverageTime),
				TaskID:   task.ID,
				Priority: p.Confidence * constants.TimeDayInsightPriorityWeight,
			})
		}
	}
	return out
}

// DurationInsights flags tasks whose actual duration drifts from the plan.
// Underestimates come with a suggested duration; overestimates are informational.
func DurationInsights(patterns []models.Pattern, tasks models.TaskIndex) []models.Insight {
	var out []models.Insight
	for _, p := range patterns {
		task, ok := tasks.Lookup(p.TaskID)
		if !ok || p.Duration == nil {
			continue
		}
		d := p.Duration
		pct := math.Abs(d.PercentDifference)
		if pct <= constants.DurationInsightMinPercent || p.SampleSize < constants.DurationInsightMinSamples {
			continue
		}
		switch {
		case d.PercentDifference > 0:
			out = append(out, models.Insight{
				Type:  constants.InsightOptimization,
				Title: fmt.Sprintf("%s takes longer than planned", task.Name),
				Text: fmt.Sprintf("%s runs %.0f%% over plan: %d min on average against %d min planned. Consider planning %d min.",
					task.Name, pct, d.AverageActual, d.AveragePlanned, d.AverageActual),
				TaskID:     task.ID,
				Priority:   math.Min(pct/constants.DurationUnderPriorityDivisor, constants.DurationUnderPriorityCap),
				Actionable: true,
				Action: &models.InsightAction{
					Type:              constants.ActionAdjustDuration,
					SuggestedDuration: d.AverageActual,
				},
			})
		case d.AveragePlanned-d.AverageActual > constants.DurationOverestimateMinMinutes:
			out = append(out, models.Insight{
				Type:  constants.InsightInsight,
				Title: fmt.Sprintf("%s finishes early", task.Name),
				Text: fmt.Sprintf("%s usually takes %d min, %.0f%% less than the %d min you plan. That time could go elsewhere.",
					task.Name, d.AverageActual, pct, d.AveragePlanned),
				TaskID:   task.ID,
				Priority: math.Min(pct/constants.DurationOverPriorityDivisor, constants.DurationOverPriorityCap),
			})
		}
	}
	return out
}

// FrequencyInsights reports a weekday preference when one day dominates
func FrequencyInsights(patterns []models.Pattern, tasks models.TaskIndex) []models.Insight {
	var out []models.Insight
	for _, p := range patterns {
		task, ok := tasks.Lookup(p.TaskID)
		if !ok || p.Frequency == nil || len(p.Frequency.PreferredDays) == 0 {
			continue
		}
		f := p.Frequency
		if f.PreferredDays[0].Percentage <= constants.FrequencyInsightMinTopShare {
			continue
		}
		var days []string
		for _, pref := range f.PreferredDays {
			if pref.Percentage > constants.FrequencyInsightListedShare {
				days = append(days, fmt.Sprintf("%ss (%.0f%%)", time.Weekday(pref.Day), pref.Percentage))
			}
		}
		out = append(out, models.Insight{
			Type:  constants.InsightPattern,
			Title: fmt.Sprintf("Preferred days for %s", task.Name),
			Text: fmt.Sprintf("You do %s about %.1f times a week, mostly on %s.",
				task.Name, f.TimesPerWeek, joinList(days)),
			TaskID:   task.ID,
			Priority: p.Confidence * constants.FrequencyInsightPriorityWeight,
		})
	}
	return out
}

// SequenceInsights describes the strongest task-after-task habits. Patterns
// are expected in ranked order.
func SequenceInsights(patterns []models.Pattern, tasks models.TaskIndex) []models.Insight {
	var out []models.Insight
	for _, p := range patterns {
		if len(out) == constants.SequenceInsightMaxCount {
			break
		}
		if p.Sequence == nil || p.Confidence <= constants.SequenceInsightMinConfidence {
			continue
		}
		from, ok := tasks.Lookup(p.Sequence.FromTaskID)
		if !ok {
			continue
		}
		to, ok := tasks.Lookup(p.Sequence.ToTaskID)
		if !ok {
			continue
		}
		when := "afterwards"
		if gap := p.Sequence.AverageGap; gap != nil {
			if *gap < constants.SequenceInsightRightAfterMin {
				when = "right after"
			} else {
				when = fmt.Sprintf("~%d min later", *gap)
			}
		}
		out = append(out, models.Insight{
			Type:     constants.InsightPattern,
			Title:    fmt.Sprintf("%s → %s", from.Name, to.Name),
			Text:     fmt.Sprintf("After %s you often do %s %s (%d times).", from.Name, to.Name, when, p.Sequence.Count),
			TaskID:   from.ID,
			Priority: p.Confidence * constants.SequenceInsightPriorityWeight,
		})
	}
	return out
}

// CompletionInsights looks for better hours or days for tasks that are often
// skipped, and celebrates tasks that are almost always completed.
func CompletionInsights(stats map[string]*CompletionStats, tasks []models.Task) []models.Insight {
	var out []models.Insight
	for _, task := range tasks {
		cs, ok := stats[task.ID]
		if !ok || cs.Total() < constants.CompletionInsightMinTotal {
			continue
		}
		rate := cs.Rate()

		if rate < constants.CompletionLowRate && cs.Total() >= constants.CompletionLowMinTotal {
			if hour, hourRate, ok := bestHour(cs.ByHour); ok && hourRate-rate > constants.CompletionBetterHourMargin {
				suggested := fmt.Sprintf("%02d:00", hour)
				out = append(out, models.Insight{
					Type:  constants.InsightOptimization,
					Title: fmt.Sprintf("Better time for %s", task.Name),
					Text: fmt.Sprintf("You complete %s only %.0f%% of the time, but %.0f%% when you start around %s.",
						task.Name, rate*100, hourRate*100, suggested),
					TaskID:     task.ID,
					Priority:   constants.CompletionBetterHourPriority,
					Actionable: true,
					Action: &models.InsightAction{
						Type:          constants.ActionSuggestTime,
						SuggestedTime: suggested,
					},
				})
			}
			if day, dayRate, ok := bestDay(cs.ByDay); ok && dayRate-rate > constants.CompletionBetterDayMargin {
				out = append(out, models.Insight{
					Type:  constants.InsightOptimization,
					Title: fmt.Sprintf("Better day for %s", task.Name),
					Text: fmt.Sprintf("%s gets done %.0f%% of the time on %ss versus %.0f%% overall.",
						task.Name, dayRate*100, day, rate*100),
					TaskID:   task.ID,
					Priority: constants.CompletionBetterDayPriority,
				})
			}
		}

		if rate > constants.CompletionHighRate && cs.Total() >= constants.CompletionHighMinTotal {
			out = append(out, models.Insight{
				Type:     constants.InsightAchievement,
				Title:    fmt.Sprintf("%s is locked in", task.Name),
				Text:     fmt.Sprintf("You completed %s %d of %d times (%.0f%%).", task.Name, cs.Completed, cs.Total(), rate*100),
				TaskID:   task.ID,
				Priority: constants.CompletionAchievementPriority,
			})
		}
	}
	return out
}

// bestHour returns the hour bucket with the highest completion rate, earliest hour on ties
func bestHour(buckets map[int]*Tally) (hour int, rate float64, ok bool) {
	for h := 0; h < 24; h++ {
		t := buckets[h]
		if t == nil || t.Total() < constants.CompletionBucketMinSamples {
			continue
		}
		if !ok || t.Rate() > rate {
			hour, rate, ok = h, t.Rate(), true
		}
	}
	return hour, rate, ok
}

// bestDay returns the weekday bucket with the highest completion rate, earliest day on ties
func bestDay(buckets map[time.Weekday]*Tally) (day time.Weekday, rate float64, ok bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		t := buckets[d]
		if t == nil || t.Total() < constants.CompletionBucketMinSamples {
			continue
		}
		if !ok || t.Rate() > rate {
			day, rate, ok = d, t.Rate(), true
		}
	}
	return day, rate, ok
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
