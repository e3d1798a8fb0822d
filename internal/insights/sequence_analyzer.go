package insights

import (
	"sort"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

type transition struct {
	from, to string
}

type transitionStats struct {
	count int
	gaps  []float64
}

// AnalyzeSequences finds tasks that are regularly completed one after another
// on the same day. Gaps of four hours or more are treated as unrelated and do
// not contribute to the average gap.
func AnalyzeSequences(history []models.HistoryEntry) []models.Pattern {
	var completed []models.HistoryEntry
	for _, entry := range history {
		if entry.IsCompleted() {
			completed = append(completed, entry)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		if completed[i].Date != completed[j].Date {
			return completed[i].Date < completed[j].Date
		}
		return completed[i].StartTime < completed[j].StartTime
	})

	transitions := make(map[transition]*transitionStats)
	for i := 1; i < len(completed); i++ {
		prev, cur := completed[i-1], completed[i]
		if prev.Date != cur.Date {
			continue
		}
		key := transition{from: prev.TaskID, to: cur.TaskID}
		ts, ok := transitions[key]
		if !ok {
			ts = &transitionStats{}
			transitions[key] = ts
		}
		ts.count++

		if prev.EndTime == "" || cur.StartTime == "" {
			continue
		}
		gap, err := utils.MinutesBetween(prev.EndTime, cur.StartTime)
		if err != nil || gap < 0 || gap >= constants.SequenceMaxGapMin {
			continue
		}
		ts.gaps = append(ts.gaps, float64(gap))
	}

	var patterns []models.Pattern
	for key, ts := range transitions {
		if ts.count < constants.SequenceMinCount {
			continue
		}
		stats := models.SequenceStats{FromTaskID: key.from, ToTaskID: key.to, Count: ts.count}
		if len(ts.gaps) > 0 {
			avg := int(utils.RoundTo(utils.Mean(ts.gaps), 0))
			stats.AverageGap = &avg
		}
		conf := utils.Saturate(float64(ts.count), constants.SequenceConfidenceSamples)
		patterns = append(patterns, models.NewSequencePattern(stats, conf))
	}

	sort.Slice(patterns, func(i, j int) bool {
		a, b := patterns[i].Sequence, patterns[j].Sequence
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.FromTaskID != b.FromTaskID {
			return a.FromTaskID < b.FromTaskID
		}
		return a.ToTaskID < b.ToTaskID
	})
	if len(patterns) > constants.SequenceMaxPatterns {
		patterns = patterns[:constants.SequenceMaxPatterns]
	}
	return patterns
}
