package insights

import (
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

// AnalyzeDurations compares planned and actual durations of completed entries.
// Entries without an actual duration are ignored.
func AnalyzeDurations(history []models.HistoryEntry, tasks []models.Task) []models.Pattern {
	byTask := completedByTask(history)

	var patterns []models.Pattern
	for _, task := range tasks {
		var planned, actual []float64
		for _, entry := range byTask[task.ID] {
			if entry.ActualDuration == nil {
				continue
			}
			planned = append(planned, float64(entry.PlannedDuration))
			actual = append(actual, float64(*entry.ActualDuration))
		}
		n := len(actual)
		if n < constants.DurationMinSamples {
			continue
		}

		avgPlanned := utils.Mean(planned)
		avgActual := utils.Mean(actual)
		pct := 0.0
		if avgPlanned > 0 {
			pct = (avgActual - avgPlanned) / avgPlanned * 100
		}
		stats := models.DurationStats{
			AverageActual:     int(utils.RoundTo(avgActual, 0)),
			AveragePlanned:    int(utils.RoundTo(avgPlanned, 0)),
			Difference:        int(utils.RoundTo(avgActual-avgPlanned, 0)),
			PercentDifference: utils.RoundTo(pct, 1),
		}
		conf := utils.Saturate(float64(n), constants.DurationConfidenceSamples)
		patterns = append(patterns, models.NewDurationPattern(task.ID, stats, n, conf))
	}
	return patterns
}
