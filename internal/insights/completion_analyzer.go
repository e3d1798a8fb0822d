package insights

import (
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

// Tally counts completed and skipped entries
type Tally struct {
	Completed int
	Skipped   int
}

func (t *Tally) add(entry models.HistoryEntry) {
	if entry.IsCompleted() {
		t.Completed++
	} else {
		t.Skipped++
	}
}

// Total returns the number of recorded entries
func (t Tally) Total() int {
	return t.Completed + t.Skipped
}

// Rate returns the completion rate in [0,1], or 0 when nothing was recorded
func (t Tally) Rate() float64 {
	if t.Total() == 0 {
		return 0
	}
	return float64(t.Completed) / float64(t.Total())
}

// CompletionStats breaks a task's completion rate down by start hour and weekday
type CompletionStats struct {
	Tally
	ByHour map[int]*Tally
	ByDay  map[time.Weekday]*Tally
}

// AnalyzeCompletion tallies completions and skips per task. There is no sample
// gate here; the completion insight generator applies its own thresholds.
func AnalyzeCompletion(history []models.HistoryEntry, tasks []models.Task) map[string]*CompletionStats {
	known := models.NewTaskIndex(tasks)
	stats := make(map[string]*CompletionStats)
	for _, entry := range history {
		if _, ok := known.Lookup(entry.TaskID); !ok {
			continue
		}
		cs, ok := stats[entry.TaskID]
		if !ok {
			cs = &CompletionStats{
				ByHour: make(map[int]*Tally),
				ByDay:  make(map[time.Weekday]*Tally),
			}
			stats[entry.TaskID] = cs
		}
		cs.add(entry)

		if minutes, err := utils.ParseTimeToMinutes(entry.StartTime); err == nil {
			hour := minutes / constants.MinutesPerHour
			if cs.ByHour[hour] == nil {
				cs.ByHour[hour] = &Tally{}
			}
			cs.ByHour[hour].add(entry)
		}
		if day, ok := entry.Weekday(); ok {
			if cs.ByDay[day] == nil {
				cs.ByDay[day] = &Tally{}
			}
			cs.ByDay[day].add(entry)
		}
	}
	return stats
}
