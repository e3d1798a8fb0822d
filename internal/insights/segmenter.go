package insights

import "github.com/julianstephens/cadence/internal/models"

// Segments is the partition of history into everyday entries and entries that
// fall inside a special period.
type Segments struct {
	Normal []models.HistoryEntry
	Period []models.HistoryEntry
	// Breakdown groups the period entries by period category id
	Breakdown map[string][]models.HistoryEntry
}

// Segment partitions history by the configured special periods. Periods are
// scanned in order and the first one containing the entry's date wins.
func Segment(history []models.HistoryEntry, periods []models.SpecialPeriod) Segments {
	seg := Segments{Breakdown: make(map[string][]models.HistoryEntry)}
	for _, entry := range history {
		period, ok := findPeriod(entry.Date, periods)
		if !ok {
			seg.Normal = append(seg.Normal, entry)
			continue
		}
		seg.Period = append(seg.Period, entry)
		seg.Breakdown[period.CategoryID] = append(seg.Breakdown[period.CategoryID], entry)
	}
	return seg
}

func findPeriod(date string, periods []models.SpecialPeriod) (models.SpecialPeriod, bool) {
	for _, p := range periods {
		if p.Contains(date) {
			return p, true
		}
	}
	return models.SpecialPeriod{}, false
}
