package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

// fakeStore is an in-memory Store for engine tests
type fakeStore struct {
	tasks    []models.Task
	history  []models.HistoryEntry
	schedule []models.ScheduledInstance
	settings map[string]string

	patterns  map[string]models.Pattern
	order     []string
	saveCalls int
	// failSaveAt makes the n-th SavePattern call (1-based) fail; 0 disables it
	failSaveAt int
	historyErr error
}

func newFakeStore(tasks []models.Task, history []models.HistoryEntry) *fakeStore {
	return &fakeStore{
		tasks:    tasks,
		history:  history,
		settings: make(map[string]string),
		patterns: make(map[string]models.Pattern),
	}
}

func (f *fakeStore) GetAllTasks() ([]models.Task, error) { return f.tasks, nil }

func (f *fakeStore) GetAllHistory() ([]models.HistoryEntry, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeStore) GetAllScheduledInstances() ([]models.ScheduledInstance, error) {
	return f.schedule, nil
}

func (f *fakeStore) GetAllPatterns() ([]models.Pattern, error) {
	out := make([]models.Pattern, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.patterns[id])
	}
	return out, nil
}

func (f *fakeStore) SavePattern(p models.Pattern) (models.Pattern, error) {
	f.saveCalls++
	if f.failSaveAt > 0 && f.saveCalls == f.failSaveAt {
		return models.Pattern{}, errors.New("disk full")
	}
	if _, ok := f.patterns[p.ID]; !ok {
		f.order = append(f.order, p.ID)
	}
	f.patterns[p.ID] = p
	return p, nil
}

func (f *fakeStore) GetSetting(key string) (string, bool, error) {
	v, ok := f.settings[key]
	return v, ok, nil
}

func (f *fakeStore) setPeriods(periods []models.SpecialPeriod, categories []models.PeriodCategory) {
	f.settings[constants.SettingSpecialPeriods] = mustJSON(periods)
	f.settings[constants.SettingPeriodCategories] = mustJSON(categories)
}

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

var epoch = time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC) // a Sunday

// day returns the date n days after a Sunday, so day(n) falls on weekday n%7
func day(n int) string {
	return epoch.AddDate(0, 0, n).Format(constants.DateFormat)
}

func task(id string, duration int) models.Task {
	return models.Task{ID: id, Name: id, Category: constants.CategoryHealth, DefaultDuration: duration}
}

func done(taskID, date, start string, planned, actual int) models.HistoryEntry {
	end, err := utils.AddMinutes(start, actual)
	if err != nil {
		panic(err)
	}
	a := actual
	return models.HistoryEntry{
		ID:              fmt.Sprintf("%s-%s-%s", taskID, date, start),
		TaskID:          taskID,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		PlannedDuration: planned,
		ActualDuration:  &a,
		Status:          constants.StatusCompleted,
	}
}

func skipped(taskID, date, start string, planned int) models.HistoryEntry {
	return models.HistoryEntry{
		ID:              fmt.Sprintf("%s-%s-%s-skip", taskID, date, start),
		TaskID:          taskID,
		Date:            date,
		StartTime:       start,
		PlannedDuration: planned,
		Status:          constants.StatusSkipped,
	}
}

func patternsOfType(patterns []models.Pattern, typ constants.PatternType) []models.Pattern {
	var out []models.Pattern
	for _, p := range patterns {
		if p.Type == typ {
			out = append(out, p)
		}
	}
	return out
}

func findPattern(patterns []models.Pattern, id string) (models.Pattern, bool) {
	for _, p := range patterns {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pattern{}, false
}
