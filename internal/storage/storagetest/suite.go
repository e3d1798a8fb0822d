// Package storagetest holds behavior checks shared by every storage.Provider
// implementation.
package storagetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

// RunProvider exercises an initialized, empty provider. IDs are prefixed so
// the suite can run against a shared database.
func RunProvider(t *testing.T, p storage.Provider, prefix string) {
	t.Helper()

	t.Run("Settings", func(t *testing.T) {
		settings, err := p.GetSettings()
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultDayStart, settings.DayStart)
		assert.Equal(t, constants.DefaultDurationMin, settings.DefaultDurationMin)

		settings.DayStart = "08:00"
		settings.Timezone = "Europe/Berlin"
		require.NoError(t, p.SaveSettings(settings))

		updated, err := p.GetSettings()
		require.NoError(t, err)
		assert.Equal(t, settings, updated)
	})

	t.Run("RawSettings", func(t *testing.T) {
		key := prefix + "missing"
		_, ok, err := p.GetSetting(key)
		require.NoError(t, err)
		assert.False(t, ok)

		periods := []models.SpecialPeriod{{StartDate: "2026-03-01", EndDate: "2026-03-07", CategoryID: "vacation"}}
		require.NoError(t, storage.SetJSONSetting(p, prefix+constants.SettingSpecialPeriods, periods))

		got, err := storage.GetJSONSetting[[]models.SpecialPeriod](p, prefix+constants.SettingSpecialPeriods, nil)
		require.NoError(t, err)
		assert.Equal(t, periods, got)

		require.NoError(t, p.SetSetting(key, "one"))
		require.NoError(t, p.SetSetting(key, "two"))
		v, ok, err := p.GetSetting(key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "two", v)
	})

	t.Run("Tasks", func(t *testing.T) {
		task := models.Task{ID: prefix + "task-1", Name: "Morning run", Category: constants.CategoryHealth, DefaultDuration: 30}
		require.NoError(t, p.AddTask(task))

		got, err := p.GetTask(task.ID)
		require.NoError(t, err)
		assert.Equal(t, task, got)

		task.DefaultDuration = 45
		require.NoError(t, p.UpdateTask(task))
		got, err = p.GetTask(task.ID)
		require.NoError(t, err)
		assert.Equal(t, 45, got.DefaultDuration)

		require.NoError(t, p.DeleteTask(task.ID))
		_, err = p.GetTask(task.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Error(t, p.DeleteTask(task.ID), "deleting twice fails")
		assert.ErrorIs(t, p.DeleteTask(prefix+"nope"), storage.ErrNotFound)

		all, err := p.GetAllTasksIncludingDeleted()
		require.NoError(t, err)
		var found bool
		for _, tk := range all {
			if tk.ID == task.ID {
				found = true
				require.NotNil(t, tk.DeletedAt)
			}
		}
		assert.True(t, found, "soft-deleted task stays in the catalog")

		active, err := p.GetAllTasks()
		require.NoError(t, err)
		for _, tk := range active {
			assert.NotEqual(t, task.ID, tk.ID)
		}
	})

	t.Run("History", func(t *testing.T) {
		actual := 35
		entries := []models.HistoryEntry{
			{ID: prefix + "h2", TaskID: "t", Date: "2026-01-06", StartTime: "09:00", EndTime: "09:35", PlannedDuration: 30, ActualDuration: &actual, Status: constants.StatusCompleted},
			{ID: prefix + "h1", TaskID: "t", Date: "2026-01-05", PlannedDuration: 30, Status: constants.StatusSkipped},
		}
		for _, e := range entries {
			require.NoError(t, p.AddHistoryEntry(e))
		}

		all, err := p.GetAllHistory()
		require.NoError(t, err)
		byID := map[string]models.HistoryEntry{}
		for _, h := range all {
			byID[h.ID] = h
		}

		done := byID[prefix+"h2"]
		require.NotNil(t, done.ActualDuration)
		assert.Equal(t, 35, *done.ActualDuration)
		assert.Equal(t, "09:35", done.EndTime)
		assert.False(t, done.CreatedAt.IsZero())

		skipped := byID[prefix+"h1"]
		assert.Nil(t, skipped.ActualDuration)
		assert.Equal(t, constants.StatusSkipped, skipped.Status)
		assert.Empty(t, skipped.StartTime)
	})

	t.Run("Schedule", func(t *testing.T) {
		insts := []models.ScheduledInstance{
			{ID: prefix + "s1", TaskID: "t", Date: "2026-01-05", StartTime: "10:00", Duration: 30},
			{ID: prefix + "s2", TaskID: "t", Date: "2026-01-05", StartTime: "08:00", Duration: 30},
			{ID: prefix + "s3", TaskID: "t", Date: "2026-01-06", StartTime: "08:00", Duration: 30},
		}
		for _, inst := range insts {
			require.NoError(t, p.AddScheduledInstance(inst))
		}

		day, err := p.GetScheduledInstancesForDate("2026-01-05")
		require.NoError(t, err)
		var ours []models.ScheduledInstance
		for _, inst := range day {
			if inst.ID == prefix+"s1" || inst.ID == prefix+"s2" {
				ours = append(ours, inst)
			}
		}
		require.Len(t, ours, 2)
		assert.Equal(t, "08:00", ours[0].StartTime)
	})

	t.Run("Patterns", func(t *testing.T) {
		updated := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)
		day := 2
		p1 := models.NewTimePattern(prefix+"t", models.TimeStats{AverageTime: "07:00", AverageMinutes: 420, Variance: 5.5}, 8, 0.8)
		p1.UpdatedAt = updated
		p2 := models.NewTimePattern(prefix+"t", models.TimeStats{AverageTime: "06:30", AverageMinutes: 390, DayOfWeek: &day}, 4, 0.8).WithPeriod("vacation", "Vacation")
		p2.UpdatedAt = updated

		for _, pat := range []models.Pattern{p1, p2} {
			saved, err := p.SavePattern(pat)
			require.NoError(t, err)
			assert.Equal(t, pat.ID, saved.ID)
		}

		// replacing by id keeps one row
		p1.SampleSize = 9
		p1.Confidence = 0.9
		_, err := p.SavePattern(p1)
		require.NoError(t, err)

		all, err := p.GetAllPatterns()
		require.NoError(t, err)
		byID := map[string]models.Pattern{}
		for _, pat := range all {
			byID[pat.ID] = pat
		}
		got, ok := byID[p1.ID]
		require.True(t, ok)
		assert.Equal(t, 9, got.SampleSize)
		assert.True(t, updated.Equal(got.UpdatedAt))
		require.NotNil(t, got.Time)
		assert.Equal(t, "07:00", got.Time.AverageTime)

		period, ok := byID[p2.ID]
		require.True(t, ok)
		assert.Equal(t, "Vacation", period.PeriodCategoryName)
		require.NotNil(t, period.Time.DayOfWeek)
		assert.Equal(t, 2, *period.Time.DayOfWeek)

		bad := p1
		bad.Confidence = 1.5
		_, err = p.SavePattern(bad)
		assert.Error(t, err)
	})
}
