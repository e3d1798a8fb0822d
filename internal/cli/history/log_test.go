package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.AddTask(models.Task{ID: "run", Name: "Run", Category: constants.CategoryHealth, DefaultDuration: 30}))
	return &cli.Context{Store: store}
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		actual     int
		wantActual int
		wantEnd    string
		wantErr    bool
	}{
		{"plan only", "", "", 0, 30, "", false},
		{"start gives end", "07:00", "", 0, 30, "07:30", false},
		{"start and end", "07:00", "07:45", 0, 45, "07:45", false},
		{"explicit actual", "07:00", "", 40, 40, "07:40", false},
		{"actual beats end", "07:00", "08:00", 20, 20, "08:00", false},
		{"end before start", "07:00", "06:30", 0, 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, end, err := completion(tt.start, tt.end, tt.actual, 30)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantActual, actual)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestLogDoneCmd(t *testing.T) {
	ctx := setupTestDB(t)
	cmd := &LogDoneCmd{entryFlags: entryFlags{Task: "run", Date: "2026-01-05", Start: "06:30"}, End: "07:10"}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(ctx))

	history, err := ctx.Store.GetAllHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	h := history[0]
	assert.Equal(t, constants.StatusCompleted, h.Status)
	assert.Equal(t, 30, h.PlannedDuration)
	require.NotNil(t, h.ActualDuration)
	assert.Equal(t, 40, *h.ActualDuration)
	assert.Equal(t, "07:10", h.EndTime)
}

func TestLogSkipCmd_ByName(t *testing.T) {
	ctx := setupTestDB(t)
	cmd := &LogSkipCmd{entryFlags: entryFlags{Task: "run", Date: "2026-01-06", Start: "18:00", Planned: 20}}
	require.NoError(t, cmd.Run(ctx))

	history, err := ctx.Store.GetAllHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, constants.StatusSkipped, history[0].Status)
	assert.Nil(t, history[0].ActualDuration)
	assert.Equal(t, 20, history[0].PlannedDuration)
}

func TestLogCmd_Errors(t *testing.T) {
	ctx := setupTestDB(t)

	assert.Error(t, (&LogSkipCmd{entryFlags: entryFlags{Task: "swim"}}).Run(ctx))
	assert.Error(t, (&LogSkipCmd{entryFlags: entryFlags{Task: "run", Date: "yesterday"}}).Run(ctx))
	assert.Error(t, (&LogDoneCmd{entryFlags: entryFlags{Task: "run", Date: "2026-01-05", Start: "7am"}}).Run(ctx))
	assert.Error(t, (&LogDoneCmd{End: "08:00", entryFlags: entryFlags{Task: "run"}}).Validate())

	history, err := ctx.Store.GetAllHistory()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLogDoneCmd_Analyze(t *testing.T) {
	ctx := setupTestDB(t)
	for _, date := range []string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08", "2026-01-09"} {
		cmd := &LogDoneCmd{entryFlags: entryFlags{Task: "Run", Date: date, Start: "06:30", Analyze: true}}
		require.NoError(t, cmd.Run(ctx))
	}

	patterns, err := ctx.Store.GetAllPatterns()
	require.NoError(t, err)
	assert.NotEmpty(t, patterns, "the fifth entry crosses the analysis threshold")
}
