package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
	"github.com/julianstephens/cadence/internal/storage/sqlite"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return &Context{Store: store}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"mon", time.Monday, false},
		{" Saturday ", time.Saturday, false},
		{"0", time.Sunday, false},
		{"6", time.Saturday, false},
		{"7", 0, true},
		{"someday", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDate(t *testing.T) {
	ctx := newTestContext(t)

	got, err := ctx.ResolveDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", got)

	_, err = ctx.ResolveDate("03/02/2026")
	assert.Error(t, err)

	today, err := ctx.ResolveDate("")
	require.NoError(t, err)
	_, err = time.Parse(constants.DateFormat, today)
	assert.NoError(t, err)
}

func TestTaskByRef(t *testing.T) {
	ctx := newTestContext(t)
	run := models.Task{ID: "t-run", Name: "Run", Category: constants.CategoryHealth, DefaultDuration: 30}
	require.NoError(t, ctx.Store.AddTask(run))
	require.NoError(t, ctx.Store.AddTask(models.Task{ID: "t-read1", Name: "Read", Category: constants.CategoryLearning, DefaultDuration: 20}))
	require.NoError(t, ctx.Store.AddTask(models.Task{ID: "t-read2", Name: "read", Category: constants.CategoryPersonal, DefaultDuration: 20}))

	got, err := ctx.TaskByRef("t-run")
	require.NoError(t, err)
	assert.Equal(t, run, got)

	got, err = ctx.TaskByRef("RUN")
	require.NoError(t, err)
	assert.Equal(t, "t-run", got.ID)

	_, err = ctx.TaskByRef("read")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = ctx.TaskByRef("swim")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRenderInsight(t *testing.T) {
	out := RenderInsight(2, models.Insight{
		Type:   constants.InsightOptimization,
		Title:  "Write runs long",
		Text:   "Write takes 45 min on average.",
		Action: &models.InsightAction{Type: constants.ActionAdjustDuration, SuggestedDuration: 45},
	})
	assert.Contains(t, out, "2. ")
	assert.Contains(t, out, "Write runs long")
	assert.Contains(t, out, "set default duration to 45 min")
}

func TestRenderPattern(t *testing.T) {
	day := 2
	p := models.NewTimePattern("t-run", models.TimeStats{AverageTime: "06:45", Variance: 4.2, DayOfWeek: &day}, 4, 0.8).WithPeriod("vacation", "Vacation")
	out := RenderPattern(p, "Run")
	assert.Contains(t, out, "Run around 06:45")
	assert.Contains(t, out, "Tuesdays")
	assert.Contains(t, out, "@Vacation")
}
