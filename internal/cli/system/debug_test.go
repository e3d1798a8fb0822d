package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

func TestDebugCmds(t *testing.T) {
	ctx, store := setupTestStore(t)
	require.NoError(t, store.AddTask(models.Task{ID: "t1", Name: "Stretch", DefaultDuration: 10, Category: constants.CategoryHealth}))
	require.NoError(t, store.SetSetting(constants.SettingSpecialPeriods, `[]`))

	assert.NoError(t, (&DebugDBPathCmd{}).Run(ctx))
	assert.NoError(t, (&DebugDumpTaskCmd{Task: "stretch"}).Run(ctx))
	assert.Error(t, (&DebugDumpTaskCmd{Task: "missing"}).Run(ctx))
	assert.NoError(t, (&DebugDumpSettingsCmd{}).Run(ctx))
}
