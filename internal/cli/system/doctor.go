package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/logger"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
	"github.com/julianstephens/cadence/internal/utils"
)

// warning marks a finding that should be reported but does not fail the run
type warning struct{ msg string }

func (w warning) Error() string { return w.msg }

func warnf(format string, args ...any) error {
	return warning{msg: fmt.Sprintf(format, args...)}
}

type check struct {
	name    string
	needsDB bool
	run     func(*cli.Context) error
}

var checks = []check{
	{"Schema version", true, checkSchemaVersion},
	{"Migrations complete", true, checkMigrationsComplete},
	{"Clock/timezone", true, checkClockTimezone},
	{"Special periods", true, checkSpecialPeriods},
	{"History integrity", true, checkHistory},
	{"Patterns", true, checkPatterns},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	failed := 0
	dbReachable := report("Database reachable", checkDBReachable(ctx), &failed)

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("⊘ %s: SKIPPED (database not reachable)", c.name)))
			continue
		}
		report(c.name, c.run(ctx), &failed)
	}

	fmt.Println()
	if failed > 0 {
		logger.Warn("doctor found problems", "failed", failed)
		return fmt.Errorf("%d diagnostic check(s) failed", failed)
	}
	fmt.Println(cli.SuccessStyle.Render("All checks passed."))
	return nil
}

// report prints one check line and returns whether the check passed
func report(name string, err error, failed *int) bool {
	var w warning
	switch {
	case err == nil:
		fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ %s: OK", name)))
		return true
	case errors.As(err, &w):
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("⚠ %s: WARNING", name)))
		fmt.Printf("   %v\n", w.msg)
		return true
	default:
		fmt.Println(cli.DangerStyle.Render(fmt.Sprintf("❌ %s: FAIL", name)))
		fmt.Printf("   Error: %v\n", err)
		*failed++
		return false
	}
}

func checkDBReachable(ctx *cli.Context) error {
	if ctx.Store == nil {
		return errors.New("no storage configured")
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(Migrator)
	if !ok {
		return warnf("storage backend does not report a schema version")
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if st.Current == 0 {
		return fmt.Errorf("schema is uninitialized, run '%s system init'", constants.AppName)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(Migrator)
	if !ok {
		return warnf("storage backend does not report migrations")
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		return fmt.Errorf("%d migration(s) pending (at version %d of %d), run '%s system migrate'",
			len(st.Pending), st.Current, st.Latest, constants.AppName)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("configured timezone %q is not a valid IANA zone", settings.Timezone)
	}
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return warnf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkSpecialPeriods(ctx *cli.Context) error {
	periods, err := storage.GetJSONSetting[[]models.SpecialPeriod](ctx.Store, constants.SettingSpecialPeriods, nil)
	if err != nil {
		return err
	}
	categories, err := storage.GetJSONSetting[[]models.PeriodCategory](ctx.Store, constants.SettingPeriodCategories, nil)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	var unknown int
	for i, p := range periods {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("period %d: %w", i+1, err)
		}
		if !known[p.CategoryID] {
			unknown++
		}
	}
	if unknown > 0 {
		return warnf("%d period(s) reference an undefined category", unknown)
	}
	return nil
}

func checkHistory(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasksIncludingDeleted()
	if err != nil {
		return err
	}
	history, err := ctx.Store.GetAllHistory()
	if err != nil {
		return err
	}
	index := models.NewTaskIndex(tasks)

	var orphans int
	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("history entry %s: %w", entry.ID, err)
		}
		if _, ok := index[entry.TaskID]; !ok {
			orphans++
		}
	}
	if orphans > 0 {
		return warnf("%d history entries reference unknown tasks", orphans)
	}
	return nil
}

func checkPatterns(ctx *cli.Context) error {
	patterns, err := ctx.Store.GetAllPatterns()
	if err != nil {
		return err
	}
	for _, p := range patterns {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("pattern %s: %w", p.ID, err)
		}
	}
	return nil
}
