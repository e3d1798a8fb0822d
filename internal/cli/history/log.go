package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/logger"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

// entryFlags are shared by done and skip
type entryFlags struct {
	Task    string `arg:"" help:"Task ID or name."`
	Date    string `help:"Date (YYYY-MM-DD). Defaults to today."`
	Start   string `short:"s" help:"Start time (HH:MM)."`
	Planned int    `short:"p" help:"Planned duration in minutes. Defaults to the task's default duration."`
	Analyze bool   `help:"Re-run the insight analysis afterwards."`
}

type LogDoneCmd struct {
	entryFlags
	End    string `short:"e" help:"End time (HH:MM)."`
	Actual int    `short:"a" help:"Actual duration in minutes. Derived from --start/--end when omitted."`
}

type LogSkipCmd struct {
	entryFlags
}

func (c *LogDoneCmd) Validate() error {
	if c.Actual < 0 || c.Planned < 0 {
		return fmt.Errorf("durations cannot be negative")
	}
	if c.End != "" && c.Start == "" && c.Actual == 0 {
		return fmt.Errorf("--end needs --start or --actual")
	}
	return nil
}

func (c *LogDoneCmd) Run(ctx *cli.Context) error {
	entry, task, err := c.newEntry(ctx, constants.StatusCompleted)
	if err != nil {
		return err
	}

	actual, end, err := completion(entry.StartTime, c.End, c.Actual, entry.PlannedDuration)
	if err != nil {
		return err
	}
	entry.ActualDuration = &actual
	entry.EndTime = end

	if err := record(ctx, entry); err != nil {
		return err
	}
	fmt.Printf("Logged %s as done on %s (%d min)\n", task.Name, entry.Date, actual)
	return c.maybeAnalyze(ctx)
}

func (c *LogSkipCmd) Run(ctx *cli.Context) error {
	entry, task, err := c.newEntry(ctx, constants.StatusSkipped)
	if err != nil {
		return err
	}
	if err := record(ctx, entry); err != nil {
		return err
	}
	fmt.Printf("Logged %s as skipped on %s\n", task.Name, entry.Date)
	return c.maybeAnalyze(ctx)
}

func (f *entryFlags) newEntry(ctx *cli.Context, status constants.HistoryStatus) (models.HistoryEntry, models.Task, error) {
	task, err := ctx.TaskByRef(f.Task)
	if err != nil {
		return models.HistoryEntry{}, models.Task{}, err
	}
	date, err := ctx.ResolveDate(f.Date)
	if err != nil {
		return models.HistoryEntry{}, models.Task{}, err
	}
	planned := f.Planned
	if planned == 0 {
		planned = task.DefaultDuration
	}

	return models.HistoryEntry{
		ID:              uuid.New().String(),
		TaskID:          task.ID,
		Date:            date,
		StartTime:       f.Start,
		PlannedDuration: planned,
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}, task, nil
}

// completion works out the actual duration and end time of a completed entry.
// An explicit actual wins; otherwise start/end give it; otherwise the plan stands.
func completion(start, end string, actual, planned int) (int, string, error) {
	if actual == 0 && start != "" && end != "" {
		minutes, err := utils.MinutesBetween(start, end)
		if err != nil {
			return 0, "", fmt.Errorf("invalid start/end time: %w", err)
		}
		if minutes <= 0 {
			return 0, "", fmt.Errorf("end time %s must be after start time %s", end, start)
		}
		actual = minutes
	}
	if actual == 0 {
		actual = planned
	}
	if end == "" && start != "" {
		var err error
		if end, err = utils.AddMinutes(start, actual); err != nil {
			return 0, "", fmt.Errorf("invalid start time: %w", err)
		}
	}
	return actual, end, nil
}

func record(ctx *cli.Context, entry models.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid history entry: %w", err)
	}
	if err := ctx.Store.AddHistoryEntry(entry); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	logger.Debug("Recorded history entry", "task", entry.TaskID, "date", entry.Date, "status", entry.Status)
	return nil
}

func (f *entryFlags) maybeAnalyze(ctx *cli.Context) error {
	if !f.Analyze {
		return nil
	}
	result, err := ctx.Engine().Analyze(context.Background())
	if err != nil {
		return fmt.Errorf("failed to analyze history: %w", err)
	}
	if len(result.Insights) > 0 {
		fmt.Println()
		fmt.Println(cli.RenderInsight(0, result.Insights[0]))
	}
	return nil
}
