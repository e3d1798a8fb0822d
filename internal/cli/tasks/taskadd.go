package tasks

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

type TaskAddCmd struct {
	Name     string `arg:"" help:"Task name."`
	Duration int    `short:"d" help:"Default duration in minutes. Defaults to the default_duration_min setting."`
	Category string `short:"c" help:"Category (work|health|personal|learning|social|chores|other)." default:"other"`
}

func (c *TaskAddCmd) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	if !models.IsValidCategory(constants.TaskCategory(c.Category)) {
		return fmt.Errorf("invalid category %q", c.Category)
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	duration := c.Duration
	if duration == 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		duration = settings.DefaultDurationMin
	}

	task := models.Task{
		ID:              uuid.New().String(),
		Name:            c.Name,
		Category:        constants.TaskCategory(c.Category),
		DefaultDuration: duration,
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Name, task.ID)
	return nil
}
