package tasks

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
)

type TaskEditCmd struct {
	Task     string  `arg:"" help:"Task ID or name."`
	Name     *string `help:"New task name."`
	Duration *int    `short:"d" help:"New default duration in minutes."`
	Category *string `short:"c" help:"New category."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.TaskByRef(c.Task)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	if c.Name != nil {
		task.Name = *c.Name
	}
	if c.Duration != nil {
		task.DefaultDuration = *c.Duration
	}
	if c.Category != nil {
		task.Category = constants.TaskCategory(*c.Category)
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Updated task: %s (ID: %s)\n", task.Name, task.ID)
	return nil
}
