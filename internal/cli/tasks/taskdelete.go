package tasks

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/cli"
)

type TaskDeleteCmd struct {
	Task string `arg:"" help:"Task ID or name to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := ctx.TaskByRef(c.Task)
	if err != nil {
		return fmt.Errorf("failed to find task %s: %w", c.Task, err)
	}

	if err := ctx.Store.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task: %s (ID: %s)\n", task.Name, task.ID)
	fmt.Println(cli.MutedStyle.Render("History and patterns for this task are kept; use 'cadence task restore' to undo."))
	return nil
}
