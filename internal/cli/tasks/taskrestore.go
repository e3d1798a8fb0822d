package tasks

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/storage"
)

type TaskRestoreCmd struct {
	ID string `arg:"" help:"Task ID to restore."`
}

func (c *TaskRestoreCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasksIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	for _, task := range tasks {
		if task.ID != c.ID {
			continue
		}
		if task.DeletedAt == nil {
			return fmt.Errorf("task %s is not deleted", c.ID)
		}
		task.DeletedAt = nil
		if err := ctx.Store.UpdateTask(task); err != nil {
			return fmt.Errorf("failed to restore task: %w", err)
		}
		fmt.Printf("Restored task: %s (ID: %s)\n", task.Name, task.ID)
		return nil
	}
	return fmt.Errorf("task %s: %w", c.ID, storage.ErrNotFound)
}
