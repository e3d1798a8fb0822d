package tasks

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/models"
)

type TaskListCmd struct {
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
	Deleted bool `help:"Include deleted tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	var (
		tasks []models.Task
		err   error
	)
	if c.Deleted {
		tasks, err = ctx.Store.GetAllTasksIncludingDeleted()
	} else {
		tasks, err = ctx.Store.GetAllTasks()
	}
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Tasks:"))
	for _, task := range tasks {
		idStr := ""
		if c.ShowIDs {
			idStr = cli.MutedStyle.Render(fmt.Sprintf(" (ID: %s)", task.ID))
		}
		line := fmt.Sprintf("  [%s] %s%s - %dm", task.Category, task.Name, idStr, task.DefaultDuration)
		if task.DeletedAt != nil {
			line += " " + cli.WarningStyle.Render("deleted")
		}
		fmt.Println(line)
	}
	return nil
}
