package schedule

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

type ScheduleAddCmd struct {
	Task     string `arg:"" help:"Task ID or name."`
	Start    string `arg:"" help:"Start time (HH:MM)."`
	Date     string `help:"Date (YYYY-MM-DD). Defaults to today."`
	Duration int    `short:"d" help:"Duration in minutes. Defaults to the task's default duration."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	task, err := ctx.TaskByRef(c.Task)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	duration := c.Duration
	if duration == 0 {
		duration = task.DefaultDuration
	}

	inst := models.ScheduledInstance{
		ID:        uuid.New().String(),
		TaskID:    task.ID,
		Date:      date,
		StartTime: c.Start,
		Duration:  duration,
	}
	if err := inst.Validate(); err != nil {
		return fmt.Errorf("invalid scheduled instance: %w", err)
	}
	if err := ctx.Store.AddScheduledInstance(inst); err != nil {
		return fmt.Errorf("failed to schedule task: %w", err)
	}

	fmt.Printf("Scheduled %s on %s at %s (%d min)\n", task.Name, date, c.Start, duration)
	return nil
}

type ScheduleListCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	insts, err := ctx.Store.GetScheduledInstancesForDate(date)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasksIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	names := models.NewTaskIndex(tasks)

	fmt.Println(cli.TitleStyle.Render("Schedule for " + date))
	if len(insts) == 0 {
		fmt.Println("  Nothing scheduled")
		return nil
	}
	for _, inst := range insts {
		name := inst.TaskID
		if t, ok := names.Lookup(inst.TaskID); ok {
			name = t.Name
		}
		end, err := utils.AddMinutes(inst.StartTime, inst.Duration)
		if err != nil {
			end = "?"
		}
		fmt.Printf("  %s-%s  %s\n", inst.StartTime, end, name)
	}
	return nil
}
