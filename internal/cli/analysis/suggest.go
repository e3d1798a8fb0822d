package analysis

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/models"
)

type SuggestCmd struct {
	Date        string `arg:"" optional:"" help:"Date to plan (YYYY-MM-DD). Defaults to today."`
	Day         string `help:"Weekday to plan instead of a date (e.g. 'tue'). Nothing is scheduled."`
	Interactive bool   `help:"Pick suggestions to add to the day's schedule." default:"false"`
}

func (c *SuggestCmd) Validate() error {
	if c.Day != "" && c.Date != "" {
		return fmt.Errorf("use either a date or --day, not both")
	}
	if c.Day != "" && c.Interactive {
		return fmt.Errorf("--interactive needs a date to schedule into")
	}
	return nil
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	engine := ctx.Engine()

	if c.Day != "" {
		wd, err := cli.ParseWeekday(c.Day)
		if err != nil {
			return err
		}
		suggestions, err := engine.SuggestRoutine(wd, nil)
		if err != nil {
			return fmt.Errorf("failed to build suggestions: %w", err)
		}
		printSuggestions(fmt.Sprintf("Suggested routine for %ss", wd), suggestions)
		return nil
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	suggestions, err := engine.SuggestRoutineForDate(date, nil)
	if err != nil {
		return fmt.Errorf("failed to build suggestions: %w", err)
	}
	printSuggestions("Suggested routine for "+date, suggestions)

	if !c.Interactive || len(suggestions) == 0 {
		return nil
	}

	var picked []string
	options := make([]huh.Option[string], 0, len(suggestions))
	for _, s := range suggestions {
		label := fmt.Sprintf("%s %s (%d min)", s.SuggestedTime, s.TaskName, s.Duration)
		options = append(options, huh.NewOption(label, s.TaskID).Selected(s.DaySpecific))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Add to schedule").
				Options(options...).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	added, err := ScheduleSuggestions(ctx, date, suggestions, picked)
	if err != nil {
		return err
	}
	fmt.Printf("Scheduled %d task(s) on %s.\n", added, date)
	return nil
}

func printSuggestions(title string, suggestions []models.RoutineSuggestion) {
	fmt.Println(cli.TitleStyle.Render(title))
	if len(suggestions) == 0 {
		fmt.Println(cli.MutedStyle.Render("No confident suggestions yet. Keep logging tasks and run 'cadence analyze'."))
		return
	}
	for _, s := range suggestions {
		fmt.Println(cli.RenderSuggestion(s))
	}
}

// ScheduleSuggestions stores the picked suggestions as scheduled instances on
// date, skipping tasks already scheduled that day. It returns how many were added.
func ScheduleSuggestions(ctx *cli.Context, date string, suggestions []models.RoutineSuggestion, taskIDs []string) (int, error) {
	existing, err := ctx.Store.GetScheduledInstancesForDate(date)
	if err != nil {
		return 0, fmt.Errorf("failed to get schedule for %s: %w", date, err)
	}
	scheduled := make(map[string]bool, len(existing))
	for _, inst := range existing {
		scheduled[inst.TaskID] = true
	}
	wanted := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		wanted[id] = true
	}

	added := 0
	for _, s := range suggestions {
		if !wanted[s.TaskID] || scheduled[s.TaskID] {
			continue
		}
		inst := models.ScheduledInstance{
			ID:        uuid.New().String(),
			TaskID:    s.TaskID,
			Date:      date,
			StartTime: s.SuggestedTime,
			Duration:  s.Duration,
		}
		if err := inst.Validate(); err != nil {
			return added, fmt.Errorf("invalid suggestion for %s: %w", s.TaskName, err)
		}
		if err := ctx.Store.AddScheduledInstance(inst); err != nil {
			return added, fmt.Errorf("failed to schedule %s: %w", s.TaskName, err)
		}
		scheduled[s.TaskID] = true
		added++
	}
	return added, nil
}
