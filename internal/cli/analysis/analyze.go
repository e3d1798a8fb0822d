package analysis

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

type AnalyzeCmd struct {
	Interactive bool `help:"Interactively review and apply actionable insights." default:"false"`
	AutoApply   bool `help:"Apply every duration adjustment without confirmation." default:"false"`
}

func (c *AnalyzeCmd) Run(ctx *cli.Context) error {
	result, err := ctx.Engine().Analyze(context.Background())
	if err != nil {
		return fmt.Errorf("failed to analyze history: %w", err)
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%d insight(s), %d pattern(s) on record", len(result.Insights), len(result.Patterns))))
	fmt.Println()
	for i, in := range result.Insights {
		fmt.Println(cli.RenderInsight(i+1, in))
		fmt.Println()
	}

	actionable := applicable(result.Insights)
	if len(actionable) == 0 {
		return nil
	}

	if c.AutoApply {
		applied := 0
		for _, in := range actionable {
			if err := applyInsight(ctx, in); err != nil {
				fmt.Printf("  %s %s: %v\n", cli.DangerStyle.Render("✗"), in.Title, err)
				continue
			}
			applied++
		}
		fmt.Printf("Applied %d/%d adjustment(s).\n", applied, len(actionable))
		return nil
	}

	if c.Interactive {
		return runInteractive(ctx, actionable)
	}

	fmt.Println(cli.MutedStyle.Render("Use --interactive to review duration adjustments, or --auto-apply to apply them all."))
	return nil
}

// applicable keeps the insights whose action can be applied to the task catalog
func applicable(insights []models.Insight) []models.Insight {
	var out []models.Insight
	for _, in := range insights {
		if in.Actionable && in.Action != nil && in.Action.Type == constants.ActionAdjustDuration && in.TaskID != "" {
			out = append(out, in)
		}
	}
	return out
}

func runInteractive(ctx *cli.Context, actionable []models.Insight) error {
	applied, skipped := 0, 0

loop:
	for i, in := range actionable {
		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("[%d/%d] %s", i+1, len(actionable), in.Title)).
					Description(cli.DescribeAction(*in.Action)).
					Options(
						huh.NewOption("Apply", "apply"),
						huh.NewOption("Skip", "skip"),
						huh.NewOption("Skip remaining", "skip_all"),
					).
					Value(&choice),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}

		switch choice {
		case "apply":
			if err := applyInsight(ctx, in); err != nil {
				fmt.Printf("  %s failed to apply: %v\n", cli.DangerStyle.Render("✗"), err)
				continue
			}
			applied++
		case "skip":
			skipped++
		case "skip_all":
			skipped += len(actionable) - i
			break loop
		}
	}

	fmt.Printf("Completed: %d applied, %d skipped\n", applied, skipped)
	return nil
}

// applyInsight writes an adjust_duration action back to the task's default duration
func applyInsight(ctx *cli.Context, in models.Insight) error {
	if in.Action == nil || in.Action.Type != constants.ActionAdjustDuration {
		return fmt.Errorf("insight %q has no duration adjustment", in.Title)
	}
	if in.Action.SuggestedDuration <= 0 {
		return fmt.Errorf("suggested duration must be positive, got %d", in.Action.SuggestedDuration)
	}

	task, err := ctx.Store.GetTask(in.TaskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	task.DefaultDuration = in.Action.SuggestedDuration
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}
