package analysis

import (
	"fmt"
	"sort"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

type PatternsCmd struct {
	Type    string `short:"t" help:"Only show one pattern type." enum:",time,time_day,duration,frequency,sequence" default:""`
	Routine bool   `help:"Hide patterns mined from special periods."`
}

func (c *PatternsCmd) Run(ctx *cli.Context) error {
	patterns, err := ctx.Store.GetAllPatterns()
	if err != nil {
		return fmt.Errorf("failed to get patterns: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasksIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	names := models.NewTaskIndex(tasks)

	patterns = FilterPatterns(patterns, constants.PatternType(c.Type), c.Routine)
	if len(patterns) == 0 {
		fmt.Println("No patterns found. Run 'cadence analyze' once you have logged a few tasks.")
		return nil
	}

	for _, p := range patterns {
		name := ""
		if t, ok := names.Lookup(p.TaskID); ok {
			name = t.Name
		}
		fmt.Println(cli.RenderPattern(p, name))
	}
	return nil
}

// FilterPatterns narrows patterns by type and origin, ordered by confidence descending
func FilterPatterns(patterns []models.Pattern, typ constants.PatternType, routineOnly bool) []models.Pattern {
	var out []models.Pattern
	for _, p := range patterns {
		if typ != "" && p.Type != typ {
			continue
		}
		if routineOnly && !p.IsRoutine() {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}
