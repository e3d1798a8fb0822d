package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().PaddingLeft(2)
)

var insightColors = map[constants.InsightType]lipgloss.Color{
	constants.InsightPattern:      lipgloss.Color("39"),
	constants.InsightOptimization: lipgloss.Color("214"),
	constants.InsightAchievement:  lipgloss.Color("42"),
	constants.InsightInsight:      lipgloss.Color("141"),
	constants.InsightInfo:         lipgloss.Color("245"),
}

// RenderInsight formats one insight as a short card
func RenderInsight(num int, in models.Insight) string {
	badge := lipgloss.NewStyle().
		Foreground(insightColors[in.Type]).
		Bold(true).
		Render(strings.ToUpper(string(in.Type)))

	var b strings.Builder
	if num > 0 {
		fmt.Fprintf(&b, "%d. ", num)
	}
	fmt.Fprintf(&b, "%s %s\n", badge, TitleStyle.Render(in.Title))
	b.WriteString(cardStyle.Render(in.Text))
	if in.Action != nil {
		b.WriteString("\n")
		b.WriteString(cardStyle.Render(MutedStyle.Render("→ " + DescribeAction(*in.Action))))
	}
	return b.String()
}

// DescribeAction renders an insight action as a short instruction
func DescribeAction(a models.InsightAction) string {
	switch a.Type {
	case constants.ActionAdjustDuration:
		return fmt.Sprintf("set default duration to %d min", a.SuggestedDuration)
	case constants.ActionSuggestTime:
		return fmt.Sprintf("schedule at %s", a.SuggestedTime)
	default:
		return string(a.Type)
	}
}

// RenderSuggestion formats one routine suggestion on a single line plus its reason
func RenderSuggestion(s models.RoutineSuggestion) string {
	marker := " "
	if s.DaySpecific {
		marker = SuccessStyle.Render("●")
	}
	line := fmt.Sprintf("%s %s  %s (%d min, %.0f%%)",
		marker, TitleStyle.Render(s.SuggestedTime), s.TaskName, s.Duration, s.Confidence*100)
	return line + "\n" + cardStyle.Render(MutedStyle.Render(s.Reason))
}

// RenderPattern formats a persisted pattern on one line
func RenderPattern(p models.Pattern, taskName string) string {
	if taskName == "" {
		taskName = p.TaskID
	}
	var detail string
	switch {
	case p.Time != nil:
		detail = fmt.Sprintf("%s around %s (±%.1f min)", taskName, p.Time.AverageTime, p.Time.Variance)
		if p.Time.DayOfWeek != nil {
			detail += fmt.Sprintf(" on %ss", time.Weekday(*p.Time.DayOfWeek))
		}
	case p.Duration != nil:
		detail = fmt.Sprintf("%s takes %d min vs %d planned (%+.1f%%)",
			taskName, p.Duration.AverageActual, p.Duration.AveragePlanned, p.Duration.PercentDifference)
	case p.Frequency != nil:
		detail = fmt.Sprintf("%s %.1f×/week over %d days", taskName, p.Frequency.TimesPerWeek, p.Frequency.UniqueDays)
	case p.Sequence != nil:
		detail = fmt.Sprintf("%s -> %s, %d times", p.Sequence.FromTaskID, p.Sequence.ToTaskID, p.Sequence.Count)
	}

	line := fmt.Sprintf("%-10s %s %s", p.Type, detail,
		MutedStyle.Render(fmt.Sprintf("[n=%d conf=%.2f]", p.SampleSize, p.Confidence)))
	if !p.IsRoutine() {
		line += " " + WarningStyle.Render("@"+p.PeriodCategoryName)
	}
	return line
}
