package periods

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

func loadPeriods(ctx *cli.Context) ([]models.SpecialPeriod, error) {
	return storage.GetJSONSetting[[]models.SpecialPeriod](ctx.Store, constants.SettingSpecialPeriods, nil)
}

func loadCategories(ctx *cli.Context) ([]models.PeriodCategory, error) {
	return storage.GetJSONSetting[[]models.PeriodCategory](ctx.Store, constants.SettingPeriodCategories, nil)
}

// findCategory matches a category by id or case-insensitive name
func findCategory(categories []models.PeriodCategory, ref string) (models.PeriodCategory, bool) {
	for _, c := range categories {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return models.PeriodCategory{}, false
}

type PeriodAddCmd struct {
	Category string `arg:"" help:"Period category ID or name."`
	Start    string `arg:"" help:"First day (YYYY-MM-DD)."`
	End      string `arg:"" optional:"" help:"Last day (YYYY-MM-DD). Defaults to the first day."`
}

func (c *PeriodAddCmd) Run(ctx *cli.Context) error {
	categories, err := loadCategories(ctx)
	if err != nil {
		return err
	}
	category, ok := findCategory(categories, c.Category)
	if !ok {
		return fmt.Errorf("unknown period category %q, add it with 'cadence period category add'", c.Category)
	}

	end := c.End
	if end == "" {
		end = c.Start
	}
	period := models.SpecialPeriod{StartDate: c.Start, EndDate: end, CategoryID: category.ID}
	if err := period.Validate(); err != nil {
		return fmt.Errorf("invalid period: %w", err)
	}

	periods, err := loadPeriods(ctx)
	if err != nil {
		return err
	}
	for _, p := range periods {
		if p.StartDate <= period.EndDate && period.StartDate <= p.EndDate {
			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Overlaps %s..%s; the earlier period wins for shared days.", p.StartDate, p.EndDate)))
			break
		}
	}

	periods = append(periods, period)
	if err := storage.SetJSONSetting(ctx.Store, constants.SettingSpecialPeriods, periods); err != nil {
		return fmt.Errorf("failed to save periods: %w", err)
	}
	fmt.Printf("Added %s period %s..%s\n", category.Name, period.StartDate, period.EndDate)
	return nil
}

type PeriodListCmd struct{}

func (c *PeriodListCmd) Run(ctx *cli.Context) error {
	periods, err := loadPeriods(ctx)
	if err != nil {
		return err
	}
	categories, err := loadCategories(ctx)
	if err != nil {
		return err
	}
	if len(periods) == 0 {
		fmt.Println("No special periods")
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Special periods:"))
	for i, p := range periods {
		label := p.CategoryID
		if cat, ok := findCategory(categories, p.CategoryID); ok {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render(cat.Name)
		}
		fmt.Printf("  %d. %s..%s  %s\n", i+1, p.StartDate, p.EndDate, label)
	}
	return nil
}

type PeriodRemoveCmd struct {
	Index int `arg:"" help:"Period number as shown by 'cadence period list'."`
}

func (c *PeriodRemoveCmd) Run(ctx *cli.Context) error {
	periods, err := loadPeriods(ctx)
	if err != nil {
		return err
	}
	if c.Index < 1 || c.Index > len(periods) {
		return fmt.Errorf("no period number %d (have %d)", c.Index, len(periods))
	}
	removed := periods[c.Index-1]
	periods = append(periods[:c.Index-1], periods[c.Index:]...)
	if err := storage.SetJSONSetting(ctx.Store, constants.SettingSpecialPeriods, periods); err != nil {
		return fmt.Errorf("failed to save periods: %w", err)
	}
	fmt.Printf("Removed period %s..%s\n", removed.StartDate, removed.EndDate)
	return nil
}

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category name, e.g. 'Vacation'."`
	Color string `help:"Display color (hex)." default:"${default_period_color}"`
}

func (c *CategoryAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if c.Color != "" && !strings.HasPrefix(c.Color, "#") {
		return fmt.Errorf("color must be a hex value like %s", constants.DefaultPeriodCategoryColor)
	}
	return nil
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	categories, err := loadCategories(ctx)
	if err != nil {
		return err
	}
	if _, ok := findCategory(categories, c.Name); ok {
		return fmt.Errorf("period category %q already exists", c.Name)
	}

	color := c.Color
	if color == "" {
		color = constants.DefaultPeriodCategoryColor
	}
	category := models.PeriodCategory{ID: uuid.New().String(), Name: c.Name, Color: color}
	categories = append(categories, category)
	if err := storage.SetJSONSetting(ctx.Store, constants.SettingPeriodCategories, categories); err != nil {
		return fmt.Errorf("failed to save period categories: %w", err)
	}
	fmt.Printf("Added period category: %s (ID: %s)\n", category.Name, category.ID)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	categories, err := loadCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println("No period categories")
		return nil
	}
	for _, cat := range categories {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("■")
		fmt.Printf("  %s %s %s\n", swatch, cat.Name, cli.MutedStyle.Render(cat.ID))
	}
	return nil
}
