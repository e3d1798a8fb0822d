package settings

import (
	"fmt"

	"github.com/julianstephens/cadence/internal/cli"
	"github.com/julianstephens/cadence/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DayStart           *string `help:"Time the day starts (HH:MM)."`
	DayEnd             *string `help:"Time the day ends (HH:MM)."`
	DefaultDurationMin *int    `help:"Default duration for new tasks in minutes."`
	Timezone           *string `help:"IANA timezone name, or 'Local'."`
}

func (c *SettingsCmd) Validate() error {
	if c.DayStart != nil && !utils.ValidateTimeFormat(*c.DayStart) {
		return fmt.Errorf("invalid day start %q (expected HH:MM)", *c.DayStart)
	}
	if c.DayEnd != nil && !utils.ValidateTimeFormat(*c.DayEnd) {
		return fmt.Errorf("invalid day end %q (expected HH:MM)", *c.DayEnd)
	}
	if c.DefaultDurationMin != nil && *c.DefaultDurationMin <= 0 {
		return fmt.Errorf("default duration must be greater than zero")
	}
	if c.Timezone != nil && !utils.ValidateTimezone(*c.Timezone) {
		return fmt.Errorf("unknown timezone %q", *c.Timezone)
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println(cli.TitleStyle.Render("Current Settings:"))
		fmt.Printf("  Day Start:        %s\n", settings.DayStart)
		fmt.Printf("  Day End:          %s\n", settings.DayEnd)
		fmt.Printf("  Default Duration: %d min\n", settings.DefaultDurationMin)
		fmt.Printf("  Timezone:         %s\n", settings.Timezone)
		return nil
	}

	updated := false
	if c.DayStart != nil {
		settings.DayStart = *c.DayStart
		updated = true
	}
	if c.DayEnd != nil {
		settings.DayEnd = *c.DayEnd
		updated = true
	}
	if c.DefaultDurationMin != nil {
		settings.DefaultDurationMin = *c.DefaultDurationMin
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	start, _ := utils.ParseTimeToMinutes(settings.DayStart)
	end, _ := utils.ParseTimeToMinutes(settings.DayEnd)
	if end <= start {
		return fmt.Errorf("day end %s must be after day start %s", settings.DayEnd, settings.DayStart)
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
