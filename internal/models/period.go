package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
)

// SpecialPeriod is a labeled date range (vacation, illness, ...) excluded from routine statistics
type SpecialPeriod struct {
	StartDate  string `json:"startDate"` // YYYY-MM-DD format
	EndDate    string `json:"endDate"`   // YYYY-MM-DD format
	CategoryID string `json:"categoryId"`
}

func (p *SpecialPeriod) Validate() error {
	start, err := time.Parse(constants.DateFormat, p.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date format (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse(constants.DateFormat, p.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date format (expected YYYY-MM-DD): %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", p.EndDate, p.StartDate)
	}
	if p.CategoryID == "" {
		return fmt.Errorf("special period must have a category")
	}
	return nil
}

// Contains reports whether date falls inside the period, bounds inclusive.
// Zero-padded ISO dates order lexicographically.
func (p *SpecialPeriod) Contains(date string) bool {
	return p.StartDate <= date && date <= p.EndDate
}

// PeriodCategory labels a kind of special period
type PeriodCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
