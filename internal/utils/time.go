package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
)

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// GetTodayFromSettings returns today's date string (YYYY-MM-DD) using the timezone from settings.
func GetTodayFromSettings(settings models.Settings) (string, error) {
	return GetTodayInTimezone(settings.Timezone)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToTime formats minutes from midnight as HH:MM. Values outside a single
// day wrap around midnight.
func MinutesToTime(minutes int) string {
	minutes %= constants.MinutesPerDay
	if minutes < 0 {
		minutes += constants.MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/constants.MinutesPerHour, minutes%constants.MinutesPerHour)
}

// AddMinutes adds a duration in minutes to an HH:MM time string.
func AddMinutes(timeStr string, minutes int) (string, error) {
	start, err := ParseTimeToMinutes(timeStr)
	if err != nil {
		return "", err
	}
	return MinutesToTime(start + minutes), nil
}

// MinutesBetween returns end minus start in minutes for two HH:MM strings.
func MinutesBetween(startStr, endStr string) (int, error) {
	start, err := ParseTimeToMinutes(startStr)
	if err != nil {
		return 0, err
	}
	end, err := ParseTimeToMinutes(endStr)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// WeekdayOf returns the weekday of a YYYY-MM-DD date.
func WeekdayOf(dateStr string) (time.Weekday, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return 0, err
	}
	return d.Weekday(), nil
}

// DaysBetween returns the number of whole days from start to end (YYYY-MM-DD).
func DaysBetween(startStr, endStr string) (int, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start).Hours() / 24), nil
}

// IsWeekend reports whether the weekday falls on Saturday or Sunday.
func IsWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
