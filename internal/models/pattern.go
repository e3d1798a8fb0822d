package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/cadence/internal/constants"
)

// NoDay marks a PatternKey that is not bound to a weekday
const NoDay = -1

// PatternKey is the composite identity of a pattern. Recomputing the same fact
// yields the same key, so saving a pattern replaces its previous version.
type PatternKey struct {
	Type           constants.PatternType
	TaskID         string
	DayOfWeek      int    // NoDay unless Type is time_day
	ToTaskID       string // sequence patterns only
	PeriodCategory string // set for patterns mined from a special period
}

// String renders the key as the persisted pattern id
func (k PatternKey) String() string {
	var b strings.Builder
	b.WriteString(string(k.Type))
	b.WriteByte(':')
	b.WriteString(k.TaskID)
	if k.DayOfWeek != NoDay {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(k.DayOfWeek))
	}
	if k.ToTaskID != "" {
		b.WriteString("->")
		b.WriteString(k.ToTaskID)
	}
	if k.PeriodCategory != "" {
		b.WriteString("@")
		b.WriteString(k.PeriodCategory)
	}
	return b.String()
}

// TimeStats backs time and time_day patterns
type TimeStats struct {
	AverageTime    string  `json:"average_time"` // HH:MM format
	AverageMinutes float64 `json:"average_minutes"`
	Variance       float64 `json:"variance"` // standard deviation in minutes
	DayOfWeek      *int    `json:"day_of_week,omitempty"`
}

// DurationStats backs duration patterns. Difference and PercentDifference are
// signed: positive when tasks run longer than planned.
type DurationStats struct {
	AverageActual     int     `json:"average_actual"`
	AveragePlanned    int     `json:"average_planned"`
	Difference        int     `json:"difference"`
	PercentDifference float64 `json:"percent_difference"`
}

// DayPreference is one ranked weekday in a frequency pattern
type DayPreference struct {
	Day        int     `json:"day"` // 0=Sunday
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // share of the task's occurrences, 0-100
}

// FrequencyStats backs frequency patterns
type FrequencyStats struct {
	TotalOccurrences int             `json:"total_occurrences"`
	UniqueDays       int             `json:"unique_days"`
	TimesPerWeek     float64         `json:"times_per_week"`
	PreferredDays    []DayPreference `json:"preferred_days"`
}

// PreferredDay returns the preference entry for the given weekday
func (f *FrequencyStats) PreferredDay(day time.Weekday) (DayPreference, bool) {
	for _, p := range f.PreferredDays {
		if p.Day == int(day) {
			return p, true
		}
	}
	return DayPreference{}, false
}

// SequenceStats backs sequence patterns
type SequenceStats struct {
	FromTaskID string `json:"from_task_id"`
	ToTaskID   string `json:"to_task_id"`
	Count      int    `json:"count"`
	AverageGap *int   `json:"average_gap,omitempty"` // minutes, nil when no gap was measurable
}

// Pattern is a persisted statistical fact about task behavior. Exactly one of
// the variant payloads is set, matching Type.
type Pattern struct {
	ID                 string                `json:"id"`
	Type               constants.PatternType `json:"type"`
	TaskID             string                `json:"task_id"`
	SampleSize         int                   `json:"sample_size"`
	Confidence         float64               `json:"confidence"`
	PeriodCategory     string                `json:"period_category,omitempty"`
	PeriodCategoryName string                `json:"period_category_name,omitempty"`

	Time      *TimeStats      `json:"time,omitempty"`
	Duration  *DurationStats  `json:"duration,omitempty"`
	Frequency *FrequencyStats `json:"frequency,omitempty"`
	Sequence  *SequenceStats  `json:"sequence,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewTimePattern(taskID string, stats TimeStats, sampleSize int, confidence float64) Pattern {
	typ := constants.PatternTime
	if stats.DayOfWeek != nil {
		typ = constants.PatternTimeDay
	}
	p := Pattern{Type: typ, TaskID: taskID, SampleSize: sampleSize, Confidence: confidence, Time: &stats}
	p.ID = p.Key().String()
	return p
}

func NewDurationPattern(taskID string, stats DurationStats, sampleSize int, confidence float64) Pattern {
	p := Pattern{Type: constants.PatternDuration, TaskID: taskID, SampleSize: sampleSize, Confidence: confidence, Duration: &stats}
	p.ID = p.Key().String()
	return p
}

func NewFrequencyPattern(taskID string, stats FrequencyStats, confidence float64) Pattern {
	p := Pattern{Type: constants.PatternFrequency, TaskID: taskID, SampleSize: stats.TotalOccurrences, Confidence: confidence, Frequency: &stats}
	p.ID = p.Key().String()
	return p
}

func NewSequencePattern(stats SequenceStats, confidence float64) Pattern {
	p := Pattern{Type: constants.PatternSequence, TaskID: stats.FromTaskID, SampleSize: stats.Count, Confidence: confidence, Sequence: &stats}
	p.ID = p.Key().String()
	return p
}

// WithPeriod tags the pattern as mined from a special-period category and
// re-derives its id so it does not collide with the everyday pattern.
func (p Pattern) WithPeriod(categoryID, categoryName string) Pattern {
	p.PeriodCategory = categoryID
	p.PeriodCategoryName = categoryName
	p.ID = p.Key().String()
	return p
}

// Key derives the pattern's composite identity
func (p *Pattern) Key() PatternKey {
	k := PatternKey{Type: p.Type, TaskID: p.TaskID, DayOfWeek: NoDay, PeriodCategory: p.PeriodCategory}
	if p.Type == constants.PatternTimeDay && p.Time != nil && p.Time.DayOfWeek != nil {
		k.DayOfWeek = *p.Time.DayOfWeek
	}
	if p.Type == constants.PatternSequence && p.Sequence != nil {
		k.TaskID = p.Sequence.FromTaskID
		k.ToTaskID = p.Sequence.ToTaskID
	}
	return k
}

// Validate checks that the variant payload matches the type and the confidence is in range
func (p *Pattern) Validate() error {
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("pattern %s: confidence %.3f outside [0,1]", p.ID, p.Confidence)
	}
	var ok bool
	switch p.Type {
	case constants.PatternTime:
		ok = p.Time != nil && p.Time.DayOfWeek == nil
	case constants.PatternTimeDay:
		ok = p.Time != nil && p.Time.DayOfWeek != nil && *p.Time.DayOfWeek >= 0 && *p.Time.DayOfWeek <= 6
	case constants.PatternDuration:
		ok = p.Duration != nil
	case constants.PatternFrequency:
		ok = p.Frequency != nil
	case constants.PatternSequence:
		ok = p.Sequence != nil
	default:
		return fmt.Errorf("pattern %s: unknown type %q", p.ID, p.Type)
	}
	if !ok {
		return fmt.Errorf("pattern %s: payload does not match type %q", p.ID, p.Type)
	}
	return nil
}

// IsRoutine reports whether the pattern describes everyday behavior rather than a special period
func (p *Pattern) IsRoutine() bool {
	return p.PeriodCategory == ""
}
