package insights

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/utils"
)

func TestSegment(t *testing.T) {
	history := []models.HistoryEntry{
		done("run", "2026-03-01", "07:00", 30, 30),
		done("run", "2026-03-10", "07:00", 30, 30),
		done("run", "2026-03-12", "07:00", 30, 30),
		done("run", "2026-03-20", "07:00", 30, 30),
	}
	periods := []models.SpecialPeriod{
		{StartDate: "2026-03-10", EndDate: "2026-03-12", CategoryID: "sick"},
		// overlaps the first period; the first match wins
		{StartDate: "2026-03-12", EndDate: "2026-03-20", CategoryID: "vacation"},
	}

	seg := Segment(history, periods)

	require.Len(t, seg.Normal, 1)
	assert.Equal(t, "2026-03-01", seg.Normal[0].Date)
	assert.Len(t, seg.Period, 3)
	assert.Len(t, seg.Breakdown["sick"], 2)
	assert.Len(t, seg.Breakdown["vacation"], 1)
	assert.Equal(t, "2026-03-20", seg.Breakdown["vacation"][0].Date)
}

func TestSegment_NoPeriods(t *testing.T) {
	history := []models.HistoryEntry{done("run", day(0), "07:00", 30, 30)}
	seg := Segment(history, nil)
	assert.Len(t, seg.Normal, 1)
	assert.Empty(t, seg.Period)
	assert.Empty(t, seg.Breakdown)
}

func TestAnalyzeTimes(t *testing.T) {
	tests := []struct {
		name      string
		starts    []string
		wantTime  bool
		wantAvg   string
		wantCount int
	}{
		{
			name:      "tight cluster emits time pattern",
			starts:    []string{"09:00", "09:05", "09:10", "08:55", "09:02"},
			wantTime:  true,
			wantAvg:   "09:02",
			wantCount: 5,
		},
		{
			name:     "spread across the day emits nothing",
			starts:   []string{"08:00", "14:00", "20:00"},
			wantTime: false,
		},
		{
			name:     "fewer than three samples emits nothing",
			starts:   []string{"09:00", "09:00"},
			wantTime: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var history []models.HistoryEntry
			// consecutive days so no weekday gets two samples
			for i, start := range tt.starts {
				history = append(history, done("read", day(i+1), start, 30, 30))
			}

			patterns := AnalyzeTimes(history, []models.Task{task("read", 30)})
			timePatterns := patternsOfType(patterns, constants.PatternTime)
			if !tt.wantTime {
				assert.Empty(t, timePatterns)
				return
			}
			require.Len(t, timePatterns, 1)
			p := timePatterns[0]
			assert.Equal(t, "time:read", p.ID)
			assert.Equal(t, tt.wantAvg, p.Time.AverageTime)
			assert.Equal(t, tt.wantCount, p.SampleSize)
			assert.InDelta(t, 0.5, p.Confidence, 1e-9)
			assert.Empty(t, patternsOfType(patterns, constants.PatternTimeDay))

			var sum float64
			for _, s := range tt.starts {
				m, err := utils.ParseTimeToMinutes(s)
				require.NoError(t, err)
				sum += float64(m)
			}
			avg, err := utils.ParseTimeToMinutes(p.Time.AverageTime)
			require.NoError(t, err)
			assert.InDelta(t, sum/float64(len(tt.starts)), float64(avg), 1)
		})
	}
}

func TestAnalyzeTimes_DaySpecific(t *testing.T) {
	history := []models.HistoryEntry{
		// Tuesdays early, other days late
		done("gym", day(2), "06:30", 60, 60),
		done("gym", day(9), "06:40", 60, 60),
		done("gym", day(16), "06:35", 60, 60),
		done("gym", day(4), "18:00", 60, 60),
		done("gym", day(11), "18:10", 60, 60),
		// a single Friday sample cannot form a weekday pattern
		done("gym", day(5), "12:00", 60, 60),
	}

	patterns := AnalyzeTimes(history, []models.Task{task("gym", 60)})

	assert.Empty(t, patternsOfType(patterns, constants.PatternTime), "overall spread is too wide")
	dayPatterns := patternsOfType(patterns, constants.PatternTimeDay)
	require.Len(t, dayPatterns, 2)

	tue, ok := findPattern(dayPatterns, "time_day:gym:2")
	require.True(t, ok)
	assert.Equal(t, "06:35", tue.Time.AverageTime)
	assert.Equal(t, 3, tue.SampleSize)
	assert.InDelta(t, 0.6, tue.Confidence, 1e-9)
	require.NoError(t, tue.Validate())

	thu, ok := findPattern(dayPatterns, "time_day:gym:4")
	require.True(t, ok)
	assert.Equal(t, "18:05", thu.Time.AverageTime)
	assert.Equal(t, 2, thu.SampleSize)
}

func TestAnalyzeTimes_SkipsUnusableEntries(t *testing.T) {
	history := []models.HistoryEntry{
		done("read", day(1), "09:00", 30, 30),
		done("read", day(2), "09:00", 30, 30),
		skipped("read", day(3), "09:00", 30),
		{TaskID: "read", Date: day(4), Status: constants.StatusCompleted},
		done("ghost", day(5), "09:00", 30, 30),
	}

	patterns := AnalyzeTimes(history, []models.Task{task("read", 30)})
	assert.Empty(t, patterns)
}

func TestAnalyzeDurations(t *testing.T) {
	var history []models.HistoryEntry
	for i := 0; i < 6; i++ {
		history = append(history, done("write", day(i), "09:00", 30, 45))
		history = append(history, done("email", day(i), "13:00", 60, 40))
	}
	// no actual duration recorded
	history = append(history, models.HistoryEntry{TaskID: "write", Date: day(7), PlannedDuration: 30, Status: constants.StatusCompleted})

	patterns := AnalyzeDurations(history, []models.Task{task("write", 30), task("email", 60)})
	require.Len(t, patterns, 2)

	write, ok := findPattern(patterns, "duration:write")
	require.True(t, ok)
	assert.Equal(t, models.DurationStats{AverageActual: 45, AveragePlanned: 30, Difference: 15, PercentDifference: 50}, *write.Duration)
	assert.Equal(t, 6, write.SampleSize)
	assert.InDelta(t, 0.6, write.Confidence, 1e-9)

	email, ok := findPattern(patterns, "duration:email")
	require.True(t, ok)
	assert.Equal(t, -20, email.Duration.Difference)
	assert.InDelta(t, -33.3, email.Duration.PercentDifference, 1e-9)
}

func TestAnalyzeDurations_HardGate(t *testing.T) {
	history := []models.HistoryEntry{
		done("write", day(0), "09:00", 30, 90),
		done("write", day(1), "09:00", 30, 90),
	}
	assert.Empty(t, AnalyzeDurations(history, []models.Task{task("write", 30)}))
}

func TestAnalyzeFrequency(t *testing.T) {
	history := []models.HistoryEntry{
		done("yoga", day(1), "07:00", 30, 30),  // Monday
		done("yoga", day(3), "07:00", 30, 30),  // Wednesday
		done("yoga", day(8), "07:00", 30, 30),  // Monday
		done("yoga", day(15), "07:00", 30, 30), // Monday
		skipped("yoga", day(10), "07:00", 30),
	}

	patterns := AnalyzeFrequency(history, []models.Task{task("yoga", 30), task("idle", 30)})
	require.Len(t, patterns, 1)

	p := patterns[0]
	assert.Equal(t, "frequency:yoga", p.ID)
	assert.Equal(t, 4, p.Frequency.TotalOccurrences)
	assert.Equal(t, 4, p.Frequency.UniqueDays)
	assert.Equal(t, 2.0, p.Frequency.TimesPerWeek)
	assert.Equal(t, []models.DayPreference{
		{Day: 1, Count: 3, Percentage: 75},
		{Day: 3, Count: 1, Percentage: 25},
	}, p.Frequency.PreferredDays)
	assert.InDelta(t, 4.0/15.0, p.Confidence, 1e-9)
}

func TestAnalyzeFrequency_SingleDate(t *testing.T) {
	history := []models.HistoryEntry{
		done("yoga", day(1), "07:00", 30, 30),
		done("yoga", day(1), "19:00", 30, 30),
	}
	assert.Nil(t, AnalyzeFrequency(history, []models.Task{task("yoga", 30)}))
}

func TestAnalyzeFrequency_TopThreeDays(t *testing.T) {
	var history []models.HistoryEntry
	for i := 0; i < 7; i++ {
		// weekday i gets 7-i completions
		for j := 0; j < 7-i; j++ {
			history = append(history, done("walk", day(i+7*j), "18:00", 20, 20))
		}
	}

	patterns := AnalyzeFrequency(history, []models.Task{task("walk", 20)})
	require.Len(t, patterns, 1)
	prefs := patterns[0].Frequency.PreferredDays
	require.Len(t, prefs, constants.FrequencyTopDays)
	assert.Equal(t, []int{0, 1, 2}, []int{prefs[0].Day, prefs[1].Day, prefs[2].Day})
	assert.Equal(t, 1.0, patterns[0].Confidence)
}

func TestTopDays_KeepsOneDecimal(t *testing.T) {
	var counts [constants.DaysPerWeek]int
	counts[time.Monday] = 41
	counts[time.Tuesday] = 10

	prefs := topDays(counts, 51)
	require.Len(t, prefs, 2)
	assert.Equal(t, 80.4, prefs[0].Percentage)
	assert.Equal(t, 19.6, prefs[1].Percentage, "must not round up to the routine threshold")
}

func TestAnalyzeSequences(t *testing.T) {
	var history []models.HistoryEntry
	for i := 0; i < 4; i++ {
		history = append(history,
			done("coffee", day(i), "07:00", 10, 10),
			done("news", day(i), "07:15", 20, 20), // 5 min after coffee ends
		)
	}
	// different dates never form a transition
	history = append(history, done("news", day(10), "23:00", 20, 20), done("coffee", day(11), "06:00", 10, 10))

	patterns := AnalyzeSequences(history)
	require.Len(t, patterns, 1)
	p := patterns[0]
	assert.Equal(t, "sequence:coffee->news", p.ID)
	assert.Equal(t, 4, p.Sequence.Count)
	require.NotNil(t, p.Sequence.AverageGap)
	assert.Equal(t, 5, *p.Sequence.AverageGap)
	assert.InDelta(t, 0.4, p.Confidence, 1e-9)
}

func TestAnalyzeSequences_DiscardsLongGaps(t *testing.T) {
	var history []models.HistoryEntry
	for i := 0; i < 3; i++ {
		history = append(history,
			done("lunch", day(i), "12:00", 30, 30),
			done("nap", day(i), "17:00", 30, 30), // 270 min gap
		)
	}

	patterns := AnalyzeSequences(history)
	require.Len(t, patterns, 1)
	assert.Equal(t, 3, patterns[0].Sequence.Count)
	assert.Nil(t, patterns[0].Sequence.AverageGap)
}

func TestAnalyzeSequences_CapsAtTwenty(t *testing.T) {
	var history []models.HistoryEntry
	d := 0
	for k := 0; k < 25; k++ {
		from, to := fmt.Sprintf("a%02d", k), fmt.Sprintf("b%02d", k)
		for n := 0; n < 3+k; n++ {
			history = append(history,
				done(from, day(d), "08:00", 30, 30),
				done(to, day(d), "08:40", 30, 30),
			)
			d++
		}
	}

	patterns := AnalyzeSequences(history)
	require.Len(t, patterns, constants.SequenceMaxPatterns)
	assert.Equal(t, 27, patterns[0].Sequence.Count)
	assert.Equal(t, 8, patterns[len(patterns)-1].Sequence.Count)
	for i := 1; i < len(patterns); i++ {
		assert.GreaterOrEqual(t, patterns[i-1].Sequence.Count, patterns[i].Sequence.Count)
	}
}

func TestAnalyzeCompletion(t *testing.T) {
	history := []models.HistoryEntry{
		done("study", day(1), "08:00", 60, 60),
		done("study", day(2), "08:30", 60, 60),
		skipped("study", day(3), "20:00", 60),
		skipped("study", day(8), "20:00", 60),
		skipped("ghost", day(8), "20:00", 60),
	}

	stats := AnalyzeCompletion(history, []models.Task{task("study", 60)})
	require.Len(t, stats, 1)
	cs := stats["study"]
	assert.Equal(t, 2, cs.Completed)
	assert.Equal(t, 2, cs.Skipped)
	assert.InDelta(t, 0.5, cs.Rate(), 1e-9)
	assert.Equal(t, Tally{Completed: 2}, *cs.ByHour[8])
	assert.Equal(t, Tally{Skipped: 2}, *cs.ByHour[20])
	assert.Equal(t, Tally{Completed: 1, Skipped: 1}, *cs.ByDay[1])
}

// Every analyzer keeps confidence within [0,1] and emits well-formed patterns
// for arbitrary histories, including empty ones.
func TestAnalyzers_ConfidenceBound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tasks := []models.Task{task("a", 30), task("b", 45), task("c", 60), task("d", 15)}

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(120)
		var history []models.HistoryEntry
		for i := 0; i < n; i++ {
			tk := tasks[rng.Intn(len(tasks))]
			date := day(rng.Intn(60))
			start := utils.MinutesToTime(rng.Intn(18*60) + 5*60)
			if rng.Intn(4) == 0 {
				history = append(history, skipped(tk.ID, date, start, tk.DefaultDuration))
				continue
			}
			history = append(history, done(tk.ID, date, start, tk.DefaultDuration, 5+rng.Intn(120)))
		}

		var patterns []models.Pattern
		patterns = append(patterns, AnalyzeTimes(history, tasks)...)
		patterns = append(patterns, AnalyzeDurations(history, tasks)...)
		patterns = append(patterns, AnalyzeFrequency(history, tasks)...)
		patterns = append(patterns, AnalyzeSequences(history)...)

		for _, p := range patterns {
			require.GreaterOrEqual(t, p.Confidence, 0.0, "iteration %d pattern %s", iter, p.ID)
			require.LessOrEqual(t, p.Confidence, 1.0, "iteration %d pattern %s", iter, p.ID)
			require.NoError(t, p.Validate(), "iteration %d", iter)
		}
	}
}
