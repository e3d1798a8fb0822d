package constants

// InsightType classifies a generated insight
type InsightType string

// PatternType tags the variant of a persisted pattern
type PatternType string

// ActionType names the machine-readable suggestion carried by an actionable insight
type ActionType string

const (
	// Insight types
	InsightPattern      InsightType = "pattern"
	InsightOptimization InsightType = "optimization"
	InsightAchievement  InsightType = "achievement"
	InsightInsight      InsightType = "insight"
	InsightInfo         InsightType = "info"

	// Pattern types
	PatternTime      PatternType = "time"
	PatternTimeDay   PatternType = "time_day"
	PatternDuration  PatternType = "duration"
	PatternFrequency PatternType = "frequency"
	PatternSequence  PatternType = "sequence"

	// Action types
	ActionAdjustDuration ActionType = "adjust_duration"
	ActionSuggestTime    ActionType = "suggest_time"
)

// Engine gates and output limits
const (
	MinHistoryForAnalysis = 5
	MaxInsights           = 10
	MinPeriodEntries      = 3
)

// Time-of-day analyzer
const (
	TimeMinSamples        = 3
	TimeMaxStdDevMin      = 60.0
	TimeConfidenceSamples = 10.0

	TimeDayMinSamples        = 2
	TimeDayMaxStdDevMin      = 45.0
	TimeDayConfidenceSamples = 5.0
)

// Duration analyzer
const (
	DurationMinSamples        = 3
	DurationConfidenceSamples = 10.0
)

// Frequency analyzer
const (
	FrequencyMinDistinctDates  = 2
	FrequencyTopDays           = 3
	FrequencyConfidenceSamples = 15.0
)

// Sequence analyzer
const (
	SequenceMinCount          = 3
	SequenceMaxGapMin         = 240
	SequenceMaxPatterns       = 20
	SequenceConfidenceSamples = 10.0
)

// Insight generator thresholds and priority weights
const (
	TimeInsightMinConfidence     = 0.6
	TimeInsightPriorityWeight    = 5.0
	TimeDayInsightMinConfidence  = 0.7
	TimeDayInsightPriorityWeight = 6.0

	DurationInsightMinPercent      = 20.0
	DurationInsightMinSamples      = 5
	DurationOverestimateMinMinutes = 15
	DurationUnderPriorityDivisor   = 10.0
	DurationUnderPriorityCap       = 8.0
	DurationOverPriorityDivisor    = 15.0
	DurationOverPriorityCap        = 6.0

	FrequencyInsightMinTopShare    = 40.0
	FrequencyInsightListedShare    = 25.0
	FrequencyInsightPriorityWeight = 4.0

	SequenceInsightMaxCount       = 3
	SequenceInsightMinConfidence  = 0.5
	SequenceInsightRightAfterMin  = 15
	SequenceInsightPriorityWeight = 5.0

	CompletionInsightMinTotal     = 5
	CompletionLowRate             = 0.5
	CompletionLowMinTotal         = 8
	CompletionBucketMinSamples    = 2
	CompletionBetterHourMargin    = 0.2
	CompletionBetterHourPriority  = 7.0
	CompletionBetterDayMargin     = 0.25
	CompletionBetterDayPriority   = 6.0
	CompletionHighRate            = 0.9
	CompletionHighMinTotal        = 10
	CompletionAchievementPriority = 3.0

	DeadTimeMinAverageGapMin = 45.0
	DeadTimePriority         = 5.0

	PeakWindowMinCompletions = 5
	PeakWindowPriority       = 6.0

	WeekdayWeekendMinDiffPoints = 15.0
	WeekdayWeekendMinWeekday    = 10
	WeekdayWeekendMinWeekend    = 5
	WeekdayWeekendPriority      = 4.0

	NeedMoreDataPriority  = 10.0
	PeriodSummaryPriority = 1.0
)

// Routine suggestion generator
const (
	RoutineMinDayShare      = 20.0
	RoutineDaySpecificBoost = 1.2
)
