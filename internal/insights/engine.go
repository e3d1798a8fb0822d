package insights

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/cadence/internal/constants"
	"github.com/julianstephens/cadence/internal/logger"
	"github.com/julianstephens/cadence/internal/models"
	"github.com/julianstephens/cadence/internal/storage"
)

// Store is the data access the engine needs. storage.Provider satisfies it.
type Store interface {
	storage.SettingReader
	GetAllTasks() ([]models.Task, error)
	GetAllHistory() ([]models.HistoryEntry, error)
	GetAllScheduledInstances() ([]models.ScheduledInstance, error)
	GetAllPatterns() ([]models.Pattern, error)
	SavePattern(models.Pattern) (models.Pattern, error)
}

// Result is the outcome of one analysis run
type Result struct {
	Insights []models.Insight `json:"insights"`
	Patterns []models.Pattern `json:"patterns"`
}

// Engine mines history for patterns and turns them into insights and routine suggestions
type Engine struct {
	store Store
	now   func() time.Time
}

// NewEngine creates a new Engine backed by store
func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// snapshot is everything an analysis run reads from the store
type snapshot struct {
	tasks      []models.Task
	history    []models.HistoryEntry
	schedule   []models.ScheduledInstance
	patterns   []models.Pattern
	periods    []models.SpecialPeriod
	categories []models.PeriodCategory
}

func (e *Engine) load() (snapshot, error) {
	var s snapshot
	var err error
	if s.tasks, err = e.store.GetAllTasks(); err != nil {
		return s, fmt.Errorf("failed to get tasks: %w", err)
	}
	if s.history, err = e.store.GetAllHistory(); err != nil {
		return s, fmt.Errorf("failed to get history: %w", err)
	}
	if s.schedule, err = e.store.GetAllScheduledInstances(); err != nil {
		return s, fmt.Errorf("failed to get scheduled instances: %w", err)
	}
	if s.patterns, err = e.store.GetAllPatterns(); err != nil {
		return s, fmt.Errorf("failed to get patterns: %w", err)
	}
	if s.periods, err = storage.GetJSONSetting(e.store, constants.SettingSpecialPeriods, []models.SpecialPeriod{}); err != nil {
		return s, err
	}
	if s.categories, err = storage.GetJSONSetting(e.store, constants.SettingPeriodCategories, []models.PeriodCategory{}); err != nil {
		return s, err
	}
	return s, nil
}

// patternSet holds the output of the pattern analyzers for one run
type patternSet struct {
	time       []models.Pattern
	duration   []models.Pattern
	frequency  []models.Pattern
	sequence   []models.Pattern
	completion map[string]*CompletionStats
}

func (ps patternSet) all() []models.Pattern {
	var out []models.Pattern
	out = append(out, ps.time...)
	out = append(out, ps.duration...)
	out = append(out, ps.frequency...)
	out = append(out, ps.sequence...)
	return out
}

// Analyze recomputes every pattern from the full history, persists them, and
// returns the top insights together with the stored patterns. With too little
// history it returns a single progress insight and leaves patterns untouched.
func (e *Engine) Analyze(ctx context.Context) (Result, error) {
	start := e.now()
	snap, err := e.load()
	if err != nil {
		return Result{}, err
	}

	if len(snap.history) < constants.MinHistoryForAnalysis {
		logger.Debug("Not enough history for analysis", "entries", len(snap.history), "required", constants.MinHistoryForAnalysis)
		return Result{
			Insights: []models.Insight{needMoreDataInsight(len(snap.history))},
			Patterns: snap.patterns,
		}, nil
	}

	seg := Segment(snap.history, snap.periods)
	ps, err := runAnalyzers(ctx, seg.Normal, snap.tasks)
	if err != nil {
		return Result{}, err
	}
	periodPatterns := analyzePeriods(seg, snap.tasks, snap.categories)

	index := models.NewTaskIndex(snap.tasks)
	var insights []models.Insight
	insights = append(insights, TimeInsights(ps.time, index)...)
	insights = append(insights, DurationInsights(ps.duration, index)...)
	insights = append(insights, FrequencyInsights(ps.frequency, index)...)
	insights = append(insights, SequenceInsights(ps.sequence, index)...)
	insights = append(insights, CompletionInsights(ps.completion, snap.tasks)...)
	insights = append(insights, GlobalInsights(seg.Normal, snap.schedule)...)
	if len(seg.Period) > 0 {
		insights = append(insights, periodSummaryInsight(len(seg.Period)))
	}

	computed := append(ps.all(), periodPatterns...)
	if err := e.persist(ctx, computed); err != nil {
		return Result{}, err
	}
	stored, err := e.store.GetAllPatterns()
	if err != nil {
		return Result{}, fmt.Errorf("failed to get patterns: %w", err)
	}

	insights = rank(insights)
	logger.Debug("Analysis complete",
		"history", len(snap.history),
		"normal", len(seg.Normal),
		"period", len(seg.Period),
		"time", len(ps.time),
		"duration", len(ps.duration),
		"frequency", len(ps.frequency),
		"sequence", len(ps.sequence),
		"periodPatterns", len(periodPatterns),
		"insights", len(insights),
		"elapsed", e.now().Sub(start),
	)
	return Result{Insights: insights, Patterns: stored}, nil
}

// runAnalyzers runs the independent analyzers concurrently over the same read-only input
func runAnalyzers(ctx context.Context, history []models.HistoryEntry, tasks []models.Task) (patternSet, error) {
	var ps patternSet
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ps.time = AnalyzeTimes(history, tasks)
		return gctx.Err()
	})
	g.Go(func() error {
		ps.duration = AnalyzeDurations(history, tasks)
		return gctx.Err()
	})
	g.Go(func() error {
		ps.frequency = AnalyzeFrequency(history, tasks)
		return gctx.Err()
	})
	g.Go(func() error {
		ps.sequence = AnalyzeSequences(history)
		return gctx.Err()
	})
	g.Go(func() error {
		ps.completion = AnalyzeCompletion(history, tasks)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return patternSet{}, fmt.Errorf("analysis cancelled: %w", err)
	}
	return ps, nil
}

// analyzePeriods mines time patterns separately for each special-period
// category with enough entries. Categories are visited in id order.
func analyzePeriods(seg Segments, tasks []models.Task, categories []models.PeriodCategory) []models.Pattern {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	ids := make([]string, 0, len(seg.Breakdown))
	for id := range seg.Breakdown {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []models.Pattern
	for _, id := range ids {
		entries := seg.Breakdown[id]
		if len(entries) < constants.MinPeriodEntries {
			continue
		}
		name := names[id]
		if name == "" {
			name = id
		}
		for _, p := range AnalyzeTimes(entries, tasks) {
			out = append(out, p.WithPeriod(id, name))
		}
	}
	return out
}

// persist upserts each pattern, stopping at the first failure. Patterns saved
// before the failure stay saved.
func (e *Engine) persist(ctx context.Context, patterns []models.Pattern) error {
	now := e.now()
	for _, p := range patterns {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.UpdatedAt = now
		if _, err := e.store.SavePattern(p); err != nil {
			logger.Error("Failed to save pattern", "id", p.ID, "error", err)
			return fmt.Errorf("failed to save pattern %s: %w", p.ID, err)
		}
	}
	return nil
}

// rank orders insights by priority, keeping generator order on ties, and keeps the top ones
func rank(insights []models.Insight) []models.Insight {
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority > insights[j].Priority
	})
	if len(insights) > constants.MaxInsights {
		insights = insights[:constants.MaxInsights]
	}
	return insights
}

func needMoreDataInsight(have int) models.Insight {
	return models.Insight{
		Type:  constants.InsightInfo,
		Title: "Keep logging",
		Text: fmt.Sprintf("Insights unlock after %d logged tasks. You have %d so far, %d to go.",
			constants.MinHistoryForAnalysis, have, constants.MinHistoryForAnalysis-have),
		Priority: constants.NeedMoreDataPriority,
	}
}

func periodSummaryInsight(count int) models.Insight {
	return models.Insight{
		Type:     constants.InsightInfo,
		Title:    "Special periods excluded",
		Text:     fmt.Sprintf("%d entries fall inside special periods and are left out of your routine statistics.", count),
		Priority: constants.PeriodSummaryPriority,
	}
}
