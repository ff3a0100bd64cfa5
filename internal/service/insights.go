package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lingopulse/insight-server/internal/cluster"
	"github.com/lingopulse/insight-server/internal/model"
	"github.com/lingopulse/insight-server/internal/stats"
	"github.com/lingopulse/insight-server/internal/theme"
)

const (
	dbTimeout = 2 * time.Second

	// Rating thresholds deciding which pool a rated comment joins.
	positiveLegacyMin  = 4 // on the 0-5 scale
	negativeLegacyMax  = 2
	positiveSectionMin = 2.0 // on the 0-3 scale
	negativeSectionMax = 1.0
)

var (
	ErrNoResponses    = errors.New("no responses found")
	ErrStorageFailure = errors.New("storage failure")
)

// InsightService turns the raw response tables into the aggregated,
// de-duplicated analytics bundles the dashboard consumes. Every call re-reads
// the full table; no state is shared between calls.
type InsightService struct {
	storage ResponseRepository
	logger  *zap.Logger
	loc     *time.Location
}

// NewInsightService creates a new InsightService instance. loc is the school
// chain's reporting zone; nil means UTC.
func NewInsightService(storage ResponseRepository, logger *zap.Logger, loc *time.Location) *InsightService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if loc == nil {
		loc = time.UTC
	}
	return &InsightService{
		storage: storage,
		logger:  logger,
		loc:     loc,
	}
}

// SubmitResponse appends one completed legacy-survey response.
func (s *InsightService) SubmitResponse(ctx context.Context, rec model.ResponseRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().In(s.loc)
	}
	rec.LessonsRating = clampRating(rec.LessonsRating, 5)
	rec.TeacherRating = clampRating(rec.TeacherRating, 5)

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.AppendResponse(dbCtx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	s.logger.Info("response recorded",
		zap.String("campus", string(rec.Campus)),
		zap.String("teacher", rec.Teacher))
	return nil
}

// SubmitSectioned appends one sectioned-survey response.
func (s *InsightService) SubmitSectioned(ctx context.Context, rec model.SectionedResponseRecord) error {
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().In(s.loc)
	}
	// Clamp into a fresh map; the caller's sections stay untouched.
	clamped := make(map[model.SectionName]model.Section, len(rec.Sections))
	for name, section := range rec.Sections {
		for i, score := range section.Scores {
			section.Scores[i] = clampRating(score, 3)
		}
		clamped[name] = section
	}
	rec.Sections = clamped

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.AppendSectioned(dbCtx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	s.logger.Info("sectioned response recorded", zap.String("id", rec.ID))
	return nil
}

// Overview builds the whole-school analytics bundle as of now.
func (s *InsightService) Overview(ctx context.Context, now time.Time) (OverviewSummary, error) {
	records, err := s.listResponses(ctx)
	if err != nil {
		return OverviewSummary{}, err
	}

	now = now.In(s.loc)
	thisMonth := stats.FilterLegacy(records, stats.ThisMonth(now))
	lastMonth := stats.FilterLegacy(records, stats.LastMonth(now))

	monthScore, monthOK := stats.CompositeScore(thisMonth)
	prevScore, prevOK := stats.CompositeScore(lastMonth)
	trend, _ := stats.Trend(monthScore, monthOK, prevScore, prevOK)

	positive, negative := commentPools(records)

	summary := OverviewSummary{
		TotalResponses:   len(records),
		CompositeScore:   optional(stats.CompositeScore(records)),
		LessonsAverage:   optional(stats.LessonsAverage(records)),
		TeacherAverage:   optional(stats.TeacherAverage(records)),
		ThisWeekCount:    len(stats.FilterLegacy(records, stats.ThisWeek(now))),
		ThisMonthCount:   len(thisMonth),
		ThisMonthScore:   optional(monthScore, monthOK),
		LastMonthScore:   optional(prevScore, prevOK),
		Trend:            trend,
		PositiveClusters: cluster.Comments(positive),
		NegativeClusters: cluster.Comments(negative),
		Themes:           theme.Count(suggestions(records)),
	}

	s.logger.Info("overview computed",
		zap.Int("responses", summary.TotalResponses),
		zap.Int("this_month", summary.ThisMonthCount))
	return summary, nil
}

// GroupInsights aggregates per campus or per teacher, sorted by composite
// score descending with absent scores last and ties broken by key.
func (s *InsightService) GroupInsights(ctx context.Context, groupBy GroupBy) ([]GroupSummary, error) {
	records, err := s.listResponses(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.ResponseRecord)
	var keys []string
	for _, r := range records {
		key := groupKey(r, groupBy)
		if key == "" {
			continue
		}
		if _, ok := grouped[key]; !ok {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], r)
	}

	out := make([]GroupSummary, 0, len(keys))
	for _, key := range keys {
		members := grouped[key]
		positive, negative := commentPools(members)
		out = append(out, GroupSummary{
			Key:              key,
			Count:            len(members),
			CompositeScore:   optional(stats.CompositeScore(members)),
			LessonsAverage:   optional(stats.LessonsAverage(members)),
			TeacherAverage:   optional(stats.TeacherAverage(members)),
			PositiveClusters: cluster.Comments(positive),
			NegativeClusters: cluster.Comments(negative),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CompositeScore, out[j].CompositeScore
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && *a != *b:
			return *a > *b
		default:
			return out[i].Key < out[j].Key
		}
	})
	return out, nil
}

// RangeScore computes the composite score over an inclusive date range and
// the trend against the equal-length window before it.
func (s *InsightService) RangeScore(ctx context.Context, start, end time.Time) (RangeScore, error) {
	records, err := s.listResponses(ctx)
	if err != nil {
		return RangeScore{}, err
	}

	window := stats.CustomRange(start, end, s.loc)
	current := stats.FilterLegacy(records, window)
	previous := stats.FilterLegacy(records, stats.PreviousWindow(window))

	score, scoreOK := stats.CompositeScore(current)
	prevScore, prevOK := stats.CompositeScore(previous)
	trend, _ := stats.Trend(score, scoreOK, prevScore, prevOK)

	return RangeScore{
		Start:         window.Start,
		End:           window.End,
		Count:         len(current),
		Score:         optional(score, scoreOK),
		PreviousScore: optional(prevScore, prevOK),
		Trend:         trend,
	}, nil
}

// SectionedOverview aggregates the twenty-question survey responses.
func (s *InsightService) SectionedOverview(ctx context.Context) (SectionedSummary, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	records, err := s.storage.ListSectioned(dbCtx)
	if err != nil {
		return SectionedSummary{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(records) == 0 {
		return SectionedSummary{}, ErrNoResponses
	}

	complete := 0
	var positive, negative []string
	for _, r := range records {
		if r.Complete() {
			complete++
		}
		for _, name := range model.SectionNames {
			section, ok := r.Sections[name]
			if !ok || section.Comment == "" {
				continue
			}
			avg, avgOK := section.Average()
			switch {
			case avgOK && avg >= positiveSectionMin:
				positive = append(positive, section.Comment)
			case avgOK && avg <= negativeSectionMax:
				negative = append(negative, section.Comment)
			}
		}
		if r.FinalComment != "" {
			overall, ok := r.OverallAverage()
			switch {
			case ok && overall >= positiveSectionMin:
				positive = append(positive, r.FinalComment)
			case ok && overall <= negativeSectionMax:
				negative = append(negative, r.FinalComment)
			}
		}
	}

	sectionAverages := make([]SectionScore, 0, len(model.SectionNames))
	for _, name := range model.SectionNames {
		sectionAverages = append(sectionAverages, SectionScore{
			Section: string(name),
			Average: optional(stats.SectionAverage(records, name)),
		})
	}

	return SectionedSummary{
		TotalResponses:    len(records),
		CompleteResponses: complete,
		OverallAverage:    optional(stats.SectionedOverall(records)),
		SectionAverages:   sectionAverages,
		PositiveClusters:  cluster.Comments(positive),
		NegativeClusters:  cluster.Comments(negative),
	}, nil
}

// ExportResponses returns the full legacy table for the CSV exporter.
func (s *InsightService) ExportResponses(ctx context.Context) ([]model.ResponseRecord, error) {
	return s.listResponses(ctx)
}

func (s *InsightService) listResponses(ctx context.Context) ([]model.ResponseRecord, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	records, err := s.storage.ListResponses(dbCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(records) == 0 {
		return nil, ErrNoResponses
	}
	return records, nil
}

// commentPools splits each record's comments into the positive and negative
// pools. Catch-all fields are always eligible; a rated comment joins at most
// one pool, decided by the rating it is attached to.
func commentPools(records []model.ResponseRecord) (positive, negative []string) {
	for _, r := range records {
		if r.WorkingWell != "" {
			positive = append(positive, r.WorkingWell)
		}
		if r.Improve != "" {
			negative = append(negative, r.Improve)
		}
		positive, negative = poolRated(positive, negative, r.LessonsComment, r.LessonsRating)
		positive, negative = poolRated(positive, negative, r.TeacherComment, r.TeacherRating)
	}
	return positive, negative
}

func poolRated(positive, negative []string, comment string, rating *int) ([]string, []string) {
	if comment == "" || rating == nil {
		return positive, negative
	}
	switch {
	case *rating >= positiveLegacyMin:
		positive = append(positive, comment)
	case *rating <= negativeLegacyMax:
		negative = append(negative, comment)
	}
	return positive, negative
}

func suggestions(records []model.ResponseRecord) []string {
	var out []string
	for _, r := range records {
		if r.Other != "" {
			out = append(out, r.Other)
		}
	}
	return out
}

func groupKey(r model.ResponseRecord, groupBy GroupBy) string {
	if groupBy == GroupByTeacher {
		return r.Teacher
	}
	return string(r.Campus)
}

func clampRating(r *int, max int) *int {
	if r == nil || *r < 0 || *r > max {
		return nil
	}
	return r
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
