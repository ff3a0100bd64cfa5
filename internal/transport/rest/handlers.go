package rest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/lingopulse/insight-server/internal/model"
	"github.com/lingopulse/insight-server/internal/service"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 10 * time.Second
	dateLayout            = "2006-01-02"
)

const (
	cacheKeyOverview  = "rest:insights_overview"
	cacheKeyCampuses  = "rest:insights_campuses"
	cacheKeyTeachers  = "rest:insights_teachers"
	cacheKeyRange     = "rest:insights_range"
	cacheKeySectioned = "rest:insights_sections"
)

// Handlers serves the dashboard API over the insight service, with
// read-through caching on the aggregation endpoints.
type Handlers struct {
	insights InsightService
	oracle   Oracle
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
	now      func() time.Time
}

// NewHandlers initializes the REST handlers. oracle may be nil when no API key
// is configured; the survey endpoints then answer 503.
func NewHandlers(insights InsightService, oracle Oracle, cache Cacher, logger *zap.Logger, ttl time.Duration) *Handlers {
	if insights == nil {
		panic("nil InsightService provided to NewHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		insights: insights,
		oracle:   oracle,
		cache:    cache,
		logger:   logger.Named("rest-handler"),
		cacheTTL: ttl,
		now:      time.Now,
	}
}

func (h *Handlers) handleError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		writeError(w, http.StatusServiceUnavailable, "request canceled")
		return
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		writeError(w, http.StatusGatewayTimeout, "request timed out")
		return
	}

	switch {
	case errors.Is(err, service.ErrNoResponses):
		h.logger.Info("no responses found", zap.String("op", op))
		writeError(w, http.StatusNotFound, "no responses found")
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database error")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, op+" failed")
	}
}

// Overview handles GET /v1/insights/overview
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	now := h.now()
	key := fmt.Sprintf("%s:%s", cacheKeyOverview, now.Format(dateLayout))
	summary, err := findAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.OverviewSummary, error) {
		return h.insights.Overview(fetchCtx, now)
	})
	if err != nil {
		h.handleError(ctx, w, "Overview", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Campuses handles GET /v1/insights/campuses
func (h *Handlers) Campuses(w http.ResponseWriter, r *http.Request) {
	h.groups(w, r, cacheKeyCampuses, service.GroupByCampus)
}

// Teachers handles GET /v1/insights/teachers
func (h *Handlers) Teachers(w http.ResponseWriter, r *http.Request) {
	h.groups(w, r, cacheKeyTeachers, service.GroupByTeacher)
}

func (h *Handlers) groups(w http.ResponseWriter, r *http.Request, keyPrefix string, groupBy service.GroupBy) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := fmt.Sprintf("%s:%s", keyPrefix, h.now().Format(dateLayout))
	groups, err := findAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) ([]service.GroupSummary, error) {
		return h.insights.GroupInsights(fetchCtx, groupBy)
	})
	if err != nil {
		h.handleError(ctx, w, "GroupInsights", err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Range handles GET /v1/insights/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) Range(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be a YYYY-MM-DD date")
		return
	}
	end, err := time.Parse(dateLayout, r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be a YYYY-MM-DD date")
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end date must not be before start date")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := fmt.Sprintf("%s:%s:%s", cacheKeyRange, start.Format(dateLayout), end.Format(dateLayout))
	score, err := findAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.RangeScore, error) {
		return h.insights.RangeScore(fetchCtx, start, end)
	})
	if err != nil {
		h.handleError(ctx, w, "RangeScore", err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// Sections handles GET /v1/insights/sections
func (h *Handlers) Sections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := fmt.Sprintf("%s:%s", cacheKeySectioned, h.now().Format(dateLayout))
	summary, err := findAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.SectionedSummary, error) {
		return h.insights.SectionedOverview(fetchCtx)
	})
	if err != nil {
		h.handleError(ctx, w, "SectionedOverview", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type submitResponseRequest struct {
	Timestamp      string `json:"timestamp"`
	Language       string `json:"language"`
	Campus         string `json:"campus"`
	Teacher        string `json:"teacher"`
	Duration       string `json:"duration"`
	LessonsRating  string `json:"lessonsRating"`
	LessonsComment string `json:"lessonsComment"`
	TeacherRating  string `json:"teacherRating"`
	TeacherComment string `json:"teacherComment"`
	WorkingWell    string `json:"workingWell"`
	Improve        string `json:"improve"`
	Other          string `json:"other"`
}

// SubmitResponse handles POST /v1/responses. Rating fields arrive in the
// tabular store's wire form: numeric string, or empty for absent.
func (h *Handlers) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req submitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Campus != "" && req.Campus != string(model.CampusDubai) && req.Campus != string(model.CampusLondon) {
		writeError(w, http.StatusBadRequest, "unknown campus")
		return
	}

	rec := model.ResponseRecord{
		Language:       req.Language,
		Campus:         model.Campus(req.Campus),
		Teacher:        req.Teacher,
		Duration:       model.Duration(req.Duration),
		LessonsRating:  model.ParseRating(req.LessonsRating, 5),
		LessonsComment: req.LessonsComment,
		TeacherRating:  model.ParseRating(req.TeacherRating, 5),
		TeacherComment: req.TeacherComment,
		WorkingWell:    req.WorkingWell,
		Improve:        req.Improve,
		Other:          req.Other,
	}
	if ts, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
		rec.Timestamp = ts
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	if err := h.insights.SubmitResponse(ctx, rec); err != nil {
		h.handleError(ctx, w, "SubmitResponse", err)
		return
	}
	h.invalidateInsights(ctx)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

type submitSectionRequest struct {
	Scores    []string `json:"scores"`
	Comment   string   `json:"comment"`
	Submitted bool     `json:"submitted"`
}

type submitSectionedRequest struct {
	ID           string                          `json:"id"`
	SubmittedAt  string                          `json:"submittedAt"`
	Sections     map[string]submitSectionRequest `json:"sections"`
	FinalComment string                          `json:"finalComment"`
}

// SubmitSectioned handles POST /v1/responses/sectioned.
func (h *Handlers) SubmitSectioned(w http.ResponseWriter, r *http.Request) {
	var req submitSectionedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	rec := model.SectionedResponseRecord{
		ID:           req.ID,
		FinalComment: req.FinalComment,
		Sections:     make(map[model.SectionName]model.Section),
	}
	if ts, err := time.Parse(time.RFC3339, req.SubmittedAt); err == nil {
		rec.SubmittedAt = ts
	}
	for _, name := range model.SectionNames {
		in, ok := req.Sections[string(name)]
		if !ok {
			continue
		}
		var section model.Section
		for i := 0; i < model.SectionQuestions && i < len(in.Scores); i++ {
			section.Scores[i] = model.ParseRating(in.Scores[i], 3)
		}
		section.Comment = in.Comment
		section.Submitted = in.Submitted
		rec.Sections[name] = section
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	if err := h.insights.SubmitSectioned(ctx, rec); err != nil {
		h.handleError(ctx, w, "SubmitSectioned", err)
		return
	}
	h.invalidateInsights(ctx)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

// ExportCSV handles GET /v1/export.csv, streaming the legacy table.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	records, err := h.insights.ExportResponses(ctx)
	if err != nil {
		h.handleError(ctx, w, "ExportResponses", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="responses.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"timestamp", "language", "campus", "teacher", "duration",
		"lessons_rating", "lessons_comment", "teacher_rating", "teacher_comment",
		"working_well", "improve", "other",
	})
	for _, rec := range records {
		_ = cw.Write([]string{
			rec.Timestamp.Format(time.RFC3339),
			rec.Language,
			string(rec.Campus),
			rec.Teacher,
			string(rec.Duration),
			model.RatingString(rec.LessonsRating),
			rec.LessonsComment,
			model.RatingString(rec.TeacherRating),
			rec.TeacherComment,
			rec.WorkingWell,
			rec.Improve,
			rec.Other,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("csv export write failed", zap.Error(err))
	}
}

// invalidateInsights drops today's cached dashboards after a new response so
// the next load reflects it without waiting out the TTL. Best effort.
func (h *Handlers) invalidateInsights(ctx context.Context) {
	if h.cache == nil {
		return
	}
	date := h.now().Format(dateLayout)
	keys := []string{
		fmt.Sprintf("%s:%s", cacheKeyOverview, date),
		fmt.Sprintf("%s:%s", cacheKeyCampuses, date),
		fmt.Sprintf("%s:%s", cacheKeyTeachers, date),
		fmt.Sprintf("%s:%s", cacheKeySectioned, date),
	}
	if err := h.cache.Del(ctx, keys...); err != nil {
		h.logger.Warn("insight cache invalidation failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
