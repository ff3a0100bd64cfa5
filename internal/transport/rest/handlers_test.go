package rest_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lingopulse/insight-server/internal/model"
	"github.com/lingopulse/insight-server/internal/service"
	"github.com/lingopulse/insight-server/internal/transport/rest"
	"github.com/lingopulse/insight-server/internal/transport/rest/mocks"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func newHandlers(svc rest.InsightService, cache rest.Cacher) *rest.Handlers {
	return rest.NewHandlers(svc, nil, cache, zap.NewNop(), time.Minute)
}

func TestNewHandlers(t *testing.T) {
	t.Run("panics on nil service", func(t *testing.T) {
		assert.Panics(t, func() {
			rest.NewHandlers(nil, nil, nil, zap.NewNop(), time.Minute)
		})
	})

	t.Run("nil oracle, cache and logger are accepted", func(t *testing.T) {
		assert.NotPanics(t, func() {
			rest.NewHandlers(&mocks.MockInsightService{}, nil, nil, nil, 0)
		})
	})
}

func TestOverview(t *testing.T) {
	svc := &mocks.MockInsightService{
		OverviewFunc: func(context.Context, time.Time) (service.OverviewSummary, error) {
			return service.OverviewSummary{
				TotalResponses: 12,
				CompositeScore: floatPtr(4.2),
			}, nil
		},
	}
	h := newHandlers(svc, nil)

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/v1/insights/overview", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got service.OverviewSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 12, got.TotalResponses)
	require.NotNil(t, got.CompositeScore)
	assert.InDelta(t, 4.2, *got.CompositeScore, 1e-9)
}

func TestOverviewCacheHit(t *testing.T) {
	cache := &mocks.MockCacher{
		GetFunc: func(_ context.Context, _ string, dest any) error {
			summary, ok := dest.(*service.OverviewSummary)
			require.True(t, ok)
			summary.TotalResponses = 99
			return nil
		},
	}
	// The service must never be reached on a cache hit; the mock's default
	// not-implemented error would surface as a 500 if it were.
	h := newHandlers(&mocks.MockInsightService{}, cache)

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/v1/insights/overview", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got service.OverviewSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 99, got.TotalResponses)
}

func TestOverviewErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"no responses", service.ErrNoResponses, http.StatusNotFound, "no responses found"},
		{"storage failure", service.ErrStorageFailure, http.StatusInternalServerError, "database error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockInsightService{
				OverviewFunc: func(context.Context, time.Time) (service.OverviewSummary, error) {
					return service.OverviewSummary{}, tt.err
				},
			}
			h := newHandlers(svc, nil)

			rec := httptest.NewRecorder()
			h.Overview(rec, httptest.NewRequest(http.MethodGet, "/v1/insights/overview", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestTeachersPassesGroupBy(t *testing.T) {
	var gotGroupBy service.GroupBy
	svc := &mocks.MockInsightService{
		GroupInsightsFunc: func(_ context.Context, groupBy service.GroupBy) ([]service.GroupSummary, error) {
			gotGroupBy = groupBy
			return []service.GroupSummary{{Key: "Anna", Count: 3}}, nil
		},
	}
	h := newHandlers(svc, nil)

	rec := httptest.NewRecorder()
	h.Teachers(rec, httptest.NewRequest(http.MethodGet, "/v1/insights/teachers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.GroupByTeacher, gotGroupBy)
}

func TestRange(t *testing.T) {
	t.Run("valid dates reach the service", func(t *testing.T) {
		var gotStart, gotEnd time.Time
		svc := &mocks.MockInsightService{
			RangeScoreFunc: func(_ context.Context, start, end time.Time) (service.RangeScore, error) {
				gotStart, gotEnd = start, end
				return service.RangeScore{Count: 5}, nil
			},
		}
		h := newHandlers(svc, nil)

		rec := httptest.NewRecorder()
		h.Range(rec, httptest.NewRequest(http.MethodGet, "/v1/insights/range?start=2025-03-01&end=2025-03-15", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), gotStart)
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), gotEnd)
	})

	badRequests := []struct {
		name  string
		query string
	}{
		{"missing start", "end=2025-03-15"},
		{"malformed start", "start=15-03-2025&end=2025-03-15"},
		{"missing end", "start=2025-03-01"},
		{"end before start", "start=2025-03-15&end=2025-03-01"},
	}
	for _, tt := range badRequests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlers(&mocks.MockInsightService{}, nil)

			rec := httptest.NewRecorder()
			h.Range(rec, httptest.NewRequest(http.MethodGet, "/v1/insights/range?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubmitResponse(t *testing.T) {
	t.Run("valid body is recorded", func(t *testing.T) {
		var stored model.ResponseRecord
		svc := &mocks.MockInsightService{
			SubmitResponseFunc: func(_ context.Context, rec model.ResponseRecord) error {
				stored = rec
				return nil
			},
		}
		var deleted []string
		cache := &mocks.MockCacher{
			DelFunc: func(_ context.Context, keys ...string) error {
				deleted = keys
				return nil
			},
		}
		h := newHandlers(svc, cache)

		body := `{
			"timestamp": "2025-03-10T09:00:00Z",
			"campus": "Dubai",
			"teacher": "Anna",
			"lessonsRating": "4",
			"teacherRating": "",
			"workingWell": "small groups"
		}`
		rec := httptest.NewRecorder()
		h.SubmitResponse(rec, httptest.NewRequest(http.MethodPost, "/v1/responses", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, model.CampusDubai, stored.Campus)
		require.NotNil(t, stored.LessonsRating)
		assert.Equal(t, 4, *stored.LessonsRating)
		assert.Nil(t, stored.TeacherRating)
		assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), stored.Timestamp.UTC())
		assert.Len(t, deleted, 4, "submitting drops the cached dashboards")
	})

	t.Run("unknown campus", func(t *testing.T) {
		h := newHandlers(&mocks.MockInsightService{}, nil)

		rec := httptest.NewRecorder()
		h.SubmitResponse(rec, httptest.NewRequest(http.MethodPost, "/v1/responses",
			strings.NewReader(`{"campus": "Paris"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		h := newHandlers(&mocks.MockInsightService{}, nil)

		rec := httptest.NewRecorder()
		h.SubmitResponse(rec, httptest.NewRequest(http.MethodPost, "/v1/responses",
			strings.NewReader("{not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSubmitSectioned(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		var stored model.SectionedResponseRecord
		svc := &mocks.MockInsightService{
			SubmitSectionedFunc: func(_ context.Context, rec model.SectionedResponseRecord) error {
				stored = rec
				return nil
			},
		}
		h := newHandlers(svc, nil)

		body := `{
			"id": "resp-001",
			"submittedAt": "2025-03-12T08:00:00Z",
			"sections": {
				"teaching": {"scores": ["3", "2", "", "1"], "comment": "clear", "submitted": true},
				"cafeteria": {"scores": ["3"], "submitted": true}
			},
			"finalComment": "great month"
		}`
		rec := httptest.NewRecorder()
		h.SubmitSectioned(rec, httptest.NewRequest(http.MethodPost, "/v1/responses/sectioned", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "resp-001", stored.ID)
		assert.Equal(t, "great month", stored.FinalComment)

		teaching, ok := stored.Sections[model.SectionTeaching]
		require.True(t, ok)
		require.NotNil(t, teaching.Scores[0])
		assert.Equal(t, 3, *teaching.Scores[0])
		assert.Nil(t, teaching.Scores[2])
		assert.True(t, teaching.Submitted)

		// Section names outside the fixed five are dropped.
		assert.Len(t, stored.Sections, 1)
	})

	t.Run("missing id", func(t *testing.T) {
		h := newHandlers(&mocks.MockInsightService{}, nil)

		rec := httptest.NewRecorder()
		h.SubmitSectioned(rec, httptest.NewRequest(http.MethodPost, "/v1/responses/sectioned",
			strings.NewReader(`{"sections": {}}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExportCSV(t *testing.T) {
	svc := &mocks.MockInsightService{
		ExportResponsesFunc: func(context.Context) ([]model.ResponseRecord, error) {
			return []model.ResponseRecord{
				{
					Timestamp:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
					Campus:        model.CampusLondon,
					Teacher:       "Ben",
					LessonsRating: intPtr(4),
				},
			}, nil
		},
	}
	h := newHandlers(svc, nil)

	rec := httptest.NewRecorder()
	h.ExportCSV(rec, httptest.NewRequest(http.MethodGet, "/v1/export.csv", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "timestamp", rows[0][0])
	assert.Equal(t, "London", rows[1][2])
	assert.Equal(t, "4", rows[1][5])
	assert.Equal(t, "", rows[1][7], "absent rating exports as empty")
}

func TestRouter(t *testing.T) {
	svc := &mocks.MockInsightService{
		OverviewFunc: func(context.Context, time.Time) (service.OverviewSummary, error) {
			return service.OverviewSummary{TotalResponses: 1}, nil
		},
	}
	router := rest.NewRouter(newHandlers(svc, nil))

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("overview route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/insights/overview", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/responses", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
