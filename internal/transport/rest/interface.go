package rest

import (
	"context"
	"time"

	"github.com/lingopulse/insight-server/internal/model"
	"github.com/lingopulse/insight-server/internal/oracle"
	"github.com/lingopulse/insight-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// InsightService is the aggregation façade consumed by the REST handlers.
type InsightService interface {
	SubmitResponse(ctx context.Context, rec model.ResponseRecord) error
	SubmitSectioned(ctx context.Context, rec model.SectionedResponseRecord) error
	Overview(ctx context.Context, now time.Time) (service.OverviewSummary, error)
	GroupInsights(ctx context.Context, groupBy service.GroupBy) ([]service.GroupSummary, error)
	RangeScore(ctx context.Context, start, end time.Time) (service.RangeScore, error)
	SectionedOverview(ctx context.Context) (service.SectionedSummary, error)
	ExportResponses(ctx context.Context) ([]model.ResponseRecord, error)
}

// Oracle drives the conversational survey and translates captured comments.
type Oracle interface {
	NextTurn(ctx context.Context, transcript []oracle.Turn, missing []oracle.FieldSpec) (oracle.TurnResult, error)
	TranslateToEnglish(ctx context.Context, text, sourceLang string) (string, error)
}
