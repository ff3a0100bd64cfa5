package service

import (
	"context"

	"github.com/lingopulse/insight-server/internal/model"
)

// ResponseRepository defines the store operations the insight service needs.
// The store is append-only and read back in full on every aggregation.
type ResponseRepository interface {
	AppendResponse(ctx context.Context, rec model.ResponseRecord) error
	ListResponses(ctx context.Context) ([]model.ResponseRecord, error)
	AppendSectioned(ctx context.Context, rec model.SectionedResponseRecord) error
	ListSectioned(ctx context.Context) ([]model.SectionedResponseRecord, error)
}
