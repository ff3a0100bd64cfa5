package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/lingopulse/insight-server/internal/model"
	"github.com/lingopulse/insight-server/internal/service"
)

// MockInsightService is a mock implementation of the InsightService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockInsightService struct {
	SubmitResponseFunc    func(ctx context.Context, rec model.ResponseRecord) error
	SubmitSectionedFunc   func(ctx context.Context, rec model.SectionedResponseRecord) error
	OverviewFunc          func(ctx context.Context, now time.Time) (service.OverviewSummary, error)
	GroupInsightsFunc     func(ctx context.Context, groupBy service.GroupBy) ([]service.GroupSummary, error)
	RangeScoreFunc        func(ctx context.Context, start, end time.Time) (service.RangeScore, error)
	SectionedOverviewFunc func(ctx context.Context) (service.SectionedSummary, error)
	ExportResponsesFunc   func(ctx context.Context) ([]model.ResponseRecord, error)
}

// SubmitResponse implements the InsightService interface
func (m *MockInsightService) SubmitResponse(ctx context.Context, rec model.ResponseRecord) error {
	if m.SubmitResponseFunc != nil {
		return m.SubmitResponseFunc(ctx, rec)
	}
	return errors.New("SubmitResponseFunc not implemented")
}

// SubmitSectioned implements the InsightService interface
func (m *MockInsightService) SubmitSectioned(ctx context.Context, rec model.SectionedResponseRecord) error {
	if m.SubmitSectionedFunc != nil {
		return m.SubmitSectionedFunc(ctx, rec)
	}
	return errors.New("SubmitSectionedFunc not implemented")
}

// Overview implements the InsightService interface
func (m *MockInsightService) Overview(ctx context.Context, now time.Time) (service.OverviewSummary, error) {
	if m.OverviewFunc != nil {
		return m.OverviewFunc(ctx, now)
	}
	return service.OverviewSummary{}, errors.New("OverviewFunc not implemented")
}

// GroupInsights implements the InsightService interface
func (m *MockInsightService) GroupInsights(ctx context.Context, groupBy service.GroupBy) ([]service.GroupSummary, error) {
	if m.GroupInsightsFunc != nil {
		return m.GroupInsightsFunc(ctx, groupBy)
	}
	return nil, errors.New("GroupInsightsFunc not implemented")
}

// RangeScore implements the InsightService interface
func (m *MockInsightService) RangeScore(ctx context.Context, start, end time.Time) (service.RangeScore, error) {
	if m.RangeScoreFunc != nil {
		return m.RangeScoreFunc(ctx, start, end)
	}
	return service.RangeScore{}, errors.New("RangeScoreFunc not implemented")
}

// SectionedOverview implements the InsightService interface
func (m *MockInsightService) SectionedOverview(ctx context.Context) (service.SectionedSummary, error) {
	if m.SectionedOverviewFunc != nil {
		return m.SectionedOverviewFunc(ctx)
	}
	return service.SectionedSummary{}, errors.New("SectionedOverviewFunc not implemented")
}

// ExportResponses implements the InsightService interface
func (m *MockInsightService) ExportResponses(ctx context.Context) ([]model.ResponseRecord, error) {
	if m.ExportResponsesFunc != nil {
		return m.ExportResponsesFunc(ctx)
	}
	return nil, errors.New("ExportResponsesFunc not implemented")
}
