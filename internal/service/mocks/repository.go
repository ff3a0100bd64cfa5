package mocks

import (
	"context"
	"errors"

	"github.com/lingopulse/insight-server/internal/model"
)

// MockResponseRepository is a mock implementation of the ResponseRepository
// interface for testing the service layer.
type MockResponseRepository struct {
	AppendResponseFunc  func(ctx context.Context, rec model.ResponseRecord) error
	ListResponsesFunc   func(ctx context.Context) ([]model.ResponseRecord, error)
	AppendSectionedFunc func(ctx context.Context, rec model.SectionedResponseRecord) error
	ListSectionedFunc   func(ctx context.Context) ([]model.SectionedResponseRecord, error)
}

// AppendResponse implements the ResponseRepository interface
func (m *MockResponseRepository) AppendResponse(ctx context.Context, rec model.ResponseRecord) error {
	if m.AppendResponseFunc != nil {
		return m.AppendResponseFunc(ctx, rec)
	}
	return errors.New("AppendResponseFunc not implemented")
}

// ListResponses implements the ResponseRepository interface
func (m *MockResponseRepository) ListResponses(ctx context.Context) ([]model.ResponseRecord, error) {
	if m.ListResponsesFunc != nil {
		return m.ListResponsesFunc(ctx)
	}
	return nil, errors.New("ListResponsesFunc not implemented")
}

// AppendSectioned implements the ResponseRepository interface
func (m *MockResponseRepository) AppendSectioned(ctx context.Context, rec model.SectionedResponseRecord) error {
	if m.AppendSectionedFunc != nil {
		return m.AppendSectionedFunc(ctx, rec)
	}
	return errors.New("AppendSectionedFunc not implemented")
}

// ListSectioned implements the ResponseRepository interface
func (m *MockResponseRepository) ListSectioned(ctx context.Context) ([]model.SectionedResponseRecord, error) {
	if m.ListSectionedFunc != nil {
		return m.ListSectionedFunc(ctx)
	}
	return nil, errors.New("ListSectionedFunc not implemented")
}
