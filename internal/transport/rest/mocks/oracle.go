package mocks

import (
	"context"
	"errors"

	"github.com/lingopulse/insight-server/internal/oracle"
)

// MockOracle is a mock implementation of the Oracle interface for testing the
// handler layer. It uses function-based mocking for flexibility.
type MockOracle struct {
	NextTurnFunc           func(ctx context.Context, transcript []oracle.Turn, missing []oracle.FieldSpec) (oracle.TurnResult, error)
	TranslateToEnglishFunc func(ctx context.Context, text, sourceLang string) (string, error)
}

// NextTurn implements the Oracle interface
func (m *MockOracle) NextTurn(ctx context.Context, transcript []oracle.Turn, missing []oracle.FieldSpec) (oracle.TurnResult, error) {
	if m.NextTurnFunc != nil {
		return m.NextTurnFunc(ctx, transcript, missing)
	}
	return oracle.TurnResult{}, errors.New("NextTurnFunc not implemented")
}

// TranslateToEnglish implements the Oracle interface
func (m *MockOracle) TranslateToEnglish(ctx context.Context, text, sourceLang string) (string, error) {
	if m.TranslateToEnglishFunc != nil {
		return m.TranslateToEnglishFunc(ctx, text, sourceLang)
	}
	return "", errors.New("TranslateToEnglishFunc not implemented")
}
