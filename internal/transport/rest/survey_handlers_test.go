package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lingopulse/insight-server/internal/oracle"
	"github.com/lingopulse/insight-server/internal/transport/rest"
	"github.com/lingopulse/insight-server/internal/transport/rest/mocks"
)

func newSurveyHandlers(orc rest.Oracle) *rest.Handlers {
	return rest.NewHandlers(&mocks.MockInsightService{}, orc, nil, zap.NewNop(), time.Minute)
}

func TestSurveyNext(t *testing.T) {
	t.Run("returns the oracle turn", func(t *testing.T) {
		var gotMissing []oracle.FieldSpec
		orc := &mocks.MockOracle{
			NextTurnFunc: func(_ context.Context, transcript []oracle.Turn, missing []oracle.FieldSpec) (oracle.TurnResult, error) {
				gotMissing = missing
				return oracle.TurnResult{
					Reply:  "How would you rate the lessons, 0 to 5?",
					Fields: map[string]string{"campus": "Dubai"},
					Done:   false,
				}, nil
			},
		}
		h := newSurveyHandlers(orc)

		body := `{
			"transcript": [
				{"role": "assistant", "text": "Which campus did you study at?"},
				{"role": "student", "text": "Dubai, it was great"}
			],
			"missing": [
				{"name": "campus", "prompt": "Which campus?", "kind": "text"},
				{"name": "lessonsRating", "prompt": "Rate the lessons", "kind": "rating"}
			]
		}`
		rec := httptest.NewRecorder()
		h.SurveyNext(rec, httptest.NewRequest(http.MethodPost, "/v1/survey/next", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, gotMissing, 2)
		assert.Equal(t, "lessonsRating", gotMissing[1].Name)

		var got oracle.TurnResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Dubai", got.Fields["campus"])
		assert.False(t, got.Done)
	})

	t.Run("no oracle configured", func(t *testing.T) {
		h := newSurveyHandlers(nil)

		rec := httptest.NewRecorder()
		h.SurveyNext(rec, httptest.NewRequest(http.MethodPost, "/v1/survey/next",
			strings.NewReader(`{"missing": [{"name": "campus"}]}`)))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("missing fields required", func(t *testing.T) {
		h := newSurveyHandlers(&mocks.MockOracle{})

		rec := httptest.NewRecorder()
		h.SurveyNext(rec, httptest.NewRequest(http.MethodPost, "/v1/survey/next",
			strings.NewReader(`{"transcript": []}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTranslate(t *testing.T) {
	t.Run("translates the comment", func(t *testing.T) {
		orc := &mocks.MockOracle{
			TranslateToEnglishFunc: func(_ context.Context, text, sourceLang string) (string, error) {
				assert.Equal(t, "ru", sourceLang)
				return "The teacher was excellent", nil
			},
		}
		h := newSurveyHandlers(orc)

		rec := httptest.NewRecorder()
		h.Translate(rec, httptest.NewRequest(http.MethodPost, "/v1/translate",
			strings.NewReader(`{"text": "Учитель был отличный", "language": "ru"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "The teacher was excellent", got["text"])
	})

	t.Run("empty text", func(t *testing.T) {
		h := newSurveyHandlers(&mocks.MockOracle{})

		rec := httptest.NewRecorder()
		h.Translate(rec, httptest.NewRequest(http.MethodPost, "/v1/translate",
			strings.NewReader(`{"text": ""}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
