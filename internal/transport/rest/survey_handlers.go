package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lingopulse/insight-server/internal/oracle"
)

type surveyNextRequest struct {
	Transcript []oracle.Turn      `json:"transcript"`
	Missing    []oracle.FieldSpec `json:"missing"`
}

// SurveyNext handles POST /v1/survey/next: given the conversation so far and
// the fields still to collect, returns the next prompt plus any values the
// transcript already pins down.
func (h *Handlers) SurveyNext(w http.ResponseWriter, r *http.Request) {
	if h.oracle == nil {
		writeError(w, http.StatusServiceUnavailable, "survey assistant not configured")
		return
	}

	var req surveyNextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Missing) == 0 {
		writeError(w, http.StatusBadRequest, "missing fields are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	result, err := h.oracle.NextTurn(ctx, req.Transcript, req.Missing)
	if err != nil {
		h.logger.Error("survey turn failed", zap.Error(err))
		h.handleError(ctx, w, "SurveyNext", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type translateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type translateResponse struct {
	Text string `json:"text"`
}

// Translate handles POST /v1/translate, converting a captured comment to
// English before it is stored.
func (h *Handlers) Translate(w http.ResponseWriter, r *http.Request) {
	if h.oracle == nil {
		writeError(w, http.StatusServiceUnavailable, "survey assistant not configured")
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	translated, err := h.oracle.TranslateToEnglish(ctx, req.Text, req.Language)
	if err != nil {
		h.logger.Error("translation failed", zap.Error(err))
		h.handleError(ctx, w, "Translate", err)
		return
	}
	writeJSON(w, http.StatusOK, translateResponse{Text: translated})
}
