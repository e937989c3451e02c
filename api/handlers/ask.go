package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"
)

// MaxQuestionRunes bounds the question length accepted by /api/ask.
const MaxQuestionRunes = 1000

type AskRequest struct {
	Question string `json:"question"`
	// Indicator optionally names the indicator to answer about.
	Indicator string `json:"indicator,omitempty"`
}

// Ask answers a question. Generation failures degrade to the narrative
// answer, so the only error responses are for malformed requests.
func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "missing_question", "question is required")
		return
	}
	if utf8.RuneCountInString(req.Question) > MaxQuestionRunes {
		writeError(w, http.StatusBadRequest, "question_too_long", "question is too long")
		return
	}

	ans := h.assistant.GenerateResponse(r.Context(), req.Question, req.Indicator)
	h.log.Info("answered question",
		"answer_id", ans.ID.String(),
		"source", ans.Source,
		"indicators", ans.Indicators,
		"failure_reason", ans.FailureReason,
	)
	writeJSON(w, ans)
}
