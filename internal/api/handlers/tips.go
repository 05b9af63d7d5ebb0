package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/efectlabs/parentcoach/internal/tips"
)

// genericErrorMessage deliberately leaks no upstream detail.
const genericErrorMessage = "An error occurred while processing your request."

const ageRequiredMessage = "Please include your child's age or life stage " +
	"(for example \"my 3 year old\" or \"my toddler\") so the tips can fit their development."

// TipGenerator runs the full tip-generation pipeline for one prompt.
type TipGenerator interface {
	Generate(ctx context.Context, prompt string) (*tips.GenerateResult, error)
}

type TipsHandler struct {
	generator TipGenerator
}

func NewTipsHandler(g TipGenerator) *TipsHandler {
	return &TipsHandler{generator: g}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (h *TipsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "invalid request body",
		})
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "prompt is required",
		})
		return
	}

	result, err := h.generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, tips.ErrAgeReferenceRequired) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "age_required",
				"message": ageRequiredMessage,
			})
			return
		}
		slog.Error("tip generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": genericErrorMessage,
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
