package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/efectlabs/parentcoach/internal/prefs"
)

type PreferencesHandler struct {
	store *prefs.Store
}

func NewPreferencesHandler(store *prefs.Store) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

type rateRequest struct {
	TipID  string `json:"tipId"`
	Rating string `json:"rating"`
}

func (h *PreferencesHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "invalid request body",
		})
		return
	}

	if req.TipID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "tipId is required",
		})
		return
	}

	rating := prefs.Rating(req.Rating)
	if !rating.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": `rating must be "up" or "down"`,
		})
		return
	}

	h.store.SetRating(req.TipID, rating)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Rating recorded",
	})
}

type repeatRequest struct {
	TipID        string `json:"tipId"`
	ShouldRepeat *bool  `json:"shouldRepeat"`
}

func (h *PreferencesHandler) SetRepeatPreference(w http.ResponseWriter, r *http.Request) {
	var req repeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "invalid request body",
		})
		return
	}

	if req.TipID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "tipId is required",
		})
		return
	}

	if req.ShouldRepeat == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "shouldRepeat must be a boolean",
		})
		return
	}

	h.store.SetRepeat(req.TipID, *req.ShouldRepeat)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Repeat preference saved",
	})
}

func (h *PreferencesHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	ratings, repeat := h.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ratings":           ratings,
		"repeatPreferences": repeat,
	})
}
