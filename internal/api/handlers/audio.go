package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efectlabs/parentcoach/internal/audiostore"
)

type AudioHandler struct {
	store *audiostore.Store
}

func NewAudioHandler(store *audiostore.Store) *AudioHandler {
	return &AudioHandler{store: store}
}

// Serve streams a previously generated audio file by bare filename.
func (h *AudioHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.store.Resolve(filename)
	if err != nil {
		if errors.Is(err, audiostore.ErrInvalidName) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid filename"})
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "audio file not found"})
		return
	}

	http.ServeFile(w, r, path)
}
