package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Jin-yujin/doctorpay-backend/internal/application/services"
	"github.com/Jin-yujin/doctorpay-backend/internal/domain/entities"
)

// RecentHandler handles recently-viewed hospital requests
type RecentHandler struct {
	recents *services.RecentService
}

// NewRecentHandler creates a new recents handler
func NewRecentHandler(recents *services.RecentService) *RecentHandler {
	return &RecentHandler{recents: recents}
}

// ListRecents handles GET /api/recents
func (h *RecentHandler) ListRecents(w http.ResponseWriter, r *http.Request) {
	list, err := h.recents.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if list == nil {
		list = entities.RecentList{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recents": list,
		"count":   len(list),
	})
}

// TouchRecent handles POST /api/recents
func (h *RecentHandler) TouchRecent(w http.ResponseWriter, r *http.Request) {
	var entry entities.RecentHospital
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.recents.Touch(r.Context(), entry); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearRecents handles DELETE /api/recents
func (h *RecentHandler) ClearRecents(w http.ResponseWriter, r *http.Request) {
	if err := h.recents.Clear(r.Context()); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
