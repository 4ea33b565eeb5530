package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"snaphistory/middleware"
	"snaphistory/models"
	"snaphistory/services"
	"snaphistory/utils/errors"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryHandler serves GET /v1/history.
type HistoryHandler struct {
	historyService *services.HistoryService
}

type HistoryResponse struct {
	Identifications []models.Identification `json:"identifications"`
	Count           int                     `json:"count"`
}

func NewHistoryHandler(historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historyService.Enabled() {
		middleware.WriteError(w, errors.NewAPIError("HISTORY_UNAVAILABLE", "History store is not configured", http.StatusServiceUnavailable))
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.WriteError(w, errors.ErrInvalidInput)
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := h.historyService.Recent(r.Context(), int64(limit))
	if err != nil {
		middleware.WriteError(w, errors.Wrap(err, "DB_ERROR", "Failed to load history", errors.ErrInternal.Status))
		return
	}
	if entries == nil {
		entries = []models.Identification{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HistoryResponse{Identifications: entries, Count: len(entries)})
}
