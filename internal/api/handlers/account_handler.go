package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rmateos/taskdeck-be/internal/auth"
	"github.com/rmateos/taskdeck-be/internal/models"
	"github.com/rmateos/taskdeck-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AccountHandler serves the account report and the activity feed.
type AccountHandler struct {
	reportSvc services.ReportServiceProvider
	eventSvc  services.EventServiceProvider
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(reportSvc services.ReportServiceProvider, eventSvc services.EventServiceProvider) *AccountHandler {
	return &AccountHandler{reportSvc: reportSvc, eventSvc: eventSvc}
}

// Account returns the caller's reward total, task counts, and consistency.
func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.reportSvc.AccountSummary(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to build account summary")
		writeJSONError(w, http.StatusInternalServerError, "Failed to build account summary")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// Activity returns the caller's most recent activity events.
func (h *AccountHandler) Activity(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.eventSvc.Recent(claims.UserID, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to retrieve activity")
		writeJSONError(w, http.StatusInternalServerError, "Failed to retrieve activity")
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}
