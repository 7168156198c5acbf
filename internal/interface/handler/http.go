package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/repository"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/usecase"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
)

const notificationLogLimit = 100

// FlightHandler serves the refresh trigger and the read endpoints
// consumed by the arrivals UI and admin panel.
type FlightHandler struct {
	pipeline   *usecase.Pipeline
	flightRepo repository.FlightRecordRepository
	subRepo    repository.SubscriptionRepository
	logRepo    repository.NotificationLogRepository
	logger     logger.Logger
}

// NewFlightHandler creates a new HTTP handler
func NewFlightHandler(
	pipeline *usecase.Pipeline,
	flightRepo repository.FlightRecordRepository,
	subRepo repository.SubscriptionRepository,
	logRepo repository.NotificationLogRepository,
	logger logger.Logger,
) *FlightHandler {
	return &FlightHandler{
		pipeline:   pipeline,
		flightRepo: flightRepo,
		subRepo:    subRepo,
		logRepo:    logRepo,
		logger:     logger,
	}
}

// Register attaches all routes to the mux
func (h *FlightHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/flights/refresh", h.Refresh)
	mux.HandleFunc("/api/v1/flights", h.ListFlights)
	mux.HandleFunc("/api/v1/subscriptions", h.Subscriptions)
	mux.HandleFunc("/api/v1/notifications", h.ListNotifications)
}

// Refresh triggers one pipeline run. Always 200 with a well-formed
// flights payload: an unexpected fault degrades to the mock dataset
// with an error field so the UI stays resilient.
func (h *FlightHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("Refresh panicked", "panic", rec)
			writeJSON(w, http.StatusOK, &usecase.RefreshResult{
				Flights:       usecase.FallbackFlights(time.Now()),
				Source:        usecase.SourceMock,
				StatusChanges: 0,
				Error:         "internal error",
			})
		}
	}()

	result := h.pipeline.Refresh(r.Context())
	writeJSON(w, http.StatusOK, result)
}

// ListFlights returns the stored board for one date (default today)
func (h *FlightHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	flights, err := h.flightRepo.FindByDates(r.Context(), []string{date})
	if err != nil {
		h.logger.Error("Failed to load flights", "date", date, "error", err)
		http.Error(w, "failed to load flights", http.StatusInternalServerError)
		return
	}
	if flights == nil {
		flights = []*entity.FlightRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":    date,
		"flights": flights,
	})
}

// Subscriptions handles subscription intake and per-user listing
func (h *FlightHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createSubscription(w, r)
	case http.MethodGet:
		h.listSubscriptions(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *FlightHandler) createSubscription(w http.ResponseWriter, r *http.Request) {
	var sub entity.Subscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if sub.UserID == "" || sub.FlightID == "" || sub.FlightDate == "" {
		http.Error(w, "userId, flightId and flightDate are required", http.StatusBadRequest)
		return
	}

	if err := h.subRepo.Save(r.Context(), &sub); err != nil {
		h.logger.Error("Failed to save subscription", "userId", sub.UserID, "error", err)
		http.Error(w, "failed to save subscription", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, &sub)
}

func (h *FlightHandler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		http.Error(w, "user query parameter is required", http.StatusBadRequest)
		return
	}

	subs, err := h.subRepo.FindByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load subscriptions", "userId", userID, "error", err)
		http.Error(w, "failed to load subscriptions", http.StatusInternalServerError)
		return
	}
	if subs == nil {
		subs = []*entity.Subscription{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subscriptions": subs,
	})
}

// ListNotifications returns the dispatch log for one flight
func (h *FlightHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flightID := r.URL.Query().Get("flight")
	flightDate := r.URL.Query().Get("date")
	if flightID == "" || flightDate == "" {
		http.Error(w, "flight and date query parameters are required", http.StatusBadRequest)
		return
	}

	entries, err := h.logRepo.FindByFlight(r.Context(), flightID, flightDate, notificationLogLimit)
	if err != nil {
		h.logger.Error("Failed to load notification log", "flight", flightID, "error", err)
		http.Error(w, "failed to load notifications", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*entity.NotificationLogEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": entries,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
