package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "worktrack/internal/shared/errors"
	"worktrack/internal/shared/respond"
)

// Handler exposes the read-only analytics endpoints. All of them sit behind
// the response cache middleware; the handlers themselves stay pure.
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{service: svc}
}

// DailyTotals handles GET /users/{userID}/daily-totals and its {period} form.
func (h *Handler) DailyTotals(w http.ResponseWriter, r *http.Request) {
	userID, q, trackerID, err := scopeFrom(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	buckets, err := h.service.DailyTotals(userID, trackerID, q)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Success(w, buckets)
}

// TotalHours handles GET /users/{userID}/total-hours and its {period} form.
func (h *Handler) TotalHours(w http.ResponseWriter, r *http.Request) {
	userID, q, trackerID, err := scopeFrom(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	result, err := h.service.TotalHours(userID, trackerID, q)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Success(w, result)
}

// ProductivityTrend handles GET /users/{userID}/productivity-trend and its
// {period} form.
func (h *Handler) ProductivityTrend(w http.ResponseWriter, r *http.Request) {
	userID, q, trackerID, err := scopeFrom(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	buckets, err := h.service.ProductivityTrend(userID, trackerID, q)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Success(w, buckets)
}

// Today handles GET /users/{userID}/today.
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respond.Error(w, apperrors.Validation("userId is required"))
		return
	}

	stats, err := h.service.Today(userID, r.URL.Query().Get("trackerId"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Success(w, stats)
}

// scopeFrom extracts the aggregation scope and range selection from the
// request: user from the path, period from the path when present, otherwise
// the literal date pair from the query.
func scopeFrom(r *http.Request) (string, RangeQuery, string, error) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		return "", RangeQuery{}, "", apperrors.Validation("userId is required")
	}

	query := r.URL.Query()
	q := RangeQuery{
		Period:    chi.URLParam(r, "period"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	}
	return userID, q, query.Get("trackerId"), nil
}
