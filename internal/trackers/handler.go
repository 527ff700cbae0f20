package trackers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "worktrack/internal/shared/errors"
	"worktrack/internal/shared/respond"
)

// Handler exposes the tracker endpoints. The mutating ones are wrapped by the
// cache invalidation middleware in the router; the handlers only produce the
// result envelope.
type Handler struct {
	service *Service
}

// NewHandler creates a new tracker Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{service: svc}
}

// Create handles POST /users/{userID}/trackers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input TrackerCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, apperrors.Validation("Invalid JSON body"))
		return
	}

	tracker, err := h.service.CreateTracker(chi.URLParam(r, "userID"), &input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.SuccessStatus(w, http.StatusCreated, tracker)
}

// List handles GET /users/{userID}/trackers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	trackers, err := h.service.ListTrackers(chi.URLParam(r, "userID"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Success(w, trackers)
}

// Start handles POST /trackers/{trackerID}/start.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.StartSession(chi.URLParam(r, "trackerID"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.SuccessStatus(w, http.StatusCreated, session)
}

// Stop handles POST /trackers/{trackerID}/stop.
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.StopSession(chi.URLParam(r, "trackerID"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Success(w, session)
}

// Archive handles POST /trackers/{trackerID}/archive.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	tracker, err := h.service.ArchiveTracker(chi.URLParam(r, "trackerID"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Success(w, tracker)
}

// Unarchive handles POST /trackers/{trackerID}/unarchive.
func (h *Handler) Unarchive(w http.ResponseWriter, r *http.Request) {
	tracker, err := h.service.UnarchiveTracker(chi.URLParam(r, "trackerID"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Success(w, tracker)
}
