package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/calport/calport-bookings/internal/domain"
	"github.com/calport/calport-bookings/internal/http/response"
	"github.com/calport/calport-bookings/pkg/logger"
)

func (h *Handlers) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	eventTypes, err := h.eventTypes.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list event types", "error", err)
		response.InternalError(w, "error listing event types")
		return
	}
	if eventTypes == nil {
		eventTypes = []domain.EventType{}
	}
	response.JSON(w, http.StatusOK, eventTypes)
}

func (h *Handlers) CreateEventType(w http.ResponseWriter, r *http.Request) {
	var in domain.EventTypeReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if err := in.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	eventType, err := h.eventTypes.Create(r.Context(), &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create event type", "error", err)
		response.InternalError(w, "error creating event type")
		return
	}
	response.JSON(w, http.StatusOK, eventType)
}

func (h *Handlers) UpdateEventType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid id")
		return
	}

	var in domain.EventTypeReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if err := in.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	eventType, err := h.eventTypes.Update(r.Context(), id, &in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "event type not found")
			return
		}
		logger.ErrorContext(r.Context(), "failed to update event type", "error", err, "id", id)
		response.InternalError(w, "error updating event type")
		return
	}
	response.JSON(w, http.StatusOK, eventType)
}

func (h *Handlers) DeleteEventType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid id")
		return
	}

	if err := h.eventTypes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "event type not found")
			return
		}
		logger.ErrorContext(r.Context(), "failed to delete event type", "error", err, "id", id)
		response.InternalError(w, "error deleting event type")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
