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

func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list bookings", "error", err)
		response.InternalError(w, "error listing bookings")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	response.JSON(w, http.StatusOK, bookings)
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if err := in.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	booking, err := h.bookings.Create(r.Context(), &in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotTaken):
			response.Conflict(w, "slot already booked")
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(w, "event type not found")
		default:
			logger.ErrorContext(r.Context(), "failed to create booking", "error", err)
			response.InternalError(w, "error creating booking")
		}
		return
	}
	response.JSON(w, http.StatusCreated, booking)
}

func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid id")
		return
	}

	if err := h.bookings.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "booking not found")
			return
		}
		logger.ErrorContext(r.Context(), "failed to cancel booking", "error", err, "id", id)
		response.InternalError(w, "error cancelling booking")
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
