package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/calport/calport-bookings/internal/domain"
	"github.com/calport/calport-bookings/internal/http/response"
	"github.com/calport/calport-bookings/pkg/logger"
)

func (h *Handlers) GetSlots(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := strconv.ParseInt(r.URL.Query().Get("eventTypeId"), 10, 64)
	if err != nil || eventTypeID <= 0 {
		response.BadRequest(w, "eventTypeId is required")
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.BadRequest(w, "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.schedule.SlotsForDate(r.Context(), eventTypeID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "event type not found")
			return
		}
		logger.ErrorContext(r.Context(), "failed to compute slots", "error", err,
			"event_type_id", eventTypeID, "date", date)
		response.InternalError(w, "error computing slots")
		return
	}
	response.JSON(w, http.StatusOK, slots)
}
