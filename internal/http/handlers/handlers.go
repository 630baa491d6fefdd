package handlers

import (
	"github.com/go-chi/chi/v5"

	"github.com/calport/calport-bookings/internal/service"
)

type Handlers struct {
	eventTypes service.EventTypeService
	schedule   service.ScheduleService
	bookings   service.BookingService
}

func New(eventTypes service.EventTypeService, sched service.ScheduleService, bookings service.BookingService) *Handlers {
	return &Handlers{
		eventTypes: eventTypes,
		schedule:   sched,
		bookings:   bookings,
	}
}

func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/event-types", func(r chi.Router) {
		r.Get("/", h.ListEventTypes)
		r.Post("/", h.CreateEventType)
		r.Put("/{id}", h.UpdateEventType)
		r.Delete("/{id}", h.DeleteEventType)
	})

	r.Route("/availability", func(r chi.Router) {
		r.Get("/", h.ListAvailability)
		r.Post("/", h.ReplaceAvailability)
	})

	r.Get("/slots", h.GetSlots)

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", h.ListBookings)
		r.Post("/", h.CreateBooking)
		r.Delete("/{id}", h.CancelBooking)
	})

	return r
}
