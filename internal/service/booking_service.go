package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calport/calport-bookings/internal/domain"
	"github.com/calport/calport-bookings/internal/repo/postgres"
	"github.com/calport/calport-bookings/pkg/events"
	"github.com/calport/calport-bookings/pkg/logger"
)

type BookingService interface {
	// Create runs the conflict guard: the slot is rejected with
	// domain.ErrSlotTaken when a confirmed booking for the same event type
	// overlaps the requested interval.
	Create(ctx context.Context, req *domain.BookingReq) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

type bookingService struct {
	bookingRepo   postgres.BookingRepository
	eventTypeRepo postgres.EventTypeRepository
	eventBus      events.Publisher
}

func NewBookingService(
	bookingRepo postgres.BookingRepository,
	eventTypeRepo postgres.EventTypeRepository,
	eventBus events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		eventTypeRepo: eventTypeRepo,
		eventBus:      eventBus,
	}
}

func (s *bookingService) Create(ctx context.Context, req *domain.BookingReq) (*domain.Booking, error) {
	eventType, err := s.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event type: %w", err)
	}
	if eventType == nil {
		return nil, domain.ErrNotFound
	}

	booking, err := s.bookingRepo.CreateConfirmed(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:    booking.ID,
		EventTypeID:  booking.EventTypeID,
		InviteeName:  booking.InviteeName,
		InviteeEmail: booking.InviteeEmail,
		StartTime:    booking.StartTime,
		EndTime:      booking.EndTime,
		CreatedAt:    booking.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookingRepo.List(ctx)
}

func (s *bookingService) Cancel(ctx context.Context, id int64) error {
	ok, err := s.bookingRepo.Cancel(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}

	event := events.BookingCanceledEvent{
		BookingID:  id,
		CanceledAt: time.Now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, events.BookingCanceled, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking canceled event", "error", err, "booking_id", id)
	}

	return nil
}
