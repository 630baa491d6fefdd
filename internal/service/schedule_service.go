package service

import (
	"context"
	"fmt"
	"time"

	"github.com/calport/calport-bookings/internal/domain"
	"github.com/calport/calport-bookings/internal/repo/postgres"
	"github.com/calport/calport-bookings/internal/schedule"
	"github.com/calport/calport-bookings/pkg/config"
	"github.com/calport/calport-bookings/pkg/events"
	"github.com/calport/calport-bookings/pkg/logger"
)

type ScheduleService interface {
	ListAvailability(ctx context.Context) ([]domain.AvailabilityRule, error)
	ReplaceAvailability(ctx context.Context, rules []domain.AvailabilityRule) error
	SlotsForDate(ctx context.Context, eventTypeID int64, date string) ([]schedule.Slot, error)
}

type scheduleService struct {
	availabilityRepo postgres.AvailabilityRepository
	eventTypeRepo    postgres.EventTypeRepository
	bookingRepo      postgres.BookingRepository
	eventBus         events.Publisher
	cfg              *config.Config
}

func NewScheduleService(
	availabilityRepo postgres.AvailabilityRepository,
	eventTypeRepo postgres.EventTypeRepository,
	bookingRepo postgres.BookingRepository,
	eventBus events.Publisher,
	cfg *config.Config,
) ScheduleService {
	return &scheduleService{
		availabilityRepo: availabilityRepo,
		eventTypeRepo:    eventTypeRepo,
		bookingRepo:      bookingRepo,
		eventBus:         eventBus,
		cfg:              cfg,
	}
}

func (s *scheduleService) ListAvailability(ctx context.Context) ([]domain.AvailabilityRule, error) {
	return s.availabilityRepo.List(ctx)
}

func (s *scheduleService) ReplaceAvailability(ctx context.Context, rules []domain.AvailabilityRule) error {
	if err := s.availabilityRepo.Replace(ctx, rules); err != nil {
		return fmt.Errorf("failed to replace availability: %w", err)
	}

	event := events.AvailabilityReplacedEvent{
		ReplacedAt: time.Now().UTC(),
	}
	for _, r := range rules {
		event.Timezone = r.Timezone
		event.Weekdays = append(event.Weekdays, r.Weekday)
	}
	if err := s.eventBus.Publish(ctx, events.AvailabilityReplaced, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish availability replaced event", "error", err)
	}

	return nil
}

// SlotsForDate computes the open slots for one event type on one calendar
// date. A date outside the weekly calendar (weekend, or a weekday with no
// rule) yields an empty list rather than an error.
func (s *scheduleService) SlotsForDate(ctx context.Context, eventTypeID int64, date string) ([]schedule.Slot, error) {
	eventType, err := s.eventTypeRepo.GetByID(ctx, eventTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event type: %w", err)
	}
	if eventType == nil {
		return nil, domain.ErrNotFound
	}

	rules, err := s.availabilityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	loc, err := s.location(rules)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	rule := ruleForWeekday(rules, domain.WeekdayIndex(day.Weekday()))
	if rule == nil {
		return []schedule.Slot{}, nil
	}

	// Bookings whose interval intersects the requested date by absolute
	// instant, not local calendar date.
	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	bookings, err := s.bookingRepo.ListConfirmedInRange(ctx, eventTypeID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	slots := schedule.Generate(day, rule, eventType.DurationMinutes, bookings, loc)
	if slots == nil {
		slots = []schedule.Slot{}
	}
	return slots, nil
}

// location resolves the calendar's zone: all rules share one zone, so the
// first one wins; with no rules the configured default applies.
func (s *scheduleService) location(rules []domain.AvailabilityRule) (*time.Location, error) {
	tz := s.cfg.Scheduling.DefaultTimezone
	if len(rules) > 0 && rules[0].Timezone != "" {
		tz = rules[0].Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

func ruleForWeekday(rules []domain.AvailabilityRule, weekday int) *domain.AvailabilityRule {
	for i := range rules {
		if rules[i].Weekday == weekday {
			return &rules[i]
		}
	}
	return nil
}
