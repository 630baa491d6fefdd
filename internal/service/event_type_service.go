package service

import (
	"context"
	"fmt"

	"github.com/calport/calport-bookings/internal/domain"
	"github.com/calport/calport-bookings/internal/repo/postgres"
)

type EventTypeService interface {
	Create(ctx context.Context, req *domain.EventTypeReq) (*domain.EventType, error)
	List(ctx context.Context) ([]domain.EventType, error)
	Update(ctx context.Context, id int64, req *domain.EventTypeReq) (*domain.EventType, error)
	Delete(ctx context.Context, id int64) error
}

type eventTypeService struct {
	repo postgres.EventTypeRepository
}

func NewEventTypeService(repo postgres.EventTypeRepository) EventTypeService {
	return &eventTypeService{repo: repo}
}

func (s *eventTypeService) Create(ctx context.Context, req *domain.EventTypeReq) (*domain.EventType, error) {
	et, err := s.repo.Create(ctx, req.Name, req.DurationMinutes, domain.Slugify(req.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to create event type: %w", err)
	}
	return et, nil
}

func (s *eventTypeService) List(ctx context.Context) ([]domain.EventType, error) {
	return s.repo.List(ctx)
}

func (s *eventTypeService) Update(ctx context.Context, id int64, req *domain.EventTypeReq) (*domain.EventType, error) {
	// Slug tracks the name on every update.
	et, err := s.repo.Update(ctx, id, req.Name, req.DurationMinutes, domain.Slugify(req.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to update event type: %w", err)
	}
	if et == nil {
		return nil, domain.ErrNotFound
	}
	return et, nil
}

func (s *eventTypeService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event type: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
