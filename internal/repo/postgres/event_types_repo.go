package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calport/calport-bookings/internal/domain"
)

type EventTypeRepository interface {
	Create(ctx context.Context, name string, durationMinutes int, slug string) (*domain.EventType, error)
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
	List(ctx context.Context) ([]domain.EventType, error)
	Update(ctx context.Context, id int64, name string, durationMinutes int, slug string) (*domain.EventType, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type eventTypeRepository struct {
	pool *pgxpool.Pool
}

func NewEventTypeRepository(pool *pgxpool.Pool) EventTypeRepository {
	return &eventTypeRepository{pool: pool}
}

const eventTypeCols = `id, name, duration_minutes, slug, created_at, updated_at`

func (r *eventTypeRepository) Create(ctx context.Context, name string, durationMinutes int, slug string) (*domain.EventType, error) {
	const q = `INSERT INTO event_types (name, duration_minutes, slug)
	VALUES ($1,$2,$3)
	RETURNING ` + eventTypeCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var et domain.EventType
	err := r.pool.QueryRow(ctx, q, name, durationMinutes, slug).Scan(
		&et.ID, &et.Name, &et.DurationMinutes, &et.Slug, &et.CreatedAt, &et.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &et, nil
}

func (r *eventTypeRepository) GetByID(ctx context.Context, id int64) (*domain.EventType, error) {
	const q = `SELECT ` + eventTypeCols + ` FROM event_types WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var et domain.EventType
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&et.ID, &et.Name, &et.DurationMinutes, &et.Slug, &et.CreatedAt, &et.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &et, err
}

func (r *eventTypeRepository) List(ctx context.Context) ([]domain.EventType, error) {
	const q = `SELECT ` + eventTypeCols + ` FROM event_types ORDER BY id DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EventType
	for rows.Next() {
		var et domain.EventType
		if err := rows.Scan(&et.ID, &et.Name, &et.DurationMinutes, &et.Slug, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, et)
	}
	return out, rows.Err()
}

func (r *eventTypeRepository) Update(ctx context.Context, id int64, name string, durationMinutes int, slug string) (*domain.EventType, error) {
	const q = `UPDATE event_types
	SET name=$2, duration_minutes=$3, slug=$4, updated_at=now()
	WHERE id=$1
	RETURNING ` + eventTypeCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var et domain.EventType
	err := r.pool.QueryRow(ctx, q, id, name, durationMinutes, slug).Scan(
		&et.ID, &et.Name, &et.DurationMinutes, &et.Slug, &et.CreatedAt, &et.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &et, err
}

func (r *eventTypeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM event_types WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
