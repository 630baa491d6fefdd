package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calport/calport-bookings/internal/domain"
)

type BookingRepository interface {
	// CreateConfirmed inserts a confirmed booking after verifying inside one
	// transaction that no confirmed booking for the same event type overlaps
	// [start, end). Returns domain.ErrSlotTaken on overlap.
	CreateConfirmed(ctx context.Context, req *domain.BookingReq) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListConfirmedInRange(ctx context.Context, eventTypeID int64, from, to time.Time) ([]domain.Booking, error)
	Cancel(ctx context.Context, id int64) (bool, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, event_type_id, manage_token, status,
invitee_name, invitee_email, start_time, end_time, created_at, updated_at`

func (r *bookingRepository) CreateConfirmed(ctx context.Context, req *domain.BookingReq) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Serializes concurrent creators per event type; the exclusion
	// constraint on the table is the backstop if the lock is bypassed.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, req.EventTypeID); err != nil {
		return nil, err
	}

	var taken bool
	const checkQ = `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE event_type_id=$1 AND status='confirmed'
		AND start_time < $3 AND end_time > $2
	)`
	if err := tx.QueryRow(ctx, checkQ, req.EventTypeID, req.StartTime, req.EndTime).Scan(&taken); err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrSlotTaken
	}

	const insertQ = `INSERT INTO bookings (
		event_type_id, manage_token, status,
		invitee_name, invitee_email, start_time, end_time
	) VALUES ($1,$2,'confirmed',$3,$4,$5,$6)
	RETURNING ` + bookingCols

	var b domain.Booking
	err = tx.QueryRow(ctx, insertQ,
		req.EventTypeID, uuid.NewString(),
		req.InviteeName, req.InviteeEmail, req.StartTime, req.EndTime,
	).Scan(
		&b.ID, &b.EventTypeID, &b.ManageToken, &b.Status,
		&b.InviteeName, &b.InviteeEmail, &b.StartTime, &b.EndTime,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		// The bookings_no_overlap exclusion constraint can still fire if
		// a writer skipped the advisory lock; report it as a conflict,
		// not a store failure.
		if isExclusionViolation(err) {
			return nil, domain.ErrSlotTaken
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return nil, domain.ErrSlotTaken
		}
		return nil, err
	}
	return &b, nil
}

// SQLSTATE 23P01, exclusion_violation.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.EventTypeID, &b.ManageToken, &b.Status,
		&b.InviteeName, &b.InviteeEmail, &b.StartTime, &b.EndTime,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &b, err
}

func (r *bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	const q = `SELECT b.id, b.event_type_id, b.manage_token, b.status,
	b.invitee_name, b.invitee_email, b.start_time, b.end_time, b.created_at, b.updated_at,
	et.name
	FROM bookings b
	JOIN event_types et ON et.id = b.event_type_id
	ORDER BY b.start_time`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.EventTypeID, &b.ManageToken, &b.Status,
			&b.InviteeName, &b.InviteeEmail, &b.StartTime, &b.EndTime,
			&b.CreatedAt, &b.UpdatedAt, &b.EventTypeName,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListConfirmedInRange returns confirmed bookings for the event type whose
// interval intersects [from, to) by absolute instant.
func (r *bookingRepository) ListConfirmedInRange(ctx context.Context, eventTypeID int64, from, to time.Time) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings
	WHERE event_type_id=$1 AND status='confirmed'
	AND start_time < $3 AND end_time > $2
	ORDER BY start_time`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, eventTypeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.EventTypeID, &b.ManageToken, &b.Status,
			&b.InviteeName, &b.InviteeEmail, &b.StartTime, &b.EndTime,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *bookingRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	const q = `UPDATE bookings SET status='cancelled', updated_at=now()
	WHERE id=$1 AND status != 'cancelled'`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
