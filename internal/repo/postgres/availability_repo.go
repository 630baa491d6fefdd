package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calport/calport-bookings/internal/domain"
)

type AvailabilityRepository interface {
	List(ctx context.Context) ([]domain.AvailabilityRule, error)
	Replace(ctx context.Context, rules []domain.AvailabilityRule) error
}

type availabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) AvailabilityRepository {
	return &availabilityRepository{pool: pool}
}

func (r *availabilityRepository) List(ctx context.Context) ([]domain.AvailabilityRule, error) {
	const q = `SELECT weekday, start_time, end_time, timezone
	FROM availability_rules ORDER BY weekday`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AvailabilityRule
	for rows.Next() {
		var rule domain.AvailabilityRule
		if err := rows.Scan(&rule.Weekday, &rule.StartTime, &rule.EndTime, &rule.Timezone); err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

// Replace swaps the whole weekly rule set in one transaction so readers never
// observe a transiently empty calendar between the delete and the inserts.
func (r *availabilityRepository) Replace(ctx context.Context, rules []domain.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM availability_rules`); err != nil {
		return err
	}

	const q = `INSERT INTO availability_rules (weekday, start_time, end_time, timezone)
	VALUES ($1,$2,$3,$4)`
	for _, rule := range rules {
		if _, err := tx.Exec(ctx, q, rule.Weekday, rule.StartTime, rule.EndTime, rule.Timezone); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
