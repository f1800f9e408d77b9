package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seanacker/souberUp/internal/models"
)

type UsageRepository struct {
	pool *pgxpool.Pool
}

func NewUsageRepository(pool *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{pool: pool}
}

// Upsert stores the day's total for (user, date). Repeated reports for the
// same day are last-write-wins, not additive.
func (r *UsageRepository) Upsert(ctx context.Context, row models.UsageDaily) error {
	const query = `
		INSERT INTO usage_daily (id, user_id, date, total_ms)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date)
		DO UPDATE SET total_ms = EXCLUDED.total_ms
	`

	_, err := r.pool.Exec(ctx, query, row.ID, row.UserID, row.Date, row.TotalMS)
	return err
}

// SumRange totals usage for the half-open interval [from, to). No rows sum
// to zero.
func (r *UsageRepository) SumRange(ctx context.Context, userID string, from time.Time, to time.Time) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(total_ms), 0)
		FROM usage_daily
		WHERE user_id = $1 AND date >= $2 AND date < $3
	`

	var total int64
	if err := r.pool.QueryRow(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UsageRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM usage_daily WHERE date < $1`
	cmd, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
