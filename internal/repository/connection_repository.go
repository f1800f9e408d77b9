package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seanacker/souberUp/internal/models"
)

var ErrContactExists = errors.New("contact already added")

type ConnectionRepository struct {
	pool *pgxpool.Pool
}

func NewConnectionRepository(pool *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{pool: pool}
}

// CreatePair inserts the forward and reverse edges in one transaction, so a
// failed mutation leaves no partial pair behind. A duplicate edge surfaces
// as ErrContactExists via the composite primary key.
func (r *ConnectionRepository) CreatePair(ctx context.Context, forward models.Connection, reverse models.Connection) error {
	const query = `
		INSERT INTO connections (user_id, other_user_id, status, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, conn := range []models.Connection{forward, reverse} {
		if _, err := tx.Exec(ctx, query, conn.UserID, conn.OtherUserID, conn.Status); err != nil {
			if isUniqueViolation(err, "connections_pkey") {
				return ErrContactExists
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ConnectionRepository) ListByUser(ctx context.Context, userID string) ([]models.Connection, error) {
	const query = `
		SELECT user_id, other_user_id, status, created_at
		FROM connections
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []models.Connection
	for rows.Next() {
		var conn models.Connection
		if err := rows.Scan(&conn.UserID, &conn.OtherUserID, &conn.Status, &conn.CreatedAt); err != nil {
			return nil, err
		}
		conns = append(conns, conn)
	}
	return conns, rows.Err()
}
