package service

import (
	"context"
	"errors"
	"time"

	"github.com/seanacker/souberUp/internal/models"
)

// Shared authorization errors. Permission denied is deliberately distinct
// from not-found so callers cannot probe for other users' data.
var (
	ErrAuthRequired     = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (models.User, error)
	SearchByName(ctx context.Context, q string, limit int) ([]models.User, error)
	Update(ctx context.Context, user models.User) error
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
}

type ConnectionStore interface {
	CreatePair(ctx context.Context, forward models.Connection, reverse models.Connection) error
}

type UsageStore interface {
	Upsert(ctx context.Context, row models.UsageDaily) error
	SumRange(ctx context.Context, userID string, from time.Time, to time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
