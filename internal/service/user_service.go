package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/seanacker/souberUp/internal/models"
)

const defaultSearchLimit = 20

type UserService struct {
	users    UserStore
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUserService(users UserStore, log zerolog.Logger) *UserService {
	return &UserService{
		users:    users,
		validate: validator.New(),
		log:      log,
	}
}

// Get returns the user with the given id. Callers may only view their own
// record; anything else is permission denied, regardless of whether the id
// exists.
func (s *UserService) Get(ctx context.Context, callerID string, id string) (models.User, error) {
	if callerID != id {
		return models.User{}, ErrPermissionDenied
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Search(ctx context.Context, q string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultSearchLimit
	}
	return s.users.SearchByName(ctx, q, limit)
}

type UserUpdateInput struct {
	Name             *string `validate:"omitempty,min=1"`
	UsageGoalMinutes *int    `validate:"omitempty,gte=0"`
}

// Update applies only the provided fields to the caller's own record.
func (s *UserService) Update(ctx context.Context, callerID string, input UserUpdateInput) (models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return models.User{}, fmt.Errorf("invalid update: %w", err)
	}

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return models.User{}, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.UsageGoalMinutes != nil {
		user.UsageGoalMinutes = *input.UsageGoalMinutes
	}

	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Debug().Str("user_id", user.ID).Msg("user updated")
	return user, nil
}
