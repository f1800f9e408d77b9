package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/seanacker/souberUp/internal/config"
	"github.com/seanacker/souberUp/internal/models"
	"github.com/seanacker/souberUp/internal/repository"
)

var (
	ErrContactNotFound = errors.New("no user found with this phone number")
	ErrSelfContact     = errors.New("cannot add yourself as a contact")
)

type ContactService struct {
	users       UserStore
	connections ConnectionStore
	cfg         config.ContactsConfig
	log         zerolog.Logger
}

func NewContactService(users UserStore, connections ConnectionStore, cfg config.ContactsConfig, log zerolog.Logger) *ContactService {
	return &ContactService{
		users:       users,
		connections: connections,
		cfg:         cfg,
		log:         log,
	}
}

// AddContact links the caller to the user owning phoneNumber. Both edges are
// written in one transaction: the forward edge is accepted, the reverse edge
// takes the configured reciprocal status. A duplicate pair is reported by
// the database, not a prior lookup.
func (s *ContactService) AddContact(ctx context.Context, callerID string, phoneNumber string) (models.User, error) {
	other, err := s.users.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrContactNotFound
		}
		return models.User{}, err
	}

	if other.ID == callerID {
		return models.User{}, ErrSelfContact
	}

	forward := models.Connection{
		UserID:      callerID,
		OtherUserID: other.ID,
		Status:      models.ConnectionStatusAccepted,
	}
	reverse := models.Connection{
		UserID:      other.ID,
		OtherUserID: callerID,
		Status:      models.ConnectionStatus(s.cfg.ReciprocalStatus),
	}

	if err := s.connections.CreatePair(ctx, forward, reverse); err != nil {
		return models.User{}, err
	}

	s.log.Info().
		Str("user_id", callerID).
		Str("other_user_id", other.ID).
		Msg("contact added")
	return other, nil
}
