package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/seanacker/souberUp/internal/config"
	"github.com/seanacker/souberUp/internal/ids"
	"github.com/seanacker/souberUp/internal/models"
	"github.com/seanacker/souberUp/internal/repository"
	"github.com/seanacker/souberUp/internal/security"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrTooManyAttempts     = errors.New("too many login attempts, try again later")
)

type AuthService struct {
	users    UserStore
	tokens   *security.TokenIssuer
	cache    *redis.Client
	cfg      *config.AppConfig
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthService(users UserStore, tokens *security.TokenIssuer, cache *redis.Client, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		cache:    cache,
		cfg:      cfg,
		validate: validator.New(),
		log:      log,
	}
}

type RegisterInput struct {
	Name             string `validate:"required"`
	PhoneNumber      string `validate:"required,e164"`
	Password         string `validate:"required,min=8"`
	UsageGoalMinutes int    `validate:"gte=0"`
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return models.User{}, fmt.Errorf("invalid registration: %w", err)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:               ids.New(),
		Name:             input.Name,
		PhoneNumber:      input.PhoneNumber,
		PasswordHash:     passwordHash,
		UsageGoalMinutes: input.UsageGoalMinutes,
		IsActive:         true,
	}

	// Uniqueness rides on the phone_number constraint; a lost race with a
	// concurrent registration surfaces as ErrPhoneTaken here.
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

type LoginInput struct {
	PhoneNumber string `validate:"required"`
	Password    string `validate:"required"`
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (TokenPair, error) {
	if err := s.validate.Struct(input); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := s.throttle(ctx, input.PhoneNumber); err != nil {
		return TokenPair{}, err
	}

	user, err := s.users.FindByPhone(ctx, input.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if !user.IsActive {
		return TokenPair{}, ErrInvalidCredentials
	}

	ok, needsRehash, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return TokenPair{}, ErrInvalidCredentials
	}

	if needsRehash {
		s.rehashPassword(ctx, user.ID, input.Password)
	}

	return s.issuePair(user.ID)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The old
// refresh token stays valid until expiry; tokens are stateless and there is
// no revocation list.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims := s.tokens.Decode(refreshToken)
	if claims == nil || claims.TokenType != security.TokenTypeRefresh {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}
	if !user.IsActive {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	return s.issuePair(user.ID)
}

// VerifyAccessToken resolves a bearer token to a user. Any failure (bad
// token, wrong type, unknown or inactive user) yields nil, so the request
// proceeds anonymously.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenStr string) *models.User {
	claims := s.tokens.Decode(tokenStr)
	if claims == nil || claims.TokenType != security.TokenTypeAccess {
		return nil
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.log.Warn().Err(err).Msg("load user for access token failed")
		}
		return nil
	}
	if !user.IsActive {
		return nil
	}

	return &user
}

func (s *AuthService) issuePair(userID string) (TokenPair, error) {
	accessToken, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}

func (s *AuthService) rehashPassword(ctx context.Context, userID string, password string) {
	newHash, err := security.HashPassword(password)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("password rehash failed")
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("password rehash update failed")
		return
	}
	s.log.Debug().Str("user_id", userID).Msg("password hash upgraded")
}

// throttle counts login attempts per phone number in redis. Best effort:
// when redis is unavailable logins proceed unthrottled.
func (s *AuthService) throttle(ctx context.Context, phoneNumber string) error {
	if s.cache == nil || s.cfg.Security.LoginAttempts <= 0 {
		return nil
	}

	key := "login_attempts:" + phoneNumber
	count, err := s.cache.Incr(ctx, key).Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle unavailable")
		return nil
	}
	if count == 1 {
		s.cache.Expire(ctx, key, s.cfg.Security.LoginWindow)
	}
	if count > int64(s.cfg.Security.LoginAttempts) {
		return ErrTooManyAttempts
	}
	return nil
}
