package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/seanacker/souberUp/internal/config"
	"github.com/seanacker/souberUp/internal/graph"
	"github.com/seanacker/souberUp/internal/middleware"
	"github.com/seanacker/souberUp/internal/repository"
	"github.com/seanacker/souberUp/internal/security"
	"github.com/seanacker/souberUp/internal/service"
)

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	db           *pgxpool.Pool
	cache        *redis.Client
	schema       graphql.Schema
	authService  *service.AuthService
	usageService *service.UsageService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) (HandlerSet, error) {
	userRepo := repository.NewUserRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	usageRepo := repository.NewUsageRepository(db)

	tokens := security.NewTokenIssuer(
		cfg.Security.JWTSecret,
		cfg.Security.JWTAccessTTL,
		cfg.Security.JWTRefreshTTL,
	)

	auth := service.NewAuthService(userRepo, tokens, cache, cfg, log)
	users := service.NewUserService(userRepo, log)
	contacts := service.NewContactService(userRepo, connectionRepo, cfg.Contacts, log)
	usage := service.NewUsageService(userRepo, usageRepo, log)

	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:     auth,
		Users:    users,
		Contacts: contacts,
		Usage:    usage,
	})
	if err != nil {
		return HandlerSet{}, err
	}

	return HandlerSet{
		log:          log,
		cfg:          cfg,
		db:           db,
		cache:        cache,
		schema:       schema,
		authService:  auth,
		usageService: usage,
	}, nil
}

// UsageService exposes the usage service for the retention job.
func (h HandlerSet) UsageService() *service.UsageService {
	return h.usageService
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.Use(middleware.BearerContext(h.authService, h.log))
	v1.POST("/graphql", h.GraphQL)
}
