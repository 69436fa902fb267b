package di

import (
	"fmt"

	"signup-service/cmd/api/infrastructure"
	"signup-service/internal/adapter/db/postgres"
	ginhandler "signup-service/internal/adapter/gin/handler"
	"signup-service/internal/config"
	"signup-service/internal/usecase/user"
	"signup-service/pkg/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	UserUC        user.Usecase
	UserHandler   *ginhandler.UserHandler
	HealthHandler *ginhandler.HealthHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repository
	repo := postgres.NewUserRepoPG(db, l)

	// Initialize use case
	userUC := user.New(repo, security.NewBcryptHasher(cfg.Security.PasswordHashCost), l)

	return &Container{
		Config:        cfg,
		Logger:        l,
		DB:            db,
		UserUC:        userUC,
		UserHandler:   ginhandler.NewUserHandler(userUC, l),
		HealthHandler: ginhandler.NewHealthHandler(userUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
