package user

import (
	"context"

	"go.uber.org/zap"

	domain "signup-service/internal/domain/user"
	apperrors "signup-service/pkg/errors"
	"signup-service/pkg/logger"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error) // Insert a new user and return its ID
	Ping(ctx context.Context) error                            // Verify the store answers a round-trip query
}

// PasswordHasher turns a plain password into a one-way salted hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Service implements the business logic for user signup.
type Service struct {
	repo   Repository     // Repository for data access
	hasher PasswordHasher // Hasher applied to passwords before they are stored
	log    *zap.Logger    // Logger for structured logging
}

// New creates a new Service with the provided repository, hasher and logger.
func New(r Repository, h PasswordHasher, log *zap.Logger) *Service {
	return &Service{repo: r, hasher: h, log: log}
}

// CheckDatabase verifies the database connection with a round-trip query.
func (s *Service) CheckDatabase(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		logger.WithContext(ctx, s.log).Error("database probe failed", zap.Error(err))
		return err
	}
	return nil
}

// Signup stores a new user. The database is probed first, the name defaults
// to DefaultName and a non-empty password is stored as a bcrypt hash.
func (s *Service) Signup(ctx context.Context, in SignupRequest) (*SignupResponse, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("signing up user", zap.String("email", in.Email))

	if in.OrgName != "" {
		log.Debug("organization name is not persisted", zap.String("org_name", in.OrgName))
	}

	if err := s.CheckDatabase(ctx); err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = domain.DefaultName
	}

	var passwordHash string
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			log.Error("failed to hash password", zap.Error(err))
			return nil, apperrors.NewInternalError("failed to hash password", err)
		}
		passwordHash = hash
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: passwordHash,
		Name:         name,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user signed up", zap.Int64("user_id", id))
	return &SignupResponse{UserID: id}, nil
}
