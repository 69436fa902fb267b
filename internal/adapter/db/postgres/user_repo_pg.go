package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"signup-service/internal/domain/user"
	apperrors "signup-service/pkg/errors"
	"signup-service/pkg/logger"
)

// UserRepoPG implements the Repository interface using GORM. Postgres is the
// production dialect; any GORM dialect with the same schema works.
type UserRepoPG struct {
	db    *gorm.DB           // GORM database connection
	log   *zap.Logger        // Structured logger for database operations
	group singleflight.Group // Collapses concurrent probes into one round-trip
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Email    string `gorm:"index"`                    // Email as supplied; duplicates are allowed
	Password string // bcrypt hash, empty when no password was supplied
	Name     string `gorm:"not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Create inserts a new user into the database.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Email:    u.Email,
		Password: u.PasswordHash,
		Name:     u.Name,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return 0, apperrors.NewStoreError("failed to create user", err)
	}

	logger.WithContext(ctx, r.log).Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Ping verifies that a connection can be acquired and answers a trivial query.
// Concurrent callers share the in-flight probe. The shared probe is not bound
// to any one caller's cancellation; each caller stops waiting when its own
// ctx is done.
func (r *UserRepoPG) Ping(ctx context.Context) error {
	ch := r.group.DoChan("ping", func() (any, error) {
		return nil, r.ping(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Shared {
			r.log.Debug("database probe shared with concurrent caller")
		}
		return res.Err
	case <-ctx.Done():
		return apperrors.NewStoreError("failed to reach database", ctx.Err())
	}
}

func (r *UserRepoPG) ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return apperrors.NewStoreError("failed to acquire connection pool", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.NewStoreError("failed to reach database", err)
	}

	var one int
	if err := r.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return apperrors.NewStoreError("probe query failed", err)
	}

	return nil
}
