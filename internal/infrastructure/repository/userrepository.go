package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/domain/user"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
	mapper mappers.UserMapper
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     db,
		logger: logger,
		mapper: mappers.NewUserMapper(),
	}
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetBySubscriptionKey retrieves the owner of a subscription key
func (r *UserRepository) GetBySubscriptionKey(ctx context.Context, key string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("subscription_key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by subscription key", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}
