package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/models"
	apperrors "github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// ClashConfigRepository implements clashconfig.Repository
type ClashConfigRepository struct {
	db     *gorm.DB
	logger logger.Interface
	mapper mappers.ClashConfigMapper
}

// NewClashConfigRepository creates a new ClashConfigRepository
func NewClashConfigRepository(db *gorm.DB, logger logger.Interface) clashconfig.Repository {
	return &ClashConfigRepository{
		db:     db,
		logger: logger,
		mapper: mappers.NewClashConfigMapper(),
	}
}

// GetByID retrieves a profile by id
func (r *ClashConfigRepository) GetByID(ctx context.Context, id string) (*clashconfig.Profile, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByKey retrieves a profile by its lookup key
func (r *ClashConfigRepository) GetByKey(ctx context.Context, key string) (*clashconfig.Profile, error) {
	return r.first(ctx, "config_key = ?", key)
}

func (r *ClashConfigRepository) first(ctx context.Context, query string, arg string) (*clashconfig.Profile, error) {
	var model models.ClashConfigModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get clash config", "query", query, "value", arg, "error", err)
		return nil, fmt.Errorf("failed to get clash config: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// List returns every profile ordered by key
func (r *ClashConfigRepository) List(ctx context.Context) ([]*clashconfig.Profile, error) {
	var modelList []*models.ClashConfigModel
	if err := r.db.WithContext(ctx).Order("config_key ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list clash configs", "error", err)
		return nil, fmt.Errorf("failed to list clash configs: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}

// Create inserts a profile and assigns its generated id
func (r *ClashConfigRepository) Create(ctx context.Context, profile *clashconfig.Profile) error {
	model := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("clash config key already exists", profile.Key())
		}
		r.logger.Errorw("failed to create clash config", "key", profile.Key(), "error", err)
		return fmt.Errorf("failed to create clash config: %w", err)
	}

	if profile.ID() == "" {
		if err := profile.SetID(model.ID); err != nil {
			return err
		}
	}

	r.logger.Infow("clash config created", "id", model.ID, "key", model.Key)
	return nil
}

// Update writes every editable column, including cleared ones
func (r *ClashConfigRepository) Update(ctx context.Context, profile *clashconfig.Profile) error {
	result := r.db.WithContext(ctx).
		Model(&models.ClashConfigModel{}).
		Where("id = ?", profile.ID()).
		Updates(map[string]interface{}{
			"config_key":    profile.Key(),
			"name":          profile.Name(),
			"global_config": profile.GlobalConfig(),
			"rules":         profile.Rules(),
			"updated_at":    profile.UpdatedAt(),
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewConflictError("clash config key already exists", profile.Key())
		}
		r.logger.Errorw("failed to update clash config", "id", profile.ID(), "error", result.Error)
		return fmt.Errorf("failed to update clash config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("clash config not found", profile.ID())
	}
	return nil
}

// Delete removes a profile by id
func (r *ClashConfigRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ClashConfigModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete clash config", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete clash config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("clash config not found", id)
	}
	return nil
}
