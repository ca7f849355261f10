package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// SubconverterRepository implements subconverter.Repository
type SubconverterRepository struct {
	db     *gorm.DB
	logger logger.Interface
	mapper mappers.SubconverterMapper
}

// NewSubconverterRepository creates a new SubconverterRepository
func NewSubconverterRepository(db *gorm.DB, logger logger.Interface) subconverter.Repository {
	return &SubconverterRepository{
		db:     db,
		logger: logger,
		mapper: mappers.NewSubconverterMapper(),
	}
}

// GetByID retrieves a subconverter by id
func (r *SubconverterRepository) GetByID(ctx context.Context, id string) (*subconverter.Subconverter, error) {
	var model models.SubconverterModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subconverter", "subconverter_id", id, "error", err)
		return nil, fmt.Errorf("failed to get subconverter: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// FindDefault returns the flagged default with the lowest id
func (r *SubconverterRepository) FindDefault(ctx context.Context) (*subconverter.Subconverter, error) {
	var model models.SubconverterModel
	err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		Order("id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find default subconverter", "error", err)
		return nil, fmt.Errorf("failed to find default subconverter: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// List returns every subconverter ordered by id
func (r *SubconverterRepository) List(ctx context.Context) ([]*subconverter.Subconverter, error) {
	var modelList []*models.SubconverterModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list subconverters", "error", err)
		return nil, fmt.Errorf("failed to list subconverters: %w", err)
	}
	return r.mapper.ToDomainList(modelList), nil
}
