package mappers

import (
	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/models"
)

// ClashConfigMapper converts between profiles and their rows.
type ClashConfigMapper interface {
	ToDomain(model *models.ClashConfigModel) *clashconfig.Profile
	ToModel(profile *clashconfig.Profile) *models.ClashConfigModel
	ToDomainList(modelList []*models.ClashConfigModel) []*clashconfig.Profile
}

// ClashConfigMapperImpl implements ClashConfigMapper
type ClashConfigMapperImpl struct{}

// NewClashConfigMapper creates a new ClashConfigMapper
func NewClashConfigMapper() ClashConfigMapper {
	return &ClashConfigMapperImpl{}
}

func (m *ClashConfigMapperImpl) ToDomain(model *models.ClashConfigModel) *clashconfig.Profile {
	if model == nil {
		return nil
	}
	return clashconfig.ReconstructProfile(
		model.ID,
		model.Key,
		model.Name,
		model.GlobalConfig,
		model.Rules,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ClashConfigMapperImpl) ToModel(profile *clashconfig.Profile) *models.ClashConfigModel {
	if profile == nil {
		return nil
	}
	return &models.ClashConfigModel{
		ID:           profile.ID(),
		Key:          profile.Key(),
		Name:         profile.Name(),
		GlobalConfig: profile.GlobalConfig(),
		Rules:        profile.Rules(),
		CreatedAt:    profile.CreatedAt(),
		UpdatedAt:    profile.UpdatedAt(),
	}
}

func (m *ClashConfigMapperImpl) ToDomainList(modelList []*models.ClashConfigModel) []*clashconfig.Profile {
	if modelList == nil {
		return nil
	}
	profiles := make([]*clashconfig.Profile, 0, len(modelList))
	for _, model := range modelList {
		if p := m.ToDomain(model); p != nil {
			profiles = append(profiles, p)
		}
	}
	return profiles
}
