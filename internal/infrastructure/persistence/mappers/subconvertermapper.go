package mappers

import (
	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/models"
)

// SubconverterMapper converts subconverter rows into domain values.
type SubconverterMapper interface {
	ToDomain(model *models.SubconverterModel) *subconverter.Subconverter
	ToDomainList(modelList []*models.SubconverterModel) []*subconverter.Subconverter
}

type SubconverterMapperImpl struct{}

func NewSubconverterMapper() SubconverterMapper {
	return &SubconverterMapperImpl{}
}

func (m *SubconverterMapperImpl) ToDomain(model *models.SubconverterModel) *subconverter.Subconverter {
	if model == nil {
		return nil
	}
	return subconverter.ReconstructSubconverter(model.ID, model.URL, model.Options, model.IsDefault)
}

func (m *SubconverterMapperImpl) ToDomainList(modelList []*models.SubconverterModel) []*subconverter.Subconverter {
	if modelList == nil {
		return nil
	}
	result := make([]*subconverter.Subconverter, 0, len(modelList))
	for _, model := range modelList {
		if sc := m.ToDomain(model); sc != nil {
			result = append(result, sc)
		}
	}
	return result
}
