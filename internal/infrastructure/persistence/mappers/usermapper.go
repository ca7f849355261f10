package mappers

import (
	"github.com/orris-inc/subhub/internal/domain/user"
	"github.com/orris-inc/subhub/internal/infrastructure/persistence/models"
)

// UserMapper converts user rows into domain users.
type UserMapper interface {
	ToDomain(model *models.UserModel) *user.User
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}
	return user.ReconstructUser(model.ID, model.Name, model.SubscriptionKey, model.SubconverterID)
}
