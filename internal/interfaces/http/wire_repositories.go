package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/domain/node"
	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/domain/user"
	"github.com/orris-inc/subhub/internal/infrastructure/repository"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.Repository
	nodeClientRepo   node.NodeClientRepository
	subconverterRepo subconverter.Repository
	clashConfigRepo  clashconfig.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db, log),
		nodeClientRepo:   repository.NewNodeClientRepository(db, log),
		subconverterRepo: repository.NewSubconverterRepository(db, log),
		clashConfigRepo:  repository.NewClashConfigRepository(db, log),
	}
}
