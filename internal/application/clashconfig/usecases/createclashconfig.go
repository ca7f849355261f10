package usecases

import (
	"context"

	"github.com/orris-inc/subhub/internal/application/clashconfig/dto"
	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

type CreateClashConfigCommand struct {
	Key          string
	Name         string
	GlobalConfig string
	Rules        string
}

type CreateClashConfigUseCase struct {
	repo   clashconfig.Repository
	logger logger.Interface
}

func NewCreateClashConfigUseCase(repo clashconfig.Repository, logger logger.Interface) *CreateClashConfigUseCase {
	return &CreateClashConfigUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *CreateClashConfigUseCase) Execute(ctx context.Context, cmd CreateClashConfigCommand) (*dto.ClashConfigDTO, error) {
	profile, err := clashconfig.NewProfile(cmd.Key, cmd.Name, cmd.GlobalConfig, cmd.Rules)
	if err != nil {
		uc.logger.Warnw("invalid clash config", "key", cmd.Key, "error", err)
		return nil, err
	}

	if err := uc.repo.Create(ctx, profile); err != nil {
		uc.logger.Errorw("failed to create clash config", "key", cmd.Key, "error", err)
		return nil, err
	}

	uc.logger.Infow("clash config created", "id", profile.ID(), "key", profile.Key())
	return dto.ToClashConfigDTO(profile), nil
}
