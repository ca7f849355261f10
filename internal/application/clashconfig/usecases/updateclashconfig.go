package usecases

import (
	"context"

	"github.com/orris-inc/subhub/internal/application/clashconfig/dto"
	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

type UpdateClashConfigCommand struct {
	ID           string
	Key          string
	Name         string
	GlobalConfig string
	Rules        string
}

type UpdateClashConfigUseCase struct {
	repo   clashconfig.Repository
	logger logger.Interface
}

func NewUpdateClashConfigUseCase(repo clashconfig.Repository, logger logger.Interface) *UpdateClashConfigUseCase {
	return &UpdateClashConfigUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *UpdateClashConfigUseCase) Execute(ctx context.Context, cmd UpdateClashConfigCommand) (*dto.ClashConfigDTO, error) {
	profile, err := uc.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("clash config not found", cmd.ID)
	}

	if err := profile.Update(cmd.Key, cmd.Name, cmd.GlobalConfig, cmd.Rules); err != nil {
		uc.logger.Warnw("invalid clash config update", "id", cmd.ID, "error", err)
		return nil, err
	}

	if err := uc.repo.Update(ctx, profile); err != nil {
		uc.logger.Errorw("failed to update clash config", "id", cmd.ID, "error", err)
		return nil, err
	}

	uc.logger.Infow("clash config updated", "id", profile.ID(), "key", profile.Key())
	return dto.ToClashConfigDTO(profile), nil
}
