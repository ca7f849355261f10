package usecases

import (
	"context"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

type DeleteClashConfigCommand struct {
	ID string
}

type DeleteClashConfigUseCase struct {
	repo   clashconfig.Repository
	logger logger.Interface
}

func NewDeleteClashConfigUseCase(repo clashconfig.Repository, logger logger.Interface) *DeleteClashConfigUseCase {
	return &DeleteClashConfigUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *DeleteClashConfigUseCase) Execute(ctx context.Context, cmd DeleteClashConfigCommand) error {
	if err := uc.repo.Delete(ctx, cmd.ID); err != nil {
		return err
	}
	uc.logger.Infow("clash config deleted", "id", cmd.ID)
	return nil
}
