package usecases

import (
	"context"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// MergeClashConfigCommand merges a stored profile into a caller supplied document.
type MergeClashConfigCommand struct {
	ID       string
	BaseYAML string
}

type MergeClashConfigResult struct {
	Content string
}

type MergeClashConfigUseCase struct {
	repo   clashconfig.Repository
	logger logger.Interface
}

func NewMergeClashConfigUseCase(repo clashconfig.Repository, logger logger.Interface) *MergeClashConfigUseCase {
	return &MergeClashConfigUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *MergeClashConfigUseCase) Execute(ctx context.Context, cmd MergeClashConfigCommand) (*MergeClashConfigResult, error) {
	profile, err := uc.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("clash config not found", cmd.ID)
	}

	content, err := clashconfig.Merge(cmd.BaseYAML, profile)
	if err != nil {
		uc.logger.Warnw("clash config merge failed", "id", cmd.ID, "error", err)
		return nil, err
	}
	return &MergeClashConfigResult{Content: content}, nil
}
