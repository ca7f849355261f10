package handlers

import (
	"context"

	"github.com/orris-inc/subhub/internal/application/clashconfig/dto"
	"github.com/orris-inc/subhub/internal/application/clashconfig/usecases"
)

type createClashConfigUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateClashConfigCommand) (*dto.ClashConfigDTO, error)
}

type updateClashConfigUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateClashConfigCommand) (*dto.ClashConfigDTO, error)
}

type deleteClashConfigUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeleteClashConfigCommand) error
}

type getClashConfigUseCase interface {
	Execute(ctx context.Context, query usecases.GetClashConfigQuery) (*dto.ClashConfigDTO, error)
}

type listClashConfigsUseCase interface {
	Execute(ctx context.Context) ([]*dto.ClashConfigDTO, error)
}

type mergeClashConfigUseCase interface {
	Execute(ctx context.Context, cmd usecases.MergeClashConfigCommand) (*usecases.MergeClashConfigResult, error)
}
