package usecases

import (
	"context"

	"github.com/orris-inc/subhub/internal/application/clashconfig/dto"
)

type CreateClashConfigExecutor interface {
	Execute(ctx context.Context, cmd CreateClashConfigCommand) (*dto.ClashConfigDTO, error)
}

type UpdateClashConfigExecutor interface {
	Execute(ctx context.Context, cmd UpdateClashConfigCommand) (*dto.ClashConfigDTO, error)
}

type DeleteClashConfigExecutor interface {
	Execute(ctx context.Context, cmd DeleteClashConfigCommand) error
}

type GetClashConfigExecutor interface {
	Execute(ctx context.Context, query GetClashConfigQuery) (*dto.ClashConfigDTO, error)
}

type ListClashConfigsExecutor interface {
	Execute(ctx context.Context) ([]*dto.ClashConfigDTO, error)
}

type MergeClashConfigExecutor interface {
	Execute(ctx context.Context, cmd MergeClashConfigCommand) (*MergeClashConfigResult, error)
}
