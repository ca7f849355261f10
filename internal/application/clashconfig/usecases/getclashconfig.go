package usecases

import (
	"context"

	"github.com/orris-inc/subhub/internal/application/clashconfig/dto"
	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/shared/errors"
)

type GetClashConfigQuery struct {
	ID string
}

type GetClashConfigUseCase struct {
	repo clashconfig.Repository
}

func NewGetClashConfigUseCase(repo clashconfig.Repository) *GetClashConfigUseCase {
	return &GetClashConfigUseCase{repo: repo}
}

func (uc *GetClashConfigUseCase) Execute(ctx context.Context, query GetClashConfigQuery) (*dto.ClashConfigDTO, error) {
	profile, err := uc.repo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("clash config not found", query.ID)
	}
	return dto.ToClashConfigDTO(profile), nil
}

type ListClashConfigsUseCase struct {
	repo clashconfig.Repository
}

func NewListClashConfigsUseCase(repo clashconfig.Repository) *ListClashConfigsUseCase {
	return &ListClashConfigsUseCase{repo: repo}
}

func (uc *ListClashConfigsUseCase) Execute(ctx context.Context) ([]*dto.ClashConfigDTO, error) {
	profiles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToClashConfigDTOs(profiles), nil
}
