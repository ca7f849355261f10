package usecases

import (
	"context"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
)

type mockClashConfigRepository struct {
	GetByIDFunc  func(ctx context.Context, id string) (*clashconfig.Profile, error)
	GetByKeyFunc func(ctx context.Context, key string) (*clashconfig.Profile, error)
	ListFunc     func(ctx context.Context) ([]*clashconfig.Profile, error)
	CreateFunc   func(ctx context.Context, profile *clashconfig.Profile) error
	UpdateFunc   func(ctx context.Context, profile *clashconfig.Profile) error
	DeleteFunc   func(ctx context.Context, id string) error
}

func (m *mockClashConfigRepository) GetByID(ctx context.Context, id string) (*clashconfig.Profile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockClashConfigRepository) GetByKey(ctx context.Context, key string) (*clashconfig.Profile, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockClashConfigRepository) List(ctx context.Context) ([]*clashconfig.Profile, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockClashConfigRepository) Create(ctx context.Context, profile *clashconfig.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

func (m *mockClashConfigRepository) Update(ctx context.Context, profile *clashconfig.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
}

func (m *mockClashConfigRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
