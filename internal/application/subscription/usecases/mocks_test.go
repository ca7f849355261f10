package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/domain/node"
	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/domain/user"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetBySubscriptionKey(ctx context.Context, key string) (*user.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type mockNodeClientRepository struct{ mock.Mock }

func (m *mockNodeClientRepository) ListEnabledLinksByUser(ctx context.Context, userID string) ([]*node.UserLink, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*node.UserLink), args.Error(1)
}

type mockSubconverterRepository struct{ mock.Mock }

func (m *mockSubconverterRepository) GetByID(ctx context.Context, id string) (*subconverter.Subconverter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subconverter.Subconverter), args.Error(1)
}

func (m *mockSubconverterRepository) FindDefault(ctx context.Context) (*subconverter.Subconverter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subconverter.Subconverter), args.Error(1)
}

func (m *mockSubconverterRepository) List(ctx context.Context) ([]*subconverter.Subconverter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subconverter.Subconverter), args.Error(1)
}

type mockProfileRepository struct{ mock.Mock }

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*clashconfig.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clashconfig.Profile), args.Error(1)
}

func (m *mockProfileRepository) GetByKey(ctx context.Context, key string) (*clashconfig.Profile, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clashconfig.Profile), args.Error(1)
}

func (m *mockProfileRepository) List(ctx context.Context) ([]*clashconfig.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clashconfig.Profile), args.Error(1)
}

func (m *mockProfileRepository) Create(ctx context.Context, p *clashconfig.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfileRepository) Update(ctx context.Context, p *clashconfig.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfileRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Convert(ctx context.Context, links []string, sc *subconverter.Subconverter) (string, error) {
	args := m.Called(ctx, links, sc)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) Verify(ctx context.Context, baseURL string) (string, error) {
	args := m.Called(ctx, baseURL)
	return args.String(0), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key, document string, ttl time.Duration) error {
	return m.Called(ctx, key, document, ttl).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) RecordSubscription(result string) { m.Called(result) }

func (m *mockMetrics) ObserveConversion(_ time.Duration, reason string) { m.Called(reason) }

func (m *mockMetrics) RecordMergeFailure(kind string) { m.Called(kind) }

func (m *mockMetrics) RecordProbe(subconverterID string, ok bool) { m.Called(subconverterID, ok) }

// fixture wires a Renderer over mocks.
type fixture struct {
	users    *mockUserRepository
	clients  *mockNodeClientRepository
	scs      *mockSubconverterRepository
	profiles *mockProfileRepository
	gateway  *mockGateway
	renderer *Renderer
}

func newFixture(opts ...RendererOption) *fixture {
	f := &fixture{
		users:    new(mockUserRepository),
		clients:  new(mockNodeClientRepository),
		scs:      new(mockSubconverterRepository),
		profiles: new(mockProfileRepository),
		gateway:  new(mockGateway),
	}
	log := logger.NewNopLogger()
	f.renderer = NewRenderer(
		NewLinkCollector(f.clients, log),
		NewSubconverterResolver(f.scs, log),
		f.profiles,
		f.gateway,
		log,
		opts...,
	)
	return f
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.users.AssertExpectations(t)
	f.clients.AssertExpectations(t)
	f.scs.AssertExpectations(t)
	f.profiles.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
}

func strPtr(s string) *string { return &s }
