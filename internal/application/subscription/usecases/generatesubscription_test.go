package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/domain/node"
	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/domain/user"
	"github.com/orris-inc/subhub/internal/shared/constants"
	apperrors "github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

const rawDocument = `port: 7890
mode: rule
proxies:
  - name: hk-01
    type: ss
rules:
  - MATCH,DIRECT
`

func testUser(preferred *string) *user.User {
	return user.ReconstructUser("u1", "alice", "key-1", preferred)
}

func defaultSubconverter() *subconverter.Subconverter {
	return subconverter.ReconstructSubconverter("sc-default", "http://sc.local", "", true)
}

func acmeProfile() *clashconfig.Profile {
	gc := "mode: global\ndns:\n  enable: true\n"
	rules := "DOMAIN-SUFFIX,example.com,Proxy\nhost-suffix,corp.local,DIRECT"
	return clashconfig.ReconstructProfile("p1", "acme", "Acme", &gc, &rules, time.Now(), time.Now())
}

func TestGenerateSubscription_UserNotFound(t *testing.T) {
	f := newFixture()
	f.users.On("GetBySubscriptionKey", mock.Anything, "missing").Return(nil, nil)

	uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "missing"})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "user not found")
	f.gateway.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateSubscription_NoProfileReturnsRawDocument(t *testing.T) {
	f := newFixture()
	sc := defaultSubconverter()
	f.users.On("GetBySubscriptionKey", mock.Anything, "key-1").Return(testUser(nil), nil)
	f.scs.On("FindDefault", mock.Anything).Return(sc, nil)
	f.clients.On("ListEnabledLinksByUser", mock.Anything, "u1").Return([]*node.UserLink{
		{NodeClientID: "c2", URL: "vmess://b", Order: 2},
		{NodeClientID: "c1", URL: "ss://a", Order: 1},
	}, nil)
	f.gateway.On("Convert", mock.Anything, []string{"ss://a", "vmess://b"}, sc).Return(rawDocument, nil)

	uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "key-1"})

	require.NoError(t, err)
	assert.Equal(t, rawDocument, result.Content)
	assert.Equal(t, constants.ContentTypeYAML, result.ContentType)
	assert.False(t, result.Cached)
	f.assertExpectations(t)
	f.profiles.AssertNotCalled(t, "GetByKey", mock.Anything, mock.Anything)
}

func TestGenerateSubscription_EmptyLinkSetStillConverts(t *testing.T) {
	f := newFixture()
	sc := defaultSubconverter()
	f.users.On("GetBySubscriptionKey", mock.Anything, "key-1").Return(testUser(nil), nil)
	f.scs.On("FindDefault", mock.Anything).Return(sc, nil)
	f.clients.On("ListEnabledLinksByUser", mock.Anything, "u1").Return([]*node.UserLink{}, nil)
	f.gateway.On("Convert", mock.Anything, []string{}, sc).Return("proxies: []\n", nil)

	uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "key-1"})

	require.NoError(t, err)
	assert.Equal(t, "proxies: []\n", result.Content)
	f.assertExpectations(t)
}

func TestGenerateSubscription_MergesProfile(t *testing.T) {
	f := newFixture()
	sc := defaultSubconverter()
	f.users.On("GetBySubscriptionKey", mock.Anything, "key-1").Return(testUser(nil), nil)
	f.scs.On("FindDefault", mock.Anything).Return(sc, nil)
	f.clients.On("ListEnabledLinksByUser", mock.Anything, "u1").Return([]*node.UserLink{
		{NodeClientID: "c1", URL: "ss://a", Order: 1},
	}, nil)
	f.gateway.On("Convert", mock.Anything, []string{"ss://a"}, sc).Return(rawDocument, nil)
	f.profiles.On("GetByKey", mock.Anything, "acme").Return(acmeProfile(), nil)

	uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "key-1", ProfileKey: "acme"})

	require.NoError(t, err)
	want, err := clashconfig.Merge(rawDocument, acmeProfile())
	require.NoError(t, err)
	assert.Equal(t, want, result.Content)
	assert.Contains(t, result.Content, "mode: global")
	assert.Contains(t, result.Content, "DOMAIN-SUFFIX,corp.local,DIRECT")
	f.assertExpectations(t)
}

func TestGenerateSubscription_UnknownProfileFallsBackToRaw(t *testing.T) {
	f := newFixture()
	sc := defaultSubconverter()
	f.users.On("GetBySubscriptionKey", mock.Anything, "key-1").Return(testUser(nil), nil)
	f.scs.On("FindDefault", mock.Anything).Return(sc, nil)
	f.clients.On("ListEnabledLinksByUser", mock.Anything, "u1").Return([]*node.UserLink{}, nil)
	f.gateway.On("Convert", mock.Anything, []string{}, sc).Return(rawDocument, nil)
	f.profiles.On("GetByKey", mock.Anything, "nope").Return(nil, nil)

	uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "key-1", ProfileKey: "nope"})

	require.NoError(t, err)
	assert.Equal(t, rawDocument, result.Content)
	f.assertExpectations(t)
}

func TestGenerateSubscription_SubconverterResolution(t *testing.T) {
	preferred := subconverter.ReconstructSubconverter("sc-2", "http://preferred.local", "", false)

	tests := []struct {
		name      string
		preferred *string
		setup     func(f *fixture)
		wantSC    *subconverter.Subconverter
		wantErr   string
	}{
		{
			name:      "preferred exists",
			preferred: strPtr("sc-2"),
			setup: func(f *fixture) {
				f.scs.On("GetByID", mock.Anything, "sc-2").Return(preferred, nil)
			},
			wantSC: preferred,
		},
		{
			name:      "preferred deleted falls back to default",
			preferred: strPtr("sc-gone"),
			setup: func(f *fixture) {
				f.scs.On("GetByID", mock.Anything, "sc-gone").Return(nil, nil)
				f.scs.On("FindDefault", mock.Anything).Return(defaultSubconverter(), nil)
			},
			wantSC: defaultSubconverter(),
		},
		{
			name: "no preference and no default",
			setup: func(f *fixture) {
				f.scs.On("FindDefault", mock.Anything).Return(nil, nil)
			},
			wantErr: "subconverter not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.users.On("GetBySubscriptionKey", mock.Anything, "key-1").Return(testUser(tt.preferred), nil)
			tt.setup(f)
			if tt.wantSC != nil {
				f.clients.On("ListEnabledLinksByUser", mock.Anything, "u1").Return([]*node.UserLink{}, nil)
				f.gateway.On("Convert", mock.Anything, []string{}, tt.wantSC).Return(rawDocument, nil)
			}

			uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
			_, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "key-1"})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsNotFoundError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			f.assertExpectations(t)
		})
	}
}

func TestGenerateSubscription_UpstreamFailure(t *testing.T) {
	metrics := new(mockMetrics)
	metrics.On("ObserveConversion", "upstream").Once()
	metrics.On("RecordSubscription", resultError).Once()

	f := newFixture(WithMetrics(metrics))
	sc := defaultSubconverter()
	f.users.On("GetBySubscriptionKey", mock.Anything, "key-1").Return(testUser(nil), nil)
	f.scs.On("FindDefault", mock.Anything).Return(sc, nil)
	f.clients.On("ListEnabledLinksByUser", mock.Anything, "u1").Return([]*node.UserLink{}, nil)
	f.gateway.On("Convert", mock.Anything, []string{}, sc).
		Return("", apperrors.NewUpstreamError("conversion failed: upstream returned status 503"))

	uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "key-1"})

	assert.Nil(t, result)
	assert.True(t, apperrors.IsUpstreamError(err))
	metrics.AssertExpectations(t)
}

func TestGenerateSubscription_MergeFailureReturnsNoDocument(t *testing.T) {
	metrics := new(mockMetrics)
	metrics.On("ObserveConversion", "").Once()
	metrics.On("RecordMergeFailure", string(apperrors.ErrorTypeMalformedInput)).Once()
	metrics.On("RecordSubscription", resultError).Once()

	f := newFixture(WithMetrics(metrics))
	sc := defaultSubconverter()
	broken := "dns: [unclosed"
	profile := clashconfig.ReconstructProfile("p1", "broken", "Broken", &broken, nil, time.Now(), time.Now())

	f.users.On("GetBySubscriptionKey", mock.Anything, "key-1").Return(testUser(nil), nil)
	f.scs.On("FindDefault", mock.Anything).Return(sc, nil)
	f.clients.On("ListEnabledLinksByUser", mock.Anything, "u1").Return([]*node.UserLink{}, nil)
	f.gateway.On("Convert", mock.Anything, []string{}, sc).Return(rawDocument, nil)
	f.profiles.On("GetByKey", mock.Anything, "broken").Return(profile, nil)

	uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "key-1", ProfileKey: "broken"})

	assert.Nil(t, result)
	assert.True(t, apperrors.IsMalformedInputError(err))
	assert.Contains(t, err.Error(), "globalConfig")
	metrics.AssertExpectations(t)
}

func TestGenerateSubscription_RepositoryError(t *testing.T) {
	f := newFixture()
	f.users.On("GetBySubscriptionKey", mock.Anything, "key-1").Return(nil, errors.New("db down"))

	uc := NewGenerateSubscriptionUseCase(f.users, f.renderer, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), GenerateSubscriptionCommand{SubscriptionKey: "key-1"})

	require.Error(t, err)
	assert.False(t, apperrors.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "db down")
}
