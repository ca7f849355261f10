package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subhub/internal/domain/subconverter"
	apperrors "github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

func TestVerifySubconverter(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		version     string
		gatewayErr  error
		wantVersion string
		wantErr     func(error) bool
	}{
		{
			name:        "ok",
			url:         " http://sc.local ",
			version:     "subconverter v0.9.0",
			wantVersion: "subconverter v0.9.0",
		},
		{
			name:    "blank url",
			url:     "  ",
			wantErr: apperrors.IsValidationError,
		},
		{
			name:       "upstream down",
			url:        "http://sc.local",
			gatewayErr: apperrors.NewUpstreamError("version check failed: upstream unreachable"),
			wantErr:    apperrors.IsUpstreamError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(mockGateway)
			if tt.version != "" || tt.gatewayErr != nil {
				gw.On("Verify", mock.Anything, "http://sc.local").Return(tt.version, tt.gatewayErr)
			}

			uc := NewVerifySubconverterUseCase(gw, logger.NewNopLogger())
			result, err := uc.Execute(context.Background(), VerifySubconverterCommand{URL: tt.url})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, result.Version)
			gw.AssertExpectations(t)
		})
	}
}

func TestProbeSubconverters(t *testing.T) {
	repo := new(mockSubconverterRepository)
	gw := new(mockGateway)
	metrics := new(mockMetrics)

	repo.On("List", mock.Anything).Return([]*subconverter.Subconverter{
		subconverter.ReconstructSubconverter("sc-1", "http://one.local/", "", true),
		subconverter.ReconstructSubconverter("sc-2", "http://two.local", "", false),
	}, nil)
	gw.On("Verify", mock.Anything, "http://one.local").Return("subconverter v0.7.2 backend", nil)
	gw.On("Verify", mock.Anything, "http://two.local").Return("", apperrors.NewUpstreamError("version check failed: upstream timed out"))
	metrics.On("RecordProbe", "sc-1", true).Once()
	metrics.On("RecordProbe", "sc-2", false).Once()

	uc := NewProbeSubconvertersUseCase(repo, gw, metrics, logger.NewNopLogger()).WithMinVersion("v0.8.0")
	report, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, 1, report.Failed())
	assert.True(t, report.Results[0].OK())
	assert.True(t, report.Results[0].Outdated)
	assert.Equal(t, "subconverter v0.7.2 backend", report.Results[0].Version)
	assert.Equal(t, "sc-2", report.Results[1].SubconverterID)
	assert.Contains(t, report.Results[1].Error, "timed out")
	metrics.AssertExpectations(t)
}

func TestProbeSubconverters_ListError(t *testing.T) {
	repo := new(mockSubconverterRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	uc := NewProbeSubconvertersUseCase(repo, new(mockGateway), nil, logger.NewNopLogger())
	_, err := uc.Execute(context.Background())
	assert.ErrorContains(t, err, "db down")
}
