package usecases

import (
	"context"
	"strings"

	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

type VerifySubconverterCommand struct {
	URL string
}

type VerifySubconverterResult struct {
	Version string `json:"version"`
}

// VerifySubconverterUseCase checks that a URL points at a live conversion service.
type VerifySubconverterUseCase struct {
	gateway ConversionGateway
	logger  logger.Interface
}

func NewVerifySubconverterUseCase(gateway ConversionGateway, logger logger.Interface) *VerifySubconverterUseCase {
	return &VerifySubconverterUseCase{
		gateway: gateway,
		logger:  logger,
	}
}

func (uc *VerifySubconverterUseCase) Execute(ctx context.Context, cmd VerifySubconverterCommand) (*VerifySubconverterResult, error) {
	url := strings.TrimSpace(cmd.URL)
	if url == "" {
		return nil, errors.NewValidationError("url is required")
	}

	version, err := uc.gateway.Verify(ctx, url)
	if err != nil {
		uc.logger.Warnw("subconverter verification failed", "url", url, "error", err)
		return nil, err
	}

	uc.logger.Infow("subconverter verified", "url", url, "version", version)
	return &VerifySubconverterResult{Version: version}, nil
}
