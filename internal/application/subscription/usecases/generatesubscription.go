package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/orris-inc/subhub/internal/domain/user"
	"github.com/orris-inc/subhub/internal/shared/constants"
	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

type GenerateSubscriptionCommand struct {
	SubscriptionKey string
	ProfileKey      string
}

type GenerateSubscriptionResult struct {
	Content     string
	ContentType string
	Cached      bool
}

// GenerateSubscriptionUseCase serves GET /sub/:key.
type GenerateSubscriptionUseCase struct {
	users    user.Repository
	renderer *Renderer
	metrics  MetricsRecorder
	logger   logger.Interface
}

func NewGenerateSubscriptionUseCase(
	users user.Repository,
	renderer *Renderer,
	logger logger.Interface,
) *GenerateSubscriptionUseCase {
	return &GenerateSubscriptionUseCase{
		users:    users,
		renderer: renderer,
		metrics:  renderer.metrics,
		logger:   logger,
	}
}

func (uc *GenerateSubscriptionUseCase) Execute(ctx context.Context, cmd GenerateSubscriptionCommand) (*GenerateSubscriptionResult, error) {
	result, err := uc.execute(ctx, cmd)
	switch {
	case err != nil:
		uc.metrics.RecordSubscription(resultOf(err))
	case result.Cached:
		uc.metrics.RecordSubscription(resultCached)
	default:
		uc.metrics.RecordSubscription(resultSuccess)
	}
	return result, err
}

func (uc *GenerateSubscriptionUseCase) execute(ctx context.Context, cmd GenerateSubscriptionCommand) (*GenerateSubscriptionResult, error) {
	key := strings.TrimSpace(cmd.SubscriptionKey)
	if key == "" {
		return nil, errors.NewNotFoundError("user not found")
	}

	u, err := uc.users.GetBySubscriptionKey(ctx, key)
	if err != nil {
		uc.logger.Errorw("failed to get user by subscription key", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	out, err := uc.renderer.Render(ctx, u, nil, cmd.ProfileKey)
	if err != nil {
		uc.logger.Warnw("failed to generate subscription",
			"user_id", u.ID(),
			"config_key", cmd.ProfileKey,
			"error", err,
		)
		return nil, err
	}

	uc.logger.Infow("subscription generated",
		"user_id", u.ID(),
		"config_key", cmd.ProfileKey,
		"cached", out.Cached,
		"bytes", len(out.Content),
	)

	return &GenerateSubscriptionResult{
		Content:     out.Content,
		ContentType: constants.ContentTypeYAML,
		Cached:      out.Cached,
	}, nil
}
