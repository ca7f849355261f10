package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subhub/internal/domain/user"
	"github.com/orris-inc/subhub/internal/shared/constants"
	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// GenerateForUserCommand renders a user's subscription from the admin side.
// SubconverterID, when set, replaces the user's own preference.
type GenerateForUserCommand struct {
	UserID         string
	SubconverterID *string
	ProfileKey     string
}

type GenerateForUserUseCase struct {
	users    user.Repository
	renderer *Renderer
	logger   logger.Interface
}

func NewGenerateForUserUseCase(users user.Repository, renderer *Renderer, logger logger.Interface) *GenerateForUserUseCase {
	return &GenerateForUserUseCase{
		users:    users,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *GenerateForUserUseCase) Execute(ctx context.Context, cmd GenerateForUserCommand) (*GenerateSubscriptionResult, error) {
	u, err := uc.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found", cmd.UserID)
	}

	out, err := uc.renderer.Render(ctx, u, cmd.SubconverterID, cmd.ProfileKey)
	if err != nil {
		uc.logger.Warnw("failed to generate subscription for user",
			"user_id", u.ID(),
			"error", err,
		)
		return nil, err
	}

	return &GenerateSubscriptionResult{
		Content:     out.Content,
		ContentType: constants.ContentTypeYAML,
		Cached:      out.Cached,
	}, nil
}
