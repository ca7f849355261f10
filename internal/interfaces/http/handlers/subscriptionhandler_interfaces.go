package handlers

import (
	"context"

	"github.com/orris-inc/subhub/internal/application/subscription/usecases"
)

type generateSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.GenerateSubscriptionCommand) (*usecases.GenerateSubscriptionResult, error)
}

type generateForUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.GenerateForUserCommand) (*usecases.GenerateSubscriptionResult, error)
}

type verifySubconverterUseCase interface {
	Execute(ctx context.Context, cmd usecases.VerifySubconverterCommand) (*usecases.VerifySubconverterResult, error)
}
