package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// SubconverterResolver picks the conversion service for a request.
type SubconverterResolver struct {
	repo   subconverter.Repository
	logger logger.Interface
}

func NewSubconverterResolver(repo subconverter.Repository, logger logger.Interface) *SubconverterResolver {
	return &SubconverterResolver{
		repo:   repo,
		logger: logger,
	}
}

// Resolve returns the preferred subconverter when it still exists, otherwise
// the default one. Neither yields a not found error.
func (r *SubconverterResolver) Resolve(ctx context.Context, preferredID *string) (*subconverter.Subconverter, error) {
	if preferredID != nil && *preferredID != "" {
		sc, err := r.repo.GetByID(ctx, *preferredID)
		if err != nil {
			return nil, fmt.Errorf("failed to get subconverter: %w", err)
		}
		if sc != nil {
			return sc, nil
		}
		r.logger.Warnw("preferred subconverter no longer exists, using default",
			"subconverter_id", *preferredID,
		)
	}

	sc, err := r.repo.FindDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find default subconverter: %w", err)
	}
	if sc == nil {
		return nil, errors.NewNotFoundError("subconverter not found")
	}
	return sc, nil
}

// ResolveExplicit returns the subconverter with id, with no fallback.
func (r *SubconverterResolver) ResolveExplicit(ctx context.Context, id string) (*subconverter.Subconverter, error) {
	sc, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subconverter: %w", err)
	}
	if sc == nil {
		return nil, errors.NewNotFoundError("subconverter not found", id)
	}
	return sc, nil
}
