package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/domain/user"
	"github.com/orris-inc/subhub/internal/infrastructure/cache"
	"github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

// Subscription request outcomes, as reported to MetricsRecorder.
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultError    = "error"
	resultCached   = "cached"
)

// Renderer runs the assembly pipeline for one user: resolve subconverter,
// collect links, convert, then merge the requested profile.
type Renderer struct {
	links    *LinkCollector
	resolver *SubconverterResolver
	profiles clashconfig.Repository
	gateway  ConversionGateway
	cache    DocumentCache
	cacheTTL time.Duration
	metrics  MetricsRecorder
	flight   singleflight.Group
	logger   logger.Interface
}

// RendererOption customizes a Renderer.
type RendererOption func(*Renderer)

// WithCache enables the document cache. A nil cache or a non-positive ttl
// leaves caching off.
func WithCache(cache DocumentCache, ttl time.Duration) RendererOption {
	return func(r *Renderer) {
		if cache != nil && ttl > 0 {
			r.cache = cache
			r.cacheTTL = ttl
		}
	}
}

// WithMetrics reports pipeline measurements to m.
func WithMetrics(m MetricsRecorder) RendererOption {
	return func(r *Renderer) {
		if m != nil {
			r.metrics = m
		}
	}
}

func NewRenderer(
	links *LinkCollector,
	resolver *SubconverterResolver,
	profiles clashconfig.Repository,
	gateway ConversionGateway,
	logger logger.Interface,
	opts ...RendererOption,
) *Renderer {
	r := &Renderer{
		links:    links,
		resolver: resolver,
		profiles: profiles,
		gateway:  gateway,
		metrics:  noopMetrics{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rendered is a finished subscription document.
type Rendered struct {
	Content string
	Cached  bool
}

// Render produces the Clash document for u. overrideID, when set, must name
// an existing subconverter. An unknown profileKey yields the unmerged document.
func (r *Renderer) Render(ctx context.Context, u *user.User, overrideID *string, profileKey string) (*Rendered, error) {
	var (
		sc  *subconverter.Subconverter
		err error
	)
	if overrideID != nil && strings.TrimSpace(*overrideID) != "" {
		sc, err = r.resolver.ResolveExplicit(ctx, strings.TrimSpace(*overrideID))
	} else {
		sc, err = r.resolver.Resolve(ctx, u.SubconverterID())
	}
	if err != nil {
		return nil, err
	}

	links, err := r.links.CollectLinks(ctx, u.ID())
	if err != nil {
		return nil, err
	}
	if links.Empty() {
		r.logger.Warnw("user has no enabled node clients, converting an empty link set",
			"user_id", u.ID(),
		)
	}

	profile, err := r.lookupProfile(ctx, profileKey)
	if err != nil {
		return nil, err
	}
	// the cache key carries the requested key only when it resolved to a profile
	effectiveKey := ""
	if profile != nil {
		effectiveKey = profile.Key()
	}

	if r.cache == nil {
		content, err := r.build(ctx, links, sc, profile)
		if err != nil {
			return nil, err
		}
		return &Rendered{Content: content}, nil
	}

	key := cache.SubscriptionKey(u.ID(), sc.ID(), effectiveKey, links.Fingerprint())
	if doc, ok := r.cacheGet(ctx, key); ok {
		return &Rendered{Content: doc, Cached: true}, nil
	}

	// the shared conversion outlives any single caller; the gateway timeout bounds it
	flightCtx := context.WithoutCancel(ctx)
	ch := r.flight.DoChan(key, func() (interface{}, error) {
		content, err := r.build(flightCtx, links, sc, profile)
		if err != nil {
			return "", err
		}
		if err := r.cache.Set(flightCtx, key, content, r.cacheTTL); err != nil {
			r.logger.Warnw("failed to cache subscription document",
				"cache_key", key,
				"error", err,
			)
		}
		return content, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return &Rendered{Content: res.Val.(string)}, nil
	case <-ctx.Done():
		return nil, errors.NewUpstreamError("conversion failed: request canceled").WithCause(ctx.Err())
	}
}

func (r *Renderer) lookupProfile(ctx context.Context, profileKey string) (*clashconfig.Profile, error) {
	profileKey = strings.TrimSpace(profileKey)
	if profileKey == "" {
		return nil, nil
	}
	profile, err := r.profiles.GetByKey(ctx, profileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get clash config: %w", err)
	}
	if profile == nil {
		r.logger.Debugw("clash config not found, serving unmerged document",
			"config_key", profileKey,
		)
	}
	return profile, nil
}

func (r *Renderer) build(ctx context.Context, links LinkSet, sc *subconverter.Subconverter, profile *clashconfig.Profile) (string, error) {
	start := time.Now()
	raw, err := r.gateway.Convert(ctx, links, sc)
	r.metrics.ObserveConversion(time.Since(start), failureReason(err))
	if err != nil {
		return "", err
	}

	if profile == nil {
		return raw, nil
	}

	merged, err := clashconfig.Merge(raw, profile)
	if err != nil {
		kind := string(errors.ErrorTypeInternal)
		if appErr := errors.GetAppError(err); appErr != nil {
			kind = string(appErr.Type)
		}
		r.metrics.RecordMergeFailure(kind)
		r.logger.Warnw("failed to merge clash config",
			"config_key", profile.Key(),
			"subconverter_id", sc.ID(),
			"error", err,
		)
		return "", err
	}
	return merged, nil
}

func (r *Renderer) cacheGet(ctx context.Context, key string) (string, bool) {
	doc, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warnw("subscription cache lookup failed",
			"cache_key", key,
			"error", err,
		)
		return "", false
	}
	return doc, ok
}

func failureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.IsUpstreamError(err):
		return "upstream"
	case errors.IsValidationError(err):
		return "validation"
	default:
		return "internal"
	}
}

func resultOf(err error) string {
	if err == nil {
		return resultSuccess
	}
	if errors.IsNotFoundError(err) {
		return resultNotFound
	}
	return resultError
}
