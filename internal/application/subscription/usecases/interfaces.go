package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/subhub/internal/domain/subconverter"
)

type GenerateSubscriptionExecutor interface {
	Execute(ctx context.Context, cmd GenerateSubscriptionCommand) (*GenerateSubscriptionResult, error)
}

type GenerateForUserExecutor interface {
	Execute(ctx context.Context, cmd GenerateForUserCommand) (*GenerateSubscriptionResult, error)
}

type VerifySubconverterExecutor interface {
	Execute(ctx context.Context, cmd VerifySubconverterCommand) (*VerifySubconverterResult, error)
}

type ProbeSubconvertersExecutor interface {
	Execute(ctx context.Context) (*ProbeReport, error)
}

// ConversionGateway renders proxy links into a Clash document through an
// external subconverter.
type ConversionGateway interface {
	Convert(ctx context.Context, links []string, sc *subconverter.Subconverter) (string, error)
	Verify(ctx context.Context, baseURL string) (string, error)
}

// DocumentCache stores rendered documents. Implementations report a miss
// as ("", false, nil).
type DocumentCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, document string, ttl time.Duration) error
}

// MetricsRecorder receives pipeline measurements.
type MetricsRecorder interface {
	RecordSubscription(result string)
	ObserveConversion(d time.Duration, reason string)
	RecordMergeFailure(kind string)
	RecordProbe(subconverterID string, ok bool)
}

type noopMetrics struct{}

func (noopMetrics) RecordSubscription(string) {}

func (noopMetrics) ObserveConversion(time.Duration, string) {}

func (noopMetrics) RecordMergeFailure(string) {}

func (noopMetrics) RecordProbe(string, bool) {}
