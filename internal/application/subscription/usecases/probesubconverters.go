package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/shared/goroutine"
	"github.com/orris-inc/subhub/internal/shared/logger"
	"github.com/orris-inc/subhub/internal/shared/version"
)

const defaultProbeConcurrency = 4

// ProbeResult is the outcome of one version check.
type ProbeResult struct {
	SubconverterID string        `json:"subconverter_id"`
	URL            string        `json:"url"`
	Version        string        `json:"version,omitempty"`
	Outdated       bool          `json:"outdated,omitempty"`
	Error          string        `json:"error,omitempty"`
	Duration       time.Duration `json:"duration"`
}

func (r ProbeResult) OK() bool { return r.Error == "" }

type ProbeReport struct {
	Results []ProbeResult `json:"results"`
}

// Failed counts results with an error.
func (r *ProbeReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// ProbeSubconvertersUseCase verifies every registered subconverter.
type ProbeSubconvertersUseCase struct {
	repo        subconverter.Repository
	gateway     ConversionGateway
	metrics     MetricsRecorder
	concurrency int
	minVersion  string
	logger      logger.Interface
}

func NewProbeSubconvertersUseCase(
	repo subconverter.Repository,
	gateway ConversionGateway,
	metrics MetricsRecorder,
	logger logger.Interface,
) *ProbeSubconvertersUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &ProbeSubconvertersUseCase{
		repo:        repo,
		gateway:     gateway,
		metrics:     metrics,
		concurrency: defaultProbeConcurrency,
		logger:      logger,
	}
}

// WithMinVersion marks services reporting a version below minimum as outdated.
func (uc *ProbeSubconvertersUseCase) WithMinVersion(minimum string) *ProbeSubconvertersUseCase {
	uc.minVersion = minimum
	return uc
}

// Execute probes all subconverters. Individual failures land in the report;
// only a failure to list subconverters is returned as an error.
func (uc *ProbeSubconvertersUseCase) Execute(ctx context.Context) (*ProbeReport, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subconverters: %w", err)
	}

	report := &ProbeReport{Results: make([]ProbeResult, len(all))}
	sem := make(chan struct{}, uc.concurrency)
	var wg sync.WaitGroup

	for i, sc := range all {
		goroutine.Group(&wg, sem, uc.logger, "subconverter-probe", func() {
			report.Results[i] = uc.probe(ctx, sc)
		})
	}
	wg.Wait()

	uc.logger.Infow("subconverter probe finished",
		"total", len(report.Results),
		"failed", report.Failed(),
	)
	return report, nil
}

func (uc *ProbeSubconvertersUseCase) probe(ctx context.Context, sc *subconverter.Subconverter) ProbeResult {
	start := time.Now()
	reported, err := uc.gateway.Verify(ctx, sc.BaseURL())
	res := ProbeResult{
		SubconverterID: sc.ID(),
		URL:            sc.BaseURL(),
		Version:        reported,
		Duration:       time.Since(start),
	}
	if err != nil {
		res.Error = err.Error()
		uc.logger.Warnw("subconverter probe failed",
			"subconverter_id", sc.ID(),
			"url", sc.BaseURL(),
			"error", err,
		)
	} else if uc.minVersion != "" && version.Older(res.Version, uc.minVersion) {
		res.Outdated = true
		uc.logger.Warnw("subconverter is older than the required version",
			"subconverter_id", sc.ID(),
			"reported", res.Version,
			"min_version", uc.minVersion,
		)
	}
	uc.metrics.RecordProbe(sc.ID(), err == nil)
	return res
}
