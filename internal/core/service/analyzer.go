// Package service provides the crash-state analysis pipeline.
//
// AnalysisService turns the loaded index files of one test run into a Report.
package service

import (
	"context"
	"time"

	"github.com/luwae/permanent/internal/core/domain"
	"github.com/luwae/permanent/internal/telemetry/logger"
)

// AnalysisConfig configures AnalysisService.
type AnalysisConfig struct {
	// AtomicLimit is the maximum number of states an atomic interval may expose.
	// Default: domain.AtomicLimit (2)
	AtomicLimit int
}

// AnalysisService runs the analysis pipeline.
type AnalysisService struct {
	cfg    AnalysisConfig
	logger logger.Logger
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(cfg AnalysisConfig, l logger.Logger) *AnalysisService {
	if cfg.AtomicLimit <= 0 {
		cfg.AtomicLimit = domain.AtomicLimit
	}
	if l == nil {
		l = logger.Default()
	}
	return &AnalysisService{cfg: cfg, logger: l}
}

// Analyze computes image counts, per-interval atomicity and per-checkpoint
// SFS verdicts. Any inconsistency in the input aborts the run; no partial
// report is returned.
func (s *AnalysisService) Analyze(ctx context.Context, idx *domain.Indices) (*domain.Report, error) {
	log := s.logger.WithContext(ctx)
	start := time.Now()

	checkpoints, err := idx.Checkpoints.Sorted()
	if err != nil {
		return nil, err
	}
	bucketer, err := NewBucketer(checkpoints)
	if err != nil {
		return nil, err
	}

	resolver, err := NewResolver(idx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stateTime, err := ResolveStateTime(idx.States, resolver)
	if err != nil {
		return nil, err
	}
	log.Debug("state times resolved",
		"states", len(stateTime),
		"elapsed", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	intervals, err := EvaluateAtomicity(stateTime, bucketer, s.cfg.AtomicLimit)
	if err != nil {
		return nil, err
	}
	sfs := EvaluateSFS(stateTime, checkpoints)

	report := &domain.Report{
		CreatedAt: time.Now().UTC(),
		Mode:      idx.Mode,
		Summary: domain.Summary{
			PMEMImages:     idx.PMEM.UniqueHashes(),
			NVMeImages:     idx.NVMe.UniqueHashes(),
			HybridImages:   idx.States.UniqueHybrids(),
			SemanticStates: len(idx.States),
			Checkpoints:    len(checkpoints),
		},
		Intervals:   intervals,
		Checkpoints: sfs,
	}
	if report.Mode == "" {
		report.Mode = domain.ModeHybrid
	}

	log.Info("analysis completed",
		"intervals", len(intervals),
		"checkpoints", len(sfs),
		"all_atomic", report.AllAtomic(),
		"all_sfs", report.AllSFS(),
		"elapsed", time.Since(start))

	return report, nil
}
