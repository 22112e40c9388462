package output

import (
	"time"

	"github.com/luwae/permanent/internal/core/domain"
)

// sampleReport has one non-atomic interval and one non-SFS checkpoint.
func sampleReport() *domain.Report {
	return &domain.Report{
		RunID:       "01hx0000000000000000000000",
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		IndexDir:    "/runs/a",
		Fingerprint: "0123456789abcdef0123456789abcdef",
		Mode:        domain.ModeHybrid,
		Summary: domain.Summary{
			PMEMImages:     2,
			NVMeImages:     2,
			HybridImages:   3,
			SemanticStates: 3,
			Checkpoints:    3,
		},
		Intervals: []domain.IntervalVerdict{
			{Index: 0, Count: 2, Atomic: true, States: []domain.StateHash{"S1", "S2"}},
			{Index: 1, Count: 3, Atomic: false, States: []domain.StateHash{"S1", "S2", "S3"}},
		},
		Checkpoints: []domain.CheckpointVerdict{
			{Index: 0, TraceID: "1", SFS: true, States: []domain.StateHash{"S1"}},
			{Index: 1, TraceID: "3", SFS: false, States: []domain.StateHash{"S2", "S3"}},
			{Index: 2, TraceID: "5", SFS: true},
		},
	}
}
