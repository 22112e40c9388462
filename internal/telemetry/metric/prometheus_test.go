package metric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/luwae/permanent/internal/core/domain"
)

func failingReport() *domain.Report {
	return &domain.Report{
		CreatedAt: time.Unix(1714564800, 0).UTC(),
		Summary: domain.Summary{
			PMEMImages:     2,
			NVMeImages:     3,
			HybridImages:   4,
			SemanticStates: 3,
			Checkpoints:    3,
		},
		Intervals: []domain.IntervalVerdict{
			{Index: 0, Count: 2, Atomic: true},
			{Index: 1, Count: 3, Atomic: false},
		},
		Checkpoints: []domain.CheckpointVerdict{
			{Index: 0, TraceID: "1", SFS: true},
			{Index: 1, TraceID: "3", SFS: false},
			{Index: 2, TraceID: "5", SFS: true},
		},
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.Registerer() == nil || r.Gatherer() == nil {
		t.Error("Registerer/Gatherer should not be nil")
	}

	count, err := testutil.GatherAndCount(r.Gatherer(), "permanent_build_info")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("permanent_build_info series = %d, want 1", count)
	}
}

func TestRegistry_Observe(t *testing.T) {
	r := NewRegistry()
	r.Observe(failingReport(), 1500*time.Millisecond)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"pmem images", testutil.ToFloat64(r.Images.WithLabelValues("pmem")), 2},
		{"nvme images", testutil.ToFloat64(r.Images.WithLabelValues("nvme")), 3},
		{"hybrid images", testutil.ToFloat64(r.Images.WithLabelValues("hybrid")), 4},
		{"semantic states", testutil.ToFloat64(r.SemanticStates), 3},
		{"checkpoints", testutil.ToFloat64(r.Checkpoints), 3},
		{"interval 1 states", testutil.ToFloat64(r.IntervalStates.WithLabelValues("1")), 3},
		{"interval 0 atomic", testutil.ToFloat64(r.IntervalAtomic.WithLabelValues("0")), 1},
		{"interval 1 atomic", testutil.ToFloat64(r.IntervalAtomic.WithLabelValues("1")), 0},
		{"checkpoint 1 sfs", testutil.ToFloat64(r.CheckpointSFS.WithLabelValues("1", "3")), 0},
		{"not atomic", testutil.ToFloat64(r.Violations.WithLabelValues("not_atomic")), 1},
		{"not sfs", testutil.ToFloat64(r.Violations.WithLabelValues("not_sfs")), 1},
		{"passed", testutil.ToFloat64(r.RunPassed), 0},
		{"timestamp", testutil.ToFloat64(r.LastRunTimestamp), 1714564800},
		{"duration", testutil.ToFloat64(r.AnalysisDuration), 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestRegistry_Observe_ResetsSeries(t *testing.T) {
	r := NewRegistry()
	r.Observe(failingReport(), 0)

	smaller := &domain.Report{
		Intervals:   []domain.IntervalVerdict{{Index: 0, Count: 1, Atomic: true}},
		Checkpoints: []domain.CheckpointVerdict{{Index: 0, TraceID: "1", SFS: true}, {Index: 1, TraceID: "2", SFS: true}},
	}
	r.Observe(smaller, 0)

	if got := testutil.CollectAndCount(r.IntervalAtomic); got != 1 {
		t.Errorf("interval_atomic series = %d, want 1", got)
	}
	if got := testutil.CollectAndCount(r.CheckpointSFS); got != 2 {
		t.Errorf("checkpoint_sfs series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(r.RunPassed); got != 1 {
		t.Errorf("run_passed = %v, want 1", got)
	}
}

func TestRegistry_WriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.Observe(failingReport(), time.Second)

	path := filepath.Join(t.TempDir(), "permanent.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"# TYPE permanent_interval_atomic gauge",
		`permanent_interval_atomic{interval="1"} 0`,
		`permanent_checkpoint_sfs{checkpoint="1",trace_id="3"} 0`,
		"permanent_run_passed 0",
		`permanent_images{tier="nvme"} 3`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestRegistry_WriteTextfile_BadDir(t *testing.T) {
	r := NewRegistry()
	path := filepath.Join(t.TempDir(), "missing", "permanent.prom")

	if err := r.WriteTextfile(path); err == nil {
		t.Error("WriteTextfile() should fail when the directory does not exist")
	}
}
