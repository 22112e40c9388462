package service

import (
	"slices"
	"testing"

	"github.com/luwae/permanent/internal/core/domain"
)

func hybrid(pmem, nvme domain.TierHash) domain.HybridHash {
	return domain.HybridHash(string(pmem) + domain.HybridSeparator + string(nvme))
}

// scenarioA returns a two-checkpoint hybrid run where every trace point
// falls into interval 0.
func scenarioA() *domain.Indices {
	return &domain.Indices{
		Mode: domain.ModeHybrid,
		PMEM: domain.TierIndex{
			"0": {"p1"},
			"1": {"p1"},
			"2": {"p2"},
		},
		NVMe: domain.TierIndex{
			"0": {"n1"},
			"1": {"n1"},
			"2": {"n1"},
		},
		States: domain.StatesIndex{
			"S1": {"p1_n1"},
			"S2": {"p2_n1"},
		},
		Checkpoints: domain.CheckpointIndex{"a": "0", "b": "2"},
	}
}

// scenarioB adds a third state that recovers from the same images as S1.
func scenarioB() *domain.Indices {
	idx := scenarioA()
	idx.States["S3"] = []domain.HybridHash{"p1_n1"}
	return idx
}

func assertTraceSet(t *testing.T, got domain.TraceSet, want ...domain.TraceID) {
	t.Helper()
	domain.SortTraceIDs(want)
	if g := got.Sorted(); !slices.Equal(g, want) {
		t.Errorf("trace set = %v, want %v", g, want)
	}
}
