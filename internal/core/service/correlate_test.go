package service

import (
	"errors"
	"testing"

	"github.com/luwae/permanent/internal/core/domain"
)

func TestHybridCorrelator_TraceSet(t *testing.T) {
	idx := scenarioA()
	c := NewHybridCorrelator(BuildHashTime(idx.PMEM), BuildHashTime(idx.NVMe))

	tests := []struct {
		name    string
		hash    domain.HybridHash
		want    []domain.TraceID
		wantErr *domain.DomainError
	}{
		{name: "shared points", hash: "p1_n1", want: []domain.TraceID{"0", "1"}},
		{name: "single point", hash: "p2_n1", want: []domain.TraceID{"2"}},
		{name: "no separator", hash: "p1n1", wantErr: domain.ErrInvalidHybridHashFormat},
		{name: "too many parts", hash: "p1_n1_x", wantErr: domain.ErrInvalidHybridHashFormat},
		{name: "unknown pmem", hash: "p9_n1", wantErr: domain.ErrUnknownTierHash},
		{name: "unknown nvme", hash: "p1_n9", wantErr: domain.ErrUnknownTierHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.TraceSet(tt.hash)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("TraceSet(%q) error = %v, want %v", tt.hash, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("TraceSet(%q) error = %v", tt.hash, err)
			}
			assertTraceSet(t, got, tt.want...)
		})
	}
}

func TestHybridCorrelator_Intersection(t *testing.T) {
	pmem := domain.TierIndex{"1": {"a"}, "2": {"a"}, "3": {"a"}, "4": {"b"}}
	nvme := domain.TierIndex{"2": {"x"}, "3": {"x", "y"}, "4": {"x"}}
	pmemTimes, nvmeTimes := BuildHashTime(pmem), BuildHashTime(nvme)
	c := NewHybridCorrelator(pmemTimes, nvmeTimes)

	for _, p := range []domain.TierHash{"a", "b"} {
		for _, n := range []domain.TierHash{"x", "y"} {
			got, err := c.TraceSet(hybrid(p, n))
			if err != nil {
				t.Fatalf("TraceSet(%s_%s) error = %v", p, n, err)
			}
			want := pmemTimes[p].Intersect(nvmeTimes[n])
			assertTraceSet(t, got, want.Sorted()...)
		}
	}
}

func TestSingleTierResolver(t *testing.T) {
	r := &SingleTierResolver{
		Tier:  domain.TierPMEM,
		Times: BuildHashTime(domain.TierIndex{"0": {"p1"}, "4": {"p1"}}),
	}

	got, err := r.TraceSet("p1")
	if err != nil {
		t.Fatalf("TraceSet() error = %v", err)
	}
	assertTraceSet(t, got, "0", "4")

	// The returned set must not alias the index.
	got.Add("99")
	if r.Times["p1"].Has("99") {
		t.Error("TraceSet() result aliases the hash-time index")
	}

	if _, err := r.TraceSet("p2"); !errors.Is(err, domain.ErrUnknownTierHash) {
		t.Errorf("TraceSet(unknown) error = %v, want ErrUnknownTierHash", err)
	}
}

func TestNewResolver(t *testing.T) {
	tests := []struct {
		mode    domain.Mode
		want    string
		wantErr bool
	}{
		{domain.ModeHybrid, "hybrid", false},
		{"", "hybrid", false},
		{domain.ModePMEM, "single", false},
		{domain.ModeNVMe, "single", false},
		{"tape", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, err := NewResolver(&domain.Indices{Mode: tt.mode})
			if tt.wantErr {
				if err == nil {
					t.Error("NewResolver() should fail for unknown mode")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewResolver() error = %v", err)
			}
			switch r.(type) {
			case *HybridCorrelator:
				if tt.want != "hybrid" {
					t.Errorf("got hybrid resolver, want %s", tt.want)
				}
			case *SingleTierResolver:
				if tt.want != "single" {
					t.Errorf("got single-tier resolver, want %s", tt.want)
				}
			}
		})
	}
}
