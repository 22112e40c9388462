package service

import (
	"fmt"

	"github.com/luwae/permanent/internal/core/domain"
)

// Resolver maps one entry of a semantic state to the trace IDs where it occurred.
type Resolver interface {
	TraceSet(h domain.HybridHash) (domain.TraceSet, error)
}

// HybridCorrelator resolves "<pmem>_<nvme>" hashes against both tiers.
//
// Tier observations are not causally paired: the result is the set of trace
// IDs where both component hashes were seen independently. When a trace ID
// carries several hashes per tier this over-approximates the combinations
// that actually occurred together.
type HybridCorrelator struct {
	PMEM HashTime
	NVMe HashTime
}

// NewHybridCorrelator creates a correlator over both tier hash-time indices.
func NewHybridCorrelator(pmem, nvme HashTime) *HybridCorrelator {
	return &HybridCorrelator{PMEM: pmem, NVMe: nvme}
}

// TraceSet returns the intersection of the trace sets of h's two parts.
func (c *HybridCorrelator) TraceSet(h domain.HybridHash) (domain.TraceSet, error) {
	pmemPart, nvmePart, err := domain.ParseHybridHash(h)
	if err != nil {
		return nil, err
	}

	pmemTimes, err := c.PMEM.lookup(domain.TierPMEM, pmemPart)
	if err != nil {
		return nil, err
	}
	nvmeTimes, err := c.NVMe.lookup(domain.TierNVMe, nvmePart)
	if err != nil {
		return nil, err
	}

	return pmemTimes.Intersect(nvmeTimes), nil
}

// SingleTierResolver resolves plain tier hashes when only one tier was captured.
type SingleTierResolver struct {
	Tier  domain.Tier
	Times HashTime
}

// TraceSet returns the trace set of the tier hash h.
func (r *SingleTierResolver) TraceSet(h domain.HybridHash) (domain.TraceSet, error) {
	set, err := r.Times.lookup(r.Tier, domain.TierHash(h))
	if err != nil {
		return nil, err
	}
	// Callers union into this set; hand out a copy.
	out := make(domain.TraceSet, len(set))
	out.Union(set)
	return out, nil
}

// NewResolver picks the resolver matching the capture mode of idx.
func NewResolver(idx *domain.Indices) (Resolver, error) {
	switch idx.Mode {
	case domain.ModeHybrid, "":
		return NewHybridCorrelator(BuildHashTime(idx.PMEM), BuildHashTime(idx.NVMe)), nil
	case domain.ModePMEM:
		return &SingleTierResolver{Tier: domain.TierPMEM, Times: BuildHashTime(idx.PMEM)}, nil
	case domain.ModeNVMe:
		return &SingleTierResolver{Tier: domain.TierNVMe, Times: BuildHashTime(idx.NVMe)}, nil
	default:
		return nil, fmt.Errorf("unknown capture mode %q", idx.Mode)
	}
}
