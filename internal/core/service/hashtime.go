package service

import "github.com/luwae/permanent/internal/core/domain"

// HashTime maps a tier hash to the trace IDs at which it was observed.
type HashTime map[domain.TierHash]domain.TraceSet

// BuildHashTime inverts a tier index. A hash may appear at many trace IDs.
func BuildHashTime(idx domain.TierIndex) HashTime {
	times := make(HashTime)
	for traceID, hashes := range idx {
		for _, h := range hashes {
			set, ok := times[h]
			if !ok {
				set = domain.NewTraceSet(traceID)
				times[h] = set
				continue
			}
			set.Add(traceID)
		}
	}
	return times
}

// lookup returns the trace set of h, or ErrUnknownTierHash naming the tier.
func (ht HashTime) lookup(tier domain.Tier, h domain.TierHash) (domain.TraceSet, error) {
	set, ok := ht[h]
	if !ok {
		return nil, domain.ErrUnknownTierHash.WithDetailsf("%s hash %q not in %s.index", tier, string(h), tier)
	}
	return set, nil
}
