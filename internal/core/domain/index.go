package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// HybridSeparator joins the pmem and nvme parts of a hybrid hash.
const HybridSeparator = "_"

// Tier names one of the storage subsystems under test.
type Tier string

const (
	TierPMEM Tier = "pmem"
	TierNVMe Tier = "nvme"
)

// TierHash identifies a tier's durable image at some trace point.
type TierHash string

// HybridHash pairs one pmem hash and one nvme hash: "<pmem>_<nvme>".
type HybridHash string

// StateHash identifies a semantic (recovery-equivalent) state.
type StateHash string

// ParseHybridHash splits h into its pmem and nvme parts.
// Exactly two non-empty parts are required.
func ParseHybridHash(h HybridHash) (pmem, nvme TierHash, err error) {
	parts := strings.Split(string(h), HybridSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidHybridHashFormat.WithDetailsf("%q: want <pmem>%s<nvme>", string(h), HybridSeparator)
	}
	return TierHash(parts[0]), TierHash(parts[1]), nil
}

// TierIndex maps a trace ID to the tier hashes observed there.
// Repeated trials at the same point may contribute several hashes.
type TierIndex map[TraceID][]TierHash

// UniqueHashes returns the number of distinct hashes across all trace IDs.
func (idx TierIndex) UniqueHashes() int {
	seen := make(map[TierHash]struct{})
	for _, hashes := range idx {
		for _, h := range hashes {
			seen[h] = struct{}{}
		}
	}
	return len(seen)
}

// StatesIndex maps a semantic state to the hybrid (or, in single-tier
// mode, plain tier) hashes that recover into it.
type StatesIndex map[StateHash][]HybridHash

// UniqueHybrids returns the number of distinct hybrid hashes across all states.
func (idx StatesIndex) UniqueHybrids() int {
	seen := make(map[HybridHash]struct{})
	for _, hashes := range idx {
		for _, h := range hashes {
			seen[h] = struct{}{}
		}
	}
	return len(seen)
}

// SortedStates returns the state hashes in lexical order.
func (idx StatesIndex) SortedStates() []StateHash {
	states := make([]StateHash, 0, len(idx))
	for s := range idx {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}

// CheckpointIndex holds checkpoint trace IDs as map values; keys are unused.
type CheckpointIndex map[string]TraceID

// Sorted collects the checkpoint trace IDs in canonical form and ascending
// numeric order. Duplicates are kept.
func (idx CheckpointIndex) Sorted() ([]TraceID, error) {
	ids := make([]TraceID, 0, len(idx))
	for _, key := range slices.Sorted(maps.Keys(idx)) {
		id, err := idx[key].Canonical()
		if err != nil {
			return nil, fmt.Errorf("checkpoint %q: %w", key, err)
		}
		ids = append(ids, id)
	}
	SortTraceIDs(ids)
	return ids, nil
}

// Mode tells which tiers were captured by the test run.
type Mode string

const (
	// ModeHybrid means both tiers were captured and states hold hybrid hashes.
	ModeHybrid Mode = "hybrid"
	// ModePMEM means only pmem was captured; states hold pmem hashes.
	ModePMEM Mode = "pmem"
	// ModeNVMe means only nvme was captured; states hold nvme hashes.
	ModeNVMe Mode = "nvme"
)

// Indices bundles the loaded index files of one test run.
type Indices struct {
	Mode        Mode
	PMEM        TierIndex
	NVMe        TierIndex
	States      StatesIndex
	Checkpoints CheckpointIndex
}

// String returns a short description for logs.
func (i *Indices) String() string {
	return fmt.Sprintf("mode=%s pmem=%d nvme=%d states=%d checkpoints=%d",
		i.Mode, len(i.PMEM), len(i.NVMe), len(i.States), len(i.Checkpoints))
}
