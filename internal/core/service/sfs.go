package service

import (
	"slices"

	"github.com/luwae/permanent/internal/core/domain"
)

// EvaluateSFS collects, per checkpoint, the semantic states reachable exactly
// at the checkpoint's trace ID. A checkpoint has a single final state when at
// most one state is reachable there.
func EvaluateSFS(st StateTime, checkpoints []domain.TraceID) []domain.CheckpointVerdict {
	states := sortedStates(st)

	verdicts := make([]domain.CheckpointVerdict, len(checkpoints))
	for v, id := range checkpoints {
		var here []domain.StateHash
		for _, state := range states {
			if st[state].Has(id) {
				here = append(here, state)
			}
		}
		verdicts[v] = domain.CheckpointVerdict{
			Index:   v,
			TraceID: id,
			SFS:     len(here) <= domain.SFSLimit,
			States:  here,
		}
	}
	return verdicts
}

func sortedStates(st StateTime) []domain.StateHash {
	states := make([]domain.StateHash, 0, len(st))
	for s := range st {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}
