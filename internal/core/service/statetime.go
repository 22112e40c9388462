package service

import (
	"fmt"

	"github.com/luwae/permanent/internal/core/domain"
)

// StateTime maps a semantic state to every trace ID where it is reachable.
type StateTime map[domain.StateHash]domain.TraceSet

// ResolveStateTime unions the resolved trace sets of each state's hashes.
// A state with no hashes maps to the empty set. States are visited in sorted
// order so the reported error is the same on every run.
func ResolveStateTime(states domain.StatesIndex, r Resolver) (StateTime, error) {
	st := make(StateTime, len(states))
	for _, state := range states.SortedStates() {
		current := domain.NewTraceSet()
		for _, h := range states[state] {
			times, err := r.TraceSet(h)
			if err != nil {
				return nil, fmt.Errorf("state %s: %w", state, err)
			}
			current.Union(times)
		}
		st[state] = current
	}
	return st, nil
}
