package service

import "github.com/luwae/permanent/internal/core/domain"

// EvaluateAtomicity counts, per checkpoint interval, the semantic states
// reachable inside it. An interval is atomic when the count is at most limit.
func EvaluateAtomicity(st StateTime, b *Bucketer, limit int) ([]domain.IntervalVerdict, error) {
	n := b.Intervals()
	reached := make([][]domain.StateHash, n)

	for _, state := range sortedStates(st) {
		buckets := make(map[int]struct{})
		for id := range st[state] {
			v, err := b.Interval(id)
			if err != nil {
				return nil, err
			}
			buckets[v] = struct{}{}
		}
		for v := range buckets {
			reached[v] = append(reached[v], state)
		}
	}

	verdicts := make([]domain.IntervalVerdict, n)
	for v := range n {
		verdicts[v] = domain.IntervalVerdict{
			Index:  v,
			Count:  len(reached[v]),
			Atomic: len(reached[v]) <= limit,
			States: reached[v],
		}
	}
	return verdicts, nil
}
