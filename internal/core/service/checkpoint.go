package service

import (
	"sort"

	"github.com/luwae/permanent/internal/core/domain"
)

// Bucketer maps trace IDs to the checkpoint interval preceding them.
type Bucketer struct {
	ids    []domain.TraceID
	values []uint64
}

// NewBucketer creates a bucketer over checkpoints sorted ascending.
// At least two checkpoints are required so that one interval exists.
func NewBucketer(checkpoints []domain.TraceID) (*Bucketer, error) {
	if len(checkpoints) < 2 {
		return nil, domain.ErrEmptyCheckpointSet.WithDetailsf("got %d", len(checkpoints))
	}

	values := make([]uint64, len(checkpoints))
	for i, id := range checkpoints {
		v, err := id.Value()
		if err != nil {
			return nil, err
		}
		if i > 0 && v < values[i-1] {
			return nil, domain.ErrMalformedIndex.WithDetailsf("checkpoint %s at position %d is below its predecessor", id, i)
		}
		values[i] = v
	}

	return &Bucketer{ids: checkpoints, values: values}, nil
}

// Checkpoints returns the sorted checkpoint trace IDs.
func (b *Bucketer) Checkpoints() []domain.TraceID {
	return b.ids
}

// Intervals returns the number of checkpoint intervals.
func (b *Bucketer) Intervals() int {
	return len(b.values) - 1
}

// Interval returns the index of the first checkpoint >= t, minus one,
// clamped to 0. A trace ID past the last checkpoint belongs to the last
// interval. Ties resolve to the lowest equal checkpoint, as a linear scan would.
func (b *Bucketer) Interval(t domain.TraceID) (int, error) {
	v, err := t.Value()
	if err != nil {
		return 0, err
	}

	i := sort.Search(len(b.values), func(i int) bool { return b.values[i] >= v })
	if i == len(b.values) {
		return len(b.values) - 2, nil
	}
	return max(i-1, 0), nil
}
