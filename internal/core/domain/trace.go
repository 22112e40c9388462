package domain

import (
	"slices"
	"strconv"
)

// TraceID identifies a crash snapshot point along workload execution.
// It is numeric text; ordering is by numeric value.
type TraceID string

// Value returns the numeric value of the trace ID.
func (t TraceID) Value() (uint64, error) {
	v, err := strconv.ParseUint(string(t), 10, 64)
	if err != nil {
		return 0, ErrMalformedIndex.WithDetailsf("trace id %q is not a non-negative integer", string(t)).WithCause(err)
	}
	return v, nil
}

// Canonical returns the decimal form of the trace ID, so "007" and "7" compare equal.
func (t TraceID) Canonical() (TraceID, error) {
	v, err := t.Value()
	if err != nil {
		return "", err
	}
	return TraceIDFromUint(v), nil
}

// TraceIDFromUint formats a numeric trace point.
func TraceIDFromUint(v uint64) TraceID {
	return TraceID(strconv.FormatUint(v, 10))
}

// SortTraceIDs sorts trace IDs ascending by numeric value.
// Every ID must already be canonical; see TraceID.Canonical.
func SortTraceIDs(ids []TraceID) {
	slices.SortFunc(ids, CompareTraceIDs)
}

// CompareTraceIDs orders canonical trace IDs numerically.
func CompareTraceIDs(a, b TraceID) int {
	// Canonical decimal strings order by length first, then lexically.
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// TraceSet is an unordered set of trace IDs.
type TraceSet map[TraceID]struct{}

// NewTraceSet creates a set holding ids.
func NewTraceSet(ids ...TraceID) TraceSet {
	s := make(TraceSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s TraceSet) Add(id TraceID) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s TraceSet) Has(id TraceID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the set size.
func (s TraceSet) Len() int {
	return len(s)
}

// Union adds every member of other to s.
func (s TraceSet) Union(other TraceSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Intersect returns a new set of IDs present in both s and other.
func (s TraceSet) Intersect(other TraceSet) TraceSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(TraceSet)
	for id := range small {
		if large.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in ascending numeric order.
func (s TraceSet) Sorted() []TraceID {
	ids := make([]TraceID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	SortTraceIDs(ids)
	return ids
}
