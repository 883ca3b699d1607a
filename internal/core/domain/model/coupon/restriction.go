package coupon

import (
	"slices"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
)

// IDSet is an immutable set of identifiers used for restaurant and category
// restrictions. The empty set means "no restriction".
type IDSet struct {
	ids map[kernel.UUID]struct{}
}

// NewIDSet builds a set from ids, dropping duplicates. Every id must be valid.
func NewIDSet(ids ...kernel.UUID) (IDSet, error) {
	set := IDSet{ids: make(map[kernel.UUID]struct{}, len(ids))}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return IDSet{}, err
		}
		set.ids[id] = struct{}{}
	}
	return set, nil
}

// IsEmpty reports whether the set imposes no restriction.
func (s IDSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// Len returns the number of members.
func (s IDSet) Len() int {
	return len(s.ids)
}

// Contains reports membership of id.
func (s IDSet) Contains(id kernel.UUID) bool {
	_, ok := s.ids[id]
	return ok
}

// ContainsAny reports whether at least one of ids is a member.
func (s IDSet) ContainsAny(ids []kernel.UUID) bool {
	for _, id := range ids {
		if s.Contains(id) {
			return true
		}
	}
	return false
}

// Slice returns the members in a stable order.
func (s IDSet) Slice() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b kernel.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}
