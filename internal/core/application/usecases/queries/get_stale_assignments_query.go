package queries

import (
	"errors"
	"time"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetStaleAssignmentsQueryIsNotConstructed = errors.New(
		"GetStaleAssignmentsQuery must be created via NewGetStaleAssignmentsQuery constructor",
	)
)

// GetStaleAssignmentsQuery finds assignments still waiting in the assigned
// status since before AssignedBefore: the partner never accepted them.
type GetStaleAssignmentsQuery struct {
	assignedBefore time.Time
	limit          int

	guard guard.ConstructorGuard
}

// NewGetStaleAssignmentsQuery creates a query returning at most limit
// assignments, oldest first.
func NewGetStaleAssignmentsQuery(assignedBefore time.Time, limit int) (GetStaleAssignmentsQuery, error) {
	if assignedBefore.IsZero() {
		return GetStaleAssignmentsQuery{}, errs.NewValueIsRequiredError("assigned before")
	}
	if limit <= 0 {
		return GetStaleAssignmentsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	return GetStaleAssignmentsQuery{
		assignedBefore: assignedBefore,
		limit:          limit,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleAssignmentsQueryIsNotConstructed)
}

func (q GetStaleAssignmentsQuery) AssignedBefore() time.Time { return q.assignedBefore }
func (q GetStaleAssignmentsQuery) Limit() int                { return q.limit }
