package queries

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetActiveAssignmentsQueryIsNotConstructed = errors.New(
		"GetActiveAssignmentsQuery must be created via NewGetActiveAssignmentsQuery constructor",
	)
)

// GetActiveAssignmentsQuery lists assignments that have not reached a
// terminal status, oldest first.
type GetActiveAssignmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveAssignmentsQuery creates a query for live assignments.
func NewGetActiveAssignmentsQuery() GetActiveAssignmentsQuery {
	return GetActiveAssignmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveAssignmentsQueryIsNotConstructed)
}

// GetActiveAssignmentsQueryResponse is the read model of one assignment.
// StatusSince is the timestamp of the current status.
type GetActiveAssignmentsQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	PartnerID   kernel.UUID
	Status      assignment.Status
	AssignedAt  time.Time
	StatusSince time.Time
	DeliveryFee kernel.Money
	Tips        kernel.Money
}
