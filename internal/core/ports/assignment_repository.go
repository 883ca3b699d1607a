package ports

import (
	"context"

	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for delivery assignments.
type AssignmentRepository interface {
	// Add persists a new assignment.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists status, timeline, tips and rating of an existing assignment.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetForUpdate retrieves an assignment and locks its row until the
	// surrounding transaction ends. Concurrent transitions of one assignment
	// queue behind the lock and see the winner's state.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)
}
