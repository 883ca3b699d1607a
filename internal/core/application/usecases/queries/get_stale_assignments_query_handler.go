package queries

import (
	"context"

	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetStaleAssignmentsQueryHandler runs GetStaleAssignmentsQuery with direct SQL.
type GetStaleAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleAssignmentsQueryHandler creates a handler for stale assignment lookups.
func NewGetStaleAssignmentsQueryHandler(db *gorm.DB) GetStaleAssignmentsQueryHandler {
	return GetStaleAssignmentsQueryHandler{db: db}
}

// Handle returns the stale assignments in the read model of GetActiveAssignmentsQuery.
func (h GetStaleAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleAssignmentsQuery,
) ([]GetActiveAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+assignmentColumns+`
		FROM assignments
		WHERE status = ? AND assigned_at < ?
		ORDER BY assigned_at, id
		LIMIT ?
	`, assignment.Assigned.String(), query.AssignedBefore(), query.Limit()).Rows()
	if err != nil {
		return nil, errs.NewUnavailableError("list stale assignments", err)
	}
	defer rows.Close()

	return scanAssignments(rows, "list stale assignments")
}
