package queries

import (
	"context"
	"database/sql"
	"time"

	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const assignmentColumns = `
	id,
	order_id,
	partner_id,
	status,
	assigned_at,
	COALESCE(picked_up_at, accepted_at, assigned_at) AS status_since,
	delivery_fee,
	tips
`

// GetActiveAssignmentsQueryHandler retrieves live assignments with a direct SQL query.
type GetActiveAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveAssignmentsQueryHandler creates a handler for live assignment listing.
func NewGetActiveAssignmentsQueryHandler(db *gorm.DB) GetActiveAssignmentsQueryHandler {
	return GetActiveAssignmentsQueryHandler{db: db}
}

// Handle returns assignments in assigned, accepted or picked_up status.
func (h GetActiveAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveAssignmentsQuery,
) ([]GetActiveAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	live := []string{
		assignment.Assigned.String(),
		assignment.Accepted.String(),
		assignment.PickedUp.String(),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+assignmentColumns+`
		FROM assignments
		WHERE status IN ?
		ORDER BY assigned_at, id
	`, live).Rows()
	if err != nil {
		return nil, errs.NewUnavailableError("list active assignments", err)
	}
	defer rows.Close()

	return scanAssignments(rows, "list active assignments")
}

func scanAssignments(rows *sql.Rows, operation string) ([]GetActiveAssignmentsQueryResponse, error) {
	assignments := make([]GetActiveAssignmentsQueryResponse, 0)

	for rows.Next() {
		var (
			resp                    GetActiveAssignmentsQueryResponse
			id, orderID, partnerID  uuid.UUID
			status                  string
			assignedAt, statusSince time.Time
			deliveryFee, tips       decimal.Decimal
		)

		if err := rows.Scan(
			&id,
			&orderID,
			&partnerID,
			&status,
			&assignedAt,
			&statusSince,
			&deliveryFee,
			&tips,
		); err != nil {
			return nil, errs.NewUnavailableError(operation, err)
		}

		var err error
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if resp.PartnerID, err = kernel.UUIDFromBytes(partnerID[:]); err != nil {
			return nil, err
		}
		if resp.Status, err = assignment.ParseStatus(status); err != nil {
			return nil, err
		}
		if resp.DeliveryFee, err = kernel.NewMoney(deliveryFee); err != nil {
			return nil, err
		}
		if resp.Tips, err = kernel.NewMoney(tips); err != nil {
			return nil, err
		}
		resp.AssignedAt = assignedAt
		resp.StatusSince = statusSince

		assignments = append(assignments, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.NewUnavailableError(operation, err)
	}

	return assignments, nil
}
