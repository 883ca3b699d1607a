// Package assignmentrepo persists delivery assignments.
//
// Status is stored by name so the dispatch queries read naturally, and each
// status entered keeps its own timestamp column.
package assignmentrepo

import (
	"time"

	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentDTO represents one row of the assignments table.
type AssignmentDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartnerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status             string          `gorm:"size:16;not null;index:idx_assignments_status_assigned_at,priority:1"`
	AssignedAt         time.Time       `gorm:"type:timestamptz;not null;index:idx_assignments_status_assigned_at,priority:2"`
	AcceptedAt         *time.Time      `gorm:"type:timestamptz"`
	PickedUpAt         *time.Time      `gorm:"type:timestamptz"`
	DeliveredAt        *time.Time      `gorm:"type:timestamptz"`
	CancelledAt        *time.Time      `gorm:"type:timestamptz"`
	CancellationReason string          `gorm:"type:text;not null;default:''"`
	DeliveryFee        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Tips               decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes              string          `gorm:"type:text;not null;default:''"`
	Rating             *int            `gorm:"check:chk_assignments_rating,rating IS NULL OR rating BETWEEN 1 AND 5"`
}

// TableName overrides GORM's default naming.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	tl := a.Timeline()
	return AssignmentDTO{
		ID:                 a.ID().Bytes(),
		OrderID:            a.OrderID().Bytes(),
		PartnerID:          a.PartnerID().Bytes(),
		Status:             a.Status().String(),
		AssignedAt:         tl.AssignedAt,
		AcceptedAt:         tl.AcceptedAt,
		PickedUpAt:         tl.PickedUpAt,
		DeliveredAt:        tl.DeliveredAt,
		CancelledAt:        tl.CancelledAt,
		CancellationReason: a.CancellationReason(),
		DeliveryFee:        a.DeliveryFee().Decimal(),
		Tips:               a.Tips().Decimal(),
		Notes:              a.Notes(),
		Rating:             a.Rating(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	tips, err := kernel.NewMoney(dto.Tips)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, partnerID,
		status,
		assignment.Timeline{
			AssignedAt:  dto.AssignedAt,
			AcceptedAt:  dto.AcceptedAt,
			PickedUpAt:  dto.PickedUpAt,
			DeliveredAt: dto.DeliveredAt,
			CancelledAt: dto.CancelledAt,
		},
		dto.CancellationReason,
		fee,
		tips,
		dto.Notes,
		dto.Rating,
	)
}
