package assignmentrepo

import (
	"context"

	"foodorder/internal/adapters/out/postgres/pgerr"
	"foodorder/internal/core/domain/model/assignment"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LiveOrderIndex is the partial unique index that allows at most one
// non-terminal assignment per order.
const LiveOrderIndex = "ux_assignments_live_order"

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new assignment. A second live assignment for the same order
// fails with order.ErrOrderNotAssignable.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsDuplicate(err) {
			return order.ErrOrderNotAssignable
		}
		return pgerr.Unavailable("add assignment", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of the assignment.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return pgerr.Unavailable("update assignment", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves an assignment with SELECT ... FOR UPDATE. A second
// caller blocks until the first transaction ends and then reads its result.
func (r *GormAssignmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormAssignmentRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerr.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, pgerr.Unavailable("get assignment", err)
	}

	return toDomain(dto)
}
