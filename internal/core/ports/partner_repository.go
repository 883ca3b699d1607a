// Package ports defines repository interfaces for the food-ordering domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partners.
type PartnerRepository interface {
	// Add persists a new partner.
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Update persists availability, counters and rating of an existing partner.
	Update(ctx context.Context, aggregate *partner.Partner) error

	// Get retrieves a partner by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// GetForUpdate retrieves a partner and locks its row until the surrounding
	// transaction ends, so that counter and rating updates of concurrent
	// deliveries do not overwrite each other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*partner.Partner, error)
}
