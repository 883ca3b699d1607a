package partner

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// MinScore is the lowest rating a customer can give.
	MinScore = 1
	// MaxScore is the highest rating a customer can give.
	MaxScore = 5

	ratingPlaces = 2
)

// Domain errors for partner operations.
var (
	// ErrNameIsRequired is returned when attempting to create a partner without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized Partner.
	ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")
	// ErrPartnerUnavailable is returned when an assignment targets a partner that is
	// offline or deactivated.
	ErrPartnerUnavailable = errors.New("delivery partner is unavailable")
)

// Partner represents a delivery partner: the person who carries orders from
// restaurants to customers.
//
// Key responsibilities:
//   - Exposing eligibility (online and active) for new assignments
//   - Counting completed deliveries
//   - Keeping a running-average customer rating
//
// Business rules:
//   - Partner must have a valid UUID and non-empty name
//   - Rating is 0 until the first score and then stays within [1, 5]
//   - Counters never decrease
//
// Eligibility is read at assignment creation only. Going offline later does not
// affect assignments that already exist.
//
// Example usage:
//
//	p, err := partner.NewPartner(kernel.NewUUID(), "Alice")
//	if err != nil {
//	    // Handle construction error
//	}
//	p.SetAvailability(true, true)
type Partner struct {
	// id uniquely identifies the partner
	id kernel.UUID
	// name is the human-readable name of the partner
	name string
	// online is set by the partner's app while they accept work
	online bool
	// active is the administrative flag; inactive partners never get work
	active bool
	// ratingsSum is the sum of all customer scores
	ratingsSum int
	// ratingsCount is the number of scores in ratingsSum
	ratingsCount int
	// totalDeliveries counts assignments that reached delivered
	totalDeliveries int
	// guard ensures the partner was properly constructed
	guard guard.ConstructorGuard
}

// NewPartner creates an active, offline partner with no history.
//
// Parameters:
//   - id: Unique identifier for the partner (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//
// Returns:
//   - *Partner: the created partner
//   - error: aggregated validation errors
func NewPartner(id kernel.UUID, name string) (*Partner, error) {
	return RestorePartner(id, name, false, true, 0, 0, 0)
}

// RestorePartner recreates a Partner from persisted state.
// This function is used by the persistence layer to rebuild partners from storage.
//
// Parameters:
//   - id, name: identity, validated as in NewPartner
//   - online, active: eligibility flags
//   - ratingsSum, ratingsCount: the sum of all scores and how many there are
//   - totalDeliveries: completed delivery counter
//
// Returns:
//   - *Partner: the restored partner
//   - error: aggregated validation errors
func RestorePartner(
	id kernel.UUID,
	name string,
	online bool,
	active bool,
	ratingsSum int,
	ratingsCount int,
	totalDeliveries int,
) (*Partner, error) {
	p := &Partner{
		online: online,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setRatings(ratingsSum, ratingsCount),
		p.setTotalDeliveries(totalDeliveries),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the partner was properly constructed.
func (p *Partner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// IsEqual compares two partners by their unique identifiers.
func (p *Partner) IsEqual(other *Partner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's name.
func (p *Partner) Name() string {
	return p.name
}

// IsOnline reports whether the partner currently accepts work.
func (p *Partner) IsOnline() bool {
	return p.online
}

// IsActive reports the administrative flag.
func (p *Partner) IsActive() bool {
	return p.active
}

// Rating returns the average customer score rounded to 2 decimal places,
// half to even (0 when never rated).
func (p *Partner) Rating() decimal.Decimal {
	if p.ratingsCount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(p.ratingsSum)).
		Div(decimal.NewFromInt(int64(p.ratingsCount))).
		RoundBank(ratingPlaces)
}

// RatingsSum returns the sum of all scores.
func (p *Partner) RatingsSum() int {
	return p.ratingsSum
}

// RatingsCount returns how many scores the rating averages.
func (p *Partner) RatingsCount() int {
	return p.ratingsCount
}

// TotalDeliveries returns the completed delivery counter.
func (p *Partner) TotalDeliveries() int {
	return p.totalDeliveries
}

// SetAvailability updates the online and active flags.
func (p *Partner) SetAvailability(online, active bool) {
	p.online = online
	p.active = active
}

// ValidateAvailable returns ErrPartnerUnavailable unless the partner is both
// active and online.
//
// Example:
//
//	if err := p.ValidateAvailable(); err != nil {
//	    return err // partner.ErrPartnerUnavailable
//	}
func (p *Partner) ValidateAvailable() error {
	if !p.active || !p.online {
		return fmt.Errorf("%w: %s (online=%t, active=%t)", ErrPartnerUnavailable, p.id, p.online, p.active)
	}
	return nil
}

// CompleteDelivery increments the delivery counter. It is called exactly once
// per assignment, inside the transaction that moves it to delivered.
func (p *Partner) CompleteDelivery() {
	p.totalDeliveries++
}

// Rate adds score to the rating. score must be within [MinScore, MaxScore].
func (p *Partner) Rate(score int) error {
	if score < MinScore || score > MaxScore {
		return errs.NewValueIsOutOfRangeError("score", score, MinScore, MaxScore)
	}

	p.ratingsSum += score
	p.ratingsCount++
	return nil
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	p.id = id
	return nil
}

func (p *Partner) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	p.name = name
	return nil
}

// setRatings checks that the sum is reachable with ratingsCount scores, each
// within [MinScore, MaxScore].
func (p *Partner) setRatings(ratingsSum, ratingsCount int) error {
	if ratingsCount < 0 {
		return errs.NewValueIsOutOfRangeError("ratings count", ratingsCount, 0, "unbounded")
	}
	if ratingsSum < ratingsCount*MinScore || ratingsSum > ratingsCount*MaxScore {
		return errs.NewValueIsOutOfRangeError("ratings sum", ratingsSum, ratingsCount*MinScore, ratingsCount*MaxScore)
	}

	p.ratingsSum = ratingsSum
	p.ratingsCount = ratingsCount
	return nil
}

func (p *Partner) setTotalDeliveries(total int) error {
	if total < 0 {
		return errs.NewValueIsOutOfRangeError("total deliveries", total, 0, "unbounded")
	}

	p.totalDeliveries = total
	return nil
}
