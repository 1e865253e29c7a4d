package subscription

import (
	"context"

	vo "talenthub/internal/domain/subscription/valueobjects"
)

// PlanRepository is the plan catalog's persistence contract. Reads resolve
// plans for entitlement checks; writes come only from the admin surface.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetBySID(ctx context.Context, sid string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error

	// ListActive returns active plans for a product line ordered by price
	// ascending.
	ListActive(ctx context.Context, productLine vo.ProductLine) ([]*Plan, error)
	List(ctx context.Context, filter PlanFilter) ([]*Plan, int64, error)
}

// PlanFilter narrows plan listings on the admin surface.
type PlanFilter struct {
	ProductLine *vo.ProductLine
	Status      *string
	Category    *string
	Page        int
	PageSize    int
}

// SubscriptionRepository is the subscription ledger's persistence contract.
type SubscriptionRepository interface {
	// CreateIfNoActive atomically inserts the subscription unless an active
	// one already exists for the same (user, product line), in which case it
	// returns ErrActiveSubscriptionExists. The check and the insert are a
	// single operation; two concurrent creations cannot both win.
	CreateIfNoActive(ctx context.Context, sub *Subscription) error

	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)

	// GetActiveByUser returns the stored subscription whose status is
	// active for the (user, product line), or nil when there is none.
	// Lazy-expiry interpretation of the record is the ledger's job, not
	// the repository's.
	GetActiveByUser(ctx context.Context, userID uint, productLine vo.ProductLine) (*Subscription, error)

	ListByUser(ctx context.Context, userID uint) ([]*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
}

// UsageCounterRepository is the usage meter's persistence contract. Both
// increment variants are atomic with respect to concurrent callers on the
// same (subscription, feature) pair: two simultaneous increments can never
// observe the same pre-increment value and write the same post-increment
// value.
type UsageCounterRepository interface {
	// GetCount returns the current count, 0 when no counter row exists yet.
	GetCount(ctx context.Context, subscriptionID uint, feature vo.Feature) (uint64, error)

	// Increment bumps the counter unconditionally and returns the new
	// count. Used on the unlimited path where no ceiling applies.
	Increment(ctx context.Context, subscriptionID uint, feature vo.Feature) (uint64, error)

	// IncrementIfBelow bumps the counter only while the current count is
	// below ceiling and returns the new count. Returns ErrCeilingReached
	// when the counter is already at the ceiling, and ErrUsageConflict
	// when concurrent writers exhausted the retry budget.
	IncrementIfBelow(ctx context.Context, subscriptionID uint, feature vo.Feature, ceiling uint64) (uint64, error)

	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*UsageCounter, error)
}
