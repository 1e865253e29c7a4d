package subscription

import (
	"fmt"
	"time"

	vo "talenthub/internal/domain/subscription/valueobjects"
)

// UsageCounter is the running consumption count of one feature under one
// subscription. Counts are monotonically increasing for the life of the
// subscription; renewal creates fresh counters under a new subscription,
// usage never carries over.
type UsageCounter struct {
	id             uint
	subscriptionID uint
	feature        vo.Feature
	count          uint64
	createdAt      time.Time
	updatedAt      time.Time
}

// NewUsageCounter creates a zeroed counter for a (subscription, feature)
// pair.
func NewUsageCounter(subscriptionID uint, feature vo.Feature) (*UsageCounter, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if feature == "" {
		return nil, fmt.Errorf("feature is required")
	}

	now := time.Now()
	return &UsageCounter{
		subscriptionID: subscriptionID,
		feature:        feature,
		count:          0,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructUsageCounter rebuilds a counter from persistence.
func ReconstructUsageCounter(id, subscriptionID uint, feature vo.Feature, count uint64, createdAt, updatedAt time.Time) (*UsageCounter, error) {
	if id == 0 {
		return nil, fmt.Errorf("usage counter ID cannot be zero")
	}
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if feature == "" {
		return nil, fmt.Errorf("feature is required")
	}

	return &UsageCounter{
		id:             id,
		subscriptionID: subscriptionID,
		feature:        feature,
		count:          count,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (u *UsageCounter) ID() uint {
	return u.id
}

func (u *UsageCounter) SetID(id uint) error {
	if id == 0 {
		return fmt.Errorf("usage counter ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *UsageCounter) SubscriptionID() uint {
	return u.subscriptionID
}

func (u *UsageCounter) Feature() vo.Feature {
	return u.feature
}

func (u *UsageCounter) Count() uint64 {
	return u.count
}

func (u *UsageCounter) CreatedAt() time.Time {
	return u.createdAt
}

func (u *UsageCounter) UpdatedAt() time.Time {
	return u.updatedAt
}

// Increment bumps the count by one. Counters never decrement.
func (u *UsageCounter) Increment() uint64 {
	u.count++
	u.updatedAt = time.Now()
	return u.count
}
