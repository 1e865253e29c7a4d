package subscription

import (
	"errors"
	"fmt"
)

var (
	// ErrPlanNotFound indicates a dangling plan reference. A subscription
	// must never reference a nonexistent plan, so callers treat this as a
	// data-integrity failure, not a normal control-flow case.
	ErrPlanNotFound = errors.New("subscription plan not found")

	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrActiveSubscriptionExists is returned when creating a subscription
	// for a (user, product line) that already has an active one.
	ErrActiveSubscriptionExists = errors.New("active subscription already exists")

	// ErrCeilingReached is returned by the usage meter when the counter is
	// already at the plan ceiling at the moment of the increment.
	ErrCeilingReached = errors.New("usage ceiling reached")

	// ErrUsageConflict is returned when a conditional counter update kept
	// losing against concurrent writers and the retry budget ran out.
	ErrUsageConflict = errors.New("usage counter update conflict")

	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
