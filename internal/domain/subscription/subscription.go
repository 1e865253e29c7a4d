package subscription

import (
	"fmt"
	"time"

	vo "talenthub/internal/domain/subscription/valueobjects"
)

// Subscription is a time-bounded grant of one plan's entitlements to one
// user. At most one subscription per (user, product line) is active at any
// instant; the repository enforces that invariant at the data layer.
//
// Expiry is time-driven and observed lazily: a record may still say
// "active" in storage after its end date has passed. Callers must go
// through the ledger, which presents such records as expired.
type Subscription struct {
	id          uint
	sid         string
	userID      uint
	planID      uint
	productLine vo.ProductLine
	status      vo.SubscriptionStatus
	startDate   time.Time
	endDate     time.Time
	autoRenew   bool
	cancelledAt *time.Time
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSubscription creates an active subscription starting at startDate and
// ending validityDays later.
func NewSubscription(userID, planID uint, productLine vo.ProductLine, startDate time.Time, validityDays int, autoRenew bool) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !productLine.IsValid() {
		return nil, fmt.Errorf("invalid product line: %s", productLine)
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}
	if validityDays <= 0 {
		return nil, fmt.Errorf("validity period must be at least one day")
	}

	now := time.Now()
	return &Subscription{
		userID:      userID,
		planID:      planID,
		productLine: productLine,
		status:      vo.StatusActive,
		startDate:   startDate,
		endDate:     startDate.AddDate(0, 0, validityDays),
		autoRenew:   autoRenew,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id uint,
	sid string,
	userID, planID uint,
	productLine vo.ProductLine,
	status vo.SubscriptionStatus,
	startDate, endDate time.Time,
	autoRenew bool,
	cancelledAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !productLine.IsValid() {
		return nil, fmt.Errorf("invalid product line: %s", productLine)
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	return &Subscription{
		id:          id,
		sid:         sid,
		userID:      userID,
		planID:      planID,
		productLine: productLine,
		status:      status,
		startDate:   startDate,
		endDate:     endDate,
		autoRenew:   autoRenew,
		cancelledAt: cancelledAt,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Subscription) SID() string {
	return s.sid
}

// SetSID assigns the public identifier, used by the persistence layer only.
func (s *Subscription) SetSID(sid string) error {
	if s.sid != "" {
		return fmt.Errorf("subscription SID is already set")
	}
	if sid == "" {
		return fmt.Errorf("subscription SID cannot be empty")
	}
	s.sid = sid
	return nil
}

func (s *Subscription) UserID() uint {
	return s.userID
}

func (s *Subscription) PlanID() uint {
	return s.planID
}

func (s *Subscription) ProductLine() vo.ProductLine {
	return s.productLine
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

func (s *Subscription) EndDate() time.Time {
	return s.endDate
}

func (s *Subscription) AutoRenew() bool {
	return s.autoRenew
}

func (s *Subscription) CancelledAt() *time.Time {
	return s.cancelledAt
}

// Version returns the aggregate version for optimistic locking
func (s *Subscription) Version() int {
	return s.version
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsExpiredAt reports whether the validity window has passed at t,
// regardless of the stored status.
func (s *Subscription) IsExpiredAt(t time.Time) bool {
	return t.After(s.endDate)
}

// IsActiveAt reports whether the subscription is usable at t: stored
// status active and validity window not yet passed.
func (s *Subscription) IsActiveAt(t time.Time) bool {
	return s.status == vo.StatusActive && !s.IsExpiredAt(t)
}

// IsActive reports whether the subscription is usable right now.
func (s *Subscription) IsActive() bool {
	return s.IsActiveAt(time.Now())
}

// Cancel moves the subscription to cancelled. Cancelling an already
// cancelled subscription is a no-op. A naturally expired subscription is
// immutable and cannot be cancelled.
func (s *Subscription) Cancel() error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return ErrInvalidTransition(string(s.status), string(vo.StatusCancelled))
	}

	now := time.Now()
	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.updatedAt = now
	s.version++
	return nil
}

// MarkAsExpired records the lazily observed expiry in the stored status.
// Marking an already expired subscription is a no-op.
func (s *Subscription) MarkAsExpired() error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return ErrInvalidTransition(string(s.status), string(vo.StatusExpired))
	}

	s.status = vo.StatusExpired
	s.updatedAt = time.Now()
	s.version++
	return nil
}

// SetAutoRenew updates the informational auto-renew flag.
func (s *Subscription) SetAutoRenew(autoRenew bool) {
	if s.autoRenew == autoRenew {
		return
	}
	s.autoRenew = autoRenew
	s.updatedAt = time.Now()
	s.version++
}
