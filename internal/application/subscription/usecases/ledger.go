package usecases

import (
	"context"
	"fmt"

	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	"talenthub/internal/shared/biztime"
	"talenthub/internal/shared/logger"
)

// Ledger is the single source of truth for "does this user hold a usable
// subscription right now". Expiry is lazy: a stored record whose end date
// has passed is presented as expired even when its status column still
// says active. The ledger opportunistically writes the expiry back, but
// callers never depend on that write succeeding.
type Ledger struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewLedger(subscriptionRepo subscription.SubscriptionRepository, logger logger.Interface) *Ledger {
	return &Ledger{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// ActiveSubscription returns the user's usable subscription for the
// product line, or nil when there is none.
func (l *Ledger) ActiveSubscription(ctx context.Context, userID uint, productLine vo.ProductLine) (*subscription.Subscription, error) {
	sub, err := l.subscriptionRepo.GetActiveByUser(ctx, userID, productLine)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}
	if sub == nil {
		return nil, nil
	}

	if sub.IsExpiredAt(biztime.NowUTC()) {
		l.selfHealExpiry(ctx, sub)
		return nil, nil
	}

	return sub, nil
}

// selfHealExpiry writes the lazily observed expiry back to storage.
// Best effort: a failed write only delays the next observation.
func (l *Ledger) selfHealExpiry(ctx context.Context, sub *subscription.Subscription) {
	if err := sub.MarkAsExpired(); err != nil {
		return
	}
	if err := l.subscriptionRepo.Update(ctx, sub); err != nil {
		l.logger.Warnw("failed to persist lazy expiry",
			"subscription_id", sub.ID(),
			"error", err,
		)
		return
	}
	l.logger.Infow("subscription lazily expired",
		"subscription_id", sub.ID(),
		"user_id", sub.UserID(),
		"end_date", sub.EndDate(),
	)
}
