package usecases

import (
	"context"
	"errors"
	"fmt"

	subusecases "talenthub/internal/application/subscription/usecases"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/logger"
)

// DenialReason classifies why a feature use was denied. Denials are
// decision outcomes, not errors; callers branch on them to prompt the
// user to subscribe or upgrade.
type DenialReason string

const (
	ReasonNoActiveSubscription DenialReason = "no_active_subscription"
	ReasonQuotaExceeded        DenialReason = "quota_exceeded"
)

// Decision is the outcome of one authorization. When Allowed, the meter
// has already been incremented: authorization checks and spends in one
// operation. Remaining is nil on the unlimited path.
type Decision struct {
	Allowed         bool
	Reason          DenialReason
	SubscriptionSID string
	Feature         string
	Remaining       *uint64
}

func allowed(sub *subscription.Subscription, feature vo.Feature, remaining *uint64) *Decision {
	return &Decision{
		Allowed:         true,
		SubscriptionSID: sub.SID(),
		Feature:         string(feature),
		Remaining:       remaining,
	}
}

func denied(reason DenialReason, feature vo.Feature) *Decision {
	return &Decision{
		Allowed: false,
		Reason:  reason,
		Feature: string(feature),
	}
}

type AuthorizeFeatureCommand struct {
	UserID      uint
	ProductLine string
	Feature     string
}

// AuthorizeFeatureUseCase decides whether a user may consume one unit of
// a metered feature and, when allowed, performs the spend. This is the
// only path by which metered features are consumed.
type AuthorizeFeatureUseCase struct {
	ledger    *subusecases.Ledger
	planRepo  subscription.PlanRepository
	usageRepo subscription.UsageCounterRepository
	logger    logger.Interface
}

func NewAuthorizeFeatureUseCase(
	ledger *subusecases.Ledger,
	planRepo subscription.PlanRepository,
	usageRepo subscription.UsageCounterRepository,
	logger logger.Interface,
) *AuthorizeFeatureUseCase {
	return &AuthorizeFeatureUseCase{
		ledger:    ledger,
		planRepo:  planRepo,
		usageRepo: usageRepo,
		logger:    logger,
	}
}

// Execute authorizes one feature use. The check and the increment are a
// single logical operation: two concurrent calls with one unit left
// under the ceiling can never both be allowed.
func (uc *AuthorizeFeatureUseCase) Execute(ctx context.Context, cmd AuthorizeFeatureCommand) (*Decision, error) {
	productLine, err := vo.ParseProductLine(cmd.ProductLine)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid product line", err.Error())
	}
	feature, err := vo.NewFeature(cmd.Feature)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid feature", err.Error())
	}

	sub, err := uc.ledger.ActiveSubscription(ctx, cmd.UserID, productLine)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return denied(ReasonNoActiveSubscription, feature), nil
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", sub.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		// Data-integrity failure, not a denial: a subscription must never
		// reference a nonexistent plan.
		uc.logger.Errorw("subscription references missing plan",
			"subscription_id", sub.ID(),
			"plan_id", sub.PlanID(),
		)
		return nil, apperrors.NewNotFoundError("plan referenced by subscription not found")
	}

	ceiling := plan.CeilingFor(feature)

	if ceiling.IsUnlimited() {
		if _, err := uc.usageRepo.Increment(ctx, sub.ID(), feature); err != nil {
			uc.logger.Errorw("failed to increment usage", "error", err, "subscription_id", sub.ID(), "feature", feature)
			return nil, fmt.Errorf("failed to increment usage: %w", err)
		}
		return allowed(sub, feature, nil), nil
	}

	limit := ceiling.Limit()
	if limit == 0 {
		// Feature absent from the plan resolves to a zero ceiling; absence
		// never grants access.
		return denied(ReasonQuotaExceeded, feature), nil
	}

	newCount, err := uc.usageRepo.IncrementIfBelow(ctx, sub.ID(), feature, limit)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrCeilingReached):
			return denied(ReasonQuotaExceeded, feature), nil
		case errors.Is(err, subscription.ErrUsageConflict):
			uc.logger.Warnw("usage increment lost retry race",
				"subscription_id", sub.ID(),
				"feature", feature,
			)
			return nil, apperrors.NewConflictError("concurrent usage update, retry the request")
		default:
			uc.logger.Errorw("failed to increment usage", "error", err, "subscription_id", sub.ID(), "feature", feature)
			return nil, fmt.Errorf("failed to increment usage: %w", err)
		}
	}

	remaining := limit - newCount
	return allowed(sub, feature, &remaining), nil
}
