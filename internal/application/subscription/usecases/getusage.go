package usecases

import (
	"context"
	"fmt"

	"talenthub/internal/application/subscription/dto"
	"talenthub/internal/domain/subscription"
	vo "talenthub/internal/domain/subscription/valueobjects"
	apperrors "talenthub/internal/shared/errors"
	"talenthub/internal/shared/logger"
)

type GetUsageQuery struct {
	UserID          uint
	SubscriptionSID string
	IsAdmin         bool
}

type GetUsageUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	usageRepo        subscription.UsageCounterRepository
	logger           logger.Interface
}

func NewGetUsageUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	usageRepo subscription.UsageCounterRepository,
	logger logger.Interface,
) *GetUsageUseCase {
	return &GetUsageUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		usageRepo:        usageRepo,
		logger:           logger,
	}
}

// Execute reports per-feature consumption against the plan's ceilings.
// Features the plan grants but that were never consumed report zero;
// counters are created lazily on first use.
func (uc *GetUsageUseCase) Execute(ctx context.Context, query GetUsageQuery) ([]*dto.UsageDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, query.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_sid", query.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	if !query.IsAdmin && sub.UserID() != query.UserID {
		return nil, apperrors.NewForbiddenError("subscription does not belong to this user")
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", sub.PlanID())
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan referenced by subscription not found")
	}

	counters, err := uc.usageRepo.ListBySubscription(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to list usage counters", "error", err, "subscription_id", sub.ID())
		return nil, fmt.Errorf("failed to list usage counters: %w", err)
	}

	counts := make(map[vo.Feature]uint64, len(counters))
	for _, counter := range counters {
		counts[counter.Feature()] = counter.Count()
	}

	usages := make([]*dto.UsageDTO, 0, len(plan.Ceilings()))
	for _, feature := range plan.Features() {
		ceiling := plan.CeilingFor(feature)
		used := counts[feature]

		usage := &dto.UsageDTO{
			Feature:   string(feature),
			Used:      used,
			Ceiling:   ceiling.Encoded(),
			Unlimited: ceiling.IsUnlimited(),
		}
		if remaining, bounded := ceiling.Remaining(used); bounded {
			usage.Remaining = &remaining
		}
		usages = append(usages, usage)
	}

	return usages, nil
}
